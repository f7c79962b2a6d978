package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeSetup bool

func (f fakeSetup) IsSetupComplete() bool { return bool(f) }

func newTestRouter(checker SetupChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestLogger())
	router.GET("/test", SetupRequired(checker), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})
	return router
}

func TestSetupRequired(t *testing.T) {
	t.Run("incomplete setup is rejected", func(t *testing.T) {
		router := newTestRouter(fakeSetup(false))

		req, _ := http.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusPreconditionFailed, w.Code)
		assert.Contains(t, w.Body.String(), "Finish setup first")
	})

	t.Run("complete setup passes through", func(t *testing.T) {
		router := newTestRouter(fakeSetup(true))

		req, _ := http.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "success")
	})
}
