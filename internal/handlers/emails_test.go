package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prnow/prnow/internal/ai"
	"github.com/prnow/prnow/internal/models"
	"github.com/prnow/prnow/internal/repositories"
	"github.com/prnow/prnow/internal/services"
)

func newEmailRouter(t *testing.T) (*gin.Engine, *services.StoreService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := services.NewStoreService(repositories.NewMemoryStateRepository(models.NewAppState()))
	h := NewEmailHandler(store, services.NewExportService(store))

	router := gin.New()
	router.GET("/emails", h.ListEmails)
	router.GET("/emails/export", h.Export)
	router.POST("/emails/bulk-approve", h.BulkApprove)
	router.POST("/emails/:id/approve", h.ApproveEmail)
	router.PUT("/emails/:id/status", h.UpdateStatus)
	return router, store
}

func TestBulkApproveHandler(t *testing.T) {
	router, store := newEmailRouter(t)
	added, err := store.AddEmails([]models.OutreachEmail{
		{Subject: "a", Type: models.EmailTypeIndividual, Status: models.EmailStatusPendingApproval},
		{Subject: "b", Type: models.EmailTypeIndividual, Status: models.EmailStatusPendingApproval},
		{Subject: "c", Type: models.EmailTypePublication, Status: models.EmailStatusPendingApproval},
	})
	require.NoError(t, err)

	w := postJSON(router, "/emails/bulk-approve", gin.H{"ids": []string{added[0].ID, added[2].ID}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2 emails approved")

	b, err := store.GetEmail(added[1].ID)
	require.NoError(t, err)
	assert.Equal(t, models.EmailStatusPendingApproval, b.Status)
}

func TestEmailStatusErrors(t *testing.T) {
	router, store := newEmailRouter(t)
	added, err := store.AddEmails([]models.OutreachEmail{{Subject: "a", Type: models.EmailTypeIndividual, Status: models.EmailStatusPendingApproval}})
	require.NoError(t, err)
	id := added[0].ID

	t.Run("Unknown email", func(t *testing.T) {
		w := postJSON(router, "/emails/missing/approve", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
	})

	t.Run("Illegal transition", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPut, "/emails/"+id+"/status", jsonBody(gin.H{"status": "replied"}))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Invalid status", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPut, "/emails/"+id+"/status", jsonBody(gin.H{"status": "lost"}))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestExportHandler(t *testing.T) {
	router, store := newEmailRouter(t)
	_, err := store.AddEmails([]models.OutreachEmail{{Subject: "a", Type: models.EmailTypeIndividual, Status: models.EmailStatusPendingApproval}})
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "/emails/export", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "outbox-")
	assert.NotZero(t, w.Body.Len())
}

type failingOutbox struct{}

func (failingOutbox) WriteOutbox(io.Writer, models.EmailStatus, models.EmailType) error {
	return errors.New("workbook unavailable")
}

func TestExportHandlerFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := services.NewStoreService(repositories.NewMemoryStateRepository(models.NewAppState()))
	h := NewEmailHandler(store, failingOutbox{})
	router := gin.New()
	router.GET("/emails/export", h.Export)

	req, _ := http.NewRequest(http.MethodGet, "/emails/export", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Empty(t, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "workbook unavailable")
}

func jsonBody(body interface{}) *bytes.Reader {
	data, _ := json.Marshal(body)
	return bytes.NewReader(data)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &models.ValidationError{Field: "name", Message: "required"}, http.StatusBadRequest},
		{"unsupported provider", &ai.UnsupportedProviderError{Provider: "cohere"}, http.StatusBadRequest},
		{"configuration", &services.ConfigurationError{Message: "setup"}, http.StatusPreconditionFailed},
		{"capability", &services.CapabilityError{Message: "no search"}, http.StatusUnprocessableEntity},
		{"not found", fmt.Errorf("email x: %w", services.ErrNotFound), http.StatusNotFound},
		{"transition", &services.TransitionError{Entity: "email", From: "draft", To: "sent"}, http.StatusConflict},
		{"provider status", fmt.Errorf("draft: %w", &ai.HTTPError{StatusCode: http.StatusUnauthorized}), http.StatusUnauthorized},
		{"transport", &ai.TransportError{Provider: "google", Err: errors.New("dial")}, http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
