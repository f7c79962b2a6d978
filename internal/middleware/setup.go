package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupChecker reports whether the workspace has an AI config and a profile
type SetupChecker interface {
	IsSetupComplete() bool
}

// SetupRequired rejects requests until setup is complete
func SetupRequired(checker SetupChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !checker.IsSetupComplete() {
			c.AbortWithStatusJSON(http.StatusPreconditionFailed, gin.H{
				"success": false,
				"message": "Finish setup first: configure an AI provider and a project profile",
			})
			return
		}

		c.Next()
	}
}
