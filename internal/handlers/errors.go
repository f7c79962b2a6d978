package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prnow/prnow/internal/ai"
	"github.com/prnow/prnow/internal/models"
	"github.com/prnow/prnow/internal/services"
	"github.com/prnow/prnow/pkg/logger"
)

// statusFor maps a service error to its HTTP status
func statusFor(err error) int {
	var (
		validationErr  *models.ValidationError
		configErr      *services.ConfigurationError
		capabilityErr  *services.CapabilityError
		transitionErr  *services.TransitionError
		httpErr        *ai.HTTPError
		transportErr   *ai.TransportError
		unsupportedErr *ai.UnsupportedProviderError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &unsupportedErr):
		return http.StatusBadRequest
	case errors.As(err, &configErr):
		return http.StatusPreconditionFailed
	case errors.As(err, &capabilityErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &transitionErr):
		return http.StatusConflict
	case errors.As(err, &httpErr):
		return httpErr.StatusCode
	case errors.As(err, &transportErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the workspace API envelope for err
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.WithError(err).Errorf("%s %s failed", c.Request.Method, c.Request.URL.Path)
	}
	c.JSON(status, gin.H{
		"success": false,
		"message": err.Error(),
	})
}

// relayError writes {error} with the provider status forwarded. Provider
// bodies are passed through verbatim.
func relayError(c *gin.Context, err error) {
	message := err.Error()
	var httpErr *ai.HTTPError
	if errors.As(err, &httpErr) {
		message = httpErr.Body
	}
	c.JSON(statusFor(err), gin.H{"error": message})
}

func respondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": message,
	})
}
