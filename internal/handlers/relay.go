package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/prnow/prnow/internal/ai"
	"github.com/prnow/prnow/internal/models"
)

// Sender is the gateway call used by the relay
type Sender interface {
	Send(ctx context.Context, provider models.Provider, req ai.Request) (string, error)
}

// RawSearcher returns untouched search API JSON
type RawSearcher interface {
	Raw(ctx context.Context, apiKey, query string) (json.RawMessage, error)
}

// RelayHandler forwards completions and searches for callers that hold
// their own credentials. Nothing is stored.
type RelayHandler struct {
	sender   Sender
	searcher RawSearcher
}

func NewRelayHandler(sender Sender, searcher RawSearcher) *RelayHandler {
	return &RelayHandler{
		sender:   sender,
		searcher: searcher,
	}
}

type relayRequest struct {
	APIKey     string            `json:"apiKey"`
	AuthMethod models.AuthMethod `json:"authMethod"`
	Model      string            `json:"model"`
	System     string            `json:"system"`
	Prompt     string            `json:"prompt"`
	UseSearch  bool              `json:"useSearch"`
}

type searchRequest struct {
	APIKey string `json:"apiKey"`
	Query  string `json:"query"`
}

// Anthropic handles POST /api/ai/anthropic
func (h *RelayHandler) Anthropic(c *gin.Context) {
	h.relay(c, models.ProviderAnthropic)
}

// OpenAI handles POST /api/ai/openai
func (h *RelayHandler) OpenAI(c *gin.Context) {
	h.relay(c, models.ProviderOpenAI)
}

// Google handles POST /api/ai/google
func (h *RelayHandler) Google(c *gin.Context) {
	h.relay(c, models.ProviderGoogle)
}

func (h *RelayHandler) relay(c *gin.Context, provider models.Provider) {
	var req relayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.APIKey) == "" || strings.TrimSpace(req.Prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing apiKey or prompt"})
		return
	}

	authMethod := req.AuthMethod
	if authMethod != models.AuthMethodOAuthToken {
		authMethod = models.AuthMethodAPIKey
	}

	text, err := h.sender.Send(c.Request.Context(), provider, ai.Request{
		SystemPrompt: req.System,
		UserPrompt:   req.Prompt,
		Credential:   req.APIKey,
		AuthMethod:   authMethod,
		Model:        req.Model,
		WantSearch:   req.UseSearch && provider == models.ProviderAnthropic,
	})
	if err != nil {
		relayError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": text})
}

// Search handles POST /api/search
func (h *RelayHandler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.APIKey) == "" || strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing apiKey or query"})
		return
	}

	results, err := h.searcher.Raw(c.Request.Context(), req.APIKey, req.Query)
	if err != nil {
		relayError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
