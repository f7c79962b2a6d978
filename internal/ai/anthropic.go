package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/prnow/prnow/internal/models"
)

const (
	anthropicVersion      = "2023-06-01"
	anthropicDefaultModel = "claude-sonnet-4-20250514"
)

// Anthropic Messages API request/response types (unexported).

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
	Tools     []anthropicTool    `json:"tools,omitempty"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicTool struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	MaxUses int    `json:"max_uses,omitempty"`
}

type anthropicResponse struct {
	Content []anthropicBlock `json:"content"`
}

type anthropicBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// AnthropicAdapter talks to the Anthropic Messages API
type AnthropicAdapter struct {
	baseURL string
}

func NewAnthropicAdapter(baseURL string) *AnthropicAdapter {
	return &AnthropicAdapter{baseURL: strings.TrimRight(baseURL, "/")}
}

func (a *AnthropicAdapter) Provider() models.Provider { return models.ProviderAnthropic }

func (a *AnthropicAdapter) DefaultModel() string { return anthropicDefaultModel }

func (a *AnthropicAdapter) SupportsSearch() bool { return true }

func (a *AnthropicAdapter) UsesBearer(req Request) bool {
	return req.AuthMethod == models.AuthMethodOAuthToken
}

func (a *AnthropicAdapter) BuildRequest(ctx context.Context, req Request) (*http.Request, error) {
	body := anthropicRequest{
		Model:     req.model(a),
		MaxTokens: req.maxTokens(),
		System:    req.SystemPrompt,
		Messages:  []anthropicMessage{{Role: "user", Content: req.UserPrompt}},
	}
	if req.WantSearch {
		body.Tools = []anthropicTool{{
			Type:    "web_search_20250305",
			Name:    "web_search",
			MaxUses: webSearchMaxUses,
		}}
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/messages", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("anthropic-version", anthropicVersion)
	if !a.UsesBearer(req) {
		httpReq.Header.Set("x-api-key", req.Credential)
	}
	return httpReq, nil
}

// ExtractText joins every text block in order. Search responses interleave
// tool-use and result blocks, which are skipped.
func (a *AnthropicAdapter) ExtractText(body []byte) (string, error) {
	var resp anthropicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parse anthropic response: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}
