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

const openAIDefaultModel = "gpt-4o"

type openAIChatRequest struct {
	Model     string          `json:"model"`
	Messages  []openAIMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatResponse struct {
	Choices []openAIChoice `json:"choices"`
}

type openAIChoice struct {
	Message openAIMessage `json:"message"`
}

// OpenAIAdapter talks to the chat-completions API
type OpenAIAdapter struct {
	baseURL string
}

func NewOpenAIAdapter(baseURL string) *OpenAIAdapter {
	return &OpenAIAdapter{baseURL: strings.TrimRight(baseURL, "/")}
}

func (a *OpenAIAdapter) Provider() models.Provider { return models.ProviderOpenAI }

func (a *OpenAIAdapter) DefaultModel() string { return openAIDefaultModel }

func (a *OpenAIAdapter) SupportsSearch() bool { return false }

// UsesBearer is always true: OpenAI keys are bearer tokens.
func (a *OpenAIAdapter) UsesBearer(Request) bool { return true }

func (a *OpenAIAdapter) BuildRequest(ctx context.Context, req Request) (*http.Request, error) {
	msgs := make([]openAIMessage, 0, 2)
	if req.SystemPrompt != "" {
		msgs = append(msgs, openAIMessage{Role: "system", Content: req.SystemPrompt})
	}
	msgs = append(msgs, openAIMessage{Role: "user", Content: req.UserPrompt})

	jsonData, err := json.Marshal(openAIChatRequest{
		Model:     req.model(a),
		Messages:  msgs,
		MaxTokens: req.maxTokens(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return httpReq, nil
}

func (a *OpenAIAdapter) ExtractText(body []byte) (string, error) {
	var resp openAIChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parse openai response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
