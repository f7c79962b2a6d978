package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/prnow/prnow/internal/models"
)

const googleDefaultModel = "gemini-2.0-flash"

type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig *geminiGenConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens,omitempty"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

// GoogleAdapter talks to the Gemini generateContent API
type GoogleAdapter struct {
	baseURL string
}

func NewGoogleAdapter(baseURL string) *GoogleAdapter {
	return &GoogleAdapter{baseURL: strings.TrimRight(baseURL, "/")}
}

func (a *GoogleAdapter) Provider() models.Provider { return models.ProviderGoogle }

func (a *GoogleAdapter) DefaultModel() string { return googleDefaultModel }

func (a *GoogleAdapter) SupportsSearch() bool { return false }

func (a *GoogleAdapter) UsesBearer(req Request) bool {
	return req.AuthMethod == models.AuthMethodOAuthToken
}

// BuildRequest folds the system prompt into the single content part; the
// minimal integration has no system role.
func (a *GoogleAdapter) BuildRequest(ctx context.Context, req Request) (*http.Request, error) {
	prompt := req.UserPrompt
	if req.SystemPrompt != "" {
		prompt = req.SystemPrompt + "\n\n" + req.UserPrompt
	}

	jsonData, err := json.Marshal(geminiRequest{
		Contents:         []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: &geminiGenConfig{MaxOutputTokens: req.maxTokens()},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", a.baseURL, url.PathEscape(req.model(a)))
	if !a.UsesBearer(req) {
		endpoint += "?key=" + url.QueryEscape(req.Credential)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return httpReq, nil
}

func (a *GoogleAdapter) ExtractText(body []byte) (string, error) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parse gemini response: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
