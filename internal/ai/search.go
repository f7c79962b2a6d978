package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prnow/prnow/pkg/logger"
)

const searchProvider = "serper"

// SearchClient queries the Serper web search API
type SearchClient struct {
	url        string
	httpClient *http.Client
}

func NewSearchClient(url string, timeout time.Duration) *SearchClient {
	return &SearchClient{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type serperRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
}

type serperResponse struct {
	Organic []serperResult `json:"organic"`
}

type serperResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

// Raw runs query and returns the provider JSON untouched
func (s *SearchClient) Raw(ctx context.Context, apiKey, query string) (json.RawMessage, error) {
	jsonData, err := json.Marshal(serperRequest{Q: query, Num: 10})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Provider: searchProvider, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Provider: searchProvider, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.WithField("status", resp.StatusCode).Error("Search API returned an error")
		return nil, &HTTPError{Provider: searchProvider, StatusCode: resp.StatusCode, Body: string(body)}
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("search response is not JSON")
	}
	return json.RawMessage(body), nil
}

// Search runs query and formats the organic results for a prompt
func (s *SearchClient) Search(ctx context.Context, apiKey, query string) (string, error) {
	raw, err := s.Raw(ctx, apiKey, query)
	if err != nil {
		return "", err
	}
	return FormatSearchResults(raw), nil
}

// FormatSearchResults renders organic results as numbered blocks
func FormatSearchResults(raw []byte) string {
	var resp serperResponse
	if err := json.Unmarshal(raw, &resp); err != nil || len(resp.Organic) == 0 {
		return "No search results found."
	}

	blocks := make([]string, 0, len(resp.Organic))
	for i, r := range resp.Organic {
		blocks = append(blocks, fmt.Sprintf("[%d] %s\n%s\nURL: %s", i+1, r.Title, r.Snippet, r.Link))
	}
	return strings.Join(blocks, "\n\n")
}
