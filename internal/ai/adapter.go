package ai

import (
	"context"
	"net/http"

	"github.com/prnow/prnow/internal/models"
)

const (
	defaultMaxTokens = 2048
	searchMaxTokens  = 4096
	webSearchMaxUses = 5
)

// Request is a provider-neutral completion request
type Request struct {
	SystemPrompt string
	UserPrompt   string
	Credential   string
	AuthMethod   models.AuthMethod
	Model        string
	WantSearch   bool
	MaxTokens    int
}

// Options tune a single Complete call
type Options struct {
	WantSearch bool
	MaxTokens  int
}

// Adapter translates a Request into one backend's HTTP shape and pulls the
// plain text back out of its response. Adapters are stateless.
type Adapter interface {
	Provider() models.Provider
	DefaultModel() string

	// SupportsSearch reports whether the backend has a built-in web search tool.
	SupportsSearch() bool

	// BuildRequest returns the outgoing request. Bearer credentials are not
	// set here; see UsesBearer.
	BuildRequest(ctx context.Context, req Request) (*http.Request, error)

	// UsesBearer reports whether the credential travels as an
	// Authorization: Bearer header, which the gateway injects.
	UsesBearer(req Request) bool

	ExtractText(body []byte) (string, error)
}

func (r Request) model(a Adapter) string {
	if r.Model != "" {
		return r.Model
	}
	return a.DefaultModel()
}

func (r Request) maxTokens() int {
	if r.MaxTokens > 0 {
		return r.MaxTokens
	}
	if r.WantSearch {
		return searchMaxTokens
	}
	return defaultMaxTokens
}
