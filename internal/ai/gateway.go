package ai

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/prnow/prnow/internal/models"
	"github.com/prnow/prnow/pkg/logger"
)

// Endpoints are the provider base URLs
type Endpoints struct {
	AnthropicBaseURL string
	OpenAIBaseURL    string
	GoogleBaseURL    string
}

// Completer is what domain code needs from the gateway
type Completer interface {
	Complete(ctx context.Context, cfg models.AIConfig, systemPrompt, userPrompt string, opts Options) (string, error)
	SupportsSearch(provider models.Provider) bool
}

// Gateway dispatches completions to the adapter registered for the
// configured provider. It never retries or caches.
type Gateway struct {
	adapters   map[models.Provider]Adapter
	httpClient *http.Client
}

// NewGateway creates a gateway over the given adapters. A nil client uses a
// plain http.Client with no timeout.
func NewGateway(httpClient *http.Client, adapters ...Adapter) *Gateway {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	g := &Gateway{
		adapters:   make(map[models.Provider]Adapter, len(adapters)),
		httpClient: httpClient,
	}
	for _, a := range adapters {
		g.adapters[a.Provider()] = a
	}
	return g
}

// NewDefaultGateway registers the three supported providers
func NewDefaultGateway(endpoints Endpoints, timeout time.Duration) *Gateway {
	return NewGateway(
		&http.Client{Timeout: timeout},
		NewAnthropicAdapter(endpoints.AnthropicBaseURL),
		NewOpenAIAdapter(endpoints.OpenAIBaseURL),
		NewGoogleAdapter(endpoints.GoogleBaseURL),
	)
}

// Adapter returns the adapter for provider
func (g *Gateway) Adapter(provider models.Provider) (Adapter, bool) {
	a, ok := g.adapters[provider]
	return a, ok
}

func (g *Gateway) SupportsSearch(provider models.Provider) bool {
	a, ok := g.adapters[provider]
	return ok && a.SupportsSearch()
}

// Complete sends one completion using the workspace configuration
func (g *Gateway) Complete(ctx context.Context, cfg models.AIConfig, systemPrompt, userPrompt string, opts Options) (string, error) {
	return g.Send(ctx, cfg.Provider, Request{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		Credential:   cfg.APIKey,
		AuthMethod:   cfg.EffectiveAuthMethod(),
		Model:        cfg.Model,
		WantSearch:   opts.WantSearch,
		MaxTokens:    opts.MaxTokens,
	})
}

// Send dispatches a fully specified request and returns the extracted text
func (g *Gateway) Send(ctx context.Context, provider models.Provider, req Request) (string, error) {
	adapter, ok := g.adapters[provider]
	if !ok {
		return "", &UnsupportedProviderError{Provider: provider}
	}

	httpReq, err := adapter.BuildRequest(ctx, req)
	if err != nil {
		return "", fmt.Errorf("build %s request: %w", provider, err)
	}

	log := logger.WithFields(logrus.Fields{
		"provider": provider,
		"model":    req.model(adapter),
		"search":   req.WantSearch,
	})
	log.WithField("prompt_chars", len(req.SystemPrompt)+len(req.UserPrompt)).Debug("AI request starting")

	start := time.Now()
	resp, err := g.clientFor(adapter, req).Do(httpReq)
	if err != nil {
		log.WithError(err).WithField("elapsed", time.Since(start).String()).Error("AI request failed")
		return "", &TransportError{Provider: string(provider), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Provider: string(provider), Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.WithField("status", resp.StatusCode).Error("AI provider returned an error")
		return "", &HTTPError{Provider: string(provider), StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	text, err := adapter.ExtractText(respBody)
	if err != nil {
		return "", err
	}

	log.WithFields(logrus.Fields{
		"elapsed":        time.Since(start).String(),
		"response_chars": len(text),
	}).Info("AI request completed")

	return text, nil
}

// clientFor wraps the shared client with an oauth2 transport when the
// credential travels as a bearer token.
func (g *Gateway) clientFor(adapter Adapter, req Request) *http.Client {
	if !adapter.UsesBearer(req) {
		return g.httpClient
	}
	return &http.Client{
		Timeout: g.httpClient.Timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: req.Credential, TokenType: "Bearer"}),
			Base:   g.httpClient.Transport,
		},
	}
}
