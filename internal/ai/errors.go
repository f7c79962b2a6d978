package ai

import (
	"fmt"

	"github.com/prnow/prnow/internal/models"
)

// HTTPError is a non-2xx answer from a provider. Body is the raw response
// text and is forwarded verbatim by the relay endpoints.
type HTTPError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// TransportError is a network-level failure reaching a provider
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UnsupportedProviderError is returned before any network call is made
type UnsupportedProviderError struct {
	Provider models.Provider
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unsupported AI provider: %q", string(e.Provider))
}
