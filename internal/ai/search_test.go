package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchClient(t *testing.T) {
	t.Run("Formats organic results", func(t *testing.T) {
		server, captured, _ := newProviderServer(t, http.StatusOK,
			`{"organic":[{"title":"Jane Doe - Daily Bugle","snippet":"Tech reporter jane@bugle.com","link":"https://bugle.com/jane"}]}`)
		client := NewSearchClient(server.URL, 0)

		results, err := client.Search(context.Background(), "serper-key", "daily bugle tech reporter")
		require.NoError(t, err)

		assert.Equal(t, "serper-key", captured.Header.Get("X-API-KEY"))
		assert.Equal(t, "daily bugle tech reporter", captured.Body["q"])
		assert.Equal(t, float64(10), captured.Body["num"])
		assert.Equal(t, "[1] Jane Doe - Daily Bugle\nTech reporter jane@bugle.com\nURL: https://bugle.com/jane", results)
	})

	t.Run("No results", func(t *testing.T) {
		server, _, _ := newProviderServer(t, http.StatusOK, `{"organic":[]}`)
		results, err := NewSearchClient(server.URL, 0).Search(context.Background(), "serper-key", "nothing")
		require.NoError(t, err)
		assert.Equal(t, "No search results found.", results)
	})

	t.Run("Raw passthrough", func(t *testing.T) {
		server, _, _ := newProviderServer(t, http.StatusOK, `{"organic":[],"searchParameters":{"q":"x"}}`)
		raw, err := NewSearchClient(server.URL, 0).Raw(context.Background(), "serper-key", "x")
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(raw), "searchParameters"))
	})

	t.Run("Error status", func(t *testing.T) {
		server, _, _ := newProviderServer(t, http.StatusForbidden, `{"message":"Unauthorized"}`)
		_, err := NewSearchClient(server.URL, 0).Search(context.Background(), "bad", "x")

		var httpErr *HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusForbidden, httpErr.StatusCode)
		assert.Equal(t, "serper", httpErr.Provider)
	})
}
