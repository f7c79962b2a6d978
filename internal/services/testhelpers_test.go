package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prnow/prnow/internal/ai"
	"github.com/prnow/prnow/internal/models"
	"github.com/prnow/prnow/internal/repositories"
)

// stubCompleter answers every completion with a fixed reply, or with the
// reply picked by respond when set.
type stubCompleter struct {
	mu       sync.Mutex
	reply    string
	err      error
	search   bool
	respond  func(system, user string) (string, error)
	calls    int
	systems  []string
	users    []string
	lastOpts ai.Options
}

func (s *stubCompleter) Complete(_ context.Context, _ models.AIConfig, system, user string, opts ai.Options) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.systems = append(s.systems, system)
	s.users = append(s.users, user)
	s.lastOpts = opts
	if s.respond != nil {
		return s.respond(system, user)
	}
	return s.reply, s.err
}

func (s *stubCompleter) SupportsSearch(models.Provider) bool {
	return s.search
}

func (s *stubCompleter) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubSearcher struct {
	results string
	queries []string
}

func (s *stubSearcher) Search(_ context.Context, _ string, query string) (string, error) {
	s.queries = append(s.queries, query)
	return s.results, nil
}

func testProfile() models.ProjectProfile {
	return models.ProjectProfile{
		Name:         "Acme",
		Tagline:      "X",
		Brief:        "Y",
		Achievements: []string{"Z"},
		Category:     "developer tools",
	}
}

func testConfig(provider models.Provider) models.AIConfig {
	return models.AIConfig{Provider: provider, APIKey: "test-key-123456"}
}

func testContact() models.Contact {
	return models.Contact{
		ID:     "contact-1",
		Name:   "Jane Doe",
		Role:   "Reporter",
		Outlet: "Daily Bugle",
		Beat:   "Tech",
	}
}

// newTestStore returns a store over memory with deterministic ids and a
// clock that advances one second per call.
func newTestStore(t *testing.T) *StoreService {
	t.Helper()
	store := NewStoreService(repositories.NewMemoryStateRepository(models.NewAppState()))

	var mu sync.Mutex
	next := 0
	store.newID = func() string {
		mu.Lock()
		defer mu.Unlock()
		next++
		return fmt.Sprintf("id-%d", next)
	}
	clock := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		clock = clock.Add(time.Second)
		return clock
	}
	return store
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
