package repositories

import (
	"sync"

	"github.com/prnow/prnow/internal/models"
)

// StateRepository holds the workspace. Get returns a private copy; Set
// replaces the whole state and notifies subscribers.
type StateRepository interface {
	Get() *models.AppState
	Set(state *models.AppState) error
	Subscribe(fn func(state *models.AppState)) (unsubscribe func())
}

type MemoryStateRepository struct {
	mu          sync.RWMutex
	state       *models.AppState
	subscribers map[int]func(*models.AppState)
	nextSubID   int
}

func NewMemoryStateRepository(initial *models.AppState) *MemoryStateRepository {
	if initial == nil {
		initial = models.NewAppState()
	}
	initial = initial.Clone()
	initial.Normalize()
	return &MemoryStateRepository{
		state:       initial,
		subscribers: make(map[int]func(*models.AppState)),
	}
}

func (r *MemoryStateRepository) Get() *models.AppState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.Clone()
}

func (r *MemoryStateRepository) Set(state *models.AppState) error {
	next := state.Clone()
	next.Normalize()

	r.mu.Lock()
	r.state = next
	subs := make([]func(*models.AppState), 0, len(r.subscribers))
	for _, fn := range r.subscribers {
		subs = append(subs, fn)
	}
	r.mu.Unlock()

	for _, fn := range subs {
		fn(next.Clone())
	}
	return nil
}

func (r *MemoryStateRepository) Subscribe(fn func(*models.AppState)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextSubID
	r.nextSubID++
	r.subscribers[id] = fn
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.subscribers, id)
	}
}
