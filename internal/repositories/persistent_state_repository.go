package repositories

import (
	"fmt"
	"sync"

	"github.com/prnow/prnow/internal/models"
	"github.com/prnow/prnow/pkg/logger"
)

// BlobStore is the storage behind PersistentStateRepository
type BlobStore interface {
	Load(key string) (*models.AppState, error)
	Save(key string, state *models.AppState) error
}

// PersistentStateRepository decorates a StateRepository, writing every Set
// to the blob store before the inner repository sees it.
type PersistentStateRepository struct {
	inner StateRepository
	blobs BlobStore
	key   string
	mu    sync.Mutex
}

// NewPersistentStateRepository loads the stored blob (if any) into inner
func NewPersistentStateRepository(inner StateRepository, blobs BlobStore, key string) (*PersistentStateRepository, error) {
	stored, err := blobs.Load(key)
	if err != nil {
		return nil, fmt.Errorf("load state %q: %w", key, err)
	}
	if stored != nil {
		if err := inner.Set(stored); err != nil {
			return nil, err
		}
		logger.WithField("storage_key", key).Info("Loaded persisted workspace")
	}
	return &PersistentStateRepository{inner: inner, blobs: blobs, key: key}, nil
}

func (r *PersistentStateRepository) Get() *models.AppState {
	return r.inner.Get()
}

func (r *PersistentStateRepository) Set(state *models.AppState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.blobs.Save(r.key, state); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	return r.inner.Set(state)
}

func (r *PersistentStateRepository) Subscribe(fn func(*models.AppState)) func() {
	return r.inner.Subscribe(fn)
}
