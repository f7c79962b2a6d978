package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prnow/prnow/internal/models"
)

// UnsupportedVersionError is returned for blobs written by a newer release
type UnsupportedVersionError struct {
	Version int
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("stored state version %d is newer than supported version %d", e.Version, models.CurrentStateVersion)
}

// StateBlobRepository stores the serialized workspace in app_state
type StateBlobRepository struct {
	db *sql.DB
}

func NewStateBlobRepository(db *sql.DB) *StateBlobRepository {
	return &StateBlobRepository{db: db}
}

// Load returns the blob stored under key, or nil when none exists
func (r *StateBlobRepository) Load(key string) (*models.AppState, error) {
	query := `
		SELECT version, data
		FROM app_state
		WHERE storage_key = ?
	`

	var version int
	var data string
	err := r.db.QueryRow(query, key).Scan(&version, &data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if version > models.CurrentStateVersion {
		return nil, &UnsupportedVersionError{Version: version}
	}

	// A blob written before the style guide existed has no styleGuide key and
	// keeps the default; an explicitly empty guide stays empty.
	state := &models.AppState{StyleGuide: models.DefaultStyleGuide}
	if err := json.Unmarshal([]byte(data), state); err != nil {
		return nil, fmt.Errorf("decode state blob: %w", err)
	}
	state.Version = models.CurrentStateVersion
	state.Normalize()
	return state, nil
}

// Save writes the whole state under key
func (r *StateBlobRepository) Save(key string, state *models.AppState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state blob: %w", err)
	}

	query := `
		INSERT INTO app_state (storage_key, version, data, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(storage_key) DO UPDATE SET
			version = excluded.version,
			data = excluded.data,
			updated_at = excluded.updated_at
	`
	_, err = r.db.Exec(query, key, models.CurrentStateVersion, string(data), time.Now())
	return err
}
