package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/junyours/occ-admission-sub001/internal/models"
)

// PreferenceRepository persists per-user view preferences.
type PreferenceRepository struct {
	db *sqlx.DB
}

// NewPreferenceRepository constructs the repository.
func NewPreferenceRepository(db *sqlx.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// Get returns the stored preference row for (userID, feature), or nil when
// none exists. Absence is not an error: the caller hydrates defaults.
func (r *PreferenceRepository) Get(ctx context.Context, userID, feature string) (*models.ViewPreference, error) {
	const query = `SELECT id, user_id, feature, payload, updated_at FROM view_preferences WHERE user_id = $1 AND feature = $2`
	var pref models.ViewPreference
	if err := r.db.GetContext(ctx, &pref, query, userID, feature); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get view preference: %w", err)
	}
	return &pref, nil
}

// Upsert writes the preference row, replacing any previous payload for the
// same (user, feature). Last write wins.
func (r *PreferenceRepository) Upsert(ctx context.Context, pref *models.ViewPreference) error {
	if pref.ID == "" {
		pref.ID = uuid.NewString()
	}
	if pref.UpdatedAt.IsZero() {
		pref.UpdatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO view_preferences (id, user_id, feature, payload, updated_at)
VALUES (:id, :user_id, :feature, :payload, :updated_at)
ON CONFLICT (user_id, feature) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, pref); err != nil {
		return fmt.Errorf("upsert view preference: %w", err)
	}
	return nil
}

// Delete removes the stored preference, returning the feature to defaults.
func (r *PreferenceRepository) Delete(ctx context.Context, userID, feature string) error {
	const query = `DELETE FROM view_preferences WHERE user_id = $1 AND feature = $2`
	if _, err := r.db.ExecContext(ctx, query, userID, feature); err != nil {
		return fmt.Errorf("delete view preference: %w", err)
	}
	return nil
}
