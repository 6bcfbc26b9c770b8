package models

import (
	"encoding/json"
	"time"
)

// ViewPreference is one durable per-user, per-feature preference row. The
// payload is opaque JSON owned by the feature that wrote it.
type ViewPreference struct {
	ID        string          `db:"id" json:"id"`
	UserID    string          `db:"user_id" json:"user_id"`
	Feature   string          `db:"feature" json:"feature"`
	Payload   json.RawMessage `db:"payload" json:"payload"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// BrowsePreference is the payload shape shared by the browser views: the
// last-used filter selections and page size.
type BrowsePreference struct {
	Filters  map[string]string `json:"filters"`
	PageSize int               `json:"page_size"`
}

// DefaultBrowsePreference returns the hydration fallback used when no row
// exists or the stored payload no longer decodes.
func DefaultBrowsePreference(pageSize int) BrowsePreference {
	return BrowsePreference{Filters: map[string]string{}, PageSize: pageSize}
}
