package dto

import (
	"strconv"
	"strings"
	"time"

	appErrors "github.com/junyours/occ-admission-sub001/pkg/errors"
)

// BrowseQuery carries the pagination parameters shared by every browser
// view. Zero values mean "use the stored preference".
type BrowseQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// ParseOptionalFloat parses a query parameter into an optional bound.
func ParseOptionalFloat(raw, name string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid "+name)
	}
	return &v, nil
}

// ParseOptionalDate parses a query parameter into an optional timestamp.
// Both RFC3339 and plain dates are accepted.
func ParseOptionalDate(raw, name string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrValidation, "invalid "+name)
}
