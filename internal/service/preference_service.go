package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/junyours/occ-admission-sub001/internal/models"
	appErrors "github.com/junyours/occ-admission-sub001/pkg/errors"
)

// Browser feature keys. One owning view per key; nothing else reads or
// writes another view's payload.
const (
	FeatureExamsBrowser     = "exams_browser"
	FeatureResultsBrowser   = "results_browser"
	FeatureQuestionsBrowser = "questions_browser"
)

var knownFeatures = map[string]struct{}{
	FeatureExamsBrowser:     {},
	FeatureResultsBrowser:   {},
	FeatureQuestionsBrowser: {},
}

// PreferenceStore abstracts preference persistence.
type PreferenceStore interface {
	Get(ctx context.Context, userID, feature string) (*models.ViewPreference, error)
	Upsert(ctx context.Context, pref *models.ViewPreference) error
	Delete(ctx context.Context, userID, feature string) error
}

// PreferenceService hydrates and persists per-user browser preferences.
type PreferenceService struct {
	repo            PreferenceStore
	defaultPageSize int
	maxPageSize     int
	logger          *zap.Logger
}

// NewPreferenceService constructs the service.
func NewPreferenceService(repo PreferenceStore, defaultPageSize, maxPageSize int, logger *zap.Logger) *PreferenceService {
	if defaultPageSize <= 0 {
		defaultPageSize = 10
	}
	if maxPageSize <= 0 {
		maxPageSize = 100
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PreferenceService{repo: repo, defaultPageSize: defaultPageSize, maxPageSize: maxPageSize, logger: logger}
}

// Browse returns the stored preference for the feature, falling back to
// defaults when no row exists, the row fails to decode, or the store is
// unreachable. Hydration never fails the page.
func (s *PreferenceService) Browse(ctx context.Context, userID, feature string) models.BrowsePreference {
	fallback := models.DefaultBrowsePreference(s.defaultPageSize)
	if s.repo == nil || userID == "" {
		return fallback
	}

	row, err := s.repo.Get(ctx, userID, feature)
	if err != nil {
		s.logger.Warn("preference load failed", zap.String("feature", feature), zap.Error(err))
		return fallback
	}
	if row == nil {
		return fallback
	}

	var pref models.BrowsePreference
	if err := json.Unmarshal(row.Payload, &pref); err != nil {
		s.logger.Warn("corrupt preference payload, using defaults",
			zap.String("feature", feature), zap.String("user_id", userID), zap.Error(err))
		return fallback
	}
	if pref.Filters == nil {
		pref.Filters = map[string]string{}
	}
	if !validPageSize(pref.PageSize, s.maxPageSize) {
		pref.PageSize = s.defaultPageSize
	}
	return pref
}

// SaveBrowse persists the feature's preference, write-through on every
// change.
func (s *PreferenceService) SaveBrowse(ctx context.Context, userID, feature string, pref models.BrowsePreference) error {
	if _, ok := knownFeatures[feature]; !ok {
		return appErrors.Clone(appErrors.ErrValidation, "unknown preference feature")
	}
	if !validPageSize(pref.PageSize, s.maxPageSize) {
		return appErrors.Clone(appErrors.ErrValidation, "invalid page size")
	}
	if pref.Filters == nil {
		pref.Filters = map[string]string{}
	}

	payload, err := json.Marshal(pref)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode preference")
	}
	return s.repo.Upsert(ctx, &models.ViewPreference{
		UserID:    userID,
		Feature:   feature,
		Payload:   payload,
		UpdatedAt: time.Now().UTC(),
	})
}

// RememberBrowse is the fire-and-forget variant used by the browse flow:
// failures are logged, never surfaced, so a preference write can't block a
// page.
func (s *PreferenceService) RememberBrowse(ctx context.Context, userID, feature string, pref models.BrowsePreference) {
	if s.repo == nil || userID == "" {
		return
	}
	if err := s.SaveBrowse(ctx, userID, feature, pref); err != nil {
		s.logger.Warn("preference write failed", zap.String("feature", feature), zap.Error(err))
	}
}

// Reset removes the stored preference, returning the feature to defaults.
func (s *PreferenceService) Reset(ctx context.Context, userID, feature string) error {
	if _, ok := knownFeatures[feature]; !ok {
		return appErrors.Clone(appErrors.ErrValidation, "unknown preference feature")
	}
	return s.repo.Delete(ctx, userID, feature)
}

// DefaultPageSize exposes the configured fallback page size.
func (s *PreferenceService) DefaultPageSize() int {
	return s.defaultPageSize
}

func validPageSize(size, max int) bool {
	if size == models.PageSizeAll {
		return true
	}
	return size > 0 && size <= max
}
