package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/junyours/occ-admission-sub001/internal/upstream"
)

// CleanupFetcher is the slice of the exam platform client the retention
// cleanup needs.
type CleanupFetcher interface {
	CountStale(ctx context.Context, cutoff time.Time) (*upstream.StaleSummary, error)
	PurgeStale(ctx context.Context, cutoff time.Time) (*upstream.PurgeOutcome, error)
}

// CleanupService previews and runs the stale-data purge on the exam
// platform. Preview and purge share the same cutoff computation so the
// counselor always deletes exactly what the dry run showed.
type CleanupService struct {
	fetcher    CleanupFetcher
	cache      *CacheService
	cutoffDays int
	now        func() time.Time
	logger     *zap.Logger
}

// NewCleanupService constructs the service.
func NewCleanupService(fetcher CleanupFetcher, cache *CacheService, cutoffDays int, logger *zap.Logger) *CleanupService {
	if cutoffDays <= 0 {
		cutoffDays = 365
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CleanupService{
		fetcher:    fetcher,
		cache:      cache,
		cutoffDays: cutoffDays,
		now:        time.Now,
		logger:     logger,
	}
}

// Cutoff is the moment before which data counts as stale.
func (s *CleanupService) Cutoff() time.Time {
	return s.now().UTC().AddDate(0, 0, -s.cutoffDays)
}

// Preview reports what a purge would remove, without removing anything.
func (s *CleanupService) Preview(ctx context.Context) (*upstream.StaleSummary, error) {
	return s.fetcher.CountStale(ctx, s.Cutoff())
}

// Purge deletes stale data on the exam platform and drops every cached
// working set, since any of them may reference purged records.
func (s *CleanupService) Purge(ctx context.Context) (*upstream.PurgeOutcome, error) {
	cutoff := s.Cutoff()
	outcome, err := s.fetcher.PurgeStale(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, "browse:*")
	s.logger.Info("stale data purged",
		zap.Time("cutoff", cutoff),
		zap.Int("registrations", outcome.Registrations),
		zap.Int("exam_data", outcome.ExamData))
	return outcome, nil
}
