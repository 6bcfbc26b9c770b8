package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/junyours/occ-admission-sub001/internal/browse"
	"github.com/junyours/occ-admission-sub001/internal/classify"
	"github.com/junyours/occ-admission-sub001/internal/models"
	"github.com/junyours/occ-admission-sub001/internal/upstream"
)

// ResultFetcher is the slice of the exam platform client the result
// browser needs.
type ResultFetcher interface {
	FetchResults(ctx context.Context, q upstream.ResultQuery) (*upstream.ResultSet, error)
	DeleteResult(ctx context.Context, id string) error
}

// ResultPage is one rendered page of the result browser.
type ResultPage struct {
	Items      []models.ExamResult
	Pagination *models.Pagination
	Facets     models.Facets
	Stale      bool
	StaleError string
	PageReset  bool
}

// ResultService drives the result browser: working-set fetch, in-memory
// filter, deterministic sort, pagination, and preference write-through.
type ResultService struct {
	fetcher    ResultFetcher
	cache      *CacheService
	prefs      *PreferenceService
	metrics    *MetricsService
	thresholds classify.Thresholds
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewResultService constructs the service.
func NewResultService(fetcher ResultFetcher, cache *CacheService, prefs *PreferenceService, metrics *MetricsService, thresholds classify.Thresholds, cacheTTL time.Duration, logger *zap.Logger) *ResultService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResultService{
		fetcher:    fetcher,
		cache:      cache,
		prefs:      prefs,
		metrics:    metrics,
		thresholds: thresholds,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// Browse produces one page of results for the filter. The window's page
// resets to 1 whenever the filter state or page size differs from what the
// user last browsed with, so a narrowed set never opens on a page past its
// end.
func (s *ResultService) Browse(ctx context.Context, userID string, filter models.ResultFilter) (*ResultPage, error) {
	pref := s.prefs.Browse(ctx, userID, FeatureResultsBrowser)
	if filter.Window.PageSize == 0 {
		filter.Window.PageSize = pref.PageSize
	}

	signature := resultFilterSignature(filter)
	reset := filter.Window.Page > 1 && browseStateChanged(pref, signature, filter.Window.PageSize)
	if reset {
		filter.Window.Page = 1
	}

	set, err := s.workingSet(ctx, upstream.ResultQuery{
		ExamRef:  filter.ExamRef,
		DateFrom: filter.DateFrom,
		DateTo:   filter.DateTo,
	})
	if err != nil {
		return nil, err
	}

	filtered := resultStack(filter, s.thresholds).Apply(set.Records)
	ordered := browse.Order[models.ExamResult]{
		Primary: browse.DescFloat(func(r models.ExamResult) float64 { return r.Score }),
		TieID:   func(r models.ExamResult) string { return r.ID },
	}.Sort(filtered)
	page := browse.Paginate(ordered, filter.Window)

	items := page.Items
	for i := range items {
		items[i].Passed = s.thresholds.Passed(items[i].Score)
	}

	s.prefs.RememberBrowse(ctx, userID, FeatureResultsBrowser, models.BrowsePreference{
		Filters:  signature,
		PageSize: filter.Window.PageSize,
	})

	return &ResultPage{
		Items:      items,
		Pagination: page.Pagination(),
		Facets:     set.Facets,
		Stale:      set.Stale,
		StaleError: set.StaleError,
		PageReset:  reset,
	}, nil
}

// FilteredSorted returns the full filtered, ordered collection without a
// page window. Report rendering shares this path with Browse so a report
// always matches what the browser shows.
func (s *ResultService) FilteredSorted(ctx context.Context, filter models.ResultFilter) ([]models.ExamResult, *upstream.ResultSet, error) {
	set, err := s.workingSet(ctx, upstream.ResultQuery{
		ExamRef:  filter.ExamRef,
		DateFrom: filter.DateFrom,
		DateTo:   filter.DateTo,
	})
	if err != nil {
		return nil, nil, err
	}

	filtered := resultStack(filter, s.thresholds).Apply(set.Records)
	ordered := browse.Order[models.ExamResult]{
		Primary: browse.DescFloat(func(r models.ExamResult) float64 { return r.Score }),
		TieID:   func(r models.ExamResult) string { return r.ID },
	}.Sort(filtered)
	for i := range ordered {
		ordered[i].Passed = s.thresholds.Passed(ordered[i].Score)
	}
	return ordered, set, nil
}

// Delete removes one result on the exam platform and drops any cached
// result working sets.
func (s *ResultService) Delete(ctx context.Context, id string) error {
	if err := s.fetcher.DeleteResult(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, "browse:results:*")
	return nil
}

func (s *ResultService) workingSet(ctx context.Context, q upstream.ResultQuery) (*upstream.ResultSet, error) {
	key := resultCacheKey(q)

	var cached upstream.ResultSet
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	start := time.Now()
	set, err := s.fetcher.FetchResults(ctx, q)
	s.metrics.ObserveUpstreamFetch("results", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if set.Stale {
		s.metrics.RecordStaleServed()
		s.logger.Warn("serving stale result set", zap.String("cause", set.StaleError))
	} else {
		s.cache.Set(ctx, key, set, s.cacheTTL)
	}
	return set, nil
}

func resultStack(filter models.ResultFilter, t classify.Thresholds) *browse.Stack[models.ExamResult] {
	stack := browse.NewStack[models.ExamResult]()
	stack.AddIf(filter.Search != "", func(r models.ExamResult) bool {
		return browse.ContainsFold(r.ExamineeName, filter.Search) ||
			browse.ContainsFold(r.ExamineeNumber, filter.Search)
	})
	stack.AddIf(filter.MinScore != nil || filter.MaxScore != nil, func(r models.ExamResult) bool {
		return browse.InRange(r.Score, filter.MinScore, filter.MaxScore)
	})
	stack.AddIf(filter.Outcome != "", func(r models.ExamResult) bool {
		passed := t.Passed(r.Score)
		if filter.Outcome == "passed" {
			return passed
		}
		return !passed
	})
	return stack
}

func resultCacheKey(q upstream.ResultQuery) string {
	return fmt.Sprintf("browse:results:%s|%s|%s", q.ExamRef, cacheDate(q.DateFrom), cacheDate(q.DateTo))
}

func resultFilterSignature(f models.ResultFilter) map[string]string {
	sig := map[string]string{}
	putIf(sig, "exam_ref", f.ExamRef)
	putIf(sig, "date_from", cacheDate(f.DateFrom))
	putIf(sig, "date_to", cacheDate(f.DateTo))
	putIf(sig, "search", f.Search)
	putFloatIf(sig, "min_score", f.MinScore)
	putFloatIf(sig, "max_score", f.MaxScore)
	putIf(sig, "outcome", f.Outcome)
	return sig
}

// browseStateChanged reports whether the incoming filter state or page size
// differs from what the preference row remembers.
func browseStateChanged(pref models.BrowsePreference, signature map[string]string, pageSize int) bool {
	if pref.PageSize != pageSize {
		return true
	}
	if len(pref.Filters) != len(signature) {
		return true
	}
	for k, v := range signature {
		if pref.Filters[k] != v {
			return true
		}
	}
	return false
}

func cacheDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func putIf(m map[string]string, key, value string) {
	if value != "" {
		m[key] = value
	}
}

func putFloatIf(m map[string]string, key string, value *float64) {
	if value != nil {
		m[key] = strconv.FormatFloat(*value, 'f', -1, 64)
	}
}
