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

// QuestionFetcher is the slice of the exam platform client the question
// analysis view needs.
type QuestionFetcher interface {
	FetchQuestionStats(ctx context.Context, q upstream.QuestionQuery) (*upstream.QuestionSet, error)
}

// QuestionPage is one rendered page of the question analysis view.
type QuestionPage struct {
	Items         []models.QuestionStat
	Pagination    *models.Pagination
	Facets        models.Facets
	Stale         bool
	StaleError    string
	PageReset     bool
	TimeThreshold float64
}

// QuestionService drives the question analysis view. Speed classification
// is recomputed from the request's time threshold on every pass so the
// filter and the displayed badge can never disagree.
type QuestionService struct {
	fetcher       QuestionFetcher
	cache         *CacheService
	prefs         *PreferenceService
	metrics       *MetricsService
	thresholds    classify.Thresholds
	defaultThresh float64
	cacheTTL      time.Duration
	logger        *zap.Logger
}

// NewQuestionService constructs the service.
func NewQuestionService(fetcher QuestionFetcher, cache *CacheService, prefs *PreferenceService, metrics *MetricsService, thresholds classify.Thresholds, defaultThresh float64, cacheTTL time.Duration, logger *zap.Logger) *QuestionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuestionService{
		fetcher:       fetcher,
		cache:         cache,
		prefs:         prefs,
		metrics:       metrics,
		thresholds:    thresholds,
		defaultThresh: defaultThresh,
		cacheTTL:      cacheTTL,
		logger:        logger,
	}
}

// Browse produces one page of question statistics, hardest questions first.
func (s *QuestionService) Browse(ctx context.Context, userID string, filter models.QuestionFilter) (*QuestionPage, error) {
	pref := s.prefs.Browse(ctx, userID, FeatureQuestionsBrowser)
	if filter.Window.PageSize == 0 {
		filter.Window.PageSize = pref.PageSize
	}
	if filter.TimeThreshold <= 0 {
		filter.TimeThreshold = s.defaultThresh
	}

	signature := questionFilterSignature(filter)
	reset := filter.Window.Page > 1 && browseStateChanged(pref, signature, filter.Window.PageSize)
	if reset {
		filter.Window.Page = 1
	}

	set, err := s.workingSet(ctx, upstream.QuestionQuery{
		ExamRef:     filter.ExamRef,
		MinAttempts: filter.MinAttempts,
	})
	if err != nil {
		return nil, err
	}

	filtered := s.questionStack(filter).Apply(set.Records)
	ordered := browse.Order[models.QuestionStat]{
		Primary: browse.DescFloat(func(q models.QuestionStat) float64 { return q.WrongPct }),
		TieID:   func(q models.QuestionStat) string { return q.ID },
	}.Sort(filtered)
	page := browse.Paginate(ordered, filter.Window)

	items := page.Items
	for i := range items {
		items[i].Speed = s.thresholds.SpeedAt(items[i].AvgSeconds, filter.TimeThreshold)
		items[i].Difficulty = s.thresholds.Difficulty(items[i].WrongPct)
	}

	s.prefs.RememberBrowse(ctx, userID, FeatureQuestionsBrowser, models.BrowsePreference{
		Filters:  signature,
		PageSize: filter.Window.PageSize,
	})

	return &QuestionPage{
		Items:         items,
		Pagination:    page.Pagination(),
		Facets:        set.Facets,
		Stale:         set.Stale,
		StaleError:    set.StaleError,
		PageReset:     reset,
		TimeThreshold: filter.TimeThreshold,
	}, nil
}

// FilteredSorted returns the whole filtered, ordered, classified question
// collection regardless of the filter's page window. Reports build on this
// so they always cover the same rows the table shows.
func (s *QuestionService) FilteredSorted(ctx context.Context, filter models.QuestionFilter) ([]models.QuestionStat, *upstream.QuestionSet, error) {
	if filter.TimeThreshold <= 0 {
		filter.TimeThreshold = s.defaultThresh
	}

	set, err := s.workingSet(ctx, upstream.QuestionQuery{
		ExamRef:     filter.ExamRef,
		MinAttempts: filter.MinAttempts,
	})
	if err != nil {
		return nil, nil, err
	}

	filtered := s.questionStack(filter).Apply(set.Records)
	ordered := browse.Order[models.QuestionStat]{
		Primary: browse.DescFloat(func(q models.QuestionStat) float64 { return q.WrongPct }),
		TieID:   func(q models.QuestionStat) string { return q.ID },
	}.Sort(filtered)
	for i := range ordered {
		ordered[i].Speed = s.thresholds.SpeedAt(ordered[i].AvgSeconds, filter.TimeThreshold)
		ordered[i].Difficulty = s.thresholds.Difficulty(ordered[i].WrongPct)
	}
	return ordered, set, nil
}

func (s *QuestionService) workingSet(ctx context.Context, q upstream.QuestionQuery) (*upstream.QuestionSet, error) {
	key := fmt.Sprintf("browse:questions:%s|%d", q.ExamRef, q.MinAttempts)

	var cached upstream.QuestionSet
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	start := time.Now()
	set, err := s.fetcher.FetchQuestionStats(ctx, q)
	s.metrics.ObserveUpstreamFetch("questions", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if set.Stale {
		s.metrics.RecordStaleServed()
		s.logger.Warn("serving stale question set", zap.String("cause", set.StaleError))
	} else {
		s.cache.Set(ctx, key, set, s.cacheTTL)
	}
	return set, nil
}

func (s *QuestionService) questionStack(filter models.QuestionFilter) *browse.Stack[models.QuestionStat] {
	stack := browse.NewStack[models.QuestionStat]()
	stack.AddIf(filter.Category != "", func(q models.QuestionStat) bool {
		return browse.EqualFold(q.Category, filter.Category)
	})
	stack.AddIf(filter.Search != "", func(q models.QuestionStat) bool {
		return browse.ContainsFold(q.ID, filter.Search) ||
			browse.ContainsFold(q.Category, filter.Search)
	})
	stack.AddIf(filter.MinWrongPct != nil || filter.MaxWrongPct != nil, func(q models.QuestionStat) bool {
		return browse.InRange(q.WrongPct, filter.MinWrongPct, filter.MaxWrongPct)
	})
	stack.AddIf(filter.Speed != "", func(q models.QuestionStat) bool {
		return string(s.thresholds.SpeedAt(q.AvgSeconds, filter.TimeThreshold)) == filter.Speed
	})
	stack.AddIf(filter.Difficulty != "", func(q models.QuestionStat) bool {
		return string(s.thresholds.Difficulty(q.WrongPct)) == filter.Difficulty
	})
	return stack
}

func questionFilterSignature(f models.QuestionFilter) map[string]string {
	sig := map[string]string{}
	putIf(sig, "exam_ref", f.ExamRef)
	if f.MinAttempts > 0 {
		sig["min_attempts"] = strconv.Itoa(f.MinAttempts)
	}
	putIf(sig, "category", f.Category)
	putIf(sig, "search", f.Search)
	putFloatIf(sig, "min_wrong_pct", f.MinWrongPct)
	putFloatIf(sig, "max_wrong_pct", f.MaxWrongPct)
	putIf(sig, "speed", f.Speed)
	putIf(sig, "difficulty", f.Difficulty)
	if f.TimeThreshold > 0 {
		sig["time_threshold"] = strconv.FormatFloat(f.TimeThreshold, 'f', -1, 64)
	}
	return sig
}
