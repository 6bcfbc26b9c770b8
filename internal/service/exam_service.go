package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/junyours/occ-admission-sub001/internal/browse"
	"github.com/junyours/occ-admission-sub001/internal/models"
	"github.com/junyours/occ-admission-sub001/internal/upstream"
	appErrors "github.com/junyours/occ-admission-sub001/pkg/errors"
)

// ExamFetcher is the slice of the exam platform client the exam list and
// lifecycle operations need.
type ExamFetcher interface {
	FetchExams(ctx context.Context, q upstream.ExamQuery) (*upstream.ExamSet, error)
	CreateExam(ctx context.Context, payload upstream.CreateExamPayload) (*models.Exam, error)
	SetExamStatus(ctx context.Context, id, status string) error
	ArchiveExam(ctx context.Context, id string) error
}

// ExamPage is one rendered page of the exam list.
type ExamPage struct {
	Items      []models.Exam
	Pagination *models.Pagination
	Facets     models.Facets
	Stale      bool
	StaleError string
	PageReset  bool
}

// ExamService drives the exam list view and exam lifecycle mutations.
type ExamService struct {
	fetcher  ExamFetcher
	cache    *CacheService
	prefs    *PreferenceService
	metrics  *MetricsService
	validate *validator.Validate
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewExamService constructs the service.
func NewExamService(fetcher ExamFetcher, cache *CacheService, prefs *PreferenceService, metrics *MetricsService, cacheTTL time.Duration, logger *zap.Logger) *ExamService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExamService{
		fetcher:  fetcher,
		cache:    cache,
		prefs:    prefs,
		metrics:  metrics,
		validate: validator.New(),
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Browse produces one page of the exam list, newest exams first.
func (s *ExamService) Browse(ctx context.Context, userID string, filter models.ExamFilter) (*ExamPage, error) {
	pref := s.prefs.Browse(ctx, userID, FeatureExamsBrowser)
	if filter.Window.PageSize == 0 {
		filter.Window.PageSize = pref.PageSize
	}

	signature := examFilterSignature(filter)
	reset := filter.Window.Page > 1 && browseStateChanged(pref, signature, filter.Window.PageSize)
	if reset {
		filter.Window.Page = 1
	}

	set, err := s.workingSet(ctx)
	if err != nil {
		return nil, err
	}

	filtered := examStack(filter).Apply(set.Records)
	ordered := browse.Order[models.Exam]{
		Primary: browse.DescInt64(func(e models.Exam) int64 { return e.CreatedAt.Unix() }),
		TieID:   func(e models.Exam) string { return e.ID },
	}.Sort(filtered)
	page := browse.Paginate(ordered, filter.Window)

	s.prefs.RememberBrowse(ctx, userID, FeatureExamsBrowser, models.BrowsePreference{
		Filters:  signature,
		PageSize: filter.Window.PageSize,
	})

	return &ExamPage{
		Items:      page.Items,
		Pagination: page.Pagination(),
		Facets:     set.Facets,
		Stale:      set.Stale,
		StaleError: set.StaleError,
		PageReset:  reset,
	}, nil
}

// Create registers a new exam on the exam platform.
func (s *ExamService) Create(ctx context.Context, payload upstream.CreateExamPayload) (*models.Exam, error) {
	if err := s.validate.Struct(payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exam payload")
	}
	exam, err := s.fetcher.CreateExam(ctx, payload)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, "browse:exams:*")
	return exam, nil
}

// SetStatus moves an exam through its lifecycle. Only draft/published
// transitions go through here; archiving has its own endpoint.
func (s *ExamService) SetStatus(ctx context.Context, id string, status models.ExamStatus) error {
	switch status {
	case models.ExamStatusDraft, models.ExamStatusPublished:
	default:
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("cannot set status %q directly", status))
	}
	if err := s.fetcher.SetExamStatus(ctx, id, string(status)); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, "browse:exams:*")
	return nil
}

// Archive retires an exam. Archived exams keep their results browsable.
func (s *ExamService) Archive(ctx context.Context, id string) error {
	if err := s.fetcher.ArchiveExam(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, "browse:exams:*")
	return nil
}

func (s *ExamService) workingSet(ctx context.Context) (*upstream.ExamSet, error) {
	const key = "browse:exams:all"

	var cached upstream.ExamSet
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	start := time.Now()
	set, err := s.fetcher.FetchExams(ctx, upstream.ExamQuery{})
	s.metrics.ObserveUpstreamFetch("exams", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if set.Stale {
		s.metrics.RecordStaleServed()
		s.logger.Warn("serving stale exam set", zap.String("cause", set.StaleError))
	} else {
		s.cache.Set(ctx, key, set, s.cacheTTL)
	}
	return set, nil
}

func examStack(filter models.ExamFilter) *browse.Stack[models.Exam] {
	stack := browse.NewStack[models.Exam]()
	stack.AddIf(filter.Status != "", func(e models.Exam) bool {
		return browse.EqualFold(string(e.Status), filter.Status)
	})
	stack.AddIf(filter.Subject != "", func(e models.Exam) bool {
		return browse.EqualFold(e.Subject, filter.Subject)
	})
	stack.AddIf(filter.Search != "", func(e models.Exam) bool {
		return browse.ContainsFold(e.Title, filter.Search)
	})
	return stack
}

func examFilterSignature(f models.ExamFilter) map[string]string {
	sig := map[string]string{}
	putIf(sig, "status", f.Status)
	putIf(sig, "subject", f.Subject)
	putIf(sig, "search", f.Search)
	return sig
}
