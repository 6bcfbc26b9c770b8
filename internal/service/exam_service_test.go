package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junyours/occ-admission-sub001/internal/models"
	"github.com/junyours/occ-admission-sub001/internal/upstream"
	appErrors "github.com/junyours/occ-admission-sub001/pkg/errors"
)

type fakeExamFetcher struct {
	set        *upstream.ExamSet
	err        error
	fetchCalls int
	created    []upstream.CreateExamPayload
	statuses   map[string]string
	archived   []string
}

func (f *fakeExamFetcher) FetchExams(context.Context, upstream.ExamQuery) (*upstream.ExamSet, error) {
	f.fetchCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.set, nil
}

func (f *fakeExamFetcher) CreateExam(_ context.Context, payload upstream.CreateExamPayload) (*models.Exam, error) {
	f.created = append(f.created, payload)
	return &models.Exam{ID: "e-new", Title: payload.Title, Subject: payload.Subject, Status: models.ExamStatusDraft}, nil
}

func (f *fakeExamFetcher) SetExamStatus(_ context.Context, id, status string) error {
	if f.statuses == nil {
		f.statuses = map[string]string{}
	}
	f.statuses[id] = status
	return nil
}

func (f *fakeExamFetcher) ArchiveExam(_ context.Context, id string) error {
	f.archived = append(f.archived, id)
	return nil
}

func sampleExams() []models.Exam {
	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	return []models.Exam{
		{ID: "e1", Title: "Admission Aptitude", Subject: "General", Status: models.ExamStatusPublished, CreatedAt: base},
		{ID: "e2", Title: "English Proficiency", Subject: "English", Status: models.ExamStatusDraft, CreatedAt: base.AddDate(0, 0, 5)},
		{ID: "e3", Title: "Math Placement", Subject: "Math", Status: models.ExamStatusPublished, CreatedAt: base.AddDate(0, 0, 2)},
		{ID: "e4", Title: "Legacy Screening", Subject: "General", Status: models.ExamStatusArchived, CreatedAt: base.AddDate(0, -1, 0)},
	}
}

func newExamService(fetcher *fakeExamFetcher, cacheRepo *fakeCacheRepo, store *fakePrefStore) *ExamService {
	return NewExamService(fetcher, newTestCache(cacheRepo), newTestPrefs(store), nil, time.Minute, nil)
}

func TestExamBrowseSortsNewestFirst(t *testing.T) {
	fetcher := &fakeExamFetcher{set: &upstream.ExamSet{Records: sampleExams(), Total: 4}}
	svc := newExamService(fetcher, newFakeCacheRepo(), newFakePrefStore())

	page, err := svc.Browse(context.Background(), "u1", models.ExamFilter{
		Window: models.PageWindow{Page: 1, PageSize: 10},
	})
	require.NoError(t, err)

	ids := make([]string, 0, len(page.Items))
	for _, e := range page.Items {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"e2", "e3", "e1", "e4"}, ids)
}

func TestExamBrowseFilters(t *testing.T) {
	fetcher := &fakeExamFetcher{set: &upstream.ExamSet{Records: sampleExams(), Total: 4}}
	svc := newExamService(fetcher, newFakeCacheRepo(), newFakePrefStore())

	page, err := svc.Browse(context.Background(), "u1", models.ExamFilter{
		Status: "published",
		Window: models.PageWindow{Page: 1, PageSize: 10},
	})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)

	page, err = svc.Browse(context.Background(), "u1", models.ExamFilter{
		Status:  "published",
		Subject: "math",
		Window:  models.PageWindow{Page: 1, PageSize: 10},
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "e3", page.Items[0].ID)

	page, err = svc.Browse(context.Background(), "u1", models.ExamFilter{
		Search: "placement",
		Window: models.PageWindow{Page: 1, PageSize: 10},
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "e3", page.Items[0].ID)
}

func TestExamCreateInvalidatesCache(t *testing.T) {
	cacheRepo := newFakeCacheRepo()
	fetcher := &fakeExamFetcher{set: &upstream.ExamSet{Records: sampleExams(), Total: 4}}
	svc := newExamService(fetcher, cacheRepo, newFakePrefStore())

	exam, err := svc.Create(context.Background(), upstream.CreateExamPayload{
		Title:         "New Exam",
		Subject:       "Science",
		QuestionCount: 50,
		DurationMins:  60,
	})
	require.NoError(t, err)
	assert.Equal(t, "e-new", exam.ID)
	assert.Contains(t, cacheRepo.deletes, "browse:exams:*")
}

func TestExamCreateRejectsInvalidPayload(t *testing.T) {
	fetcher := &fakeExamFetcher{set: &upstream.ExamSet{}}
	svc := newExamService(fetcher, newFakeCacheRepo(), newFakePrefStore())

	_, err := svc.Create(context.Background(), upstream.CreateExamPayload{Title: "x"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, fetcher.created)
}

func TestExamSetStatusRejectsArchiveShortcut(t *testing.T) {
	fetcher := &fakeExamFetcher{set: &upstream.ExamSet{}}
	svc := newExamService(fetcher, newFakeCacheRepo(), newFakePrefStore())

	err := svc.SetStatus(context.Background(), "e1", models.ExamStatusArchived)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Empty(t, fetcher.statuses)
}

func TestExamLifecycleMutations(t *testing.T) {
	cacheRepo := newFakeCacheRepo()
	fetcher := &fakeExamFetcher{set: &upstream.ExamSet{}}
	svc := newExamService(fetcher, cacheRepo, newFakePrefStore())

	require.NoError(t, svc.SetStatus(context.Background(), "e1", models.ExamStatusPublished))
	assert.Equal(t, "published", fetcher.statuses["e1"])

	require.NoError(t, svc.Archive(context.Background(), "e1"))
	assert.Equal(t, []string{"e1"}, fetcher.archived)
	assert.Contains(t, cacheRepo.deletes, "browse:exams:*")
}
