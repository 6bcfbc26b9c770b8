package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junyours/occ-admission-sub001/internal/models"
	"github.com/junyours/occ-admission-sub001/internal/upstream"
)

type fakeQuestionFetcher struct {
	set        *upstream.QuestionSet
	fetchCalls int
}

func (f *fakeQuestionFetcher) FetchQuestionStats(context.Context, upstream.QuestionQuery) (*upstream.QuestionSet, error) {
	f.fetchCalls++
	return f.set, nil
}

func sampleQuestions() []models.QuestionStat {
	return []models.QuestionStat{
		{ID: "q1", ExamRef: "e1", Category: "Verbal", Attempts: 100, WrongPct: 70, AvgSeconds: 45},
		{ID: "q2", ExamRef: "e1", Category: "Math", Attempts: 100, WrongPct: 40, AvgSeconds: 65},
		{ID: "q3", ExamRef: "e1", Category: "Math", Attempts: 100, WrongPct: 40, AvgSeconds: 95},
		{ID: "q4", ExamRef: "e1", Category: "Logic", Attempts: 100, WrongPct: 10, AvgSeconds: 30},
	}
}

func newQuestionService(fetcher *fakeQuestionFetcher) *QuestionService {
	return NewQuestionService(fetcher, newTestCache(newFakeCacheRepo()), newTestPrefs(newFakePrefStore()), nil, testThresholds(), 60, time.Minute, nil)
}

func TestQuestionBrowseSortsHardestFirst(t *testing.T) {
	svc := newQuestionService(&fakeQuestionFetcher{set: &upstream.QuestionSet{Records: sampleQuestions(), Total: 4}})

	page, err := svc.Browse(context.Background(), "u1", models.QuestionFilter{
		Window: models.PageWindow{Page: 1, PageSize: 10},
	})
	require.NoError(t, err)

	ids := make([]string, 0, len(page.Items))
	for _, q := range page.Items {
		ids = append(ids, q.ID)
	}
	assert.Equal(t, []string{"q1", "q2", "q3", "q4"}, ids)
}

func TestQuestionBrowseDecoratesFromThresholds(t *testing.T) {
	svc := newQuestionService(&fakeQuestionFetcher{set: &upstream.QuestionSet{Records: sampleQuestions(), Total: 4}})

	page, err := svc.Browse(context.Background(), "u1", models.QuestionFilter{
		Window: models.PageWindow{Page: 1, PageSize: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, float64(60), page.TimeThreshold)

	byID := map[string]models.QuestionStat{}
	for _, q := range page.Items {
		byID[q.ID] = q
	}
	assert.Equal(t, models.DifficultyHard, byID["q1"].Difficulty)
	assert.Equal(t, models.DifficultyModerate, byID["q2"].Difficulty)
	assert.Equal(t, models.DifficultyEasy, byID["q4"].Difficulty)

	assert.Equal(t, models.SpeedNormal, byID["q1"].Speed)
	assert.Equal(t, models.SpeedSlow, byID["q2"].Speed)
	assert.Equal(t, models.SpeedVerySlow, byID["q3"].Speed)
}

func TestQuestionBrowseLiveThresholdReclassifies(t *testing.T) {
	svc := newQuestionService(&fakeQuestionFetcher{set: &upstream.QuestionSet{Records: sampleQuestions(), Total: 4}})

	// Lowering the cut-off to 40s makes q1 slow and q2 very slow; the
	// filter and the badge come from the same pass.
	page, err := svc.Browse(context.Background(), "u1", models.QuestionFilter{
		TimeThreshold: 40,
		Speed:         string(models.SpeedSlow),
		Window:        models.PageWindow{Page: 1, PageSize: 10},
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "q1", page.Items[0].ID)
	assert.Equal(t, models.SpeedSlow, page.Items[0].Speed)
}

func TestQuestionBrowseWrongPctRange(t *testing.T) {
	svc := newQuestionService(&fakeQuestionFetcher{set: &upstream.QuestionSet{Records: sampleQuestions(), Total: 4}})

	min, max := 40.0, 40.0
	page, err := svc.Browse(context.Background(), "u1", models.QuestionFilter{
		MinWrongPct: &min,
		MaxWrongPct: &max,
		Window:      models.PageWindow{Page: 1, PageSize: 10},
	})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
}

func TestQuestionBrowseCategoryFilter(t *testing.T) {
	svc := newQuestionService(&fakeQuestionFetcher{set: &upstream.QuestionSet{Records: sampleQuestions(), Total: 4}})

	page, err := svc.Browse(context.Background(), "u1", models.QuestionFilter{
		Category: "math",
		Window:   models.PageWindow{Page: 1, PageSize: 10},
	})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
}

func TestQuestionBrowseCachesWorkingSet(t *testing.T) {
	fetcher := &fakeQuestionFetcher{set: &upstream.QuestionSet{Records: sampleQuestions(), Total: 4}}
	svc := newQuestionService(fetcher)

	_, err := svc.Browse(context.Background(), "u1", models.QuestionFilter{Window: models.PageWindow{Page: 1, PageSize: 10}})
	require.NoError(t, err)
	_, err = svc.Browse(context.Background(), "u1", models.QuestionFilter{Window: models.PageWindow{Page: 1, PageSize: 10}})
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.fetchCalls)
}

func TestQuestionFilteredSortedIgnoresWindow(t *testing.T) {
	svc := newQuestionService(&fakeQuestionFetcher{set: &upstream.QuestionSet{Records: sampleQuestions(), Total: 4}})

	records, set, err := svc.FilteredSorted(context.Background(), models.QuestionFilter{
		Window: models.PageWindow{Page: 2, PageSize: 1},
	})
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.False(t, set.Stale)
	assert.Equal(t, "q1", records[0].ID)
	assert.Equal(t, models.SpeedNormal, records[0].Speed)
	assert.Equal(t, models.SpeedVerySlow, records[2].Speed)
	assert.Equal(t, models.DifficultyHard, records[0].Difficulty)
}
