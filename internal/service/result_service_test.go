package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junyours/occ-admission-sub001/internal/classify"
	"github.com/junyours/occ-admission-sub001/internal/models"
	"github.com/junyours/occ-admission-sub001/internal/upstream"
)

type fakeResultFetcher struct {
	set        *upstream.ResultSet
	err        error
	fetchCalls int
	deleted    []string
}

func (f *fakeResultFetcher) FetchResults(context.Context, upstream.ResultQuery) (*upstream.ResultSet, error) {
	f.fetchCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.set, nil
}

func (f *fakeResultFetcher) DeleteResult(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func testThresholds() classify.Thresholds {
	return classify.Thresholds{
		PassMark:         75,
		SlowSeconds:      60,
		VerySlowSeconds:  90,
		ModerateWrongPct: 30,
		HardWrongPct:     60,
	}
}

func sampleResults() []models.ExamResult {
	finished := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return []models.ExamResult{
		{ID: "r1", ExamRef: "e1", ExamineeName: "Ana Reyes", ExamineeNumber: "2026-001", Score: 82, DurationSeconds: 1800, FinishedAt: finished},
		{ID: "r2", ExamRef: "e1", ExamineeName: "Ben Cruz", ExamineeNumber: "2026-002", Score: 68, DurationSeconds: 2400, FinishedAt: finished},
		{ID: "r3", ExamRef: "e1", ExamineeName: "Carla Santos", ExamineeNumber: "2026-003", Score: 82, DurationSeconds: 1500, FinishedAt: finished},
		{ID: "r4", ExamRef: "e1", ExamineeName: "Dan Reyes", ExamineeNumber: "2026-004", Score: 75, DurationSeconds: 2000, FinishedAt: finished},
	}
}

func newResultService(fetcher *fakeResultFetcher, cacheRepo *fakeCacheRepo, store *fakePrefStore) *ResultService {
	return NewResultService(fetcher, newTestCache(cacheRepo), newTestPrefs(store), nil, testThresholds(), time.Minute, nil)
}

func TestResultBrowseSortsByScoreDescThenID(t *testing.T) {
	fetcher := &fakeResultFetcher{set: &upstream.ResultSet{Records: sampleResults(), Total: 4}}
	svc := newResultService(fetcher, newFakeCacheRepo(), newFakePrefStore())

	page, err := svc.Browse(context.Background(), "u1", models.ResultFilter{
		Window: models.PageWindow{Page: 1, PageSize: 10},
	})
	require.NoError(t, err)

	ids := make([]string, 0, len(page.Items))
	for _, r := range page.Items {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"r1", "r3", "r4", "r2"}, ids)
	assert.Equal(t, 4, page.Pagination.TotalCount)
}

func TestResultBrowseDecoratesOutcome(t *testing.T) {
	fetcher := &fakeResultFetcher{set: &upstream.ResultSet{Records: sampleResults(), Total: 4}}
	svc := newResultService(fetcher, newFakeCacheRepo(), newFakePrefStore())

	page, err := svc.Browse(context.Background(), "u1", models.ResultFilter{
		Window: models.PageWindow{Page: 1, PageSize: 10},
	})
	require.NoError(t, err)

	byID := map[string]bool{}
	for _, r := range page.Items {
		byID[r.ID] = r.Passed
	}
	assert.True(t, byID["r1"])
	assert.True(t, byID["r4"], "pass mark itself passes")
	assert.False(t, byID["r2"])
}

func TestResultBrowseOutcomeFilter(t *testing.T) {
	fetcher := &fakeResultFetcher{set: &upstream.ResultSet{Records: sampleResults(), Total: 4}}
	svc := newResultService(fetcher, newFakeCacheRepo(), newFakePrefStore())

	page, err := svc.Browse(context.Background(), "u1", models.ResultFilter{
		Outcome: "failed",
		Window:  models.PageWindow{Page: 1, PageSize: 10},
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "r2", page.Items[0].ID)
}

func TestResultBrowseSearchMatchesNameAndNumber(t *testing.T) {
	fetcher := &fakeResultFetcher{set: &upstream.ResultSet{Records: sampleResults(), Total: 4}}
	svc := newResultService(fetcher, newFakeCacheRepo(), newFakePrefStore())

	page, err := svc.Browse(context.Background(), "u1", models.ResultFilter{
		Search: "reyes",
		Window: models.PageWindow{Page: 1, PageSize: 10},
	})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)

	page, err = svc.Browse(context.Background(), "u1", models.ResultFilter{
		Search: "2026-003",
		Window: models.PageWindow{Page: 1, PageSize: 10},
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "r3", page.Items[0].ID)
}

func TestResultBrowseResetsPageWhenFilterChanges(t *testing.T) {
	store := newFakePrefStore()
	store.seed("u1", FeatureResultsBrowser, models.BrowsePreference{
		Filters:  map[string]string{"search": "reyes"},
		PageSize: 2,
	})
	fetcher := &fakeResultFetcher{set: &upstream.ResultSet{Records: sampleResults(), Total: 4}}
	svc := newResultService(fetcher, newFakeCacheRepo(), store)

	page, err := svc.Browse(context.Background(), "u1", models.ResultFilter{
		Search: "santos",
		Window: models.PageWindow{Page: 2, PageSize: 2},
	})
	require.NoError(t, err)
	assert.True(t, page.PageReset)
	assert.Equal(t, 1, page.Pagination.Page)
}

func TestResultBrowseKeepsPageWhenFilterUnchanged(t *testing.T) {
	store := newFakePrefStore()
	store.seed("u1", FeatureResultsBrowser, models.BrowsePreference{
		Filters:  map[string]string{},
		PageSize: 2,
	})
	fetcher := &fakeResultFetcher{set: &upstream.ResultSet{Records: sampleResults(), Total: 4}}
	svc := newResultService(fetcher, newFakeCacheRepo(), store)

	page, err := svc.Browse(context.Background(), "u1", models.ResultFilter{
		Window: models.PageWindow{Page: 2, PageSize: 2},
	})
	require.NoError(t, err)
	assert.False(t, page.PageReset)
	assert.Equal(t, 2, page.Pagination.Page)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "r4", page.Items[0].ID)
}

func TestResultBrowseWritesPreferenceThrough(t *testing.T) {
	store := newFakePrefStore()
	fetcher := &fakeResultFetcher{set: &upstream.ResultSet{Records: sampleResults(), Total: 4}}
	svc := newResultService(fetcher, newFakeCacheRepo(), store)

	_, err := svc.Browse(context.Background(), "u1", models.ResultFilter{
		Search: "reyes",
		Window: models.PageWindow{Page: 1, PageSize: 25},
	})
	require.NoError(t, err)
	require.Equal(t, 1, store.upserts)

	pref := newTestPrefs(store).Browse(context.Background(), "u1", FeatureResultsBrowser)
	assert.Equal(t, 25, pref.PageSize)
	assert.Equal(t, "reyes", pref.Filters["search"])
}

func TestResultBrowseServesFromCache(t *testing.T) {
	fetcher := &fakeResultFetcher{set: &upstream.ResultSet{Records: sampleResults(), Total: 4}}
	svc := newResultService(fetcher, newFakeCacheRepo(), newFakePrefStore())

	_, err := svc.Browse(context.Background(), "u1", models.ResultFilter{Window: models.PageWindow{Page: 1, PageSize: 10}})
	require.NoError(t, err)
	_, err = svc.Browse(context.Background(), "u1", models.ResultFilter{Window: models.PageWindow{Page: 1, PageSize: 10}})
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.fetchCalls)
}

func TestResultBrowseStaleSetNotCached(t *testing.T) {
	cacheRepo := newFakeCacheRepo()
	fetcher := &fakeResultFetcher{set: &upstream.ResultSet{
		Records:    sampleResults(),
		Total:      4,
		Stale:      true,
		StaleError: "exam platform unavailable",
	}}
	svc := newResultService(fetcher, cacheRepo, newFakePrefStore())

	page, err := svc.Browse(context.Background(), "u1", models.ResultFilter{Window: models.PageWindow{Page: 1, PageSize: 10}})
	require.NoError(t, err)
	assert.True(t, page.Stale)
	assert.Equal(t, "exam platform unavailable", page.StaleError)
	assert.Empty(t, cacheRepo.entries)
}

func TestResultBrowseFetchErrorPropagates(t *testing.T) {
	fetcher := &fakeResultFetcher{err: errPlatformDown}
	svc := newResultService(fetcher, newFakeCacheRepo(), newFakePrefStore())

	_, err := svc.Browse(context.Background(), "u1", models.ResultFilter{Window: models.PageWindow{Page: 1, PageSize: 10}})
	assert.ErrorIs(t, err, errPlatformDown)
}

func TestResultDeleteInvalidatesCache(t *testing.T) {
	cacheRepo := newFakeCacheRepo()
	fetcher := &fakeResultFetcher{set: &upstream.ResultSet{Records: sampleResults(), Total: 4}}
	svc := newResultService(fetcher, cacheRepo, newFakePrefStore())

	require.NoError(t, svc.Delete(context.Background(), "r2"))
	assert.Equal(t, []string{"r2"}, fetcher.deleted)
	assert.Contains(t, cacheRepo.deletes, "browse:results:*")
}

func TestResultFilteredSortedCoversWholeSet(t *testing.T) {
	fetcher := &fakeResultFetcher{set: &upstream.ResultSet{Records: sampleResults(), Total: 4}}
	svc := newResultService(fetcher, newFakeCacheRepo(), newFakePrefStore())

	records, set, err := svc.FilteredSorted(context.Background(), models.ResultFilter{
		Window: models.PageWindow{Page: 3, PageSize: 1},
	})
	require.NoError(t, err)
	assert.Len(t, records, 4)
	assert.False(t, set.Stale)
	assert.Equal(t, "r1", records[0].ID)
	assert.True(t, records[0].Passed)
}
