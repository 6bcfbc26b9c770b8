package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junyours/occ-admission-sub001/internal/models"
)

func TestPreferenceBrowseDefaultsWhenMissing(t *testing.T) {
	svc := newTestPrefs(newFakePrefStore())

	pref := svc.Browse(context.Background(), "u1", FeatureResultsBrowser)
	assert.Equal(t, 10, pref.PageSize)
	assert.Empty(t, pref.Filters)
	assert.NotNil(t, pref.Filters)
}

func TestPreferenceBrowseDefaultsOnCorruptPayload(t *testing.T) {
	store := newFakePrefStore()
	store.rows["u1/"+FeatureResultsBrowser] = &models.ViewPreference{
		UserID:    "u1",
		Feature:   FeatureResultsBrowser,
		Payload:   []byte("{not json"),
		UpdatedAt: time.Now(),
	}
	svc := newTestPrefs(store)

	pref := svc.Browse(context.Background(), "u1", FeatureResultsBrowser)
	assert.Equal(t, 10, pref.PageSize)
	assert.Empty(t, pref.Filters)
}

func TestPreferenceBrowseDefaultsOnStoreError(t *testing.T) {
	store := newFakePrefStore()
	store.getErr = errPlatformDown
	svc := newTestPrefs(store)

	pref := svc.Browse(context.Background(), "u1", FeatureResultsBrowser)
	assert.Equal(t, 10, pref.PageSize)
}

func TestPreferenceBrowseClampsStoredPageSize(t *testing.T) {
	store := newFakePrefStore()
	store.seed("u1", FeatureResultsBrowser, models.BrowsePreference{
		Filters:  map[string]string{},
		PageSize: 5000,
	})
	svc := newTestPrefs(store)

	pref := svc.Browse(context.Background(), "u1", FeatureResultsBrowser)
	assert.Equal(t, 10, pref.PageSize)
}

func TestPreferenceSaveRoundTrip(t *testing.T) {
	store := newFakePrefStore()
	svc := newTestPrefs(store)

	err := svc.SaveBrowse(context.Background(), "u1", FeatureQuestionsBrowser, models.BrowsePreference{
		Filters:  map[string]string{"category": "Math"},
		PageSize: 25,
	})
	require.NoError(t, err)

	pref := svc.Browse(context.Background(), "u1", FeatureQuestionsBrowser)
	assert.Equal(t, 25, pref.PageSize)
	assert.Equal(t, "Math", pref.Filters["category"])
}

func TestPreferenceSaveShowAllPageSize(t *testing.T) {
	store := newFakePrefStore()
	svc := newTestPrefs(store)

	err := svc.SaveBrowse(context.Background(), "u1", FeatureResultsBrowser, models.BrowsePreference{
		PageSize: models.PageSizeAll,
	})
	require.NoError(t, err)

	pref := svc.Browse(context.Background(), "u1", FeatureResultsBrowser)
	assert.Equal(t, models.PageSizeAll, pref.PageSize)
}

func TestPreferenceSaveValidation(t *testing.T) {
	svc := newTestPrefs(newFakePrefStore())

	err := svc.SaveBrowse(context.Background(), "u1", "someone_elses_view", models.BrowsePreference{PageSize: 10})
	assert.Error(t, err)

	err = svc.SaveBrowse(context.Background(), "u1", FeatureResultsBrowser, models.BrowsePreference{PageSize: -7})
	assert.Error(t, err)

	err = svc.SaveBrowse(context.Background(), "u1", FeatureResultsBrowser, models.BrowsePreference{PageSize: 101})
	assert.Error(t, err)
}

func TestPreferenceRememberSwallowsStoreError(t *testing.T) {
	store := newFakePrefStore()
	store.upsertErr = errPlatformDown
	svc := newTestPrefs(store)

	svc.RememberBrowse(context.Background(), "u1", FeatureResultsBrowser, models.BrowsePreference{PageSize: 10})
}

func TestPreferenceReset(t *testing.T) {
	store := newFakePrefStore()
	store.seed("u1", FeatureResultsBrowser, models.BrowsePreference{PageSize: 50})
	svc := newTestPrefs(store)

	require.NoError(t, svc.Reset(context.Background(), "u1", FeatureResultsBrowser))
	pref := svc.Browse(context.Background(), "u1", FeatureResultsBrowser)
	assert.Equal(t, 10, pref.PageSize)
}
