package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/junyours/occ-admission-sub001/internal/models"
	appErrors "github.com/junyours/occ-admission-sub001/pkg/errors"
)

type fakePrefStore struct {
	rows      map[string]*models.ViewPreference
	getErr    error
	upsertErr error
	upserts   int
}

func newFakePrefStore() *fakePrefStore {
	return &fakePrefStore{rows: map[string]*models.ViewPreference{}}
}

func (f *fakePrefStore) Get(_ context.Context, userID, feature string) (*models.ViewPreference, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.rows[userID+"/"+feature], nil
}

func (f *fakePrefStore) Upsert(_ context.Context, pref *models.ViewPreference) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts++
	f.rows[pref.UserID+"/"+pref.Feature] = pref
	return nil
}

func (f *fakePrefStore) Delete(_ context.Context, userID, feature string) error {
	delete(f.rows, userID+"/"+feature)
	return nil
}

func (f *fakePrefStore) seed(userID, feature string, pref models.BrowsePreference) {
	payload, _ := json.Marshal(pref)
	f.rows[userID+"/"+feature] = &models.ViewPreference{
		UserID:    userID,
		Feature:   feature,
		Payload:   payload,
		UpdatedAt: time.Now(),
	}
}

type fakeCacheRepo struct {
	entries map[string][]byte
	deletes []string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{entries: map[string][]byte{}}
}

func (f *fakeCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := f.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = raw
	return nil
}

func (f *fakeCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	f.deletes = append(f.deletes, pattern)
	for k := range f.entries {
		f.entries[k] = nil
		delete(f.entries, k)
	}
	return nil
}

func newTestCache(repo *fakeCacheRepo) *CacheService {
	return NewCacheService(repo, nil, time.Minute, nil, true)
}

func newTestPrefs(store *fakePrefStore) *PreferenceService {
	return NewPreferenceService(store, 10, 100, nil)
}

var errPlatformDown = errors.New("exam platform unavailable")
