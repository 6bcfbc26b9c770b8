package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junyours/occ-admission-sub001/internal/upstream"
)

type fakeCleanupSrv struct {
	previews int
	purges   int
}

func (f *fakeCleanupSrv) Preview(context.Context) (*upstream.StaleSummary, error) {
	f.previews++
	return &upstream.StaleSummary{Registrations: 3, ExamData: 40, Cutoff: time.Date(2025, 8, 29, 0, 0, 0, 0, time.UTC)}, nil
}

func (f *fakeCleanupSrv) Purge(context.Context) (*upstream.PurgeOutcome, error) {
	f.purges++
	return &upstream.PurgeOutcome{Registrations: 3, ExamData: 40}, nil
}

func TestCleanupHandlerPreview(t *testing.T) {
	srv := &fakeCleanupSrv{}
	handler := NewCleanupHandler(srv)

	c, rec := authedContext(t, http.MethodGet, "/cleanup/preview")
	handler.Preview(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	var summary upstream.StaleSummary
	require.NoError(t, json.Unmarshal(envelope.Data, &summary))
	assert.Equal(t, 3, summary.Registrations)
	assert.Equal(t, 40, summary.ExamData)
	assert.Equal(t, 1, srv.previews)
	assert.Zero(t, srv.purges)
}

func TestCleanupHandlerPurge(t *testing.T) {
	srv := &fakeCleanupSrv{}
	handler := NewCleanupHandler(srv)

	c, rec := authedContext(t, http.MethodPost, "/cleanup/purge")
	handler.Purge(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, srv.purges)
}
