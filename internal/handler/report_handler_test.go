package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junyours/occ-admission-sub001/internal/models"
	"github.com/junyours/occ-admission-sub001/internal/service"
	appErrors "github.com/junyours/occ-admission-sub001/pkg/errors"
)

type fakeReportSrv struct {
	report      *service.Report
	download    *service.Download
	resolveErr  error
	lastFilter  models.ResultFilter
	lastQFilter models.QuestionFilter
	lastFormat  service.ReportFormat
}

func (f *fakeReportSrv) Render(_ context.Context, filter models.ResultFilter, format service.ReportFormat, _ string) (*service.Report, error) {
	f.lastFilter = filter
	f.lastFormat = format
	return f.report, nil
}

func (f *fakeReportSrv) RenderQuestions(_ context.Context, filter models.QuestionFilter, format service.ReportFormat, _ string) (*service.Report, error) {
	f.lastQFilter = filter
	f.lastFormat = format
	return f.report, nil
}

func (f *fakeReportSrv) ResolveDownload(string) (*service.Download, error) {
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	return f.download, nil
}

func TestReportHandlerRenderHTMLInline(t *testing.T) {
	srv := &fakeReportSrv{report: &service.Report{
		Format: service.FormatHTML,
		HTML:   []byte("<!DOCTYPE html><html><body>Report</body></html>"),
	}}
	handler := NewReportHandler(srv)

	c, rec := authedContext(t, http.MethodPost, "/reports")
	c.Request = httptest.NewRequest(http.MethodPost, "/reports",
		strings.NewReader(`{"format":"html","outcome":"failed"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	handler.Render(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Report")
	assert.Equal(t, "failed", srv.lastFilter.Outcome)
	assert.Equal(t, service.FormatHTML, srv.lastFormat)
}

func TestReportHandlerRenderCSVReturnsToken(t *testing.T) {
	srv := &fakeReportSrv{report: &service.Report{
		Format:        service.FormatCSV,
		DownloadToken: "tok",
	}}
	handler := NewReportHandler(srv)

	c, rec := authedContext(t, http.MethodPost, "/reports")
	c.Request = httptest.NewRequest(http.MethodPost, "/reports",
		strings.NewReader(`{"format":"csv"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	handler.Render(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"download_token":"tok"`)
}

func TestReportHandlerRenderRejectsFormat(t *testing.T) {
	handler := NewReportHandler(&fakeReportSrv{})

	c, rec := authedContext(t, http.MethodPost, "/reports")
	c.Request = httptest.NewRequest(http.MethodPost, "/reports",
		strings.NewReader(`{"format":"docx"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	handler.Render(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportHandlerRenderQuestions(t *testing.T) {
	srv := &fakeReportSrv{report: &service.Report{
		Format:        service.FormatCSV,
		DownloadToken: "tok",
	}}
	handler := NewReportHandler(srv)

	c, rec := authedContext(t, http.MethodPost, "/reports/questions")
	c.Request = httptest.NewRequest(http.MethodPost, "/reports/questions",
		strings.NewReader(`{"format":"csv","speed":"slow","time_threshold":40,"min_wrong_pct":"25"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	handler.RenderQuestions(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "slow", srv.lastQFilter.Speed)
	assert.Equal(t, 40.0, srv.lastQFilter.TimeThreshold)
	require.NotNil(t, srv.lastQFilter.MinWrongPct)
	assert.Equal(t, 25.0, *srv.lastQFilter.MinWrongPct)
}

func TestReportHandlerRenderQuestionsRejectsSpeed(t *testing.T) {
	handler := NewReportHandler(&fakeReportSrv{})

	c, rec := authedContext(t, http.MethodPost, "/reports/questions")
	c.Request = httptest.NewRequest(http.MethodPost, "/reports/questions",
		strings.NewReader(`{"format":"csv","speed":"glacial"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	handler.RenderQuestions(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportHandlerDownload(t *testing.T) {
	srv := &fakeReportSrv{download: &service.Download{
		File:        strings.NewReader("a,b,c"),
		Filename:    "report-x.csv",
		ContentType: "text/csv",
		Close:       func() error { return nil },
	}}
	handler := NewReportHandler(srv)

	c, rec := authedContext(t, http.MethodGet, "/reports/download?token=tok")
	handler.Download(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a,b,c", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "report-x.csv")
}

func TestReportHandlerDownloadRequiresToken(t *testing.T) {
	handler := NewReportHandler(&fakeReportSrv{})

	c, rec := authedContext(t, http.MethodGet, "/reports/download")
	handler.Download(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportHandlerDownloadInvalidToken(t *testing.T) {
	handler := NewReportHandler(&fakeReportSrv{
		resolveErr: appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token"),
	})

	c, rec := authedContext(t, http.MethodGet, "/reports/download?token=bad")
	handler.Download(c)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
