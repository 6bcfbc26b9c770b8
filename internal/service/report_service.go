package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/junyours/occ-admission-sub001/internal/models"
	appErrors "github.com/junyours/occ-admission-sub001/pkg/errors"
	"github.com/junyours/occ-admission-sub001/pkg/export"
	"github.com/junyours/occ-admission-sub001/pkg/storage"
)

// ReportFormat enumerates the renderable report outputs.
type ReportFormat string

const (
	FormatHTML ReportFormat = "html"
	FormatCSV  ReportFormat = "csv"
	FormatPDF  ReportFormat = "pdf"
)

// Report is a rendered report. HTML reports carry their content inline;
// CSV and PDF reports are written to storage and referenced by a signed
// download token.
type Report struct {
	ID          string       `json:"id"`
	Format      ReportFormat `json:"format"`
	Title       string       `json:"title"`
	RecordCount int          `json:"record_count"`
	Stale       bool         `json:"stale"`
	GeneratedAt time.Time    `json:"generated_at"`

	HTML []byte `json:"-"`

	DownloadToken string    `json:"download_token,omitempty"`
	ExpiresAt     time.Time `json:"expires_at,omitempty"`
}

// Download is an opened stored report ready to stream.
type Download struct {
	File        io.Reader
	Filename    string
	ContentType string
	Close       func() error
}

// ReportService renders filtered result and question collections into
// printable and downloadable reports. It reuses the browsers' filter and
// sort paths so a report always matches the on-screen collection.
type ReportService struct {
	results   *ResultService
	questions *QuestionService
	html      *export.HTMLExporter
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	store     *storage.LocalStorage
	signer    *storage.SignedURLSigner
	logger    *zap.Logger
}

// NewReportService constructs the service.
func NewReportService(results *ResultService, questions *QuestionService, store *storage.LocalStorage, signer *storage.SignedURLSigner, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		results:   results,
		questions: questions,
		html:      export.NewHTMLExporter(),
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		store:     store,
		signer:    signer,
		logger:    logger,
	}
}

// Render builds a report over the filtered, ordered result collection. The
// page window is ignored: a report always covers the whole filtered set.
func (s *ReportService) Render(ctx context.Context, filter models.ResultFilter, format ReportFormat, title string) (*Report, error) {
	filter.Window = models.PageWindow{Page: 1, PageSize: models.PageSizeAll}
	records, set, err := s.results.FilteredSorted(ctx, filter)
	if err != nil {
		return nil, err
	}

	if title == "" {
		title = "Exam Result Report"
	}
	subtitle := reportSubtitle(filter, len(records))
	return s.finish(format, title, subtitle, resultDataset(records), len(records), set.Stale)
}

// RenderQuestions builds a question analysis report over the filtered,
// ordered question statistics. The page window is ignored.
func (s *ReportService) RenderQuestions(ctx context.Context, filter models.QuestionFilter, format ReportFormat, title string) (*Report, error) {
	filter.Window = models.PageWindow{Page: 1, PageSize: models.PageSizeAll}
	if filter.TimeThreshold <= 0 {
		filter.TimeThreshold = s.questions.defaultThresh
	}
	records, set, err := s.questions.FilteredSorted(ctx, filter)
	if err != nil {
		return nil, err
	}

	if title == "" {
		title = "Question Analysis Report"
	}
	subtitle := questionReportSubtitle(filter, len(records))
	return s.finish(format, title, subtitle, questionDataset(records), len(records), set.Stale)
}

func (s *ReportService) finish(format ReportFormat, title, subtitle string, data export.Dataset, count int, stale bool) (*Report, error) {
	now := time.Now().UTC()
	report := &Report{
		ID:          uuid.NewString(),
		Format:      format,
		Title:       title,
		RecordCount: count,
		Stale:       stale,
		GeneratedAt: now,
	}

	switch format {
	case FormatHTML:
		body, err := s.html.Render(data, title, subtitle)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render html report")
		}
		report.HTML = body
		return report, nil

	case FormatCSV, FormatPDF:
		var body []byte
		var renderErr error
		if format == FormatCSV {
			body, renderErr = s.csv.Render(data)
		} else {
			body, renderErr = s.pdf.Render(data, title, subtitle)
		}
		if renderErr != nil {
			return nil, appErrors.Wrap(renderErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render report")
		}

		filename := fmt.Sprintf("%s-%s.%s", now.Format("20060102-150405"), report.ID, format)
		relPath, err := s.store.Save(filename, body)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "store report")
		}
		token, expires, err := s.signer.Generate(report.ID, relPath)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "sign report url")
		}
		report.DownloadToken = token
		report.ExpiresAt = expires
		s.logger.Info("report stored",
			zap.String("report_id", report.ID),
			zap.String("format", string(format)),
			zap.Int("records", count))
		return report, nil

	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported report format %q", format))
	}
}

// ResolveDownload validates a signed token and opens the stored report.
func (s *ReportService) ResolveDownload(token string) (*Download, error) {
	reportID, relPath, _, err := s.signer.Parse(token)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")
	}

	f, err := s.store.Open(relPath)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "report no longer available")
	}

	ext := filepath.Ext(relPath)
	contentType := "application/octet-stream"
	switch strings.ToLower(ext) {
	case ".csv":
		contentType = "text/csv"
	case ".pdf":
		contentType = "application/pdf"
	}

	return &Download{
		File:        f,
		Filename:    fmt.Sprintf("report-%s%s", reportID, ext),
		ContentType: contentType,
		Close:       f.Close,
	}, nil
}

func resultDataset(records []models.ExamResult) export.Dataset {
	data := export.Dataset{
		Headers: []string{"Examinee No.", "Name", "Exam", "Score", "Wrong", "Duration", "Finished", "Outcome"},
	}
	for _, r := range records {
		outcome := "Failed"
		if r.Passed {
			outcome = "Passed"
		}
		data.Rows = append(data.Rows, map[string]string{
			"Examinee No.": r.ExamineeNumber,
			"Name":         r.ExamineeName,
			"Exam":         r.ExamRef,
			"Score":        strconv.FormatFloat(r.Score, 'f', 1, 64),
			"Wrong":        strconv.Itoa(r.WrongCount),
			"Duration":     formatDuration(r.DurationSeconds),
			"Finished":     r.FinishedAt.Format("2006-01-02 15:04"),
			"Outcome":      outcome,
		})
	}
	return data
}

func questionDataset(records []models.QuestionStat) export.Dataset {
	data := export.Dataset{
		Headers: []string{"Question", "Exam", "Category", "Attempts", "Wrong %", "Avg Time", "Speed", "Difficulty"},
	}
	for _, q := range records {
		data.Rows = append(data.Rows, map[string]string{
			"Question":   q.ID,
			"Exam":       q.ExamRef,
			"Category":   q.Category,
			"Attempts":   strconv.Itoa(q.Attempts),
			"Wrong %":    strconv.FormatFloat(q.WrongPct, 'f', 1, 64),
			"Avg Time":   formatDuration(q.AvgSeconds),
			"Speed":      string(q.Speed),
			"Difficulty": string(q.Difficulty),
		})
	}
	return data
}

func reportSubtitle(filter models.ResultFilter, count int) string {
	scope := "all exams"
	if filter.ExamRef != "" {
		scope = "exam " + filter.ExamRef
	}
	if filter.DateFrom != nil || filter.DateTo != nil {
		scope += fmt.Sprintf(" (%s to %s)", reportDate(filter.DateFrom), reportDate(filter.DateTo))
	}
	return fmt.Sprintf("%s, %d records", scope, count)
}

func questionReportSubtitle(filter models.QuestionFilter, count int) string {
	scope := "all exams"
	if filter.ExamRef != "" {
		scope = "exam " + filter.ExamRef
	}
	return fmt.Sprintf("%s, threshold %ss, %d questions", scope,
		strconv.FormatFloat(filter.TimeThreshold, 'f', -1, 64), count)
}

func reportDate(t *time.Time) string {
	if t == nil {
		return "start"
	}
	return t.Format("2006-01-02")
}

func formatDuration(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second)).Round(time.Second)
	return d.String()
}

