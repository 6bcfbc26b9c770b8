package upstream

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/junyours/occ-admission-sub001/internal/models"
)

// CreateExamPayload is the body for creating an exam on the platform.
type CreateExamPayload struct {
	Title         string `json:"title" validate:"required,min=3,max=200"`
	Subject       string `json:"subject" validate:"required,min=2,max=100"`
	QuestionCount int    `json:"question_count" validate:"required,gt=0"`
	DurationMins  int    `json:"duration_mins" validate:"required,gt=0"`
}

// StaleSummary counts purgeable rows older than the cutoff, without
// deleting anything.
type StaleSummary struct {
	Registrations int       `json:"registrations"`
	ExamData      int       `json:"exam_data"`
	Cutoff        time.Time `json:"cutoff"`
}

// PurgeOutcome reports what a purge actually removed.
type PurgeOutcome struct {
	Registrations int       `json:"registrations"`
	ExamData      int       `json:"exam_data"`
	Cutoff        time.Time `json:"cutoff"`
}

// Mutations never touch retained working sets on failure; on success the
// affected sets are forgotten so the next browse refetches.

// CreateExam creates a new exam and returns the platform's view of it.
func (c *Client) CreateExam(ctx context.Context, payload CreateExamPayload) (*models.Exam, error) {
	var wire struct {
		Data examWire `json:"data"`
	}
	if err := c.send(ctx, http.MethodPost, "/admin/exams", payload, &wire); err != nil {
		return nil, err
	}
	c.forget("exams:")
	exam := wire.Data.normalize()
	return &exam, nil
}

// SetExamStatus toggles an exam between draft and published.
func (c *Client) SetExamStatus(ctx context.Context, id, status string) error {
	payload := map[string]string{"status": status}
	if err := c.send(ctx, http.MethodPatch, "/admin/exams/"+url.PathEscape(id)+"/status", payload, nil); err != nil {
		return err
	}
	c.forget("exams:")
	return nil
}

// ArchiveExam moves an exam into the archive.
func (c *Client) ArchiveExam(ctx context.Context, id string) error {
	if err := c.send(ctx, http.MethodPost, "/admin/exams/"+url.PathEscape(id)+"/archive", nil, nil); err != nil {
		return err
	}
	c.forget("exams:")
	return nil
}

// DeleteResult removes a single exam result.
func (c *Client) DeleteResult(ctx context.Context, id string) error {
	if err := c.send(ctx, http.MethodDelete, "/admin/results/"+url.PathEscape(id), nil, nil); err != nil {
		return err
	}
	c.forget("results:")
	return nil
}

// CountStale asks the platform how many registrations and exam-data rows
// are older than the cutoff.
func (c *Client) CountStale(ctx context.Context, cutoff time.Time) (*StaleSummary, error) {
	query := url.Values{}
	query.Set("cutoff", cutoff.UTC().Format(time.RFC3339))

	var wire struct {
		Data StaleSummary `json:"data"`
	}
	if err := c.get(ctx, "/admin/cleanup/stale", query, &wire); err != nil {
		return nil, err
	}
	wire.Data.Cutoff = cutoff
	return &wire.Data, nil
}

// PurgeStale deletes registrations and exam data older than the cutoff.
func (c *Client) PurgeStale(ctx context.Context, cutoff time.Time) (*PurgeOutcome, error) {
	payload := map[string]string{"cutoff": cutoff.UTC().Format(time.RFC3339)}

	var wire struct {
		Data PurgeOutcome `json:"data"`
	}
	if err := c.send(ctx, http.MethodPost, "/admin/cleanup/stale", payload, &wire); err != nil {
		return nil, err
	}
	wire.Data.Cutoff = cutoff
	c.forget("results:")
	c.forget("exams:")
	return &wire.Data, nil
}
