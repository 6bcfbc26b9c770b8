package upstream

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/junyours/occ-admission-sub001/internal/models"
)

// ExamQuery holds the server-side parameters for the exam list.
type ExamQuery struct {
	DateFrom *time.Time
	DateTo   *time.Time
}

// ResultQuery holds the server-side parameters for the result browser.
// Everything else the UI filters on is applied in memory.
type ResultQuery struct {
	ExamRef  string
	DateFrom *time.Time
	DateTo   *time.Time
}

// QuestionQuery holds the server-side parameters for question statistics.
type QuestionQuery struct {
	ExamRef     string
	MinAttempts int
}

// ExamSet is one fetched working set of exams.
type ExamSet struct {
	Records    []models.Exam
	Total      int
	Facets     models.Facets
	Stale      bool
	StaleError string
}

// ResultSet is one fetched working set of exam results.
type ResultSet struct {
	Records    []models.ExamResult
	Total      int
	Facets     models.Facets
	Stale      bool
	StaleError string
}

// QuestionSet is one fetched working set of question statistics.
type QuestionSet struct {
	Records    []models.QuestionStat
	Total      int
	Facets     models.Facets
	Stale      bool
	StaleError string
}

// FetchExams retrieves the exam working set. On failure the last good set
// for the same parameters is returned with Stale set; the error is only
// propagated when no previous set exists.
func (c *Client) FetchExams(ctx context.Context, q ExamQuery) (*ExamSet, error) {
	key := "exams:" + q.key()
	seq := c.beginFetch(key)

	var wire examListWire
	if err := c.get(ctx, "/admin/exams", q.values(), &wire); err != nil {
		if held, ok := c.lastGood(key); ok {
			return staleExamSet(held.(*ExamSet), err), nil
		}
		return nil, err
	}

	set := wire.normalize()
	if !c.commit(key, seq, set) {
		if held, ok := c.lastGood(key); ok {
			return held.(*ExamSet), nil
		}
	}
	return set, nil
}

// FetchResults retrieves the result working set, full and un-paginated, so
// all remaining filtering happens in memory.
func (c *Client) FetchResults(ctx context.Context, q ResultQuery) (*ResultSet, error) {
	key := "results:" + q.key()
	seq := c.beginFetch(key)

	var wire resultListWire
	if err := c.get(ctx, "/admin/results", q.values(), &wire); err != nil {
		if held, ok := c.lastGood(key); ok {
			return staleResultSet(held.(*ResultSet), err), nil
		}
		return nil, err
	}

	set := wire.normalize()
	if !c.commit(key, seq, set) {
		if held, ok := c.lastGood(key); ok {
			return held.(*ResultSet), nil
		}
	}
	return set, nil
}

// FetchQuestionStats retrieves the question statistics working set.
func (c *Client) FetchQuestionStats(ctx context.Context, q QuestionQuery) (*QuestionSet, error) {
	key := "questions:" + q.key()
	seq := c.beginFetch(key)

	var wire questionListWire
	if err := c.get(ctx, "/admin/question-stats", q.values(), &wire); err != nil {
		if held, ok := c.lastGood(key); ok {
			return staleQuestionSet(held.(*QuestionSet), err), nil
		}
		return nil, err
	}

	set := wire.normalize()
	if !c.commit(key, seq, set) {
		if held, ok := c.lastGood(key); ok {
			return held.(*QuestionSet), nil
		}
	}
	return set, nil
}

func (q ExamQuery) key() string {
	return fmt.Sprintf("%s|%s", formatDate(q.DateFrom), formatDate(q.DateTo))
}

func (q ExamQuery) values() url.Values {
	v := url.Values{}
	if q.DateFrom != nil {
		v.Set("date_from", q.DateFrom.UTC().Format(time.RFC3339))
	}
	if q.DateTo != nil {
		v.Set("date_to", q.DateTo.UTC().Format(time.RFC3339))
	}
	return v
}

func (q ResultQuery) key() string {
	return fmt.Sprintf("%s|%s|%s", q.ExamRef, formatDate(q.DateFrom), formatDate(q.DateTo))
}

func (q ResultQuery) values() url.Values {
	v := url.Values{}
	if q.ExamRef != "" {
		v.Set("exam_id", q.ExamRef)
	}
	if q.DateFrom != nil {
		v.Set("date_from", q.DateFrom.UTC().Format(time.RFC3339))
	}
	if q.DateTo != nil {
		v.Set("date_to", q.DateTo.UTC().Format(time.RFC3339))
	}
	return v
}

func (q QuestionQuery) key() string {
	return fmt.Sprintf("%s|%d", q.ExamRef, q.MinAttempts)
}

func (q QuestionQuery) values() url.Values {
	v := url.Values{}
	if q.ExamRef != "" {
		v.Set("exam_id", q.ExamRef)
	}
	if q.MinAttempts > 0 {
		v.Set("min_attempts", strconv.Itoa(q.MinAttempts))
	}
	return v
}

func staleExamSet(held *ExamSet, err error) *ExamSet {
	stale := *held
	stale.Stale = true
	stale.StaleError = err.Error()
	return &stale
}

func staleResultSet(held *ResultSet, err error) *ResultSet {
	stale := *held
	stale.Stale = true
	stale.StaleError = err.Error()
	return &stale
}

func staleQuestionSet(held *QuestionSet, err error) *QuestionSet {
	stale := *held
	stale.Stale = true
	stale.StaleError = err.Error()
	return &stale
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
