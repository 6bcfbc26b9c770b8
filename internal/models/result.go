package models

import "time"

// ExamResult is one examinee's finished attempt at an exam.
type ExamResult struct {
	ID              string    `json:"id"`
	ExamRef         string    `json:"exam_ref"`
	ExamineeName    string    `json:"examinee_name"`
	ExamineeNumber  string    `json:"examinee_number"`
	Score           float64   `json:"score"`
	WrongCount      int       `json:"wrong_count"`
	DurationSeconds float64   `json:"duration_seconds"`
	FinishedAt      time.Time `json:"finished_at"`

	// Passed is derived from Score against the configured pass mark at
	// response-build time; it is never part of the fetched payload.
	Passed bool `json:"passed"`
}

// ResultFilter captures the result browser's filter state. The date range
// and exam ref are server-side parameters; everything else is applied in
// memory. Nil/empty values mean unconstrained.
type ResultFilter struct {
	ExamRef  string
	DateFrom *time.Time
	DateTo   *time.Time

	Search   string
	MinScore *float64
	MaxScore *float64
	Outcome  string // "passed", "failed" or empty
	Window   PageWindow
}
