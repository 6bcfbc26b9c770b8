package models

import "time"

// ExamStatus enumerates the lifecycle of an exam.
type ExamStatus string

const (
	ExamStatusDraft     ExamStatus = "draft"
	ExamStatusPublished ExamStatus = "published"
	ExamStatusArchived  ExamStatus = "archived"
)

// Exam is one exam owned by the exam platform.
type Exam struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Subject       string     `json:"subject"`
	Status        ExamStatus `json:"status"`
	QuestionCount int        `json:"question_count"`
	DurationMins  int        `json:"duration_mins"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ExamFilter captures the exam list view's filter state. Empty values mean
// unconstrained.
type ExamFilter struct {
	Status  string
	Subject string
	Search  string
	Window  PageWindow
}
