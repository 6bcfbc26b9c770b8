package dto

// ExamListRequest captures query parameters for GET /exams.
type ExamListRequest struct {
	Status  string `form:"status" binding:"omitempty,oneof=draft published archived"`
	Subject string `form:"subject"`
	Search  string `form:"search"`
	BrowseQuery
}

// CreateExamRequest is the body for POST /exams.
type CreateExamRequest struct {
	Title         string `json:"title" binding:"required,min=3,max=200"`
	Subject       string `json:"subject" binding:"required,min=2,max=100"`
	QuestionCount int    `json:"question_count" binding:"required,gt=0"`
	DurationMins  int    `json:"duration_mins" binding:"required,gt=0"`
}

// SetExamStatusRequest is the body for PATCH /exams/:id/status.
type SetExamStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft published"`
}
