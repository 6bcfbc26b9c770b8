package dto

// RenderReportRequest is the body for POST /reports.
type RenderReportRequest struct {
	Format   string `json:"format" binding:"required,oneof=html csv pdf"`
	Title    string `json:"title" binding:"omitempty,max=200"`
	ExamRef  string `json:"exam_ref"`
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
	Search   string `json:"search"`
	MinScore string `json:"min_score"`
	MaxScore string `json:"max_score"`
	Outcome  string `json:"outcome" binding:"omitempty,oneof=passed failed"`
}

// RenderQuestionReportRequest is the body for POST /reports/questions.
type RenderQuestionReportRequest struct {
	Format        string  `json:"format" binding:"required,oneof=html csv pdf"`
	Title         string  `json:"title" binding:"omitempty,max=200"`
	ExamRef       string  `json:"exam_ref"`
	MinAttempts   int     `json:"min_attempts" binding:"omitempty,min=0"`
	Category      string  `json:"category"`
	Search        string  `json:"search"`
	MinWrongPct   string  `json:"min_wrong_pct"`
	MaxWrongPct   string  `json:"max_wrong_pct"`
	Speed         string  `json:"speed" binding:"omitempty,oneof=normal slow very_slow"`
	Difficulty    string  `json:"difficulty" binding:"omitempty,oneof=easy moderate hard"`
	TimeThreshold float64 `json:"time_threshold" binding:"omitempty,gt=0"`
}

// SavePreferenceRequest is the body for PUT /preferences/:feature.
type SavePreferenceRequest struct {
	Filters  map[string]string `json:"filters"`
	PageSize int               `json:"page_size" binding:"required"`
}
