package dto

// ResultListRequest captures query parameters for GET /results.
type ResultListRequest struct {
	ExamRef  string `form:"exam_ref"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Search   string `form:"search"`
	MinScore string `form:"min_score"`
	MaxScore string `form:"max_score"`
	Outcome  string `form:"outcome" binding:"omitempty,oneof=passed failed"`
	BrowseQuery
}

// QuestionListRequest captures query parameters for GET /questions.
type QuestionListRequest struct {
	ExamRef       string  `form:"exam_ref"`
	MinAttempts   int     `form:"min_attempts" binding:"omitempty,gte=0"`
	Category      string  `form:"category"`
	Search        string  `form:"search"`
	MinWrongPct   string  `form:"min_wrong_pct"`
	MaxWrongPct   string  `form:"max_wrong_pct"`
	Speed         string  `form:"speed" binding:"omitempty,oneof=normal slow very_slow"`
	Difficulty    string  `form:"difficulty" binding:"omitempty,oneof=easy moderate hard"`
	TimeThreshold float64 `form:"time_threshold" binding:"omitempty,gt=0"`
	BrowseQuery
}
