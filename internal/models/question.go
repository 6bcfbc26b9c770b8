package models

// SpeedClass buckets a question by its average answer time.
type SpeedClass string

const (
	SpeedNormal   SpeedClass = "normal"
	SpeedSlow     SpeedClass = "slow"
	SpeedVerySlow SpeedClass = "very_slow"
)

// DifficultyTier buckets a question by its wrong-percentage.
type DifficultyTier string

const (
	DifficultyEasy     DifficultyTier = "easy"
	DifficultyModerate DifficultyTier = "moderate"
	DifficultyHard     DifficultyTier = "hard"
)

// QuestionStat aggregates how examinees performed on one question.
type QuestionStat struct {
	ID          string  `json:"id"`
	ExamRef     string  `json:"exam_ref"`
	Category    string  `json:"category"`
	Attempts    int     `json:"attempts"`
	WrongCount  int     `json:"wrong_count"`
	WrongPct    float64 `json:"wrong_pct"`
	AvgSeconds  float64 `json:"avg_seconds"`

	// Derived on every response from the live thresholds, never cached.
	Speed      SpeedClass     `json:"speed"`
	Difficulty DifficultyTier `json:"difficulty"`
}

// QuestionFilter captures the question analysis view's filter state.
// MinAttempts is the only server-side numeric parameter; TimeThreshold
// drives the in-memory speed classification and is adjustable per request.
type QuestionFilter struct {
	ExamRef     string
	MinAttempts int

	Category      string
	Search        string
	MinWrongPct   *float64
	MaxWrongPct   *float64
	Speed         string // classify against TimeThreshold, "" = unconstrained
	Difficulty    string
	TimeThreshold float64
	Window        PageWindow
}
