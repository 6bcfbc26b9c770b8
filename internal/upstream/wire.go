package upstream

import (
	"time"

	"github.com/junyours/occ-admission-sub001/internal/models"
)

// The platform still serves records written by two generations of its
// schema, so several fields arrive under a legacy alias. Normalisation
// happens once here; nothing past this file ever sees an alias.

type examWire struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	LegacyTitle   string `json:"exam_title"`
	Subject       string `json:"subject"`
	Status        string `json:"status"`
	QuestionCount int    `json:"question_count"`
	DurationMins  int    `json:"duration_mins"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type examListWire struct {
	Data        []examWire   `json:"data"`
	Total       int          `json:"total"`
	LegacyTotal int          `json:"total_count"`
	Facets      facetsWire   `json:"facets"`
}

type resultWire struct {
	ID              string   `json:"id"`
	ExamRef         string   `json:"exam_ref"`
	LegacyExamRef   string   `json:"exam_id"`
	ExamineeName    string   `json:"examinee_name"`
	LegacyName      string   `json:"student_name"`
	ExamineeNumber  string   `json:"examinee_number"`
	LegacyNumber    string   `json:"student_no"`
	Score           *float64 `json:"score"`
	LegacyScore     *float64 `json:"final_score"`
	WrongCount      int      `json:"wrong_count"`
	DurationSeconds *float64 `json:"duration_seconds"`
	LegacyDuration  *float64 `json:"time_spent"`
	FinishedAt      string   `json:"finished_at"`
	LegacyFinished  string   `json:"completed_at"`
}

type resultListWire struct {
	Data        []resultWire `json:"data"`
	Total       int          `json:"total"`
	LegacyTotal int          `json:"total_count"`
	Facets      facetsWire   `json:"facets"`
}

type questionWire struct {
	ID            string   `json:"id"`
	ExamRef       string   `json:"exam_ref"`
	LegacyExamRef string   `json:"exam_id"`
	Category      string   `json:"category"`
	Attempts      int      `json:"attempts"`
	WrongCount    int      `json:"wrong_count"`
	WrongPct      *float64 `json:"wrong_pct"`
	AvgSeconds    *float64 `json:"avg_seconds"`
	LegacyAvgTime *float64 `json:"avg_time"`
}

type questionListWire struct {
	Data        []questionWire `json:"data"`
	Total       int            `json:"total"`
	LegacyTotal int            `json:"total_count"`
	Facets      facetsWire     `json:"facets"`
}

type facetsWire struct {
	ExamRefs   []string `json:"exam_refs"`
	Subjects   []string `json:"subjects"`
	Categories []string `json:"categories"`
}

func (w examListWire) normalize() *ExamSet {
	records := make([]models.Exam, 0, len(w.Data))
	for _, e := range w.Data {
		records = append(records, e.normalize())
	}
	return &ExamSet{
		Records: records,
		Total:   coalesceTotal(w.Total, w.LegacyTotal, len(records)),
		Facets:  w.Facets.normalize(),
	}
}

func (w examWire) normalize() models.Exam {
	title := w.Title
	if title == "" {
		title = w.LegacyTitle
	}
	status := models.ExamStatus(w.Status)
	if status == "" {
		status = models.ExamStatusDraft
	}
	return models.Exam{
		ID:            w.ID,
		Title:         title,
		Subject:       w.Subject,
		Status:        status,
		QuestionCount: w.QuestionCount,
		DurationMins:  w.DurationMins,
		CreatedAt:     parseWireTime(w.CreatedAt),
		UpdatedAt:     parseWireTime(w.UpdatedAt),
	}
}

func (w resultListWire) normalize() *ResultSet {
	records := make([]models.ExamResult, 0, len(w.Data))
	for _, r := range w.Data {
		records = append(records, r.normalize())
	}
	return &ResultSet{
		Records: records,
		Total:   coalesceTotal(w.Total, w.LegacyTotal, len(records)),
		Facets:  w.Facets.normalize(),
	}
}

func (w resultWire) normalize() models.ExamResult {
	examRef := w.ExamRef
	if examRef == "" {
		examRef = w.LegacyExamRef
	}
	name := w.ExamineeName
	if name == "" {
		name = w.LegacyName
	}
	number := w.ExamineeNumber
	if number == "" {
		number = w.LegacyNumber
	}
	finished := w.FinishedAt
	if finished == "" {
		finished = w.LegacyFinished
	}
	return models.ExamResult{
		ID:              w.ID,
		ExamRef:         examRef,
		ExamineeName:    name,
		ExamineeNumber:  number,
		Score:           coalesceFloat(w.Score, w.LegacyScore),
		WrongCount:      w.WrongCount,
		DurationSeconds: coalesceFloat(w.DurationSeconds, w.LegacyDuration),
		FinishedAt:      parseWireTime(finished),
	}
}

func (w questionListWire) normalize() *QuestionSet {
	records := make([]models.QuestionStat, 0, len(w.Data))
	for _, q := range w.Data {
		records = append(records, q.normalize())
	}
	return &QuestionSet{
		Records: records,
		Total:   coalesceTotal(w.Total, w.LegacyTotal, len(records)),
		Facets:  w.Facets.normalize(),
	}
}

func (w questionWire) normalize() models.QuestionStat {
	examRef := w.ExamRef
	if examRef == "" {
		examRef = w.LegacyExamRef
	}
	wrongPct := 0.0
	if w.WrongPct != nil {
		wrongPct = *w.WrongPct
	} else if w.Attempts > 0 {
		wrongPct = float64(w.WrongCount) / float64(w.Attempts) * 100
	}
	return models.QuestionStat{
		ID:         w.ID,
		ExamRef:    examRef,
		Category:   w.Category,
		Attempts:   w.Attempts,
		WrongCount: w.WrongCount,
		WrongPct:   wrongPct,
		AvgSeconds: coalesceFloat(w.AvgSeconds, w.LegacyAvgTime),
	}
}

func (w facetsWire) normalize() models.Facets {
	return models.Facets{
		ExamRefs:   w.ExamRefs,
		Subjects:   w.Subjects,
		Categories: w.Categories,
	}
}

func coalesceTotal(total, legacy, fallback int) int {
	if total > 0 {
		return total
	}
	if legacy > 0 {
		return legacy
	}
	return fallback
}

func coalesceFloat(primary, legacy *float64) float64 {
	if primary != nil {
		return *primary
	}
	if legacy != nil {
		return *legacy
	}
	return 0
}

func parseWireTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
