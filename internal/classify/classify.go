// Package classify is the single source of truth for every
// threshold-derived category in the gateway. Filter predicates and response
// decoration both call through here so a record can never be filtered under
// one classification and displayed under another.
package classify

import (
	"github.com/junyours/occ-admission-sub001/internal/models"
	"github.com/junyours/occ-admission-sub001/pkg/config"
)

// Thresholds carries the guidance-office cut-offs used for classification.
type Thresholds struct {
	PassMark         float64
	SlowSeconds      float64
	VerySlowSeconds  float64
	ModerateWrongPct float64
	HardWrongPct     float64
}

// FromConfig copies the configured cut-offs.
func FromConfig(cfg config.ThresholdsConfig) Thresholds {
	return Thresholds{
		PassMark:         cfg.PassMark,
		SlowSeconds:      cfg.SlowSeconds,
		VerySlowSeconds:  cfg.VerySlowSeconds,
		ModerateWrongPct: cfg.ModerateWrongPct,
		HardWrongPct:     cfg.HardWrongPct,
	}
}

// Speed buckets an average answer time. Boundaries are strict: exactly the
// cut-off is still the lower bucket (60s with a 60s cut-off is normal).
func Speed(avgSeconds, slowCutoff, verySlowCutoff float64) models.SpeedClass {
	switch {
	case avgSeconds > verySlowCutoff:
		return models.SpeedVerySlow
	case avgSeconds > slowCutoff:
		return models.SpeedSlow
	default:
		return models.SpeedNormal
	}
}

// Speed applies the configured cut-offs.
func (t Thresholds) Speed(avgSeconds float64) models.SpeedClass {
	return Speed(avgSeconds, t.SlowSeconds, t.VerySlowSeconds)
}

// SpeedAt classifies against a caller-supplied slow cut-off, keeping the
// configured ratio between the slow and very-slow boundaries. Used when the
// counselor adjusts the time threshold live; the classification is
// recomputed from the current threshold on every pass.
func (t Thresholds) SpeedAt(avgSeconds, slowCutoff float64) models.SpeedClass {
	if slowCutoff <= 0 {
		return t.Speed(avgSeconds)
	}
	ratio := 1.5
	if t.SlowSeconds > 0 {
		ratio = t.VerySlowSeconds / t.SlowSeconds
	}
	return Speed(avgSeconds, slowCutoff, slowCutoff*ratio)
}

// Difficulty buckets a wrong-percentage. Strict boundaries: exactly the
// moderate cut-off is still easy.
func (t Thresholds) Difficulty(wrongPct float64) models.DifficultyTier {
	switch {
	case wrongPct > t.HardWrongPct:
		return models.DifficultyHard
	case wrongPct > t.ModerateWrongPct:
		return models.DifficultyModerate
	default:
		return models.DifficultyEasy
	}
}

// Passed reports whether a score meets the pass mark. The pass mark itself
// passes.
func (t Thresholds) Passed(score float64) bool {
	return score >= t.PassMark
}
