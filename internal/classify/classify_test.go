package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/junyours/occ-admission-sub001/internal/models"
)

func testThresholds() Thresholds {
	return Thresholds{
		PassMark:         75,
		SlowSeconds:      60,
		VerySlowSeconds:  90,
		ModerateWrongPct: 30,
		HardWrongPct:     60,
	}
}

func TestSpeedStrictBoundaries(t *testing.T) {
	th := testThresholds()

	assert.Equal(t, models.SpeedNormal, th.Speed(59))
	assert.Equal(t, models.SpeedNormal, th.Speed(60), "exactly the cut-off stays normal")
	assert.Equal(t, models.SpeedSlow, th.Speed(61))
	assert.Equal(t, models.SpeedSlow, th.Speed(90), "exactly the very-slow cut-off stays slow")
	assert.Equal(t, models.SpeedVerySlow, th.Speed(90.5))
}

func TestSpeedAtLiveThreshold(t *testing.T) {
	th := testThresholds()

	// Counselor raises the threshold to 80s; the 1.5x ratio moves the
	// very-slow boundary to 120s.
	assert.Equal(t, models.SpeedNormal, th.SpeedAt(80, 80))
	assert.Equal(t, models.SpeedSlow, th.SpeedAt(81, 80))
	assert.Equal(t, models.SpeedSlow, th.SpeedAt(120, 80))
	assert.Equal(t, models.SpeedVerySlow, th.SpeedAt(121, 80))

	// Non-positive override falls back to the configured cut-offs.
	assert.Equal(t, models.SpeedSlow, th.SpeedAt(61, 0))
}

func TestDifficultyStrictBoundaries(t *testing.T) {
	th := testThresholds()

	assert.Equal(t, models.DifficultyEasy, th.Difficulty(30))
	assert.Equal(t, models.DifficultyModerate, th.Difficulty(30.1))
	assert.Equal(t, models.DifficultyModerate, th.Difficulty(60))
	assert.Equal(t, models.DifficultyHard, th.Difficulty(60.1))
	assert.Equal(t, models.DifficultyEasy, th.Difficulty(0))
}

func TestPassedInclusiveMark(t *testing.T) {
	th := testThresholds()

	assert.True(t, th.Passed(75), "the pass mark itself passes")
	assert.True(t, th.Passed(100))
	assert.False(t, th.Passed(74.9))
}
