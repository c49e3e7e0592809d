package arbiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const debounceInterval = 100 * time.Millisecond

func TestInitialLevelIsOff(t *testing.T) {
	// GIVEN
	a := NewModeArbiter(debounceInterval)

	// THEN
	assert.Equal(t, ModeAuto, a.Mode())
	assert.Equal(t, 0, a.EffectiveLevel())
}

func TestChangedLevelAcceptedAfterDwell(t *testing.T) {
	// GIVEN
	a := NewModeArbiter(debounceInterval)
	start := time.Unix(0, 0)

	a.Arbitrate(0, start)

	// WHEN
	level := a.Arbitrate(2, start.Add(150*time.Millisecond))

	// THEN
	assert.Equal(t, 2, level)
}

func TestChangedLevelRejectedWithinDwell(t *testing.T) {
	// GIVEN
	a := NewModeArbiter(debounceInterval)
	start := time.Unix(0, 0)

	a.Arbitrate(0, start)
	a.Arbitrate(1, start.Add(150*time.Millisecond))

	// WHEN
	// another change arrives only 50ms after the last accepted one
	level := a.Arbitrate(2, start.Add(200*time.Millisecond))

	// THEN
	assert.Equal(t, 1, level)
}

func TestOscillationLimitedToOneChangePerInterval(t *testing.T) {
	// GIVEN
	a := NewModeArbiter(debounceInterval)
	start := time.Unix(0, 0)
	a.Arbitrate(0, start)

	// WHEN
	// raw input oscillates between two levels every 20ms for one second
	changes := 0
	previous := a.EffectiveLevel()
	for i := 1; i <= 50; i++ {
		raw := 1
		if i%2 == 0 {
			raw = 2
		}
		level := a.Arbitrate(raw, start.Add(time.Duration(i)*20*time.Millisecond))
		if level != previous {
			changes++
			previous = level
		}
	}

	// THEN
	// one change per 100ms window at most
	assert.LessOrEqual(t, changes, 10)
}

func TestManualCommandIsImmediate(t *testing.T) {
	// GIVEN
	a := NewModeArbiter(debounceInterval)
	start := time.Unix(0, 0)
	a.Arbitrate(2, start)

	// WHEN
	// the command arrives while the debounce timer is still running
	a.SetManual(3, start.Add(10*time.Millisecond))
	level := a.Arbitrate(1, start.Add(20*time.Millisecond))

	// THEN
	assert.Equal(t, ModeManual, a.Mode())
	assert.Equal(t, 3, level)
}

func TestManualModeIgnoresRawInput(t *testing.T) {
	// GIVEN
	a := NewModeArbiter(debounceInterval)
	start := time.Unix(0, 0)
	a.SetManual(1, start)

	// WHEN
	level := a.Arbitrate(3, start.Add(1*time.Second))

	// THEN
	assert.Equal(t, 1, level)
	assert.Equal(t, 3, a.LastRawLevel())
}

func TestAutoResumptionBypassesDebounce(t *testing.T) {
	// GIVEN
	a := NewModeArbiter(debounceInterval)
	start := time.Unix(0, 0)
	a.SetManual(1, start)

	// WHEN
	a.SetAuto()
	// the very next sample is adopted, no dwell required
	level := a.Arbitrate(2, start.Add(10*time.Millisecond))

	// THEN
	assert.Equal(t, ModeAuto, a.Mode())
	assert.Equal(t, 2, level)
}

func TestAutoResumptionAdoptsOnlyFirstSampleImmediately(t *testing.T) {
	// GIVEN
	a := NewModeArbiter(debounceInterval)
	start := time.Unix(0, 0)
	a.SetManual(1, start)
	a.SetAuto()

	a.Arbitrate(2, start.Add(10*time.Millisecond))

	// WHEN
	// the following change is debounced again
	level := a.Arbitrate(3, start.Add(20*time.Millisecond))

	// THEN
	assert.Equal(t, 2, level)
}

func TestSetAutoWhileAutoKeepsDebounce(t *testing.T) {
	// GIVEN
	a := NewModeArbiter(debounceInterval)
	start := time.Unix(0, 0)
	a.Arbitrate(0, start)
	a.Arbitrate(1, start.Add(150*time.Millisecond))

	// WHEN
	a.SetAuto()
	level := a.Arbitrate(2, start.Add(200*time.Millisecond))

	// THEN
	assert.Equal(t, 1, level)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "auto", ModeAuto.String())
	assert.Equal(t, "manual", ModeManual.String())
}
