// Package arbiter decides whose intent drives the output each control
// cycle: the hardware speed selector (auto mode) or the last operator
// command (manual mode). It also debounces noisy input transitions.
package arbiter

import "time"

type Mode int

const (
	// ModeAuto follows the debounced hardware input
	ModeAuto Mode = iota
	// ModeManual freezes the level set by the last operator command
	ModeManual
)

func (m Mode) String() string {
	switch m {
	case ModeManual:
		return "manual"
	default:
		return "auto"
	}
}

type ModeArbiter struct {
	debounceInterval time.Duration

	mode           Mode
	effectiveLevel int
	manualLevel    int

	lastRawLevel int
	lastChange   time.Time

	// adoptNext accepts the first raw sample after a return to auto
	// without waiting out the debounce interval
	adoptNext bool
}

func NewModeArbiter(debounceInterval time.Duration) *ModeArbiter {
	return &ModeArbiter{
		debounceInterval: debounceInterval,
	}
}

// Arbitrate returns the effective speed level for this control cycle.
// In manual mode the raw level is ignored entirely. In auto mode a
// differing raw level is accepted only if at least the debounce
// interval has elapsed since the last accepted change, which converts
// noisy transitions into stable decisions instead of duty chatter.
func (a *ModeArbiter) Arbitrate(rawLevel int, now time.Time) int {
	a.lastRawLevel = rawLevel

	if a.mode == ModeManual {
		return a.manualLevel
	}

	if a.adoptNext {
		a.adoptNext = false
		if rawLevel != a.effectiveLevel {
			a.effectiveLevel = rawLevel
			a.lastChange = now
		}
		return a.effectiveLevel
	}

	if rawLevel != a.effectiveLevel && now.Sub(a.lastChange) >= a.debounceInterval {
		a.effectiveLevel = rawLevel
		a.lastChange = now
	}

	return a.effectiveLevel
}

// SetManual freezes the given level. Operator intent is authoritative
// and instantaneous, the debounce timer does not apply.
func (a *ModeArbiter) SetManual(level int, now time.Time) {
	a.mode = ModeManual
	a.manualLevel = level
	a.effectiveLevel = level
	a.lastChange = now
}

// SetAuto resumes following the hardware input. The first subsequent
// raw sample is adopted immediately to avoid stale behavior.
func (a *ModeArbiter) SetAuto() {
	if a.mode == ModeAuto {
		return
	}
	a.mode = ModeAuto
	a.adoptNext = true
}

func (a *ModeArbiter) Mode() Mode {
	return a.mode
}

func (a *ModeArbiter) EffectiveLevel() int {
	return a.effectiveLevel
}

func (a *ModeArbiter) LastRawLevel() int {
	return a.lastRawLevel
}
