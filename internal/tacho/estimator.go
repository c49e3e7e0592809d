package tacho

import (
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/fanbridge/fanbridge/internal/configuration"
	"github.com/fanbridge/fanbridge/internal/util"
)

// RpmEstimator converts accumulated pulse counts into a rotation rate
// estimate once per window. Between windows the estimate is a step
// function, it is never interpolated.
type RpmEstimator struct {
	counter             *PulseCounter
	pulsesPerRevolution int
	window              time.Duration

	windowStart        time.Time
	countAtWindowStart uint64
	rpm                float64

	rpmWindow *rolling.PointPolicy
	samples   int
}

func NewRpmEstimator(counter *PulseCounter, config configuration.TachoConfig) *RpmEstimator {
	return &RpmEstimator{
		counter:             counter,
		pulsesPerRevolution: config.PulsesPerRevolution,
		window:              config.Window,
		rpmWindow:           util.CreateRollingWindow(config.RollingWindowSize),
	}
}

// Tick recomputes the estimate if a full window has elapsed and returns
// the current estimate. The pulse counter is read, never reset.
func (e *RpmEstimator) Tick(now time.Time) float64 {
	if e.windowStart.IsZero() {
		e.windowStart = now
		e.countAtWindowStart = e.counter.Count()
		return e.rpm
	}

	elapsed := now.Sub(e.windowStart)
	if elapsed < e.window {
		return e.rpm
	}

	count := e.counter.Count()
	delta := count - e.countAtWindowStart
	revolutions := float64(delta) / float64(e.pulsesPerRevolution)
	e.rpm = revolutions * 60 / elapsed.Seconds()
	e.rpmWindow.Append(e.rpm)
	e.samples++

	e.windowStart = now
	e.countAtWindowStart = count

	return e.rpm
}

// Rpm returns the most recent estimate.
func (e *RpmEstimator) Rpm() float64 {
	return e.rpm
}

// RpmAvg returns the estimate averaged over the rolling window.
func (e *RpmEstimator) RpmAvg() float64 {
	if e.samples == 0 {
		return 0
	}
	return util.GetWindowAvg(e.rpmWindow)
}
