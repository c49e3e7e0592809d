// Package engine orchestrates the signal translation: every control
// tick it samples the hardware input, arbitrates between operator and
// hardware intent, maps the effective level to a duty cycle and emits
// it to the pwm output, and advances the rpm estimate.
package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fanbridge/fanbridge/internal/arbiter"
	"github.com/fanbridge/fanbridge/internal/configuration"
	"github.com/fanbridge/fanbridge/internal/hwio"
	"github.com/fanbridge/fanbridge/internal/mapping"
	"github.com/fanbridge/fanbridge/internal/sampler"
	"github.com/fanbridge/fanbridge/internal/tacho"
	"github.com/fanbridge/fanbridge/internal/ui"
	"github.com/fanbridge/fanbridge/internal/util"
	"github.com/oklog/run"
)

// Status is a read-only snapshot of the engine state for diagnostics.
type Status struct {
	Mode              string  `json:"mode"`
	Level             int     `json:"level"`
	LevelName         string  `json:"levelName"`
	NormalizedPercent float64 `json:"normalizedPercent"`
	Duty              int     `json:"duty"`
	Rpm               float64 `json:"rpm"`
	RpmAvg            float64 `json:"rpmAvg"`
	Testing           bool    `json:"testing"`
}

// Reporter receives periodic status snapshots at the report cadence.
type Reporter interface {
	Report(status Status)
}

type commandKind int

const (
	commandSpeed commandKind = iota
	commandAuto
	commandTest
)

type command struct {
	kind  commandKind
	level int
}

// testSweep steps through every speed level, one dwell at a time.
type testSweep struct {
	level       int
	nextAdvance time.Time
	wasManual   bool
	savedLevel  int
}

type TranslatorEngine struct {
	sampler   sampler.Sampler
	arbiter   *arbiter.ModeArbiter
	mapper    *mapping.SpeedMapper
	estimator *tacho.RpmEstimator
	pwm       hwio.PwmOutput

	tickRate   time.Duration
	reportRate time.Duration
	testDwell  time.Duration

	// commands delivers operator intent into the control loop so all
	// engine state stays owned by a single goroutine
	commands  chan command
	reporters []Reporter

	appliedLevel int
	currentDuty  int
	lastRawLevel int
	emitCount    atomic.Uint64

	test *testSweep

	statusMu sync.RWMutex
	status   Status
}

func NewTranslatorEngine(
	smp sampler.Sampler,
	arb *arbiter.ModeArbiter,
	mapper *mapping.SpeedMapper,
	estimator *tacho.RpmEstimator,
	pwm hwio.PwmOutput,
	config configuration.Configuration,
) *TranslatorEngine {
	return &TranslatorEngine{
		sampler:      smp,
		arbiter:      arb,
		mapper:       mapper,
		estimator:    estimator,
		pwm:          pwm,
		tickRate:     config.TickRate,
		reportRate:   config.ReportRate,
		testDwell:    config.TestDwell,
		commands:     make(chan command, 16),
		appliedLevel: -1,
		// seeded so readers before the first tick see a valid snapshot
		status: Status{
			Mode:      arb.Mode().String(),
			Level:     arb.EffectiveLevel(),
			LevelName: mapper.LevelName(arb.EffectiveLevel()),
		},
	}
}

func (e *TranslatorEngine) AddReporter(reporter Reporter) {
	e.reporters = append(e.reporters, reporter)
}

// Run drives the engine until the context is cancelled: the control
// loop at the tick rate and the diagnostics reporter at the slower
// report cadence.
func (e *TranslatorEngine) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g run.Group
	{
		// === control loop
		g.Add(func() error {
			tick := time.Tick(e.tickRate)
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-tick:
					err := e.Tick(time.Now())
					if err != nil {
						ui.Error("Error in control loop: %v", err)
					}
				}
			}
		}, func(err error) {
			cancel()
		})
	}
	{
		// === diagnostics reporting
		g.Add(func() error {
			tick := time.Tick(e.reportRate)
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-tick:
					e.report()
				}
			}
		}, func(err error) {
			cancel()
		})
	}

	return g.Run()
}

// Tick executes a single control cycle at the given monotonic time.
// Exported with an explicit timestamp so behavior is deterministic in
// tests without real hardware delays.
func (e *TranslatorEngine) Tick(now time.Time) error {
	e.drainCommands(now)
	e.advanceTest(now)

	raw := e.lastRawLevel
	if e.arbiter.Mode() == arbiter.ModeAuto {
		level, err := e.sampler.Sample()
		if err != nil {
			// keep the previous raw level, a transient read failure
			// must not drop the fan to off
			ui.Warning("Unable to sample input: %v", err)
		} else {
			raw = level
			e.lastRawLevel = level
		}
	}

	effective := e.arbiter.Arbitrate(raw, now)

	if effective != e.appliedLevel {
		duty := e.mapper.ToDuty(effective)
		err := e.pwm.SetDutyCycle(duty)
		if err != nil {
			// appliedLevel is left unchanged so the emission is
			// retried on the next tick
			return err
		}
		e.appliedLevel = effective
		e.currentDuty = duty
		e.emitCount.Add(1)
		ui.Debug("Effective level changed to %d (%s), emitting duty %d",
			effective, e.mapper.LevelName(effective), duty)
	}

	e.estimator.Tick(now)
	e.updateStatus()
	return nil
}

// SetSpeed freezes the given level on the next tick. The level is
// clamped to the valid range, the engine enters manual mode.
func (e *TranslatorEngine) SetSpeed(level int) error {
	level = util.Coerce(level, 0, e.mapper.MaxLevel())
	return e.push(command{kind: commandSpeed, level: level})
}

// SetAuto resumes following the hardware input on the next tick.
func (e *TranslatorEngine) SetAuto() error {
	return e.push(command{kind: commandAuto})
}

// StartTest begins a sweep through all speed levels on the next tick.
func (e *TranslatorEngine) StartTest() error {
	return e.push(command{kind: commandTest})
}

func (e *TranslatorEngine) push(cmd command) error {
	select {
	case e.commands <- cmd:
		return nil
	default:
		return errors.New("command queue is full")
	}
}

func (e *TranslatorEngine) drainCommands(now time.Time) {
	for {
		select {
		case cmd := <-e.commands:
			switch cmd.kind {
			case commandSpeed:
				e.test = nil
				e.arbiter.SetManual(cmd.level, now)
				ui.Info("Manual speed command: level %d (%s)", cmd.level, e.mapper.LevelName(cmd.level))
			case commandAuto:
				e.test = nil
				e.arbiter.SetAuto()
				ui.Info("Returning to automatic input control")
			case commandTest:
				if e.test == nil {
					e.test = &testSweep{
						level:       0,
						nextAdvance: now,
						wasManual:   e.arbiter.Mode() == arbiter.ModeManual,
						savedLevel:  e.arbiter.EffectiveLevel(),
					}
					ui.Info("Starting speed level self test")
				}
			}
		default:
			return
		}
	}
}

func (e *TranslatorEngine) advanceTest(now time.Time) {
	if e.test == nil || now.Before(e.test.nextAdvance) {
		return
	}

	if e.test.level > e.mapper.MaxLevel() {
		// sweep finished, restore the previous intent
		if e.test.wasManual {
			e.arbiter.SetManual(e.test.savedLevel, now)
		} else {
			e.arbiter.SetAuto()
		}
		e.test = nil
		ui.Info("Speed level self test finished")
		return
	}

	e.arbiter.SetManual(e.test.level, now)
	e.test.level++
	e.test.nextAdvance = now.Add(e.testDwell)
}

func (e *TranslatorEngine) updateStatus() {
	level := e.arbiter.EffectiveLevel()
	status := Status{
		Mode:              e.arbiter.Mode().String(),
		Level:             level,
		LevelName:         e.mapper.LevelName(level),
		NormalizedPercent: e.mapper.ToNormalized(level) * 100,
		Duty:              e.currentDuty,
		Rpm:               e.estimator.Rpm(),
		RpmAvg:            e.estimator.RpmAvg(),
		Testing:           e.test != nil,
	}

	e.statusMu.Lock()
	e.status = status
	e.statusMu.Unlock()
}

// Status returns the snapshot taken at the end of the last tick.
func (e *TranslatorEngine) Status() Status {
	e.statusMu.RLock()
	defer e.statusMu.RUnlock()
	return e.status
}

// EmitCount returns the number of duty cycle emissions since startup.
func (e *TranslatorEngine) EmitCount() uint64 {
	return e.emitCount.Load()
}

func (e *TranslatorEngine) report() {
	status := e.Status()
	for _, reporter := range e.reporters {
		reporter.Report(status)
	}
}
