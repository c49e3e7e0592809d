package tacho

import (
	"sync"
	"testing"
	"time"

	"github.com/fanbridge/fanbridge/internal/configuration"
	"github.com/stretchr/testify/assert"
)

func createEstimator(counter *PulseCounter) *RpmEstimator {
	return NewRpmEstimator(counter, configuration.TachoConfig{
		PulsesPerRevolution: 2,
		Window:              1 * time.Second,
		RollingWindowSize:   10,
	})
}

func TestPulseCounterIncrement(t *testing.T) {
	// GIVEN
	counter := NewPulseCounter()

	// WHEN
	for i := 0; i < 42; i++ {
		counter.Increment()
	}

	// THEN
	assert.Equal(t, uint64(42), counter.Count())
}

func TestPulseCounterConcurrentIncrements(t *testing.T) {
	// GIVEN
	counter := NewPulseCounter()

	// WHEN
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				counter.Increment()
			}
		}()
	}
	wg.Wait()

	// THEN
	assert.Equal(t, uint64(8000), counter.Count())
}

func TestRpmEstimateAfterOneWindow(t *testing.T) {
	// GIVEN
	counter := NewPulseCounter()
	estimator := createEstimator(counter)
	start := time.Unix(0, 0)

	estimator.Tick(start)

	// 100 edges over one window at 2 pulses per revolution
	for i := 0; i < 100; i++ {
		counter.Increment()
	}

	// WHEN
	rpm := estimator.Tick(start.Add(1 * time.Second))

	// THEN
	assert.InDelta(t, 3000.0, rpm, 0.001)
}

func TestRpmEstimateUnchangedWithinWindow(t *testing.T) {
	// GIVEN
	counter := NewPulseCounter()
	estimator := createEstimator(counter)
	start := time.Unix(0, 0)

	estimator.Tick(start)
	for i := 0; i < 100; i++ {
		counter.Increment()
	}
	estimator.Tick(start.Add(1 * time.Second))

	// WHEN
	// more pulses arrive but no full window has elapsed
	for i := 0; i < 500; i++ {
		counter.Increment()
	}
	rpm := estimator.Tick(start.Add(1500 * time.Millisecond))

	// THEN
	assert.InDelta(t, 3000.0, rpm, 0.001)
}

func TestRpmEstimateIsStepFunction(t *testing.T) {
	// GIVEN
	counter := NewPulseCounter()
	estimator := createEstimator(counter)
	start := time.Unix(0, 0)

	estimator.Tick(start)
	for i := 0; i < 100; i++ {
		counter.Increment()
	}
	estimator.Tick(start.Add(1 * time.Second))

	// WHEN
	// second window with a different edge rate
	for i := 0; i < 200; i++ {
		counter.Increment()
	}
	rpm := estimator.Tick(start.Add(2 * time.Second))

	// THEN
	assert.InDelta(t, 6000.0, rpm, 0.001)
}

func TestRpmEstimateZeroWithoutPulses(t *testing.T) {
	// GIVEN
	counter := NewPulseCounter()
	estimator := createEstimator(counter)
	start := time.Unix(0, 0)

	estimator.Tick(start)

	// WHEN
	rpm := estimator.Tick(start.Add(1 * time.Second))

	// THEN
	assert.Equal(t, 0.0, rpm)
	assert.Equal(t, 0.0, estimator.Rpm())
}

func TestRpmEstimateLateWindowUsesActualElapsedTime(t *testing.T) {
	// GIVEN
	counter := NewPulseCounter()
	estimator := createEstimator(counter)
	start := time.Unix(0, 0)

	estimator.Tick(start)
	for i := 0; i < 200; i++ {
		counter.Increment()
	}

	// WHEN
	// the tick arrives half a window late
	rpm := estimator.Tick(start.Add(2 * time.Second))

	// THEN
	assert.InDelta(t, 3000.0, rpm, 0.001)
}

func TestRpmAvgOverMultipleWindows(t *testing.T) {
	// GIVEN
	counter := NewPulseCounter()
	estimator := createEstimator(counter)
	start := time.Unix(0, 0)

	estimator.Tick(start)

	// WHEN
	// windows at 3000 and 6000 rpm
	for i := 0; i < 100; i++ {
		counter.Increment()
	}
	estimator.Tick(start.Add(1 * time.Second))
	for i := 0; i < 200; i++ {
		counter.Increment()
	}
	estimator.Tick(start.Add(2 * time.Second))

	// THEN
	assert.InDelta(t, 4500.0, estimator.RpmAvg(), 0.001)
}

func TestRpmAvgWithoutSamples(t *testing.T) {
	// GIVEN
	counter := NewPulseCounter()
	estimator := createEstimator(counter)

	// WHEN
	avg := estimator.RpmAvg()

	// THEN
	assert.Equal(t, 0.0, avg)
}
