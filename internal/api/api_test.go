package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fanbridge/fanbridge/internal/arbiter"
	"github.com/fanbridge/fanbridge/internal/configuration"
	"github.com/fanbridge/fanbridge/internal/engine"
	"github.com/fanbridge/fanbridge/internal/hwio"
	"github.com/fanbridge/fanbridge/internal/mapping"
	"github.com/fanbridge/fanbridge/internal/sampler"
	"github.com/fanbridge/fanbridge/internal/tacho"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func createTestEngine(t *testing.T) (*engine.TranslatorEngine, *mapping.SpeedMapper, *hwio.FakePwm) {
	config := configuration.Configuration{
		TickRate:         50 * time.Millisecond,
		ReportRate:       2 * time.Second,
		DebounceInterval: 100 * time.Millisecond,
		TestDwell:        100 * time.Millisecond,
		Input: configuration.InputConfig{
			Mode: configuration.InputModeWire,
			Pins: []int{17, 27, 22},
		},
		Speeds: configuration.SpeedsConfig{
			Table:           []float64{0.0, 0.3, 0.6, 1.0},
			MinDutyFraction: 0.20,
		},
		Pwm: configuration.PwmConfig{Top: 320, PeriodNs: 40000},
		Tacho: configuration.TachoConfig{
			PulsesPerRevolution: 2,
			Window:              1 * time.Second,
			RollingWindowSize:   10,
		},
	}

	reader := hwio.NewFakeDigitalReader()
	smp, err := sampler.NewSampler(config.Input, reader, nil)
	assert.NoError(t, err)

	pwm := &hwio.FakePwm{}
	counter := tacho.NewPulseCounter()
	estimator := tacho.NewRpmEstimator(counter, config.Tacho)
	arb := arbiter.NewModeArbiter(config.DebounceInterval)
	mapper := mapping.NewSpeedMapper(config.Speeds, config.Pwm)

	return engine.NewTranslatorEngine(smp, arb, mapper, estimator, pwm, config), mapper, pwm
}

// builds the endpoint surface without the middleware stack so tests
// do not register prometheus collectors more than once
func createTestService(e *engine.TranslatorEngine, mapper *mapping.SpeedMapper) *echo.Echo {
	echoRest := echo.New()
	echoRest.GET("/alive/", isAlive)
	registerStatusEndpoints(echoRest, e)
	registerSpeedEndpoints(echoRest, e, mapper)
	registerModeEndpoints(echoRest, e)
	registerTestEndpoints(echoRest, e)
	registerConfigEndpoints(echoRest)
	return echoRest
}

func TestAliveEndpoint(t *testing.T) {
	// GIVEN
	e, mapper, _ := createTestEngine(t)
	rest := createTestService(e, mapper)

	// WHEN
	recorder := httptest.NewRecorder()
	rest.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/alive/", nil))

	// THEN
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestStatusEndpoint(t *testing.T) {
	// GIVEN
	e, mapper, _ := createTestEngine(t)
	rest := createTestService(e, mapper)
	assert.NoError(t, e.SetSpeed(2))
	assert.NoError(t, e.Tick(time.Unix(0, 0)))

	// WHEN
	recorder := httptest.NewRecorder()
	rest.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/status/", nil))

	// THEN
	assert.Equal(t, http.StatusOK, recorder.Code)

	var status engine.Status
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &status))
	assert.Equal(t, "manual", status.Mode)
	assert.Equal(t, 2, status.Level)
	assert.Equal(t, "medium", status.LevelName)
}

func TestSpeedEndpointWithName(t *testing.T) {
	// GIVEN
	e, mapper, pwm := createTestEngine(t)
	rest := createTestService(e, mapper)

	// WHEN
	recorder := httptest.NewRecorder()
	rest.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/speed/high/", nil))
	assert.NoError(t, e.Tick(time.Unix(0, 0)))

	// THEN
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 3, e.Status().Level)
	assert.Equal(t, 320, pwm.Current())
}

func TestSpeedEndpointWithNumericLevel(t *testing.T) {
	// GIVEN
	e, mapper, _ := createTestEngine(t)
	rest := createTestService(e, mapper)

	// WHEN
	recorder := httptest.NewRecorder()
	rest.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/speed/1/", nil))
	assert.NoError(t, e.Tick(time.Unix(0, 0)))

	// THEN
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 1, e.Status().Level)
}

func TestSpeedEndpointRejectsUnknownLevel(t *testing.T) {
	// GIVEN
	e, mapper, _ := createTestEngine(t)
	rest := createTestService(e, mapper)

	// WHEN
	recorder := httptest.NewRecorder()
	rest.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/speed/warp/", nil))

	// THEN
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestModeAutoEndpoint(t *testing.T) {
	// GIVEN
	e, mapper, _ := createTestEngine(t)
	rest := createTestService(e, mapper)
	assert.NoError(t, e.SetSpeed(3))
	assert.NoError(t, e.Tick(time.Unix(0, 0)))

	// WHEN
	recorder := httptest.NewRecorder()
	rest.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/mode/auto/", nil))
	assert.NoError(t, e.Tick(time.Unix(0, 0).Add(50*time.Millisecond)))

	// THEN
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "auto", e.Status().Mode)
}

func TestTestEndpointStartsSweep(t *testing.T) {
	// GIVEN
	e, mapper, _ := createTestEngine(t)
	rest := createTestService(e, mapper)

	// WHEN
	recorder := httptest.NewRecorder()
	rest.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/test/", nil))
	assert.NoError(t, e.Tick(time.Unix(0, 0)))

	// THEN
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, e.Status().Testing)
}

func TestConfigEndpoint(t *testing.T) {
	// GIVEN
	e, mapper, _ := createTestEngine(t)
	rest := createTestService(e, mapper)
	configuration.CurrentConfig = configuration.Configuration{
		DebounceInterval: 100 * time.Millisecond,
		Speeds: configuration.SpeedsConfig{
			Table:           []float64{0.0, 0.3, 0.6, 1.0},
			MinDutyFraction: 0.20,
		},
	}

	// WHEN
	recorder := httptest.NewRecorder()
	rest.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/config/", nil))

	// THEN
	assert.Equal(t, http.StatusOK, recorder.Code)

	var config configuration.Configuration
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &config))
	assert.Equal(t, 0.20, config.Speeds.MinDutyFraction)
}
