package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fanbridge/fanbridge/internal/api"
	"github.com/fanbridge/fanbridge/internal/arbiter"
	"github.com/fanbridge/fanbridge/internal/configuration"
	"github.com/fanbridge/fanbridge/internal/engine"
	"github.com/fanbridge/fanbridge/internal/hwio"
	"github.com/fanbridge/fanbridge/internal/mapping"
	"github.com/fanbridge/fanbridge/internal/mqtt"
	"github.com/fanbridge/fanbridge/internal/sampler"
	"github.com/fanbridge/fanbridge/internal/statistics"
	"github.com/fanbridge/fanbridge/internal/statusfile"
	"github.com/fanbridge/fanbridge/internal/tacho"
	"github.com/fanbridge/fanbridge/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RunDaemon() {
	config := configuration.CurrentConfig

	translatorEngine, cleanup := initializeEngine(config)

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		// === translation engine
		g.Add(func() error {
			err := translatorEngine.Run(ctx)
			ui.Info("Translation engine stopped.")
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Error running translation engine: %v", err)
			}
		})
	}
	{
		enabled := config.Api.Enabled
		if enabled {
			// === REST api
			mapper := mapping.NewSpeedMapper(config.Speeds, config.Pwm)
			restService := api.CreateRestService(translatorEngine, mapper)

			g.Add(func() error {
				addr := fmt.Sprintf("%s:%d", config.Api.Host, config.Api.Port)
				err := restService.Start(addr)
				if err != nil && err != http.ErrServerClosed {
					ui.Error("Cannot start REST api endpoint (%s)", err.Error())
					return err
				}
				return nil
			}, func(err error) {
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				if err := restService.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping REST api: " + err.Error())
				} else {
					ui.Info("REST api stopped.")
				}
			})
		}
	}
	{
		enabled := config.Statistics.Enabled
		if enabled {
			// === Prometheus Exporter
			port := config.Statistics.Port
			addr := fmt.Sprintf(":%d", port)
			handler := promhttp.Handler()
			mux := http.NewServeMux()
			mux.Handle("/metrics", handler)
			server := &http.Server{Addr: addr, Handler: mux}

			g.Add(func() error {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
					return err
				}
				return nil
			}, func(err error) {
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				if err := server.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping statistics server: " + err.Error())
				} else {
					ui.Info("Statistics server stopped.")
				}
			})
		}
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			<-sig
			ui.Info("Received SIGTERM signal, exiting...")
			return nil
		}, func(err error) {
			defer signal.Stop(sig)
			cancel()
		})
	}

	err := g.Run()
	// stop the fan and release the hardware before exiting
	cleanup()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ui.Info("Done.")
	os.Exit(0)
}

// initializeEngine opens the hardware interfaces and assembles the
// translation engine with its reporters. The returned cleanup closes
// all hardware handles and leaves the pwm output off.
func initializeEngine(config configuration.Configuration) (*engine.TranslatorEngine, func()) {
	var closers []func()

	var digital hwio.DigitalReader
	var analog hwio.AnalogReader
	switch config.Input.Mode {
	case configuration.InputModeWire:
		input, err := hwio.NewGpioInput(config.Input)
		if err != nil {
			ui.Fatal("Unable to open speed input lines: %v", err)
		}
		closers = append(closers, func() { _ = input.Close() })
		digital = input
	case configuration.InputModeAnalog:
		analog = hwio.NewSysfsAnalog(config.Input)
	}

	smp, err := sampler.NewSampler(config.Input, digital, analog)
	if err != nil {
		ui.Fatal("Unable to create input sampler: %v", err)
	}

	pwm, err := hwio.NewSysfsPwm(config.Pwm)
	if err != nil {
		ui.Fatal("Unable to open pwm output: %v", err)
	}
	closers = append(closers, func() { _ = pwm.Close() })

	counter := tacho.NewPulseCounter()
	edge := hwio.NewGpioEdgeSource(config.Tacho)
	err = attachTachometer(edge, counter)
	if err != nil {
		ui.Fatal("Unable to start tachometer edge source: %v", err)
	}
	closers = append(closers, func() { _ = edge.Close() })

	estimator := tacho.NewRpmEstimator(counter, config.Tacho)
	arb := arbiter.NewModeArbiter(config.DebounceInterval)
	mapper := mapping.NewSpeedMapper(config.Speeds, config.Pwm)

	translatorEngine := engine.NewTranslatorEngine(smp, arb, mapper, estimator, pwm, config)

	statistics.Register(statistics.NewEngineCollector(translatorEngine))

	if config.Mqtt.Enabled {
		publisher, err := mqtt.NewPublisher(config.Mqtt)
		if err != nil {
			ui.Fatal("Unable to connect to mqtt broker: %v", err)
		}
		closers = append(closers, publisher.Close)
		translatorEngine.AddReporter(publisher)
	}

	if config.StatusFile.Enabled {
		translatorEngine.AddReporter(statusfile.NewWriter(config.StatusFile.Path))
	}

	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	return translatorEngine, cleanup
}

// attachTachometer registers the pulse counter as the edge handler.
// The edge capability is an initialization precondition, a failure
// must abort startup instead of running with a dead rpm estimate.
func attachTachometer(edge hwio.EdgeSource, counter *tacho.PulseCounter) error {
	return edge.Start(counter.Increment)
}
