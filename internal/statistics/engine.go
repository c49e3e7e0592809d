package statistics

import (
	"github.com/fanbridge/fanbridge/internal/engine"
	"github.com/prometheus/client_golang/prometheus"
)

const engineSubsystem = "engine"

type EngineCollector struct {
	engine *engine.TranslatorEngine

	level      *prometheus.Desc
	normalized *prometheus.Desc
	duty       *prometheus.Desc
	rpm        *prometheus.Desc
	rpmAvg     *prometheus.Desc
	manualMode *prometheus.Desc
	emitCount  *prometheus.Desc
}

func NewEngineCollector(e *engine.TranslatorEngine) *EngineCollector {
	return &EngineCollector{
		engine: e,
		level: prometheus.NewDesc(prometheus.BuildFQName(namespace, engineSubsystem, "level"),
			"Currently effective speed level",
			nil, nil,
		),
		normalized: prometheus.NewDesc(prometheus.BuildFQName(namespace, engineSubsystem, "normalized_percent"),
			"Normalized speed of the effective level in percent",
			nil, nil,
		),
		duty: prometheus.NewDesc(prometheus.BuildFQName(namespace, engineSubsystem, "duty"),
			"Currently emitted duty cycle value",
			nil, nil,
		),
		rpm: prometheus.NewDesc(prometheus.BuildFQName(namespace, engineSubsystem, "rpm"),
			"Estimated fan rotation rate",
			nil, nil,
		),
		rpmAvg: prometheus.NewDesc(prometheus.BuildFQName(namespace, engineSubsystem, "rpm_avg"),
			"Estimated fan rotation rate averaged over the rolling window",
			nil, nil,
		),
		manualMode: prometheus.NewDesc(prometheus.BuildFQName(namespace, engineSubsystem, "manual_mode"),
			"1 while a manual override is active, 0 in automatic mode",
			nil, nil,
		),
		emitCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, engineSubsystem, "emit_count"),
			"Counter for duty cycle emissions to the pwm output",
			nil, nil,
		),
	}
}

func (collector *EngineCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.level
	ch <- collector.normalized
	ch <- collector.duty
	ch <- collector.rpm
	ch <- collector.rpmAvg
	ch <- collector.manualMode
	ch <- collector.emitCount
}

// Collect implements the required collect function for all prometheus collectors
func (collector *EngineCollector) Collect(ch chan<- prometheus.Metric) {
	status := collector.engine.Status()

	manual := 0.0
	if status.Mode == "manual" {
		manual = 1.0
	}

	ch <- prometheus.MustNewConstMetric(collector.level, prometheus.GaugeValue, float64(status.Level))
	ch <- prometheus.MustNewConstMetric(collector.normalized, prometheus.GaugeValue, status.NormalizedPercent)
	ch <- prometheus.MustNewConstMetric(collector.duty, prometheus.GaugeValue, float64(status.Duty))
	ch <- prometheus.MustNewConstMetric(collector.rpm, prometheus.GaugeValue, status.Rpm)
	ch <- prometheus.MustNewConstMetric(collector.rpmAvg, prometheus.GaugeValue, status.RpmAvg)
	ch <- prometheus.MustNewConstMetric(collector.manualMode, prometheus.GaugeValue, manual)
	ch <- prometheus.MustNewConstMetric(collector.emitCount, prometheus.CounterValue, float64(collector.engine.EmitCount()))
}
