package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/uccmake/internal/core/domain"
	"go.trai.ch/uccmake/internal/core/ports"
	"go.trai.ch/zerr"
)

const namespace = "uccmake"

var _ ports.MetricsRecorder = (*PrometheusRecorder)(nil)

// PrometheusRecorder implements ports.MetricsRecorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry      *prom.Registry
	stageDuration *prom.HistogramVec
	events        *prom.CounterVec
	flattenFiles  *prom.CounterVec
	buildOutcome  *prom.CounterVec
	diagnostics   *prom.GaugeVec
	lastBuild     *prom.GaugeVec
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	pr := &PrometheusRecorder{
		registry: reg,
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual pipeline stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		events: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "output_events_total",
			Help:      "Classified compiler and hook output lines by kind and level",
		}, []string{"kind", "level"}),
		flattenFiles: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "flatten_files_total",
			Help:      "Files visited by the flattener by result",
		}, []string{"result"}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		diagnostics: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "build_diagnostics",
			Help:      "Errors and warnings reported by the last build",
		}, []string{"severity"}),
		lastBuild: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "last_build_info",
			Help:      "Run id and outcome of the last build",
		}, []string{"run_id", "outcome"}),
	}

	reg.MustRegister(pr.stageDuration, pr.events, pr.flattenFiles, pr.buildOutcome, pr.diagnostics, pr.lastBuild)

	return pr
}

// ObserveStage implements ports.MetricsRecorder.
func (p *PrometheusRecorder) ObserveStage(stage domain.Stage, d time.Duration) {
	p.stageDuration.WithLabelValues(stage.String()).Observe(d.Seconds())
}

// ObserveEvent implements ports.MetricsRecorder.
func (p *PrometheusRecorder) ObserveEvent(ev domain.Event) {
	if ev == nil {
		return
	}
	p.events.WithLabelValues(eventKind(ev), ev.Level().String()).Inc()
}

// ObserveFlatten implements ports.MetricsRecorder.
func (p *PrometheusRecorder) ObserveFlatten(result domain.FlattenResult) {
	p.flattenFiles.WithLabelValues("flattened").Add(float64(result.FlattenedFiles))
	p.flattenFiles.WithLabelValues("failed").Add(float64(result.TotalFiles - result.FlattenedFiles))
}

// RecordOutcome implements ports.MetricsRecorder.
func (p *PrometheusRecorder) RecordOutcome(runID string, outcome domain.BuildOutcome) {
	p.buildOutcome.WithLabelValues(outcome.Kind.String()).Inc()
	p.diagnostics.WithLabelValues("error").Set(float64(outcome.ErrorCount))
	p.diagnostics.WithLabelValues("warning").Set(float64(outcome.WarningCount))
	p.lastBuild.Reset()
	p.lastBuild.WithLabelValues(runID, outcome.Kind.String()).Set(1)
}

// Export writes every registered metric to path. An empty path is a no-op.
func (p *PrometheusRecorder) Export(path string) error {
	if path == "" {
		return nil
	}
	if err := prom.WriteToTextfile(path, p.registry); err != nil {
		return zerr.With(
			zerr.With(zerr.Wrap(domain.ErrMetricsWriteFailed, "cannot export metrics"), "path", path),
			"reason", err.Error(),
		)
	}
	return nil
}
