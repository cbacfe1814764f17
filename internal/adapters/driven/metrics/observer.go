package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/custodia-labs/prrelink/internal/core/domain"
	"github.com/custodia-labs/prrelink/internal/core/ports/driven"
	"github.com/custodia-labs/prrelink/internal/logger"
)

// Ensure Observer implements the interface.
var _ driven.RunObserver = (*Observer)(nil)

// Observer implements driven.RunObserver with a private Prometheus registry.
type Observer struct {
	registry *prometheus.Registry
	textfile string

	runsTotal      *prometheus.CounterVec
	pathsUpdated   prometheus.Counter
	pathsUnmatched prometheus.Counter
	pathsMalformed prometheus.Counter
	runDuration    *prometheus.HistogramVec
	lastRun        prometheus.Gauge
	lastSuccess    prometheus.Gauge
}

// NewObserver creates an observer. When textfile is non-empty the registry
// is written there after each run.
func NewObserver(textfile string) *Observer {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Observer{
		registry: reg,
		textfile: textfile,

		runsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prrelink_runs_total",
				Help: "Total number of relinking runs",
			},
			[]string{"result", "stage"},
		),
		pathsUpdated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "prrelink_paths_updated_total",
				Help: "Total number of path references rewritten",
			},
		),
		pathsUnmatched: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "prrelink_paths_unmatched_total",
				Help: "Total number of path references with no relocation",
			},
		),
		pathsMalformed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "prrelink_paths_malformed_total",
				Help: "Total number of path references that could not be decoded",
			},
		),
		runDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "prrelink_run_duration_seconds",
				Help:    "Relinking run duration in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"result"},
		),
		lastRun: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "prrelink_last_run_timestamp_seconds",
				Help: "Unix time the last run finished",
			},
		),
		lastSuccess: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "prrelink_last_run_success",
				Help: "1 if the last run succeeded, 0 otherwise",
			},
		),
	}
}

// RunCompleted records run and refreshes the textfile.
func (o *Observer) RunCompleted(run domain.RelinkRun) {
	result := run.Result()

	o.runsTotal.WithLabelValues(result, string(run.Outcome.Stage)).Inc()
	o.pathsUpdated.Add(float64(run.Outcome.UpdatedCount))
	o.pathsUnmatched.Add(float64(run.Outcome.UnmatchedCount))
	o.pathsMalformed.Add(float64(run.Outcome.MalformedCount))
	o.runDuration.WithLabelValues(result).Observe(run.Duration().Seconds())

	finished := run.FinishedAt
	if finished.IsZero() {
		finished = time.Now()
	}
	o.lastRun.Set(float64(finished.Unix()))
	if run.Outcome.Success {
		o.lastSuccess.Set(1)
	} else {
		o.lastSuccess.Set(0)
	}

	if o.textfile == "" {
		return
	}
	if err := prometheus.WriteToTextfile(o.textfile, o.registry); err != nil {
		logger.Warn("Failed to write metrics to %s: %v", o.textfile, err)
	}
}

// Gatherer exposes the registry.
func (o *Observer) Gatherer() prometheus.Gatherer {
	return o.registry
}
