// Package metrics holds the prometheus collectors shared by the discovery engine, the pipeline
// and the HTTP server.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "causality"

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// Verdicts of a conditional independence test.
const (
	VerdictIndependent = "independent"
	VerdictDependent   = "dependent"
	VerdictSkipped     = "skipped"
	VerdictError       = "error"
)

// Collectors groups every collector of the application.
type Collectors struct {
	// CITests counts conditional independence tests by test kind and verdict.
	CITests *prometheus.CounterVec
	// Discovery observes the duration of a full PC run by test kind.
	Discovery *prometheus.HistogramVec
	// Steps observes the computation time of pipeline steps.
	Steps *prometheus.HistogramVec
	// HTTPRequests observes HTTP request durations by route, method and status code.
	HTTPRequests *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Collectors {
	factory := promauto.With(reg)

	return &Collectors{
		CITests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "discovery",
			Name:      "ci_tests_total",
			Help:      "Conditional independence tests run by the PC algorithm.",
		}, []string{"test", "verdict"}),
		Discovery: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "discovery",
			Name:      "duration_seconds",
			Help:      "Duration of a PC run.",
			Buckets:   DefaultBuckets,
		}, []string{"test"}),
		Steps: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "step_duration_seconds",
			Help:      "Computation time of one value in a pipeline step.",
			Buckets:   DefaultBuckets,
		}, []string{"step"}),
		HTTPRequests: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   DefaultBuckets,
		}, []string{"route", "method", "code"}),
	}
}

var (
	defaultCollectors *Collectors //nolint: gochecknoglobals
	once              sync.Once   //nolint: gochecknoglobals
)

// Default returns the collectors registered on the prometheus default registerer. They are
// created on first use.
func Default() *Collectors {
	once.Do(func() {
		defaultCollectors = New(prometheus.DefaultRegisterer)
	})

	return defaultCollectors
}
