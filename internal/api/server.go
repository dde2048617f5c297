// Package api configures and exposes the HTTP server of the course: HTML pages, their JSON and CSV
// exports, metrics and health checks.
package api

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/askiada/go-causality/internal/config"
	"github.com/askiada/go-causality/internal/lesson"
	"github.com/askiada/go-causality/internal/web"
	"github.com/askiada/go-causality/pkg/controller"
	"github.com/askiada/go-causality/pkg/metrics"
)

// Options holds configuration for the HTTP server and its dependencies.
// It is typically created from a config.Config via NewOptions.
type Options struct {
	// Addr is the TCP address the server listens on, e.g. ":8501".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout is the global timeout applied via http.TimeoutHandler for handling requests.
	RequestTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
}

// NewOptions constructs an Options value from the provided application configuration.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
	}
}

// Deps are the collaborators of the server.
type Deps struct {
	Book     *lesson.Book
	Renderer *web.Renderer
	Metrics  *metrics.Collectors
	// Gatherer backs the metrics endpoint, prometheus.DefaultGatherer when nil.
	Gatherer prometheus.Gatherer
}

// NewHandler builds the routed handler wrapped with the recover, metrics and logger middlewares.
func NewHandler(deps Deps, opts Options) http.Handler {
	h := &handler{book: deps.Book, renderer: deps.Renderer}

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	mux := http.NewServeMux()

	if opts.MetricsPath != "" {
		mux.Handle("GET "+opts.MetricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	mux.HandleFunc("GET /healthz", h.health)
	mux.HandleFunc("GET /{$}", h.index)
	mux.HandleFunc("GET /lessons/{slug}", h.page)
	mux.HandleFunc("GET /api/lessons", h.list)
	mux.HandleFunc("GET /api/lessons/{slug}", h.json)
	mux.HandleFunc("GET /api/lessons/{slug}/data.csv", h.csv)

	var next http.Handler = controller.WithRecover(mux)
	if deps.Metrics != nil {
		next = controller.WithMetrics(deps.Metrics, next)
	}

	return controller.WithLogger(next)
}

// NewServer wires up and returns a configured *http.Server using the provided Options.
func NewServer(deps Deps, opts Options) *http.Server {
	next := NewHandler(deps, opts)

	if opts.RequestTimeout > 0 {
		next = http.TimeoutHandler(next, opts.RequestTimeout, `{"error":"request timed out"}`)
	}

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           next,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}
}
