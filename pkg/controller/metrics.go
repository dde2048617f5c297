package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/askiada/go-causality/pkg/metrics"
)

const unmatchedRoute = "unmatched"

// WithMetrics observes the duration of every request in collectors.HTTPRequests. The route label
// is the ServeMux pattern that served the request, so next must be the mux itself or pass the
// request through unchanged.
func WithMetrics(collectors *metrics.Collectors, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = unmatchedRoute
		}

		collectors.HTTPRequests.
			WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	})
}
