package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dentalpoint/clinic-service/internal/telemetry"
)

// MetricsMiddleware records request count and duration per route. A nil
// metrics handle disables recording without touching the chain.
func MetricsMiddleware(metrics *telemetry.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if metrics == nil {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			route := r.URL.Path
			if current := mux.CurrentRoute(r); current != nil {
				if template, err := current.GetPathTemplate(); err == nil {
					route = template
				}
			}
			durationMs := float64(time.Since(start).Microseconds()) / 1000
			metrics.RecordHTTPRequest(r.Context(), r.Method, route, recorder.status, durationMs)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
