package middleware

import (
	"net/http"
	"time"

	"github.com/gestora-app/gestora-backend/pkg/metrics"
	"github.com/go-chi/chi/v5"
)

// Metrics records duration and outcome per route pattern.
func Metrics(commandMetrics *metrics.CommandMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			command := r.Method + " " + chi.RouteContext(r.Context()).RoutePattern()
			commandMetrics.ObserveDuration(command, time.Since(start))
			if recorder.status < http.StatusBadRequest {
				commandMetrics.IncSuccess(command)
			} else {
				commandMetrics.IncFailure(command)
			}
		})
	}
}
