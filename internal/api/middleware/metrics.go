package middleware

import (
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// RequestRecorder receives one observation per completed request.
type RequestRecorder interface {
	ObserveRequest(status string, duration time.Duration)
}

// NewMetricsMiddleware returns middleware that records the response status
// and latency of each request it wraps.
func NewMetricsMiddleware(recorder RequestRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			recorder.ObserveRequest(strconv.Itoa(ww.Status()), time.Since(start))
		})
	}
}
