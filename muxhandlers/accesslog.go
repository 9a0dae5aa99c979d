package muxhandlers

import (
	"net/http"
	"time"

	"github.com/vitalvas/oasamples/mux"
)

// AccessLogEntry describes one served request.
type AccessLogEntry struct {
	Method    string
	Path      string
	Status    int
	Duration  time.Duration
	RequestID string
}

// AccessLogConfig configures the access log middleware.
type AccessLogConfig struct {
	// LogFunc receives one entry per request. Required.
	LogFunc func(r *http.Request, entry AccessLogEntry)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// AccessLogMiddleware reports every request after its handler returns.
func AccessLogMiddleware(cfg AccessLogConfig) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		if cfg.LogFunc == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			cfg.LogFunc(r, AccessLogEntry{
				Method:    r.Method,
				Path:      r.URL.Path,
				Status:    rec.status,
				Duration:  time.Since(start),
				RequestID: RequestIDFromContext(r.Context()),
			})
		})
	}
}
