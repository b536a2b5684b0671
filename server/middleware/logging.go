package middleware

import (
	"net/http"
	"time"

	"github.com/kbukum/speechkit/logger"
)

const slowRequest = 5 * time.Second

// Health checks and build queries are not logged.
var quietPaths = map[string]bool{
	"/health":  true,
	"/version": true,
}

// recorder remembers the first status written through it.
type recorder struct {
	http.ResponseWriter
	status int
}

func (rw *recorder) WriteHeader(code int) {
	if rw.status == 0 {
		rw.status = code
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *recorder) Write(b []byte) (int, error) {
	if rw.status == 0 {
		rw.status = http.StatusOK
	}
	return rw.ResponseWriter.Write(b)
}

func (rw *recorder) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the original writer to http.ResponseController.
func (rw *recorder) Unwrap() http.ResponseWriter { return rw.ResponseWriter }

func (rw *recorder) code() int {
	if rw.status == 0 {
		return http.StatusOK
	}
	return rw.status
}

// RequestLogger logs one entry per request: info below 400, warn for 4xx,
// error for 5xx. Requests slower than five seconds are flagged.
func RequestLogger(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if quietPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rw := &recorder{ResponseWriter: w}
			next.ServeHTTP(rw, r)
			elapsed := time.Since(start)

			status := rw.code()
			fields := logger.MergeWithDuration(logger.Fields(
				"method", r.Method,
				logger.FieldPath, r.URL.Path,
				"status", status,
				"content_length_bytes", r.ContentLength,
			), elapsed)
			if elapsed > slowRequest {
				fields["slow"] = true
			}

			entry := log.WithContext(r.Context())
			switch {
			case status >= http.StatusInternalServerError:
				entry.Error("Request completed", fields)
			case status >= http.StatusBadRequest:
				entry.Warn("Request completed", fields)
			default:
				entry.Info("Request completed", fields)
			}
		})
	}
}
