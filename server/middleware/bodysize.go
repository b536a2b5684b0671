package middleware

import (
	"net/http"
)

// DefaultMaxBodySize fits a few minutes of uncompressed stereo audio.
const DefaultMaxBodySize = 100 * 1024 * 1024

// BodySizeLimit rejects requests declaring more than limit bytes with 413 and
// caps streamed bodies at limit.
func BodySizeLimit(limit int64) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				_, _ = w.Write([]byte(`{"detail":"Request body too large"}`))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
