package web

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/openboard-labs/miroview-cli/internal/logger"
)

// requestIDHeader carries the per-request id assigned by the server.
const requestIDHeader = "X-Request-ID"

// requestID assigns a fresh id to every request unless the caller supplied
// one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one verbose log line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("%s %s (%s) in %s",
			r.Method, r.URL.Path, w.Header().Get(requestIDHeader), time.Since(start))
	})
}
