package server

import (
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// requestLogger tags every response with a request ID, keeping one supplied
// by the caller, and logs the request at debug level.
func requestLogger(logger log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		m := httpsnoop.CaptureMetrics(next, w, r)
		level.Debug(logger).Log(
			"msg", "request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", m.Code,
			"bytes", m.Written,
			"duration", m.Duration,
		)
	})
}
