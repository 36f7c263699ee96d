// Package health serves the liveness probe used by CI/CD and orchestrators.
package health

import (
	"net/http"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Checker reports whether a dependency is unhealthy.
type Checker interface {
	HealthCheck() error
}

// CheckerFunc adapts a plain function to Checker.
type CheckerFunc func() error

func (f CheckerFunc) HealthCheck() error {
	return f()
}

// Handler returns a handler that answers 200 "OK" when every checker passes
// and 503 otherwise. With no checkers registered the probe only reports that
// the process is serving requests.
func Handler(logger log.Logger, checkers map[string]Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if !CheckHealth(logger, checkers) {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("unhealthy"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}

// CheckHealth runs every checker and logs the ones that fail.
func CheckHealth(logger log.Logger, checkers map[string]Checker) bool {
	healthy := true
	for name, c := range checkers {
		if err := c.HealthCheck(); err != nil {
			level.Error(log.With(logger, "component", "health")).Log("err", err, "checker", name)
			healthy = false
		}
	}
	return healthy
}
