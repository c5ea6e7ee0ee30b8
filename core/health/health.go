package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/weftlabs/weft/core/handler"
	"github.com/weftlabs/weft/pkg/logger"
)

// Check verifies a single service dependency, e.g. a database ping.
type Check func(ctx context.Context) error

// Liveness reports that the process is running. Always 200 with "ALIVE";
// no dependency checks.
func Liveness[C handler.Context](C) handler.Response {
	return text(http.StatusOK, "ALIVE")
}

// Ping returns 204 without a body. Suited to high-frequency probes.
func Ping[C handler.Context](C) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusNoContent)
		return nil
	}
}

// Readiness runs every check in order and reports 200 "READY" when all pass.
// The first failure is logged and the probe responds 503.
func Readiness[C handler.Context](log *slog.Logger, checks ...Check) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		for _, check := range checks {
			if err := check(ctx); err != nil {
				if log != nil {
					log.ErrorContext(ctx, "readiness check failed", logger.Error(err))
				}
				return text(http.StatusServiceUnavailable, "NOT READY")
			}
		}
		return text(http.StatusOK, "READY")
	}
}

func text(status int, body string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		_, err := w.Write([]byte(body))
		return err
	}
}
