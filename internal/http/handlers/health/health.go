// Package health serves the liveness probe.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aanand-mishra/alumnos-api/internal/utils/response"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Pinger reports whether the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Status is the body of GET /api/health.
type Status struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
}

// New handles GET /api/health. The process is alive if it answers, so the
// status is always 200; database reports the result of a short ping.
func New(db Pinger, now func() time.Time) http.HandlerFunc {
	if now == nil {
		now = time.Now
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		database := "up"
		if err := db.Ping(ctx); err != nil {
			slog.Warn("health: database unreachable", slog.String("error", err.Error()))
			database = "down"
		}

		response.WriteJSON(w, http.StatusOK, Status{
			Status:    "ok",
			Timestamp: now().UTC().Format(timestampLayout),
			Database:  database,
		})
	}
}
