package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"pardelta-dashboard/internal/config"
	"pardelta-dashboard/internal/directory"
)

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	DBHost   string `json:"db_host"`
	DBUser   string `json:"db_user"`
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// GetHealth reports whether the hosted database answers. Credentials are
// surfaced masked, the password not at all.
func GetHealth(log *slog.Logger, cfg config.Config, db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.health.get.GetHealth"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		resp := HealthResponse{
			Status:   "ok",
			Database: "ok",
			DBHost:   cfg.DBHost,
			DBUser:   directory.Mask(cfg.DBUser),
		}

		if err := db.Ping(ctx); err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("database unreachable")
			resp.Status = "degraded"
			resp.Database = "unreachable"
			w.WriteHeader(http.StatusServiceUnavailable)
		}

		render.JSON(w, r, resp)
	}
}
