package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"pardelta-dashboard/internal/service/report"
)

type PerformanceResponse struct {
	Period string                  `json:"period"`
	Start  string                  `json:"start"`
	End    string                  `json:"end"`
	Rows   []report.PerformanceRow `json:"rows"`
}

type Performer interface {
	Performance(ctx context.Context, rng report.DateRange) ([]report.PerformanceRow, error)
}

// GetPerformance serves the period-average table: one row per store in
// pc_number order, each cell band-tagged for shading.
func GetPerformance(log *slog.Logger, reporter Performer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.get.GetPerformance"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		kind, ref, ok := periodParams(log, w, r)
		if !ok {
			return
		}
		rng := report.Resolve(kind, ref)

		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		rows, err := reporter.Performance(ctx, rng)
		if err != nil {
			log.With(slog.String("error", err.Error())).Error("performance computation failed")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, PerformanceResponse{
			Period: string(kind),
			Start:  rng.Start.Format(time.DateOnly),
			End:    rng.End.Format(time.DateOnly),
			Rows:   rows,
		})
	}
}
