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

type RankingResponse struct {
	Period string                `json:"period"`
	Start  string                `json:"start"`
	End    string                `json:"end"`
	Tables []report.RankingTable `json:"tables"`
}

type Ranker interface {
	Ranking(ctx context.Context, rng report.DateRange) ([]report.RankingTable, error)
}

// GetRanking serves the four per-metric ranking tables for the selected
// period. Query: period=wtd|mtd|ytd (default wtd), date=YYYY-MM-DD
// (default today).
func GetRanking(log *slog.Logger, reporter Ranker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.get.GetRanking"

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

		tables, err := reporter.Ranking(ctx, rng)
		if err != nil {
			log.With(slog.String("error", err.Error())).Error("ranking computation failed")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, RankingResponse{
			Period: string(kind),
			Start:  rng.Start.Format(time.DateOnly),
			End:    rng.End.Format(time.DateOnly),
			Tables: tables,
		})
	}
}

// periodParams reads the shared period/date query parameters. The reference
// date defaults to the current UTC day so the engine itself never touches
// the clock.
func periodParams(log *slog.Logger, w http.ResponseWriter, r *http.Request) (report.PeriodKind, time.Time, bool) {
	kind, err := report.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		log.With(slog.String("error", err.Error())).Error("invalid period parameter")
		http.Error(w, "Invalid period: expected wtd, mtd or ytd", http.StatusBadRequest)
		return "", time.Time{}, false
	}

	ref := time.Now().UTC()
	if ds := r.URL.Query().Get("date"); ds != "" {
		ref, err = time.Parse(time.DateOnly, ds)
		if err != nil {
			log.With(slog.String("error", err.Error())).Error("invalid date parameter")
			http.Error(w, "Invalid date: expected YYYY-MM-DD", http.StatusBadRequest)
			return "", time.Time{}, false
		}
	}

	return kind, ref, true
}
