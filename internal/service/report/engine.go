package report

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"pardelta-dashboard/internal/directory"
)

type Service struct {
	log     *slog.Logger
	gateway Gateway
	stores  []directory.Store
}

func NewService(log *slog.Logger, gateway Gateway, stores []directory.Store) *Service {
	return &Service{log: log, gateway: gateway, stores: stores}
}

// StoreTally counts banded days for one store over the range. The counts
// sum to the number of days that actually had a derived value.
type StoreTally struct {
	PCNumber    string `json:"pc_number"`
	Store       string `json:"store"`
	Green       int    `json:"green"`
	Yellow      int    `json:"yellow"`
	Red         int    `json:"red"`
	Unavailable bool   `json:"unavailable,omitempty"`
}

// StoreAverage is the period mean of one store's daily values, classified
// once for cell shading. Value is nil when the range had no data at all.
type StoreAverage struct {
	PCNumber    string   `json:"pc_number"`
	Store       string   `json:"store"`
	Value       *float64 `json:"value"`
	Band        Band     `json:"band,omitempty"`
	NoData      bool     `json:"no_data,omitempty"`
	Unavailable bool     `json:"unavailable,omitempty"`
}

type MetricResult struct {
	Metric   Metric         `json:"metric"`
	Tallies  []StoreTally   `json:"tallies"`
	Averages []StoreAverage `json:"averages"`
}

// Compute runs one metric over the whole roster. A gateway failure for one
// store marks just that store unavailable; the rest of the roster still
// computes. Output order follows the roster (ascending pc_number).
func (s *Service) Compute(ctx context.Context, def Definition, rng DateRange) MetricResult {
	const op = "service.report.Compute"

	res := MetricResult{
		Metric:   def.Name,
		Tallies:  make([]StoreTally, 0, len(s.stores)),
		Averages: make([]StoreAverage, 0, len(s.stores)),
	}

	for _, store := range s.stores {
		tally := StoreTally{PCNumber: store.PCNumber, Store: store.StoreName}
		avg := StoreAverage{PCNumber: store.PCNumber, Store: store.StoreName}

		values, err := def.dailyValues(ctx, s.gateway, store.PCNumber, rng)
		if err != nil {
			s.log.With(
				slog.String("op", op),
				slog.String("metric", string(def.Name)),
				slog.String("pc_number", store.PCNumber),
				slog.String("error", err.Error()),
			).Warn("store data unavailable")

			tally.Unavailable = true
			avg.Unavailable = true
			res.Tallies = append(res.Tallies, tally)
			res.Averages = append(res.Averages, avg)
			continue
		}

		var sum float64
		var count int
		for d := rng.Start; !d.After(rng.End); d = d.AddDate(0, 0, 1) {
			v, ok := values[dayKey(d)]
			if !ok {
				// Absent day: not zero, not red, just skipped.
				continue
			}

			switch def.Classify(v) {
			case BandGreen:
				tally.Green++
			case BandYellow:
				tally.Yellow++
			case BandRed:
				tally.Red++
			}

			sum += v
			count++
		}

		if count > 0 {
			mean := sum / float64(count)
			avg.Value = &mean
			avg.Band = def.Classify(mean)
		} else {
			avg.NoData = true
		}

		res.Tallies = append(res.Tallies, tally)
		res.Averages = append(res.Averages, avg)
	}

	return res
}

// ComputeAll fans the four metric runs out in parallel. They read disjoint
// data and write disjoint slots, so the only thing the group propagates is
// context cancellation.
func (s *Service) ComputeAll(ctx context.Context, rng DateRange) ([]MetricResult, error) {
	results := make([]MetricResult, len(Definitions))

	g, gCtx := errgroup.WithContext(ctx)
	for i, def := range Definitions {
		i, def := i, def
		g.Go(func() error {
			results[i] = s.Compute(gCtx, def, rng)
			return gCtx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
