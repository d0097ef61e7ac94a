package report

import (
	"context"
)

// PerformanceCell is one metric's period average for one store, tagged with
// its band for shading. NoData cells render an explicit marker, never a
// synthetic value; Unavailable cells mark a gateway fault.
type PerformanceCell struct {
	Metric      Metric   `json:"metric"`
	Value       *float64 `json:"value"`
	Band        Band     `json:"band,omitempty"`
	NoData      bool     `json:"no_data,omitempty"`
	Unavailable bool     `json:"unavailable,omitempty"`
}

type PerformanceRow struct {
	PCNumber string            `json:"pc_number"`
	Store    string            `json:"store"`
	Cells    []PerformanceCell `json:"cells"`
}

// BuildPerformance assembles one row per roster store in pc_number order,
// each carrying all four metric cells, regardless of data availability.
func BuildPerformance(results []MetricResult) []PerformanceRow {
	byStore := make(map[string]*PerformanceRow)
	var order []string

	for _, res := range results {
		for _, avg := range res.Averages {
			row, ok := byStore[avg.PCNumber]
			if !ok {
				row = &PerformanceRow{PCNumber: avg.PCNumber, Store: avg.Store}
				byStore[avg.PCNumber] = row
				order = append(order, avg.PCNumber)
			}
			row.Cells = append(row.Cells, PerformanceCell{
				Metric:      res.Metric,
				Value:       avg.Value,
				Band:        avg.Band,
				NoData:      avg.NoData,
				Unavailable: avg.Unavailable,
			})
		}
	}

	// Averages already come out in roster order, and the roster is sorted
	// by pc_number, so first-seen order is the display order.
	rows := make([]PerformanceRow, 0, len(order))
	for _, pc := range order {
		rows = append(rows, *byStore[pc])
	}

	return rows
}

// Performance computes all four metrics and returns the single averaged,
// band-shaded table.
func (s *Service) Performance(ctx context.Context, rng DateRange) ([]PerformanceRow, error) {
	results, err := s.ComputeAll(ctx, rng)
	if err != nil {
		return nil, err
	}

	return BuildPerformance(results), nil
}
