package report

import (
	"context"
	"sort"
)

type RankingRow struct {
	PCNumber    string `json:"pc_number"`
	Store       string `json:"store"`
	Green       int    `json:"green"`
	Yellow      int    `json:"yellow"`
	Red         int    `json:"red"`
	Unavailable bool   `json:"unavailable,omitempty"`
}

type RankingTable struct {
	Metric Metric       `json:"metric"`
	Rows   []RankingRow `json:"rows"`
}

// BuildRanking orders one metric's tallies by red count descending, ties
// broken by pc_number ascending. Every store keeps its row, unavailable or
// not.
func BuildRanking(res MetricResult) RankingTable {
	rows := make([]RankingRow, 0, len(res.Tallies))
	for _, t := range res.Tallies {
		rows = append(rows, RankingRow{
			PCNumber:    t.PCNumber,
			Store:       t.Store,
			Green:       t.Green,
			Yellow:      t.Yellow,
			Red:         t.Red,
			Unavailable: t.Unavailable,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Red != rows[j].Red {
			return rows[i].Red > rows[j].Red
		}
		return rows[i].PCNumber < rows[j].PCNumber
	})

	return RankingTable{Metric: res.Metric, Rows: rows}
}

// Ranking computes all four metrics for the range and returns one ranking
// table per metric, in display order.
func (s *Service) Ranking(ctx context.Context, rng DateRange) ([]RankingTable, error) {
	results, err := s.ComputeAll(ctx, rng)
	if err != nil {
		return nil, err
	}

	tables := make([]RankingTable, 0, len(results))
	for _, res := range results {
		tables = append(tables, BuildRanking(res))
	}

	return tables, nil
}
