package postgres

import (
	"context"
	"fmt"
	"time"

	"pardelta-dashboard/internal/storage"
)

// All three fact tables are pre-existing and read-only. Queries are scoped
// to one store over an inclusive date range; an empty result set is a valid
// answer, only driver faults wrap storage.ErrUnavailable.

func (s *Storage) FetchHMERows(ctx context.Context, pcNumber string, start, end time.Time) ([]storage.HMERow, error) {
	const op = "storage.postgres.FetchHMERows"

	// hme_report keys stores by the numeric store id, which matches the
	// roster's pc_number digits.
	query := `
        SELECT date, store::text, time_measure, lane_total
        FROM hme_report
        WHERE store::text = $1 AND date BETWEEN $2 AND $3
        ORDER BY date ASC, time_measure ASC`

	rows, err := s.db.QueryContext(ctx, query, pcNumber, start, end)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, storage.ErrUnavailable, err)
	}
	defer rows.Close()

	var out []storage.HMERow
	for rows.Next() {
		var r storage.HMERow
		if err := rows.Scan(&r.Date, &r.Store, &r.TimeMeasure, &r.LaneTotal); err != nil {
			return nil, fmt.Errorf("%s: scan: %w: %w", op, storage.ErrUnavailable, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, storage.ErrUnavailable, err)
	}

	return out, nil
}

func (s *Storage) FetchLaborRows(ctx context.Context, pcNumber string, start, end time.Time) ([]storage.LaborRow, error) {
	const op = "storage.postgres.FetchLaborRows"

	query := `
        SELECT date, pc_number, labor_position, percent_labor
        FROM labor_metrics
        WHERE pc_number = $1 AND date BETWEEN $2 AND $3
        ORDER BY date ASC`

	rows, err := s.db.QueryContext(ctx, query, pcNumber, start, end)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, storage.ErrUnavailable, err)
	}
	defer rows.Close()

	var out []storage.LaborRow
	for rows.Next() {
		var r storage.LaborRow
		if err := rows.Scan(&r.Date, &r.PCNumber, &r.Position, &r.PercentLabor); err != nil {
			return nil, fmt.Errorf("%s: scan: %w: %w", op, storage.ErrUnavailable, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, storage.ErrUnavailable, err)
	}

	return out, nil
}

func (s *Storage) FetchOSATRows(ctx context.Context, pcNumber string, start, end time.Time) ([]storage.OSATRow, error) {
	const op = "storage.postgres.FetchOSATRows"

	query := `
        SELECT report_date, pc_number, osat
        FROM medallia_report
        WHERE pc_number = $1 AND report_date BETWEEN $2 AND $3
        ORDER BY report_date ASC`

	rows, err := s.db.QueryContext(ctx, query, pcNumber, start, end)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, storage.ErrUnavailable, err)
	}
	defer rows.Close()

	var out []storage.OSATRow
	for rows.Next() {
		var r storage.OSATRow
		if err := rows.Scan(&r.ReportDate, &r.PCNumber, &r.OSAT); err != nil {
			return nil, fmt.Errorf("%s: scan: %w: %w", op, storage.ErrUnavailable, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, storage.ErrUnavailable, err)
	}

	return out, nil
}
