package report

import (
	"context"
	"time"

	"pardelta-dashboard/internal/constants"
	"pardelta-dashboard/internal/storage"
)

type Band string

const (
	BandGreen  Band = "Green"
	BandYellow Band = "Yellow"
	BandRed    Band = "Red"
)

type Metric string

const (
	MetricHME    Metric = "HME"
	MetricHMEDP2 Metric = "HME_DP2"
	MetricLabour Metric = "Labour"
	MetricOSAT   Metric = "OSAT"
)

// Gateway is the raw data source for one store over an inclusive date range.
// Empty result sets are legitimate; only storage.ErrUnavailable-class errors
// come back as errors.
type Gateway interface {
	FetchHMERows(ctx context.Context, pcNumber string, start, end time.Time) ([]storage.HMERow, error)
	FetchLaborRows(ctx context.Context, pcNumber string, start, end time.Time) ([]storage.LaborRow, error)
	FetchOSATRows(ctx context.Context, pcNumber string, start, end time.Time) ([]storage.OSATRow, error)
}

// threshold order matters: the first matching band wins, and the last band
// matches everything, so classification is total over any derived value.
// Boundary convention: Yellow takes its upper bound inclusive (HME 150.0 is
// Green, 160.0 is Yellow; OSAT 90.0 is Yellow, not Green).
type threshold struct {
	band  Band
	match func(v float64) bool
}

type Definition struct {
	Name   Metric
	Source string

	thresholds  []threshold
	dailyValues func(ctx context.Context, gw Gateway, pcNumber string, rng DateRange) (map[string]float64, error)
}

func (d Definition) Classify(v float64) Band {
	for _, t := range d.thresholds {
		if t.match(v) {
			return t.band
		}
	}
	return d.thresholds[len(d.thresholds)-1].band
}

// Definitions lists the four dashboard metrics in display order.
var Definitions = []Definition{
	{
		Name:   MetricHME,
		Source: "hme_report",
		thresholds: []threshold{
			{BandGreen, func(v float64) bool { return v <= 150 }},
			{BandYellow, func(v float64) bool { return v <= 160 }},
			{BandRed, func(v float64) bool { return true }},
		},
		dailyValues: hmeDailyValues,
	},
	{
		Name:   MetricHMEDP2,
		Source: "hme_report",
		thresholds: []threshold{
			{BandGreen, func(v float64) bool { return v <= 140 }},
			{BandYellow, func(v float64) bool { return v <= 150 }},
			{BandRed, func(v float64) bool { return true }},
		},
		dailyValues: hmeDP2DailyValues,
	},
	{
		Name:   MetricLabour,
		Source: "labor_metrics",
		thresholds: []threshold{
			{BandGreen, func(v float64) bool { return v < 20 }},
			{BandYellow, func(v float64) bool { return v <= 23 }},
			{BandRed, func(v float64) bool { return true }},
		},
		dailyValues: labourDailyValues,
	},
	{
		Name:   MetricOSAT,
		Source: "medallia_report",
		thresholds: []threshold{
			{BandGreen, func(v float64) bool { return v > 90 }},
			{BandYellow, func(v float64) bool { return v >= 85 }},
			{BandRed, func(v float64) bool { return true }},
		},
		dailyValues: osatDailyValues,
	},
}

const dp2Measure = "Daypart 2"

// deriveHME averages lane_total over whatever daypart rows the day has
// (up to 5); no rows means no value, never zero.
func deriveHME(rows []storage.HMERow) (float64, bool) {
	if len(rows) == 0 {
		return 0, false
	}
	var sum float64
	for _, r := range rows {
		sum += r.LaneTotal
	}
	return sum / float64(len(rows)), true
}

// deriveHMEDP2 takes the day's "Daypart 2" row. At most one is expected;
// averaging the matches keeps the value sane if duplicates ever appear.
func deriveHMEDP2(rows []storage.HMERow) (float64, bool) {
	var sum float64
	var n int
	for _, r := range rows {
		if r.TimeMeasure == dp2Measure {
			sum += r.LaneTotal
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// deriveLabour sums percent_labor over the day's position rows, skipping
// salaried management. All rows excluded means no value, not 0%.
func deriveLabour(rows []storage.LaborRow) (float64, bool) {
	var sum float64
	var n int
	for _, r := range rows {
		if constants.ExcludedLaborPositions[r.Position] {
			continue
		}
		sum += r.PercentLabor
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum, true
}

// deriveOSAT rescales the day's mean 1-5 survey score to a percentage.
func deriveOSAT(rows []storage.OSATRow) (float64, bool) {
	if len(rows) == 0 {
		return 0, false
	}
	var sum float64
	for _, r := range rows {
		sum += r.OSAT
	}
	avg := sum / float64(len(rows))
	return avg / 5 * 100, true
}

func hmeDailyValues(ctx context.Context, gw Gateway, pcNumber string, rng DateRange) (map[string]float64, error) {
	rows, err := gw.FetchHMERows(ctx, pcNumber, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	return deriveByDay(rows, func(r storage.HMERow) time.Time { return r.Date }, deriveHME), nil
}

func hmeDP2DailyValues(ctx context.Context, gw Gateway, pcNumber string, rng DateRange) (map[string]float64, error) {
	rows, err := gw.FetchHMERows(ctx, pcNumber, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	return deriveByDay(rows, func(r storage.HMERow) time.Time { return r.Date }, deriveHMEDP2), nil
}

func labourDailyValues(ctx context.Context, gw Gateway, pcNumber string, rng DateRange) (map[string]float64, error) {
	rows, err := gw.FetchLaborRows(ctx, pcNumber, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	return deriveByDay(rows, func(r storage.LaborRow) time.Time { return r.Date }, deriveLabour), nil
}

func osatDailyValues(ctx context.Context, gw Gateway, pcNumber string, rng DateRange) (map[string]float64, error) {
	rows, err := gw.FetchOSATRows(ctx, pcNumber, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	return deriveByDay(rows, func(r storage.OSATRow) time.Time { return r.ReportDate }, deriveOSAT), nil
}

// deriveByDay buckets raw rows by calendar day and runs the per-day deriver
// on each bucket. Days whose deriver reports no value are left out of the
// map entirely.
func deriveByDay[R any](rows []R, day func(R) time.Time, derive func([]R) (float64, bool)) map[string]float64 {
	byDay := make(map[string][]R)
	for _, r := range rows {
		key := dayKey(day(r))
		byDay[key] = append(byDay[key], r)
	}

	values := make(map[string]float64, len(byDay))
	for key, bucket := range byDay {
		if v, ok := derive(bucket); ok {
			values[key] = v
		}
	}
	return values
}
