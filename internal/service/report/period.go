package report

import (
	"fmt"
	"time"
)

type PeriodKind string

const (
	WeekToDate  PeriodKind = "wtd"
	MonthToDate PeriodKind = "mtd"
	YearToDate  PeriodKind = "ytd"
)

// ParsePeriod maps the period query parameter onto a PeriodKind.
// An empty value means the dashboard default, week to date.
func ParsePeriod(s string) (PeriodKind, error) {
	switch PeriodKind(s) {
	case "":
		return WeekToDate, nil
	case WeekToDate, MonthToDate, YearToDate:
		return PeriodKind(s), nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// DateRange is inclusive on both ends, Start <= End.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Resolve turns a period kind and a caller-supplied reference date into a
// concrete range. Weeks start on Sunday; the reference day itself is always
// the inclusive end. The engine never reads the clock, the caller does.
func Resolve(kind PeriodKind, ref time.Time) DateRange {
	end := Day(ref)

	var start time.Time
	switch kind {
	case MonthToDate:
		start = time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	case YearToDate:
		start = time.Date(end.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		start = end.AddDate(0, 0, -int(end.Weekday()))
	}

	return DateRange{Start: start, End: end}
}

// Day strips a timestamp down to its UTC calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// Days counts the calendar days the range covers, both ends included.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}
