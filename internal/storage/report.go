package storage

import (
	"errors"
	"time"
)

// ErrUnavailable marks gateway-level faults (connectivity, bad query).
// An empty result set is not an error and never wraps it.
var ErrUnavailable = errors.New("data source unavailable")

type HMERow struct {
	Date        time.Time `json:"date"`
	Store       string    `json:"store"`
	TimeMeasure string    `json:"time_measure"`
	LaneTotal   float64   `json:"lane_total"`
}

type LaborRow struct {
	Date         time.Time `json:"date"`
	PCNumber     string    `json:"pc_number"`
	Position     string    `json:"labor_position"`
	PercentLabor float64   `json:"percent_labor"`
}

type OSATRow struct {
	ReportDate time.Time `json:"report_date"`
	PCNumber   string    `json:"pc_number"`
	OSAT       float64   `json:"osat"`
}
