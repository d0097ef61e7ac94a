package report

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pardelta-dashboard/internal/directory"
	"pardelta-dashboard/internal/storage"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) FetchHMERows(ctx context.Context, pcNumber string, start, end time.Time) ([]storage.HMERow, error) {
	args := m.Called(ctx, pcNumber, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.HMERow), args.Error(1)
}

func (m *MockGateway) FetchLaborRows(ctx context.Context, pcNumber string, start, end time.Time) ([]storage.LaborRow, error) {
	args := m.Called(ctx, pcNumber, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.LaborRow), args.Error(1)
}

func (m *MockGateway) FetchOSATRows(ctx context.Context, pcNumber string, start, end time.Time) ([]storage.OSATRow, error) {
	args := m.Called(ctx, pcNumber, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.OSATRow), args.Error(1)
}

var testStores = []directory.Store{
	{PCNumber: "301290", StoreName: "Paxton"},
	{PCNumber: "343939", StoreName: "Mt Joy"},
}

// weekOfHME builds a full week of hme_report rows for one store: five
// daypart rows per day, all with the same lane_total.
func weekOfHME(start time.Time, days int, laneTotal float64) []storage.HMERow {
	var rows []storage.HMERow
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		for dp := 1; dp <= 5; dp++ {
			rows = append(rows, storage.HMERow{
				Date:        day,
				Store:       "301290",
				TimeMeasure: fmt.Sprintf("Daypart %d", dp),
				LaneTotal:   laneTotal,
			})
		}
	}
	return rows
}

// A steady week at 145 seconds classifies Green all seven days.
func TestCompute_FullGreenWeek(t *testing.T) {
	gw := new(MockGateway)
	rng := DateRange{Start: date(2026, time.August, 16), End: date(2026, time.August, 22)}

	gw.On("FetchHMERows", mock.Anything, "301290", rng.Start, rng.End).
		Return(weekOfHME(rng.Start, 7, 145), nil)

	svc := NewService(slog.Default(), gw, testStores[:1])
	res := svc.Compute(context.Background(), definition(t, MetricHME), rng)

	require.Len(t, res.Tallies, 1)
	assert.Equal(t, 7, res.Tallies[0].Green)
	assert.Equal(t, 0, res.Tallies[0].Yellow)
	assert.Equal(t, 0, res.Tallies[0].Red)
	assert.False(t, res.Tallies[0].Unavailable)

	require.NotNil(t, res.Averages[0].Value)
	assert.InDelta(t, 145, *res.Averages[0].Value, 0.0001)
	assert.Equal(t, BandGreen, res.Averages[0].Band)

	gw.AssertExpectations(t)
}

// Band counts always sum to the number of days that actually had data;
// absent days are skipped, not zeroed.
func TestCompute_TallySumsToPresentDays(t *testing.T) {
	gw := new(MockGateway)
	rng := DateRange{Start: date(2026, time.August, 16), End: date(2026, time.August, 22)}

	// Only three of the seven days have rows: one per band.
	rows := weekOfHME(rng.Start, 1, 145)
	rows = append(rows, weekOfHME(rng.Start.AddDate(0, 0, 2), 1, 155)...)
	rows = append(rows, weekOfHME(rng.Start.AddDate(0, 0, 4), 1, 165)...)

	gw.On("FetchHMERows", mock.Anything, "301290", rng.Start, rng.End).
		Return(rows, nil)

	svc := NewService(slog.Default(), gw, testStores[:1])
	res := svc.Compute(context.Background(), definition(t, MetricHME), rng)

	tally := res.Tallies[0]
	assert.Equal(t, 1, tally.Green)
	assert.Equal(t, 1, tally.Yellow)
	assert.Equal(t, 1, tally.Red)
	assert.Equal(t, 3, tally.Green+tally.Yellow+tally.Red)

	require.NotNil(t, res.Averages[0].Value)
	assert.InDelta(t, 155, *res.Averages[0].Value, 0.0001)
	assert.Equal(t, BandYellow, res.Averages[0].Band)
}

// A store with no rows for the whole period keeps its row: zero tally, nil
// average, explicit no-data marker.
func TestCompute_NoDataStore(t *testing.T) {
	gw := new(MockGateway)
	rng := DateRange{Start: date(2026, time.August, 16), End: date(2026, time.August, 22)}

	gw.On("FetchHMERows", mock.Anything, "301290", rng.Start, rng.End).
		Return([]storage.HMERow{}, nil)

	svc := NewService(slog.Default(), gw, testStores[:1])
	res := svc.Compute(context.Background(), definition(t, MetricHME), rng)

	assert.Equal(t, 0, res.Tallies[0].Green+res.Tallies[0].Yellow+res.Tallies[0].Red)
	assert.False(t, res.Tallies[0].Unavailable)
	assert.Nil(t, res.Averages[0].Value)
	assert.True(t, res.Averages[0].NoData)
	assert.Empty(t, res.Averages[0].Band)
}

// One store's gateway failure on one metric is isolated: the other store
// and the other metrics still compute.
func TestComputeAll_FailureIsolation(t *testing.T) {
	gw := new(MockGateway)
	rng := DateRange{Start: date(2026, time.August, 16), End: date(2026, time.August, 22)}

	unavailable := fmt.Errorf("storage.postgres.FetchLaborRows: %w: connection refused", storage.ErrUnavailable)

	gw.On("FetchLaborRows", mock.Anything, "301290", rng.Start, rng.End).
		Return(nil, unavailable)
	gw.On("FetchLaborRows", mock.Anything, "343939", rng.Start, rng.End).
		Return([]storage.LaborRow{
			{Date: rng.Start, PCNumber: "343939", Position: "DD Crew Plus", PercentLabor: 18},
		}, nil)

	gw.On("FetchHMERows", mock.Anything, mock.Anything, rng.Start, rng.End).
		Return(weekOfHME(rng.Start, 7, 145), nil)
	gw.On("FetchOSATRows", mock.Anything, mock.Anything, rng.Start, rng.End).
		Return([]storage.OSATRow{}, nil)

	svc := NewService(slog.Default(), gw, testStores)
	results, err := svc.ComputeAll(context.Background(), rng)

	require.NoError(t, err)
	require.Len(t, results, 4)

	labour := results[2]
	require.Equal(t, MetricLabour, labour.Metric)
	assert.True(t, labour.Tallies[0].Unavailable)
	assert.True(t, labour.Averages[0].Unavailable)
	assert.False(t, labour.Tallies[1].Unavailable)
	assert.Equal(t, 1, labour.Tallies[1].Green)

	hme := results[0]
	require.Equal(t, MetricHME, hme.Metric)
	assert.False(t, hme.Tallies[0].Unavailable)
	assert.Equal(t, 7, hme.Tallies[0].Green)
}

// Same gateway responses in, same output out: the engine carries no state
// between runs.
func TestCompute_Idempotent(t *testing.T) {
	gw := new(MockGateway)
	rng := DateRange{Start: date(2026, time.August, 16), End: date(2026, time.August, 22)}

	gw.On("FetchHMERows", mock.Anything, "301290", rng.Start, rng.End).
		Return(weekOfHME(rng.Start, 4, 152), nil)

	svc := NewService(slog.Default(), gw, testStores[:1])

	first := svc.Compute(context.Background(), definition(t, MetricHME), rng)
	second := svc.Compute(context.Background(), definition(t, MetricHME), rng)

	assert.Equal(t, first, second)
}
