package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Akmalwizdom/siprems-backend/internal/domain"
	"github.com/Akmalwizdom/siprems-backend/internal/mlservice"
	"github.com/Akmalwizdom/siprems-backend/internal/timeutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSalesRepo struct {
	sales   []domain.SalesRecord
	history []domain.DailySales
	err     error
}

func (f *fakeSalesRepo) GetSalesSince(ctx context.Context, since time.Time) ([]domain.SalesRecord, error) {
	return f.sales, f.err
}

func (f *fakeSalesRepo) GetDailySales(ctx context.Context) ([]domain.DailySales, error) {
	return f.history, f.err
}

type fakeProductRepo struct {
	catalog []domain.ProductCatalogEntry
	err     error
}

func (f *fakeProductRepo) GetCatalog(ctx context.Context) ([]domain.ProductCatalogEntry, error) {
	return f.catalog, f.err
}

type fakeCalendarRepo struct {
	events []domain.CalendarEvent
}

func (f *fakeCalendarRepo) GetActiveEvents(ctx context.Context) ([]domain.CalendarEvent, error) {
	return f.events, nil
}

type fakePredictor struct {
	result *mlservice.PredictResult
	err    error
}

func (f *fakePredictor) Predict(ctx context.Context, storeID string, days int) (*mlservice.PredictResult, error) {
	return f.result, f.err
}

type fakeHolidaySource struct {
	holidays []domain.Holiday
	err      error
}

func (f *fakeHolidaySource) FetchRange(ctx context.Context, from, to time.Time) ([]domain.Holiday, error) {
	return f.holidays, f.err
}

func testClock() time.Time {
	return time.Date(2025, 6, 30, 12, 0, 0, 0, timeutil.WIB)
}

func thirtyDayHistory() []domain.DailySales {
	history := make([]domain.DailySales, 0, 30)
	for i := 29; i >= 0; i-- {
		history = append(history, domain.DailySales{
			Date:  timeutil.Midnight(testClock()).AddDate(0, 0, -i),
			Total: 100000,
		})
	}
	return history
}

func flatPrediction(days int) *mlservice.PredictResult {
	points := make([]domain.ForecastPoint, 0, days)
	start := timeutil.Midnight(testClock()).AddDate(0, 0, 1)
	for i := 0; i < days; i++ {
		points = append(points, domain.ForecastPoint{
			Date:       start.AddDate(0, 0, i),
			Predicted:  100000,
			LowerBound: 80000,
			UpperBound: 120000,
		})
	}
	return &mlservice.PredictResult{Points: points, Accuracy: 0.87}
}

func newTestService(sales *fakeSalesRepo, products *fakeProductRepo, predictor *fakePredictor, holidays *fakeHolidaySource) *ForecastService {
	svc := NewForecastService(sales, products, &fakeCalendarRepo{}, predictor, holidays, ForecastOptions{})
	svc.now = testClock
	return svc
}

func TestValidateDays(t *testing.T) {
	svc := newTestService(&fakeSalesRepo{}, &fakeProductRepo{}, &fakePredictor{}, &fakeHolidaySource{})

	days, err := svc.ValidateDays(0)
	require.NoError(t, err)
	assert.Equal(t, 84, days)

	days, err = svc.ValidateDays(14)
	require.NoError(t, err)
	assert.Equal(t, 14, days)

	_, err = svc.ValidateDays(366)
	assert.Error(t, err)

	_, err = svc.ValidateDays(-1)
	assert.Error(t, err)
}

func TestGetPredictionSuccess(t *testing.T) {
	sales := &fakeSalesRepo{history: thirtyDayHistory()}
	products := &fakeProductRepo{catalog: []domain.ProductCatalogEntry{
		{ID: "p1", Name: "Kopi", Category: "Beverages", CurrentStock: 2, SellingPrice: 15000},
	}}
	predictor := &fakePredictor{result: flatPrediction(14)}
	holidays := &fakeHolidaySource{holidays: []domain.Holiday{
		{Date: timeutil.Midnight(testClock()), Title: "Hari Libur", IsNational: true},
	}}

	svc := newTestService(sales, products, predictor, holidays)

	resp, err := svc.GetPrediction(context.Background(), "store-1", 14)
	require.NoError(t, err)

	assert.Equal(t, "success", resp.Status)
	assert.Len(t, resp.ChartData, 30+14)
	assert.Equal(t, 30, resp.Meta.HistoricalDays)
	assert.Equal(t, 14, resp.Meta.ForecastDays)
	assert.Equal(t, "2025-06-30", resp.Meta.LastHistoricalDate)
	assert.InDelta(t, 0.87, resp.Meta.Accuracy, 1e-9)
	assert.InDelta(t, 1.0, resp.Meta.AppliedGrowthFactor, 1e-9)

	// A single understocked product with the whole forecast allocated to
	// it must produce a recommendation.
	require.NotEmpty(t, resp.Recommendations)
	assert.Equal(t, "p1", resp.Recommendations[0].ProductID)

	// The injected holiday falls on the last historical day.
	lastHistorical := resp.ChartData[29]
	assert.True(t, lastHistorical.IsHoliday)
}

func TestGetPredictionInsufficientHistory(t *testing.T) {
	sales := &fakeSalesRepo{history: thirtyDayHistory()[:10]}
	svc := newTestService(sales, &fakeProductRepo{}, &fakePredictor{result: flatPrediction(14)}, &fakeHolidaySource{})

	_, err := svc.GetPrediction(context.Background(), "store-1", 14)
	assert.ErrorIs(t, err, domain.ErrInsufficientHistory)
}

func TestGetPredictionRepositoryFailureIsUpstream(t *testing.T) {
	sales := &fakeSalesRepo{err: errors.New("connection refused")}
	svc := newTestService(sales, &fakeProductRepo{}, &fakePredictor{result: flatPrediction(14)}, &fakeHolidaySource{})

	_, err := svc.GetPrediction(context.Background(), "store-1", 14)
	assert.ErrorIs(t, err, domain.ErrUpstreamFetch)
}

func TestGetPredictionModelFailureIsUpstream(t *testing.T) {
	sales := &fakeSalesRepo{history: thirtyDayHistory()}
	predictor := &fakePredictor{err: errors.New("model service down")}
	svc := newTestService(sales, &fakeProductRepo{}, predictor, &fakeHolidaySource{})

	_, err := svc.GetPrediction(context.Background(), "store-1", 14)
	assert.ErrorIs(t, err, domain.ErrUpstreamFetch)
}

func TestGetPredictionDegradesWithoutHolidays(t *testing.T) {
	sales := &fakeSalesRepo{history: thirtyDayHistory()}
	products := &fakeProductRepo{catalog: []domain.ProductCatalogEntry{
		{ID: "p1", Name: "Kopi", Category: "Beverages", SellingPrice: 15000},
	}}
	holidays := &fakeHolidaySource{err: errors.New("holiday api timeout")}

	svc := newTestService(sales, products, &fakePredictor{result: flatPrediction(14)}, holidays)

	resp, err := svc.GetPrediction(context.Background(), "store-1", 14)
	require.NoError(t, err)
	assert.Equal(t, "success", resp.Status)
	for _, p := range resp.ChartData {
		assert.False(t, p.IsHoliday)
	}
}

func TestGetPredictionEmptyCatalogStillShipsChart(t *testing.T) {
	// No products means no recommendations, but the chart portion of the
	// response must still be produced.
	sales := &fakeSalesRepo{history: thirtyDayHistory()}
	svc := newTestService(sales, &fakeProductRepo{}, &fakePredictor{result: flatPrediction(14)}, &fakeHolidaySource{})

	resp, err := svc.GetPrediction(context.Background(), "store-1", 14)
	require.NoError(t, err)
	assert.Empty(t, resp.Recommendations)
	assert.Len(t, resp.ChartData, 30+14)
}
