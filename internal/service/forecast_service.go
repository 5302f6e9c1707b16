// internal/service/forecast_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Akmalwizdom/siprems-backend/internal/domain"
	"github.com/Akmalwizdom/siprems-backend/internal/forecast"
	"github.com/Akmalwizdom/siprems-backend/internal/mlservice"
	"github.com/Akmalwizdom/siprems-backend/internal/repository"
	"github.com/Akmalwizdom/siprems-backend/internal/timeutil"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	minForecastDays   = 1
	maxForecastDays   = 365
	minHistoricalDays = 30
)

// Predictor is the external forecasting model boundary.
type Predictor interface {
	Predict(ctx context.Context, storeID string, days int) (*mlservice.PredictResult, error)
}

// HolidaySource is the public-holiday API boundary.
type HolidaySource interface {
	FetchRange(ctx context.Context, from, to time.Time) ([]domain.Holiday, error)
}

// ForecastOptions tunes one prediction request.
type ForecastOptions struct {
	LookbackDays   int
	DefaultHorizon int
	LeadTimeDays   int
	ServiceLevel   float64
}

type ForecastService struct {
	sales     repository.SalesRepository
	products  repository.ProductRepository
	calendar  repository.CalendarRepository
	predictor Predictor
	holidays  HolidaySource
	policy    forecast.Policy
	opts      ForecastOptions

	// now is injectable so tests can pin the clock.
	now func() time.Time
}

func NewForecastService(
	sales repository.SalesRepository,
	products repository.ProductRepository,
	calendar repository.CalendarRepository,
	predictor Predictor,
	holidays HolidaySource,
	opts ForecastOptions,
) *ForecastService {
	if opts.LookbackDays <= 0 {
		opts.LookbackDays = 90
	}
	if opts.DefaultHorizon <= 0 {
		opts.DefaultHorizon = 84
	}
	if opts.LeadTimeDays <= 0 {
		opts.LeadTimeDays = 7
	}
	if opts.ServiceLevel <= 0 {
		opts.ServiceLevel = 0.95
	}

	return &ForecastService{
		sales:     sales,
		products:  products,
		calendar:  calendar,
		predictor: predictor,
		holidays:  holidays,
		policy:    forecast.DefaultPolicy(),
		opts:      opts,
		now:       timeutil.NowWIB,
	}
}

// ValidateDays normalises the requested horizon: zero means the default,
// anything outside [1, 365] is rejected.
func (s *ForecastService) ValidateDays(days int) (int, error) {
	if days == 0 {
		return s.opts.DefaultHorizon, nil
	}
	if days < minForecastDays || days > maxForecastDays {
		return 0, fmt.Errorf("forecast days must be between %d and %d", minForecastDays, maxForecastDays)
	}
	return days, nil
}

// GetPrediction runs the whole pipeline for one store: fetch all snapshots,
// call the model, allocate demand down to products, and assemble the chart
// bundle. Holiday and recommendation failures degrade; everything else is
// a hard upstream error.
func (s *ForecastService) GetPrediction(ctx context.Context, storeID string, days int) (*domain.PredictionResponse, error) {
	days, err := s.ValidateDays(days)
	if err != nil {
		return nil, err
	}

	now := s.now()
	lookbackStart := timeutil.Midnight(now).AddDate(0, 0, -s.opts.LookbackDays)

	// The four snapshot reads are independent round-trips; snapshot
	// isolation across them is accepted, not fixed with transactions.
	var (
		salesRecords []domain.SalesRecord
		catalog      []domain.ProductCatalogEntry
		events       []domain.CalendarEvent
		history      []domain.DailySales
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		salesRecords, err = s.sales.GetSalesSince(gctx, lookbackStart)
		return err
	})
	g.Go(func() error {
		var err error
		catalog, err = s.products.GetCatalog(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = s.calendar.GetActiveEvents(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		history, err = s.sales.GetDailySales(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFetch, err)
	}

	if len(history) < minHistoricalDays {
		return nil, fmt.Errorf("%w: have %d days, need %d", domain.ErrInsufficientHistory, len(history), minHistoricalDays)
	}

	prediction, err := s.predictor.Predict(ctx, storeID, days)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFetch, err)
	}

	holidays := s.fetchHolidays(ctx, now, prediction.Points)

	recommendations := s.buildRecommendations(catalog, salesRecords, prediction.Points, now, days)

	timeline := forecast.BuildTimeline(s.policy, forecast.TimelineInput{
		History:  history,
		Forecast: prediction.Points,
		Events:   events,
		Holidays: holidays,
	})

	meta := domain.ForecastMeta{
		AppliedGrowthFactor: timeline.AppliedGrowthFactor,
		HistoricalDays:      len(history),
		ForecastDays:        days,
		Accuracy:            prediction.Accuracy,
	}
	if len(history) > 0 {
		meta.LastHistoricalDate = timeutil.DateKey(history[len(history)-1].Date)
	}

	log.Info().
		Int("forecast_days", days).
		Int("recommendations", len(recommendations)).
		Float64("applied_growth_factor", meta.AppliedGrowthFactor).
		Msg("prediction completed")

	return &domain.PredictionResponse{
		Status:           "success",
		ChartData:        timeline.Points,
		Recommendations:  recommendations,
		EventAnnotations: timeline.Annotations,
		Meta:             meta,
	}, nil
}

// fetchHolidays covers every year the chart can touch. A failed fetch only
// loses holiday annotations, never the response.
func (s *ForecastService) fetchHolidays(ctx context.Context, now time.Time, points []domain.ForecastPoint) []domain.Holiday {
	from := timeutil.Midnight(now).AddDate(0, 0, -s.policy.HistoryWindowDays)
	to := timeutil.Midnight(now)
	if len(points) > 0 {
		to = timeutil.Midnight(points[len(points)-1].Date)
	}

	holidays, err := s.holidays.FetchRange(ctx, from, to)
	if err != nil {
		log.Warn().Err(err).Msg("holiday fetch failed, continuing without holiday annotations")
		return nil
	}
	return holidays
}

// buildRecommendations runs the allocation chain. A failure here degrades
// to an empty list so the chart portion of the response still ships.
func (s *ForecastService) buildRecommendations(
	catalog []domain.ProductCatalogEntry,
	salesRecords []domain.SalesRecord,
	points []domain.ForecastPoint,
	now time.Time,
	days int,
) (recs []domain.RestockRecommendation) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recommendation generation failed, returning empty list")
			recs = []domain.RestockRecommendation{}
		}
	}()

	var aggregateForecast float64
	for _, p := range points {
		if p.Predicted > 0 {
			aggregateForecast += p.Predicted
		}
	}

	snapshot := forecast.Aggregate(s.policy, catalog, salesRecords, now, s.opts.LookbackDays)
	demands := forecast.Allocate(s.policy, forecast.AllocationInput{
		AggregateForecast: aggregateForecast,
		ForecastDays:      days,
		Catalog:           catalog,
		Snapshot:          snapshot,
	})

	recs = forecast.BuildRecommendations(s.policy, demands, days, s.opts.LeadTimeDays, s.opts.ServiceLevel)
	return recs
}
