// internal/service/dashboard_service.go
package service

import (
	"context"

	"github.com/Akmalwizdom/siprems-backend/internal/cache"
	"github.com/Akmalwizdom/siprems-backend/internal/domain"
	"github.com/Akmalwizdom/siprems-backend/internal/repository"
	"github.com/Akmalwizdom/siprems-backend/internal/timeutil"
	"github.com/rs/zerolog/log"
)

type DashboardService struct {
	repo  repository.DashboardRepository
	cache cache.DashboardCache
}

func NewDashboardService(repo repository.DashboardRepository, cacheImpl cache.DashboardCache) *DashboardService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	return &DashboardService{repo: repo, cache: cacheImpl}
}

func (s *DashboardService) GetMetrics(ctx context.Context) (*domain.DashboardMetrics, error) {
	today := timeutil.NowWIB()
	dateKey := timeutil.DateKey(today)

	if metrics, ok, err := s.cache.GetMetrics(ctx, dateKey); err == nil && ok {
		return metrics, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("dashboard: cache get metrics failed")
	}

	metrics, err := s.repo.GetMetrics(ctx, today)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetMetrics(ctx, dateKey, metrics); err != nil {
		log.Warn().Err(err).Msg("dashboard: cache set metrics failed")
	}

	return metrics, nil
}

// InvalidateCache clears every cached dashboard aggregate. Bulk data
// maintenance (summary rebuilds, reseeds) goes through here so dashboards
// never serve pre-rebuild numbers for the rest of the cache TTL.
func (s *DashboardService) InvalidateCache(ctx context.Context) error {
	return s.cache.InvalidateAll(ctx)
}

func (s *DashboardService) GetSalesChart(ctx context.Context, days int) ([]domain.SalesChartPoint, error) {
	if days <= 0 {
		days = 30
	}
	return s.repo.GetSalesChart(ctx, days)
}

func (s *DashboardService) GetCategorySales(ctx context.Context, days int) ([]domain.CategorySales, error) {
	if days <= 0 {
		days = 30
	}

	if breakdown, ok, err := s.cache.GetCategorySales(ctx, days); err == nil && ok {
		return breakdown, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("dashboard: cache get category sales failed")
	}

	breakdown, err := s.repo.GetCategorySales(ctx, days)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetCategorySales(ctx, days, breakdown); err != nil {
		log.Warn().Err(err).Msg("dashboard: cache set category sales failed")
	}

	return breakdown, nil
}
