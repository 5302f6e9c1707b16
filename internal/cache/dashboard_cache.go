// Dashboard aggregates are the only cached data in the service. Forecast
// and recommendation responses are recomputed fresh per request on purpose
// and must never be cached here.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Akmalwizdom/siprems-backend/internal/config"
	"github.com/Akmalwizdom/siprems-backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	dashboardKeyPrefix     = "dashboard"
	dashboardScanBatchSize = 100
)

type DashboardCache interface {
	GetMetrics(ctx context.Context, dateKey string) (*domain.DashboardMetrics, bool, error)
	SetMetrics(ctx context.Context, dateKey string, metrics *domain.DashboardMetrics) error
	GetCategorySales(ctx context.Context, days int) ([]domain.CategorySales, bool, error)
	SetCategorySales(ctx context.Context, days int, breakdown []domain.CategorySales) error
	InvalidateAll(ctx context.Context) error
}

type redisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopDashboardCache struct{}

func NewDashboardCache(cfg config.CacheConfig) (DashboardCache, error) {
	if !cfg.Enabled {
		return &noopDashboardCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisDashboardCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopDashboardCache() DashboardCache {
	return &noopDashboardCache{}
}

func (c *redisDashboardCache) GetMetrics(ctx context.Context, dateKey string) (*domain.DashboardMetrics, bool, error) {
	key := fmt.Sprintf("%s:metrics:%s", dashboardKeyPrefix, dateKey)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var metrics domain.DashboardMetrics
	if err := json.Unmarshal(payload, &metrics); err != nil {
		return nil, false, fmt.Errorf("decode dashboard metrics cache: %w", err)
	}

	return &metrics, true, nil
}

func (c *redisDashboardCache) SetMetrics(ctx context.Context, dateKey string, metrics *domain.DashboardMetrics) error {
	key := fmt.Sprintf("%s:metrics:%s", dashboardKeyPrefix, dateKey)
	payload, err := json.Marshal(metrics)
	if err != nil {
		return fmt.Errorf("encode dashboard metrics cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisDashboardCache) GetCategorySales(ctx context.Context, days int) ([]domain.CategorySales, bool, error) {
	key := fmt.Sprintf("%s:category_sales:%d", dashboardKeyPrefix, days)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var breakdown []domain.CategorySales
	if err := json.Unmarshal(payload, &breakdown); err != nil {
		return nil, false, fmt.Errorf("decode category sales cache: %w", err)
	}

	return breakdown, true, nil
}

func (c *redisDashboardCache) SetCategorySales(ctx context.Context, days int, breakdown []domain.CategorySales) error {
	key := fmt.Sprintf("%s:category_sales:%d", dashboardKeyPrefix, days)
	payload, err := json.Marshal(breakdown)
	if err != nil {
		return fmt.Errorf("encode category sales cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisDashboardCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, dashboardKeyPrefix, dashboardScanBatchSize)
}

func (n *noopDashboardCache) GetMetrics(ctx context.Context, dateKey string) (*domain.DashboardMetrics, bool, error) {
	return nil, false, nil
}

func (n *noopDashboardCache) SetMetrics(ctx context.Context, dateKey string, metrics *domain.DashboardMetrics) error {
	return nil
}

func (n *noopDashboardCache) GetCategorySales(ctx context.Context, days int) ([]domain.CategorySales, bool, error) {
	return nil, false, nil
}

func (n *noopDashboardCache) SetCategorySales(ctx context.Context, days int, breakdown []domain.CategorySales) error {
	return nil
}

func (n *noopDashboardCache) InvalidateAll(ctx context.Context) error {
	return nil
}
