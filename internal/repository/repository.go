// internal/repository/repository.go
package repository

import (
	"context"
	"time"

	"github.com/Akmalwizdom/siprems-backend/internal/domain"
)

// SalesRepository reads the transaction log.
type SalesRepository interface {
	// GetSalesSince returns sale line items with a transaction date on or
	// after the given instant.
	GetSalesSince(ctx context.Context, since time.Time) ([]domain.SalesRecord, error)
	// GetDailySales returns the per-day revenue totals, oldest first.
	GetDailySales(ctx context.Context) ([]domain.DailySales, error)
}

// ProductRepository reads the active product catalog.
type ProductRepository interface {
	GetCatalog(ctx context.Context) ([]domain.ProductCatalogEntry, error)
}

// CalendarRepository reads user-authored calendar events.
type CalendarRepository interface {
	// GetActiveEvents returns calendar events, excluding ones the user
	// has rejected.
	GetActiveEvents(ctx context.Context) ([]domain.CalendarEvent, error)
}

// DashboardRepository aggregates the dashboard metrics.
type DashboardRepository interface {
	GetMetrics(ctx context.Context, day time.Time) (*domain.DashboardMetrics, error)
	GetSalesChart(ctx context.Context, days int) ([]domain.SalesChartPoint, error)
	GetCategorySales(ctx context.Context, days int) ([]domain.CategorySales, error)
}
