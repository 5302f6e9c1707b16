// internal/repository/postgres/dashboard_repository.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Akmalwizdom/siprems-backend/internal/domain"
	"github.com/Akmalwizdom/siprems-backend/internal/repository"
	"github.com/Akmalwizdom/siprems-backend/internal/timeutil"
	"github.com/jmoiron/sqlx"
)

const lowStockThreshold = 10

type dashboardRepository struct {
	db *sqlx.DB
}

func NewDashboardRepository(db *sqlx.DB) repository.DashboardRepository {
	return &dashboardRepository{db: db}
}

// GetMetrics aggregates today's trading numbers. The day boundary is the
// store-local (WIB) calendar day, not the server's.
func (r *dashboardRepository) GetMetrics(ctx context.Context, day time.Time) (*domain.DashboardMetrics, error) {
	start := timeutil.Midnight(day)
	end := start.AddDate(0, 0, 1)

	// Revenue and item counts are aggregated separately; joining items onto
	// transactions would repeat each transaction total once per line item.
	query := `
        SELECT
            (SELECT COALESCE(SUM(total_amount), 0)
             FROM transactions
             WHERE date >= $1 AND date < $2) AS today_revenue,
            (SELECT COUNT(*)
             FROM transactions
             WHERE date >= $1 AND date < $2) AS today_transactions,
            (SELECT COALESCE(SUM(ti.quantity), 0)
             FROM transaction_items ti
             JOIN transactions t ON t.id = ti.transaction_id
             WHERE t.date >= $1 AND t.date < $2) AS items_sold
    `

	var metrics domain.DashboardMetrics
	if err := r.db.GetContext(ctx, &metrics, query, start, end); err != nil {
		return nil, fmt.Errorf("error getting dashboard metrics: %w", err)
	}

	lowStockQuery := `SELECT COUNT(*) FROM products WHERE stock < $1`
	if err := r.db.GetContext(ctx, &metrics.LowStockCount, lowStockQuery, lowStockThreshold); err != nil {
		return nil, fmt.Errorf("error counting low stock products: %w", err)
	}

	return &metrics, nil
}

func (r *dashboardRepository) GetSalesChart(ctx context.Context, days int) ([]domain.SalesChartPoint, error) {
	if days <= 0 {
		days = 30
	}

	query := `
        SELECT to_char(ds, 'YYYY-MM-DD') AS date, y AS total
        FROM daily_sales_summary
        WHERE ds >= current_date - ($1 || ' days')::interval
        ORDER BY ds
    `

	var points []domain.SalesChartPoint
	if err := r.db.SelectContext(ctx, &points, query, days); err != nil {
		return nil, fmt.Errorf("error getting sales chart: %w", err)
	}

	return points, nil
}

func (r *dashboardRepository) GetCategorySales(ctx context.Context, days int) ([]domain.CategorySales, error) {
	if days <= 0 {
		days = 30
	}

	query := `
        SELECT
            COALESCE(p.category, 'Uncategorized') AS category,
            COALESCE(SUM(ti.quantity * ti.unit_price), 0) AS revenue,
            COALESCE(SUM(ti.quantity), 0) AS units
        FROM transaction_items ti
        JOIN transactions t ON t.id = ti.transaction_id
        LEFT JOIN products p ON p.id = ti.product_id
        WHERE t.date >= NOW() - ($1 || ' days')::interval
        GROUP BY COALESCE(p.category, 'Uncategorized')
        ORDER BY revenue DESC
    `

	var breakdown []domain.CategorySales
	if err := r.db.SelectContext(ctx, &breakdown, query, days); err != nil {
		return nil, fmt.Errorf("error getting category sales: %w", err)
	}

	return breakdown, nil
}
