// internal/repository/postgres/sales_repository.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Akmalwizdom/siprems-backend/internal/domain"
	"github.com/Akmalwizdom/siprems-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type salesRepository struct {
	db *sqlx.DB
}

func NewSalesRepository(db *sqlx.DB) repository.SalesRepository {
	return &salesRepository{db: db}
}

func (r *salesRepository) GetSalesSince(ctx context.Context, since time.Time) ([]domain.SalesRecord, error) {
	query := `
        SELECT ti.product_id, ti.quantity, ti.unit_price, t.date AS transaction_date
        FROM transaction_items ti
        JOIN transactions t ON t.id = ti.transaction_id
        WHERE t.date >= $1
        ORDER BY t.date
    `

	var records []domain.SalesRecord
	if err := r.db.SelectContext(ctx, &records, query, since); err != nil {
		return nil, fmt.Errorf("error getting sales since %s: %w", since.Format("2006-01-02"), err)
	}

	return records, nil
}

func (r *salesRepository) GetDailySales(ctx context.Context) ([]domain.DailySales, error) {
	query := `
        SELECT ds, y AS total
        FROM daily_sales_summary
        ORDER BY ds
    `

	var days []domain.DailySales
	if err := r.db.SelectContext(ctx, &days, query); err != nil {
		return nil, fmt.Errorf("error getting daily sales summary: %w", err)
	}

	return days, nil
}
