// internal/repository/postgres/product_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/Akmalwizdom/siprems-backend/internal/domain"
	"github.com/Akmalwizdom/siprems-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type productRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetCatalog(ctx context.Context) ([]domain.ProductCatalogEntry, error) {
	query := `
        SELECT id, name, COALESCE(category, '') AS category, stock, selling_price
        FROM products
        ORDER BY name
    `

	var catalog []domain.ProductCatalogEntry
	if err := r.db.SelectContext(ctx, &catalog, query); err != nil {
		return nil, fmt.Errorf("error getting product catalog: %w", err)
	}

	return catalog, nil
}
