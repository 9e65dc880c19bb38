package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/pos-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/pos-dashboard-api/internal/domain"
)

const productsTable = "products"

//go:generate mockgen -source=product.go -destination=mocks/product.go -package=mocks
type ProductRepository interface {
	ListActive(ctx context.Context, tenantID int64) ([]domain.Product, error)
}

type productRepository struct {
	conn postgres.Queryer
}

func NewProductRepository(conn postgres.Queryer) ProductRepository {
	return &productRepository{
		conn: conn,
	}
}

// ListActive devolve o catálogo atual, sem filtro de período
func (r *productRepository) ListActive(ctx context.Context, tenantID int64) ([]domain.Product, error) {
	query, args, err := squirrel.
		Select("id", "tenant_id", "name", "code", "current_stock", "sale_price", "active", "deleted_at").
		From(productsTable).
		Where(activeRecords(tenantID)).
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar produtos: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID,
			&p.TenantID,
			&p.Name,
			&p.Code,
			&p.CurrentStock,
			&p.SalePrice,
			&p.Active,
			&p.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear produto: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return products, nil
}
