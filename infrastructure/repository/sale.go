package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/pos-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/pos-dashboard-api/internal/domain"
	"github.com/vfg2006/pos-dashboard-api/pkg/log"
)

const salesTable = "sales"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:generate mockgen -source=sale.go -destination=mocks/sale.go -package=mocks
type SaleRepository interface {
	ListByPeriod(ctx context.Context, tenantID int64, period domain.Period) ([]domain.Sale, error)
}

type saleRepository struct {
	conn postgres.Queryer
}

func NewSaleRepository(conn postgres.Queryer) SaleRepository {
	return &saleRepository{
		conn: conn,
	}
}

// ListByPeriod devolve as vendas ativas do período, da mais recente para a mais antiga
func (r *saleRepository) ListByPeriod(ctx context.Context, tenantID int64, period domain.Period) ([]domain.Sale, error) {
	query, args, err := squirrel.
		Select("id", "tenant_id", "total", "items", "created_at", "active", "deleted_at").
		From(salesTable).
		Where(activeRecordsBetween(tenantID, period.Start, period.End)).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar vendas: %w", err)
	}
	defer rows.Close()

	sales := make([]domain.Sale, 0)
	for rows.Next() {
		var (
			sale     domain.Sale
			rawItems []byte
		)
		if err := rows.Scan(
			&sale.ID,
			&sale.TenantID,
			&sale.Total,
			&rawItems,
			&sale.CreatedAt,
			&sale.Active,
			&sale.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear venda: %w", err)
		}

		sale.Items = decodeSaleItems(ctx, sale.ID, rawItems)
		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return sales, nil
}

type saleItemRow struct {
	ProductName *string          `json:"product_name"`
	Quantity    *decimal.Decimal `json:"quantity"`
	UnitCost    *decimal.Decimal `json:"unit_cost"`
	LineTotal   *decimal.Decimal `json:"line_total"`
}

// decodeSaleItems converte a coluna JSONB de itens para o formato canônico.
// Itens que não são objetos são descartados; campos ausentes viram zero e são registrados no log.
func decodeSaleItems(ctx context.Context, saleID int64, raw []byte) []domain.SaleItem {
	if len(raw) == 0 {
		return nil
	}

	logger := log.ForContext(ctx).WithField("sale_id", saleID)

	var rawItems []jsoniter.RawMessage
	if err := json.Unmarshal(raw, &rawItems); err != nil {
		logger.WithError(err).Warn("Itens da venda em formato inválido, venda considerada sem itens")
		return nil
	}

	items := make([]domain.SaleItem, 0, len(rawItems))
	for i, rawItem := range rawItems {
		var row saleItemRow
		if err := json.Unmarshal(rawItem, &row); err != nil {
			logger.WithError(err).Warnf("Item %d da venda descartado: formato inválido", i)
			continue
		}

		item := domain.SaleItem{
			Quantity:  valueOrZero(row.Quantity),
			UnitCost:  valueOrZero(row.UnitCost),
			LineTotal: valueOrZero(row.LineTotal),
		}

		var missing []string
		if row.ProductName == nil || strings.TrimSpace(*row.ProductName) == "" {
			missing = append(missing, "product_name")
		} else {
			item.ProductName = *row.ProductName
		}
		if row.Quantity == nil {
			missing = append(missing, "quantity")
		}
		if row.UnitCost == nil {
			missing = append(missing, "unit_cost")
		}
		if row.LineTotal == nil {
			missing = append(missing, "line_total")
		}
		if len(missing) > 0 {
			logger.Warnf("Item %d da venda sem os campos %s", i, strings.Join(missing, ", "))
		}

		items = append(items, item)
	}

	return items
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
