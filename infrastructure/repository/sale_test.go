package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/pos-dashboard-api/internal/domain"
)

func TestDecodeSaleItems(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		raw      string
		validate func(t *testing.T, items []domain.SaleItem)
	}{
		{
			name: "Itens completos - converte todos os campos",
			raw:  `[{"product_name":"Café","quantity":2,"unit_cost":"10.50","line_total":30}]`,
			validate: func(t *testing.T, items []domain.SaleItem) {
				require.Len(t, items, 1)
				assert.Equal(t, "Café", items[0].ProductName)
				assert.True(t, decimal.NewFromInt(2).Equal(items[0].Quantity))
				assert.True(t, decimal.RequireFromString("10.50").Equal(items[0].UnitCost))
				assert.True(t, decimal.NewFromInt(30).Equal(items[0].LineTotal))
			},
		},
		{
			name: "Item sem nome - mantém o item com nome vazio",
			raw:  `[{"quantity":1,"unit_cost":5,"line_total":5},{"product_name":"  ","quantity":1,"unit_cost":5,"line_total":5}]`,
			validate: func(t *testing.T, items []domain.SaleItem) {
				require.Len(t, items, 2)
				assert.Empty(t, items[0].ProductName)
				assert.Empty(t, items[1].ProductName)
			},
		},
		{
			name: "Campos numéricos ausentes - viram zero",
			raw:  `[{"product_name":"Pan"}]`,
			validate: func(t *testing.T, items []domain.SaleItem) {
				require.Len(t, items, 1)
				assert.True(t, items[0].Quantity.IsZero())
				assert.True(t, items[0].LineTotal.IsZero())
			},
		},
		{
			name: "Item que não é objeto - é descartado",
			raw:  `["texto", {"product_name":"Pan","quantity":1,"unit_cost":1,"line_total":1}]`,
			validate: func(t *testing.T, items []domain.SaleItem) {
				require.Len(t, items, 1)
				assert.Equal(t, "Pan", items[0].ProductName)
			},
		},
		{
			name: "Coluna inválida - venda sem itens",
			raw:  `{"product_name":"Pan"}`,
			validate: func(t *testing.T, items []domain.SaleItem) {
				assert.Empty(t, items)
			},
		},
		{
			name: "Coluna vazia - venda sem itens",
			raw:  ``,
			validate: func(t *testing.T, items []domain.SaleItem) {
				assert.Empty(t, items)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, decodeSaleItems(ctx, 1, []byte(tt.raw)))
		})
	}
}

func TestActiveRecordsBetween(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 23, 59, 59, 0, time.UTC)

	query, args, err := squirrel.
		Select("id").
		From(salesTable).
		Where(activeRecordsBetween(7, start, end)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id FROM sales WHERE (tenant_id = $1 AND active = $2 AND deleted_at IS NULL AND created_at BETWEEN $3 AND $4)",
		query,
	)
	assert.Equal(t, []interface{}{int64(7), true, start, end}, args)
}
