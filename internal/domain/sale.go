package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnknownProductName agrupa os itens de venda que chegaram sem nome de produto
const UnknownProductName = "Producto desconocido"

// SaleItem é uma linha de venda no formato canônico
type SaleItem struct {
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type Sale struct {
	ID        int64           `json:"id"`
	TenantID  int64           `json:"tenant_id"`
	Total     decimal.Decimal `json:"total"`
	Items     []SaleItem      `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
	Active    bool            `json:"active"`
	DeletedAt *time.Time      `json:"deleted_at"`
}
