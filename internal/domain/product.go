package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product é o cadastro atual do produto. O estoque não é historizado por período.
type Product struct {
	ID           int64           `json:"id"`
	TenantID     int64           `json:"tenant_id"`
	Name         string          `json:"name"`
	Code         string          `json:"code"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	Active       bool            `json:"active"`
	DeletedAt    *time.Time      `json:"deleted_at"`
}
