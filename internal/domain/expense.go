package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID          int64           `json:"id"`
	TenantID    int64           `json:"tenant_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	Active      bool            `json:"active"`
	DeletedAt   *time.Time      `json:"deleted_at"`
}
