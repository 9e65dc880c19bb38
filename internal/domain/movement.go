package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type MovementType string

const (
	MovementTypePurchase    MovementType = "entrada"
	MovementTypeConsumption MovementType = "consumo_personal"
)

// InventoryMovement representa uma entrada de mercadoria ou um consumo pessoal
type InventoryMovement struct {
	ID        int64           `json:"id"`
	TenantID  int64           `json:"tenant_id"`
	Type      MovementType    `json:"type"`
	CostTotal decimal.Decimal `json:"cost_total"`
	Quantity  decimal.Decimal `json:"quantity"`
	ProductID int64           `json:"product_id"`
	CreatedAt time.Time       `json:"created_at"`
	Active    bool            `json:"active"`
	DeletedAt *time.Time      `json:"deleted_at"`
}
