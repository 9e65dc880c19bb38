package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CloseRecord é o registro imutável de um fechamento (cierre) de período
type CloseRecord struct {
	ID                int64           `json:"id"`
	TenantID          int64           `json:"tenant_id"`
	PeriodStart       time.Time       `json:"period_start"`
	PeriodEnd         time.Time       `json:"period_end"`
	PeriodType        PeriodType      `json:"period_type"`
	SalesTotal        decimal.Decimal `json:"sales_total"`
	PurchasesTotal    decimal.Decimal `json:"purchases_total"`
	ConsumptionTotal  decimal.Decimal `json:"consumption_total"`
	ExpensesTotal     decimal.Decimal `json:"expenses_total"`
	NetProfit         decimal.Decimal `json:"net_profit"`
	ExpectedCash      decimal.Decimal `json:"expected_cash"`
	CountedCash       decimal.Decimal `json:"counted_cash"`
	CashVariance      decimal.Decimal `json:"cash_variance"`
	ExpectedInventory decimal.Decimal `json:"expected_inventory"`
	CountedInventory  decimal.Decimal `json:"counted_inventory"`
	InventoryVariance decimal.Decimal `json:"inventory_variance"`
	Balanced          bool            `json:"balanced"`
	Notes             string          `json:"notes"`
	CreatedBy         int64           `json:"created_by"`
	CreatedAt         time.Time       `json:"created_at"`
}

type CloseStep string

const (
	CloseStepDrafting  CloseStep = "drafting"
	CloseStepReviewing CloseStep = "reviewing"
	CloseStepSaved     CloseStep = "saved"
	CloseStepAbandoned CloseStep = "abandoned"
)

// CloseDraft é o estado explícito de uma tentativa de fechamento
type CloseDraft struct {
	ID                string          `json:"id"`
	TenantID          int64           `json:"tenant_id"`
	UserID            int64           `json:"user_id"`
	Period            Period          `json:"period"`
	Step              CloseStep       `json:"step"`
	SalesTotal        decimal.Decimal `json:"sales_total"`
	PurchasesTotal    decimal.Decimal `json:"purchases_total"`
	ConsumptionTotal  decimal.Decimal `json:"consumption_total"`
	ExpensesTotal     decimal.Decimal `json:"expenses_total"`
	NetProfit         decimal.Decimal `json:"net_profit"`
	ExpectedCash      decimal.Decimal `json:"expected_cash"`
	ExpectedInventory decimal.Decimal `json:"expected_inventory"`
	CountedCash       decimal.Decimal `json:"counted_cash"`
	CountedInventory  decimal.Decimal `json:"counted_inventory"`
	CashVariance      decimal.Decimal `json:"cash_variance"`
	InventoryVariance decimal.Decimal `json:"inventory_variance"`
	Balanced          bool            `json:"balanced"`
	Notes             string          `json:"notes"`
	CreatedAt         time.Time       `json:"created_at"`
	Record            *CloseRecord    `json:"record,omitempty"`
}
