package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSnapshot é o conjunto completo de métricas derivado de uma carga. Nunca é persistido.
type DashboardSnapshot struct {
	Period          Period            `json:"period"`
	Summary         Summary           `json:"summary"`
	TopProducts     []TopProduct      `json:"top_products"`
	Chart           []ChartEntry      `json:"chart"`
	DailySeries     []DailyBucket     `json:"daily_series"`
	CumulativeTrend []CumulativePoint `json:"cumulative_trend"`
	RecentMovements []RecentMovement  `json:"recent_movements"`
	Alerts          Alerts            `json:"alerts"`
	KPIs            KPIs              `json:"kpis"`
}

// Summary guarda os totais do período.
// ConsumptionTotal soma consumos pessoais e despesas; GrossProfit desconta apenas os consumos.
type Summary struct {
	SalesTotal               decimal.Decimal `json:"sales_total"`
	SalesCount               int             `json:"sales_count"`
	PurchasesTotal           decimal.Decimal `json:"purchases_total"`
	PersonalConsumptionTotal decimal.Decimal `json:"personal_consumption_total"`
	ExpensesTotal            decimal.Decimal `json:"expenses_total"`
	ConsumptionTotal         decimal.Decimal `json:"consumption_total"`
	GrossProfit              decimal.Decimal `json:"gross_profit"`
}

type TopProduct struct {
	Rank          int             `json:"rank"`
	Name          string          `json:"name"`
	Code          string          `json:"code"`
	QuantitySold  decimal.Decimal `json:"quantity_sold"`
	Revenue       decimal.Decimal `json:"revenue"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Stock         decimal.Decimal `json:"stock"`
	MarginPercent int64           `json:"margin_percent"`
	InCatalog     bool            `json:"in_catalog"`
}

type ChartEntry struct {
	Label        string          `json:"label"`
	Revenue      decimal.Decimal `json:"revenue"`
	SharePercent int64           `json:"share_percent"`
}

type DailyBucket struct {
	Label        string          `json:"label"`
	Date         time.Time       `json:"date"`
	Sales        decimal.Decimal `json:"sales"`
	Purchases    decimal.Decimal `json:"purchases"`
	Consumptions decimal.Decimal `json:"consumptions"`
	Expenses     decimal.Decimal `json:"expenses"`
}

type CumulativePoint struct {
	Label string          `json:"label"`
	Date  time.Time       `json:"date"`
	Total decimal.Decimal `json:"total"`
}

type RecentMovementType string

const (
	RecentMovementSale        RecentMovementType = "venta"
	RecentMovementPurchase    RecentMovementType = "entrada"
	RecentMovementConsumption RecentMovementType = "consumo_personal"
)

type RecentMovement struct {
	Type        RecentMovementType `json:"type"`
	Description string             `json:"description"`
	Quantity    decimal.Decimal    `json:"quantity"`
	Amount      decimal.Decimal    `json:"amount"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

type Alerts struct {
	LowStock       []string    `json:"low_stock"`
	NoMovement     []string    `json:"no_movement"`
	MostProfitable *TopProduct `json:"most_profitable"`
}

type KPIs struct {
	AvgTicket             decimal.Decimal `json:"avg_ticket"`
	TopRotationProduct    string          `json:"top_rotation_product"`
	MostProfitableProduct string          `json:"most_profitable_product"`
}
