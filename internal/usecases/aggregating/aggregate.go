package aggregating

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/pos-dashboard-api/internal/domain"
	"github.com/vfg2006/pos-dashboard-api/pkg/log"
	"github.com/vfg2006/pos-dashboard-api/pkg/utils"
)

const (
	topProductsLimit        = 5
	alertListLimit          = 5
	chartLabelMaxRunes      = 15
	recentSalesLimit        = 10
	recentPurchasesLimit    = 5
	recentConsumptionsLimit = 5
	recentMovementsLimit    = 10
	dailyBucketCount        = 7
	notAvailable            = "N/A"
	ellipsis                = "..."
)

var (
	lowStockThreshold = decimal.NewFromInt(10)
	hundred           = decimal.NewFromInt(100)
)

// Abreviações dos dias da semana indexadas por time.Weekday
var weekdayLabels = [7]string{"Dom", "Lun", "Mar", "Mié", "Jue", "Vie", "Sáb"}

// Records são os conjuntos brutos de um período, já filtrados por tenant
type Records struct {
	Sales        []domain.Sale
	Purchases    []domain.InventoryMovement
	Consumptions []domain.InventoryMovement
	Expenses     []domain.Expense
	Products     []domain.Product
}

type productRollup struct {
	name     string
	quantity decimal.Decimal
	revenue  decimal.Decimal
	unitCost decimal.Decimal
}

// Aggregate calcula todas as métricas do dashboard a partir dos registros brutos.
// now define o fim da janela de 7 dias e o fuso usado para agrupar por dia da semana.
func Aggregate(ctx context.Context, records Records, now time.Time) domain.DashboardSnapshot {
	summary := summarize(records)
	rollup := rollupProducts(ctx, records.Sales)
	catalog := indexCatalog(records.Products)
	topProducts := rankTopProducts(rollup, catalog)
	mostProfitable := pickMostProfitable(topProducts)
	daily := buildDailySeries(records, now)

	return domain.DashboardSnapshot{
		Summary:         summary,
		TopProducts:     topProducts,
		Chart:           buildChart(topProducts, summary.SalesTotal),
		DailySeries:     daily,
		CumulativeTrend: buildCumulativeTrend(daily),
		RecentMovements: buildRecentMovements(records),
		Alerts: domain.Alerts{
			LowStock:       lowStockAlerts(records.Products),
			NoMovement:     noMovementAlerts(records.Products, rollup),
			MostProfitable: mostProfitable,
		},
		KPIs: buildKPIs(summary, topProducts, mostProfitable),
	}
}

func summarize(records Records) domain.Summary {
	summary := domain.Summary{
		SalesTotal:               decimal.Zero,
		SalesCount:               len(records.Sales),
		PurchasesTotal:           decimal.Zero,
		PersonalConsumptionTotal: decimal.Zero,
		ExpensesTotal:            decimal.Zero,
	}

	for _, sale := range records.Sales {
		summary.SalesTotal = summary.SalesTotal.Add(sale.Total)
	}
	for _, purchase := range records.Purchases {
		summary.PurchasesTotal = summary.PurchasesTotal.Add(purchase.CostTotal)
	}
	for _, consumption := range records.Consumptions {
		summary.PersonalConsumptionTotal = summary.PersonalConsumptionTotal.Add(consumption.CostTotal)
	}
	for _, expense := range records.Expenses {
		summary.ExpensesTotal = summary.ExpensesTotal.Add(expense.Amount)
	}

	// Despesas entram no total de consumos exibido, mas não no lucro bruto
	summary.ConsumptionTotal = summary.PersonalConsumptionTotal.Add(summary.ExpensesTotal)
	summary.GrossProfit = summary.SalesTotal.Sub(summary.PurchasesTotal).Sub(summary.PersonalConsumptionTotal)

	return summary
}

// rollupProducts agrupa os itens por nome exato, na ordem em que cada produto aparece pela primeira vez
func rollupProducts(ctx context.Context, sales []domain.Sale) []*productRollup {
	rollup := make([]*productRollup, 0)
	byName := make(map[string]*productRollup)
	unnamed := 0

	for _, sale := range sales {
		for _, item := range sale.Items {
			name := item.ProductName
			if name == "" {
				name = domain.UnknownProductName
				unnamed++
			}

			entry, ok := byName[name]
			if !ok {
				entry = &productRollup{name: name, quantity: decimal.Zero, revenue: decimal.Zero}
				byName[name] = entry
				rollup = append(rollup, entry)
			}

			entry.quantity = entry.quantity.Add(item.Quantity)
			entry.revenue = entry.revenue.Add(item.LineTotal)
			entry.unitCost = item.UnitCost
		}
	}

	if unnamed > 0 {
		log.ForContext(ctx).WithField("unnamed_items", unnamed).
			Warnf("%d itens de venda sem nome agrupados em %q", unnamed, domain.UnknownProductName)
	}

	return rollup
}

// indexCatalog indexa o catálogo por nome exato; o primeiro produto com o nome vence
func indexCatalog(products []domain.Product) map[string]domain.Product {
	catalog := make(map[string]domain.Product, len(products))
	for _, p := range products {
		if _, exists := catalog[p.Name]; !exists {
			catalog[p.Name] = p
		}
	}
	return catalog
}

func rankTopProducts(rollup []*productRollup, catalog map[string]domain.Product) []domain.TopProduct {
	ranked := make([]*productRollup, len(rollup))
	copy(ranked, rollup)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].revenue.GreaterThan(ranked[j].revenue)
	})

	if len(ranked) > topProductsLimit {
		ranked = ranked[:topProductsLimit]
	}

	top := make([]domain.TopProduct, 0, len(ranked))
	for i, entry := range ranked {
		tp := domain.TopProduct{
			Rank:         i + 1,
			Name:         entry.name,
			QuantitySold: entry.quantity,
			Revenue:      entry.revenue,
			UnitCost:     entry.unitCost,
			Code:         fmt.Sprintf("P%03d", i+1),
			SalePrice:    decimal.Zero,
			Stock:        decimal.Zero,
		}

		if product, ok := catalog[entry.name]; ok {
			tp.Code = product.Code
			tp.SalePrice = product.SalePrice
			tp.Stock = product.CurrentStock
			tp.InCatalog = true
		}

		tp.MarginPercent = marginPercent(tp.SalePrice, tp.UnitCost)
		top = append(top, tp)
	}

	return top
}

func marginPercent(salePrice, unitCost decimal.Decimal) int64 {
	if !salePrice.IsPositive() {
		return 0
	}
	return utils.RoundHalfUp(salePrice.Sub(unitCost).Div(salePrice).Mul(hundred))
}

func pickMostProfitable(top []domain.TopProduct) *domain.TopProduct {
	if len(top) == 0 {
		return nil
	}

	best := top[0]
	for _, tp := range top[1:] {
		if tp.MarginPercent > best.MarginPercent {
			best = tp
		}
	}
	return &best
}

func buildChart(top []domain.TopProduct, salesTotal decimal.Decimal) []domain.ChartEntry {
	chart := make([]domain.ChartEntry, 0, len(top))
	for _, tp := range top {
		entry := domain.ChartEntry{
			Label:   truncateLabel(tp.Name),
			Revenue: tp.Revenue,
		}
		if salesTotal.IsPositive() {
			entry.SharePercent = utils.RoundHalfUp(tp.Revenue.Div(salesTotal).Mul(hundred))
		}
		chart = append(chart, entry)
	}
	return chart
}

func truncateLabel(name string) string {
	runes := []rune(name)
	if len(runes) <= chartLabelMaxRunes {
		return name
	}
	return string(runes[:chartLabelMaxRunes]) + ellipsis
}

func lowStockAlerts(products []domain.Product) []string {
	alerts := make([]string, 0, alertListLimit)
	for _, p := range products {
		if len(alerts) == alertListLimit {
			break
		}
		if p.CurrentStock.LessThan(lowStockThreshold) {
			alerts = append(alerts, fmt.Sprintf("%s (%s und)", p.Name, p.CurrentStock.String()))
		}
	}
	return alerts
}

func noMovementAlerts(products []domain.Product, rollup []*productRollup) []string {
	sold := make(map[string]struct{}, len(rollup))
	for _, entry := range rollup {
		sold[entry.name] = struct{}{}
	}

	alerts := make([]string, 0, alertListLimit)
	for _, p := range products {
		if len(alerts) == alertListLimit {
			break
		}
		if _, ok := sold[p.Name]; !ok {
			alerts = append(alerts, p.Name)
		}
	}
	return alerts
}

// buildDailySeries monta 7 baldes, do dia mais antigo até hoje, um por dia da semana.
// Cada registro cai no balde do seu próprio dia da semana, mesmo que seja de outra semana.
func buildDailySeries(records Records, now time.Time) []domain.DailyBucket {
	location := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, location)

	buckets := make([]domain.DailyBucket, dailyBucketCount)
	byWeekday := make(map[time.Weekday]int, dailyBucketCount)
	for i := 0; i < dailyBucketCount; i++ {
		day := today.AddDate(0, 0, i-(dailyBucketCount-1))
		buckets[i] = domain.DailyBucket{
			Label:        weekdayLabels[day.Weekday()],
			Date:         day,
			Sales:        decimal.Zero,
			Purchases:    decimal.Zero,
			Consumptions: decimal.Zero,
			Expenses:     decimal.Zero,
		}
		byWeekday[day.Weekday()] = i
	}

	bucketFor := func(t time.Time) *domain.DailyBucket {
		return &buckets[byWeekday[t.In(location).Weekday()]]
	}

	for _, sale := range records.Sales {
		b := bucketFor(sale.CreatedAt)
		b.Sales = b.Sales.Add(sale.Total)
	}
	for _, purchase := range records.Purchases {
		b := bucketFor(purchase.CreatedAt)
		b.Purchases = b.Purchases.Add(purchase.CostTotal)
	}
	for _, consumption := range records.Consumptions {
		b := bucketFor(consumption.CreatedAt)
		b.Consumptions = b.Consumptions.Add(consumption.CostTotal)
	}
	for _, expense := range records.Expenses {
		b := bucketFor(expense.CreatedAt)
		b.Expenses = b.Expenses.Add(expense.Amount)
	}

	return buckets
}

func buildCumulativeTrend(daily []domain.DailyBucket) []domain.CumulativePoint {
	trend := make([]domain.CumulativePoint, 0, len(daily))
	running := decimal.Zero
	for _, bucket := range daily {
		running = running.Add(bucket.Sales)
		trend = append(trend, domain.CumulativePoint{
			Label: bucket.Label,
			Date:  bucket.Date,
			Total: running,
		})
	}
	return trend
}

// buildRecentMovements junta as primeiras vendas, entradas e consumos na ordem em que chegaram
// e ordena o resultado pelo horário original, do mais recente para o mais antigo
func buildRecentMovements(records Records) []domain.RecentMovement {
	productNames := make(map[int64]string, len(records.Products))
	for _, p := range records.Products {
		productNames[p.ID] = p.Name
	}

	movements := make([]domain.RecentMovement, 0, recentSalesLimit+recentPurchasesLimit+recentConsumptionsLimit)

	for _, sale := range firstN(records.Sales, recentSalesLimit) {
		movement := domain.RecentMovement{
			Type:        domain.RecentMovementSale,
			Description: domain.UnknownProductName,
			Quantity:    decimal.Zero,
			Amount:      sale.Total,
			OccurredAt:  sale.CreatedAt,
		}
		if len(sale.Items) > 0 {
			if name := sale.Items[0].ProductName; name != "" {
				movement.Description = name
			}
			movement.Quantity = sale.Items[0].Quantity
		}
		movements = append(movements, movement)
	}

	for _, purchase := range firstN(records.Purchases, recentPurchasesLimit) {
		movements = append(movements, movementEntry(domain.RecentMovementPurchase, purchase, productNames))
	}
	for _, consumption := range firstN(records.Consumptions, recentConsumptionsLimit) {
		movements = append(movements, movementEntry(domain.RecentMovementConsumption, consumption, productNames))
	}

	sort.SliceStable(movements, func(i, j int) bool {
		return movements[i].OccurredAt.After(movements[j].OccurredAt)
	})

	return firstN(movements, recentMovementsLimit)
}

func movementEntry(kind domain.RecentMovementType, m domain.InventoryMovement, productNames map[int64]string) domain.RecentMovement {
	description, ok := productNames[m.ProductID]
	if !ok {
		description = domain.UnknownProductName
	}

	return domain.RecentMovement{
		Type:        kind,
		Description: description,
		Quantity:    m.Quantity,
		Amount:      m.CostTotal,
		OccurredAt:  m.CreatedAt,
	}
}

func buildKPIs(summary domain.Summary, top []domain.TopProduct, mostProfitable *domain.TopProduct) domain.KPIs {
	kpis := domain.KPIs{
		AvgTicket:             decimal.Zero,
		TopRotationProduct:    notAvailable,
		MostProfitableProduct: notAvailable,
	}

	if summary.SalesCount > 0 {
		kpis.AvgTicket = utils.RoundWithTwoDecimalPlace(summary.SalesTotal.Div(decimal.NewFromInt(int64(summary.SalesCount))))
	}
	if len(top) > 0 {
		kpis.TopRotationProduct = top[0].Name
	}
	if mostProfitable != nil {
		kpis.MostProfitableProduct = mostProfitable.Name
	}

	return kpis
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
