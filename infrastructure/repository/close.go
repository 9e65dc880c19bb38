package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/pos-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/pos-dashboard-api/internal/domain"
)

const closesTable = "closes"

var closeColumns = []string{
	"id", "tenant_id", "period_start", "period_end", "period_type",
	"sales_total", "purchases_total", "consumption_total", "expenses_total", "net_profit",
	"expected_cash", "counted_cash", "cash_variance",
	"expected_inventory", "counted_inventory", "inventory_variance",
	"balanced", "notes", "created_by", "created_at",
}

// CloseRepository grava fechamentos. Não existe caminho de atualização ou remoção.
//
//go:generate mockgen -source=close.go -destination=mocks/close.go -package=mocks
type CloseRepository interface {
	GetByPeriod(ctx context.Context, tenantID int64, start, end time.Time) (*domain.CloseRecord, error)
	Insert(ctx context.Context, record *domain.CloseRecord) error
	ListByTenant(ctx context.Context, tenantID int64, limit uint64) ([]domain.CloseRecord, error)
}

type closeRepository struct {
	conn postgres.Queryer
}

func NewCloseRepository(conn postgres.Queryer) CloseRepository {
	return &closeRepository{
		conn: conn,
	}
}

func (r *closeRepository) GetByPeriod(ctx context.Context, tenantID int64, start, end time.Time) (*domain.CloseRecord, error) {
	query, args, err := squirrel.
		Select(closeColumns...).
		From(closesTable).
		Where(squirrel.Eq{"tenant_id": tenantID, "period_start": start, "period_end": end}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	record, err := scanClose(r.conn.QueryRow(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar fechamento: %w", err)
	}

	return record, nil
}

// Insert preenche ID e CreatedAt do registro. Devolve ErrUniqueViolation se o período já foi fechado.
func (r *closeRepository) Insert(ctx context.Context, record *domain.CloseRecord) error {
	query, args, err := squirrel.
		Insert(closesTable).
		Columns(closeColumns[1 : len(closeColumns)-1]...).
		Values(
			record.TenantID,
			record.PeriodStart,
			record.PeriodEnd,
			string(record.PeriodType),
			record.SalesTotal,
			record.PurchasesTotal,
			record.ConsumptionTotal,
			record.ExpensesTotal,
			record.NetProfit,
			record.ExpectedCash,
			record.CountedCash,
			record.CashVariance,
			record.ExpectedInventory,
			record.CountedInventory,
			record.InventoryVariance,
			record.Balanced,
			record.Notes,
			record.CreatedBy,
		).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(ctx, query, args...).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUniqueViolation
		}
		return fmt.Errorf("erro ao inserir fechamento: %w", err)
	}

	return nil
}

// ListByTenant devolve o histórico de fechamentos, do mais recente para o mais antigo
func (r *closeRepository) ListByTenant(ctx context.Context, tenantID int64, limit uint64) ([]domain.CloseRecord, error) {
	builder := squirrel.
		Select(closeColumns...).
		From(closesTable).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("period_end DESC", "id DESC").
		PlaceholderFormat(squirrel.Dollar)

	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar fechamentos: %w", err)
	}
	defer rows.Close()

	records := make([]domain.CloseRecord, 0)
	for rows.Next() {
		record, err := scanClose(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear fechamento: %w", err)
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClose(row rowScanner) (*domain.CloseRecord, error) {
	var c domain.CloseRecord
	err := row.Scan(
		&c.ID,
		&c.TenantID,
		&c.PeriodStart,
		&c.PeriodEnd,
		&c.PeriodType,
		&c.SalesTotal,
		&c.PurchasesTotal,
		&c.ConsumptionTotal,
		&c.ExpensesTotal,
		&c.NetProfit,
		&c.ExpectedCash,
		&c.CountedCash,
		&c.CashVariance,
		&c.ExpectedInventory,
		&c.CountedInventory,
		&c.InventoryVariance,
		&c.Balanced,
		&c.Notes,
		&c.CreatedBy,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
