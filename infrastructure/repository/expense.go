package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/pos-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/pos-dashboard-api/internal/domain"
)

const expensesTable = "expenses"

//go:generate mockgen -source=expense.go -destination=mocks/expense.go -package=mocks
type ExpenseRepository interface {
	ListByPeriod(ctx context.Context, tenantID int64, period domain.Period) ([]domain.Expense, error)
}

type expenseRepository struct {
	conn postgres.Queryer
}

func NewExpenseRepository(conn postgres.Queryer) ExpenseRepository {
	return &expenseRepository{
		conn: conn,
	}
}

func (r *expenseRepository) ListByPeriod(ctx context.Context, tenantID int64, period domain.Period) ([]domain.Expense, error) {
	query, args, err := squirrel.
		Select("id", "tenant_id", "amount", "description", "created_at", "active", "deleted_at").
		From(expensesTable).
		Where(activeRecordsBetween(tenantID, period.Start, period.End)).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar despesas: %w", err)
	}
	defer rows.Close()

	expenses := make([]domain.Expense, 0)
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(
			&e.ID,
			&e.TenantID,
			&e.Amount,
			&e.Description,
			&e.CreatedAt,
			&e.Active,
			&e.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear despesa: %w", err)
		}
		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return expenses, nil
}
