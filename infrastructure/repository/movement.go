package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/pos-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/pos-dashboard-api/internal/domain"
)

const movementsTable = "inventory_movements"

//go:generate mockgen -source=movement.go -destination=mocks/movement.go -package=mocks
type MovementRepository interface {
	ListByPeriod(ctx context.Context, tenantID int64, movementType domain.MovementType, period domain.Period) ([]domain.InventoryMovement, error)
}

type movementRepository struct {
	conn postgres.Queryer
}

func NewMovementRepository(conn postgres.Queryer) MovementRepository {
	return &movementRepository{
		conn: conn,
	}
}

func (r *movementRepository) ListByPeriod(ctx context.Context, tenantID int64, movementType domain.MovementType, period domain.Period) ([]domain.InventoryMovement, error) {
	query, args, err := squirrel.
		Select("id", "tenant_id", "type", "cost_total", "quantity", "COALESCE(product_id, 0)", "created_at", "active", "deleted_at").
		From(movementsTable).
		Where(activeRecordsBetween(tenantID, period.Start, period.End)).
		Where(squirrel.Eq{"type": string(movementType)}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar movimentos de %s: %w", movementType, err)
	}
	defer rows.Close()

	movements := make([]domain.InventoryMovement, 0)
	for rows.Next() {
		var m domain.InventoryMovement
		if err := rows.Scan(
			&m.ID,
			&m.TenantID,
			&m.Type,
			&m.CostTotal,
			&m.Quantity,
			&m.ProductID,
			&m.CreatedAt,
			&m.Active,
			&m.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear movimento: %w", err)
		}
		movements = append(movements, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return movements, nil
}
