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

const accessTokensTable = "access_tokens"

//go:generate mockgen -source=access_token.go -destination=mocks/access_token.go -package=mocks
type AccessTokenRepository interface {
	GetByHash(ctx context.Context, tokenHash, purpose string) (*domain.AccessToken, error)
	ConsumeUse(ctx context.Context, tokenID int64, expectedUses int, now time.Time) (bool, error)
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type accessTokenRepository struct {
	conn postgres.Queryer
}

func NewAccessTokenRepository(conn postgres.Queryer) AccessTokenRepository {
	return &accessTokenRepository{
		conn: conn,
	}
}

// GetByHash devolve nil, nil quando não existe token com o hash e o propósito informados
func (r *accessTokenRepository) GetByHash(ctx context.Context, tokenHash, purpose string) (*domain.AccessToken, error) {
	query, args, err := squirrel.
		Select("id", "tenant_id", "user_id", "token_hash", "purpose", "expires_at", "uses_count", "last_used_at", "created_at").
		From(accessTokensTable).
		Where(squirrel.Eq{"token_hash": tokenHash, "purpose": purpose}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var token domain.AccessToken
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&token.ID,
		&token.TenantID,
		&token.UserID,
		&token.TokenHash,
		&token.Purpose,
		&token.ExpiresAt,
		&token.UsesCount,
		&token.LastUsedAt,
		&token.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar token de acesso: %w", err)
	}

	return &token, nil
}

// ConsumeUse incrementa uses_count somente se ninguém o consumiu desde a leitura e o token ainda vale.
// Retorna false quando a condição não é satisfeita.
func (r *accessTokenRepository) ConsumeUse(ctx context.Context, tokenID int64, expectedUses int, now time.Time) (bool, error) {
	query, args, err := squirrel.
		Update(accessTokensTable).
		Set("uses_count", squirrel.Expr("uses_count + 1")).
		Set("last_used_at", now).
		Where(squirrel.Eq{"id": tokenID, "uses_count": expectedUses}).
		Where(squirrel.GtOrEq{"expires_at": now}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao consumir token de acesso: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao obter linhas afetadas: %w", err)
	}

	return affected == 1, nil
}

func (r *accessTokenRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := squirrel.
		Delete(accessTokensTable).
		Where(squirrel.Lt{"expires_at": cutoff}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao remover tokens expirados: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}
