package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DashboardAccessPurpose é o único propósito aceito pelo portão de acesso
const DashboardAccessPurpose = "dashboard_access"

// AccessToken é o registro persistido de um token de uso único
type AccessToken struct {
	ID         int64      `json:"id"`
	TenantID   int64      `json:"tenant_id"`
	UserID     int64      `json:"user_id"`
	TokenHash  string     `json:"-"`
	Purpose    string     `json:"purpose"`
	ExpiresAt  time.Time  `json:"expires_at"`
	UsesCount  int        `json:"uses_count"`
	LastUsedAt *time.Time `json:"last_used_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

// AccessGrant é o resultado de uma validação bem-sucedida
type AccessGrant struct {
	TenantID int64 `json:"tenant_id"`
	UserID   int64 `json:"user_id"`
}

type SessionClaims struct {
	TenantID int64 `json:"tenant_id"`
	UserID   int64 `json:"user_id"`
	jwt.RegisteredClaims
}
