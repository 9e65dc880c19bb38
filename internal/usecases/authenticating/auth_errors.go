package authenticating

import (
	"errors"
	"fmt"
)

// Tipos de erros de autenticação personalizados
var (
	// ErrTokenRejected cobre token ausente, expirado, já utilizado ou de outro propósito.
	// O motivo nunca é revelado ao cliente.
	ErrTokenRejected = errors.New("token de acesso rejeitado")
	ErrInvalidToken  = errors.New("sessão inválida")
	ErrExpiredToken  = errors.New("sessão expirada")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// AuthError é um erro com contexto adicional para autenticação
type AuthError struct {
	Err      error  // Erro base
	Code     string // Código de erro para API
	TenantID int64  // Tenant envolvido (quando aplicável)
	Details  string // Detalhes adicionais
}

// Error implementa a interface error
func (e *AuthError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *AuthError) Unwrap() error {
	return e.Err
}

// IsAuthorizationError verifica se o erro está relacionado a problemas de autorização
func IsAuthorizationError(err error) bool {
	return errors.Is(err, ErrTokenRejected) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrExpiredToken)
}

// NewAuthError cria um novo erro de autenticação
func NewAuthError(baseErr error, code string, details string) *AuthError {
	return &AuthError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

// NewTenantAuthError cria um novo erro de autenticação com contexto de tenant
func NewTenantAuthError(baseErr error, code string, tenantID int64, details string) *AuthError {
	return &AuthError{
		Err:      baseErr,
		Code:     code,
		TenantID: tenantID,
		Details:  details,
	}
}
