package closing

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateClose    = errors.New("já existe um fechamento para este período")
	ErrInvalidInput      = errors.New("dados de contagem inválidos")
	ErrPersistence       = errors.New("erro ao gravar o fechamento")
	ErrDraftNotFound     = errors.New("rascunho de fechamento não encontrado")
	ErrInvalidTransition = errors.New("operação não permitida nesta etapa do fechamento")
)

// CloseError é um erro do fluxo de fechamento com o código da API
type CloseError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *CloseError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *CloseError) Unwrap() error {
	return e.Err
}

// NewCloseError cria um novo erro de fechamento
func NewCloseError(baseErr error, code string, details string) *CloseError {
	return &CloseError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

// IsRetryable indica se o usuário pode repetir a operação sem reabrir o fechamento
func IsRetryable(err error) bool {
	return errors.Is(err, ErrPersistence) || errors.Is(err, ErrInvalidInput)
}
