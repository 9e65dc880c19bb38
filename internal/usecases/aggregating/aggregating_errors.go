package aggregating

import (
	"errors"
	"fmt"
)

// ErrDataLoadFailed cobre qualquer falha ou tempo esgotado na leitura dos registros do período
var ErrDataLoadFailed = errors.New("falha ao carregar os dados do dashboard")

// LoadError é um erro de carga com o código da API
type LoadError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *LoadError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError cria um novo erro de carga
func NewLoadError(baseErr error, code string, details string) *LoadError {
	return &LoadError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}
