package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro da API
const (
	// Erros de acesso
	ErrTokenRejected         = "AUTH_001" // Token de acesso ausente, expirado ou já utilizado
	ErrInvalidSession        = "AUTH_002" // Sessão inválida ou expirada
	ErrInsufficientPrivilege = "AUTH_003" // Sessão sem permissão para rotas de manutenção

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido

	// Erros de carga do dashboard
	ErrDataLoadFailed = "DATA_001" // Falha ao carregar os registros do período

	// Erros de fechamento
	ErrDuplicateClose     = "CLOSE_001" // Já existe fechamento para o período
	ErrDraftNotFound      = "CLOSE_002" // Rascunho de fechamento não encontrado ou expirado
	ErrInvalidTransition  = "CLOSE_003" // Operação não permitida na etapa atual do rascunho
	ErrPersistenceFailure = "SRV_002"   // Erro ao gravar no banco de dados

	// Erros de roteamento
	ErrRouteNotFound    = "ROUTE_001" // Rota inexistente
	ErrMethodNotAllowed = "ROUTE_002" // Método não suportado pela rota

	// Erros do servidor
	ErrInternalServer = "SRV_001" // Erro interno do servidor
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrTokenRejected:         http.StatusUnauthorized,
	ErrInvalidSession:        http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrDataLoadFailed:        http.StatusBadGateway,
	ErrDuplicateClose:        http.StatusConflict,
	ErrDraftNotFound:         http.StatusNotFound,
	ErrInvalidTransition:     http.StatusConflict,
	ErrPersistenceFailure:    http.StatusInternalServerError,
	ErrRouteNotFound:         http.StatusNotFound,
	ErrMethodNotAllowed:      http.StatusMethodNotAllowed,
	ErrInternalServer:        http.StatusInternalServerError,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor devolve o status HTTP associado ao código
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}
