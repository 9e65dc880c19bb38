package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/pos-dashboard-api/internal/usecases/aggregating"
	"github.com/vfg2006/pos-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/pos-dashboard-api/internal/usecases/closing"
	"github.com/vfg2006/pos-dashboard-api/internal/usecases/period"
	"github.com/vfg2006/pos-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/pos-dashboard-api/pkg/log"
)

var (
	json     = jsoniter.ConfigCompatibleWithStandardLibrary
	validate = validator.New()
)

// decodeRequest lê o corpo JSON e aplica as tags validate. Em caso de erro a resposta já foi escrita.
func decodeRequest(w http.ResponseWriter, r *http.Request, req any) bool {
	return decodeJSONBody(w, r, req, false)
}

// decodeOptionalRequest aceita corpo vazio como requisição com os valores zero
func decodeOptionalRequest(w http.ResponseWriter, r *http.Request, req any) bool {
	return decodeJSONBody(w, r, req, true)
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, req any, allowEmpty bool) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil && !(allowEmpty && errors.Is(err, io.EOF)) {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Formato de requisição inválido", nil)
		return false
	}

	if err := validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			fields := make([]string, 0, len(validationErrs))
			for _, fieldErr := range validationErrs {
				fields = append(fields, strings.ToLower(fieldErr.Field()))
			}
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campos obrigatórios ausentes ou inválidos", map[string]any{
				"fields": fields,
			})
			return false
		}

		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Requisição inválida", nil)
		return false
	}

	return true
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
	}
}

// writeServiceError traduz os erros dos casos de uso para a resposta padronizada
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		apiErrors.WriteError(w, authErr.Code, authErr.Err.Error(), nil)
		return
	}

	var loadErr *aggregating.LoadError
	if errors.As(err, &loadErr) {
		apiErrors.WriteError(w, loadErr.Code, loadErr.Err.Error(), map[string]any{
			"reason": loadErr.Details,
		})
		return
	}

	var closeErr *closing.CloseError
	if errors.As(err, &closeErr) {
		apiErrors.WriteError(w, closeErr.Code, closeErr.Error(), map[string]any{
			"retryable": closing.IsRetryable(err),
		})
		return
	}

	switch {
	case errors.Is(err, period.ErrInvalidDate):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)

	case errors.Is(err, period.ErrMissingDate):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)

	case errors.Is(err, period.ErrInvalidRange):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)

	default:
		log.ForContext(r.Context()).WithError(err).Error("Erro não mapeado")

		var details any
		if correlationID := log.GetCorrelationID(r.Context()); correlationID != "" {
			details = map[string]any{"correlation_id": correlationID}
		}
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", details)
	}
}
