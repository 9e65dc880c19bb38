package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/pos-dashboard-api/internal/usecases/closing"
	"github.com/vfg2006/pos-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/pos-dashboard-api/pkg/clock"
	"github.com/vfg2006/pos-dashboard-api/pkg/middleware"
)

type OpenCloseRequest struct {
	Range string `json:"range"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type SubmitCountRequest struct {
	CountedCash *decimal.Decimal `json:"counted_cash" validate:"required"`
	Notes       string           `json:"notes" validate:"max=1000"`
}

// OpenClose abre um rascunho de fechamento para o período informado
func OpenClose(service closing.Closer, clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidSession, "Sessão não autenticada", nil)
			return
		}

		var req OpenCloseRequest
		if !decodeOptionalRequest(w, r, &req) {
			return
		}

		p, err := resolvePeriod(clk, req.Range, req.Start, req.End)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		draft, err := service.OpenClose(r.Context(), claims.TenantID, claims.UserID, p)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, draft)
	}
}

func SubmitCloseCount(service closing.Closer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidSession, "Sessão não autenticada", nil)
			return
		}

		draftID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var req SubmitCountRequest
		if !decodeRequest(w, r, &req) {
			return
		}

		draft, err := service.SubmitCount(r.Context(), claims.TenantID, draftID, *req.CountedCash, req.Notes)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, draft)
	}
}

func SaveClose(service closing.Closer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidSession, "Sessão não autenticada", nil)
			return
		}

		draftID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		draft, err := service.Save(r.Context(), claims.TenantID, draftID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, draft)
	}
}

func AbandonClose(service closing.Closer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidSession, "Sessão não autenticada", nil)
			return
		}

		draftID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		draft, err := service.Abandon(r.Context(), claims.TenantID, draftID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, draft)
	}
}

// ListCloses devolve o histórico de fechamentos; ?limit= opcional
func ListCloses(service closing.Closer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidSession, "Sessão não autenticada", nil)
			return
		}

		var limit uint64
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.ParseUint(raw, 10, 64)
			if err != nil || parsed > 365 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro limit inválido", map[string]any{
					"limit": raw,
				})
				return
			}
			limit = parsed
		}

		records, err := service.ListCloses(r.Context(), claims.TenantID, limit)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, records)
	}
}
