package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/pos-dashboard-api/internal/usecases/authenticating"
)

type AccessRequest struct {
	Token string `json:"token" validate:"required"`
}

type AccessResponse struct {
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	TenantID     int64     `json:"tenant_id"`
	UserID       int64     `json:"user_id"`
}

// Access troca o token de uso único pela sessão do dashboard
func Access(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AccessRequest
		if !decodeRequest(w, r, &req) {
			return
		}

		grant, err := service.Validate(r.Context(), req.Token)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		sessionToken, expiresAt, err := service.IssueSession(grant)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, AccessResponse{
			SessionToken: sessionToken,
			ExpiresAt:    expiresAt,
			TenantID:     grant.TenantID,
			UserID:       grant.UserID,
		})
	}
}
