package middleware

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/pos-dashboard-api/pkg/apiErrors"
)

// RequireSession restringe a rota a requisições com sessão de tenant já validada.
// Protege as rotas mesmo se o AuthMiddleware global for removido da cadeia.
func RequireSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := SessionFromContext(r.Context())
			if !ok || claims.TenantID == 0 {
				logrus.Warning("Tentativa de acesso sem sessão")
				apiErrors.WriteError(w, apiErrors.ErrInvalidSession, "Sessão não autenticada", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireMaintenance libera a rota apenas para os tenants de manutenção configurados.
// Lista vazia bloqueia a rota para qualquer sessão.
func RequireMaintenance(tenantIDs []int64) func(http.Handler) http.Handler {
	allowed := make(map[int64]bool, len(tenantIDs))
	for _, id := range tenantIDs {
		allowed[id] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := SessionFromContext(r.Context())
			if !ok {
				logrus.Warning("Tentativa de acesso sem sessão")
				apiErrors.WriteError(w, apiErrors.ErrInvalidSession, "Sessão não autenticada", nil)
				return
			}

			if !allowed[claims.TenantID] {
				logrus.Warningf("Acesso de manutenção negado para tenant ID=%d, usuário ID=%d", claims.TenantID, claims.UserID)
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
