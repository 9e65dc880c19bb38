package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vfg2006/pos-dashboard-api/internal/domain"
	"github.com/vfg2006/pos-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/pos-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/pos-dashboard-api/pkg/log"
)

type contextKey string

const (
	ContextKeySession contextKey = "session"
)

// Rotas que não exigem sessão
var publicPaths = map[string]bool{
	"/healthcheck": true,
	"/v1/access":   true,
}

func AuthMiddleware(authService authenticating.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apiErrors.WriteError(w, apiErrors.ErrInvalidSession, "Cabeçalho Authorization é obrigatório", nil)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				apiErrors.WriteError(w, apiErrors.ErrInvalidSession, "Token Bearer é obrigatório", nil)
				return
			}

			claims, err := authService.ValidateSession(tokenString)
			if err != nil {
				log.ForContext(r.Context()).WithError(err).Warn("Sessão recusada")
				apiErrors.WriteError(w, apiErrors.ErrInvalidSession, "Sessão inválida ou expirada", nil)
				return
			}

			if scope, ok := requestScopeFrom(r.Context()); ok {
				scope.tenantID = claims.TenantID
				scope.userID = claims.UserID
			}

			ctx := context.WithValue(r.Context(), ContextKeySession, claims)
			ctx = log.WithTenantID(ctx, claims.TenantID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext devolve as claims gravadas pelo AuthMiddleware
func SessionFromContext(ctx context.Context) (*domain.SessionClaims, bool) {
	claims, ok := ctx.Value(ContextKeySession).(*domain.SessionClaims)
	return claims, ok && claims != nil
}
