package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/pos-dashboard-api/internal/domain"
	"github.com/vfg2006/pos-dashboard-api/internal/usecases/authenticating/mocks"
	"github.com/vfg2006/pos-dashboard-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func sessionEcho(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := SessionFromContext(r.Context())
		if ok {
			assert.Equal(t, int64(3), claims.TenantID)
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		header         string
		setupMock      func(m *mocks.MockAuthenticator)
		expectedStatus int
	}{
		{
			name:           "Rota pública - passa sem sessão",
			method:         http.MethodPost,
			path:           "/v1/access",
			setupMock:      func(m *mocks.MockAuthenticator) {},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "Preflight - passa sem sessão",
			method:         http.MethodOptions,
			path:           "/v1/dashboard",
			setupMock:      func(m *mocks.MockAuthenticator) {},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "Sem cabeçalho - não autorizado",
			method:         http.MethodGet,
			path:           "/v1/dashboard",
			setupMock:      func(m *mocks.MockAuthenticator) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Cabeçalho sem Bearer - não autorizado",
			method:         http.MethodGet,
			path:           "/v1/dashboard",
			header:         "Basic abc",
			setupMock:      func(m *mocks.MockAuthenticator) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "Sessão inválida - não autorizado",
			method: http.MethodGet,
			path:   "/v1/dashboard",
			header: "Bearer expirado",
			setupMock: func(m *mocks.MockAuthenticator) {
				m.EXPECT().ValidateSession("expirado").Return(nil, errors.New("sessão expirada"))
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "Sessão válida - claims no contexto",
			method: http.MethodGet,
			path:   "/v1/dashboard",
			header: "Bearer valido",
			setupMock: func(m *mocks.MockAuthenticator) {
				m.EXPECT().ValidateSession("valido").Return(&domain.SessionClaims{TenantID: 3, UserID: 42}, nil)
			},
			expectedStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			authService := mocks.NewMockAuthenticator(ctrl)
			tt.setupMock(authService)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(authService)(sessionEcho(t)).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusUnauthorized {
				assert.Contains(t, rec.Body.String(), apiErrors.ErrInvalidSession)
			}
		})
	}
}

func TestRequireSession(t *testing.T) {
	t.Run("Sem sessão no contexto - não autorizado", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/closes", nil)

		RequireSession()(sessionEcho(t)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Com sessão - segue para o handler", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		authService := mocks.NewMockAuthenticator(ctrl)
		authService.EXPECT().ValidateSession("valido").Return(&domain.SessionClaims{TenantID: 3}, nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/closes", nil)
		req.Header.Set("Authorization", "Bearer valido")

		chain := AuthMiddleware(authService)(RequireSession()(sessionEcho(t)))
		chain.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
	})
}
