package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/pos-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/pos-dashboard-api/internal/domain"
	"github.com/vfg2006/pos-dashboard-api/internal/usecases/aggregating"
	aggMocks "github.com/vfg2006/pos-dashboard-api/internal/usecases/aggregating/mocks"
	"github.com/vfg2006/pos-dashboard-api/internal/usecases/authenticating"
	authMocks "github.com/vfg2006/pos-dashboard-api/internal/usecases/authenticating/mocks"
	"github.com/vfg2006/pos-dashboard-api/internal/usecases/closing"
	closeMocks "github.com/vfg2006/pos-dashboard-api/internal/usecases/closing/mocks"
	"github.com/vfg2006/pos-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/pos-dashboard-api/pkg/clock"
	"github.com/vfg2006/pos-dashboard-api/pkg/log"
	"github.com/vfg2006/pos-dashboard-api/pkg/middleware"
	"go.uber.org/mock/gomock"
)

var handlerNow = time.Date(2024, 5, 15, 14, 30, 0, 0, time.UTC)

var testSession = &domain.SessionClaims{TenantID: 3, UserID: 42}

// serve executa a requisição já com a sessão no contexto, como faria o AuthMiddleware
func serve(rt http.Handler, req *http.Request, claims *domain.SessionClaims) *httptest.ResponseRecorder {
	if claims != nil {
		req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeySession, claims))
	}

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), target))
}

func TestAccess(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(m *authMocks.MockAuthenticator)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "Token válido - devolve a sessão",
			body: `{"token":"abc"}`,
			setupMock: func(m *authMocks.MockAuthenticator) {
				grant := &domain.AccessGrant{TenantID: 3, UserID: 42}
				m.EXPECT().Validate(gomock.Any(), "abc").Return(grant, nil)
				m.EXPECT().IssueSession(grant).Return("jwt", handlerNow.Add(time.Hour), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Token rejeitado - 401",
			body: `{"token":"usado"}`,
			setupMock: func(m *authMocks.MockAuthenticator) {
				m.EXPECT().Validate(gomock.Any(), "usado").
					Return(nil, authenticating.NewAuthError(authenticating.ErrTokenRejected, apiErrors.ErrTokenRejected, ""))
			},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrTokenRejected,
		},
		{
			name:           "Corpo sem token - 400",
			body:           `{}`,
			setupMock:      func(m *authMocks.MockAuthenticator) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apiErrors.ErrMissingRequiredData,
		},
		{
			name:           "JSON inválido - 400",
			body:           `{"token":`,
			setupMock:      func(m *authMocks.MockAuthenticator) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apiErrors.ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := authMocks.NewMockAuthenticator(ctrl)
			tt.setupMock(service)

			rt := router.New(router.WithRoutes(Authentication(service)...))
			rec := serve(rt, httptest.NewRequest(http.MethodPost, "/v1/access", strings.NewReader(tt.body)), nil)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				var apiErr apiErrors.APIError
				decodeBody(t, rec, &apiErr)
				assert.Equal(t, tt.expectedCode, apiErr.Code)
				return
			}

			var resp AccessResponse
			decodeBody(t, rec, &resp)
			assert.Equal(t, "jwt", resp.SessionToken)
			assert.Equal(t, int64(3), resp.TenantID)
		})
	}
}

func TestGetDashboard(t *testing.T) {
	today := domain.Period{
		Start: time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 5, 15, 23, 59, 59, 0, time.UTC),
		Type:  domain.PeriodToday,
	}
	custom := domain.Period{
		Start: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 5, 10, 23, 59, 59, 0, time.UTC),
		Type:  domain.PeriodCustom,
	}

	tests := []struct {
		name           string
		url            string
		claims         *domain.SessionClaims
		setupMock      func(m *aggMocks.MockLoader)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:   "Sem seletor - período de hoje",
			url:    "/v1/dashboard",
			claims: testSession,
			setupMock: func(m *aggMocks.MockLoader) {
				m.EXPECT().Load(gomock.Any(), int64(3), today).
					Return(&domain.DashboardSnapshot{Period: today}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "Datas explícitas - período personalizado",
			url:    "/v1/dashboard?range=week&start=2024-05-01&end=2024-05-10",
			claims: testSession,
			setupMock: func(m *aggMocks.MockLoader) {
				m.EXPECT().Load(gomock.Any(), int64(3), custom).
					Return(&domain.DashboardSnapshot{Period: custom}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Data inicial posterior à final - 400",
			url:            "/v1/dashboard?start=2024-05-10&end=2024-05-01",
			claims:         testSession,
			setupMock:      func(m *aggMocks.MockLoader) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apiErrors.ErrInvalidRequest,
		},
		{
			name:           "Data mal formatada - 400",
			url:            "/v1/dashboard?start=10/05/2024&end=2024-05-11",
			claims:         testSession,
			setupMock:      func(m *aggMocks.MockLoader) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apiErrors.ErrInvalidFormat,
		},
		{
			name:           "Somente uma data - 400",
			url:            "/v1/dashboard?start=2024-05-10",
			claims:         testSession,
			setupMock:      func(m *aggMocks.MockLoader) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apiErrors.ErrMissingRequiredData,
		},
		{
			name:   "Falha na carga - 502",
			url:    "/v1/dashboard?range=today",
			claims: testSession,
			setupMock: func(m *aggMocks.MockLoader) {
				m.EXPECT().Load(gomock.Any(), int64(3), today).
					Return(nil, aggregating.NewLoadError(aggregating.ErrDataLoadFailed, apiErrors.ErrDataLoadFailed, "tempo limite de 10s excedido"))
			},
			expectedStatus: http.StatusBadGateway,
			expectedCode:   apiErrors.ErrDataLoadFailed,
		},
		{
			name:           "Sem sessão - 401",
			url:            "/v1/dashboard",
			setupMock:      func(m *aggMocks.MockLoader) {},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrInvalidSession,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := aggMocks.NewMockLoader(ctrl)
			tt.setupMock(service)

			rt := router.New(router.WithRoutes(Dashboard(service, clock.Fixed(handlerNow))...))
			rec := serve(rt, httptest.NewRequest(http.MethodGet, tt.url, nil), tt.claims)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				var apiErr apiErrors.APIError
				decodeBody(t, rec, &apiErr)
				assert.Equal(t, tt.expectedCode, apiErr.Code)
			}
		})
	}
}

func TestCloseRoutes(t *testing.T) {
	today := domain.Period{
		Start: time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 5, 15, 23, 59, 59, 0, time.UTC),
		Type:  domain.PeriodToday,
	}

	newRouter := func(t *testing.T) (http.Handler, *closeMocks.MockCloser) {
		ctrl := gomock.NewController(t)
		service := closeMocks.NewMockCloser(ctrl)
		return router.New(router.WithRoutes(Closes(service, clock.Fixed(handlerNow))...)), service
	}

	t.Run("Abre rascunho para hoje", func(t *testing.T) {
		rt, service := newRouter(t)
		service.EXPECT().OpenClose(gomock.Any(), int64(3), int64(42), today).
			Return(&domain.CloseDraft{ID: "draft01", Step: domain.CloseStepDrafting}, nil)

		rec := serve(rt, httptest.NewRequest(http.MethodPost, "/v1/closes/drafts", strings.NewReader(`{"range":"today"}`)), testSession)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var draft domain.CloseDraft
		decodeBody(t, rec, &draft)
		assert.Equal(t, "draft01", draft.ID)
	})

	t.Run("Período já fechado - 409", func(t *testing.T) {
		rt, service := newRouter(t)
		service.EXPECT().OpenClose(gomock.Any(), int64(3), int64(42), today).
			Return(nil, closing.NewCloseError(closing.ErrDuplicateClose, apiErrors.ErrDuplicateClose, "escolha outro período"))

		rec := serve(rt, httptest.NewRequest(http.MethodPost, "/v1/closes/drafts", strings.NewReader(`{}`)), testSession)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), apiErrors.ErrDuplicateClose)
	})

	t.Run("Corpo vazio abre rascunho para hoje", func(t *testing.T) {
		rt, service := newRouter(t)
		service.EXPECT().OpenClose(gomock.Any(), int64(3), int64(42), today).
			Return(&domain.CloseDraft{ID: "draft02", Step: domain.CloseStepDrafting}, nil)

		rec := serve(rt, httptest.NewRequest(http.MethodPost, "/v1/closes/drafts", nil), testSession)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("Corpo malformado - VAL_003", func(t *testing.T) {
		rt, _ := newRouter(t)

		rec := serve(rt, httptest.NewRequest(http.MethodPost, "/v1/closes/drafts", strings.NewReader(`{"range":5}`)), testSession)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), apiErrors.ErrInvalidFormat)
	})

	t.Run("Contagem aceita número ou texto decimal", func(t *testing.T) {
		for _, body := range []string{`{"counted_cash":900.50,"notes":"ok"}`, `{"counted_cash":"900.50","notes":"ok"}`} {
			rt, service := newRouter(t)
			service.EXPECT().
				SubmitCount(gomock.Any(), int64(3), "draft01", gomock.Any(), "ok").
				DoAndReturn(func(_ context.Context, _ int64, _ string, counted decimal.Decimal, _ string) (*domain.CloseDraft, error) {
					assert.Equal(t, "900.5", counted.String())
					return &domain.CloseDraft{ID: "draft01", Step: domain.CloseStepReviewing}, nil
				})

			rec := serve(rt, httptest.NewRequest(http.MethodPost, "/v1/closes/drafts/draft01/count", strings.NewReader(body)), testSession)

			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("Contagem sem valor - 400", func(t *testing.T) {
		rt, _ := newRouter(t)

		rec := serve(rt, httptest.NewRequest(http.MethodPost, "/v1/closes/drafts/draft01/count", strings.NewReader(`{"notes":"x"}`)), testSession)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), apiErrors.ErrMissingRequiredData)
	})

	t.Run("Falha ao gravar - 500 com código de persistência", func(t *testing.T) {
		rt, service := newRouter(t)
		service.EXPECT().Save(gomock.Any(), int64(3), "draft01").
			Return(nil, closing.NewCloseError(closing.ErrPersistence, apiErrors.ErrPersistenceFailure, "tente salvar novamente"))

		rec := serve(rt, httptest.NewRequest(http.MethodPost, "/v1/closes/drafts/draft01/save", nil), testSession)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), apiErrors.ErrPersistenceFailure)
		assert.Contains(t, rec.Body.String(), `"retryable":true`)
	})

	t.Run("Rascunho inexistente - 404", func(t *testing.T) {
		rt, service := newRouter(t)
		service.EXPECT().Abandon(gomock.Any(), int64(3), "sumiu").
			Return(nil, closing.NewCloseError(closing.ErrDraftNotFound, apiErrors.ErrDraftNotFound, ""))

		rec := serve(rt, httptest.NewRequest(http.MethodDelete, "/v1/closes/drafts/sumiu", nil), testSession)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Histórico com limite", func(t *testing.T) {
		rt, service := newRouter(t)
		service.EXPECT().ListCloses(gomock.Any(), int64(3), uint64(5)).
			Return([]domain.CloseRecord{{ID: 2}, {ID: 1}}, nil)

		rec := serve(rt, httptest.NewRequest(http.MethodGet, "/v1/closes?limit=5", nil), testSession)

		require.Equal(t, http.StatusOK, rec.Code)

		var records []domain.CloseRecord
		decodeBody(t, rec, &records)
		assert.Len(t, records, 2)
	})

	t.Run("Limite inválido - 400", func(t *testing.T) {
		rt, _ := newRouter(t)

		rec := serve(rt, httptest.NewRequest(http.MethodGet, "/v1/closes?limit=abc", nil), testSession)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestWriteServiceError_Unmapped(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)

	ctx, correlationID := log.WithCorrelationID(req.Context())

	writeServiceError(rec, req.WithContext(ctx), errors.New("falha inesperada"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrInternalServer)
	assert.Contains(t, rec.Body.String(), correlationID)
}

func TestCronJobs(t *testing.T) {
	rt := router.New(router.WithRoutes(CronJobs(CronJobServices{}, []int64{testSession.TenantID})...))

	t.Run("Tipo desconhecido - 400", func(t *testing.T) {
		rec := serve(rt, httptest.NewRequest(http.MethodPost, "/v1/cron/outro/run", nil), testSession)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Serviço ausente - 500", func(t *testing.T) {
		rec := serve(rt, httptest.NewRequest(http.MethodPost, "/v1/cron/access-tokens/run", nil), testSession)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("Status sem serviços", func(t *testing.T) {
		rec := serve(rt, httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil), testSession)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{}`, rec.Body.String())
	})

	t.Run("Tenant fora da manutenção - 403", func(t *testing.T) {
		other := &domain.SessionClaims{TenantID: 8, UserID: 1}

		for _, req := range []*http.Request{
			httptest.NewRequest(http.MethodPost, "/v1/cron/access-tokens/run", nil),
			httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil),
		} {
			rec := serve(rt, req, other)

			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.Contains(t, rec.Body.String(), apiErrors.ErrInsufficientPrivilege)
		}
	})

	t.Run("Sem tenants de manutenção configurados - 403", func(t *testing.T) {
		closed := router.New(router.WithRoutes(CronJobs(CronJobServices{}, nil)...))

		rec := serve(closed, httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil), testSession)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
