package authenticating

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/pos-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/pos-dashboard-api/internal/config"
	"github.com/vfg2006/pos-dashboard-api/internal/domain"
	"github.com/vfg2006/pos-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/pos-dashboard-api/pkg/clock"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, now time.Time) (*Service, *mocks.MockAccessTokenRepository) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAccessTokenRepository(ctrl)

	cfg := &config.Config{
		SecretKey: "segredo-de-teste",
		Auth: config.Auth{
			SessionTTL: time.Hour,
		},
	}

	service := NewService(repo, cfg, clock.Fixed(now)).(*Service)
	return service, repo
}

func storedToken(usesCount int, expiresAt time.Time) *domain.AccessToken {
	return &domain.AccessToken{
		ID:        10,
		TenantID:  3,
		UserID:    42,
		Purpose:   domain.DashboardAccessPurpose,
		ExpiresAt: expiresAt,
		UsesCount: usesCount,
	}
}

func assertRejected(t *testing.T, err error) {
	t.Helper()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenRejected)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, apiErrors.ErrTokenRejected, authErr.Code)
}

func TestHashToken(t *testing.T) {
	hash := HashToken("abc123")

	assert.Len(t, hash, 64)
	assert.Equal(t, hash, HashToken("abc123"))
	assert.NotEqual(t, hash, HashToken("abc124"))
}

func TestService_Validate(t *testing.T) {
	ctx := context.Background()
	hash := HashToken("token-valido")

	t.Run("Token válido - consome um uso e devolve o tenant", func(t *testing.T) {
		service, repo := newTestService(t, testNow)

		repo.EXPECT().
			GetByHash(gomock.Any(), hash, domain.DashboardAccessPurpose).
			Return(storedToken(0, testNow.Add(time.Hour)), nil)
		repo.EXPECT().
			ConsumeUse(gomock.Any(), int64(10), 0, testNow).
			Return(true, nil).
			Times(1)

		grant, err := service.Validate(ctx, "token-valido")

		require.NoError(t, err)
		assert.Equal(t, &domain.AccessGrant{TenantID: 3, UserID: 42}, grant)
	})

	t.Run("Token vazio - rejeitado sem consultar o banco", func(t *testing.T) {
		service, _ := newTestService(t, testNow)

		grant, err := service.Validate(ctx, "   ")

		assert.Nil(t, grant)
		assertRejected(t, err)
	})

	t.Run("Token inexistente - rejeitado", func(t *testing.T) {
		service, repo := newTestService(t, testNow)

		repo.EXPECT().GetByHash(gomock.Any(), hash, domain.DashboardAccessPurpose).Return(nil, nil)

		grant, err := service.Validate(ctx, "token-valido")

		assert.Nil(t, grant)
		assertRejected(t, err)
	})

	t.Run("Token já utilizado - rejeitado mesmo dentro da validade", func(t *testing.T) {
		service, repo := newTestService(t, testNow)

		repo.EXPECT().
			GetByHash(gomock.Any(), hash, domain.DashboardAccessPurpose).
			Return(storedToken(1, testNow.Add(time.Hour)), nil)

		grant, err := service.Validate(ctx, "token-valido")

		assert.Nil(t, grant)
		assertRejected(t, err)
	})

	t.Run("Token expirado - rejeitado mesmo sem uso", func(t *testing.T) {
		service, repo := newTestService(t, testNow)

		repo.EXPECT().
			GetByHash(gomock.Any(), hash, domain.DashboardAccessPurpose).
			Return(storedToken(0, testNow.Add(-time.Second)), nil)

		grant, err := service.Validate(ctx, "token-valido")

		assert.Nil(t, grant)
		assertRejected(t, err)
	})

	t.Run("Expira exatamente agora - ainda aceito", func(t *testing.T) {
		service, repo := newTestService(t, testNow)

		repo.EXPECT().
			GetByHash(gomock.Any(), hash, domain.DashboardAccessPurpose).
			Return(storedToken(0, testNow), nil)
		repo.EXPECT().ConsumeUse(gomock.Any(), int64(10), 0, testNow).Return(true, nil)

		_, err := service.Validate(ctx, "token-valido")

		assert.NoError(t, err)
	})

	t.Run("Consumo concorrente - a requisição perdedora é rejeitada", func(t *testing.T) {
		service, repo := newTestService(t, testNow)

		repo.EXPECT().
			GetByHash(gomock.Any(), hash, domain.DashboardAccessPurpose).
			Return(storedToken(0, testNow.Add(time.Hour)), nil)
		repo.EXPECT().ConsumeUse(gomock.Any(), int64(10), 0, testNow).Return(false, nil)

		grant, err := service.Validate(ctx, "token-valido")

		assert.Nil(t, grant)
		assertRejected(t, err)
	})

	t.Run("Erro no banco - erro interno", func(t *testing.T) {
		service, repo := newTestService(t, testNow)

		repo.EXPECT().
			GetByHash(gomock.Any(), hash, domain.DashboardAccessPurpose).
			Return(nil, errors.New("conexão recusada"))

		grant, err := service.Validate(ctx, "token-valido")

		assert.Nil(t, grant)
		assert.ErrorIs(t, err, ErrDatabaseOperation)

		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, apiErrors.ErrInternalServer, authErr.Code)
	})
}

func TestService_Session(t *testing.T) {
	grant := &domain.AccessGrant{TenantID: 3, UserID: 42}

	t.Run("Sessão emitida é aceita", func(t *testing.T) {
		service, _ := newTestService(t, time.Now())

		token, expiresAt, err := service.IssueSession(grant)
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.True(t, expiresAt.After(time.Now()))

		claims, err := service.ValidateSession(token)
		require.NoError(t, err)
		assert.Equal(t, int64(3), claims.TenantID)
		assert.Equal(t, int64(42), claims.UserID)
	})

	t.Run("Sessão expirada - rejeitada", func(t *testing.T) {
		issuer, _ := newTestService(t, testNow.Add(-2*time.Hour))
		token, _, err := issuer.IssueSession(grant)
		require.NoError(t, err)

		validator, _ := newTestService(t, testNow)
		claims, err := validator.ValidateSession(token)

		assert.Nil(t, claims)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Assinatura de outra chave - rejeitada", func(t *testing.T) {
		service, _ := newTestService(t, time.Now())
		token, _, err := service.IssueSession(grant)
		require.NoError(t, err)

		service.cfg = &config.Config{SecretKey: "outra-chave"}
		claims, err := service.ValidateSession(token)

		assert.Nil(t, claims)
		assert.ErrorIs(t, err, ErrInvalidToken)

		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, apiErrors.ErrInvalidSession, authErr.Code)
	})

	t.Run("Texto qualquer - rejeitado", func(t *testing.T) {
		service, _ := newTestService(t, testNow)

		_, err := service.ValidateSession("nao-e-um-jwt")

		assert.True(t, IsAuthorizationError(err))
	})
}
