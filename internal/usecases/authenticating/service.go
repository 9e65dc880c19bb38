package authenticating

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/pos-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/pos-dashboard-api/internal/config"
	"github.com/vfg2006/pos-dashboard-api/internal/domain"
	"github.com/vfg2006/pos-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/pos-dashboard-api/pkg/clock"
	"github.com/vfg2006/pos-dashboard-api/pkg/log"
	"golang.org/x/crypto/blake2b"
)

const sessionIssuer = "pos-dashboard-api"

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks
type Authenticator interface {
	Validate(ctx context.Context, token string) (*domain.AccessGrant, error)
	IssueSession(grant *domain.AccessGrant) (string, time.Time, error)
	ValidateSession(tokenString string) (*domain.SessionClaims, error)
}

type Service struct {
	tokenRepo repository.AccessTokenRepository
	cfg       *config.Config
	clock     clock.Clock
}

func NewService(tokenRepo repository.AccessTokenRepository, cfg *config.Config, clk clock.Clock) Authenticator {
	return &Service{
		tokenRepo: tokenRepo,
		cfg:       cfg,
		clock:     clk,
	}
}

// HashToken é a forma em que os tokens de acesso ficam gravados
func HashToken(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Validate consome um uso do token de acesso ao dashboard.
// Todos os motivos de recusa devolvem o mesmo ErrTokenRejected.
func (s *Service) Validate(ctx context.Context, token string) (*domain.AccessGrant, error) {
	logger := log.ForContext(ctx)

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, rejected()
	}

	record, err := s.tokenRepo.GetByHash(ctx, HashToken(token), domain.DashboardAccessPurpose)
	if err != nil {
		logger.WithError(err).Error("Erro ao consultar token de acesso")
		return nil, NewAuthError(ErrDatabaseOperation, apiErrors.ErrInternalServer, "Erro ao validar token de acesso")
	}

	if record == nil {
		logger.Warn("Token de acesso não encontrado")
		return nil, rejected()
	}

	now := s.clock.Now()
	logger = logger.WithFields(log.Fields{"tenant_id": record.TenantID, "user_id": record.UserID})

	if now.After(record.ExpiresAt) {
		logger.Warn("Token de acesso expirado")
		return nil, rejected()
	}

	if record.UsesCount >= 1 {
		logger.Warn("Token de acesso já utilizado")
		return nil, rejected()
	}

	// O incremento só acontece se ninguém consumiu o token desde a leitura
	consumed, err := s.tokenRepo.ConsumeUse(ctx, record.ID, record.UsesCount, now)
	if err != nil {
		logger.WithError(err).Error("Erro ao consumir token de acesso")
		return nil, NewTenantAuthError(ErrDatabaseOperation, apiErrors.ErrInternalServer, record.TenantID, "Erro ao validar token de acesso")
	}
	if !consumed {
		logger.Warn("Token de acesso consumido por outra requisição")
		return nil, rejected()
	}

	logger.Info("Token de acesso consumido")

	return &domain.AccessGrant{
		TenantID: record.TenantID,
		UserID:   record.UserID,
	}, nil
}

// IssueSession gera o JWT de sessão usado pelas demais rotas
func (s *Service) IssueSession(grant *domain.AccessGrant) (string, time.Time, error) {
	now := s.clock.Now()
	expiresAt := now.Add(s.cfg.Auth.SessionTTL)

	claims := domain.SessionClaims{
		TenantID: grant.TenantID,
		UserID:   grant.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   fmt.Sprintf("%d", grant.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		return "", time.Time{}, NewTenantAuthError(err, apiErrors.ErrInternalServer, grant.TenantID, "Erro ao gerar sessão")
	}

	return signed, expiresAt, nil
}

func (s *Service) ValidateSession(tokenString string) (*domain.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	},
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrInvalidSession, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidSession, err.Error())
	}

	claims, ok := token.Claims.(*domain.SessionClaims)
	if !ok || !token.Valid || claims.TenantID == 0 {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidSession, "")
	}

	return claims, nil
}

func rejected() error {
	return NewAuthError(ErrTokenRejected, apiErrors.ErrTokenRejected, "")
}
