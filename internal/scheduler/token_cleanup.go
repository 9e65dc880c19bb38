// Package scheduler contém os serviços de agendamento de manutenção
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/pos-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/pos-dashboard-api/internal/config"
	"github.com/vfg2006/pos-dashboard-api/pkg/clock"
)

type TokenCleanupConfig struct {
	CronSchedule  string
	RetentionDays int
	SyncEnabled   bool
}

// TokenCleanupService remove periodicamente os tokens de acesso vencidos há mais de RetentionDays
type TokenCleanupService struct {
	scheduler            *gocron.Scheduler
	tokenRepo            repository.AccessTokenRepository
	config               TokenCleanupConfig
	clock                clock.Clock
	syncRunning          bool
	syncMutex            sync.Mutex
	lastSyncStartedAt    time.Time
	lastSyncCompletedAt  time.Time
	lastSyncRemoved      int64
	lastSyncErrorMessage string
}

func NewTokenCleanupService(tokenRepo repository.AccessTokenRepository, cfg *config.Config, clk clock.Clock) *TokenCleanupService {
	cleanupConfig := TokenCleanupConfig{
		CronSchedule:  cfg.TokenCleanup.CronSchedule,  // Default: 2h da manhã todos os dias
		RetentionDays: cfg.TokenCleanup.RetentionDays, // Default: 30 dias
		SyncEnabled:   cfg.TokenCleanup.Enabled,       // Default: desabilitado
	}

	location := cfg.App.Location
	if location == nil {
		location = time.Local
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  cleanupConfig.CronSchedule,
		"retention_days": cleanupConfig.RetentionDays,
	}).Info("Configuração do agendador de limpeza de tokens carregada")

	return &TokenCleanupService{
		scheduler: gocron.NewScheduler(location),
		tokenRepo: tokenRepo,
		config:    cleanupConfig,
		clock:     clk,
	}
}

func (s *TokenCleanupService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de limpeza de tokens de acesso desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de limpeza de tokens de acesso")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.CleanupExpiredTokens(ctx); err != nil {
			logrus.WithError(err).Error("Erro na limpeza de tokens de acesso")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza de tokens de acesso: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de limpeza de tokens de acesso")
		s.scheduler.Stop()
	}()

	return nil
}

// CleanupExpiredTokens apaga os tokens expirados antes do corte de retenção.
// Uma execução concorrente é ignorada e devolve zero.
func (s *TokenCleanupService) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Limpeza de tokens de acesso já está em execução")
		return 0, nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.clock.Now()
	s.syncMutex.Unlock()

	cutoff := s.clock.Now().AddDate(0, 0, -s.config.RetentionDays)
	removed, err := s.tokenRepo.DeleteExpiredBefore(ctx, cutoff)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = s.clock.Now()
	s.lastSyncRemoved = removed
	s.lastSyncErrorMessage = ""
	if err != nil {
		s.lastSyncErrorMessage = err.Error()
	}
	s.syncMutex.Unlock()

	if err != nil {
		return 0, fmt.Errorf("erro ao remover tokens expirados: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"cutoff":  cutoff.Format(time.RFC3339),
		"removed": removed,
	}).Info("Limpeza de tokens de acesso concluída")

	return removed, nil
}

func (s *TokenCleanupService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Limpeza de tokens já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando limpeza manual de tokens de acesso")
	go func() {
		if _, err := s.CleanupExpiredTokens(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na limpeza manual de tokens de acesso")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *TokenCleanupService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"retention_days":         s.config.RetentionDays,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_removed":      s.lastSyncRemoved,
		"last_sync_error":        s.lastSyncErrorMessage,
	}
}
