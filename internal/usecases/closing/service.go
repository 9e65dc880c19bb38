// Package closing conduz o fechamento (cierre) de um período: conferência do caixa contado
// contra o esperado e gravação do registro imutável.
package closing

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/pos-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/pos-dashboard-api/internal/domain"
	"github.com/vfg2006/pos-dashboard-api/internal/usecases/aggregating"
	"github.com/vfg2006/pos-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/pos-dashboard-api/pkg/clock"
	"github.com/vfg2006/pos-dashboard-api/pkg/log"
	"github.com/vfg2006/pos-dashboard-api/pkg/utils"
)

const defaultHistoryLimit = 30

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks
type Closer interface {
	OpenClose(ctx context.Context, tenantID, userID int64, period domain.Period) (*domain.CloseDraft, error)
	SubmitCount(ctx context.Context, tenantID int64, draftID string, countedCash decimal.Decimal, notes string) (*domain.CloseDraft, error)
	Save(ctx context.Context, tenantID int64, draftID string) (*domain.CloseDraft, error)
	Abandon(ctx context.Context, tenantID int64, draftID string) (*domain.CloseDraft, error)
	ListCloses(ctx context.Context, tenantID int64, limit uint64) ([]domain.CloseRecord, error)
}

type Service struct {
	closeRepo repository.CloseRepository
	loader    aggregating.Loader
	drafts    *DraftStore
	clock     clock.Clock
	newID     func() (string, error)
}

func NewService(closeRepo repository.CloseRepository, loader aggregating.Loader, drafts *DraftStore, clk clock.Clock) Closer {
	return &Service{
		closeRepo: closeRepo,
		loader:    loader,
		drafts:    drafts,
		clock:     clk,
		newID:     utils.GenerateID,
	}
}

// OpenClose recusa períodos já fechados; caso contrário recalcula o snapshot e abre um rascunho
func (s *Service) OpenClose(ctx context.Context, tenantID, userID int64, period domain.Period) (*domain.CloseDraft, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"tenant_id":    tenantID,
		"period_start": period.Start,
		"period_end":   period.End,
	})

	existing, err := s.closeRepo.GetByPeriod(ctx, tenantID, period.Start, period.End)
	if err != nil {
		logger.WithError(err).Error("Erro ao verificar fechamento existente")
		return nil, aggregating.NewLoadError(aggregating.ErrDataLoadFailed, apiErrors.ErrDataLoadFailed, "erro ao consultar fechamentos do período")
	}
	if existing != nil {
		logger.WithField("close_id", existing.ID).Warn("Período já possui fechamento")
		return nil, NewCloseError(ErrDuplicateClose, apiErrors.ErrDuplicateClose, "escolha outro período")
	}

	snapshot, err := s.loader.Load(ctx, tenantID, period)
	if err != nil {
		return nil, err
	}

	id, err := s.newID()
	if err != nil {
		return nil, err
	}

	draft := NewDraft(id, tenantID, userID, period, *snapshot, s.clock.Now())
	s.drafts.Put(draft)

	logger.WithFields(log.Fields{
		"close_draft_id":      draft.ID,
		"close_expected_cash": draft.ExpectedCash.String(),
	}).Info("Rascunho de fechamento aberto")

	return &draft, nil
}

func (s *Service) SubmitCount(ctx context.Context, tenantID int64, draftID string, countedCash decimal.Decimal, notes string) (*domain.CloseDraft, error) {
	draft, err := s.getDraft(tenantID, draftID)
	if err != nil {
		return nil, err
	}

	draft, err = SubmitCount(draft, countedCash, notes)
	if err != nil {
		return nil, err
	}
	s.drafts.Put(draft)

	log.ForContext(ctx).WithFields(log.Fields{
		"close_draft_id":      draft.ID,
		"close_cash_variance": draft.CashVariance.String(),
		"close_balanced":      draft.Balanced,
	}).Info("Contagem registrada")

	return &draft, nil
}

// Save grava o registro do fechamento. Em falha de escrita o rascunho continua em Reviewing e pode ser salvo de novo.
func (s *Service) Save(ctx context.Context, tenantID int64, draftID string) (*domain.CloseDraft, error) {
	logger := log.ForContext(ctx).WithField("close_draft_id", draftID)

	draft, err := s.getDraft(tenantID, draftID)
	if err != nil {
		return nil, err
	}

	record, err := ToRecord(draft)
	if err != nil {
		return nil, err
	}

	if err := s.closeRepo.Insert(ctx, &record); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			logger.Warn("Fechamento concorrente já gravado para o período")
			return nil, NewCloseError(ErrDuplicateClose, apiErrors.ErrDuplicateClose, "escolha outro período")
		}

		logger.WithError(err).Error("Erro ao gravar fechamento")
		return nil, NewCloseError(ErrPersistence, apiErrors.ErrPersistenceFailure, "tente salvar novamente")
	}

	draft, err = MarkSaved(draft, record)
	if err != nil {
		return nil, err
	}
	s.drafts.Delete(draftID)

	logger.WithFields(log.Fields{
		"close_id":       record.ID,
		"close_balanced": record.Balanced,
	}).Info("Fechamento gravado")

	return &draft, nil
}

func (s *Service) Abandon(ctx context.Context, tenantID int64, draftID string) (*domain.CloseDraft, error) {
	draft, err := s.getDraft(tenantID, draftID)
	if err != nil {
		return nil, err
	}

	draft, err = Abandon(draft)
	if err != nil {
		return nil, err
	}
	s.drafts.Delete(draftID)

	log.ForContext(ctx).WithField("close_draft_id", draftID).Info("Rascunho de fechamento abandonado")

	return &draft, nil
}

// ListCloses devolve o histórico do tenant, do período mais recente para o mais antigo
func (s *Service) ListCloses(ctx context.Context, tenantID int64, limit uint64) ([]domain.CloseRecord, error) {
	if limit == 0 {
		limit = defaultHistoryLimit
	}

	records, err := s.closeRepo.ListByTenant(ctx, tenantID, limit)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao listar fechamentos")
		return nil, aggregating.NewLoadError(aggregating.ErrDataLoadFailed, apiErrors.ErrDataLoadFailed, "erro ao consultar fechamentos")
	}

	return records, nil
}

func (s *Service) getDraft(tenantID int64, draftID string) (domain.CloseDraft, error) {
	draft, ok := s.drafts.Get(tenantID, draftID)
	if !ok {
		return domain.CloseDraft{}, NewCloseError(ErrDraftNotFound, apiErrors.ErrDraftNotFound, "o rascunho expirou ou não pertence a esta sessão")
	}
	return draft, nil
}
