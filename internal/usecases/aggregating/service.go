// Package aggregating carrega os registros de um período e calcula o snapshot do dashboard
package aggregating

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/pos-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/pos-dashboard-api/internal/domain"
	"github.com/vfg2006/pos-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/pos-dashboard-api/pkg/clock"
	"github.com/vfg2006/pos-dashboard-api/pkg/log"
	"github.com/vfg2006/pos-dashboard-api/pkg/utils"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks
type Loader interface {
	Load(ctx context.Context, tenantID int64, period domain.Period) (*domain.DashboardSnapshot, error)
}

type Service struct {
	saleRepo     repository.SaleRepository
	movementRepo repository.MovementRepository
	expenseRepo  repository.ExpenseRepository
	productRepo  repository.ProductRepository
	clock        clock.Clock
	fetchTimeout time.Duration
}

func NewService(
	saleRepo repository.SaleRepository,
	movementRepo repository.MovementRepository,
	expenseRepo repository.ExpenseRepository,
	productRepo repository.ProductRepository,
	clk clock.Clock,
	fetchTimeout time.Duration,
) Loader {
	return &Service{
		saleRepo:     saleRepo,
		movementRepo: movementRepo,
		expenseRepo:  expenseRepo,
		productRepo:  productRepo,
		clock:        clk,
		fetchTimeout: fetchTimeout,
	}
}

// Load busca os cinco conjuntos de registros em paralelo e agrega o resultado.
// Qualquer falha ou estouro do tempo limite cancela as demais leituras; nunca há snapshot parcial.
func (s *Service) Load(ctx context.Context, tenantID int64, period domain.Period) (*domain.DashboardSnapshot, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"tenant_id":    tenantID,
		"period_start": period.Start,
		"period_end":   period.End,
		"period_type":  period.Type,
	})

	records, err := s.fetch(ctx, tenantID, period)
	if err != nil {
		details := "erro ao consultar os registros do período"
		if errors.Is(err, context.DeadlineExceeded) {
			details = fmt.Sprintf("tempo limite de %s excedido", s.fetchTimeout)
		}
		logger.WithError(err).Error("Falha ao carregar registros do dashboard")
		return nil, NewLoadError(ErrDataLoadFailed, apiErrors.ErrDataLoadFailed, details)
	}

	snapshot := Aggregate(ctx, records, s.clock.Now())
	snapshot.Period = period

	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logger.WithFields(log.Fields{
			"sales_count":    len(records.Sales),
			"products_count": len(records.Products),
		}).Debugf("Resumo do período: %s", utils.PrettyJson(snapshot.Summary))
	}

	return &snapshot, nil
}

func (s *Service) fetch(ctx context.Context, tenantID int64, period domain.Period) (Records, error) {
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}

	var records Records
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sales, err := s.saleRepo.ListByPeriod(gctx, tenantID, period)
		if err != nil {
			return fmt.Errorf("vendas: %w", err)
		}
		records.Sales = sales
		return nil
	})

	g.Go(func() error {
		purchases, err := s.movementRepo.ListByPeriod(gctx, tenantID, domain.MovementTypePurchase, period)
		if err != nil {
			return fmt.Errorf("entradas: %w", err)
		}
		records.Purchases = purchases
		return nil
	})

	g.Go(func() error {
		consumptions, err := s.movementRepo.ListByPeriod(gctx, tenantID, domain.MovementTypeConsumption, period)
		if err != nil {
			return fmt.Errorf("consumos: %w", err)
		}
		records.Consumptions = consumptions
		return nil
	})

	g.Go(func() error {
		expenses, err := s.expenseRepo.ListByPeriod(gctx, tenantID, period)
		if err != nil {
			return fmt.Errorf("despesas: %w", err)
		}
		records.Expenses = expenses
		return nil
	})

	g.Go(func() error {
		products, err := s.productRepo.ListActive(gctx, tenantID)
		if err != nil {
			return fmt.Errorf("produtos: %w", err)
		}
		records.Products = products
		return nil
	})

	if err := g.Wait(); err != nil {
		return Records{}, err
	}

	// Uma leitura pode terminar sem erro depois que o prazo já venceu
	if err := ctx.Err(); err != nil {
		return Records{}, err
	}

	return records, nil
}
