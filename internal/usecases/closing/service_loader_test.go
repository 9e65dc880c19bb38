package closing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/pos-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/pos-dashboard-api/internal/domain"
	"github.com/vfg2006/pos-dashboard-api/internal/usecases/aggregating"
	"github.com/vfg2006/pos-dashboard-api/pkg/clock"
	"go.uber.org/mock/gomock"
)

// Fechamento completo com o Loader real do dashboard, só os repositórios são mocks
func TestService_FlowWithDashboardLoader(t *testing.T) {
	ctrl := gomock.NewController(t)
	clk := clock.Fixed(referenceNow)

	sales := mocks.NewMockSaleRepository(ctrl)
	movements := mocks.NewMockMovementRepository(ctrl)
	expenses := mocks.NewMockExpenseRepository(ctrl)
	products := mocks.NewMockProductRepository(ctrl)
	closeRepo := mocks.NewMockCloseRepository(ctrl)

	coffee := func(quantity, total string) domain.SaleItem {
		return domain.SaleItem{ProductName: "Café molido", Quantity: dec(quantity), UnitCost: dec("60"), LineTotal: dec(total)}
	}

	sales.EXPECT().ListByPeriod(gomock.Any(), int64(1), referencePeriod).Return([]domain.Sale{
		{ID: 1, TenantID: 1, Total: dec("1000"), Items: []domain.SaleItem{coffee("10", "1000")}, CreatedAt: referenceNow.Add(-time.Hour), Active: true},
		{ID: 2, TenantID: 1, Total: dec("500"), Items: []domain.SaleItem{coffee("5", "500")}, CreatedAt: referenceNow.Add(-2 * time.Hour), Active: true},
	}, nil)
	movements.EXPECT().ListByPeriod(gomock.Any(), int64(1), domain.MovementTypePurchase, referencePeriod).Return([]domain.InventoryMovement{
		{ID: 1, TenantID: 1, Type: domain.MovementTypePurchase, CostTotal: dec("300"), Quantity: dec("1"), ProductID: 1, CreatedAt: referenceNow.Add(-3 * time.Hour), Active: true},
	}, nil)
	movements.EXPECT().ListByPeriod(gomock.Any(), int64(1), domain.MovementTypeConsumption, referencePeriod).Return(nil, nil)
	expenses.EXPECT().ListByPeriod(gomock.Any(), int64(1), referencePeriod).Return(nil, nil)
	products.EXPECT().ListActive(gomock.Any(), int64(1)).Return([]domain.Product{
		{ID: 1, TenantID: 1, Name: "Café molido", Code: "CAF01", CurrentStock: dec("20"), SalePrice: dec("100"), Active: true},
	}, nil)
	closeRepo.EXPECT().GetByPeriod(gomock.Any(), int64(1), referencePeriod.Start, referencePeriod.End).Return(nil, nil)
	closeRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record *domain.CloseRecord) error {
			record.ID = 77
			return nil
		})

	loader := aggregating.NewService(sales, movements, expenses, products, clk, time.Second)
	service := NewService(closeRepo, loader, NewDraftStore(30*time.Minute, clk), clk)
	ctx := context.Background()

	draft, err := service.OpenClose(ctx, 1, 9, referencePeriod)
	require.NoError(t, err)
	assert.Equal(t, "1200", draft.ExpectedCash.String())
	assert.Equal(t, "20", draft.ExpectedInventory.String())

	reviewed, err := service.SubmitCount(ctx, 1, draft.ID, dec("1150"), "")
	require.NoError(t, err)
	assert.Equal(t, "50", reviewed.CashVariance.String())
	assert.True(t, reviewed.Balanced)

	saved, err := service.Save(ctx, 1, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CloseStepSaved, saved.Step)
	require.NotNil(t, saved.Record)
	assert.Equal(t, int64(77), saved.Record.ID)
}
