package aggregating

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/pos-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/pos-dashboard-api/internal/domain"
	"github.com/vfg2006/pos-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/pos-dashboard-api/pkg/clock"
	"go.uber.org/mock/gomock"
)

type serviceMocks struct {
	sales     *mocks.MockSaleRepository
	movements *mocks.MockMovementRepository
	expenses  *mocks.MockExpenseRepository
	products  *mocks.MockProductRepository
}

func newTestService(t *testing.T, timeout time.Duration) (Loader, serviceMocks) {
	ctrl := gomock.NewController(t)

	m := serviceMocks{
		sales:     mocks.NewMockSaleRepository(ctrl),
		movements: mocks.NewMockMovementRepository(ctrl),
		expenses:  mocks.NewMockExpenseRepository(ctrl),
		products:  mocks.NewMockProductRepository(ctrl),
	}

	service := NewService(m.sales, m.movements, m.expenses, m.products, clock.Fixed(referenceNow), timeout)
	return service, m
}

func TestService_Load(t *testing.T) {
	period := domain.Period{
		Start: time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 5, 15, 23, 59, 59, 0, time.UTC),
		Type:  domain.PeriodToday,
	}

	t.Run("Carrega os cinco conjuntos e agrega", func(t *testing.T) {
		service, m := newTestService(t, time.Second)

		m.sales.EXPECT().
			ListByPeriod(gomock.Any(), int64(1), period).
			Return([]domain.Sale{
				sale(1, "1000", referenceNow, item("Café molido", "10", "60", "1000")),
				sale(2, "500", referenceNow, item("Café molido", "5", "60", "500")),
			}, nil)
		m.movements.EXPECT().
			ListByPeriod(gomock.Any(), int64(1), domain.MovementTypePurchase, period).
			Return([]domain.InventoryMovement{movement(1, domain.MovementTypePurchase, "300", 1, referenceNow)}, nil)
		m.movements.EXPECT().
			ListByPeriod(gomock.Any(), int64(1), domain.MovementTypeConsumption, period).
			Return(nil, nil)
		m.expenses.EXPECT().
			ListByPeriod(gomock.Any(), int64(1), period).
			Return(nil, nil)
		m.products.EXPECT().
			ListActive(gomock.Any(), int64(1)).
			Return([]domain.Product{product(1, "Café molido", "CAF01", "20", "100")}, nil)

		snapshot, err := service.Load(context.Background(), 1, period)

		require.NoError(t, err)
		assert.Equal(t, period, snapshot.Period)
		assert.Equal(t, "1500", snapshot.Summary.SalesTotal.String())
		assert.Equal(t, "1200", snapshot.Summary.GrossProfit.String())
		require.Len(t, snapshot.TopProducts, 1)
		assert.Equal(t, "20", snapshot.TopProducts[0].Stock.String())
	})

	t.Run("Falha em uma leitura aborta a carga inteira", func(t *testing.T) {
		service, m := newTestService(t, time.Second)

		m.sales.EXPECT().ListByPeriod(gomock.Any(), gomock.Any(), gomock.Any()).Return([]domain.Sale{}, nil).AnyTimes()
		m.movements.EXPECT().ListByPeriod(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
		m.expenses.EXPECT().ListByPeriod(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("conexão recusada")).AnyTimes()
		m.products.EXPECT().ListActive(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

		snapshot, err := service.Load(context.Background(), 1, period)

		assert.Nil(t, snapshot)
		assert.ErrorIs(t, err, ErrDataLoadFailed)

		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, apiErrors.ErrDataLoadFailed, loadErr.Code)
	})

	t.Run("Tempo limite excedido aborta a carga", func(t *testing.T) {
		service, m := newTestService(t, 20*time.Millisecond)

		waitForCancel := func(ctx context.Context, _ int64, _ domain.Period) ([]domain.Sale, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}

		m.sales.EXPECT().ListByPeriod(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(waitForCancel)
		m.movements.EXPECT().ListByPeriod(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
		m.expenses.EXPECT().ListByPeriod(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
		m.products.EXPECT().ListActive(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

		snapshot, err := service.Load(context.Background(), 1, period)

		assert.Nil(t, snapshot)
		assert.ErrorIs(t, err, ErrDataLoadFailed)

		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Contains(t, loadErr.Details, "tempo limite")
	})
}
