package trade

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/domain/shared/valueobject"
	"github.com/warehouse/backend/internal/domain/trade"
)

func newTestSalesOrderService() (*SalesOrderService, *MockSalesOrderRepository, *MockEventPublisher) {
	orderRepo := new(MockSalesOrderRepository)
	publisher := &MockEventPublisher{}
	service := NewSalesOrderService(orderRepo)
	service.SetEventPublisher(publisher)
	return service, orderRepo, publisher
}

func draftSalesOrder(t *testing.T, companyID uuid.UUID) *trade.SalesOrder {
	t.Helper()
	order, err := trade.NewSalesOrder(companyID, "SO-2026-00001", uuid.New(), "Globex Corp")
	require.NoError(t, err)
	_, err = order.AddLine(uuid.New(), "WIDGET-01", "Widget", decimal.NewFromInt(50), valueobject.NewMoneyUSDFromFloat(19.99))
	require.NoError(t, err)
	order.ClearDomainEvents()
	return order
}

func TestSalesOrderService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	op := testOperator(companyID)

	t.Run("creates draft order with numbered document", func(t *testing.T) {
		service, orderRepo, publisher := newTestSalesOrderService()

		orderRepo.On("GenerateOrderNumber", ctx, companyID).Return("SO-2026-00017", nil).Once()
		orderRepo.On("Save", ctx, mock.AnythingOfType("*trade.SalesOrder")).Return(nil).Once()

		response, err := service.Create(ctx, op, CreateSalesOrderRequest{
			CustomerID:   uuid.New(),
			CustomerName: "Globex Corp",
			Lines: []CreateOrderLineRequest{
				{ItemID: uuid.New(), ItemCode: "WIDGET-01", ItemName: "Widget", Quantity: decimal.NewFromInt(50), UnitPrice: decimal.NewFromFloat(19.99)},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "SO-2026-00017", response.OrderNumber)
		assert.Equal(t, trade.SalesOrderStatusDraft.String(), response.Status)
		assert.True(t, response.TotalAmount.Equal(decimal.NewFromFloat(999.50)))

		created := publisher.GetEventsByType(trade.EventTypeSalesOrderCreated)
		assert.Len(t, created, 1)
		orderRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate item across lines", func(t *testing.T) {
		service, orderRepo, _ := newTestSalesOrderService()

		itemID := uuid.New()
		orderRepo.On("GenerateOrderNumber", ctx, companyID).Return("SO-2026-00018", nil).Once()

		_, err := service.Create(ctx, op, CreateSalesOrderRequest{
			CustomerID:   uuid.New(),
			CustomerName: "Globex Corp",
			Lines: []CreateOrderLineRequest{
				{ItemID: itemID, ItemCode: "WIDGET-01", Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromFloat(19.99)},
				{ItemID: itemID, ItemCode: "WIDGET-01", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromFloat(19.99)},
			},
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_ITEM", domainErr.Code)
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestSalesOrderService_Confirm(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	op := testOperator(companyID)

	t.Run("confirms a draft order", func(t *testing.T) {
		service, orderRepo, publisher := newTestSalesOrderService()

		order := draftSalesOrder(t, companyID)
		orderRepo.On("FindByIDForCompany", ctx, companyID, order.ID).Return(order, nil).Once()
		orderRepo.On("Save", ctx, order).Return(nil).Once()

		response, err := service.Confirm(ctx, op, order.ID)

		require.NoError(t, err)
		assert.Equal(t, trade.SalesOrderStatusConfirmed.String(), response.Status)
		assert.NotNil(t, response.ConfirmedAt)

		confirmed := publisher.GetEventsByType(trade.EventTypeSalesOrderConfirmed)
		assert.Len(t, confirmed, 1)
	})

	t.Run("rejects confirming an empty order", func(t *testing.T) {
		service, orderRepo, _ := newTestSalesOrderService()

		order, err := trade.NewSalesOrder(companyID, "SO-2026-00002", uuid.New(), "Globex Corp")
		require.NoError(t, err)

		orderRepo.On("FindByIDForCompany", ctx, companyID, order.ID).Return(order, nil).Once()

		_, err = service.Confirm(ctx, op, order.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NO_LINES", domainErr.Code)
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestSalesOrderService_ShipAndComplete(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	op := testOperator(companyID)

	t.Run("ships a ready order and completes it", func(t *testing.T) {
		service, orderRepo, publisher := newTestSalesOrderService()

		order := draftSalesOrder(t, companyID)
		require.NoError(t, order.Confirm())
		require.NoError(t, order.StartPicking())
		require.NoError(t, order.MarkReadyToShip())
		order.ClearDomainEvents()

		orderRepo.On("FindByIDForCompany", ctx, companyID, order.ID).Return(order, nil).Twice()
		orderRepo.On("Save", ctx, order).Return(nil).Twice()

		shipped, err := service.Ship(ctx, op, order.ID)
		require.NoError(t, err)
		assert.Equal(t, trade.SalesOrderStatusShipped.String(), shipped.Status)
		assert.NotNil(t, shipped.ShippedAt)
		assert.Len(t, publisher.GetEventsByType(trade.EventTypeSalesOrderShipped), 1)

		completed, err := service.Complete(ctx, op, order.ID)
		require.NoError(t, err)
		assert.Equal(t, trade.SalesOrderStatusCompleted.String(), completed.Status)
		assert.NotNil(t, completed.CompletedAt)
		orderRepo.AssertExpectations(t)
	})

	t.Run("rejects shipping before picking finishes", func(t *testing.T) {
		service, orderRepo, _ := newTestSalesOrderService()

		order := draftSalesOrder(t, companyID)
		require.NoError(t, order.Confirm())
		require.NoError(t, order.StartPicking())
		order.ClearDomainEvents()

		orderRepo.On("FindByIDForCompany", ctx, companyID, order.ID).Return(order, nil).Once()

		_, err := service.Ship(ctx, op, order.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

func TestSalesOrderService_Cancel(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	op := testOperator(companyID)

	t.Run("cancels a confirmed order", func(t *testing.T) {
		service, orderRepo, publisher := newTestSalesOrderService()

		order := draftSalesOrder(t, companyID)
		require.NoError(t, order.Confirm())
		order.ClearDomainEvents()

		orderRepo.On("FindByIDForCompany", ctx, companyID, order.ID).Return(order, nil).Once()
		orderRepo.On("Save", ctx, order).Return(nil).Once()

		response, err := service.Cancel(ctx, op, order.ID, "customer withdrew")

		require.NoError(t, err)
		assert.Equal(t, trade.SalesOrderStatusCancelled.String(), response.Status)
		assert.Len(t, publisher.GetEventsByType(trade.EventTypeSalesOrderCancelled), 1)
	})

	t.Run("rejects cancelling during picking", func(t *testing.T) {
		service, orderRepo, _ := newTestSalesOrderService()

		order := draftSalesOrder(t, companyID)
		require.NoError(t, order.Confirm())
		require.NoError(t, order.StartPicking())
		order.ClearDomainEvents()

		orderRepo.On("FindByIDForCompany", ctx, companyID, order.ID).Return(order, nil).Once()

		_, err := service.Cancel(ctx, op, order.ID, "customer withdrew")

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
