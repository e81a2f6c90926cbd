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

func newTestShipmentNoticeService() (*ShipmentNoticeService, *MockShipmentNoticeRepository, *MockPurchaseOrderRepository, *MockEventPublisher) {
	noticeRepo := new(MockShipmentNoticeRepository)
	orderRepo := new(MockPurchaseOrderRepository)
	publisher := &MockEventPublisher{}
	service := NewShipmentNoticeService(noticeRepo, orderRepo)
	service.SetEventPublisher(publisher)
	return service, noticeRepo, orderRepo, publisher
}

func sentPurchaseOrder(t *testing.T, companyID uuid.UUID) *trade.PurchaseOrder {
	t.Helper()
	order := draftPurchaseOrder(t, companyID)
	require.NoError(t, order.Send())
	order.ClearDomainEvents()
	return order
}

func draftNotice(t *testing.T, companyID uuid.UUID) *trade.ShipmentNotice {
	t.Helper()
	notice, err := trade.NewShipmentNotice(companyID, "ASN-2026-00001", uuid.New())
	require.NoError(t, err)
	_, err = notice.AddLine(uuid.New(), "WIDGET-01", "Widget", decimal.NewFromInt(40), valueobject.NewMoneyUSDFromFloat(9.99))
	require.NoError(t, err)
	notice.ClearDomainEvents()
	return notice
}

func TestShipmentNoticeService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	op := testOperator(companyID)

	t.Run("copies lines from the sent purchase order", func(t *testing.T) {
		service, noticeRepo, orderRepo, publisher := newTestShipmentNoticeService()

		order := sentPurchaseOrder(t, companyID)
		orderRepo.On("FindByIDForCompany", ctx, companyID, order.ID).Return(order, nil).Once()
		noticeRepo.On("GenerateNoticeNumber", ctx, companyID).Return("ASN-2026-00007", nil).Once()
		noticeRepo.On("Save", ctx, mock.AnythingOfType("*trade.ShipmentNotice")).Return(nil).Once()

		response, err := service.Create(ctx, op, CreateShipmentNoticeRequest{
			PurchaseOrderID: order.ID,
		})

		require.NoError(t, err)
		assert.Equal(t, "ASN-2026-00007", response.NoticeNumber)
		assert.Equal(t, order.ID, response.PurchaseOrderID)
		assert.Equal(t, trade.ShipmentNoticeStatusDraft.String(), response.Status)
		require.Len(t, response.Lines, 1)
		assert.True(t, response.Lines[0].ShippedQuantity.Equal(decimal.NewFromInt(40)))
		assert.True(t, response.Lines[0].ActualUnitPrice.Equal(decimal.NewFromFloat(10.00)))
		assert.True(t, response.Lines[0].Remaining.Equal(decimal.NewFromInt(40)))

		created := publisher.GetEventsByType(trade.EventTypeShipmentNoticeCreated)
		assert.Len(t, created, 1)
		noticeRepo.AssertExpectations(t)
	})

	t.Run("overrides short-ship the order line", func(t *testing.T) {
		service, noticeRepo, orderRepo, _ := newTestShipmentNoticeService()

		order := sentPurchaseOrder(t, companyID)
		itemID := order.Lines[0].ItemID
		shipped := decimal.NewFromInt(38)
		actualPrice := decimal.NewFromFloat(9.75)

		orderRepo.On("FindByIDForCompany", ctx, companyID, order.ID).Return(order, nil).Once()
		noticeRepo.On("GenerateNoticeNumber", ctx, companyID).Return("ASN-2026-00008", nil).Once()
		noticeRepo.On("Save", ctx, mock.AnythingOfType("*trade.ShipmentNotice")).Return(nil).Once()

		response, err := service.Create(ctx, op, CreateShipmentNoticeRequest{
			PurchaseOrderID: order.ID,
			LineOverrides: []ShipmentLineOverride{
				{ItemID: itemID, ShippedQuantity: &shipped, ActualUnitPrice: &actualPrice},
			},
		})

		require.NoError(t, err)
		require.Len(t, response.Lines, 1)
		assert.True(t, response.Lines[0].ShippedQuantity.Equal(decimal.NewFromInt(38)))
		assert.True(t, response.Lines[0].ActualUnitPrice.Equal(decimal.NewFromFloat(9.75)))
	})

	t.Run("rejects order that has not been sent", func(t *testing.T) {
		service, noticeRepo, orderRepo, _ := newTestShipmentNoticeService()

		order := draftPurchaseOrder(t, companyID)
		orderRepo.On("FindByIDForCompany", ctx, companyID, order.ID).Return(order, nil).Once()

		_, err := service.Create(ctx, op, CreateShipmentNoticeRequest{PurchaseOrderID: order.ID})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ORDER_NOT_SENT", domainErr.Code)
		noticeRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestShipmentNoticeService_Transitions(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	op := testOperator(companyID)

	t.Run("walks draft to arrived", func(t *testing.T) {
		service, noticeRepo, _, publisher := newTestShipmentNoticeService()

		notice := draftNotice(t, companyID)
		noticeRepo.On("FindByIDForCompany", ctx, companyID, notice.ID).Return(notice, nil).Twice()
		noticeRepo.On("Save", ctx, notice).Return(nil).Twice()

		inTransit, err := service.MarkInTransit(ctx, op, notice.ID)
		require.NoError(t, err)
		assert.Equal(t, trade.ShipmentNoticeStatusInTransit.String(), inTransit.Status)

		arrived, err := service.MarkArrived(ctx, op, notice.ID)
		require.NoError(t, err)
		assert.Equal(t, trade.ShipmentNoticeStatusArrived.String(), arrived.Status)
		assert.NotNil(t, arrived.ArrivedAt)

		assert.Len(t, publisher.GetEventsByType(trade.EventTypeShipmentNoticeArrived), 1)
		noticeRepo.AssertExpectations(t)
	})

	t.Run("rejects arrival before dispatch", func(t *testing.T) {
		service, noticeRepo, _, _ := newTestShipmentNoticeService()

		notice := draftNotice(t, companyID)
		noticeRepo.On("FindByIDForCompany", ctx, companyID, notice.ID).Return(notice, nil).Once()

		_, err := service.MarkArrived(ctx, op, notice.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		noticeRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("cancels an in-transit notice", func(t *testing.T) {
		service, noticeRepo, _, _ := newTestShipmentNoticeService()

		notice := draftNotice(t, companyID)
		require.NoError(t, notice.MarkInTransit())
		notice.ClearDomainEvents()

		noticeRepo.On("FindByIDForCompany", ctx, companyID, notice.ID).Return(notice, nil).Once()
		noticeRepo.On("Save", ctx, notice).Return(nil).Once()

		response, err := service.Cancel(ctx, op, notice.ID, "carrier lost the shipment")

		require.NoError(t, err)
		assert.Equal(t, trade.ShipmentNoticeStatusCancelled.String(), response.Status)
	})
}
