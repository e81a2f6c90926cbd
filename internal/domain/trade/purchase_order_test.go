package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warehouse/backend/internal/domain/shared/valueobject"
)

func createTestPurchaseOrder(t *testing.T) *PurchaseOrder {
	order, err := NewPurchaseOrder(uuid.New(), "PO-2026-00001", uuid.New(), "Acme Supplies")
	require.NoError(t, err)
	return order
}

func createTestPurchaseOrderWithLine(t *testing.T) *PurchaseOrder {
	order := createTestPurchaseOrder(t)
	_, err := order.AddLine(uuid.New(), "WIDGET-01", "Widget", decimal.NewFromInt(40), valueobject.NewMoneyUSDFromFloat(9.99))
	require.NoError(t, err)
	return order
}

func TestPurchaseOrderStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  PurchaseOrderStatus
		isValid bool
	}{
		{PurchaseOrderStatusDraft, true},
		{PurchaseOrderStatusSent, true},
		{PurchaseOrderStatusCancelled, true},
		{PurchaseOrderStatus("INVALID"), false},
		{PurchaseOrderStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestPurchaseOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    PurchaseOrderStatus
		to      PurchaseOrderStatus
		allowed bool
	}{
		{PurchaseOrderStatusDraft, PurchaseOrderStatusSent, true},
		{PurchaseOrderStatusDraft, PurchaseOrderStatusCancelled, true},
		{PurchaseOrderStatusSent, PurchaseOrderStatusDraft, false},
		{PurchaseOrderStatusSent, PurchaseOrderStatusCancelled, false},
		{PurchaseOrderStatusCancelled, PurchaseOrderStatusDraft, false},
		{PurchaseOrderStatusCancelled, PurchaseOrderStatusSent, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestNewPurchaseOrder(t *testing.T) {
	t.Run("creates order in draft", func(t *testing.T) {
		order := createTestPurchaseOrder(t)

		assert.Equal(t, PurchaseOrderStatusDraft, order.Status)
		assert.Empty(t, order.Lines)
		assert.True(t, order.TotalAmount.IsZero())
		assert.True(t, order.CanModify())
	})

	t.Run("rejects empty order number", func(t *testing.T) {
		_, err := NewPurchaseOrder(uuid.New(), "", uuid.New(), "Acme Supplies")
		assert.Error(t, err)
	})

	t.Run("rejects nil supplier", func(t *testing.T) {
		_, err := NewPurchaseOrder(uuid.New(), "PO-2026-00001", uuid.Nil, "Acme Supplies")
		assert.Error(t, err)
	})
}

func TestPurchaseOrder_AddLine(t *testing.T) {
	t.Run("adds line and recalculates total", func(t *testing.T) {
		order := createTestPurchaseOrder(t)

		line, err := order.AddLine(uuid.New(), "WIDGET-01", "Widget", decimal.NewFromInt(40), valueobject.NewMoneyUSDFromFloat(10.0))

		require.NoError(t, err)
		assert.True(t, line.Amount.Equal(decimal.NewFromInt(400)))
		assert.Len(t, order.Lines, 1)
		assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(400)))
	})

	t.Run("rejects duplicate item", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		itemID := uuid.New()
		_, err := order.AddLine(itemID, "WIDGET-01", "Widget", decimal.NewFromInt(1), valueobject.ZeroUSD())
		require.NoError(t, err)

		_, err = order.AddLine(itemID, "WIDGET-01", "Widget", decimal.NewFromInt(1), valueobject.ZeroUSD())
		assert.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		_, err := order.AddLine(uuid.New(), "WIDGET-01", "Widget", decimal.Zero, valueobject.ZeroUSD())
		assert.Error(t, err)
	})

	t.Run("rejects lines on sent order", func(t *testing.T) {
		order := createTestPurchaseOrderWithLine(t)
		require.NoError(t, order.Send())

		_, err := order.AddLine(uuid.New(), "GADGET-01", "Gadget", decimal.NewFromInt(1), valueobject.ZeroUSD())
		assert.Error(t, err)
	})
}

func TestPurchaseOrder_UpdateLineQuantity(t *testing.T) {
	t.Run("updates quantity and amounts", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		line, err := order.AddLine(uuid.New(), "WIDGET-01", "Widget", decimal.NewFromInt(10), valueobject.NewMoneyUSDFromFloat(5.0))
		require.NoError(t, err)

		err = order.UpdateLineQuantity(line.ID, decimal.NewFromInt(20))

		require.NoError(t, err)
		updated := order.GetLine(line.ID)
		assert.True(t, updated.Quantity.Equal(decimal.NewFromInt(20)))
		assert.True(t, updated.Amount.Equal(decimal.NewFromInt(100)))
		assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(100)))
	})

	t.Run("unknown line", func(t *testing.T) {
		order := createTestPurchaseOrderWithLine(t)
		assert.Error(t, order.UpdateLineQuantity(uuid.New(), decimal.NewFromInt(1)))
	})

	t.Run("rejects updates after send", func(t *testing.T) {
		order := createTestPurchaseOrderWithLine(t)
		lineID := order.Lines[0].ID
		require.NoError(t, order.Send())

		assert.Error(t, order.UpdateLineQuantity(lineID, decimal.NewFromInt(1)))
	})
}

func TestPurchaseOrder_RemoveLine(t *testing.T) {
	order := createTestPurchaseOrder(t)
	line, err := order.AddLine(uuid.New(), "WIDGET-01", "Widget", decimal.NewFromInt(10), valueobject.NewMoneyUSDFromFloat(5.0))
	require.NoError(t, err)

	err = order.RemoveLine(line.ID)

	require.NoError(t, err)
	assert.Empty(t, order.Lines)
	assert.True(t, order.TotalAmount.IsZero())
}

func TestPurchaseOrder_Send(t *testing.T) {
	t.Run("sends order with lines", func(t *testing.T) {
		order := createTestPurchaseOrderWithLine(t)

		err := order.Send()

		require.NoError(t, err)
		assert.Equal(t, PurchaseOrderStatusSent, order.Status)
		assert.NotNil(t, order.SentAt)
		assert.False(t, order.CanModify())
	})

	t.Run("rejects empty order", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		assert.Error(t, order.Send())
	})

	t.Run("rejects double send", func(t *testing.T) {
		order := createTestPurchaseOrderWithLine(t)
		require.NoError(t, order.Send())

		assert.Error(t, order.Send())
	})
}

func TestPurchaseOrder_Cancel(t *testing.T) {
	t.Run("cancels draft order", func(t *testing.T) {
		order := createTestPurchaseOrderWithLine(t)

		err := order.Cancel("supplier out of business")

		require.NoError(t, err)
		assert.Equal(t, PurchaseOrderStatusCancelled, order.Status)
		assert.NotNil(t, order.CancelledAt)
		assert.Equal(t, "supplier out of business", order.CancelReason)
	})

	t.Run("requires a reason", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		assert.Error(t, order.Cancel(""))
	})

	t.Run("rejects cancelling a sent order", func(t *testing.T) {
		order := createTestPurchaseOrderWithLine(t)
		require.NoError(t, order.Send())

		assert.Error(t, order.Cancel("changed our mind"))
	})
}
