package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/domain/shared/valueobject"
)

func createTestNotice(t *testing.T) *ShipmentNotice {
	notice, err := NewShipmentNotice(uuid.New(), "ASN-2026-00001", uuid.New())
	require.NoError(t, err)
	return notice
}

// createArrivedNotice returns a notice with one 40-unit line, already arrived
func createArrivedNotice(t *testing.T) *ShipmentNotice {
	notice := createTestNotice(t)
	_, err := notice.AddLine(uuid.New(), "WIDGET-01", "Widget", decimal.NewFromInt(40), valueobject.NewMoneyUSDFromFloat(9.99))
	require.NoError(t, err)
	require.NoError(t, notice.MarkInTransit())
	require.NoError(t, notice.MarkArrived())
	return notice
}

func TestShipmentNoticeStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    ShipmentNoticeStatus
		to      ShipmentNoticeStatus
		allowed bool
	}{
		{ShipmentNoticeStatusDraft, ShipmentNoticeStatusInTransit, true},
		{ShipmentNoticeStatusDraft, ShipmentNoticeStatusArrived, false},
		{ShipmentNoticeStatusDraft, ShipmentNoticeStatusCancelled, true},
		{ShipmentNoticeStatusInTransit, ShipmentNoticeStatusArrived, true},
		{ShipmentNoticeStatusInTransit, ShipmentNoticeStatusCancelled, true},
		{ShipmentNoticeStatusArrived, ShipmentNoticeStatusProcessed, true},
		{ShipmentNoticeStatusArrived, ShipmentNoticeStatusCancelled, true},
		{ShipmentNoticeStatusProcessed, ShipmentNoticeStatusCancelled, false},
		{ShipmentNoticeStatusCancelled, ShipmentNoticeStatusInTransit, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestShipmentNotice_Lifecycle(t *testing.T) {
	t.Run("draft to processed", func(t *testing.T) {
		notice := createTestNotice(t)
		line, err := notice.AddLine(uuid.New(), "WIDGET-01", "Widget", decimal.NewFromInt(40), valueobject.NewMoneyUSDFromFloat(9.99))
		require.NoError(t, err)

		require.NoError(t, notice.MarkInTransit())
		require.NoError(t, notice.MarkArrived())
		assert.NotNil(t, notice.ArrivedAt)
		assert.True(t, notice.CanPutaway())

		require.NoError(t, notice.RecordPutaway(line.ID, decimal.NewFromInt(40)))
		assert.Equal(t, ShipmentNoticeStatusProcessed, notice.Status)
		assert.NotNil(t, notice.ProcessedAt)
	})

	t.Run("cannot dispatch without lines", func(t *testing.T) {
		notice := createTestNotice(t)
		assert.Error(t, notice.MarkInTransit())
	})

	t.Run("cannot arrive from draft", func(t *testing.T) {
		notice := createTestNotice(t)
		assert.Error(t, notice.MarkArrived())
	})
}

func TestShipmentNotice_AddLine(t *testing.T) {
	t.Run("rejects duplicate item", func(t *testing.T) {
		notice := createTestNotice(t)
		itemID := uuid.New()
		_, err := notice.AddLine(itemID, "WIDGET-01", "Widget", decimal.NewFromInt(1), valueobject.ZeroUSD())
		require.NoError(t, err)

		_, err = notice.AddLine(itemID, "WIDGET-01", "Widget", decimal.NewFromInt(1), valueobject.ZeroUSD())
		assert.Error(t, err)
	})

	t.Run("rejects lines once dispatched", func(t *testing.T) {
		notice := createArrivedNotice(t)
		_, err := notice.AddLine(uuid.New(), "GADGET-01", "Gadget", decimal.NewFromInt(1), valueobject.ZeroUSD())
		assert.Error(t, err)
	})
}

func TestShipmentNotice_RecordPutaway(t *testing.T) {
	t.Run("partial putaway leaves the notice arrived", func(t *testing.T) {
		notice := createArrivedNotice(t)
		line := &notice.Lines[0]

		err := notice.RecordPutaway(line.ID, decimal.NewFromInt(15))

		require.NoError(t, err)
		assert.Equal(t, ShipmentNoticeStatusArrived, notice.Status)
		assert.True(t, line.PlacedQuantity.Equal(decimal.NewFromInt(15)))
		assert.True(t, line.Remaining().Equal(decimal.NewFromInt(25)))
		assert.True(t, notice.TotalRemaining().Equal(decimal.NewFromInt(25)))
	})

	t.Run("placing the remainder processes the notice", func(t *testing.T) {
		notice := createArrivedNotice(t)
		line := &notice.Lines[0]
		require.NoError(t, notice.RecordPutaway(line.ID, decimal.NewFromInt(15)))

		err := notice.RecordPutaway(line.ID, decimal.NewFromInt(25))

		require.NoError(t, err)
		assert.Equal(t, ShipmentNoticeStatusProcessed, notice.Status)
		assert.True(t, notice.AllLinesPlaced())
	})

	t.Run("rejects more than remaining", func(t *testing.T) {
		notice := createArrivedNotice(t)
		line := &notice.Lines[0]

		err := notice.RecordPutaway(line.ID, decimal.NewFromInt(41))

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EXCEEDS_REMAINING", domainErr.Code)
	})

	t.Run("rejects putaway before arrival", func(t *testing.T) {
		notice := createTestNotice(t)
		line, err := notice.AddLine(uuid.New(), "WIDGET-01", "Widget", decimal.NewFromInt(10), valueobject.ZeroUSD())
		require.NoError(t, err)
		require.NoError(t, notice.MarkInTransit())

		err = notice.RecordPutaway(line.ID, decimal.NewFromInt(5))
		assert.Error(t, err)
	})

	t.Run("rejects unknown line", func(t *testing.T) {
		notice := createArrivedNotice(t)
		err := notice.RecordPutaway(uuid.New(), decimal.NewFromInt(1))
		assert.Error(t, err)
	})

	t.Run("rejects fully placed line", func(t *testing.T) {
		notice := createTestNotice(t)
		full, err := notice.AddLine(uuid.New(), "WIDGET-01", "Widget", decimal.NewFromInt(10), valueobject.ZeroUSD())
		require.NoError(t, err)
		_, err = notice.AddLine(uuid.New(), "GADGET-01", "Gadget", decimal.NewFromInt(10), valueobject.ZeroUSD())
		require.NoError(t, err)
		require.NoError(t, notice.MarkInTransit())
		require.NoError(t, notice.MarkArrived())
		require.NoError(t, notice.RecordPutaway(full.ID, decimal.NewFromInt(10)))
		require.Equal(t, ShipmentNoticeStatusArrived, notice.Status)

		err = notice.RecordPutaway(full.ID, decimal.NewFromInt(1))

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "LINE_FULLY_PLACED", domainErr.Code)
	})
}

func TestShipmentNotice_Cancel(t *testing.T) {
	t.Run("cancels from any non-terminal state", func(t *testing.T) {
		notice := createArrivedNotice(t)

		err := notice.Cancel("shipment lost in transit")

		require.NoError(t, err)
		assert.Equal(t, ShipmentNoticeStatusCancelled, notice.Status)
		assert.Equal(t, "shipment lost in transit", notice.CancelReason)
	})

	t.Run("rejects cancelling a processed notice", func(t *testing.T) {
		notice := createArrivedNotice(t)
		require.NoError(t, notice.RecordPutaway(notice.Lines[0].ID, decimal.NewFromInt(40)))

		assert.Error(t, notice.Cancel("too late"))
	})

	t.Run("requires a reason", func(t *testing.T) {
		notice := createTestNotice(t)
		assert.Error(t, notice.Cancel(""))
	})
}
