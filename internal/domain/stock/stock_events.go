package stock

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeStockRecord = "StockRecord"

// Event type constants
const (
	EventTypeStockAdded               = "StockAdded"
	EventTypeStockReduced             = "StockReduced"
	EventTypeStockTransferred         = "StockTransferred"
	EventTypeStockStatusChanged       = "StockStatusChanged"
	EventTypeLowStockThresholdCrossed = "LowStockThresholdCrossed"
)

// StockAddedEvent is published when quantity is added to a ledger row
type StockAddedEvent struct {
	shared.BaseDomainEvent
	ItemID     uuid.UUID       `json:"item_id"`
	LocationID uuid.UUID       `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	CostPrice  decimal.Decimal `json:"cost_price"`
	SourceRef  string          `json:"source_ref"`
	NewBalance decimal.Decimal `json:"new_balance"`
}

// NewStockAddedEvent creates a new StockAddedEvent
func NewStockAddedEvent(record *StockRecord, quantity, costPrice decimal.Decimal, sourceRef string) *StockAddedEvent {
	return &StockAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockAdded, AggregateTypeStockRecord, record.ID, record.CompanyID),
		ItemID:          record.ItemID,
		LocationID:      record.LocationID,
		Quantity:        quantity,
		CostPrice:       costPrice,
		SourceRef:       sourceRef,
		NewBalance:      record.Quantity,
	}
}

// StockReducedEvent is published when quantity is removed from a ledger row
type StockReducedEvent struct {
	shared.BaseDomainEvent
	ItemID     uuid.UUID       `json:"item_id"`
	LocationID uuid.UUID       `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	NewBalance decimal.Decimal `json:"new_balance"`
	NowEmpty   bool            `json:"now_empty"`
}

// NewStockReducedEvent creates a new StockReducedEvent
func NewStockReducedEvent(record *StockRecord, quantity decimal.Decimal) *StockReducedEvent {
	return &StockReducedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReduced, AggregateTypeStockRecord, record.ID, record.CompanyID),
		ItemID:          record.ItemID,
		LocationID:      record.LocationID,
		Quantity:        quantity,
		NewBalance:      record.Quantity,
		NowEmpty:        record.Status == StockStatusEmpty,
	}
}

// StockTransferredEvent is published when quantity moves between locations
type StockTransferredEvent struct {
	shared.BaseDomainEvent
	ItemID         uuid.UUID       `json:"item_id"`
	SourceLocation uuid.UUID       `json:"source_location"`
	DestLocation   uuid.UUID       `json:"dest_location"`
	Quantity       decimal.Decimal `json:"quantity"`
	CostPrice      decimal.Decimal `json:"cost_price"`
}

// NewStockTransferredEvent creates a new StockTransferredEvent
func NewStockTransferredEvent(companyID, itemID, sourceLocation, destLocation uuid.UUID, quantity, costPrice decimal.Decimal) *StockTransferredEvent {
	return &StockTransferredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockTransferred, AggregateTypeStockRecord, itemID, companyID),
		ItemID:          itemID,
		SourceLocation:  sourceLocation,
		DestLocation:    destLocation,
		Quantity:        quantity,
		CostPrice:       costPrice,
	}
}

// StockStatusChangedEvent is published when a row moves between statuses
// outside the normal empty/available lifecycle (damage and repair)
type StockStatusChangedEvent struct {
	shared.BaseDomainEvent
	ItemID     uuid.UUID   `json:"item_id"`
	LocationID uuid.UUID   `json:"location_id"`
	OldStatus  StockStatus `json:"old_status"`
	NewStatus  StockStatus `json:"new_status"`
}

// NewStockStatusChangedEvent creates a new StockStatusChangedEvent
func NewStockStatusChangedEvent(record *StockRecord, oldStatus, newStatus StockStatus) *StockStatusChangedEvent {
	return &StockStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockStatusChanged, AggregateTypeStockRecord, record.ID, record.CompanyID),
		ItemID:          record.ItemID,
		LocationID:      record.LocationID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// LowStockThresholdCrossedEvent is published when an item's total available
// quantity drops below its configured threshold after a reduction. External
// notification layers subscribe to this event; the core never sends
// notifications itself.
type LowStockThresholdCrossedEvent struct {
	shared.BaseDomainEvent
	ItemID         uuid.UUID       `json:"item_id"`
	ItemCode       string          `json:"item_code"`
	TotalAvailable decimal.Decimal `json:"total_available"`
	Threshold      decimal.Decimal `json:"threshold"`
}

// NewLowStockThresholdCrossedEvent creates a new LowStockThresholdCrossedEvent
func NewLowStockThresholdCrossedEvent(companyID, itemID uuid.UUID, itemCode string, totalAvailable, threshold decimal.Decimal) *LowStockThresholdCrossedEvent {
	return &LowStockThresholdCrossedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLowStockThresholdCrossed, AggregateTypeStockRecord, itemID, companyID),
		ItemID:          itemID,
		ItemCode:        itemCode,
		TotalAvailable:  totalAvailable,
		Threshold:       threshold,
	}
}
