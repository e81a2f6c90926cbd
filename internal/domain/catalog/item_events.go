package catalog

import (
	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeItem = "Item"

// Event type constants
const (
	EventTypeItemCreated       = "ItemCreated"
	EventTypeItemStatusChanged = "ItemStatusChanged"
)

// ItemCreatedEvent is published when a new item is created
type ItemCreatedEvent struct {
	shared.BaseDomainEvent
	ItemID uuid.UUID `json:"item_id"`
	Code   string    `json:"code"`
	Name   string    `json:"name"`
	Unit   string    `json:"unit"`
}

// NewItemCreatedEvent creates a new ItemCreatedEvent
func NewItemCreatedEvent(item *Item) *ItemCreatedEvent {
	return &ItemCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemCreated, AggregateTypeItem, item.ID, item.CompanyID),
		ItemID:          item.ID,
		Code:            item.Code,
		Name:            item.Name,
		Unit:            item.Unit,
	}
}

// ItemStatusChangedEvent is published when an item's status changes
type ItemStatusChangedEvent struct {
	shared.BaseDomainEvent
	ItemID    uuid.UUID  `json:"item_id"`
	Code      string     `json:"code"`
	OldStatus ItemStatus `json:"old_status"`
	NewStatus ItemStatus `json:"new_status"`
}

// NewItemStatusChangedEvent creates a new ItemStatusChangedEvent
func NewItemStatusChangedEvent(item *Item, oldStatus, newStatus ItemStatus) *ItemStatusChangedEvent {
	return &ItemStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemStatusChanged, AggregateTypeItem, item.ID, item.CompanyID),
		ItemID:          item.ID,
		Code:            item.Code,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}
