package warehouse

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeLocation = "Location"

// Event type constants
const (
	EventTypeLocationCreated = "LocationCreated"
)

// LocationCreatedEvent is published when a new location is created
type LocationCreatedEvent struct {
	shared.BaseDomainEvent
	LocationID  uuid.UUID        `json:"location_id"`
	Code        string           `json:"code"`
	Category    LocationCategory `json:"category"`
	MaxCapacity decimal.Decimal  `json:"max_capacity"`
}

// NewLocationCreatedEvent creates a new LocationCreatedEvent
func NewLocationCreatedEvent(location *Location) *LocationCreatedEvent {
	return &LocationCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLocationCreated, AggregateTypeLocation, location.ID, location.CompanyID),
		LocationID:      location.ID,
		Code:            location.Code,
		Category:        location.Category,
		MaxCapacity:     location.MaxCapacity,
	}
}
