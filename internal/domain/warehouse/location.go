package warehouse

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
)

// LocationCategory represents the functional category of a storage location
type LocationCategory string

const (
	// LocationCategoryStorage marks locations that hold sellable stock and
	// participate in capacity accounting and putaway placement.
	LocationCategoryStorage LocationCategory = "STORAGE"
	// LocationCategoryStaging marks pass-through locations (receiving docks,
	// packing areas) excluded from sellable-stock placement.
	LocationCategoryStaging LocationCategory = "STAGING"
)

// IsValid checks if the category is a valid LocationCategory
func (c LocationCategory) IsValid() bool {
	switch c {
	case LocationCategoryStorage, LocationCategoryStaging:
		return true
	}
	return false
}

// String returns the string representation
func (c LocationCategory) String() string {
	return string(c)
}

// Location represents a storage slot in the warehouse.
// MaxCapacity is a unit count ceiling, not a physical volume. The current
// occupancy is never stored on the location; it is always derived from the
// ledger rows at the location.
type Location struct {
	shared.CompanyAggregateRoot
	Code        string           `gorm:"type:varchar(50);not null"`
	Name        string           `gorm:"type:varchar(200)"`
	Category    LocationCategory `gorm:"type:varchar(20);not null"`
	MaxCapacity decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	Active      bool             `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Location) TableName() string {
	return "locations"
}

// NewLocation creates a new location. A non-positive max capacity is a
// configuration error and is rejected outright rather than defaulted.
func NewLocation(companyID uuid.UUID, code string, category LocationCategory, maxCapacity decimal.Decimal) (*Location, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Location code cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_CODE", "Location code cannot exceed 50 characters")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown location category")
	}
	if maxCapacity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_CAPACITY", "Location max capacity must be positive")
	}

	location := &Location{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Code:                 strings.ToUpper(code),
		Category:             category,
		MaxCapacity:          maxCapacity,
		Active:               true,
	}

	location.AddDomainEvent(NewLocationCreatedEvent(location))

	return location, nil
}

// SetName sets the display name
func (l *Location) SetName(name string) {
	l.Name = name
	l.UpdatedAt = time.Now()
}

// UpdateMaxCapacity changes the capacity ceiling. Lowering it below the
// current occupancy is allowed here; the capacity tracker will simply report
// no headroom until stock drains.
func (l *Location) UpdateMaxCapacity(maxCapacity decimal.Decimal) error {
	if maxCapacity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_CAPACITY", "Location max capacity must be positive")
	}

	l.MaxCapacity = maxCapacity
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// Activate marks the location usable for stock operations
func (l *Location) Activate() {
	if l.Active {
		return
	}
	l.Active = true
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// Deactivate takes the location out of service. Existing stock stays where
// it is but no new stock may be placed.
func (l *Location) Deactivate() {
	if !l.Active {
		return
	}
	l.Active = false
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// IsStorage returns true if the location holds sellable stock
func (l *Location) IsStorage() bool {
	return l.Category == LocationCategoryStorage
}

// HasValidCapacity reports whether the configured ceiling is usable.
// Rows migrated from legacy systems may carry a zero ceiling; those
// locations are treated as misconfigured and rejected by capacity checks.
func (l *Location) HasValidCapacity() bool {
	return l.MaxCapacity.GreaterThan(decimal.Zero)
}
