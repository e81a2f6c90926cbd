package warehouse

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
)

// OccupancyReader supplies the quantity of stock currently held at a
// location. It is implemented by the stock ledger; the capacity tracker
// deliberately depends only on this narrow read interface so that occupancy
// is always derived from ledger rows and never cached independently.
type OccupancyReader interface {
	// SumQuantityByLocation sums the quantity over all ledger rows at the location
	SumQuantityByLocation(ctx context.Context, companyID, locationID uuid.UUID) (decimal.Decimal, error)
}

// CapacityTracker derives per-location occupancy and headroom from the
// stock ledger. All values are computed on demand against current ledger
// state; callers must not hold results across mutations.
type CapacityTracker struct {
	occupancy OccupancyReader
}

// NewCapacityTracker creates a new CapacityTracker
func NewCapacityTracker(occupancy OccupancyReader) *CapacityTracker {
	return &CapacityTracker{occupancy: occupancy}
}

// CurrentCapacity returns the occupied capacity of the location, derived as
// the sum of ledger row quantities at that location.
func (t *CapacityTracker) CurrentCapacity(ctx context.Context, companyID uuid.UUID, location *Location) (decimal.Decimal, error) {
	if location == nil {
		return decimal.Zero, shared.NewDomainError("INVALID_LOCATION", "Location is required")
	}
	return t.occupancy.SumQuantityByLocation(ctx, companyID, location.ID)
}

// AvailableCapacity returns the remaining headroom of the location
func (t *CapacityTracker) AvailableCapacity(ctx context.Context, companyID uuid.UUID, location *Location) (decimal.Decimal, error) {
	current, err := t.CurrentCapacity(ctx, companyID, location)
	if err != nil {
		return decimal.Zero, err
	}
	return location.MaxCapacity.Sub(current), nil
}

// CheckCapacity verifies the location can absorb additionalQuantity more
// units. It fails for inactive locations, misconfigured ceilings, and
// insufficient headroom. This check is mandatory before every ledger
// increase that is not a same-location no-op.
func (t *CapacityTracker) CheckCapacity(ctx context.Context, companyID uuid.UUID, location *Location, additionalQuantity decimal.Decimal) error {
	if location == nil {
		return shared.NewDomainError("INVALID_LOCATION", "Location is required")
	}
	if additionalQuantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Additional quantity must be positive")
	}
	if !location.Active {
		return shared.NewDomainError("LOCATION_INACTIVE", "Location "+location.Code+" is inactive")
	}
	if !location.HasValidCapacity() {
		return shared.NewDomainError("INVALID_CAPACITY", "Location "+location.Code+" has a misconfigured capacity ceiling")
	}

	available, err := t.AvailableCapacity(ctx, companyID, location)
	if err != nil {
		return err
	}
	if available.LessThan(additionalQuantity) {
		return shared.ErrInsufficientCapacity
	}
	return nil
}

// UtilizationRatio returns occupied/max for the location. Used by putaway
// placement to rank candidates.
func (t *CapacityTracker) UtilizationRatio(ctx context.Context, companyID uuid.UUID, location *Location) (decimal.Decimal, error) {
	if !location.HasValidCapacity() {
		return decimal.Zero, shared.NewDomainError("INVALID_CAPACITY", "Location "+location.Code+" has a misconfigured capacity ceiling")
	}
	current, err := t.CurrentCapacity(ctx, companyID, location)
	if err != nil {
		return decimal.Zero, err
	}
	return current.Div(location.MaxCapacity), nil
}
