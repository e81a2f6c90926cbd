package warehouse

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
)

// PutawaySuggestion is one ranked candidate destination for a putaway
type PutawaySuggestion struct {
	LocationID        uuid.UUID       `json:"location_id"`
	LocationCode      string          `json:"location_code"`
	AvailableCapacity decimal.Decimal `json:"available_capacity"`
	Utilization       decimal.Decimal `json:"utilization"`
	Rank              int             `json:"rank"`
}

// PutawayAllocator chooses destination locations for inbound stock using a
// load-balancing heuristic: among active storage locations with enough
// headroom, the least-utilized location wins. The suggestion is advisory;
// the operator may override it, in which case the capacity check still runs
// at commit time.
type PutawayAllocator struct {
	locations LocationRepository
	capacity  *CapacityTracker
}

// NewPutawayAllocator creates a new PutawayAllocator
func NewPutawayAllocator(locations LocationRepository, capacity *CapacityTracker) *PutawayAllocator {
	return &PutawayAllocator{locations: locations, capacity: capacity}
}

// SuggestLocation returns the least-utilized suitable location for the
// requested quantity, or ErrNoSuitableLocation when nothing has headroom.
func (a *PutawayAllocator) SuggestLocation(ctx context.Context, companyID uuid.UUID, quantity decimal.Decimal) (*PutawaySuggestion, error) {
	suggestions, err := a.RankLocations(ctx, companyID, quantity)
	if err != nil {
		return nil, err
	}
	if len(suggestions) == 0 {
		return nil, ErrNoSuitableLocation
	}
	return &suggestions[0], nil
}

// RankLocations returns all suitable locations ordered by ascending
// utilization ratio. Ties are broken by location code so that placement is
// deterministic.
func (a *PutawayAllocator) RankLocations(ctx context.Context, companyID uuid.UUID, quantity decimal.Decimal) ([]PutawaySuggestion, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Putaway quantity must be positive")
	}

	candidates, err := a.locations.FindActiveStorage(ctx, companyID)
	if err != nil {
		return nil, err
	}

	type scored struct {
		location    Location
		available   decimal.Decimal
		utilization decimal.Decimal
	}
	suitable := make([]scored, 0, len(candidates))

	for i := range candidates {
		loc := &candidates[i]
		if !loc.HasValidCapacity() {
			continue
		}
		current, err := a.capacity.CurrentCapacity(ctx, companyID, loc)
		if err != nil {
			return nil, err
		}
		available := loc.MaxCapacity.Sub(current)
		if available.LessThan(quantity) {
			continue
		}
		suitable = append(suitable, scored{
			location:    candidates[i],
			available:   available,
			utilization: current.Div(loc.MaxCapacity),
		})
	}

	sort.Slice(suitable, func(i, j int) bool {
		if !suitable[i].utilization.Equal(suitable[j].utilization) {
			return suitable[i].utilization.LessThan(suitable[j].utilization)
		}
		return suitable[i].location.Code < suitable[j].location.Code
	})

	suggestions := make([]PutawaySuggestion, len(suitable))
	for i, s := range suitable {
		suggestions[i] = PutawaySuggestion{
			LocationID:        s.location.ID,
			LocationCode:      s.location.Code,
			AvailableCapacity: s.available,
			Utilization:       s.utilization,
			Rank:              i + 1,
		}
	}
	return suggestions, nil
}

// ErrNoSuitableLocation is returned when no active storage location has
// enough headroom for the requested quantity.
var ErrNoSuitableLocation = shared.NewDomainError("NO_SUITABLE_LOCATION", "No storage location has sufficient capacity")
