package stock

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
)

// PickSuggestion is one ledger row proposed as a pick source
type PickSuggestion struct {
	RecordID          uuid.UUID       `json:"record_id"`
	LocationID        uuid.UUID       `json:"location_id"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"` // Quantity held at that location
	SuggestedQuantity decimal.Decimal `json:"suggested_quantity"` // Slice of demand assigned to that location
	Preference        int             `json:"preference"`         // 1-based consumption order
}

// PickPlan is the complete result of a pick allocation
type PickPlan struct {
	Suggestions    []PickSuggestion `json:"suggestions"`
	TotalAvailable decimal.Decimal  `json:"total_available"` // Sum of available quantity across suggested rows
	TotalSuggested decimal.Decimal  `json:"total_suggested"` // Sum of suggested quantities
	Shortfall      decimal.Decimal  `json:"shortfall"`       // Demand that no row can cover
	FullyFulfilled bool             `json:"fully_fulfilled"`
}

// PickAllocator chooses pick sources for outbound demand using true FIFO:
// rows are consumed oldest-moved first, split across locations as needed.
// The plan is computed against a snapshot of ledger rows; committing a pick
// must re-validate each row against current state.
type PickAllocator struct{}

// NewPickAllocator creates a new PickAllocator
func NewPickAllocator() *PickAllocator {
	return &PickAllocator{}
}

// Allocate plans the consumption of requiredQuantity across the given
// ledger rows. Only AVAILABLE rows with positive quantity participate,
// ordered ascending by last-moved timestamp (oldest stock first). When the
// rows cannot cover the demand the plan still carries every usable row and
// reports the shortfall; the caller decides whether a short plan may
// proceed.
func (a *PickAllocator) Allocate(requiredQuantity decimal.Decimal, records []StockRecord) (*PickPlan, error) {
	if requiredQuantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Required quantity must be positive")
	}

	pickable := make([]StockRecord, 0, len(records))
	for _, r := range records {
		if r.IsPickable() {
			pickable = append(pickable, r)
		}
	}

	sort.Slice(pickable, func(i, j int) bool {
		if !pickable[i].LastMovedAt.Equal(pickable[j].LastMovedAt) {
			return pickable[i].LastMovedAt.Before(pickable[j].LastMovedAt)
		}
		// Equal timestamps fall back to creation time for a stable order
		return pickable[i].CreatedAt.Before(pickable[j].CreatedAt)
	})

	plan := &PickPlan{
		Suggestions:    make([]PickSuggestion, 0, len(pickable)),
		TotalAvailable: decimal.Zero,
		TotalSuggested: decimal.Zero,
	}

	remaining := requiredQuantity
	for _, r := range pickable {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		suggested := decimal.Min(remaining, r.Quantity)
		plan.Suggestions = append(plan.Suggestions, PickSuggestion{
			RecordID:          r.ID,
			LocationID:        r.LocationID,
			AvailableQuantity: r.Quantity,
			SuggestedQuantity: suggested,
			Preference:        len(plan.Suggestions) + 1,
		})
		plan.TotalAvailable = plan.TotalAvailable.Add(r.Quantity)
		plan.TotalSuggested = plan.TotalSuggested.Add(suggested)
		remaining = remaining.Sub(suggested)
	}

	plan.Shortfall = remaining
	plan.FullyFulfilled = remaining.IsZero()

	return plan, nil
}

// ValidateAvailability checks whether the pickable quantity across the rows
// covers the requested demand, returning the total found
func ValidateAvailability(records []StockRecord, requiredQuantity decimal.Decimal) (bool, decimal.Decimal) {
	total := decimal.Zero
	for _, r := range records {
		if r.IsPickable() {
			total = total.Add(r.Quantity)
		}
	}
	return total.GreaterThanOrEqual(requiredQuantity), total
}
