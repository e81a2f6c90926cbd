package fulfillment

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PutawayRequest represents a request to put away one shipment notice line
type PutawayRequest struct {
	NoticeID   uuid.UUID       `json:"notice_id" validate:"required"`
	LineID     uuid.UUID       `json:"line_id" validate:"required"`
	LocationID uuid.UUID       `json:"location_id"` // Optional: empty means let the allocator choose
	Quantity   decimal.Decimal `json:"quantity" validate:"required"`
}

// PutawayResult reports the outcome of one putaway step
type PutawayResult struct {
	NoticeID          uuid.UUID       `json:"notice_id"`
	LineID            uuid.UUID       `json:"line_id"`
	ItemID            uuid.UUID       `json:"item_id"`
	LocationID        uuid.UUID       `json:"location_id"`
	LocationCode      string          `json:"location_code"`
	PlacedQuantity    decimal.Decimal `json:"placed_quantity"`
	LineRemaining     decimal.Decimal `json:"line_remaining"`
	NoticeStatus      string          `json:"notice_status"`
	SuggestedLocation bool            `json:"suggested_location"` // True when the allocator chose the destination
}

// BulkPutawayLineResult reports the outcome of one line in a bulk putaway
type BulkPutawayLineResult struct {
	LineID  uuid.UUID      `json:"line_id"`
	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
	Result  *PutawayResult `json:"result,omitempty"`
}

// BulkPutawayResult aggregates per-line outcomes of a bulk putaway.
// Lines that committed before a failure stay committed.
type BulkPutawayResult struct {
	NoticeID     uuid.UUID               `json:"notice_id"`
	Lines        []BulkPutawayLineResult `json:"lines"`
	SucceededAll bool                    `json:"succeeded_all"`
	Succeeded    int                     `json:"succeeded"`
	Failed       int                     `json:"failed"`
}

// GeneratePickingListRequest represents a request to generate a picking list
// for a confirmed sales order
type GeneratePickingListRequest struct {
	SalesOrderID uuid.UUID `json:"sales_order_id" validate:"required"`
	ListNumber   string    `json:"list_number"` // Optional: generated when empty
}

// GenerationLineResult reports the allocation of one sales-order line across
// source locations
type GenerationLineResult struct {
	SalesOrderLineID uuid.UUID       `json:"sales_order_line_id"`
	ItemID           uuid.UUID       `json:"item_id"`
	ItemCode         string          `json:"item_code"`
	RequiredQuantity decimal.Decimal `json:"required_quantity"`
	LocationCount    int             `json:"location_count"` // Locations the demand was split across
}

// GenerationResult reports the outcome of picking list generation
type GenerationResult struct {
	PickingListID uuid.UUID              `json:"picking_list_id"`
	ListNumber    string                 `json:"list_number"`
	SalesOrderID  uuid.UUID              `json:"sales_order_id"`
	Lines         []GenerationLineResult `json:"lines"`
	OrderStatus   string                 `json:"order_status"`
}

// PickRequest represents a request to pick against one picking-list line
type PickRequest struct {
	PickingListID uuid.UUID       `json:"picking_list_id" validate:"required"`
	LineID        uuid.UUID       `json:"line_id" validate:"required"`
	Quantity      decimal.Decimal `json:"quantity" validate:"required"`
}

// PickResult reports the outcome of one pick step
type PickResult struct {
	PickingListID  uuid.UUID       `json:"picking_list_id"`
	LineID         uuid.UUID       `json:"line_id"`
	ItemID         uuid.UUID       `json:"item_id"`
	LocationID     uuid.UUID       `json:"location_id"`
	PickedQuantity decimal.Decimal `json:"picked_quantity"`
	LineRemaining  decimal.Decimal `json:"line_remaining"`
	ListStatus     string          `json:"list_status"`
}

// BulkPickLineResult reports the outcome of one line in a bulk pick
type BulkPickLineResult struct {
	LineID  uuid.UUID   `json:"line_id"`
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Result  *PickResult `json:"result,omitempty"`
}

// BulkPickResult aggregates per-line outcomes of a bulk pick.
// Lines that committed before a failure stay committed.
type BulkPickResult struct {
	PickingListID uuid.UUID            `json:"picking_list_id"`
	Lines         []BulkPickLineResult `json:"lines"`
	SucceededAll  bool                 `json:"succeeded_all"`
	Succeeded     int                  `json:"succeeded"`
	Failed        int                  `json:"failed"`
}

// CompletionResult reports the outcome of completing a picking list
type CompletionResult struct {
	PickingListID uuid.UUID       `json:"picking_list_id"`
	ListStatus    string          `json:"list_status"`
	OrderStatus   string          `json:"order_status"`
	TotalPicked   decimal.Decimal `json:"total_picked"`
	FullyPicked   bool            `json:"fully_picked"`
}

// CancellationResult reports the outcome of cancelling a picking list,
// including the ledger reversals applied
type CancellationResult struct {
	PickingListID uuid.UUID        `json:"picking_list_id"`
	ListStatus    string           `json:"list_status"`
	OrderStatus   string           `json:"order_status"`
	Reversals     []ReversalResult `json:"reversals"`
}

// ReversalResult is one compensating ledger addition from a cancellation
type ReversalResult struct {
	ItemID     uuid.UUID       `json:"item_id"`
	LocationID uuid.UUID       `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}
