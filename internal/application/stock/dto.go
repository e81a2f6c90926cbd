package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/stock"
)

// StockRecordResponse represents a ledger row in API responses
type StockRecordResponse struct {
	ID          uuid.UUID       `json:"id"`
	CompanyID   uuid.UUID       `json:"company_id"`
	ItemID      uuid.UUID       `json:"item_id"`
	LocationID  uuid.UUID       `json:"location_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Status      string          `json:"status"`
	LastCost    decimal.Decimal `json:"last_cost"`
	SourceRef   string          `json:"source_ref"`
	LastMovedAt time.Time       `json:"last_moved_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// ToStockRecordResponse converts a ledger row to a response DTO
func ToStockRecordResponse(record *stock.StockRecord) StockRecordResponse {
	return StockRecordResponse{
		ID:          record.ID,
		CompanyID:   record.CompanyID,
		ItemID:      record.ItemID,
		LocationID:  record.LocationID,
		Quantity:    record.Quantity,
		Status:      record.Status.String(),
		LastCost:    record.LastCost,
		SourceRef:   record.SourceRef,
		LastMovedAt: record.LastMovedAt,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
		Version:     record.Version,
	}
}

// ToStockRecordResponses converts a slice of ledger rows
func ToStockRecordResponses(records []stock.StockRecord) []StockRecordResponse {
	responses := make([]StockRecordResponse, len(records))
	for i := range records {
		responses[i] = ToStockRecordResponse(&records[i])
	}
	return responses
}

// StockListFilter represents filter options for ledger row listings
type StockListFilter struct {
	ItemID     *uuid.UUID `form:"item_id"`
	LocationID *uuid.UUID `form:"location_id"`
	Status     string     `form:"status"`
	SourceRef  string     `form:"source_ref"`
	Page       int        `form:"page" validate:"min=1"`
	PageSize   int        `form:"page_size" validate:"min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" validate:"omitempty,oneof=asc desc"`
}

// AddStockRequest represents a request to add stock at a location
type AddStockRequest struct {
	ItemID     uuid.UUID       `json:"item_id" validate:"required"`
	LocationID uuid.UUID       `json:"location_id" validate:"required"`
	Quantity   decimal.Decimal `json:"quantity" validate:"required"`
	UnitCost   decimal.Decimal `json:"unit_cost" validate:"required"`
	SourceRef  string          `json:"source_ref"`
}

// ReduceStockRequest represents a request to remove stock from a location
type ReduceStockRequest struct {
	ItemID     uuid.UUID       `json:"item_id" validate:"required"`
	LocationID uuid.UUID       `json:"location_id" validate:"required"`
	Quantity   decimal.Decimal `json:"quantity" validate:"required"`
	Reason     string          `json:"reason"`
}

// TransferStockRequest represents a request to move stock between locations
type TransferStockRequest struct {
	ItemID         uuid.UUID       `json:"item_id" validate:"required"`
	FromLocationID uuid.UUID       `json:"from_location_id" validate:"required"`
	ToLocationID   uuid.UUID       `json:"to_location_id" validate:"required"`
	Quantity       decimal.Decimal `json:"quantity" validate:"required"`
	SourceRef      string          `json:"source_ref"`
}

// TransferStockResponse carries both sides of a completed transfer
type TransferStockResponse struct {
	Source      StockRecordResponse `json:"source"`
	Destination StockRecordResponse `json:"destination"`
}

// MoveStockRequest relocates an entire ledger row to another location
type MoveStockRequest struct {
	RecordID     uuid.UUID `json:"record_id" validate:"required"`
	ToLocationID uuid.UUID `json:"to_location_id" validate:"required"`
	SourceRef    string    `json:"source_ref"`
}

// ItemAvailabilityResponse reports total pickable stock for an item
type ItemAvailabilityResponse struct {
	ItemID         uuid.UUID       `json:"item_id"`
	TotalAvailable decimal.Decimal `json:"total_available"`
	RowCount       int             `json:"row_count"`
}

// LocationOccupancyResponse reports derived occupancy for a location
type LocationOccupancyResponse struct {
	LocationID        uuid.UUID       `json:"location_id"`
	LocationCode      string          `json:"location_code"`
	MaxCapacity       decimal.Decimal `json:"max_capacity"`
	CurrentCapacity   decimal.Decimal `json:"current_capacity"`
	AvailableCapacity decimal.Decimal `json:"available_capacity"`
	Utilization       decimal.Decimal `json:"utilization"`
}
