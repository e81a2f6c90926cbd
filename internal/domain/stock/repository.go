package stock

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
)

// StockRecordRepository defines the interface for ledger row persistence.
// Every read and write is scoped to an explicit company ID. Save must apply
// optimistic locking against the aggregate version so that two concurrent
// mutations of the same (item, location) row cannot both succeed against a
// stale read; a version mismatch surfaces as shared.ErrConcurrencyConflict.
type StockRecordRepository interface {
	// FindByID finds a ledger row by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockRecord, error)

	// FindByItemAndLocation finds the row for an (item, location) pair
	FindByItemAndLocation(ctx context.Context, companyID, itemID, locationID uuid.UUID) (*StockRecord, error)

	// FindByItem finds all rows for an item across locations
	FindByItem(ctx context.Context, companyID, itemID uuid.UUID) ([]StockRecord, error)

	// FindAvailableByItem finds AVAILABLE rows with positive quantity for an
	// item. These are the pick allocator's inputs.
	FindAvailableByItem(ctx context.Context, companyID, itemID uuid.UUID) ([]StockRecord, error)

	// FindByLocation finds all rows at a location
	FindByLocation(ctx context.Context, companyID, locationID uuid.UUID) ([]StockRecord, error)

	// FindBySourceRef finds rows by provenance tag
	FindBySourceRef(ctx context.Context, companyID uuid.UUID, sourceRef string) ([]StockRecord, error)

	// FindAllForCompany finds all rows for a company
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]StockRecord, error)

	// SumAvailableByItem sums quantity over AVAILABLE rows for an item
	SumAvailableByItem(ctx context.Context, companyID, itemID uuid.UUID) (decimal.Decimal, error)

	// SumQuantityByLocation sums quantity over all rows at a location.
	// Location occupancy is always derived through this query, never stored.
	SumQuantityByLocation(ctx context.Context, companyID, locationID uuid.UUID) (decimal.Decimal, error)

	// Save creates or updates a ledger row with optimistic locking
	Save(ctx context.Context, record *StockRecord) error

	// CountForCompany counts rows matching the filter
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
}
