package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/shared"
)

// ItemRepository defines the interface for item persistence
type ItemRepository interface {
	// FindByID finds an item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// FindByIDForCompany finds an item by ID within a company
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Item, error)

	// FindByCode finds an item by its business code within a company
	FindByCode(ctx context.Context, companyID uuid.UUID, code string) (*Item, error)

	// FindAllForCompany finds all items for a company
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Item, error)

	// FindActive finds all active items for a company
	FindActive(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Item, error)

	// Save creates or updates an item
	Save(ctx context.Context, item *Item) error

	// Delete deletes an item within a company
	DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error

	// CountForCompany counts items matching the filter
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByCode checks if an item code exists within a company
	ExistsByCode(ctx context.Context, companyID uuid.UUID, code string) (bool, error)
}
