package warehouse

import (
	"context"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/shared"
)

// LocationRepository defines the interface for location persistence
type LocationRepository interface {
	// FindByID finds a location by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Location, error)

	// FindByIDForCompany finds a location by ID within a company
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Location, error)

	// FindByCode finds a location by its business code within a company
	FindByCode(ctx context.Context, companyID uuid.UUID, code string) (*Location, error)

	// FindAllForCompany finds all locations for a company
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Location, error)

	// FindActiveStorage finds all active storage-category locations.
	// These are the only candidates for putaway placement.
	FindActiveStorage(ctx context.Context, companyID uuid.UUID) ([]Location, error)

	// Save creates or updates a location
	Save(ctx context.Context, location *Location) error

	// DeleteForCompany deletes a location within a company
	DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error

	// CountForCompany counts locations matching the filter
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByCode checks if a location code exists within a company
	ExistsByCode(ctx context.Context, companyID uuid.UUID, code string) (bool, error)
}
