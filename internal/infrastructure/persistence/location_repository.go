package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/domain/warehouse"
	"gorm.io/gorm"
)

// GormLocationRepository implements LocationRepository using GORM
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GormLocationRepository
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// FindByID finds a location by its ID
func (r *GormLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehouse.Location, error) {
	var location warehouse.Location
	if err := r.db.WithContext(ctx).First(&location, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &location, nil
}

// FindByIDForCompany finds a location by ID within a company
func (r *GormLocationRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*warehouse.Location, error) {
	var location warehouse.Location
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&location).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &location, nil
}

// FindByCode finds a location by its business code within a company
func (r *GormLocationRepository) FindByCode(ctx context.Context, companyID uuid.UUID, code string) (*warehouse.Location, error) {
	var location warehouse.Location
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND code = ?", companyID, code).
		First(&location).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &location, nil
}

// FindAllForCompany finds all locations for a company
func (r *GormLocationRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]warehouse.Location, error) {
	var locations []warehouse.Location
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&warehouse.Location{}).Where("company_id = ?", companyID),
		filter,
	)

	if err := query.Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// FindActiveStorage finds all active storage-category locations, ordered by
// code so that allocator tie-breaking is deterministic
func (r *GormLocationRepository) FindActiveStorage(ctx context.Context, companyID uuid.UUID) ([]warehouse.Location, error) {
	var locations []warehouse.Location
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND category = ? AND active = ?", companyID, warehouse.LocationCategoryStorage, true).
		Order("code ASC").
		Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// Save creates or updates a location
func (r *GormLocationRepository) Save(ctx context.Context, location *warehouse.Location) error {
	return r.db.WithContext(ctx).Save(location).Error
}

// DeleteForCompany deletes a location within a company
func (r *GormLocationRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&warehouse.Location{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForCompany counts locations matching the filter
func (r *GormLocationRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&warehouse.Location{}).Where("company_id = ?", companyID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a location code exists within a company
func (r *GormLocationRepository) ExistsByCode(ctx context.Context, companyID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&warehouse.Location{}).
		Where("company_id = ? AND code = ?", companyID, code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormLocationRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, LocationSortFields, "code")
	orderDir := "ASC"
	if strings.ToLower(filter.OrderDir) == "desc" {
		orderDir = "DESC"
	}
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormLocationRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ?", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "category":
			query = query.Where("category = ?", value)
		case "active":
			query = query.Where("active = ?", value)
		}
	}
	return query
}

// Ensure GormLocationRepository implements LocationRepository
var _ warehouse.LocationRepository = (*GormLocationRepository)(nil)
