package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/domain/stock"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockRecordRepository implements StockRecordRepository using GORM
type GormStockRecordRepository struct {
	db        *gorm.DB
	forUpdate bool
}

// NewGormStockRecordRepository creates a new GormStockRecordRepository
func NewGormStockRecordRepository(db *gorm.DB) *GormStockRecordRepository {
	return &GormStockRecordRepository{db: db}
}

// NewGormStockRecordRepositoryForUpdate creates a repository whose row reads
// take SELECT ... FOR UPDATE locks. Used inside transaction scopes so that a
// ledger row read for mutation stays pinned until commit.
func NewGormStockRecordRepositoryForUpdate(db *gorm.DB) *GormStockRecordRepository {
	return &GormStockRecordRepository{db: db, forUpdate: true}
}

// rowReader returns the base query for single/multi row reads, with a
// FOR UPDATE lock when the repository is transaction-scoped. Aggregate
// queries (sums, counts) never lock.
func (r *GormStockRecordRepository) rowReader(ctx context.Context) *gorm.DB {
	query := r.db.WithContext(ctx)
	if r.forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return query
}

// FindByID finds a ledger row by its ID
func (r *GormStockRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.StockRecord, error) {
	var record stock.StockRecord
	if err := r.rowReader(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByItemAndLocation finds the row for an (item, location) pair
func (r *GormStockRecordRepository) FindByItemAndLocation(ctx context.Context, companyID, itemID, locationID uuid.UUID) (*stock.StockRecord, error) {
	var record stock.StockRecord
	if err := r.rowReader(ctx).
		Where("company_id = ? AND item_id = ? AND location_id = ?", companyID, itemID, locationID).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByItem finds all rows for an item across locations
func (r *GormStockRecordRepository) FindByItem(ctx context.Context, companyID, itemID uuid.UUID) ([]stock.StockRecord, error) {
	var records []stock.StockRecord
	if err := r.rowReader(ctx).
		Where("company_id = ? AND item_id = ?", companyID, itemID).
		Order("last_moved_at ASC, created_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindAvailableByItem finds AVAILABLE rows with positive quantity for an
// item, ordered oldest movement first. The ordering matters: it is the
// sequence the pick allocator consumes.
func (r *GormStockRecordRepository) FindAvailableByItem(ctx context.Context, companyID, itemID uuid.UUID) ([]stock.StockRecord, error) {
	var records []stock.StockRecord
	if err := r.rowReader(ctx).
		Where("company_id = ? AND item_id = ? AND status = ? AND quantity > 0", companyID, itemID, stock.StockStatusAvailable).
		Order("last_moved_at ASC, created_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByLocation finds all rows at a location
func (r *GormStockRecordRepository) FindByLocation(ctx context.Context, companyID, locationID uuid.UUID) ([]stock.StockRecord, error) {
	var records []stock.StockRecord
	if err := r.rowReader(ctx).
		Where("company_id = ? AND location_id = ?", companyID, locationID).
		Order("last_moved_at ASC, created_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindBySourceRef finds rows by provenance tag
func (r *GormStockRecordRepository) FindBySourceRef(ctx context.Context, companyID uuid.UUID, sourceRef string) ([]stock.StockRecord, error) {
	var records []stock.StockRecord
	if err := r.rowReader(ctx).
		Where("company_id = ? AND source_ref = ?", companyID, sourceRef).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindAllForCompany finds all rows for a company
func (r *GormStockRecordRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]stock.StockRecord, error) {
	var records []stock.StockRecord
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&stock.StockRecord{}).Where("company_id = ?", companyID),
		filter,
	)

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// SumAvailableByItem sums quantity over AVAILABLE rows for an item
func (r *GormStockRecordRepository) SumAvailableByItem(ctx context.Context, companyID, itemID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&stock.StockRecord{}).
		Select("COALESCE(SUM(quantity), 0) as total").
		Where("company_id = ? AND item_id = ? AND status = ?", companyID, itemID, stock.StockStatusAvailable).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// SumQuantityByLocation sums quantity over all rows at a location
func (r *GormStockRecordRepository) SumQuantityByLocation(ctx context.Context, companyID, locationID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&stock.StockRecord{}).
		Select("COALESCE(SUM(quantity), 0) as total").
		Where("company_id = ? AND location_id = ?", companyID, locationID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// Save creates or updates a ledger row with optimistic locking. A fresh
// aggregate (version 1) is inserted; a colliding insert on the
// (company, item, location) key surfaces as a concurrency conflict so the
// caller can re-read and retry. An existing aggregate is updated only if the
// stored version still matches the version the aggregate was loaded at.
func (r *GormStockRecordRepository) Save(ctx context.Context, record *stock.StockRecord) error {
	if record.Version <= 1 {
		result := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "company_id"}, {Name: "item_id"}, {Name: "location_id"}},
				DoNothing: true,
			}).
			Create(record)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return nil
	}

	result := r.db.WithContext(ctx).
		Model(record).
		Where("id = ? AND version = ?", record.ID, record.Version-1).
		Updates(map[string]interface{}{
			"quantity":      record.Quantity,
			"status":        record.Status,
			"last_cost":     record.LastCost,
			"source_ref":    record.SourceRef,
			"last_moved_at": record.LastMovedAt,
			"version":       record.Version,
			"updated_at":    record.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// CountForCompany counts rows matching the filter
func (r *GormStockRecordRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&stock.StockRecord{}).Where("company_id = ?", companyID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormStockRecordRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, StockRecordSortFields, "last_moved_at")
	orderDir := "ASC"
	if strings.ToLower(filter.OrderDir) == "desc" {
		orderDir = "DESC"
	}
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormStockRecordRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "item_id":
			query = query.Where("item_id = ?", value)
		case "location_id":
			query = query.Where("location_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "source_ref":
			query = query.Where("source_ref = ?", value)
		case "has_stock":
			if value == true {
				query = query.Where("quantity > 0")
			}
		case "pickable":
			if value == true {
				query = query.Where("status = ? AND quantity > 0", stock.StockStatusAvailable)
			}
		}
	}
	return query
}

// Ensure GormStockRecordRepository implements StockRecordRepository
var _ stock.StockRecordRepository = (*GormStockRecordRepository)(nil)
