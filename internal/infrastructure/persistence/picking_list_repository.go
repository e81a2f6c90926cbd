package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormPickingListRepository implements PickingListRepository using GORM
type GormPickingListRepository struct {
	db *gorm.DB
}

// NewGormPickingListRepository creates a new GormPickingListRepository
func NewGormPickingListRepository(db *gorm.DB) *GormPickingListRepository {
	return &GormPickingListRepository{db: db}
}

// FindByID finds a picking list by its ID
func (r *GormPickingListRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PickingList, error) {
	var list trade.PickingList
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&list, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &list, nil
}

// FindByIDForCompany finds a picking list by ID within a company
func (r *GormPickingListRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*trade.PickingList, error) {
	var list trade.PickingList
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("company_id = ? AND id = ?", companyID, id).
		First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &list, nil
}

// FindBySalesOrder finds all picking lists raised against a sales order
func (r *GormPickingListRepository) FindBySalesOrder(ctx context.Context, companyID, salesOrderID uuid.UUID) ([]trade.PickingList, error) {
	var lists []trade.PickingList
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("company_id = ? AND sales_order_id = ?", companyID, salesOrderID).
		Order("created_at DESC").
		Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

// FindActiveBySalesOrder finds the PENDING or IN_PROGRESS picking list for a
// sales order, if any. At most one active list may exist per order.
func (r *GormPickingListRepository) FindActiveBySalesOrder(ctx context.Context, companyID, salesOrderID uuid.UUID) (*trade.PickingList, error) {
	var list trade.PickingList
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("company_id = ? AND sales_order_id = ? AND status IN ?",
			companyID, salesOrderID,
			[]trade.PickingListStatus{trade.PickingListStatusPending, trade.PickingListStatusInProgress}).
		First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &list, nil
}

// FindAllForCompany finds all picking lists for a company with filtering
func (r *GormPickingListRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]trade.PickingList, error) {
	var lists []trade.PickingList
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&trade.PickingList{}).Where("company_id = ?", companyID),
		filter,
	)

	if err := query.Preload("Lines").Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

// FindByStatus finds picking lists by status for a company
func (r *GormPickingListRepository) FindByStatus(ctx context.Context, companyID uuid.UUID, status trade.PickingListStatus) ([]trade.PickingList, error) {
	var lists []trade.PickingList
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("company_id = ? AND status = ?", companyID, status).
		Order("created_at DESC").
		Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

// Save creates or updates a picking list and reconciles its lines
func (r *GormPickingListRepository) Save(ctx context.Context, list *trade.PickingList) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(list).Error; err != nil {
			return err
		}

		currentLineIDs := make([]uuid.UUID, len(list.Lines))
		for i, line := range list.Lines {
			currentLineIDs[i] = line.ID
		}

		if len(currentLineIDs) > 0 {
			if err := tx.Where("picking_list_id = ? AND id NOT IN ?", list.ID, currentLineIDs).
				Delete(&trade.PickingListLine{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("picking_list_id = ?", list.ID).
				Delete(&trade.PickingListLine{}).Error; err != nil {
				return err
			}
		}

		for i := range list.Lines {
			list.Lines[i].PickingListID = list.ID
			if err := tx.Save(&list.Lines[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// GenerateListNumber generates a unique list number for a company
// Format: PK-YYYY-NNNNN (e.g., PK-2026-00001)
func (r *GormPickingListRepository) GenerateListNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	return generateDocumentNumber(ctx, r.db, &trade.PickingList{}, "list_number", "PK", companyID)
}

// CountForCompany counts picking lists for a company with optional filters
func (r *GormPickingListRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&trade.PickingList{}).Where("company_id = ?", companyID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormPickingListRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	return applyPagination(query, filter, PickingListSortFields, "created_at")
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormPickingListRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("list_number ILIKE ?", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "sales_order_id":
			query = query.Where("sales_order_id = ?", value)
		}
	}
	return query
}

// Ensure GormPickingListRepository implements PickingListRepository
var _ trade.PickingListRepository = (*GormPickingListRepository)(nil)
