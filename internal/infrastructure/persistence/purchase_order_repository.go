package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormPurchaseOrderRepository implements PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByID finds a purchase order by its ID
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseOrder, error) {
	var order trade.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByIDForCompany finds a purchase order by ID within a company
func (r *GormPurchaseOrderRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*trade.PurchaseOrder, error) {
	var order trade.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("company_id = ? AND id = ?", companyID, id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByOrderNumber finds a purchase order by order number for a company
func (r *GormPurchaseOrderRepository) FindByOrderNumber(ctx context.Context, companyID uuid.UUID, orderNumber string) (*trade.PurchaseOrder, error) {
	var order trade.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("company_id = ? AND order_number = ?", companyID, orderNumber).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAllForCompany finds all purchase orders for a company with filtering
func (r *GormPurchaseOrderRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]trade.PurchaseOrder, error) {
	var orders []trade.PurchaseOrder
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&trade.PurchaseOrder{}).Where("company_id = ?", companyID),
		filter,
	)

	if err := query.Preload("Lines").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByStatus finds purchase orders by status for a company
func (r *GormPurchaseOrderRepository) FindByStatus(ctx context.Context, companyID uuid.UUID, status trade.PurchaseOrderStatus) ([]trade.PurchaseOrder, error) {
	var orders []trade.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("company_id = ? AND status = ?", companyID, status).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates a purchase order and reconciles its lines
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, order *trade.PurchaseOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(order).Error; err != nil {
			return err
		}

		currentLineIDs := make([]uuid.UUID, len(order.Lines))
		for i, line := range order.Lines {
			currentLineIDs[i] = line.ID
		}

		if len(currentLineIDs) > 0 {
			if err := tx.Where("order_id = ? AND id NOT IN ?", order.ID, currentLineIDs).
				Delete(&trade.PurchaseOrderLine{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("order_id = ?", order.ID).
				Delete(&trade.PurchaseOrderLine{}).Error; err != nil {
				return err
			}
		}

		for i := range order.Lines {
			order.Lines[i].OrderID = order.ID
			if err := tx.Save(&order.Lines[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// GenerateOrderNumber generates a unique order number for a company
// Format: PO-YYYY-NNNNN (e.g., PO-2026-00001)
func (r *GormPurchaseOrderRepository) GenerateOrderNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	return generateDocumentNumber(ctx, r.db, &trade.PurchaseOrder{}, "order_number", "PO", companyID)
}

// CountForCompany counts purchase orders for a company with optional filters
func (r *GormPurchaseOrderRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&trade.PurchaseOrder{}).Where("company_id = ?", companyID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormPurchaseOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	return applyPagination(query, filter, PurchaseOrderSortFields, "created_at")
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormPurchaseOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("order_number ILIKE ? OR supplier_name ILIKE ?", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		}
	}
	return query
}

// Ensure GormPurchaseOrderRepository implements PurchaseOrderRepository
var _ trade.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
