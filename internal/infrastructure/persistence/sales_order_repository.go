package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormSalesOrderRepository implements SalesOrderRepository using GORM
type GormSalesOrderRepository struct {
	db *gorm.DB
}

// NewGormSalesOrderRepository creates a new GormSalesOrderRepository
func NewGormSalesOrderRepository(db *gorm.DB) *GormSalesOrderRepository {
	return &GormSalesOrderRepository{db: db}
}

// FindByID finds a sales order by its ID
func (r *GormSalesOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	var order trade.SalesOrder
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

// FindByIDForCompany finds a sales order by ID within a company
func (r *GormSalesOrderRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*trade.SalesOrder, error) {
	var order trade.SalesOrder
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

// FindByOrderNumber finds a sales order by order number for a company
func (r *GormSalesOrderRepository) FindByOrderNumber(ctx context.Context, companyID uuid.UUID, orderNumber string) (*trade.SalesOrder, error) {
	var order trade.SalesOrder
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

// FindAllForCompany finds all sales orders for a company with filtering
func (r *GormSalesOrderRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]trade.SalesOrder, error) {
	var orders []trade.SalesOrder
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&trade.SalesOrder{}).Where("company_id = ?", companyID),
		filter,
	)

	if err := query.Preload("Lines").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByStatus finds sales orders by status for a company
func (r *GormSalesOrderRepository) FindByStatus(ctx context.Context, companyID uuid.UUID, status trade.SalesOrderStatus) ([]trade.SalesOrder, error) {
	var orders []trade.SalesOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("company_id = ? AND status = ?", companyID, status).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates a sales order and reconciles its lines
func (r *GormSalesOrderRepository) Save(ctx context.Context, order *trade.SalesOrder) error {
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
				Delete(&trade.SalesOrderLine{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("order_id = ?", order.ID).
				Delete(&trade.SalesOrderLine{}).Error; err != nil {
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
// Format: SO-YYYY-NNNNN (e.g., SO-2026-00001)
func (r *GormSalesOrderRepository) GenerateOrderNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	return generateDocumentNumber(ctx, r.db, &trade.SalesOrder{}, "order_number", "SO", companyID)
}

// CountForCompany counts sales orders for a company with optional filters
func (r *GormSalesOrderRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&trade.SalesOrder{}).Where("company_id = ?", companyID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormSalesOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	return applyPagination(query, filter, SalesOrderSortFields, "created_at")
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormSalesOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("order_number ILIKE ? OR customer_name ILIKE ?", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		}
	}
	return query
}

// Ensure GormSalesOrderRepository implements SalesOrderRepository
var _ trade.SalesOrderRepository = (*GormSalesOrderRepository)(nil)
