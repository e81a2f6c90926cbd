package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormShipmentNoticeRepository implements ShipmentNoticeRepository using GORM
type GormShipmentNoticeRepository struct {
	db *gorm.DB
}

// NewGormShipmentNoticeRepository creates a new GormShipmentNoticeRepository
func NewGormShipmentNoticeRepository(db *gorm.DB) *GormShipmentNoticeRepository {
	return &GormShipmentNoticeRepository{db: db}
}

// FindByID finds a shipment notice by its ID
func (r *GormShipmentNoticeRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.ShipmentNotice, error) {
	var notice trade.ShipmentNotice
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&notice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &notice, nil
}

// FindByIDForCompany finds a shipment notice by ID within a company
func (r *GormShipmentNoticeRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*trade.ShipmentNotice, error) {
	var notice trade.ShipmentNotice
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("company_id = ? AND id = ?", companyID, id).
		First(&notice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &notice, nil
}

// FindByNoticeNumber finds a shipment notice by notice number for a company
func (r *GormShipmentNoticeRepository) FindByNoticeNumber(ctx context.Context, companyID uuid.UUID, noticeNumber string) (*trade.ShipmentNotice, error) {
	var notice trade.ShipmentNotice
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("company_id = ? AND notice_number = ?", companyID, noticeNumber).
		First(&notice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &notice, nil
}

// FindByPurchaseOrder finds notices raised against a purchase order
func (r *GormShipmentNoticeRepository) FindByPurchaseOrder(ctx context.Context, companyID, purchaseOrderID uuid.UUID) ([]trade.ShipmentNotice, error) {
	var notices []trade.ShipmentNotice
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("company_id = ? AND purchase_order_id = ?", companyID, purchaseOrderID).
		Order("created_at DESC").
		Find(&notices).Error; err != nil {
		return nil, err
	}
	return notices, nil
}

// FindAllForCompany finds all shipment notices for a company with filtering
func (r *GormShipmentNoticeRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]trade.ShipmentNotice, error) {
	var notices []trade.ShipmentNotice
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&trade.ShipmentNotice{}).Where("company_id = ?", companyID),
		filter,
	)

	if err := query.Preload("Lines").Find(&notices).Error; err != nil {
		return nil, err
	}
	return notices, nil
}

// FindByStatus finds shipment notices by status for a company
func (r *GormShipmentNoticeRepository) FindByStatus(ctx context.Context, companyID uuid.UUID, status trade.ShipmentNoticeStatus) ([]trade.ShipmentNotice, error) {
	var notices []trade.ShipmentNotice
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("company_id = ? AND status = ?", companyID, status).
		Order("created_at DESC").
		Find(&notices).Error; err != nil {
		return nil, err
	}
	return notices, nil
}

// Save creates or updates a shipment notice and reconciles its lines
func (r *GormShipmentNoticeRepository) Save(ctx context.Context, notice *trade.ShipmentNotice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(notice).Error; err != nil {
			return err
		}

		currentLineIDs := make([]uuid.UUID, len(notice.Lines))
		for i, line := range notice.Lines {
			currentLineIDs[i] = line.ID
		}

		if len(currentLineIDs) > 0 {
			if err := tx.Where("notice_id = ? AND id NOT IN ?", notice.ID, currentLineIDs).
				Delete(&trade.ShipmentNoticeLine{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("notice_id = ?", notice.ID).
				Delete(&trade.ShipmentNoticeLine{}).Error; err != nil {
				return err
			}
		}

		for i := range notice.Lines {
			notice.Lines[i].NoticeID = notice.ID
			if err := tx.Save(&notice.Lines[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// GenerateNoticeNumber generates a unique notice number for a company
// Format: ASN-YYYY-NNNNN (e.g., ASN-2026-00001)
func (r *GormShipmentNoticeRepository) GenerateNoticeNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	return generateDocumentNumber(ctx, r.db, &trade.ShipmentNotice{}, "notice_number", "ASN", companyID)
}

// CountForCompany counts shipment notices for a company with optional filters
func (r *GormShipmentNoticeRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&trade.ShipmentNotice{}).Where("company_id = ?", companyID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormShipmentNoticeRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	return applyPagination(query, filter, ShipmentNoticeSortFields, "created_at")
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormShipmentNoticeRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("notice_number ILIKE ?", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "purchase_order_id":
			query = query.Where("purchase_order_id = ?", value)
		}
	}
	return query
}

// Ensure GormShipmentNoticeRepository implements ShipmentNoticeRepository
var _ trade.ShipmentNoticeRepository = (*GormShipmentNoticeRepository)(nil)
