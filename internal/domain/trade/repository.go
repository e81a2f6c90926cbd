package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/shared"
)

// PurchaseOrderRepository defines the interface for purchase order persistence
type PurchaseOrderRepository interface {
	// FindByID finds a purchase order by ID
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)

	// FindByIDForCompany finds a purchase order by ID scoped to a company
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*PurchaseOrder, error)

	// FindByOrderNumber finds a purchase order by its order number
	FindByOrderNumber(ctx context.Context, companyID uuid.UUID, orderNumber string) (*PurchaseOrder, error)

	// FindAllForCompany finds all purchase orders for a company
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]PurchaseOrder, error)

	// FindByStatus finds purchase orders in a given status
	FindByStatus(ctx context.Context, companyID uuid.UUID, status PurchaseOrderStatus) ([]PurchaseOrder, error)

	// Save creates or updates a purchase order
	Save(ctx context.Context, order *PurchaseOrder) error

	// GenerateOrderNumber produces the next order number for the company
	GenerateOrderNumber(ctx context.Context, companyID uuid.UUID) (string, error)

	// CountForCompany counts purchase orders matching the filter
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
}

// ShipmentNoticeRepository defines the interface for shipment notice persistence
type ShipmentNoticeRepository interface {
	// FindByID finds a shipment notice by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ShipmentNotice, error)

	// FindByIDForCompany finds a shipment notice by ID scoped to a company
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*ShipmentNotice, error)

	// FindByNoticeNumber finds a shipment notice by its notice number
	FindByNoticeNumber(ctx context.Context, companyID uuid.UUID, noticeNumber string) (*ShipmentNotice, error)

	// FindByPurchaseOrder finds notices raised against a purchase order
	FindByPurchaseOrder(ctx context.Context, companyID, purchaseOrderID uuid.UUID) ([]ShipmentNotice, error)

	// FindAllForCompany finds all shipment notices for a company
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]ShipmentNotice, error)

	// FindByStatus finds shipment notices in a given status
	FindByStatus(ctx context.Context, companyID uuid.UUID, status ShipmentNoticeStatus) ([]ShipmentNotice, error)

	// Save creates or updates a shipment notice
	Save(ctx context.Context, notice *ShipmentNotice) error

	// GenerateNoticeNumber produces the next notice number for the company
	GenerateNoticeNumber(ctx context.Context, companyID uuid.UUID) (string, error)

	// CountForCompany counts shipment notices matching the filter
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
}

// SalesOrderRepository defines the interface for sales order persistence
type SalesOrderRepository interface {
	// FindByID finds a sales order by ID
	FindByID(ctx context.Context, id uuid.UUID) (*SalesOrder, error)

	// FindByIDForCompany finds a sales order by ID scoped to a company
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*SalesOrder, error)

	// FindByOrderNumber finds a sales order by its order number
	FindByOrderNumber(ctx context.Context, companyID uuid.UUID, orderNumber string) (*SalesOrder, error)

	// FindAllForCompany finds all sales orders for a company
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]SalesOrder, error)

	// FindByStatus finds sales orders in a given status
	FindByStatus(ctx context.Context, companyID uuid.UUID, status SalesOrderStatus) ([]SalesOrder, error)

	// Save creates or updates a sales order
	Save(ctx context.Context, order *SalesOrder) error

	// GenerateOrderNumber produces the next order number for the company
	GenerateOrderNumber(ctx context.Context, companyID uuid.UUID) (string, error)

	// CountForCompany counts sales orders matching the filter
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
}

// PickingListRepository defines the interface for picking list persistence
type PickingListRepository interface {
	// FindByID finds a picking list by ID
	FindByID(ctx context.Context, id uuid.UUID) (*PickingList, error)

	// FindByIDForCompany finds a picking list by ID scoped to a company
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*PickingList, error)

	// FindBySalesOrder finds all picking lists raised against a sales order
	FindBySalesOrder(ctx context.Context, companyID, salesOrderID uuid.UUID) ([]PickingList, error)

	// FindActiveBySalesOrder finds the picking list in PENDING or IN_PROGRESS
	// for a sales order, if any. Generation refuses to create a second active
	// list for the same order.
	FindActiveBySalesOrder(ctx context.Context, companyID, salesOrderID uuid.UUID) (*PickingList, error)

	// FindAllForCompany finds all picking lists for a company
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]PickingList, error)

	// FindByStatus finds picking lists in a given status
	FindByStatus(ctx context.Context, companyID uuid.UUID, status PickingListStatus) ([]PickingList, error)

	// Save creates or updates a picking list
	Save(ctx context.Context, list *PickingList) error

	// GenerateListNumber produces the next list number for the company
	GenerateListNumber(ctx context.Context, companyID uuid.UUID) (string, error)

	// CountForCompany counts picking lists matching the filter
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
}
