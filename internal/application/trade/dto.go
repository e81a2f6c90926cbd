package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/trade"
)

// CreateOrderLineRequest is one line of a document creation request
type CreateOrderLineRequest struct {
	ItemID    uuid.UUID       `json:"item_id" validate:"required"`
	ItemCode  string          `json:"item_code"`
	ItemName  string          `json:"item_name"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"required"`
}

// CreatePurchaseOrderRequest represents a request to create a purchase order
type CreatePurchaseOrderRequest struct {
	SupplierID   uuid.UUID                `json:"supplier_id" validate:"required"`
	SupplierName string                   `json:"supplier_name"`
	Lines        []CreateOrderLineRequest `json:"lines" validate:"required,min=1"`
	Remark       string                   `json:"remark"`
}

// PurchaseOrderLineResponse represents a purchase order line
type PurchaseOrderLineResponse struct {
	ID        uuid.UUID       `json:"id"`
	ItemID    uuid.UUID       `json:"item_id"`
	ItemCode  string          `json:"item_code"`
	ItemName  string          `json:"item_name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID           uuid.UUID                   `json:"id"`
	OrderNumber  string                      `json:"order_number"`
	SupplierID   uuid.UUID                   `json:"supplier_id"`
	SupplierName string                      `json:"supplier_name"`
	Lines        []PurchaseOrderLineResponse `json:"lines"`
	TotalAmount  decimal.Decimal             `json:"total_amount"`
	Status       string                      `json:"status"`
	Remark       string                      `json:"remark"`
	SentAt       *time.Time                  `json:"sent_at,omitempty"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

// ToPurchaseOrderResponse converts a purchase order to a response DTO
func ToPurchaseOrderResponse(order *trade.PurchaseOrder) PurchaseOrderResponse {
	lines := make([]PurchaseOrderLineResponse, len(order.Lines))
	for i, line := range order.Lines {
		lines[i] = PurchaseOrderLineResponse{
			ID:        line.ID,
			ItemID:    line.ItemID,
			ItemCode:  line.ItemCode,
			ItemName:  line.ItemName,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Amount:    line.Amount,
		}
	}
	return PurchaseOrderResponse{
		ID:           order.ID,
		OrderNumber:  order.OrderNumber,
		SupplierID:   order.SupplierID,
		SupplierName: order.SupplierName,
		Lines:        lines,
		TotalAmount:  order.TotalAmount,
		Status:       order.Status.String(),
		Remark:       order.Remark,
		SentAt:       order.SentAt,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
}

// CreateShipmentNoticeRequest represents a request to create a shipment
// notice against a sent purchase order. Lines default to the order's lines;
// a non-nil override replaces the shipped quantity or actual price.
type CreateShipmentNoticeRequest struct {
	PurchaseOrderID uuid.UUID              `json:"purchase_order_id" validate:"required"`
	Remark          string                 `json:"remark"`
	LineOverrides   []ShipmentLineOverride `json:"line_overrides"`
}

// ShipmentLineOverride adjusts one item's shipped quantity or actual price
// relative to the purchase order line
type ShipmentLineOverride struct {
	ItemID          uuid.UUID        `json:"item_id" validate:"required"`
	ShippedQuantity *decimal.Decimal `json:"shipped_quantity"`
	ActualUnitPrice *decimal.Decimal `json:"actual_unit_price"`
}

// ShipmentNoticeLineResponse represents a shipment notice line
type ShipmentNoticeLineResponse struct {
	ID              uuid.UUID       `json:"id"`
	ItemID          uuid.UUID       `json:"item_id"`
	ItemCode        string          `json:"item_code"`
	ItemName        string          `json:"item_name"`
	ShippedQuantity decimal.Decimal `json:"shipped_quantity"`
	ActualUnitPrice decimal.Decimal `json:"actual_unit_price"`
	PlacedQuantity  decimal.Decimal `json:"placed_quantity"`
	Remaining       decimal.Decimal `json:"remaining"`
}

// ShipmentNoticeResponse represents a shipment notice in API responses
type ShipmentNoticeResponse struct {
	ID              uuid.UUID                    `json:"id"`
	NoticeNumber    string                       `json:"notice_number"`
	PurchaseOrderID uuid.UUID                    `json:"purchase_order_id"`
	Lines           []ShipmentNoticeLineResponse `json:"lines"`
	Status          string                       `json:"status"`
	Remark          string                       `json:"remark"`
	ArrivedAt       *time.Time                   `json:"arrived_at,omitempty"`
	ProcessedAt     *time.Time                   `json:"processed_at,omitempty"`
	CreatedAt       time.Time                    `json:"created_at"`
	UpdatedAt       time.Time                    `json:"updated_at"`
}

// ToShipmentNoticeResponse converts a shipment notice to a response DTO
func ToShipmentNoticeResponse(notice *trade.ShipmentNotice) ShipmentNoticeResponse {
	lines := make([]ShipmentNoticeLineResponse, len(notice.Lines))
	for i := range notice.Lines {
		line := &notice.Lines[i]
		lines[i] = ShipmentNoticeLineResponse{
			ID:              line.ID,
			ItemID:          line.ItemID,
			ItemCode:        line.ItemCode,
			ItemName:        line.ItemName,
			ShippedQuantity: line.ShippedQuantity,
			ActualUnitPrice: line.ActualUnitPrice,
			PlacedQuantity:  line.PlacedQuantity,
			Remaining:       line.Remaining(),
		}
	}
	return ShipmentNoticeResponse{
		ID:              notice.ID,
		NoticeNumber:    notice.NoticeNumber,
		PurchaseOrderID: notice.PurchaseOrderID,
		Lines:           lines,
		Status:          notice.Status.String(),
		Remark:          notice.Remark,
		ArrivedAt:       notice.ArrivedAt,
		ProcessedAt:     notice.ProcessedAt,
		CreatedAt:       notice.CreatedAt,
		UpdatedAt:       notice.UpdatedAt,
	}
}

// CreateSalesOrderRequest represents a request to create a sales order
type CreateSalesOrderRequest struct {
	CustomerID   uuid.UUID                `json:"customer_id" validate:"required"`
	CustomerName string                   `json:"customer_name"`
	Lines        []CreateOrderLineRequest `json:"lines" validate:"required,min=1"`
	Remark       string                   `json:"remark"`
}

// SalesOrderLineResponse represents a sales order line
type SalesOrderLineResponse struct {
	ID        uuid.UUID       `json:"id"`
	ItemID    uuid.UUID       `json:"item_id"`
	ItemCode  string          `json:"item_code"`
	ItemName  string          `json:"item_name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`
}

// SalesOrderResponse represents a sales order in API responses
type SalesOrderResponse struct {
	ID           uuid.UUID                `json:"id"`
	OrderNumber  string                   `json:"order_number"`
	CustomerID   uuid.UUID                `json:"customer_id"`
	CustomerName string                   `json:"customer_name"`
	Lines        []SalesOrderLineResponse `json:"lines"`
	TotalAmount  decimal.Decimal          `json:"total_amount"`
	Status       string                   `json:"status"`
	Remark       string                   `json:"remark"`
	ConfirmedAt  *time.Time               `json:"confirmed_at,omitempty"`
	ShippedAt    *time.Time               `json:"shipped_at,omitempty"`
	CompletedAt  *time.Time               `json:"completed_at,omitempty"`
	CreatedAt    time.Time                `json:"created_at"`
	UpdatedAt    time.Time                `json:"updated_at"`
}

// ToSalesOrderResponse converts a sales order to a response DTO
func ToSalesOrderResponse(order *trade.SalesOrder) SalesOrderResponse {
	lines := make([]SalesOrderLineResponse, len(order.Lines))
	for i, line := range order.Lines {
		lines[i] = SalesOrderLineResponse{
			ID:        line.ID,
			ItemID:    line.ItemID,
			ItemCode:  line.ItemCode,
			ItemName:  line.ItemName,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Amount:    line.Amount,
		}
	}
	return SalesOrderResponse{
		ID:           order.ID,
		OrderNumber:  order.OrderNumber,
		CustomerID:   order.CustomerID,
		CustomerName: order.CustomerName,
		Lines:        lines,
		TotalAmount:  order.TotalAmount,
		Status:       order.Status.String(),
		Remark:       order.Remark,
		ConfirmedAt:  order.ConfirmedAt,
		ShippedAt:    order.ShippedAt,
		CompletedAt:  order.CompletedAt,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
}

// DocumentListFilter represents filter options for document listings
type DocumentListFilter struct {
	Status   string `form:"status"`
	Search   string `form:"search"`
	Page     int    `form:"page" validate:"min=1"`
	PageSize int    `form:"page_size" validate:"min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" validate:"omitempty,oneof=asc desc"`
}
