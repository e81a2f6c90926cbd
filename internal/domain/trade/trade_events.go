package trade

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypePurchaseOrder  = "PurchaseOrder"
	AggregateTypeShipmentNotice = "ShipmentNotice"
	AggregateTypeSalesOrder     = "SalesOrder"
	AggregateTypePickingList    = "PickingList"
)

// Event type constants
const (
	EventTypePurchaseOrderCreated   = "PurchaseOrderCreated"
	EventTypePurchaseOrderSent      = "PurchaseOrderSent"
	EventTypePurchaseOrderCancelled = "PurchaseOrderCancelled"

	EventTypeShipmentNoticeCreated   = "ShipmentNoticeCreated"
	EventTypeShipmentNoticeArrived   = "ShipmentNoticeArrived"
	EventTypeShipmentNoticeProcessed = "ShipmentNoticeProcessed"

	EventTypeSalesOrderCreated     = "SalesOrderCreated"
	EventTypeSalesOrderConfirmed   = "SalesOrderConfirmed"
	EventTypeSalesOrderReadyToShip = "SalesOrderReadyToShip"
	EventTypeSalesOrderShipped     = "SalesOrderShipped"
	EventTypeSalesOrderCancelled   = "SalesOrderCancelled"

	EventTypePickingListCreated   = "PickingListCreated"
	EventTypePickingListCompleted = "PickingListCompleted"
	EventTypePickingListCancelled = "PickingListCancelled"
)

// PurchaseOrderCreatedEvent is published when a purchase order is created
type PurchaseOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	SupplierID  uuid.UUID `json:"supplier_id"`
}

// NewPurchaseOrderCreatedEvent creates a new PurchaseOrderCreatedEvent
func NewPurchaseOrderCreatedEvent(order *PurchaseOrder) *PurchaseOrderCreatedEvent {
	return &PurchaseOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCreated, AggregateTypePurchaseOrder, order.ID, order.CompanyID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		SupplierID:      order.SupplierID,
	}
}

// PurchaseOrderSentEvent is published when a purchase order is sent to the supplier
type PurchaseOrderSentEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewPurchaseOrderSentEvent creates a new PurchaseOrderSentEvent
func NewPurchaseOrderSentEvent(order *PurchaseOrder) *PurchaseOrderSentEvent {
	return &PurchaseOrderSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderSent, AggregateTypePurchaseOrder, order.ID, order.CompanyID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		TotalAmount:     order.TotalAmount,
	}
}

// PurchaseOrderCancelledEvent is published when a purchase order is cancelled
type PurchaseOrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Reason      string    `json:"reason"`
}

// NewPurchaseOrderCancelledEvent creates a new PurchaseOrderCancelledEvent
func NewPurchaseOrderCancelledEvent(order *PurchaseOrder) *PurchaseOrderCancelledEvent {
	return &PurchaseOrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCancelled, AggregateTypePurchaseOrder, order.ID, order.CompanyID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		Reason:          order.CancelReason,
	}
}

// ShipmentNoticeCreatedEvent is published when a shipment notice is created
type ShipmentNoticeCreatedEvent struct {
	shared.BaseDomainEvent
	NoticeID        uuid.UUID `json:"notice_id"`
	NoticeNumber    string    `json:"notice_number"`
	PurchaseOrderID uuid.UUID `json:"purchase_order_id"`
}

// NewShipmentNoticeCreatedEvent creates a new ShipmentNoticeCreatedEvent
func NewShipmentNoticeCreatedEvent(notice *ShipmentNotice) *ShipmentNoticeCreatedEvent {
	return &ShipmentNoticeCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShipmentNoticeCreated, AggregateTypeShipmentNotice, notice.ID, notice.CompanyID),
		NoticeID:        notice.ID,
		NoticeNumber:    notice.NoticeNumber,
		PurchaseOrderID: notice.PurchaseOrderID,
	}
}

// ShipmentNoticeArrivedEvent is published when a shipment physically arrives
type ShipmentNoticeArrivedEvent struct {
	shared.BaseDomainEvent
	NoticeID     uuid.UUID `json:"notice_id"`
	NoticeNumber string    `json:"notice_number"`
}

// NewShipmentNoticeArrivedEvent creates a new ShipmentNoticeArrivedEvent
func NewShipmentNoticeArrivedEvent(notice *ShipmentNotice) *ShipmentNoticeArrivedEvent {
	return &ShipmentNoticeArrivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShipmentNoticeArrived, AggregateTypeShipmentNotice, notice.ID, notice.CompanyID),
		NoticeID:        notice.ID,
		NoticeNumber:    notice.NoticeNumber,
	}
}

// ShipmentNoticeProcessedEvent is published when every line of a notice has
// been fully put away
type ShipmentNoticeProcessedEvent struct {
	shared.BaseDomainEvent
	NoticeID     uuid.UUID `json:"notice_id"`
	NoticeNumber string    `json:"notice_number"`
}

// NewShipmentNoticeProcessedEvent creates a new ShipmentNoticeProcessedEvent
func NewShipmentNoticeProcessedEvent(notice *ShipmentNotice) *ShipmentNoticeProcessedEvent {
	return &ShipmentNoticeProcessedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShipmentNoticeProcessed, AggregateTypeShipmentNotice, notice.ID, notice.CompanyID),
		NoticeID:        notice.ID,
		NoticeNumber:    notice.NoticeNumber,
	}
}

// SalesOrderCreatedEvent is published when a sales order is created
type SalesOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	CustomerID  uuid.UUID `json:"customer_id"`
}

// NewSalesOrderCreatedEvent creates a new SalesOrderCreatedEvent
func NewSalesOrderCreatedEvent(order *SalesOrder) *SalesOrderCreatedEvent {
	return &SalesOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderCreated, AggregateTypeSalesOrder, order.ID, order.CompanyID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
	}
}

// SalesOrderConfirmedEvent is published when a sales order is confirmed
type SalesOrderConfirmedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewSalesOrderConfirmedEvent creates a new SalesOrderConfirmedEvent
func NewSalesOrderConfirmedEvent(order *SalesOrder) *SalesOrderConfirmedEvent {
	return &SalesOrderConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderConfirmed, AggregateTypeSalesOrder, order.ID, order.CompanyID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		TotalAmount:     order.TotalAmount,
	}
}

// SalesOrderReadyToShipEvent is published when picking completed with every
// line fully picked
type SalesOrderReadyToShipEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
}

// NewSalesOrderReadyToShipEvent creates a new SalesOrderReadyToShipEvent
func NewSalesOrderReadyToShipEvent(order *SalesOrder) *SalesOrderReadyToShipEvent {
	return &SalesOrderReadyToShipEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderReadyToShip, AggregateTypeSalesOrder, order.ID, order.CompanyID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
	}
}

// SalesOrderShippedEvent is published when a sales order ships
type SalesOrderShippedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
}

// NewSalesOrderShippedEvent creates a new SalesOrderShippedEvent
func NewSalesOrderShippedEvent(order *SalesOrder) *SalesOrderShippedEvent {
	return &SalesOrderShippedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderShipped, AggregateTypeSalesOrder, order.ID, order.CompanyID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
	}
}

// SalesOrderCancelledEvent is published when a sales order is cancelled
type SalesOrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Reason      string    `json:"reason"`
}

// NewSalesOrderCancelledEvent creates a new SalesOrderCancelledEvent
func NewSalesOrderCancelledEvent(order *SalesOrder) *SalesOrderCancelledEvent {
	return &SalesOrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderCancelled, AggregateTypeSalesOrder, order.ID, order.CompanyID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		Reason:          order.CancelReason,
	}
}

// PickingListCreatedEvent is published when a picking list is generated
type PickingListCreatedEvent struct {
	shared.BaseDomainEvent
	PickingListID uuid.UUID `json:"picking_list_id"`
	ListNumber    string    `json:"list_number"`
	SalesOrderID  uuid.UUID `json:"sales_order_id"`
}

// NewPickingListCreatedEvent creates a new PickingListCreatedEvent
func NewPickingListCreatedEvent(list *PickingList) *PickingListCreatedEvent {
	return &PickingListCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePickingListCreated, AggregateTypePickingList, list.ID, list.CompanyID),
		PickingListID:   list.ID,
		ListNumber:      list.ListNumber,
		SalesOrderID:    list.SalesOrderID,
	}
}

// PickingListCompletedEvent is published when a picking list completes
type PickingListCompletedEvent struct {
	shared.BaseDomainEvent
	PickingListID uuid.UUID       `json:"picking_list_id"`
	ListNumber    string          `json:"list_number"`
	SalesOrderID  uuid.UUID       `json:"sales_order_id"`
	TotalPicked   decimal.Decimal `json:"total_picked"`
	FullyPicked   bool            `json:"fully_picked"`
}

// NewPickingListCompletedEvent creates a new PickingListCompletedEvent
func NewPickingListCompletedEvent(list *PickingList, fullyPicked bool) *PickingListCompletedEvent {
	return &PickingListCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePickingListCompleted, AggregateTypePickingList, list.ID, list.CompanyID),
		PickingListID:   list.ID,
		ListNumber:      list.ListNumber,
		SalesOrderID:    list.SalesOrderID,
		TotalPicked:     list.TotalPicked(),
		FullyPicked:     fullyPicked,
	}
}

// PickingListCancelledEvent is published when a picking list is cancelled
type PickingListCancelledEvent struct {
	shared.BaseDomainEvent
	PickingListID uuid.UUID `json:"picking_list_id"`
	ListNumber    string    `json:"list_number"`
	SalesOrderID  uuid.UUID `json:"sales_order_id"`
	Reason        string    `json:"reason"`
}

// NewPickingListCancelledEvent creates a new PickingListCancelledEvent
func NewPickingListCancelledEvent(list *PickingList) *PickingListCancelledEvent {
	return &PickingListCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePickingListCancelled, AggregateTypePickingList, list.ID, list.CompanyID),
		PickingListID:   list.ID,
		ListNumber:      list.ListNumber,
		SalesOrderID:    list.SalesOrderID,
		Reason:          list.CancelReason,
	}
}
