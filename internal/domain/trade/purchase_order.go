package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/domain/shared/valueobject"
)

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft     PurchaseOrderStatus = "DRAFT"
	PurchaseOrderStatusSent      PurchaseOrderStatus = "SENT"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusSent, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	switch s {
	case PurchaseOrderStatusDraft:
		return target == PurchaseOrderStatusSent || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusSent, PurchaseOrderStatusCancelled:
		return false // Terminal states
	}
	return false
}

// PurchaseOrderLine represents a line in a purchase order
type PurchaseOrderLine struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID    uuid.UUID       `gorm:"type:uuid;not null"`
	ItemCode  string          `gorm:"type:varchar(50);not null"`
	ItemName  string          `gorm:"type:varchar(200);not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Quantity * UnitPrice
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderLine) TableName() string {
	return "purchase_order_lines"
}

// NewPurchaseOrderLine creates a new purchase order line
func NewPurchaseOrderLine(orderID, itemID uuid.UUID, itemCode, itemName string, quantity decimal.Decimal, unitPrice valueobject.Money) (*PurchaseOrderLine, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &PurchaseOrderLine{
		ID:        uuid.New(),
		OrderID:   orderID,
		ItemID:    itemID,
		ItemCode:  itemCode,
		ItemName:  itemName,
		Quantity:  quantity,
		UnitPrice: unitPrice.Amount(),
		Amount:    quantity.Mul(unitPrice.Amount()),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// PurchaseOrder represents a purchase order aggregate root. Purchase orders
// drive inbound shipment notices; once sent to the supplier, they become
// immutable.
type PurchaseOrder struct {
	shared.CompanyAggregateRoot
	OrderNumber  string              `gorm:"type:varchar(50);not null"`
	SupplierID   uuid.UUID           `gorm:"type:uuid;not null;index"`
	SupplierName string              `gorm:"type:varchar(200);not null"`
	Lines        []PurchaseOrderLine `gorm:"foreignKey:OrderID;references:ID"`
	TotalAmount  decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	Status       PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	Remark       string              `gorm:"type:text"`
	SentAt       *time.Time          `gorm:"index"`
	CancelledAt  *time.Time
	CancelReason string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a new purchase order
func NewPurchaseOrder(companyID uuid.UUID, orderNumber string, supplierID uuid.UUID, supplierName string) (*PurchaseOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}

	order := &PurchaseOrder{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		OrderNumber:          orderNumber,
		SupplierID:           supplierID,
		SupplierName:         supplierName,
		Lines:                make([]PurchaseOrderLine, 0),
		TotalAmount:          decimal.Zero,
		Status:               PurchaseOrderStatusDraft,
	}

	order.AddDomainEvent(NewPurchaseOrderCreatedEvent(order))

	return order, nil
}

// AddLine adds a line to the order. Only allowed in DRAFT status.
func (o *PurchaseOrder) AddLine(itemID uuid.UUID, itemCode, itemName string, quantity decimal.Decimal, unitPrice valueobject.Money) (*PurchaseOrderLine, error) {
	if o.Status != PurchaseOrderStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add lines to a non-draft purchase order")
	}

	for _, line := range o.Lines {
		if line.ItemID == itemID {
			return nil, shared.NewDomainError("DUPLICATE_ITEM", "Item already exists on order, update quantity instead")
		}
	}

	line, err := NewPurchaseOrderLine(o.ID, itemID, itemCode, itemName, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Lines = append(o.Lines, *line)
	o.recalculateTotal()
	o.UpdatedAt = time.Now()

	return line, nil
}

// UpdateLineQuantity updates the quantity of an existing line.
// Only allowed in DRAFT status.
func (o *PurchaseOrder) UpdateLineQuantity(lineID uuid.UUID, quantity decimal.Decimal) error {
	if o.Status != PurchaseOrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot update lines of a non-draft purchase order")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	for idx := range o.Lines {
		if o.Lines[idx].ID == lineID {
			o.Lines[idx].Quantity = quantity
			o.Lines[idx].Amount = quantity.Mul(o.Lines[idx].UnitPrice)
			o.Lines[idx].UpdatedAt = time.Now()
			o.recalculateTotal()
			o.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("LINE_NOT_FOUND", "Purchase order line not found")
}

// RemoveLine removes a line from the order. Only allowed in DRAFT status.
func (o *PurchaseOrder) RemoveLine(lineID uuid.UUID) error {
	if o.Status != PurchaseOrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove lines from a non-draft purchase order")
	}

	for idx, line := range o.Lines {
		if line.ID == lineID {
			o.Lines = append(o.Lines[:idx], o.Lines[idx+1:]...)
			o.recalculateTotal()
			o.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("LINE_NOT_FOUND", "Purchase order line not found")
}

// Send marks the order as sent to the supplier. Requires at least one line.
func (o *PurchaseOrder) Send() error {
	if !o.Status.CanTransitionTo(PurchaseOrderStatusSent) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot send purchase order in %s status", o.Status))
	}
	if len(o.Lines) == 0 {
		return shared.NewDomainError("NO_LINES", "Cannot send purchase order without lines")
	}

	now := time.Now()
	o.Status = PurchaseOrderStatusSent
	o.SentAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderSentEvent(o))

	return nil
}

// Cancel cancels the order. Only allowed in DRAFT status.
func (o *PurchaseOrder) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(PurchaseOrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel purchase order in %s status", o.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	o.Status = PurchaseOrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderCancelledEvent(o))

	return nil
}

// CanModify returns true if the order lines can still be edited
func (o *PurchaseOrder) CanModify() bool {
	return o.Status == PurchaseOrderStatusDraft
}

// GetLine returns a line by its ID
func (o *PurchaseOrder) GetLine(lineID uuid.UUID) *PurchaseOrderLine {
	for idx := range o.Lines {
		if o.Lines[idx].ID == lineID {
			return &o.Lines[idx]
		}
	}
	return nil
}

func (o *PurchaseOrder) recalculateTotal() {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.Amount)
	}
	o.TotalAmount = total
}
