package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/domain/shared/valueobject"
)

// SalesOrderStatus represents the status of a sales order
type SalesOrderStatus string

const (
	SalesOrderStatusDraft       SalesOrderStatus = "DRAFT"
	SalesOrderStatusConfirmed   SalesOrderStatus = "CONFIRMED"
	SalesOrderStatusPicking     SalesOrderStatus = "PICKING"
	SalesOrderStatusReadyToShip SalesOrderStatus = "READY_TO_SHIP"
	SalesOrderStatusShipped     SalesOrderStatus = "SHIPPED"
	SalesOrderStatusCompleted   SalesOrderStatus = "COMPLETED"
	SalesOrderStatusCancelled   SalesOrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid SalesOrderStatus
func (s SalesOrderStatus) IsValid() bool {
	switch s {
	case SalesOrderStatusDraft, SalesOrderStatusConfirmed, SalesOrderStatusPicking,
		SalesOrderStatusReadyToShip, SalesOrderStatusShipped, SalesOrderStatusCompleted,
		SalesOrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation
func (s SalesOrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s SalesOrderStatus) CanTransitionTo(target SalesOrderStatus) bool {
	switch s {
	case SalesOrderStatusDraft:
		return target == SalesOrderStatusConfirmed || target == SalesOrderStatusCancelled
	case SalesOrderStatusConfirmed:
		return target == SalesOrderStatusPicking || target == SalesOrderStatusCancelled
	case SalesOrderStatusPicking:
		// Picking-list cancellation reverts the order to CONFIRMED
		return target == SalesOrderStatusReadyToShip || target == SalesOrderStatusConfirmed
	case SalesOrderStatusReadyToShip:
		return target == SalesOrderStatusShipped
	case SalesOrderStatusShipped:
		return target == SalesOrderStatusCompleted
	case SalesOrderStatusCompleted, SalesOrderStatusCancelled:
		return false // Terminal states
	}
	return false
}

// SalesOrderLine represents a line in a sales order
type SalesOrderLine struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID    uuid.UUID       `gorm:"type:uuid;not null"`
	ItemCode  string          `gorm:"type:varchar(50);not null"`
	ItemName  string          `gorm:"type:varchar(200);not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Demand the pick allocator must satisfy
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SalesOrderLine) TableName() string {
	return "sales_order_lines"
}

// NewSalesOrderLine creates a new sales order line
func NewSalesOrderLine(orderID, itemID uuid.UUID, itemCode, itemName string, quantity decimal.Decimal, unitPrice valueobject.Money) (*SalesOrderLine, error) {
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
	return &SalesOrderLine{
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

// SalesOrder represents a sales order aggregate root. Confirmation gates
// picking; picking drives the order through PICKING to READY_TO_SHIP.
type SalesOrder struct {
	shared.CompanyAggregateRoot
	OrderNumber  string           `gorm:"type:varchar(50);not null"`
	CustomerID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	CustomerName string           `gorm:"type:varchar(200);not null"`
	Lines        []SalesOrderLine `gorm:"foreignKey:OrderID;references:ID"`
	TotalAmount  decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Status       SalesOrderStatus `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	Remark       string           `gorm:"type:text"`
	ConfirmedAt  *time.Time       `gorm:"index"`
	ShippedAt    *time.Time
	CompletedAt  *time.Time
	CancelledAt  *time.Time
	CancelReason string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// NewSalesOrder creates a new sales order
func NewSalesOrder(companyID uuid.UUID, orderNumber string, customerID uuid.UUID, customerName string) (*SalesOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}

	order := &SalesOrder{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		OrderNumber:          orderNumber,
		CustomerID:           customerID,
		CustomerName:         customerName,
		Lines:                make([]SalesOrderLine, 0),
		TotalAmount:          decimal.Zero,
		Status:               SalesOrderStatusDraft,
	}

	order.AddDomainEvent(NewSalesOrderCreatedEvent(order))

	return order, nil
}

// AddLine adds a line to the order. Only allowed in DRAFT status.
func (o *SalesOrder) AddLine(itemID uuid.UUID, itemCode, itemName string, quantity decimal.Decimal, unitPrice valueobject.Money) (*SalesOrderLine, error) {
	if o.Status != SalesOrderStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add lines to a non-draft sales order")
	}

	for _, line := range o.Lines {
		if line.ItemID == itemID {
			return nil, shared.NewDomainError("DUPLICATE_ITEM", "Item already exists on order, update quantity instead")
		}
	}

	line, err := NewSalesOrderLine(o.ID, itemID, itemCode, itemName, quantity, unitPrice)
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
func (o *SalesOrder) UpdateLineQuantity(lineID uuid.UUID, quantity decimal.Decimal) error {
	if o.Status != SalesOrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot update lines of a non-draft sales order")
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

	return shared.NewDomainError("LINE_NOT_FOUND", "Sales order line not found")
}

// RemoveLine removes a line from the order. Only allowed in DRAFT status.
func (o *SalesOrder) RemoveLine(lineID uuid.UUID) error {
	if o.Status != SalesOrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove lines from a non-draft sales order")
	}

	for idx, line := range o.Lines {
		if line.ID == lineID {
			o.Lines = append(o.Lines[:idx], o.Lines[idx+1:]...)
			o.recalculateTotal()
			o.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("LINE_NOT_FOUND", "Sales order line not found")
}

// Confirm confirms the order. Confirmation validates availability upstream
// but places no durable hold; picking consumes AVAILABLE stock directly.
func (o *SalesOrder) Confirm() error {
	if !o.Status.CanTransitionTo(SalesOrderStatusConfirmed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm sales order in %s status", o.Status))
	}
	if len(o.Lines) == 0 {
		return shared.NewDomainError("NO_LINES", "Cannot confirm sales order without lines")
	}

	now := time.Now()
	o.Status = SalesOrderStatusConfirmed
	o.ConfirmedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewSalesOrderConfirmedEvent(o))

	return nil
}

// StartPicking advances the order when a picking list is generated
func (o *SalesOrder) StartPicking() error {
	if !o.Status.CanTransitionTo(SalesOrderStatusPicking) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot start picking for sales order in %s status", o.Status))
	}

	o.Status = SalesOrderStatusPicking
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// MarkReadyToShip advances the order once its picking list completed with
// every line fully picked
func (o *SalesOrder) MarkReadyToShip() error {
	if !o.Status.CanTransitionTo(SalesOrderStatusReadyToShip) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark sales order in %s status as ready to ship", o.Status))
	}

	o.Status = SalesOrderStatusReadyToShip
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewSalesOrderReadyToShipEvent(o))

	return nil
}

// RevertToConfirmed returns a PICKING order to CONFIRMED after its picking
// list was cancelled and the picked stock restored
func (o *SalesOrder) RevertToConfirmed() error {
	if o.Status != SalesOrderStatusPicking {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot revert sales order in %s status", o.Status))
	}

	o.Status = SalesOrderStatusConfirmed
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// Ship marks the order as shipped
func (o *SalesOrder) Ship() error {
	if !o.Status.CanTransitionTo(SalesOrderStatusShipped) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot ship sales order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = SalesOrderStatusShipped
	o.ShippedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewSalesOrderShippedEvent(o))

	return nil
}

// Complete marks the order as completed
func (o *SalesOrder) Complete() error {
	if !o.Status.CanTransitionTo(SalesOrderStatusCompleted) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete sales order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = SalesOrderStatusCompleted
	o.CompletedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// Cancel cancels the order. Allowed only in DRAFT or CONFIRMED status;
// orders with active picking must cancel the picking list first.
func (o *SalesOrder) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(SalesOrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel sales order in %s status", o.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	o.Status = SalesOrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewSalesOrderCancelledEvent(o))

	return nil
}

// IsConfirmed returns true if the order is confirmed
func (o *SalesOrder) IsConfirmed() bool {
	return o.Status == SalesOrderStatusConfirmed
}

// GetLine returns a line by its ID
func (o *SalesOrder) GetLine(lineID uuid.UUID) *SalesOrderLine {
	for idx := range o.Lines {
		if o.Lines[idx].ID == lineID {
			return &o.Lines[idx]
		}
	}
	return nil
}

func (o *SalesOrder) recalculateTotal() {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.Amount)
	}
	o.TotalAmount = total
}
