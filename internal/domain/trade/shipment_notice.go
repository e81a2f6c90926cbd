package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/domain/shared/valueobject"
)

// ShipmentNoticeStatus represents the status of a shipment notice
type ShipmentNoticeStatus string

const (
	ShipmentNoticeStatusDraft     ShipmentNoticeStatus = "DRAFT"
	ShipmentNoticeStatusInTransit ShipmentNoticeStatus = "IN_TRANSIT"
	ShipmentNoticeStatusArrived   ShipmentNoticeStatus = "ARRIVED"
	ShipmentNoticeStatusProcessed ShipmentNoticeStatus = "PROCESSED"
	ShipmentNoticeStatusCancelled ShipmentNoticeStatus = "CANCELLED"
)

// IsValid checks if the status is a valid ShipmentNoticeStatus
func (s ShipmentNoticeStatus) IsValid() bool {
	switch s {
	case ShipmentNoticeStatusDraft, ShipmentNoticeStatusInTransit, ShipmentNoticeStatusArrived,
		ShipmentNoticeStatusProcessed, ShipmentNoticeStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation
func (s ShipmentNoticeStatus) String() string {
	return string(s)
}

// IsTerminal returns true for states with no outgoing transitions
func (s ShipmentNoticeStatus) IsTerminal() bool {
	return s == ShipmentNoticeStatusProcessed || s == ShipmentNoticeStatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status
func (s ShipmentNoticeStatus) CanTransitionTo(target ShipmentNoticeStatus) bool {
	if target == ShipmentNoticeStatusCancelled {
		return !s.IsTerminal()
	}
	switch s {
	case ShipmentNoticeStatusDraft:
		return target == ShipmentNoticeStatusInTransit
	case ShipmentNoticeStatusInTransit:
		return target == ShipmentNoticeStatusArrived
	case ShipmentNoticeStatusArrived:
		return target == ShipmentNoticeStatusProcessed
	}
	return false
}

// ShipmentNoticeLine represents one expected item on an inbound shipment.
// RemainingQuantity is always derived: shipped minus already placed.
type ShipmentNoticeLine struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	NoticeID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID          uuid.UUID       `gorm:"type:uuid;not null"`
	ItemCode        string          `gorm:"type:varchar(50);not null"`
	ItemName        string          `gorm:"type:varchar(200);not null"`
	ShippedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`           // Quantity the supplier declared shipped
	ActualUnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`           // Acquisition cost carried into the ledger on putaway
	PlacedQuantity  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Quantity already put away
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ShipmentNoticeLine) TableName() string {
	return "shipment_notice_lines"
}

// NewShipmentNoticeLine creates a new shipment notice line
func NewShipmentNoticeLine(noticeID, itemID uuid.UUID, itemCode, itemName string, shippedQuantity decimal.Decimal, actualUnitPrice valueobject.Money) (*ShipmentNoticeLine, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if shippedQuantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Shipped quantity must be positive")
	}
	if actualUnitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Actual unit price cannot be negative")
	}

	now := time.Now()
	return &ShipmentNoticeLine{
		ID:              uuid.New(),
		NoticeID:        noticeID,
		ItemID:          itemID,
		ItemCode:        itemCode,
		ItemName:        itemName,
		ShippedQuantity: shippedQuantity,
		ActualUnitPrice: actualUnitPrice.Amount(),
		PlacedQuantity:  decimal.Zero,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Remaining returns the quantity not yet put away
func (l *ShipmentNoticeLine) Remaining() decimal.Decimal {
	return l.ShippedQuantity.Sub(l.PlacedQuantity)
}

// IsFullyPlaced returns true when nothing remains to put away
func (l *ShipmentNoticeLine) IsFullyPlaced() bool {
	return l.Remaining().LessThanOrEqual(decimal.Zero)
}

// GetActualUnitPriceMoney returns the actual unit price as Money
func (l *ShipmentNoticeLine) GetActualUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(l.ActualUnitPrice)
}

// ShipmentNotice represents an advance shipment notice aggregate root: the
// inbound document, one line per item expected from a purchase order.
// Putaway is only valid once the notice has arrived, and a line may never
// place more than its remaining quantity.
type ShipmentNotice struct {
	shared.CompanyAggregateRoot
	NoticeNumber    string               `gorm:"type:varchar(50);not null"`
	PurchaseOrderID uuid.UUID            `gorm:"type:uuid;not null;index"`
	Lines           []ShipmentNoticeLine `gorm:"foreignKey:NoticeID;references:ID"`
	Status          ShipmentNoticeStatus `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	Remark          string               `gorm:"type:text"`
	ArrivedAt       *time.Time           `gorm:"index"`
	ProcessedAt     *time.Time
	CancelledAt     *time.Time
	CancelReason    string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ShipmentNotice) TableName() string {
	return "shipment_notices"
}

// NewShipmentNotice creates a new shipment notice against a purchase order
func NewShipmentNotice(companyID uuid.UUID, noticeNumber string, purchaseOrderID uuid.UUID) (*ShipmentNotice, error) {
	if noticeNumber == "" {
		return nil, shared.NewDomainError("INVALID_NOTICE_NUMBER", "Notice number cannot be empty")
	}
	if purchaseOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PURCHASE_ORDER", "Purchase order ID cannot be empty")
	}

	notice := &ShipmentNotice{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		NoticeNumber:         noticeNumber,
		PurchaseOrderID:      purchaseOrderID,
		Lines:                make([]ShipmentNoticeLine, 0),
		Status:               ShipmentNoticeStatusDraft,
	}

	notice.AddDomainEvent(NewShipmentNoticeCreatedEvent(notice))

	return notice, nil
}

// AddLine adds an expected item to the notice. Only allowed in DRAFT status.
func (n *ShipmentNotice) AddLine(itemID uuid.UUID, itemCode, itemName string, shippedQuantity decimal.Decimal, actualUnitPrice valueobject.Money) (*ShipmentNoticeLine, error) {
	if n.Status != ShipmentNoticeStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add lines to a non-draft shipment notice")
	}

	for _, line := range n.Lines {
		if line.ItemID == itemID {
			return nil, shared.NewDomainError("DUPLICATE_ITEM", "Item already exists on notice")
		}
	}

	line, err := NewShipmentNoticeLine(n.ID, itemID, itemCode, itemName, shippedQuantity, actualUnitPrice)
	if err != nil {
		return nil, err
	}

	n.Lines = append(n.Lines, *line)
	n.UpdatedAt = time.Now()

	return line, nil
}

// MarkInTransit records that the supplier dispatched the shipment
func (n *ShipmentNotice) MarkInTransit() error {
	if !n.Status.CanTransitionTo(ShipmentNoticeStatusInTransit) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark notice in %s status as in transit", n.Status))
	}
	if len(n.Lines) == 0 {
		return shared.NewDomainError("NO_LINES", "Cannot dispatch a shipment notice without lines")
	}

	n.Status = ShipmentNoticeStatusInTransit
	n.UpdatedAt = time.Now()
	n.IncrementVersion()

	return nil
}

// MarkArrived records physical arrival; putaway becomes valid from here
func (n *ShipmentNotice) MarkArrived() error {
	if !n.Status.CanTransitionTo(ShipmentNoticeStatusArrived) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark notice in %s status as arrived", n.Status))
	}

	now := time.Now()
	n.Status = ShipmentNoticeStatusArrived
	n.ArrivedAt = &now
	n.UpdatedAt = now
	n.IncrementVersion()

	n.AddDomainEvent(NewShipmentNoticeArrivedEvent(n))

	return nil
}

// CanPutaway returns true if putaway steps may run against the notice
func (n *ShipmentNotice) CanPutaway() bool {
	return n.Status == ShipmentNoticeStatusArrived
}

// RecordPutaway increments a line's placed quantity after the ledger
// mutation committed. Placing more than the line's remaining quantity is
// rejected. When every line is fully placed the notice advances to
// PROCESSED; otherwise partial putaway is a valid resting state.
func (n *ShipmentNotice) RecordPutaway(lineID uuid.UUID, quantity decimal.Decimal) error {
	if !n.CanPutaway() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot put away against a notice in %s status", n.Status))
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Putaway quantity must be positive")
	}

	line := n.GetLine(lineID)
	if line == nil {
		return shared.NewDomainError("LINE_NOT_FOUND", "Shipment notice line not found")
	}

	remaining := line.Remaining()
	if remaining.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("LINE_FULLY_PLACED", "Shipment notice line has no remaining quantity")
	}
	if quantity.GreaterThan(remaining) {
		return shared.NewDomainError("EXCEEDS_REMAINING",
			fmt.Sprintf("Putaway quantity %s exceeds remaining %s", quantity.String(), remaining.String()))
	}

	line.PlacedQuantity = line.PlacedQuantity.Add(quantity)
	line.UpdatedAt = time.Now()
	n.UpdatedAt = time.Now()
	n.IncrementVersion()

	if n.AllLinesPlaced() {
		now := time.Now()
		n.Status = ShipmentNoticeStatusProcessed
		n.ProcessedAt = &now
		n.AddDomainEvent(NewShipmentNoticeProcessedEvent(n))
	}

	return nil
}

// AllLinesPlaced returns true when every line has zero remaining quantity
func (n *ShipmentNotice) AllLinesPlaced() bool {
	for idx := range n.Lines {
		if !n.Lines[idx].IsFullyPlaced() {
			return false
		}
	}
	return len(n.Lines) > 0
}

// Cancel cancels the notice from any non-terminal state
func (n *ShipmentNotice) Cancel(reason string) error {
	if !n.Status.CanTransitionTo(ShipmentNoticeStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel shipment notice in %s status", n.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	n.Status = ShipmentNoticeStatusCancelled
	n.CancelledAt = &now
	n.CancelReason = reason
	n.UpdatedAt = now
	n.IncrementVersion()

	return nil
}

// GetLine returns a line by its ID
func (n *ShipmentNotice) GetLine(lineID uuid.UUID) *ShipmentNoticeLine {
	for idx := range n.Lines {
		if n.Lines[idx].ID == lineID {
			return &n.Lines[idx]
		}
	}
	return nil
}

// GetLineByItem returns a line by item ID
func (n *ShipmentNotice) GetLineByItem(itemID uuid.UUID) *ShipmentNoticeLine {
	for idx := range n.Lines {
		if n.Lines[idx].ItemID == itemID {
			return &n.Lines[idx]
		}
	}
	return nil
}

// TotalRemaining sums the remaining quantity over all lines
func (n *ShipmentNotice) TotalRemaining() decimal.Decimal {
	total := decimal.Zero
	for idx := range n.Lines {
		total = total.Add(n.Lines[idx].Remaining())
	}
	return total
}
