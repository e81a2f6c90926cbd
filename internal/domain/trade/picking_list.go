package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
)

// PickingListStatus represents the status of a picking list
type PickingListStatus string

const (
	PickingListStatusPending    PickingListStatus = "PENDING"
	PickingListStatusInProgress PickingListStatus = "IN_PROGRESS"
	PickingListStatusCompleted  PickingListStatus = "COMPLETED"
	PickingListStatusCancelled  PickingListStatus = "CANCELLED"
)

// IsValid checks if the status is a valid PickingListStatus
func (s PickingListStatus) IsValid() bool {
	switch s {
	case PickingListStatusPending, PickingListStatusInProgress,
		PickingListStatusCompleted, PickingListStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation
func (s PickingListStatus) String() string {
	return string(s)
}

// IsTerminal returns true for states with no outgoing transitions
func (s PickingListStatus) IsTerminal() bool {
	return s == PickingListStatusCompleted || s == PickingListStatusCancelled
}

// PickingListLine assigns a slice of one sales-order line's demand to one
// source location. RemainingQuantity is always derived: required minus
// picked.
type PickingListLine struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	PickingListID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	SalesOrderLineID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID           uuid.UUID       `gorm:"type:uuid;not null"`
	ItemCode         string          `gorm:"type:varchar(50);not null"`
	LocationID       uuid.UUID       `gorm:"type:uuid;not null"`
	LocationCode     string          `gorm:"type:varchar(50);not null"`
	RequiredQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`           // Slice of demand assigned to this location
	PickedQuantity   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Quantity picked so far
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PickingListLine) TableName() string {
	return "picking_list_lines"
}

// NewPickingListLine creates a new picking list line
func NewPickingListLine(pickingListID, salesOrderLineID, itemID uuid.UUID, itemCode string, locationID uuid.UUID, locationCode string, requiredQuantity decimal.Decimal) (*PickingListLine, error) {
	if salesOrderLineID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER_LINE", "Sales order line ID cannot be empty")
	}
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}
	if requiredQuantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Required quantity must be positive")
	}

	now := time.Now()
	return &PickingListLine{
		ID:               uuid.New(),
		PickingListID:    pickingListID,
		SalesOrderLineID: salesOrderLineID,
		ItemID:           itemID,
		ItemCode:         itemCode,
		LocationID:       locationID,
		LocationCode:     locationCode,
		RequiredQuantity: requiredQuantity,
		PickedQuantity:   decimal.Zero,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// Remaining returns the quantity not yet picked
func (l *PickingListLine) Remaining() decimal.Decimal {
	return l.RequiredQuantity.Sub(l.PickedQuantity)
}

// IsFullyPicked returns true when nothing remains to pick
func (l *PickingListLine) IsFullyPicked() bool {
	return l.Remaining().LessThanOrEqual(decimal.Zero)
}

// PickingList represents a picking list aggregate root, generated from a
// confirmed sales order: one line per (sales-order line, source location)
// pair. It aggregates to its parent sales order and drives the order's
// status forward.
type PickingList struct {
	shared.CompanyAggregateRoot
	ListNumber   string            `gorm:"type:varchar(50);not null"`
	SalesOrderID uuid.UUID         `gorm:"type:uuid;not null;index"`
	Lines        []PickingListLine `gorm:"foreignKey:PickingListID;references:ID"`
	Status       PickingListStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`
	CompletedAt  *time.Time
	CancelledAt  *time.Time
	CancelReason string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (PickingList) TableName() string {
	return "picking_lists"
}

// NewPickingList creates a new picking list for a sales order
func NewPickingList(companyID uuid.UUID, listNumber string, salesOrderID uuid.UUID) (*PickingList, error) {
	if listNumber == "" {
		return nil, shared.NewDomainError("INVALID_LIST_NUMBER", "List number cannot be empty")
	}
	if salesOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALES_ORDER", "Sales order ID cannot be empty")
	}

	list := &PickingList{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		ListNumber:           listNumber,
		SalesOrderID:         salesOrderID,
		Lines:                make([]PickingListLine, 0),
		Status:               PickingListStatusPending,
	}

	list.AddDomainEvent(NewPickingListCreatedEvent(list))

	return list, nil
}

// AddLine adds a line during generation. Only allowed while PENDING with no
// picks recorded.
func (p *PickingList) AddLine(salesOrderLineID, itemID uuid.UUID, itemCode string, locationID uuid.UUID, locationCode string, requiredQuantity decimal.Decimal) (*PickingListLine, error) {
	if p.Status != PickingListStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add lines to a non-pending picking list")
	}

	line, err := NewPickingListLine(p.ID, salesOrderLineID, itemID, itemCode, locationID, locationCode, requiredQuantity)
	if err != nil {
		return nil, err
	}

	p.Lines = append(p.Lines, *line)
	p.UpdatedAt = time.Now()

	return line, nil
}

// RecordPick increments a line's picked quantity after the ledger reduction
// committed. Picking more than the line's remaining quantity is rejected.
// The first recorded pick moves a PENDING list to IN_PROGRESS.
func (p *PickingList) RecordPick(lineID uuid.UUID, quantity decimal.Decimal) error {
	if p.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot pick against a picking list in %s status", p.Status))
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Pick quantity must be positive")
	}

	line := p.GetLine(lineID)
	if line == nil {
		return shared.NewDomainError("LINE_NOT_FOUND", "Picking list line not found")
	}

	remaining := line.Remaining()
	if quantity.GreaterThan(remaining) {
		return shared.NewDomainError("EXCEEDS_REMAINING",
			fmt.Sprintf("Pick quantity %s exceeds remaining %s", quantity.String(), remaining.String()))
	}

	line.PickedQuantity = line.PickedQuantity.Add(quantity)
	line.UpdatedAt = time.Now()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	if p.Status == PickingListStatusPending {
		p.Status = PickingListStatusInProgress
	}

	return nil
}

// Complete closes the picking list. At least one unit must have been
// picked; partially picked lines are allowed and leave the parent order in
// partial fulfillment.
func (p *PickingList) Complete() error {
	if p.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete picking list in %s status", p.Status))
	}
	if p.TotalPicked().LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("NOTHING_PICKED", "Cannot complete a picking list with no picks recorded")
	}

	now := time.Now()
	p.Status = PickingListStatusCompleted
	p.CompletedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewPickingListCompletedEvent(p, p.AllLinesPicked()))

	return nil
}

// Cancel marks the list cancelled. The caller is responsible for reversing
// picked stock back into the ledger before the sales order reverts.
func (p *PickingList) Cancel(reason string) error {
	if p.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel picking list in %s status", p.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	p.Status = PickingListStatusCancelled
	p.CancelledAt = &now
	p.CancelReason = reason
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewPickingListCancelledEvent(p))

	return nil
}

// AllLinesPicked returns true when every line is fully picked
func (p *PickingList) AllLinesPicked() bool {
	for idx := range p.Lines {
		if !p.Lines[idx].IsFullyPicked() {
			return false
		}
	}
	return len(p.Lines) > 0
}

// TotalPicked sums the picked quantity over all lines
func (p *PickingList) TotalPicked() decimal.Decimal {
	total := decimal.Zero
	for idx := range p.Lines {
		total = total.Add(p.Lines[idx].PickedQuantity)
	}
	return total
}

// LinesWithPicks returns the lines that have at least one unit picked.
// Cancellation reverses the ledger reduction for exactly these lines.
func (p *PickingList) LinesWithPicks() []PickingListLine {
	picked := make([]PickingListLine, 0)
	for idx := range p.Lines {
		if p.Lines[idx].PickedQuantity.GreaterThan(decimal.Zero) {
			picked = append(picked, p.Lines[idx])
		}
	}
	return picked
}

// IsActive returns true while the list can still accept picks
func (p *PickingList) IsActive() bool {
	return !p.Status.IsTerminal()
}

// GetLine returns a line by its ID
func (p *PickingList) GetLine(lineID uuid.UUID) *PickingListLine {
	for idx := range p.Lines {
		if p.Lines[idx].ID == lineID {
			return &p.Lines[idx]
		}
	}
	return nil
}
