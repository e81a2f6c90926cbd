package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/domain/shared/valueobject"
)

// StockStatus represents the status of a ledger row
type StockStatus string

const (
	StockStatusAvailable StockStatus = "AVAILABLE"
	StockStatusReserved  StockStatus = "RESERVED"
	StockStatusDamaged   StockStatus = "DAMAGED"
	StockStatusEmpty     StockStatus = "EMPTY"
)

// IsValid checks if the status is a valid StockStatus
func (s StockStatus) IsValid() bool {
	switch s {
	case StockStatusAvailable, StockStatusReserved, StockStatusDamaged, StockStatusEmpty:
		return true
	}
	return false
}

// String returns the string representation
func (s StockStatus) String() string {
	return string(s)
}

// StockRecord is one row of the stock ledger: the quantity of one item held
// at one location. It is the aggregate root for all stock mutations; no
// other component writes quantity directly. The composite business key is
// (ItemID, LocationID). Rows are never physically deleted while referenced,
// only driven to zero/EMPTY.
//
// Invariant: Quantity == 0 if and only if Status == EMPTY. Rows with
// Quantity > 0 and Status AVAILABLE are the only ones eligible for picking.
type StockRecord struct {
	shared.CompanyAggregateRoot
	ItemID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	LocationID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status      StockStatus     `gorm:"type:varchar(20);not null;default:'AVAILABLE'"`
	LastCost    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Most recent acquisition cost, replaced on each inbound
	SourceRef   string          `gorm:"type:varchar(100);index"`               // Provenance tag, e.g. the shipment notice line that produced this stock
	LastMovedAt time.Time       `gorm:"not null;index"`                        // Drives FIFO pick ordering
}

// TableName returns the table name for GORM
func (StockRecord) TableName() string {
	return "stock_records"
}

// NewStockRecord creates a new ledger row for a first putaway or transfer
// into an (item, location) pair
func NewStockRecord(companyID, itemID, locationID uuid.UUID, quantity decimal.Decimal, cost valueobject.Money, sourceRef string) (*StockRecord, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if cost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Cost price cannot be negative")
	}

	record := &StockRecord{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		ItemID:               itemID,
		LocationID:           locationID,
		Quantity:             quantity,
		Status:               StockStatusAvailable,
		LastCost:             cost.Amount(),
		SourceRef:            sourceRef,
		LastMovedAt:          time.Now(),
	}

	record.AddDomainEvent(NewStockAddedEvent(record, quantity, cost.Amount(), sourceRef))

	return record, nil
}

// Increase adds quantity to the row, overwriting the last cost price, the
// provenance tag and the movement timestamp. An EMPTY row returns to
// AVAILABLE.
func (r *StockRecord) Increase(quantity decimal.Decimal, cost valueobject.Money, sourceRef string) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Cost price cannot be negative")
	}

	r.Quantity = r.Quantity.Add(quantity)
	r.LastCost = cost.Amount()
	r.SourceRef = sourceRef
	r.LastMovedAt = time.Now()
	if r.Status == StockStatusEmpty {
		r.Status = StockStatusAvailable
	}
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewStockAddedEvent(r, quantity, cost.Amount(), sourceRef))

	return nil
}

// Reduce removes quantity from the row. It fails with an insufficiency
// signal when the row holds less than requested and never produces a
// negative quantity. A row reduced to zero becomes EMPTY.
func (r *StockRecord) Reduce(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if r.Quantity.LessThan(quantity) {
		return shared.ErrInsufficientStock
	}

	r.Quantity = r.Quantity.Sub(quantity)
	r.LastMovedAt = time.Now()
	if r.Quantity.IsZero() {
		r.Status = StockStatusEmpty
	}
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewStockReducedEvent(r, quantity))

	return nil
}

// MarkDamaged moves the row out of sellable stock
func (r *StockRecord) MarkDamaged() error {
	if r.Quantity.IsZero() {
		return shared.NewDomainError("INVALID_STATE", "Cannot mark an empty row as damaged")
	}
	if r.Status == StockStatusDamaged {
		return shared.NewDomainError("INVALID_STATE", "Row is already marked damaged")
	}

	old := r.Status
	r.Status = StockStatusDamaged
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewStockStatusChangedEvent(r, old, StockStatusDamaged))

	return nil
}

// MarkAvailable returns a non-empty row to sellable stock
func (r *StockRecord) MarkAvailable() error {
	if r.Quantity.IsZero() {
		return shared.NewDomainError("INVALID_STATE", "An empty row stays EMPTY until stock arrives")
	}
	if r.Status == StockStatusAvailable {
		return shared.NewDomainError("INVALID_STATE", "Row is already available")
	}

	old := r.Status
	r.Status = StockStatusAvailable
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewStockStatusChangedEvent(r, old, StockStatusAvailable))

	return nil
}

// IsPickable returns true if the row may feed a pick: positive quantity and
// AVAILABLE status
func (r *StockRecord) IsPickable() bool {
	return r.Status == StockStatusAvailable && r.Quantity.GreaterThan(decimal.Zero)
}

// CanFulfill returns true if the row holds at least the requested quantity
func (r *StockRecord) CanFulfill(quantity decimal.Decimal) bool {
	return r.Quantity.GreaterThanOrEqual(quantity)
}

// GetLastCostMoney returns the last cost as Money value object
func (r *StockRecord) GetLastCostMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(r.LastCost)
}
