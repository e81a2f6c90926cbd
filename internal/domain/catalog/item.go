package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/domain/shared/valueobject"
)

// ItemStatus represents the status of an item
type ItemStatus string

const (
	ItemStatusActive   ItemStatus = "active"
	ItemStatusInactive ItemStatus = "inactive"
)

// Item represents a stock-keeping unit in the catalog.
// It is the aggregate root for item-related operations. The code is the
// unique, immutable business key; every ledger row and order line references
// an item.
type Item struct {
	shared.CompanyAggregateRoot
	Code          string          `gorm:"type:varchar(50);not null"`
	Name          string          `gorm:"type:varchar(200);not null"`
	Description   string          `gorm:"type:text"`
	Unit          string          `gorm:"type:varchar(20);not null"`             // Unit of measure (e.g. "pcs", "kg", "box")
	StandardPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Standard selling price
	MinStock      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Low-stock alert threshold
	Status        ItemStatus      `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new item
func NewItem(companyID uuid.UUID, code, name, unit string) (*Item, error) {
	if err := validateItemCode(code); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if unit == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit of measure cannot be empty")
	}

	item := &Item{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Code:                 strings.ToUpper(code),
		Name:                 name,
		Unit:                 unit,
		StandardPrice:        decimal.Zero,
		MinStock:             decimal.Zero,
		Status:               ItemStatusActive,
	}

	item.AddDomainEvent(NewItemCreatedEvent(item))

	return item, nil
}

// Update updates the item's basic information. The code is immutable.
func (i *Item) Update(name, description string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}

	i.Name = name
	i.Description = description
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// SetStandardPrice sets the standard selling price
func (i *Item) SetStandardPrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Standard price cannot be negative")
	}

	i.StandardPrice = price.Amount()
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// SetMinStock sets the low-stock alert threshold
func (i *Item) SetMinStock(minStock decimal.Decimal) error {
	if minStock.IsNegative() {
		return shared.NewDomainError("INVALID_MIN_STOCK", "Minimum stock cannot be negative")
	}

	i.MinStock = minStock
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// Activate activates the item
func (i *Item) Activate() error {
	if i.Status == ItemStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Item is already active")
	}

	i.Status = ItemStatusActive
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewItemStatusChangedEvent(i, ItemStatusInactive, ItemStatusActive))

	return nil
}

// Deactivate deactivates the item. Inactive items keep their ledger rows but
// are excluded from new order lines.
func (i *Item) Deactivate() error {
	if i.Status == ItemStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Item is already inactive")
	}

	i.Status = ItemStatusInactive
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewItemStatusChangedEvent(i, ItemStatusActive, ItemStatusInactive))

	return nil
}

// IsActive returns true if the item is active
func (i *Item) IsActive() bool {
	return i.Status == ItemStatusActive
}

// GetStandardPriceMoney returns the standard price as Money value object
func (i *Item) GetStandardPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(i.StandardPrice)
}

// HasLowStockThreshold returns true if a low-stock threshold is configured
func (i *Item) HasLowStockThreshold() bool {
	return i.MinStock.GreaterThan(decimal.Zero)
}

func validateItemCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Item code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Item code cannot exceed 50 characters")
	}
	return nil
}
