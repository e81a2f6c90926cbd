package stock

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/domain/shared/valueobject"
)

// LedgerService applies the ledger mutation rules to stock record
// aggregates. It is free of persistence; the application layer loads the
// rows, runs these operations, and saves the results under one transaction.
type LedgerService struct{}

// NewLedgerService creates a new LedgerService
func NewLedgerService() *LedgerService {
	return &LedgerService{}
}

// AddOrCreate adds quantity to an existing ledger row, or creates the row
// when the (item, location) pair has no stock yet. The existing argument may
// be nil.
func (s *LedgerService) AddOrCreate(existing *StockRecord, companyID, itemID, locationID uuid.UUID, quantity decimal.Decimal, cost valueobject.Money, sourceRef string) (*StockRecord, error) {
	if existing == nil {
		return NewStockRecord(companyID, itemID, locationID, quantity, cost, sourceRef)
	}
	if existing.ItemID != itemID || existing.LocationID != locationID {
		return nil, shared.NewDomainError("LEDGER_ROW_MISMATCH", "Ledger row does not match the requested item and location")
	}
	if err := existing.Increase(quantity, cost, sourceRef); err != nil {
		return nil, err
	}
	return existing, nil
}

// Reduce removes quantity from a ledger row
func (s *LedgerService) Reduce(record *StockRecord, quantity decimal.Decimal) error {
	if record == nil {
		return shared.ErrNotFound
	}
	return record.Reduce(quantity)
}

// Transfer moves quantity from a source row to a destination location,
// carrying the source row's last cost forward. The reduction runs first; if
// it fails, the destination is never touched. The destination row may be nil
// when no stock exists at the target yet, in which case a new row is
// returned. Transfers within one location are rejected as no-ops.
func (s *LedgerService) Transfer(from, to *StockRecord, toLocationID uuid.UUID, quantity decimal.Decimal, sourceRef string) (*StockRecord, error) {
	if from == nil {
		return nil, shared.ErrNotFound
	}
	if from.LocationID == toLocationID {
		return nil, shared.NewDomainError("INVALID_TRANSFER", "Source and destination location are the same")
	}

	cost := from.GetLastCostMoney()

	if err := from.Reduce(quantity); err != nil {
		return nil, err
	}

	dest, err := s.AddOrCreate(to, from.CompanyID, from.ItemID, toLocationID, quantity, cost, sourceRef)
	if err != nil {
		return nil, err
	}

	from.AddDomainEvent(NewStockTransferredEvent(from.CompanyID, from.ItemID, from.LocationID, toLocationID, quantity, cost.Amount()))

	return dest, nil
}
