package fulfillment

import (
	"context"

	"github.com/warehouse/backend/internal/domain/stock"
	"github.com/warehouse/backend/internal/domain/trade"
	"github.com/warehouse/backend/internal/domain/warehouse"
)

// TransactionScope provides transactional access to the repositories touched
// by fulfillment flows. A putaway or pick commit mutates a document and the
// ledger together; both writes must land or neither.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the fulfillment repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// StockRepo returns the ledger repository scoped to the current transaction
	StockRepo() stock.StockRecordRepository
	// LocationRepo returns the location repository scoped to the current transaction
	LocationRepo() warehouse.LocationRepository
	// NoticeRepo returns the shipment notice repository scoped to the current transaction
	NoticeRepo() trade.ShipmentNoticeRepository
	// SalesOrderRepo returns the sales order repository scoped to the current transaction
	SalesOrderRepo() trade.SalesOrderRepository
	// PickingListRepo returns the picking list repository scoped to the current transaction
	PickingListRepo() trade.PickingListRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing or when transaction support is
// not required.
type NoOpTransactionScope struct {
	stockRepo       stock.StockRecordRepository
	locationRepo    warehouse.LocationRepository
	noticeRepo      trade.ShipmentNoticeRepository
	salesOrderRepo  trade.SalesOrderRepository
	pickingListRepo trade.PickingListRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	stockRepo stock.StockRecordRepository,
	locationRepo warehouse.LocationRepository,
	noticeRepo trade.ShipmentNoticeRepository,
	salesOrderRepo trade.SalesOrderRepository,
	pickingListRepo trade.PickingListRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		stockRepo:       stockRepo,
		locationRepo:    locationRepo,
		noticeRepo:      noticeRepo,
		salesOrderRepo:  salesOrderRepo,
		pickingListRepo: pickingListRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// StockRepo returns the ledger repository.
func (s *NoOpTransactionScope) StockRepo() stock.StockRecordRepository {
	return s.stockRepo
}

// LocationRepo returns the location repository.
func (s *NoOpTransactionScope) LocationRepo() warehouse.LocationRepository {
	return s.locationRepo
}

// NoticeRepo returns the shipment notice repository.
func (s *NoOpTransactionScope) NoticeRepo() trade.ShipmentNoticeRepository {
	return s.noticeRepo
}

// SalesOrderRepo returns the sales order repository.
func (s *NoOpTransactionScope) SalesOrderRepo() trade.SalesOrderRepository {
	return s.salesOrderRepo
}

// PickingListRepo returns the picking list repository.
func (s *NoOpTransactionScope) PickingListRepo() trade.PickingListRepository {
	return s.pickingListRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
