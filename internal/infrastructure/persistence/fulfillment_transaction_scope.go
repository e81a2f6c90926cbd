package persistence

import (
	"context"

	"github.com/warehouse/backend/internal/application/fulfillment"
	"github.com/warehouse/backend/internal/domain/stock"
	"github.com/warehouse/backend/internal/domain/trade"
	"github.com/warehouse/backend/internal/domain/warehouse"
	"gorm.io/gorm"
)

// GormFulfillmentTransactionScope implements the fulfillment
// TransactionScope using GORM transactions. A putaway or pick commit writes
// the ledger row and the driving document under one transaction; either
// both land or neither does.
type GormFulfillmentTransactionScope struct {
	db *gorm.DB
}

// NewGormFulfillmentTransactionScope creates a new GormFulfillmentTransactionScope
func NewGormFulfillmentTransactionScope(db *gorm.DB) *GormFulfillmentTransactionScope {
	return &GormFulfillmentTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormFulfillmentTransactionScope) Execute(ctx context.Context, fn func(repos fulfillment.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormFulfillmentTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormFulfillmentTransactionalRepositories provides repositories scoped to one transaction
type gormFulfillmentTransactionalRepositories struct {
	tx *gorm.DB
}

// StockRepo returns the ledger repository scoped to the current transaction.
// Row reads inside the scope take FOR UPDATE locks.
func (r *gormFulfillmentTransactionalRepositories) StockRepo() stock.StockRecordRepository {
	return NewGormStockRecordRepositoryForUpdate(r.tx)
}

// LocationRepo returns the location repository scoped to the current transaction
func (r *gormFulfillmentTransactionalRepositories) LocationRepo() warehouse.LocationRepository {
	return NewGormLocationRepository(r.tx)
}

// NoticeRepo returns the shipment notice repository scoped to the current transaction
func (r *gormFulfillmentTransactionalRepositories) NoticeRepo() trade.ShipmentNoticeRepository {
	return NewGormShipmentNoticeRepository(r.tx)
}

// SalesOrderRepo returns the sales order repository scoped to the current transaction
func (r *gormFulfillmentTransactionalRepositories) SalesOrderRepo() trade.SalesOrderRepository {
	return NewGormSalesOrderRepository(r.tx)
}

// PickingListRepo returns the picking list repository scoped to the current transaction
func (r *gormFulfillmentTransactionalRepositories) PickingListRepo() trade.PickingListRepository {
	return NewGormPickingListRepository(r.tx)
}

// Ensure GormFulfillmentTransactionScope implements TransactionScope
var _ fulfillment.TransactionScope = (*GormFulfillmentTransactionScope)(nil)

// Ensure gormFulfillmentTransactionalRepositories implements TransactionalRepositories
var _ fulfillment.TransactionalRepositories = (*gormFulfillmentTransactionalRepositories)(nil)
