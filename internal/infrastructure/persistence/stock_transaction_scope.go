package persistence

import (
	"context"

	appstock "github.com/warehouse/backend/internal/application/stock"
	"github.com/warehouse/backend/internal/domain/stock"
	"github.com/warehouse/backend/internal/domain/warehouse"
	"gorm.io/gorm"
)

// GormStockTransactionScope implements the stock TransactionScope using GORM
// transactions. Ledger mutations and their capacity re-validation run
// against the same transaction, so the occupancy a commit checks is the
// occupancy it commits against.
type GormStockTransactionScope struct {
	db *gorm.DB
}

// NewGormStockTransactionScope creates a new GormStockTransactionScope
func NewGormStockTransactionScope(db *gorm.DB) *GormStockTransactionScope {
	return &GormStockTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormStockTransactionScope) Execute(ctx context.Context, fn func(repos appstock.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormStockTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormStockTransactionalRepositories provides repositories scoped to one transaction
type gormStockTransactionalRepositories struct {
	tx *gorm.DB
}

// StockRepo returns the ledger repository scoped to the current transaction.
// Row reads inside the scope take FOR UPDATE locks.
func (r *gormStockTransactionalRepositories) StockRepo() stock.StockRecordRepository {
	return NewGormStockRecordRepositoryForUpdate(r.tx)
}

// LocationRepo returns the location repository scoped to the current transaction
func (r *gormStockTransactionalRepositories) LocationRepo() warehouse.LocationRepository {
	return NewGormLocationRepository(r.tx)
}

// Ensure GormStockTransactionScope implements TransactionScope
var _ appstock.TransactionScope = (*GormStockTransactionScope)(nil)

// Ensure gormStockTransactionalRepositories implements TransactionalRepositories
var _ appstock.TransactionalRepositories = (*gormStockTransactionalRepositories)(nil)
