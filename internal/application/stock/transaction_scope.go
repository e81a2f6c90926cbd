package stock

import (
	"context"

	"github.com/warehouse/backend/internal/domain/stock"
	"github.com/warehouse/backend/internal/domain/warehouse"
)

// TransactionScope provides transactional access to the ledger repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the ledger repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
//
// StockRecord is the aggregate root of the ledger; every quantity change
// goes through StockRepo. LocationRepo is read-only inside transfer flows,
// present so that capacity re-checks see transactional state.
type TransactionalRepositories interface {
	// StockRepo returns the ledger repository scoped to the current transaction
	StockRepo() stock.StockRecordRepository
	// LocationRepo returns the location repository scoped to the current transaction
	LocationRepo() warehouse.LocationRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing or when transaction support is
// not required.
type NoOpTransactionScope struct {
	stockRepo    stock.StockRecordRepository
	locationRepo warehouse.LocationRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	stockRepo stock.StockRecordRepository,
	locationRepo warehouse.LocationRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		stockRepo:    stockRepo,
		locationRepo: locationRepo,
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

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
