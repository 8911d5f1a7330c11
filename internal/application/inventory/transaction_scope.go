package inventory

import (
	"context"

	"github.com/smartsupplypro/inventory/internal/domain/inventory"
)

// TransactionScope provides transactional access to the item and ledger
// repositories. Everything executed within one scope commits or rolls back
// as a single unit; the item write and its ledger append are never visible
// separately.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the inventory repositories
// within a transaction. Both repositories share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// ItemRepo returns the item repository scoped to the current transaction
	ItemRepo() inventory.InventoryItemRepository
	// HistoryRepo returns the ledger repository scoped to the current transaction
	HistoryRepo() inventory.StockHistoryRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing or when transaction support is not
// required.
type NoOpTransactionScope struct {
	itemRepo    inventory.InventoryItemRepository
	historyRepo inventory.StockHistoryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	itemRepo inventory.InventoryItemRepository,
	historyRepo inventory.StockHistoryRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		itemRepo:    itemRepo,
		historyRepo: historyRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ItemRepo returns the item repository.
func (s *NoOpTransactionScope) ItemRepo() inventory.InventoryItemRepository {
	return s.itemRepo
}

// HistoryRepo returns the ledger repository.
func (s *NoOpTransactionScope) HistoryRepo() inventory.StockHistoryRepository {
	return s.historyRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
