package persistence

import (
	"context"
	"time"

	appinventory "github.com/smartsupplypro/inventory/internal/application/inventory"
	"github.com/smartsupplypro/inventory/internal/domain/inventory"
	"gorm.io/gorm"
)

// GormTransactionScope executes mutations inside a database transaction.
// lockTimeout bounds how long a mutation may wait on a row lock.
type GormTransactionScope struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB, lockTimeout time.Duration) *GormTransactionScope {
	return &GormTransactionScope{db: db, lockTimeout: lockTimeout}
}

// Execute runs fn within a transaction. Any error from fn rolls the
// transaction back, including already-appended ledger entries.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appinventory.TransactionalRepositories) error) error {
	if s.lockTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.lockTimeout)
		defer cancel()
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides repositories bound to one
// transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) ItemRepo() inventory.InventoryItemRepository {
	return NewGormInventoryItemRepository(r.tx)
}

func (r *gormTransactionalRepositories) HistoryRepo() inventory.StockHistoryRepository {
	return NewGormStockHistoryRepository(r.tx)
}

var _ appinventory.TransactionScope = (*GormTransactionScope)(nil)
