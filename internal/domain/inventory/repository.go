package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartsupplypro/inventory/internal/domain/shared"
)

// InventoryItemRepository defines the interface for item persistence
type InventoryItemRepository interface {
	// FindByID finds an item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryItem, error)

	// FindByIDForUpdate loads an item with a row lock. Must be called inside
	// a transaction; concurrent callers for the same row serialize here.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*InventoryItem, error)

	// FindAll finds items matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]InventoryItem, error)

	// FindDuplicate finds a live item with the same name (case-insensitive)
	// and price, excluding the given ID. Returns nil when there is none.
	FindDuplicate(ctx context.Context, name string, price decimal.Decimal, excludeID uuid.UUID) (*InventoryItem, error)

	// FindBelowMinimum finds items at or below their reorder threshold
	FindBelowMinimum(ctx context.Context, filter shared.Filter) ([]InventoryItem, error)

	// SearchByName finds items whose name contains the term, price ascending
	SearchByName(ctx context.Context, name string, filter shared.Filter) ([]InventoryItem, error)

	// Save creates or updates an item
	Save(ctx context.Context, item *InventoryItem) error

	// SaveWithVersion updates with an optimistic version check; a stale
	// version yields shared.ErrConcurrencyConflict
	SaveWithVersion(ctx context.Context, item *InventoryItem) error

	// Delete removes an item. The ledger entries survive.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts items matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// TotalPerSupplier sums live item quantities per supplier, largest first
	TotalPerSupplier(ctx context.Context) ([]SupplierStock, error)
}

// StockHistoryRepository defines the interface for the append-only ledger.
// There is deliberately no update or delete method.
type StockHistoryRepository interface {
	// Append persists a new ledger entry
	Append(ctx context.Context, entry *StockHistory) error

	// FindByItem returns an item's entries ordered by creation time ascending
	FindByItem(ctx context.Context, itemID uuid.UUID, filter shared.Filter) ([]StockHistory, error)

	// FindByReason returns entries with the given reason, newest first
	FindByReason(ctx context.Context, reason StockChangeReason, filter shared.Filter) ([]StockHistory, error)

	// FindFiltered returns entries matching the combined filter, newest first
	FindFiltered(ctx context.Context, filter HistoryFilter) ([]StockHistory, error)

	// CountByItem counts an item's entries
	CountByItem(ctx context.Context, itemID uuid.UUID) (int64, error)

	// CountByItemGrouped returns per-item entry counts, descending
	CountByItemGrouped(ctx context.Context, limit int) ([]ItemActivity, error)

	// StockValueByDay sums delta * price snapshot per calendar day within the
	// window, oldest day first. Optional supplier filter.
	StockValueByDay(ctx context.Context, start, end time.Time, supplierID *uuid.UUID) ([]DailyStockValue, error)

	// MovementByMonth sums inbound and outbound quantities per calendar month
	// within the window, oldest month first. Optional supplier filter.
	MovementByMonth(ctx context.Context, start, end time.Time, supplierID *uuid.UUID) ([]MonthlyMovement, error)

	// PriceTrend averages an item's price snapshots per calendar day within
	// the window, oldest day first. Optional supplier filter.
	PriceTrend(ctx context.Context, itemID uuid.UUID, start, end time.Time, supplierID *uuid.UUID) ([]PricePoint, error)

	// FindForValuation returns every entry created at or before the given
	// instant, ordered by item then creation time, for cost replays.
	// Optional supplier filter.
	FindForValuation(ctx context.Context, until time.Time, supplierID *uuid.UUID) ([]StockHistory, error)
}

// HistoryFilter extends shared.Filter with ledger-specific filters
type HistoryFilter struct {
	shared.Filter
	ItemID     *uuid.UUID
	SupplierID *uuid.UUID
	Reason     *StockChangeReason
	CreatedBy  string
	StartDate  *time.Time
	EndDate    *time.Time
	MinDelta   *int
	MaxDelta   *int
}

// ItemActivity is a per-item ledger entry count used for update-frequency
// analytics
type ItemActivity struct {
	ItemID uuid.UUID
	Count  int64
}

// SupplierStock is the summed live quantity held for one supplier
type SupplierStock struct {
	SupplierID    uuid.UUID
	SupplierName  string
	TotalQuantity int64
}

// DailyStockValue is the summed value of ledger deltas for one day,
// valued at each entry's price snapshot
type DailyStockValue struct {
	Date       string
	TotalValue decimal.Decimal
}

// MonthlyMovement is the inbound/outbound quantity split for one month
type MonthlyMovement struct {
	Month    string
	StockIn  int64
	StockOut int64
}

// PricePoint is the average price snapshot for one day
type PricePoint struct {
	Date  string
	Price decimal.Decimal
}
