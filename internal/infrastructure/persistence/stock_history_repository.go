package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/smartsupplypro/inventory/internal/domain/inventory"
	"github.com/smartsupplypro/inventory/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockHistoryRepository implements StockHistoryRepository using GORM.
// The ledger is append-only: the only write is an INSERT.
type GormStockHistoryRepository struct {
	db *gorm.DB
}

// NewGormStockHistoryRepository creates a new GormStockHistoryRepository
func NewGormStockHistoryRepository(db *gorm.DB) *GormStockHistoryRepository {
	return &GormStockHistoryRepository{db: db}
}

// Append inserts a ledger entry
func (r *GormStockHistoryRepository) Append(ctx context.Context, entry *inventory.StockHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByItem returns an item's ledger entries, oldest first
func (r *GormStockHistoryRepository) FindByItem(ctx context.Context, itemID uuid.UUID, filter shared.Filter) ([]inventory.StockHistory, error) {
	var entries []inventory.StockHistory
	query := r.db.WithContext(ctx).
		Model(&inventory.StockHistory{}).
		Where("item_id = ?", itemID).
		Order("created_at ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByReason returns entries with the given reason, newest first
func (r *GormStockHistoryRepository) FindByReason(ctx context.Context, reason inventory.StockChangeReason, filter shared.Filter) ([]inventory.StockHistory, error) {
	var entries []inventory.StockHistory
	query := r.db.WithContext(ctx).
		Model(&inventory.StockHistory{}).
		Where("reason = ?", reason).
		Order("created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindFiltered returns entries matching the combined filter, newest first
func (r *GormStockHistoryRepository) FindFiltered(ctx context.Context, filter inventory.HistoryFilter) ([]inventory.StockHistory, error) {
	var entries []inventory.StockHistory
	query := r.applyHistoryFilter(r.db.WithContext(ctx).Model(&inventory.StockHistory{}), filter).
		Order("created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// CountByItem counts an item's ledger entries
func (r *GormStockHistoryRepository) CountByItem(ctx context.Context, itemID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&inventory.StockHistory{}).
		Where("item_id = ?", itemID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CountByItemGrouped returns per-item entry counts, most active first
func (r *GormStockHistoryRepository) CountByItemGrouped(ctx context.Context, limit int) ([]inventory.ItemActivity, error) {
	var activities []inventory.ItemActivity
	err := r.db.WithContext(ctx).
		Model(&inventory.StockHistory{}).
		Select("item_id, COUNT(*) AS count").
		Group("item_id").
		Order("count DESC").
		Limit(limit).
		Scan(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

// StockValueByDay sums delta * price snapshot per day. Values come from the
// ledger's own snapshots, so deleted items stay in the series.
func (r *GormStockHistoryRepository) StockValueByDay(ctx context.Context, start, end time.Time, supplierID *uuid.UUID) ([]inventory.DailyStockValue, error) {
	var points []inventory.DailyStockValue
	query := r.db.WithContext(ctx).
		Model(&inventory.StockHistory{}).
		Select("TO_CHAR(created_at, 'YYYY-MM-DD') AS date, SUM(delta * price_at_change) AS total_value").
		Where("created_at BETWEEN ? AND ?", start, end)
	if supplierID != nil {
		query = query.Where("supplier_id = ?", *supplierID)
	}
	err := query.
		Group("TO_CHAR(created_at, 'YYYY-MM-DD')").
		Order("date ASC").
		Scan(&points).Error
	if err != nil {
		return nil, err
	}
	return points, nil
}

// MovementByMonth splits ledger deltas into inbound and outbound sums per
// month
func (r *GormStockHistoryRepository) MovementByMonth(ctx context.Context, start, end time.Time, supplierID *uuid.UUID) ([]inventory.MonthlyMovement, error) {
	var movements []inventory.MonthlyMovement
	query := r.db.WithContext(ctx).
		Model(&inventory.StockHistory{}).
		Select("TO_CHAR(created_at, 'YYYY-MM') AS month, "+
			"SUM(CASE WHEN delta > 0 THEN delta ELSE 0 END) AS stock_in, "+
			"SUM(CASE WHEN delta < 0 THEN -delta ELSE 0 END) AS stock_out").
		Where("created_at BETWEEN ? AND ?", start, end)
	if supplierID != nil {
		query = query.Where("supplier_id = ?", *supplierID)
	}
	err := query.
		Group("TO_CHAR(created_at, 'YYYY-MM')").
		Order("month ASC").
		Scan(&movements).Error
	if err != nil {
		return nil, err
	}
	return movements, nil
}

// PriceTrend averages an item's price snapshots per day
func (r *GormStockHistoryRepository) PriceTrend(ctx context.Context, itemID uuid.UUID, start, end time.Time, supplierID *uuid.UUID) ([]inventory.PricePoint, error) {
	var points []inventory.PricePoint
	query := r.db.WithContext(ctx).
		Model(&inventory.StockHistory{}).
		Select("TO_CHAR(created_at, 'YYYY-MM-DD') AS date, AVG(price_at_change) AS price").
		Where("item_id = ?", itemID).
		Where("created_at BETWEEN ? AND ?", start, end)
	if supplierID != nil {
		query = query.Where("supplier_id = ?", *supplierID)
	}
	err := query.
		Group("TO_CHAR(created_at, 'YYYY-MM-DD')").
		Order("date ASC").
		Scan(&points).Error
	if err != nil {
		return nil, err
	}
	return points, nil
}

// FindForValuation returns the event stream for cost replays: every entry up
// to the cutoff, grouped by item, oldest first within each item.
func (r *GormStockHistoryRepository) FindForValuation(ctx context.Context, until time.Time, supplierID *uuid.UUID) ([]inventory.StockHistory, error) {
	var entries []inventory.StockHistory
	query := r.db.WithContext(ctx).
		Model(&inventory.StockHistory{}).
		Where("created_at <= ?", until)
	if supplierID != nil {
		query = query.Where("supplier_id = ?", *supplierID)
	}
	err := query.
		Order("item_id ASC, created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *GormStockHistoryRepository) applyHistoryFilter(query *gorm.DB, filter inventory.HistoryFilter) *gorm.DB {
	if filter.ItemID != nil {
		query = query.Where("item_id = ?", *filter.ItemID)
	}
	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}
	if filter.Reason != nil {
		query = query.Where("reason = ?", *filter.Reason)
	}
	if filter.CreatedBy != "" {
		query = query.Where("created_by = ?", filter.CreatedBy)
	}
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}
	if filter.MinDelta != nil {
		query = query.Where("delta >= ?", *filter.MinDelta)
	}
	if filter.MaxDelta != nil {
		query = query.Where("delta <= ?", *filter.MaxDelta)
	}
	return query
}

var _ inventory.StockHistoryRepository = (*GormStockHistoryRepository)(nil)
