package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartsupplypro/inventory/internal/domain/inventory"
	"github.com/smartsupplypro/inventory/internal/domain/shared"
)

// wacScale is the number of decimal places in a weighted average cost
const wacScale = 4

// defaultWindowDays is the reporting window applied when a time-series query
// omits its date range
const defaultWindowDays = 30

// Dashboard top-N limits
const (
	dashboardLowStockLimit   = 3
	dashboardTopUpdatedLimit = 5
)

// AnalyticsService is the read-only side: weighted average cost, low stock
// detection, and ledger activity. It never writes.
type AnalyticsService struct {
	itemRepo    inventory.InventoryItemRepository
	historyRepo inventory.StockHistoryRepository
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(
	itemRepo inventory.InventoryItemRepository,
	historyRepo inventory.StockHistoryRepository,
) *AnalyticsService {
	return &AnalyticsService{
		itemRepo:    itemRepo,
		historyRepo: historyRepo,
	}
}

// CalculateWAC replays the item's ledger and blends every stock-in entry
// into a quantity-weighted mean purchase price. Price-only and outbound
// entries are excluded. Returns zero when nothing was ever stocked in.
// Works for deleted items too, since the ledger outlives them.
func (s *AnalyticsService) CalculateWAC(ctx context.Context, itemID uuid.UUID) (decimal.Decimal, error) {
	entries, err := s.historyRepo.FindByItem(ctx, itemID, shared.Filter{})
	if err != nil {
		return decimal.Zero, err
	}

	totalCost := decimal.Zero
	totalQuantity := decimal.Zero
	for _, entry := range entries {
		if entry.Delta <= 0 {
			continue
		}
		quantity := decimal.NewFromInt(int64(entry.Delta))
		totalCost = totalCost.Add(entry.PriceAtChange.Mul(quantity))
		totalQuantity = totalQuantity.Add(quantity)
	}

	if totalQuantity.IsZero() {
		return decimal.Zero, nil
	}
	// DivRound rounds half away from zero; for this positive domain that is
	// round-half-up.
	return totalCost.DivRound(totalQuantity, wacScale), nil
}

// LowStock returns items whose quantity is at or below their reorder
// threshold
func (s *AnalyticsService) LowStock(ctx context.Context, filter shared.Filter) ([]LowStockItem, error) {
	items, err := s.itemRepo.FindBelowMinimum(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toLowStockItems(items), nil
}

// ActivityCount counts an item's ledger entries as a proxy for transaction
// velocity
func (s *AnalyticsService) ActivityCount(ctx context.Context, itemID uuid.UUID) (int64, error) {
	return s.historyRepo.CountByItem(ctx, itemID)
}

// ItemUpdateFrequency returns per-item ledger entry counts, most active
// first
func (s *AnalyticsService) ItemUpdateFrequency(ctx context.Context, limit int) ([]ItemFrequency, error) {
	if limit <= 0 {
		limit = 20
	}
	activities, err := s.historyRepo.CountByItemGrouped(ctx, limit)
	if err != nil {
		return nil, err
	}

	frequencies := make([]ItemFrequency, len(activities))
	for i, activity := range activities {
		frequencies[i] = ItemFrequency{ItemID: activity.ItemID, UpdateCount: activity.Count}
	}
	return frequencies, nil
}

// StockValueOverTime returns the daily total value of ledger movements,
// valued at each entry's price snapshot. A missing range defaults to the
// last thirty days.
func (s *AnalyticsService) StockValueOverTime(ctx context.Context, start, end *time.Time, supplierID *uuid.UUID) ([]StockValuePoint, error) {
	from, to, err := resolveWindow(start, end)
	if err != nil {
		return nil, err
	}

	values, err := s.historyRepo.StockValueByDay(ctx, from, to, supplierID)
	if err != nil {
		return nil, err
	}

	points := make([]StockValuePoint, len(values))
	for i, value := range values {
		points[i] = StockValuePoint{Date: value.Date, TotalValue: value.TotalValue}
	}
	return points, nil
}

// StockPerSupplier returns the current quantity held per supplier, largest
// holding first
func (s *AnalyticsService) StockPerSupplier(ctx context.Context) ([]SupplierStockTotal, error) {
	stocks, err := s.itemRepo.TotalPerSupplier(ctx)
	if err != nil {
		return nil, err
	}

	totals := make([]SupplierStockTotal, len(stocks))
	for i, stock := range stocks {
		totals[i] = SupplierStockTotal{
			SupplierID:    stock.SupplierID,
			SupplierName:  stock.SupplierName,
			TotalQuantity: stock.TotalQuantity,
		}
	}
	return totals, nil
}

// MonthlyStockMovement returns inbound and outbound quantities per month.
// A missing range defaults to the last thirty days.
func (s *AnalyticsService) MonthlyStockMovement(ctx context.Context, start, end *time.Time, supplierID *uuid.UUID) ([]MonthlyMovementPoint, error) {
	from, to, err := resolveWindow(start, end)
	if err != nil {
		return nil, err
	}

	movements, err := s.historyRepo.MovementByMonth(ctx, from, to, supplierID)
	if err != nil {
		return nil, err
	}

	points := make([]MonthlyMovementPoint, len(movements))
	for i, movement := range movements {
		points[i] = MonthlyMovementPoint{
			Month:    movement.Month,
			StockIn:  movement.StockIn,
			StockOut: movement.StockOut,
		}
	}
	return points, nil
}

// PriceTrend returns the daily average price snapshot for one item. The item
// and both range bounds are required.
func (s *AnalyticsService) PriceTrend(ctx context.Context, itemID uuid.UUID, start, end *time.Time, supplierID *uuid.UUID) ([]PriceTrendPoint, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewValidationError("MISSING_ITEM", "Item ID is required")
	}
	if start == nil || end == nil {
		return nil, shared.NewValidationError("MISSING_DATE_RANGE", "Start and end dates are required")
	}
	if start.After(*end) {
		return nil, shared.NewValidationError("INVALID_DATE_RANGE", "Start date must be on or before end date")
	}

	trend, err := s.historyRepo.PriceTrend(ctx, itemID, *start, endOfDay(*end), supplierID)
	if err != nil {
		return nil, err
	}

	points := make([]PriceTrendPoint, len(trend))
	for i, point := range trend {
		points[i] = PriceTrendPoint{Date: point.Date, Price: point.Price}
	}
	return points, nil
}

// DashboardSummary bundles the headline analytics: stock per supplier, the
// most starved items, the monthly movement series and the most updated items
func (s *AnalyticsService) DashboardSummary(ctx context.Context, start, end *time.Time, supplierID *uuid.UUID) (*DashboardSummary, error) {
	perSupplier, err := s.StockPerSupplier(ctx)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.LowStock(ctx, shared.Filter{Page: 1, PageSize: dashboardLowStockLimit})
	if err != nil {
		return nil, err
	}

	movement, err := s.MonthlyStockMovement(ctx, start, end, supplierID)
	if err != nil {
		return nil, err
	}

	topUpdated, err := s.ItemUpdateFrequency(ctx, dashboardTopUpdatedLimit)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		StockPerSupplier:     perSupplier,
		LowStockItems:        lowStock,
		MonthlyStockMovement: movement,
		TopUpdatedItems:      topUpdated,
	}, nil
}

// resolveWindow fills in a reporting window: a missing end means now, a
// missing start means thirty days before the end. The end bound is extended
// to the end of its day so a date-only bound stays inclusive.
func resolveWindow(start, end *time.Time) (time.Time, time.Time, error) {
	to := time.Now()
	if end != nil {
		to = *end
	}
	from := to.AddDate(0, 0, -defaultWindowDays)
	if start != nil {
		from = *start
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, shared.NewValidationError("INVALID_DATE_RANGE", "Start date must be on or before end date")
	}
	return from, endOfDay(to), nil
}

// endOfDay returns the last nanosecond of the instant's calendar day
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
