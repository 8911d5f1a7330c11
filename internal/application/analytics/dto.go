package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartsupplypro/inventory/internal/domain/inventory"
)

// RangeQuery is the optional reporting window accepted by the time-series
// endpoints; missing bounds fall back to the last thirty days
type RangeQuery struct {
	StartDate  *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate    *time.Time `form:"end_date" time_format:"2006-01-02"`
	SupplierID *uuid.UUID `form:"supplier_id"`
}

// PriceTrendQuery is the reporting window for the price-trend endpoint;
// both bounds are required
type PriceTrendQuery struct {
	StartDate  *time.Time `form:"start_date" time_format:"2006-01-02" binding:"required"`
	EndDate    *time.Time `form:"end_date" time_format:"2006-01-02" binding:"required"`
	SupplierID *uuid.UUID `form:"supplier_id"`
}

// FinancialSummaryQuery is the reporting period for the financial summary;
// both bounds are required
type FinancialSummaryQuery struct {
	From       *time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To         *time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
	SupplierID *uuid.UUID `form:"supplier_id"`
}

// LowStockQuery is the paging query for the low-stock endpoint
type LowStockQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// WACResponse carries a computed weighted average cost
type WACResponse struct {
	ItemID uuid.UUID       `json:"item_id"`
	WAC    decimal.Decimal `json:"wac"`
}

// LowStockItem is an item at or below its reorder threshold
type LowStockItem struct {
	ItemID          uuid.UUID       `json:"item_id"`
	Name            string          `json:"name"`
	Quantity        int             `json:"quantity"`
	MinimumQuantity int             `json:"minimum_quantity"`
	Price           decimal.Decimal `json:"price"`
	SupplierID      uuid.UUID       `json:"supplier_id"`
}

// ItemFrequency is a per-item ledger activity count
type ItemFrequency struct {
	ItemID      uuid.UUID `json:"item_id"`
	UpdateCount int64     `json:"update_count"`
}

// StockValuePoint is one day of the stock-value time series
type StockValuePoint struct {
	Date       string          `json:"date"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// SupplierStockTotal is the summed live quantity held for one supplier
type SupplierStockTotal struct {
	SupplierID    uuid.UUID `json:"supplier_id"`
	SupplierName  string    `json:"supplier_name"`
	TotalQuantity int64     `json:"total_quantity"`
}

// MonthlyMovementPoint is one month of the inbound/outbound series
type MonthlyMovementPoint struct {
	Month    string `json:"month"`
	StockIn  int64  `json:"stock_in"`
	StockOut int64  `json:"stock_out"`
}

// PriceTrendPoint is the average price snapshot for one day
type PriceTrendPoint struct {
	Date  string          `json:"date"`
	Price decimal.Decimal `json:"price"`
}

// FinancialSummary is the weighted-average-cost view of a period: opening
// state, purchases, returns, cost of goods sold, write-offs and ending state
type FinancialSummary struct {
	Method        string          `json:"method"`
	FromDate      string          `json:"from_date"`
	ToDate        string          `json:"to_date"`
	OpeningQty    int64           `json:"opening_qty"`
	OpeningValue  decimal.Decimal `json:"opening_value"`
	PurchasesQty  int64           `json:"purchases_qty"`
	PurchasesCost decimal.Decimal `json:"purchases_cost"`
	ReturnsInQty  int64           `json:"returns_in_qty"`
	ReturnsInCost decimal.Decimal `json:"returns_in_cost"`
	COGSQty       int64           `json:"cogs_qty"`
	COGSCost      decimal.Decimal `json:"cogs_cost"`
	WriteOffQty   int64           `json:"write_off_qty"`
	WriteOffCost  decimal.Decimal `json:"write_off_cost"`
	EndingQty     int64           `json:"ending_qty"`
	EndingValue   decimal.Decimal `json:"ending_value"`
}

// DashboardSummary bundles the headline analytics for one screen
type DashboardSummary struct {
	StockPerSupplier     []SupplierStockTotal   `json:"stock_per_supplier"`
	LowStockItems        []LowStockItem         `json:"low_stock_items"`
	MonthlyStockMovement []MonthlyMovementPoint `json:"monthly_stock_movement"`
	TopUpdatedItems      []ItemFrequency        `json:"top_updated_items"`
}

func toLowStockItems(items []inventory.InventoryItem) []LowStockItem {
	result := make([]LowStockItem, len(items))
	for i, item := range items {
		result[i] = LowStockItem{
			ItemID:          item.ID,
			Name:            item.Name,
			Quantity:        item.Quantity,
			MinimumQuantity: item.MinimumQuantity,
			Price:           item.Price,
			SupplierID:      item.SupplierID,
		}
	}
	return result
}
