package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartsupplypro/inventory/internal/domain/inventory"
)

// CreateItemRequest represents a request to create an inventory item
type CreateItemRequest struct {
	Name            string          `json:"name" binding:"required,max=255"`
	Quantity        int             `json:"quantity" binding:"min=0"`
	Price           decimal.Decimal `json:"price" binding:"required"`
	MinimumQuantity int             `json:"minimum_quantity"`
	SupplierID      uuid.UUID       `json:"supplier_id" binding:"required"`
}

// UpdateItemRequest represents a partial update; nil fields are left as-is.
// Identifier and creator metadata are immutable and cannot appear here.
type UpdateItemRequest struct {
	Name            *string          `json:"name" binding:"omitempty,max=255"`
	Quantity        *int             `json:"quantity" binding:"omitempty,min=0"`
	Price           *decimal.Decimal `json:"price"`
	MinimumQuantity *int             `json:"minimum_quantity"`
	SupplierID      *uuid.UUID       `json:"supplier_id"`
}

// AdjustQuantityRequest represents a signed stock adjustment. A zero delta
// is accepted and still recorded in the ledger.
type AdjustQuantityRequest struct {
	Delta  int    `json:"delta"`
	Reason string `json:"reason" binding:"required,stockreason"`
}

// UpdatePriceRequest represents a unit price change
type UpdatePriceRequest struct {
	Price decimal.Decimal `json:"price" binding:"required"`
}

// ItemListFilter represents filter options for the item list
type ItemListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ItemResponse represents an inventory item in API responses
type ItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Quantity        int             `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	MinimumQuantity int             `json:"minimum_quantity"`
	SupplierID      uuid.UUID       `json:"supplier_id"`
	IsLowStock      bool            `json:"is_low_stock"`
	CreatedBy       string          `json:"created_by"`
	UpdatedBy       string          `json:"updated_by"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Version         int             `json:"version"`
}

// StockHistoryResponse represents a ledger entry in API responses
type StockHistoryResponse struct {
	ID            uuid.UUID       `json:"id"`
	ItemID        uuid.UUID       `json:"item_id"`
	SupplierID    uuid.UUID       `json:"supplier_id"`
	Delta         int             `json:"delta"`
	Reason        string          `json:"reason"`
	CreatedBy     string          `json:"created_by"`
	PriceAtChange decimal.Decimal `json:"price_at_change"`
	CreatedAt     time.Time       `json:"created_at"`
}

// HistoryListFilter represents filter options for ledger queries
type HistoryListFilter struct {
	ItemID     *uuid.UUID `form:"item_id"`
	SupplierID *uuid.UUID `form:"supplier_id"`
	Reason     string     `form:"reason"`
	CreatedBy  string     `form:"created_by"`
	StartDate  *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate    *time.Time `form:"end_date" time_format:"2006-01-02"`
	MinDelta   *int       `form:"min_delta"`
	MaxDelta   *int       `form:"max_delta"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ToItemResponse maps a domain item to its response representation
func ToItemResponse(item *inventory.InventoryItem) ItemResponse {
	return ItemResponse{
		ID:              item.ID,
		Name:            item.Name,
		Quantity:        item.Quantity,
		Price:           item.Price,
		MinimumQuantity: item.MinimumQuantity,
		SupplierID:      item.SupplierID,
		IsLowStock:      item.IsLowStock(),
		CreatedBy:       item.CreatedBy,
		UpdatedBy:       item.UpdatedBy,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
		Version:         item.Version,
	}
}

// ToItemResponses maps a slice of domain items
func ToItemResponses(items []inventory.InventoryItem) []ItemResponse {
	responses := make([]ItemResponse, len(items))
	for i := range items {
		responses[i] = ToItemResponse(&items[i])
	}
	return responses
}

// ToStockHistoryResponse maps a ledger entry to its response representation
func ToStockHistoryResponse(entry *inventory.StockHistory) StockHistoryResponse {
	return StockHistoryResponse{
		ID:            entry.ID,
		ItemID:        entry.ItemID,
		SupplierID:    entry.SupplierID,
		Delta:         entry.Delta,
		Reason:        entry.Reason.String(),
		CreatedBy:     entry.CreatedBy,
		PriceAtChange: entry.PriceAtChange,
		CreatedAt:     entry.CreatedAt,
	}
}

// ToStockHistoryResponses maps a slice of ledger entries
func ToStockHistoryResponses(entries []inventory.StockHistory) []StockHistoryResponse {
	responses := make([]StockHistoryResponse, len(entries))
	for i := range entries {
		responses[i] = ToStockHistoryResponse(&entries[i])
	}
	return responses
}
