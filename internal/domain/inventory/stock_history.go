package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartsupplypro/inventory/internal/domain/shared"
)

// StockHistory is one immutable entry in the append-only stock ledger. Every
// material state change of an item produces exactly one entry; entries are
// never updated or deleted, even when the item itself is removed.
type StockHistory struct {
	shared.BaseEntity
	ItemID        uuid.UUID         `gorm:"type:uuid;not null;index:idx_stock_history_item_created,priority:1"`
	SupplierID    uuid.UUID         `gorm:"type:uuid;not null;index"` // denormalized from the item at write time
	Delta         int               `gorm:"not null"`
	Reason        StockChangeReason `gorm:"type:varchar(32);not null;index"`
	CreatedBy     string            `gorm:"type:varchar(255);not null"`
	PriceAtChange decimal.Decimal   `gorm:"type:decimal(12,2);not null"` // unit price snapshot
}

// TableName returns the table name for GORM
func (StockHistory) TableName() string {
	return "stock_history"
}

// NewStockHistory creates a validated ledger entry
func NewStockHistory(itemID, supplierID uuid.UUID, delta int, reason StockChangeReason, createdBy string, priceAtChange decimal.Decimal) (*StockHistory, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewValidationError("MISSING_ITEM", "Item ID is required")
	}
	if err := ValidateHistoryEntry(delta, reason, createdBy); err != nil {
		return nil, err
	}
	if priceAtChange.IsNegative() {
		return nil, shared.NewValidationError("INVALID_PRICE", "Price snapshot cannot be negative")
	}

	return &StockHistory{
		BaseEntity:    shared.NewBaseEntity(),
		ItemID:        itemID,
		SupplierID:    supplierID,
		Delta:         delta,
		Reason:        reason,
		CreatedBy:     createdBy,
		PriceAtChange: priceAtChange,
	}, nil
}

// IsInbound returns true for entries that add stock
func (h *StockHistory) IsInbound() bool {
	return h.Delta > 0
}

// IsOutbound returns true for entries that remove stock
func (h *StockHistory) IsOutbound() bool {
	return h.Delta < 0
}
