package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartsupplypro/inventory/internal/domain/shared"
)

// DefaultMinimumQuantity is applied when an item is created or updated without
// an explicit reorder threshold.
const DefaultMinimumQuantity = 10

// InventoryItem is the aggregate root for stock state. Quantity is derived
// state: it must always equal the sum of ledger deltas for the item.
type InventoryItem struct {
	shared.BaseEntity
	Name            string          `gorm:"type:varchar(255);not null;index:idx_inventory_items_name"`
	Quantity        int             `gorm:"not null;default:0"`
	Price           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MinimumQuantity int             `gorm:"not null;default:10"`
	SupplierID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedBy       string          `gorm:"type:varchar(255);not null"` // write-once
	UpdatedBy       string          `gorm:"type:varchar(255);not null"`
	Version         int             `gorm:"not null;default:1"` // optimistic lock
}

// TableName returns the table name for GORM
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// NewInventoryItem creates a new item with its initial state. The caller is
// responsible for recording the INITIAL_STOCK ledger entry in the same
// transaction.
func NewInventoryItem(name string, quantity int, price decimal.Decimal, minimumQuantity int, supplierID uuid.UUID, createdBy string) (*InventoryItem, error) {
	if err := ValidateItemBase(name, quantity, price, supplierID); err != nil {
		return nil, err
	}
	if createdBy == "" {
		return nil, shared.NewValidationError("MISSING_ACTOR", "Creator identity is required")
	}
	if minimumQuantity <= 0 {
		minimumQuantity = DefaultMinimumQuantity
	}

	return &InventoryItem{
		BaseEntity:      shared.NewBaseEntity(),
		Name:            name,
		Quantity:        quantity,
		Price:           price,
		MinimumQuantity: minimumQuantity,
		SupplierID:      supplierID,
		CreatedBy:       createdBy,
		UpdatedBy:       createdBy,
		Version:         1,
	}, nil
}

// AdjustQuantity applies a signed delta to the stock level. The resulting
// quantity must not go negative; on rejection the item is unchanged.
func (i *InventoryItem) AdjustQuantity(delta int, updatedBy string) error {
	final := i.Quantity + delta
	if err := ValidateFinalQuantity(final); err != nil {
		return err
	}
	i.Quantity = final
	i.touch(updatedBy)
	return nil
}

// ChangePrice replaces the unit price. The price must stay positive.
func (i *InventoryItem) ChangePrice(price decimal.Decimal, updatedBy string) error {
	if err := ValidatePrice(price); err != nil {
		return err
	}
	i.Price = price
	i.touch(updatedBy)
	return nil
}

// Rename changes the display name
func (i *InventoryItem) Rename(name string, updatedBy string) error {
	if name == "" {
		return shared.NewValidationError("INVALID_NAME", "Item name cannot be blank")
	}
	i.Name = name
	i.touch(updatedBy)
	return nil
}

// SetMinimumQuantity sets the reorder threshold, falling back to the default
// when the given value is not positive
func (i *InventoryItem) SetMinimumQuantity(minimumQuantity int, updatedBy string) {
	if minimumQuantity <= 0 {
		minimumQuantity = DefaultMinimumQuantity
	}
	i.MinimumQuantity = minimumQuantity
	i.touch(updatedBy)
}

// IsLowStock returns true when the stock level is at or below the reorder
// threshold
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.MinimumQuantity
}

// IncrementVersion bumps the optimistic lock counter. Repositories compare
// the previous value on save.
func (i *InventoryItem) IncrementVersion() {
	i.Version++
}

func (i *InventoryItem) touch(updatedBy string) {
	if updatedBy != "" {
		i.UpdatedBy = updatedBy
	}
	i.UpdatedAt = time.Now()
}
