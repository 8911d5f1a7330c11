package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartsupplypro/inventory/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInventoryItem(t *testing.T) {
	supplierID := uuid.New()

	t.Run("creates item with valid fields", func(t *testing.T) {
		item, err := NewInventoryItem("Widget", 100, decimal.NewFromFloat(9.99), 25, supplierID, "alice")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, item.ID)
		assert.Equal(t, "Widget", item.Name)
		assert.Equal(t, 100, item.Quantity)
		assert.True(t, decimal.NewFromFloat(9.99).Equal(item.Price))
		assert.Equal(t, 25, item.MinimumQuantity)
		assert.Equal(t, supplierID, item.SupplierID)
		assert.Equal(t, "alice", item.CreatedBy)
		assert.Equal(t, "alice", item.UpdatedBy)
		assert.Equal(t, 1, item.Version)
	})

	t.Run("defaults minimum quantity when not positive", func(t *testing.T) {
		item, err := NewInventoryItem("Widget", 5, decimal.NewFromInt(3), 0, supplierID, "alice")
		require.NoError(t, err)
		assert.Equal(t, DefaultMinimumQuantity, item.MinimumQuantity)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := NewInventoryItem("  ", 5, decimal.NewFromInt(3), 10, supplierID, "alice")
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		_, err := NewInventoryItem("Widget", 5, decimal.Zero, 10, supplierID, "alice")
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		_, err := NewInventoryItem("Widget", -1, decimal.NewFromInt(3), 10, supplierID, "alice")
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("rejects missing supplier", func(t *testing.T) {
		_, err := NewInventoryItem("Widget", 5, decimal.NewFromInt(3), 10, uuid.Nil, "alice")
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("rejects missing creator", func(t *testing.T) {
		_, err := NewInventoryItem("Widget", 5, decimal.NewFromInt(3), 10, supplierID, "")
		assert.True(t, shared.IsValidation(err))
	})
}

func TestInventoryItem_AdjustQuantity(t *testing.T) {
	newItem := func(qty int) *InventoryItem {
		item, err := NewInventoryItem("Widget", qty, decimal.NewFromInt(5), 10, uuid.New(), "alice")
		require.NoError(t, err)
		return item
	}

	t.Run("applies positive delta", func(t *testing.T) {
		item := newItem(10)
		require.NoError(t, item.AdjustQuantity(5, "bob"))
		assert.Equal(t, 15, item.Quantity)
		assert.Equal(t, "bob", item.UpdatedBy)
	})

	t.Run("applies negative delta down to zero", func(t *testing.T) {
		item := newItem(10)
		require.NoError(t, item.AdjustQuantity(-10, "bob"))
		assert.Equal(t, 0, item.Quantity)
	})

	t.Run("rejects delta that would go negative and leaves state untouched", func(t *testing.T) {
		item := newItem(10)
		err := item.AdjustQuantity(-11, "bob")
		assert.True(t, shared.IsValidation(err))
		assert.Equal(t, 10, item.Quantity)
		assert.Equal(t, "alice", item.UpdatedBy)
	})

	t.Run("creator is write-once across updates", func(t *testing.T) {
		item := newItem(10)
		require.NoError(t, item.AdjustQuantity(1, "bob"))
		assert.Equal(t, "alice", item.CreatedBy)
	})
}

func TestInventoryItem_ChangePrice(t *testing.T) {
	item, err := NewInventoryItem("Widget", 10, decimal.NewFromInt(5), 10, uuid.New(), "alice")
	require.NoError(t, err)

	require.NoError(t, item.ChangePrice(decimal.NewFromFloat(7.50), "bob"))
	assert.True(t, decimal.NewFromFloat(7.50).Equal(item.Price))

	err = item.ChangePrice(decimal.NewFromInt(-1), "bob")
	assert.True(t, shared.IsValidation(err))
	assert.True(t, decimal.NewFromFloat(7.50).Equal(item.Price))
}

func TestInventoryItem_IsLowStock(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		minimum  int
		expected bool
	}{
		{"below threshold", 5, 10, true},
		{"at threshold", 10, 10, true},
		{"above threshold", 11, 10, false},
		{"zero stock", 0, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &InventoryItem{Quantity: tt.quantity, MinimumQuantity: tt.minimum}
			assert.Equal(t, tt.expected, item.IsLowStock())
		})
	}
}

func TestInventoryItem_IncrementVersion(t *testing.T) {
	item, err := NewInventoryItem("Widget", 10, decimal.NewFromInt(5), 10, uuid.New(), "alice")
	require.NoError(t, err)
	item.IncrementVersion()
	assert.Equal(t, 2, item.Version)
}
