package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartsupplypro/inventory/internal/domain/inventory"
	"github.com/smartsupplypro/inventory/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedHistory(t *testing.T, store *memoryStore, itemID uuid.UUID, deltas []int, reason inventory.StockChangeReason) {
	t.Helper()
	for _, delta := range deltas {
		entry, err := inventory.NewStockHistory(itemID, uuid.New(), delta, reason, "alice", decimal.NewFromInt(5))
		require.NoError(t, err)
		require.NoError(t, store.Append(context.Background(), entry))
	}
}

func TestStockHistoryService_GetByItem(t *testing.T) {
	store := newMemoryStore()
	service := NewStockHistoryService(store)
	itemID := uuid.New()
	otherID := uuid.New()

	seedHistory(t, store, itemID, []int{10, -3}, inventory.ReasonManualUpdate)
	seedHistory(t, store, otherID, []int{7}, inventory.ReasonPurchase)

	entries, err := service.GetByItem(context.Background(), itemID, HistoryListFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 10, entries[0].Delta)
	assert.Equal(t, -3, entries[1].Delta)
}

func TestStockHistoryService_GetByReason(t *testing.T) {
	store := newMemoryStore()
	service := NewStockHistoryService(store)
	itemID := uuid.New()

	seedHistory(t, store, itemID, []int{10}, inventory.ReasonInitialStock)
	seedHistory(t, store, itemID, []int{-2, -1}, inventory.ReasonSold)

	entries, err := service.GetByReason(context.Background(), inventory.ReasonSold, HistoryListFilter{})
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	_, err = service.GetByReason(context.Background(), inventory.StockChangeReason("SHRINKAGE"), HistoryListFilter{})
	assert.True(t, shared.IsValidation(err))
}

func TestStockHistoryService_FindFiltered(t *testing.T) {
	store := newMemoryStore()
	service := NewStockHistoryService(store)
	itemID := uuid.New()
	otherID := uuid.New()

	seedHistory(t, store, itemID, []int{10}, inventory.ReasonInitialStock)
	seedHistory(t, store, itemID, []int{-2}, inventory.ReasonSold)
	seedHistory(t, store, otherID, []int{4}, inventory.ReasonPurchase)

	entries, err := service.FindFiltered(context.Background(), HistoryListFilter{ItemID: &itemID, Reason: "SOLD"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, -2, entries[0].Delta)

	_, err = service.FindFiltered(context.Background(), HistoryListFilter{Reason: "bogus"})
	assert.True(t, shared.IsValidation(err))
}

func TestStockHistoryService_CountByItem(t *testing.T) {
	store := newMemoryStore()
	service := NewStockHistoryService(store)
	itemID := uuid.New()

	seedHistory(t, store, itemID, []int{10, -3, 2}, inventory.ReasonManualUpdate)

	count, err := service.CountByItem(context.Background(), itemID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
