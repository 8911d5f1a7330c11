package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	inventoryapp "github.com/smartsupplypro/inventory/internal/application/inventory"
	"github.com/smartsupplypro/inventory/internal/domain/inventory"
	"github.com/smartsupplypro/inventory/internal/domain/partner"
	"github.com/smartsupplypro/inventory/internal/domain/shared"
	"github.com/smartsupplypro/inventory/internal/interfaces/http/dto"
	"github.com/smartsupplypro/inventory/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryItemRepo is an in-memory InventoryItemRepository
type memoryItemRepo struct {
	items map[uuid.UUID]inventory.InventoryItem
}

func newMemoryItemRepo() *memoryItemRepo {
	return &memoryItemRepo{items: make(map[uuid.UUID]inventory.InventoryItem)}
}

func (r *memoryItemRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	if item, ok := r.items[id]; ok {
		copied := item
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memoryItemRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	return r.FindByID(ctx, id)
}

func (r *memoryItemRepo) FindAll(_ context.Context, _ shared.Filter) ([]inventory.InventoryItem, error) {
	result := make([]inventory.InventoryItem, 0, len(r.items))
	for _, item := range r.items {
		result = append(result, item)
	}
	return result, nil
}

func (r *memoryItemRepo) FindDuplicate(_ context.Context, name string, price decimal.Decimal, excludeID uuid.UUID) (*inventory.InventoryItem, error) {
	for _, item := range r.items {
		if item.ID == excludeID {
			continue
		}
		if strings.EqualFold(item.Name, name) && item.Price.Equal(price) {
			copied := item
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memoryItemRepo) FindBelowMinimum(_ context.Context, filter shared.Filter) ([]inventory.InventoryItem, error) {
	var result []inventory.InventoryItem
	for _, item := range r.items {
		if item.IsLowStock() {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := filter.Offset()
		if offset >= len(result) {
			return nil, nil
		}
		upper := offset + filter.PageSize
		if upper > len(result) {
			upper = len(result)
		}
		result = result[offset:upper]
	}
	return result, nil
}

func (r *memoryItemRepo) SearchByName(_ context.Context, name string, _ shared.Filter) ([]inventory.InventoryItem, error) {
	var result []inventory.InventoryItem
	for _, item := range r.items {
		if strings.Contains(strings.ToLower(item.Name), strings.ToLower(name)) {
			result = append(result, item)
		}
	}
	return result, nil
}

func (r *memoryItemRepo) Save(_ context.Context, item *inventory.InventoryItem) error {
	r.items[item.ID] = *item
	return nil
}

func (r *memoryItemRepo) SaveWithVersion(_ context.Context, item *inventory.InventoryItem) error {
	stored, ok := r.items[item.ID]
	if !ok || stored.Version != item.Version-1 {
		return shared.ErrConcurrencyConflict
	}
	r.items[item.ID] = *item
	return nil
}

func (r *memoryItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memoryItemRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *memoryItemRepo) TotalPerSupplier(_ context.Context) ([]inventory.SupplierStock, error) {
	return nil, nil
}

// memoryHistoryRepo is an in-memory append-only StockHistoryRepository
type memoryHistoryRepo struct {
	entries []inventory.StockHistory
}

func (r *memoryHistoryRepo) Append(_ context.Context, entry *inventory.StockHistory) error {
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memoryHistoryRepo) FindByItem(_ context.Context, itemID uuid.UUID, _ shared.Filter) ([]inventory.StockHistory, error) {
	var result []inventory.StockHistory
	for _, entry := range r.entries {
		if entry.ItemID == itemID {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (r *memoryHistoryRepo) FindByReason(_ context.Context, reason inventory.StockChangeReason, _ shared.Filter) ([]inventory.StockHistory, error) {
	var result []inventory.StockHistory
	for _, entry := range r.entries {
		if entry.Reason == reason {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (r *memoryHistoryRepo) FindFiltered(_ context.Context, filter inventory.HistoryFilter) ([]inventory.StockHistory, error) {
	var result []inventory.StockHistory
	for _, entry := range r.entries {
		if filter.ItemID != nil && entry.ItemID != *filter.ItemID {
			continue
		}
		if filter.Reason != nil && entry.Reason != *filter.Reason {
			continue
		}
		result = append(result, entry)
	}
	return result, nil
}

func (r *memoryHistoryRepo) CountByItem(_ context.Context, itemID uuid.UUID) (int64, error) {
	var count int64
	for _, entry := range r.entries {
		if entry.ItemID == itemID {
			count++
		}
	}
	return count, nil
}

func (r *memoryHistoryRepo) CountByItemGrouped(_ context.Context, _ int) ([]inventory.ItemActivity, error) {
	return nil, nil
}

func (r *memoryHistoryRepo) StockValueByDay(_ context.Context, _, _ time.Time, _ *uuid.UUID) ([]inventory.DailyStockValue, error) {
	return nil, nil
}

func (r *memoryHistoryRepo) MovementByMonth(_ context.Context, _, _ time.Time, _ *uuid.UUID) ([]inventory.MonthlyMovement, error) {
	return nil, nil
}

func (r *memoryHistoryRepo) PriceTrend(_ context.Context, _ uuid.UUID, _, _ time.Time, _ *uuid.UUID) ([]inventory.PricePoint, error) {
	return nil, nil
}

func (r *memoryHistoryRepo) FindForValuation(_ context.Context, _ time.Time, _ *uuid.UUID) ([]inventory.StockHistory, error) {
	return append([]inventory.StockHistory(nil), r.entries...), nil
}

// fakeSupplierRepo accepts every supplier ID except the configured one
type fakeSupplierRepo struct {
	partner.SupplierRepository
	missing uuid.UUID
}

func (r *fakeSupplierRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	return id != r.missing, nil
}

type handlerFixture struct {
	engine      *gin.Engine
	itemRepo    *memoryItemRepo
	historyRepo *memoryHistoryRepo
	supplierID  uuid.UUID
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	itemRepo := newMemoryItemRepo()
	historyRepo := &memoryHistoryRepo{}
	scope := inventoryapp.NewNoOpTransactionScope(itemRepo, historyRepo)
	itemService := inventoryapp.NewInventoryItemService(scope, itemRepo, &fakeSupplierRepo{})
	historyService := inventoryapp.NewStockHistoryService(historyRepo)

	engine := gin.New()
	api := engine.Group("/api/v1")
	NewInventoryItemHandler(itemService).RegisterRoutes(api)
	NewStockHistoryHandler(historyService).RegisterRoutes(api)

	return &handlerFixture{
		engine:      engine,
		itemRepo:    itemRepo,
		historyRepo: historyRepo,
		supplierID:  uuid.New(),
	}
}

func (f *handlerFixture) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func (f *handlerFixture) createItem(t *testing.T, name string, quantity int) uuid.UUID {
	t.Helper()
	w := f.request(t, http.MethodPost, "/api/v1/items", gin.H{
		"name":        name,
		"quantity":    quantity,
		"price":       "9.50",
		"supplier_id": f.supplierID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data inventoryapp.ItemResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data.ID
}

func TestInventoryItemHandler_Create(t *testing.T) {
	t.Run("creates an item and seeds its ledger", func(t *testing.T) {
		fixture := newHandlerFixture(t)

		itemID := fixture.createItem(t, "Widget", 25)

		require.Len(t, fixture.historyRepo.entries, 1)
		entry := fixture.historyRepo.entries[0]
		assert.Equal(t, itemID, entry.ItemID)
		assert.Equal(t, 25, entry.Delta)
		assert.Equal(t, inventory.ReasonInitialStock, entry.Reason)
	})

	t.Run("rejects a missing name", func(t *testing.T) {
		fixture := newHandlerFixture(t)

		w := fixture.request(t, http.MethodPost, "/api/v1/items", gin.H{
			"quantity":    5,
			"price":       "9.50",
			"supplier_id": fixture.supplierID,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns 409 for a duplicate name and price", func(t *testing.T) {
		fixture := newHandlerFixture(t)
		fixture.createItem(t, "Widget", 25)

		w := fixture.request(t, http.MethodPost, "/api/v1/items", gin.H{
			"name":        "widget",
			"quantity":    5,
			"price":       "9.50",
			"supplier_id": fixture.supplierID,
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, "DUPLICATE_ITEM", resp.Error.Code)
	})
}

func TestInventoryItemHandler_Get(t *testing.T) {
	t.Run("returns an existing item", func(t *testing.T) {
		fixture := newHandlerFixture(t)
		itemID := fixture.createItem(t, "Widget", 25)

		w := fixture.request(t, http.MethodGet, "/api/v1/items/"+itemID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("returns 404 for an unknown item", func(t *testing.T) {
		fixture := newHandlerFixture(t)

		w := fixture.request(t, http.MethodGet, "/api/v1/items/"+uuid.NewString(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns 400 for a malformed ID", func(t *testing.T) {
		fixture := newHandlerFixture(t)

		w := fixture.request(t, http.MethodGet, "/api/v1/items/not-a-uuid", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestInventoryItemHandler_AdjustQuantity(t *testing.T) {
	t.Run("applies a delta and records it", func(t *testing.T) {
		fixture := newHandlerFixture(t)
		itemID := fixture.createItem(t, "Widget", 10)

		w := fixture.request(t, http.MethodPost, "/api/v1/items/"+itemID.String()+"/adjust", gin.H{
			"delta":  -4,
			"reason": "SOLD",
		})

		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp struct {
			Data inventoryapp.ItemResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 6, resp.Data.Quantity)
		require.Len(t, fixture.historyRepo.entries, 2)
		assert.Equal(t, -4, fixture.historyRepo.entries[1].Delta)
	})

	t.Run("rejects an unknown reason", func(t *testing.T) {
		fixture := newHandlerFixture(t)
		itemID := fixture.createItem(t, "Widget", 10)

		w := fixture.request(t, http.MethodPost, "/api/v1/items/"+itemID.String()+"/adjust", gin.H{
			"delta":  1,
			"reason": "FELL_OFF_TRUCK",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects a delta that would go negative", func(t *testing.T) {
		fixture := newHandlerFixture(t)
		itemID := fixture.createItem(t, "Widget", 3)

		w := fixture.request(t, http.MethodPost, "/api/v1/items/"+itemID.String()+"/adjust", gin.H{
			"delta":  -5,
			"reason": "SOLD",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		// ledger keeps only the creation entry
		assert.Len(t, fixture.historyRepo.entries, 1)
	})
}

func TestInventoryItemHandler_Delete(t *testing.T) {
	t.Run("writes off stock and removes the item", func(t *testing.T) {
		fixture := newHandlerFixture(t)
		itemID := fixture.createItem(t, "Widget", 15)

		w := fixture.request(t, http.MethodDelete, "/api/v1/items/"+itemID.String()+"?reason=SCRAPPED", nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
		require.Len(t, fixture.historyRepo.entries, 2)
		assert.Equal(t, -15, fixture.historyRepo.entries[1].Delta)

		get := fixture.request(t, http.MethodGet, "/api/v1/items/"+itemID.String(), nil)
		assert.Equal(t, http.StatusNotFound, get.Code)
	})

	t.Run("rejects a reason outside the deletion set", func(t *testing.T) {
		fixture := newHandlerFixture(t)
		itemID := fixture.createItem(t, "Widget", 15)

		w := fixture.request(t, http.MethodDelete, "/api/v1/items/"+itemID.String()+"?reason=SOLD", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Len(t, fixture.historyRepo.entries, 1)
	})

	t.Run("requires a reason", func(t *testing.T) {
		fixture := newHandlerFixture(t)
		itemID := fixture.createItem(t, "Widget", 15)

		w := fixture.request(t, http.MethodDelete, "/api/v1/items/"+itemID.String(), nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestStockHistoryHandler_ListByItem(t *testing.T) {
	t.Run("returns the timeline of a deleted item", func(t *testing.T) {
		fixture := newHandlerFixture(t)
		itemID := fixture.createItem(t, "Widget", 15)
		fixture.request(t, http.MethodDelete, "/api/v1/items/"+itemID.String()+"?reason=SCRAPPED", nil)

		w := fixture.request(t, http.MethodGet, "/api/v1/items/"+itemID.String()+"/history", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data []inventoryapp.StockHistoryResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 2)
		assert.Equal(t, 15, resp.Data[0].Delta)
		assert.Equal(t, -15, resp.Data[1].Delta)
	})
}

func TestStockHistoryHandler_ListByReason(t *testing.T) {
	t.Run("rejects an unknown reason", func(t *testing.T) {
		fixture := newHandlerFixture(t)

		w := fixture.request(t, http.MethodGet, "/api/v1/history/reason/NOT_A_REASON", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
