package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/smartsupplypro/inventory/internal/application/inventory"
	"github.com/smartsupplypro/inventory/internal/domain/inventory"
)

// StockHistoryHandler handles ledger API endpoints. All endpoints are
// read-only; entries come into existence only through item mutations.
type StockHistoryHandler struct {
	BaseHandler
	historyService *inventoryapp.StockHistoryService
}

// NewStockHistoryHandler creates a new StockHistoryHandler
func NewStockHistoryHandler(historyService *inventoryapp.StockHistoryService) *StockHistoryHandler {
	return &StockHistoryHandler{historyService: historyService}
}

// RegisterRoutes registers the ledger routes
func (h *StockHistoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/items/:id/history", h.ListByItem)
	rg.GET("/items/:id/history/count", h.CountByItem)

	history := rg.Group("/history")
	{
		history.GET("", h.ListFiltered)
		history.GET("/reason/:reason", h.ListByReason)
	}
}

// ListByItem returns an item's full timeline, oldest first. Works for
// deleted items too.
func (h *StockHistoryHandler) ListByItem(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var filter inventoryapp.HistoryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	entries, err := h.historyService.GetByItem(c.Request.Context(), id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// ListByReason returns entries with the given reason, newest first
func (h *StockHistoryHandler) ListByReason(c *gin.Context) {
	reason := inventory.StockChangeReason(c.Param("reason"))
	var filter inventoryapp.HistoryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	entries, err := h.historyService.GetByReason(c.Request.Context(), reason, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// ListFiltered returns entries matching the combined query filter
func (h *StockHistoryHandler) ListFiltered(c *gin.Context) {
	var filter inventoryapp.HistoryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	entries, err := h.historyService.FindFiltered(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// CountByItem returns the number of ledger entries for an item
func (h *StockHistoryHandler) CountByItem(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	count, err := h.historyService.CountByItem(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"item_id": id, "count": count})
}
