package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/smartsupplypro/inventory/internal/application/inventory"
	"github.com/smartsupplypro/inventory/internal/domain/inventory"
	"github.com/smartsupplypro/inventory/internal/interfaces/http/dto"
	"github.com/smartsupplypro/inventory/internal/interfaces/http/middleware"
)

// InventoryItemHandler handles item API endpoints
type InventoryItemHandler struct {
	BaseHandler
	itemService *inventoryapp.InventoryItemService
}

// NewInventoryItemHandler creates a new InventoryItemHandler
func NewInventoryItemHandler(itemService *inventoryapp.InventoryItemService) *InventoryItemHandler {
	return &InventoryItemHandler{itemService: itemService}
}

// RegisterRoutes registers the item routes
func (h *InventoryItemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/items")
	{
		items.GET("", h.List)
		items.POST("", h.Create)
		items.GET("/search", h.Search)
		items.GET("/:id", h.Get)
		items.PUT("/:id", h.Update)
		items.DELETE("/:id", h.Delete)
		items.POST("/:id/adjust", h.AdjustQuantity)
		items.PATCH("/:id/price", h.UpdatePrice)
	}
}

// List returns items with pagination
func (h *InventoryItemHandler) List(c *gin.Context) {
	var filter inventoryapp.ItemListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}

	items, total, err := h.itemService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Get returns a single item
func (h *InventoryItemHandler) Get(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	item, err := h.itemService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Search returns items whose name contains the term, cheapest first
func (h *InventoryItemHandler) Search(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		h.BadRequest(c, "Query parameter 'name' is required")
		return
	}
	var filter inventoryapp.ItemListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	items, err := h.itemService.SearchByName(c.Request.Context(), name, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Create creates an item
func (h *InventoryItemHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	item, err := h.itemService.Create(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// Update applies a partial update to an item
func (h *InventoryItemHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var req inventoryapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	item, err := h.itemService.Update(c.Request.Context(), id, req, middleware.Actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// AdjustQuantity applies a signed stock delta
func (h *InventoryItemHandler) AdjustQuantity(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var req inventoryapp.AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	item, err := h.itemService.AdjustQuantity(c.Request.Context(), id, req, middleware.Actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// UpdatePrice changes the unit price
func (h *InventoryItemHandler) UpdatePrice(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var req inventoryapp.UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	item, err := h.itemService.UpdatePrice(c.Request.Context(), id, req.Price, middleware.Actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete writes off the item's stock under the given reason and removes it
func (h *InventoryItemHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	reason := c.Query("reason")
	if reason == "" {
		h.BadRequest(c, "Query parameter 'reason' is required")
		return
	}

	err := h.itemService.Delete(c.Request.Context(), id, inventory.StockChangeReason(reason), middleware.Actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *BaseHandler) bindID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid ID format")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}
