package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	analyticsapp "github.com/smartsupplypro/inventory/internal/application/analytics"
	"github.com/smartsupplypro/inventory/internal/domain/shared"
)

// AnalyticsHandler handles analytics API endpoints
type AnalyticsHandler struct {
	BaseHandler
	analyticsService *analyticsapp.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService *analyticsapp.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// RegisterRoutes registers the analytics routes
func (h *AnalyticsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	analytics := rg.Group("/analytics")
	{
		analytics.GET("/summary", h.Summary)
		analytics.GET("/items/:id/wac", h.WAC)
		analytics.GET("/items/:id/activity", h.ActivityCount)
		analytics.GET("/items/:id/price-trend", h.PriceTrend)
		analytics.GET("/low-stock", h.LowStock)
		analytics.GET("/update-frequency", h.UpdateFrequency)
		analytics.GET("/stock-value", h.StockValueOverTime)
		analytics.GET("/stock-per-supplier", h.StockPerSupplier)
		analytics.GET("/monthly-movement", h.MonthlyMovement)
		analytics.GET("/financial-summary", h.FinancialSummary)
	}
}

// WAC returns the weighted average cost for an item, replayed from its
// ledger. Deleted items keep a computable WAC.
func (h *AnalyticsHandler) WAC(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	wac, err := h.analyticsService.CalculateWAC(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, analyticsapp.WACResponse{ItemID: id, WAC: wac})
}

// LowStock returns items at or below their reorder threshold
func (h *AnalyticsHandler) LowStock(c *gin.Context) {
	var query analyticsapp.LowStockQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindingError(c, err)
		return
	}

	filter := shared.DefaultFilter()
	if query.Page > 0 {
		filter.Page = query.Page
	}
	if query.PageSize > 0 {
		filter.PageSize = query.PageSize
	}

	items, err := h.analyticsService.LowStock(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// ActivityCount returns an item's ledger entry count
func (h *AnalyticsHandler) ActivityCount(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	count, err := h.analyticsService.ActivityCount(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"item_id": id, "count": count})
}

// StockValueOverTime returns the daily value series of ledger movements
func (h *AnalyticsHandler) StockValueOverTime(c *gin.Context) {
	var query analyticsapp.RangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindingError(c, err)
		return
	}

	points, err := h.analyticsService.StockValueOverTime(c.Request.Context(), query.StartDate, query.EndDate, query.SupplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, points)
}

// StockPerSupplier returns the current quantity held per supplier
func (h *AnalyticsHandler) StockPerSupplier(c *gin.Context) {
	totals, err := h.analyticsService.StockPerSupplier(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, totals)
}

// MonthlyMovement returns the inbound/outbound quantity series per month
func (h *AnalyticsHandler) MonthlyMovement(c *gin.Context) {
	var query analyticsapp.RangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindingError(c, err)
		return
	}

	points, err := h.analyticsService.MonthlyStockMovement(c.Request.Context(), query.StartDate, query.EndDate, query.SupplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, points)
}

// PriceTrend returns an item's daily average price snapshots
func (h *AnalyticsHandler) PriceTrend(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var query analyticsapp.PriceTrendQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindingError(c, err)
		return
	}

	points, err := h.analyticsService.PriceTrend(c.Request.Context(), id, query.StartDate, query.EndDate, query.SupplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, points)
}

// FinancialSummary returns the weighted-average-cost view of a period
func (h *AnalyticsHandler) FinancialSummary(c *gin.Context) {
	var query analyticsapp.FinancialSummaryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindingError(c, err)
		return
	}

	summary, err := h.analyticsService.FinancialSummary(c.Request.Context(), query.From, query.To, query.SupplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// Summary returns the dashboard bundle: stock per supplier, low-stock items,
// monthly movement and the most updated items
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	var query analyticsapp.RangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindingError(c, err)
		return
	}

	summary, err := h.analyticsService.DashboardSummary(c.Request.Context(), query.StartDate, query.EndDate, query.SupplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// UpdateFrequency returns per-item ledger activity, most active first
func (h *AnalyticsHandler) UpdateFrequency(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.BadRequest(c, "Query parameter 'limit' must be a non-negative integer")
			return
		}
		limit = parsed
	}

	frequencies, err := h.analyticsService.ItemUpdateFrequency(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, frequencies)
}
