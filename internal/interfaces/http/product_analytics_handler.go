package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecothreads/marketplace-api/internal/application/source"
)

// ProductAnalyticsHandler endpoints over finished product stock.
type ProductAnalyticsHandler struct {
	src *source.ProductSource
}

// NewProductAnalyticsHandler builds the handler.
func NewProductAnalyticsHandler(src *source.ProductSource) *ProductAnalyticsHandler {
	return &ProductAnalyticsHandler{src: src}
}

// GetSummary godoc
// @Summary      Product inventory summary
// @Tags         product-analytics
// @Security     Bearer
// @Produce      json
// @Param        from         query  string  false  "Period start (YYYY-MM-DD)"
// @Param        to           query  string  false  "Period end (YYYY-MM-DD)"
// @Param        designer_id  query  int     false  "Filter by designer"
// @Success      200  {object}  dto.UnifiedSummaryView
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/product-inventory/summary [get]
func (h *ProductAnalyticsHandler) GetSummary(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	view, err := h.src.Summary(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

// GetLowStock godoc
// @Summary      Products at or below threshold
// @Tags         product-analytics
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Max rows (default 50)"
// @Success      200  {array}   dto.LowStockItemView
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/product-inventory/low-stock [get]
func (h *ProductAnalyticsHandler) GetLowStock(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	views, err := h.src.LowStock(c.Context(), f, c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(views)
}

// GetTransactions godoc
// @Summary      Product stock movements, newest first
// @Tags         product-analytics
// @Security     Bearer
// @Produce      json
// @Param        from        query  string  false  "Period start (YYYY-MM-DD)"
// @Param        to          query  string  false  "Period end (YYYY-MM-DD)"
// @Param        types       query  string  false  "Comma-separated transaction types"
// @Param        limit       query  int     false  "Max rows (default 100)"
// @Success      200  {array}   dto.UnifiedTransactionView
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/product-inventory/transactions [get]
func (h *ProductAnalyticsHandler) GetTransactions(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	views, err := h.src.Transactions(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(views)
}

// GetProductionActivity godoc
// @Summary      Units produced per day
// @Tags         product-analytics
// @Security     Bearer
// @Produce      json
// @Param        from        query  string  false  "Period start (YYYY-MM-DD). Default: 30 days back."
// @Param        to          query  string  false  "Period end (YYYY-MM-DD). Default: today."
// @Success      200  {object}  dto.ActivitySeries
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/product-inventory/production-activity [get]
func (h *ProductAnalyticsHandler) GetProductionActivity(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	series, err := h.src.Activity(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(series)
}

// GetDesignPopularity godoc
// @Summary      Best selling designs
// @Description  Units sold per design over the period, best sellers first.
// @Tags         product-analytics
// @Security     Bearer
// @Produce      json
// @Param        from        query  string  false  "Period start (YYYY-MM-DD)"
// @Param        to          query  string  false  "Period end (YYYY-MM-DD)"
// @Param        limit       query  int     false  "Max designs in the ranking (default 10)"
// @Success      200  {array}   dto.ActivityPoint
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/product-inventory/design-popularity [get]
func (h *ProductAnalyticsHandler) GetDesignPopularity(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	points, err := h.src.DesignPopularity(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(points)
}
