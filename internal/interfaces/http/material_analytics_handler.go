package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecothreads/marketplace-api/internal/application/source"
	"github.com/ecothreads/marketplace-api/internal/infrastructure/pdf"
)

// MaterialAnalyticsHandler endpoints over the supplier material warehouses.
type MaterialAnalyticsHandler struct {
	src    *source.MaterialSource
	report *pdf.LowStockReportGenerator
}

// NewMaterialAnalyticsHandler builds the handler.
func NewMaterialAnalyticsHandler(src *source.MaterialSource, report *pdf.LowStockReportGenerator) *MaterialAnalyticsHandler {
	return &MaterialAnalyticsHandler{src: src, report: report}
}

// GetSummary godoc
// @Summary      Material inventory summary
// @Description  Totals of on-hand quantity, inventory value and low-stock counts
//
//	over the material warehouses, plus in/out flow for the period.
//
// @Tags         material-analytics
// @Security     Bearer
// @Produce      json
// @Param        from          query  string  false  "Period start (YYYY-MM-DD)"
// @Param        to            query  string  false  "Period end (YYYY-MM-DD)"
// @Param        supplier_id   query  int     false  "Filter by supplier"
// @Param        warehouse_id  query  int     false  "Filter by warehouse"
// @Param        material_id   query  int     false  "Filter by material"
// @Success      200  {object}  dto.UnifiedSummaryView
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/inventory/summary [get]
func (h *MaterialAnalyticsHandler) GetSummary(c *fiber.Ctx) error {
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

// GetMovements godoc
// @Summary      Daily in/out/net material flow
// @Tags         material-analytics
// @Security     Bearer
// @Produce      json
// @Param        from         query  string  false  "Period start (YYYY-MM-DD). Default: 30 days back."
// @Param        to           query  string  false  "Period end (YYYY-MM-DD). Default: today."
// @Param        warehouse_id query  int     false  "Filter by warehouse"
// @Param        material_id  query  int     false  "Filter by material"
// @Success      200  {array}   dto.MovementPoint
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/inventory/movements [get]
func (h *MaterialAnalyticsHandler) GetMovements(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	points, err := h.src.Movements(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(points)
}

// GetLowStock godoc
// @Summary      Materials at or below threshold
// @Tags         material-analytics
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Max rows (default 50)"
// @Success      200  {array}   dto.LowStockItemView
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/inventory/low-stock [get]
func (h *MaterialAnalyticsHandler) GetLowStock(c *fiber.Ctx) error {
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

// GetLowStockReport godoc
// @Summary      Low-stock replenishment report (PDF)
// @Tags         material-analytics
// @Security     Bearer
// @Produce      application/pdf
// @Param        limit  query  int  false  "Max rows (default 50)"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/inventory/low-stock/report [get]
func (h *MaterialAnalyticsHandler) GetLowStockReport(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	views, err := h.src.LowStock(c.Context(), f, c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	data, err := h.report.Generate(c.Context(), "Material low stock", views)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="low-stock-report.pdf"`)
	return c.Send(data)
}

// GetReceiptsBySupplier godoc
// @Summary      Received quantity grouped by supplier
// @Tags         material-analytics
// @Security     Bearer
// @Produce      json
// @Param        from         query  string  false  "Period start (YYYY-MM-DD). Default: 30 days back."
// @Param        to           query  string  false  "Period end (YYYY-MM-DD). Default: today."
// @Param        material_id  query  int     false  "Filter by material"
// @Success      200  {array}   dto.ActivityPoint
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/inventory/receipts-by-supplier [get]
func (h *MaterialAnalyticsHandler) GetReceiptsBySupplier(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	points, err := h.src.ReceiptsBySupplier(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(points)
}
