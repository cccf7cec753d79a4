package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecothreads/marketplace-api/internal/application/source"
	"github.com/ecothreads/marketplace-api/internal/infrastructure/cache"
)

// OverviewHandler cross-warehouse analytics over the aggregation facade.
// Every endpoint accepts ?scope=material|product|designer-material|all
// (default all).
type OverviewHandler struct {
	facade    *source.Facade
	summaries *cache.SummaryCache
}

// NewOverviewHandler builds the handler.
func NewOverviewHandler(facade *source.Facade, summaries *cache.SummaryCache) *OverviewHandler {
	return &OverviewHandler{facade: facade, summaries: summaries}
}

// GetSummary godoc
// @Summary      Unified inventory summary
// @Description  One summary for the requested scope. Scope "all" fans out to
//
//	every domain; a failed branch contributes zeros and is listed
//	under "degraded".
//
// @Tags         overview
// @Security     Bearer
// @Produce      json
// @Param        scope       query  string  false  "material | product | designer-material | all (default all)"
// @Param        from        query  string  false  "Period start (YYYY-MM-DD)"
// @Param        to          query  string  false  "Period end (YYYY-MM-DD)"
// @Success      200  {object}  dto.UnifiedSummaryView
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/analytics/overview/summary [get]
func (h *OverviewHandler) GetSummary(c *fiber.Ctx) error {
	scope, err := source.ParseScope(c.Query("scope"))
	if err != nil {
		return respondError(c, err)
	}
	f, err := parseFilter(c)
	if err != nil {
		return respondError(c, err)
	}

	// The URL carries scope and every filter, so it is the cache fingerprint.
	key := c.OriginalURL()
	if cached := h.summaries.Get(c.Context(), key); cached != nil {
		return c.JSON(cached)
	}

	view, err := h.facade.Summary(c.Context(), scope, f)
	if err != nil {
		return respondError(c, err)
	}
	if len(view.Degraded) == 0 {
		h.summaries.Set(c.Context(), key, view)
	}
	return c.JSON(view)
}

// GetTransactions godoc
// @Summary      Unified stock movements
// @Description  Movements for the requested scope, newest first. Scope "all"
//
//	merges every domain; failed branches are listed under
//	"degraded" and contribute no rows.
//
// @Tags         overview
// @Security     Bearer
// @Produce      json
// @Param        scope       query  string  false  "material | product | designer-material | all (default all)"
// @Param        from        query  string  false  "Period start (YYYY-MM-DD)"
// @Param        to          query  string  false  "Period end (YYYY-MM-DD)"
// @Param        limit       query  int     false  "Max rows after the merge"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/analytics/overview/transactions [get]
func (h *OverviewHandler) GetTransactions(c *fiber.Ctx) error {
	scope, err := source.ParseScope(c.Query("scope"))
	if err != nil {
		return respondError(c, err)
	}
	f, err := parseFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	views, degraded, err := h.facade.Transactions(c.Context(), scope, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":        len(views),
		"degraded":     degraded,
		"transactions": views,
	})
}

// GetLowStock godoc
// @Summary      Unified low-stock items
// @Tags         overview
// @Security     Bearer
// @Produce      json
// @Param        scope  query  string  false  "material | product | designer-material | all (default all)"
// @Param        limit  query  int     false  "Max rows after the merge (default 50)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/analytics/overview/low-stock [get]
func (h *OverviewHandler) GetLowStock(c *fiber.Ctx) error {
	scope, err := source.ParseScope(c.Query("scope"))
	if err != nil {
		return respondError(c, err)
	}
	f, err := parseFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	views, degraded, err := h.facade.LowStock(c.Context(), scope, f, c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":    len(views),
		"degraded": degraded,
		"items":    views,
	})
}

// GetActivity godoc
// @Summary      Activity series per domain
// @Description  One series per branch. Material and product series are daily
//
//	buckets; the designer stash series is a category breakdown.
//
// @Tags         overview
// @Security     Bearer
// @Produce      json
// @Param        scope       query  string  false  "material | product | designer-material | all (default all)"
// @Param        from        query  string  false  "Period start (YYYY-MM-DD). Default: 30 days back."
// @Param        to          query  string  false  "Period end (YYYY-MM-DD). Default: today."
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/analytics/overview/activity [get]
func (h *OverviewHandler) GetActivity(c *fiber.Ctx) error {
	scope, err := source.ParseScope(c.Query("scope"))
	if err != nil {
		return respondError(c, err)
	}
	f, err := parseFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	series, degraded, err := h.facade.Activity(c.Context(), scope, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"degraded": degraded,
		"series":   series,
	})
}
