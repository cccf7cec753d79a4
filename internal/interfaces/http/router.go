package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecothreads/marketplace-api/internal/application/designer"
	"github.com/ecothreads/marketplace-api/internal/application/ledger"
	"github.com/ecothreads/marketplace-api/internal/application/source"
	"github.com/ecothreads/marketplace-api/internal/infrastructure/cache"
	"github.com/ecothreads/marketplace-api/internal/infrastructure/pdf"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	MaterialSource *source.MaterialSource
	ProductSource  *source.ProductSource
	Facade         *source.Facade
	StashUC        *designer.StashUseCase
	AppendUC       *ledger.AppendUseCase
	RebuildUC      *ledger.RebuildUseCase
	SummaryCache   *cache.SummaryCache
	ReportGen      *pdf.LowStockReportGenerator
	JWTSecret      string
}

// Router registers the API routes. Every route requires a Bearer token;
// snapshot rebuild additionally requires the admin role.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Material warehouse analytics
	material := api.Group("/analytics/inventory")
	materialHandler := NewMaterialAnalyticsHandler(deps.MaterialSource, deps.ReportGen)
	material.Get("/summary", materialHandler.GetSummary)
	material.Get("/movements", materialHandler.GetMovements)
	material.Get("/low-stock", materialHandler.GetLowStock)
	material.Get("/low-stock/report", materialHandler.GetLowStockReport)
	material.Get("/receipts-by-supplier", materialHandler.GetReceiptsBySupplier)

	// Product warehouse analytics
	product := api.Group("/analytics/product-inventory")
	productHandler := NewProductAnalyticsHandler(deps.ProductSource)
	product.Get("/summary", productHandler.GetSummary)
	product.Get("/low-stock", productHandler.GetLowStock)
	product.Get("/transactions", productHandler.GetTransactions)
	product.Get("/production-activity", productHandler.GetProductionActivity)
	product.Get("/design-popularity", productHandler.GetDesignPopularity)

	// Cross-domain overview (aggregation facade)
	overview := api.Group("/analytics/overview")
	overviewHandler := NewOverviewHandler(deps.Facade, deps.SummaryCache)
	overview.Get("/summary", overviewHandler.GetSummary)
	overview.Get("/transactions", overviewHandler.GetTransactions)
	overview.Get("/low-stock", overviewHandler.GetLowStock)
	overview.Get("/activity", overviewHandler.GetActivity)

	// Designer stash CRUD
	stash := api.Group("/designer-material-inventories")
	stashHandler := NewDesignerMaterialHandler(deps.StashUC)
	stash.Post("/", stashHandler.Create)
	stash.Get("/", stashHandler.List)
	stash.Get("/stored/:designerId", stashHandler.GetStoredMaterial)
	stash.Get("/:id", stashHandler.GetByID)
	stash.Put("/:id", stashHandler.Update)
	stash.Delete("/:id", stashHandler.Delete)

	// Ledger writes
	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.AppendUC, deps.RebuildUC, deps.SummaryCache)
	inv.Post("/materials/receive", inventoryHandler.ReceiveMaterial)
	inv.Post("/rebuild", RequireRole("admin"), inventoryHandler.RebuildSnapshot)
}
