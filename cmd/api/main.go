package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ecothreads/marketplace-api/internal/application/designer"
	"github.com/ecothreads/marketplace-api/internal/application/ledger"
	"github.com/ecothreads/marketplace-api/internal/application/source"
	infracache "github.com/ecothreads/marketplace-api/internal/infrastructure/cache"
	infrapdf "github.com/ecothreads/marketplace-api/internal/infrastructure/pdf"
	"github.com/ecothreads/marketplace-api/internal/infrastructure/postgres"
	httpRouter "github.com/ecothreads/marketplace-api/internal/interfaces/http"
	"github.com/ecothreads/marketplace-api/pkg/config"
	"github.com/ecothreads/marketplace-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	// Ledger writes run through the TxRunner so the append and the snapshot
	// update commit together.
	txRunner := postgres.NewTxRunner(pool)
	appendUC := ledger.NewAppendUseCase(txRunner)
	rebuildUC := ledger.NewRebuildUseCase(txRunner, log)

	// Domain adapters behind the aggregation facade
	materialRepo := postgres.NewMaterialInventoryRepository(pool)
	productRepo := postgres.NewProductInventoryRepository(pool)
	stashRepo := postgres.NewDesignerMaterialRepository(pool)

	materialSource := source.NewMaterialSource(materialRepo)
	productSource := source.NewProductSource(productRepo)
	designerSource := source.NewDesignerStashSource(stashRepo)
	facade := source.NewFacade(materialSource, productSource, designerSource, cfg.Analytics.BranchTimeout, log)

	stashUC := designer.NewStashUseCase(stashRepo)

	// Redis is optional: without REDIS_URL every summary query hits the facade.
	redisClient, err := infracache.NewRedisClient(ctx, cfg.Redis.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("Redis connection")
	}
	if redisClient != nil {
		defer redisClient.Close()
	}
	summaryCache := infracache.NewSummaryCache(redisClient, cfg.Redis.SummaryTTL, log)

	reportGen := infrapdf.NewLowStockReportGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI locally: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "EcoThreads Marketplace API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		MaterialSource: materialSource,
		ProductSource:  productSource,
		Facade:         facade,
		StashUC:        stashUC,
		AppendUC:       appendUC,
		RebuildUC:      rebuildUC,
		SummaryCache:   summaryCache,
		ReportGen:      reportGen,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
