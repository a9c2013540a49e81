package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"stockwatch/internal/caching"
	"stockwatch/internal/config"
	"stockwatch/internal/handlers"
	"stockwatch/internal/jobs"
	"stockwatch/internal/jobs/background"
	"stockwatch/internal/middleware"
	"stockwatch/internal/repositories"
	"stockwatch/internal/services"
	"stockwatch/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create database connection pool
	pool, err := database.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.ClosePool(pool)

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, pool); err != nil {
			log.Fatalf("Failed to apply schema: %v", err)
		}
	}

	// Snapshot publishing is optional; an empty address disables it
	var publisher caching.SnapshotPublisher
	var cacheProbe handlers.Pinger
	if cfg.Redis.Addr != "" {
		redisClient := caching.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer redisClient.Close()
		publisher = caching.NewRedisSnapshotPublisher(redisClient, cfg.SnapshotTTL())
		cacheProbe = caching.RedisProbe{Client: redisClient}
	}

	// Repositories
	itemRepo := repositories.NewItemRepository(pool)
	receiptRepo := repositories.NewReceiptRepository(pool)
	adminStockRepo := repositories.NewAdminStockRepository(pool)
	saleRepo := repositories.NewSaleRepository(pool)
	alertRepo := repositories.NewAlertRepository(pool)

	// Services
	resolver := services.NewGroupResolver(itemRepo)
	reader := services.NewLedgerReader(receiptRepo, adminStockRepo, saleRepo, cfg.Ledger.FoldVariationCase)
	synthesizer := services.NewAlertSynthesizer(alertRepo)
	reconciler := services.NewStockReconciler(itemRepo, resolver, reader, synthesizer, publisher)

	// Background sweep
	if interval := cfg.SweepInterval(); interval > 0 {
		sweep := jobs.NewStockSweepService(itemRepo, reconciler, cfg.Sweep.BatchSize)
		scheduler, err := background.NewJobScheduler(sweep, interval)
		if err != nil {
			log.Fatalf("Failed to create job scheduler: %v", err)
		}
		scheduler.Start()
		defer func() {
			if err := scheduler.Stop(); err != nil {
				log.Printf("Job scheduler shutdown error: %v", err)
			}
		}()
	}

	// Handlers
	stockHandlers := handlers.NewStockHandlers(reconciler, alertRepo)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheProbe)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	versionMiddleware := middleware.NewVersionMiddleware(version, "v1")
	e.Use(versionMiddleware.APIVersionResolver())

	// Health endpoints
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)

	// API routes
	stockHandlers.Register(versionMiddleware.Group(e, "v1"))

	go func() {
		log.Printf("Stockwatch server v%s starting on port %d", version, cfg.Server.Port)
		if err := e.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
