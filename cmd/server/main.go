package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gcoelho/carteira-manager-backend/internal/api"
	"github.com/gcoelho/carteira-manager-backend/internal/config"
	"github.com/gcoelho/carteira-manager-backend/internal/cvm"
	"github.com/gcoelho/carteira-manager-backend/internal/database"
	"github.com/gcoelho/carteira-manager-backend/internal/repository"
	"github.com/gcoelho/carteira-manager-backend/internal/scheduler"
	"github.com/gcoelho/carteira-manager-backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	portfolioRepo := repository.NewPortfolioRepository(db)
	fundRepo := repository.NewFundRepository(db)
	holdingRepo := repository.NewHoldingRepository(db)
	quotaRepo := repository.NewQuotaRepository(db)
	perfRepo := repository.NewPerformanceRepository(db)
	systemRepo := repository.NewSystemRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	portfolioService := service.NewPortfolioService(
		portfolioRepo,
		holdingRepo,
		fundRepo,
	)
	fundService := service.NewFundService(
		fundRepo,
		quotaRepo,
	)
	credentialsService, err := service.NewCredentialsService(systemRepo, cfg.Security.FernetKey)
	if err != nil {
		log.Fatalf("Failed to create credentials service: %v", err)
	}
	if cfg.Security.InternalAPIKey != "" {
		if err := credentialsService.StoreInternalAPIKey(context.Background(), cfg.Security.InternalAPIKey); err != nil {
			log.Fatalf("Failed to store internal API key: %v", err)
		}
	}

	cvmClient := cvm.NewClient(cfg.Import.BaseURL, time.Duration(cfg.Import.FetchTimeoutSeconds)*time.Second)
	importerService := service.NewImporterService(
		fundRepo,
		quotaRepo,
		cvmClient,
		log.Default(),
	)
	performanceService := service.NewPerformanceService(
		holdingRepo,
		quotaRepo,
		perfRepo,
		log.Default(),
	)

	// Scheduler runs the import before the performance calculation daily
	sched := scheduler.New(importerService, performanceService, cfg.Import, cfg.Scheduler, log.Default())
	if cfg.Scheduler.Enabled {
		if err := sched.Start(); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	}

	// Create router
	router := api.NewRouter(systemService, portfolioService, fundService, credentialsService, perfRepo, sched, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
