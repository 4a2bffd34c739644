// Package main is the entry point for the Joiner PRO API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"joinerpro/internal/domain/auth"
	"joinerpro/internal/domain/client"
	"joinerpro/internal/domain/ledger"
	"joinerpro/internal/domain/project"
	"joinerpro/internal/domain/reports"
	"joinerpro/internal/domain/stock"
	v1 "joinerpro/internal/infrastructure/http/v1"
	"joinerpro/internal/infrastructure/storage/postgres"
	"joinerpro/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting joinerpro server")

	// --- Database ---
	dsn := mustEnv("DATABASE_URL")
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	if getEnv("MIGRATE_ON_START", "true") == "true" {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatalw("failed to run migrations", "error", err)
		}
		log.Info("migrations applied")
	}

	txManager := postgres.NewTxManager(pool)

	auditStore, err := postgres.NewAuditStore(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit store", "error", err)
	}

	// --- Repositories ---
	clientRepo := postgres.NewClientRepo(txManager)
	projectRepo := postgres.NewProjectRepo(txManager)
	materialRepo := postgres.NewMaterialRepo(txManager)
	categoryRepo := postgres.NewStockCategoryRepo(txManager)
	itemRepo := postgres.NewStockItemRepo(txManager)
	ledgerRepo := postgres.NewLedgerRepo(txManager)
	userRepo := postgres.NewUserRepo(txManager)

	// --- Services ---
	tokenManager := auth.NewTokenManager(mustEnv("JWT_SECRET"))
	authService := auth.NewService(userRepo, tokenManager)
	clientService := client.NewService(clientRepo)
	stockService := stock.NewService(categoryRepo, itemRepo)
	projectService := project.NewService(projectRepo, materialRepo, clientRepo, itemRepo, auditStore)
	ledgerService := ledger.NewService(ledgerRepo, projectRepo, txManager, auditStore)
	reportsService := reports.NewService(clientService, projectService, stockService, ledgerService)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		DB:             pool,
		Logger:         log,
		TokenVerifier:  tokenManager,
		AuthService:    authService,
		ClientService:  clientService,
		ProjectService: projectService,
		StockService:   stockService,
		LedgerService:  ledgerService,
		ReportsService: reportsService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}
