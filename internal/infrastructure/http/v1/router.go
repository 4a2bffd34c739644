// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"joinerpro/internal/domain/auth"
	"joinerpro/internal/domain/client"
	"joinerpro/internal/domain/ledger"
	"joinerpro/internal/domain/project"
	"joinerpro/internal/domain/reports"
	"joinerpro/internal/domain/stock"
	"joinerpro/internal/infrastructure/http/v1/handlers"
	"joinerpro/internal/infrastructure/http/v1/middleware"
	"joinerpro/pkg/logger"
)

// RouterConfig holds everything the router needs to wire handlers.
type RouterConfig struct {
	// DB is used by the readiness probe.
	DB handlers.Pinger

	// Logger for request logging.
	Logger *logger.Logger

	// TokenVerifier validates bearer tokens on protected routes.
	TokenVerifier middleware.TokenVerifier

	AuthService    *auth.Service
	ClientService  *client.Service
	ProjectService *project.Service
	StockService   *stock.Service
	LedgerService  *ledger.Service
	ReportsService *reports.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.DB)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	// API v1
	api := router.Group("/api/v1")
	{
		authHandler := handlers.NewAuthHandler(cfg.AuthService)
		api.POST("/auth/login", authHandler.Login)

		protected := api.Group("")
		protected.Use(middleware.Auth(cfg.TokenVerifier))

		registerClientRoutes(protected, cfg)
		registerProjectRoutes(protected, cfg)
		registerStockRoutes(protected, cfg)
		registerLedgerRoutes(protected, cfg)
		registerReportRoutes(protected, cfg)
	}

	return router
}

func registerClientRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	handler := handlers.NewClientHandler(cfg.ClientService)

	clients := rg.Group("/clients")
	{
		clients.GET("", handler.List)
		clients.POST("", handler.Create)
		clients.GET("/:id", handler.Get)
		clients.PATCH("/:id", handler.Update)
		clients.DELETE("/:id", handler.Delete)
	}
}

func registerProjectRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	handler := handlers.NewProjectHandler(cfg.ProjectService)

	projects := rg.Group("/projects")
	{
		projects.GET("", handler.List)
		projects.POST("", handler.Create)
		projects.GET("/:id", handler.Get)
		projects.PATCH("/:id", handler.Update)
		projects.DELETE("/:id", handler.Delete)

		projects.GET("/:id/materials", handler.ListMaterials)
		projects.POST("/:id/materials", handler.AddMaterial)
		projects.GET("/:id/materials/cost", handler.MaterialCost)
		projects.DELETE("/:id/materials/:materialId", handler.RemoveMaterial)
	}
}

func registerStockRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	handler := handlers.NewStockHandler(cfg.StockService)

	stockGroup := rg.Group("/stock")
	{
		stockGroup.GET("/overview", handler.Overview)

		stockGroup.GET("/items", handler.ListItems)
		stockGroup.POST("/items", handler.CreateItem)
		stockGroup.GET("/items/:id", handler.GetItem)
		stockGroup.PATCH("/items/:id", handler.UpdateItem)
		stockGroup.DELETE("/items/:id", handler.DeleteItem)

		stockGroup.GET("/categories", handler.ListCategories)
		stockGroup.POST("/categories", handler.CreateCategory)
		stockGroup.DELETE("/categories/:id", handler.DeleteCategory)
	}
}

func registerLedgerRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	registerEntryRoutes(rg.Group("/payables"), handlers.NewLedgerHandler(cfg.LedgerService, ledger.KindPayable))
	registerEntryRoutes(rg.Group("/receivables"), handlers.NewLedgerHandler(cfg.LedgerService, ledger.KindReceivable))
}

func registerEntryRoutes(rg *gin.RouterGroup, handler *handlers.LedgerHandler) {
	rg.GET("", handler.List)
	rg.POST("", handler.Create)
	rg.PUT("/settle", handler.Settle)
	rg.GET("/:id", handler.Get)
	rg.PATCH("/:id", handler.Update)
	rg.DELETE("/:id", handler.Delete)
}

func registerReportRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	handler := handlers.NewReportsHandler(cfg.ReportsService)

	reportsGroup := rg.Group("/reports")
	{
		reportsGroup.GET("/:name", handler.Get)
		reportsGroup.GET("/:name/export", handler.Export)
	}
}
