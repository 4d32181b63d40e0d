package main

import (
	"net/http"

	"crm-service/internal/handler"
	mid "crm-service/internal/middleware"
	"crm-service/pkg/config"
	"crm-service/pkg/database"
	"crm-service/pkg/logger"
	"crm-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting crm-service",
		zap.String("environment", cfg.Server.Env),
		zap.String("port", cfg.Server.Port))

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", cfg.Metrics.Prefix))

	// Initialize database and create the schema if absent
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established and migrations completed",
		zap.String("db_host", cfg.DB.Host),
		zap.String("db_name", cfg.DB.DBName))

	// Initialize Echo instance
	e := echo.New()
	e.Pre(echomiddleware.RemoveTrailingSlash())

	// Middleware
	e.Use(echomiddleware.Recover())
	// Deliberately wide-open CORS (all origins, methods, headers, with
	// credentials) for trusted/internal deployments. Do not expose this
	// service as-is on the public internet.
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOriginFunc: func(origin string) (bool, error) { return true, nil },
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders:     []string{"*"},
		AllowCredentials: true,
	}))
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)
	e.Use(logger.Middleware(log))

	// Routes
	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Service metadata and health check endpoints
	e.GET("/", handler.Root)
	e.GET("/health", handler.HealthCheck)

	// Lead routes
	leadAPI := e.Group("/leads")
	leadAPI.POST("", handler.CreateLead)
	leadAPI.GET("", handler.ListLeads)
	leadAPI.GET("/:id", handler.GetLead)
	leadAPI.PUT("/:id", handler.UpdateLead)
	leadAPI.DELETE("/:id", handler.DeleteLead)

	// Interaction routes
	interactionAPI := e.Group("/interactions")
	interactionAPI.POST("", handler.CreateInteraction)
	interactionAPI.GET("", handler.ListInteractions)
	interactionAPI.GET("/:id", handler.GetInteraction)

	// Report routes
	reportAPI := e.Group("/reports")
	reportAPI.GET("/leads-by-status", handler.LeadsByStatus)
	reportAPI.GET("/interactions-summary", handler.InteractionsSummary)
	reportAPI.GET("/dashboard", handler.Dashboard)

	// Start server
	log.Info("Starting server", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
