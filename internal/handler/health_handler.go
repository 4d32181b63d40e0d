package handler

import (
	"net/http"
	"time"

	"crm-service/pkg/database"
	"crm-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Root returns service metadata and the endpoint map
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Welcome to Mini CRM System",
		"endpoints": echo.Map{
			"leads":        "/leads",
			"interactions": "/interactions",
			"reports":      "/reports",
			"health":       "/health",
			"metrics":      "/metrics",
		},
	})
}

// HealthCheck handles the health check endpoint
func HealthCheck(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Health check requested")

	// Basic response
	response := echo.Map{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	}

	// Check database connection if requested
	if c.QueryParam("check") == "db" {
		sqlDB, err := database.GetDB().DB()
		if err != nil {
			log.Error("Database connection error", zap.Error(err))
			response["status"] = "error"
			response["db_status"] = "error"
			return c.JSON(http.StatusInternalServerError, response)
		}

		// Ping database to check connection
		if err := sqlDB.Ping(); err != nil {
			log.Error("Database ping error", zap.Error(err))
			response["status"] = "error"
			response["db_status"] = "error"
			return c.JSON(http.StatusInternalServerError, response)
		}

		// Database is healthy
		response["db_status"] = "ok"
	}

	return c.JSON(http.StatusOK, response)
}
