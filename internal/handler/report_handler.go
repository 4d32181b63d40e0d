package handler

import (
	"net/http"
	"time"

	"crm-service/internal/model"
	"crm-service/pkg/database"
	"crm-service/pkg/logger"
	"crm-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type statusCount struct {
	Status string
	Count  int64
}

type typeCount struct {
	InteractionType string
	Count           int64
}

type companyLeadCount struct {
	Company   string `json:"company"`
	LeadCount int64  `json:"lead_count"`
}

func leadCountsByStatus(db *gorm.DB) (int64, map[string]int64, error) {
	var rows []statusCount
	err := db.Model(&model.Lead{}).
		Select("status, COUNT(id) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return 0, nil, err
	}

	var total int64
	byStatus := make(map[string]int64, len(rows))
	for _, row := range rows {
		total += row.Count
		byStatus[row.Status] = row.Count
	}
	return total, byStatus, nil
}

func interactionCountsByType(db *gorm.DB) (int64, map[string]int64, error) {
	var rows []typeCount
	err := db.Model(&model.Interaction{}).
		Select("interaction_type, COUNT(id) AS count").
		Group("interaction_type").
		Scan(&rows).Error
	if err != nil {
		return 0, nil, err
	}

	var total int64
	byType := make(map[string]int64, len(rows))
	for _, row := range rows {
		total += row.Count
		byType[row.InteractionType] = row.Count
	}
	return total, byType, nil
}

// LeadsByStatus returns the total lead count and a breakdown by status.
// Only observed status values appear in the breakdown.
func LeadsByStatus(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Generating leads-by-status report")
	prometheus.RecordReportRequest("leads_by_status")

	defer prometheus.TrackDBOperation("aggregate")(time.Now())

	total, byStatus, err := leadCountsByStatus(database.GetDB())
	if err != nil {
		log.Error("Failed to aggregate leads by status", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to generate report",
		})
	}

	log.Info("Leads-by-status report generated", zap.Int64("total_leads", total))
	return c.JSON(http.StatusOK, echo.Map{
		"total_leads": total,
		"by_status":   byStatus,
	})
}

// InteractionsSummary returns the total interaction count and a breakdown by type
func InteractionsSummary(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Generating interactions summary report")
	prometheus.RecordReportRequest("interactions_summary")

	defer prometheus.TrackDBOperation("aggregate")(time.Now())

	total, byType, err := interactionCountsByType(database.GetDB())
	if err != nil {
		log.Error("Failed to aggregate interactions by type", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to generate report",
		})
	}

	log.Info("Interactions summary report generated", zap.Int64("total_interactions", total))
	return c.JSON(http.StatusOK, echo.Map{
		"total_interactions": total,
		"by_type":            byType,
	})
}

// Dashboard returns a composite of lead and interaction breakdowns plus the
// top 5 companies by lead count. Ties break by company name ascending.
func Dashboard(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Generating dashboard report")
	prometheus.RecordReportRequest("dashboard")

	defer prometheus.TrackDBOperation("aggregate")(time.Now())

	db := database.GetDB()

	totalLeads, byStatus, err := leadCountsByStatus(db)
	if err != nil {
		log.Error("Failed to aggregate leads by status", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to generate report",
		})
	}

	totalInteractions, byType, err := interactionCountsByType(db)
	if err != nil {
		log.Error("Failed to aggregate interactions by type", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to generate report",
		})
	}

	var topCompanies []companyLeadCount
	err = db.Model(&model.Lead{}).
		Select("company, COUNT(id) AS lead_count").
		Group("company").
		Order("lead_count DESC, company ASC").
		Limit(5).
		Scan(&topCompanies).Error
	if err != nil {
		log.Error("Failed to aggregate top companies", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to generate report",
		})
	}
	if topCompanies == nil {
		topCompanies = []companyLeadCount{}
	}

	log.Info("Dashboard report generated",
		zap.Int64("total_leads", totalLeads),
		zap.Int64("total_interactions", totalInteractions),
		zap.Int("top_companies", len(topCompanies)))
	return c.JSON(http.StatusOK, echo.Map{
		"leads": echo.Map{
			"total":     totalLeads,
			"by_status": byStatus,
		},
		"interactions": echo.Map{
			"total":   totalInteractions,
			"by_type": byType,
		},
		"top_companies": topCompanies,
	})
}
