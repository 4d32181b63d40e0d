package handler

import (
	"errors"
	"net/http"
	"time"

	"crm-service/internal/model"
	"crm-service/internal/schema"
	"crm-service/pkg/database"
	"crm-service/pkg/logger"
	"crm-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateInteraction handles logging a new contact event against a lead
func CreateInteraction(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new interaction")
	prometheus.RecordInteractionOperation("create")

	var req schema.InteractionCreateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if fieldErrs := req.Validate(); len(fieldErrs) > 0 {
		log.Warn("Interaction validation failed", zap.Int("field_errors", len(fieldErrs)))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":   "validation failed",
			"details": fieldErrs,
		})
	}

	log.Info("Interaction creation request",
		zap.Uint("lead_id", req.LeadID),
		zap.String("interaction_type", req.InteractionType))

	// Check that the referenced lead exists. The foreign key constraint is
	// the backstop for a lead deleted between this check and the insert.
	var count int64
	if err := database.GetDB().Model(&model.Lead{}).Where("id = ?", req.LeadID).Count(&count).Error; err != nil {
		log.Error("Failed to check lead existence", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create interaction",
		})
	}
	if count == 0 {
		log.Warn("Referenced lead does not exist", zap.Uint("lead_id", req.LeadID))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Lead with this id does not exist",
		})
	}

	interaction := model.Interaction{
		LeadID:          req.LeadID,
		InteractionType: req.InteractionType,
		Notes:           req.Notes,
	}

	// Track DB operations
	defer prometheus.TrackDBOperation("insert")(time.Now())

	result := database.GetDB().Create(&interaction)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
			log.Warn("Referenced lead does not exist", zap.Uint("lead_id", req.LeadID))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Lead with this id does not exist",
			})
		}
		log.Error("Failed to create interaction",
			zap.Uint("lead_id", req.LeadID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create interaction",
		})
	}

	log.Info("Interaction created successfully",
		zap.Uint("interaction_id", interaction.ID),
		zap.Uint("lead_id", interaction.LeadID))
	return c.JSON(http.StatusCreated, interaction)
}

// ListInteractions handles retrieving interactions with pagination and an
// optional lead_id filter
func ListInteractions(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing interactions")
	prometheus.RecordInteractionOperation("list")

	page, fieldErrs := schema.ParsePageQuery(c.QueryParam("skip"), c.QueryParam("limit"))
	if len(fieldErrs) > 0 {
		log.Warn("Invalid pagination parameters", zap.Int("field_errors", len(fieldErrs)))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":   "validation failed",
			"details": fieldErrs,
		})
	}

	query := database.GetDB()

	// Filter by lead if specified
	if leadID := c.QueryParam("lead_id"); leadID != "" {
		query = query.Where("lead_id = ?", leadID)
		log.Info("Filtering interactions by lead", zap.String("lead_id", leadID))
	}

	defer prometheus.TrackDBOperation("select")(time.Now())

	var interactions []model.Interaction
	result := query.Order("id").Offset(page.Skip).Limit(page.Limit).Find(&interactions)
	if result.Error != nil {
		log.Error("Failed to list interactions", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve interactions",
		})
	}

	log.Info("Interactions retrieved successfully", zap.Int("count", len(interactions)))
	return c.JSON(http.StatusOK, interactions)
}

// GetInteraction handles retrieving a single interaction by ID
func GetInteraction(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Getting interaction by ID", zap.String("interaction_id", id))
	prometheus.RecordInteractionOperation("get")

	var interaction model.Interaction
	result := database.GetDB().First(&interaction, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Interaction not found", zap.String("interaction_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Interaction not found",
			})
		}
		log.Error("Failed to fetch interaction",
			zap.String("interaction_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve interaction",
		})
	}

	log.Info("Interaction retrieved successfully", zap.Uint("interaction_id", interaction.ID))
	return c.JSON(http.StatusOK, interaction)
}
