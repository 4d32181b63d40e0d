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

// CreateLead handles creating a new lead
func CreateLead(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new lead")
	prometheus.RecordLeadOperation("create")

	var req schema.LeadCreateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if fieldErrs := req.Validate(); len(fieldErrs) > 0 {
		log.Warn("Lead validation failed", zap.Int("field_errors", len(fieldErrs)))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":   "validation failed",
			"details": fieldErrs,
		})
	}

	log.Info("Lead creation request",
		zap.String("name", req.Name),
		zap.String("company", req.Company),
		zap.String("email", req.Email))

	// Check if a lead with this email already exists. The unique index on
	// the email column is the backstop for concurrent creates.
	var count int64
	if err := database.GetDB().Model(&model.Lead{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		log.Error("Failed to check email uniqueness", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create lead",
		})
	}
	if count > 0 {
		log.Warn("Lead with this email already exists", zap.String("email", req.Email))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Email already registered",
		})
	}

	status := req.Status
	if status == "" {
		status = model.LeadStatusNew
	}

	lead := model.Lead{
		Name:    req.Name,
		Company: req.Company,
		Email:   req.Email,
		Phone:   req.Phone,
		Status:  status,
	}

	// Track DB operations
	defer prometheus.TrackDBOperation("insert")(time.Now())

	result := database.GetDB().Create(&lead)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			log.Warn("Lead with this email already exists", zap.String("email", req.Email))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Email already registered",
			})
		}
		log.Error("Failed to create lead",
			zap.String("email", req.Email),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create lead",
		})
	}

	log.Info("Lead created successfully",
		zap.Uint("lead_id", lead.ID),
		zap.String("email", lead.Email))
	return c.JSON(http.StatusCreated, lead)
}

// ListLeads handles retrieving leads with pagination and optional filters.
// All supplied filters are combined with AND.
func ListLeads(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing leads with filters")
	prometheus.RecordLeadOperation("list")

	page, fieldErrs := schema.ParsePageQuery(c.QueryParam("skip"), c.QueryParam("limit"))
	if len(fieldErrs) > 0 {
		log.Warn("Invalid pagination parameters", zap.Int("field_errors", len(fieldErrs)))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":   "validation failed",
			"details": fieldErrs,
		})
	}

	query := database.GetDB()

	// Filter by name substring if specified (case-insensitive)
	if name := c.QueryParam("name"); name != "" {
		query = query.Where("name ILIKE ?", "%"+name+"%")
		log.Info("Filtering leads by name", zap.String("name", name))
	}

	// Filter by exact status if specified
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
		log.Info("Filtering leads by status", zap.String("status", status))
	}

	// Filter by company substring if specified (case-insensitive)
	if company := c.QueryParam("company"); company != "" {
		query = query.Where("company ILIKE ?", "%"+company+"%")
		log.Info("Filtering leads by company", zap.String("company", company))
	}

	defer prometheus.TrackDBOperation("select")(time.Now())

	var leads []model.Lead
	result := query.Order("id").Offset(page.Skip).Limit(page.Limit).Find(&leads)
	if result.Error != nil {
		log.Error("Failed to list leads", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve leads",
		})
	}

	log.Info("Leads retrieved successfully", zap.Int("count", len(leads)))
	return c.JSON(http.StatusOK, leads)
}

// GetLead handles retrieving a single lead by ID together with its interactions
func GetLead(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Getting lead by ID", zap.String("lead_id", id))
	prometheus.RecordLeadOperation("get")

	var lead model.Lead
	result := database.GetDB().First(&lead, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Lead not found", zap.String("lead_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Lead not found",
			})
		}
		log.Error("Failed to fetch lead",
			zap.String("lead_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve lead",
		})
	}

	var interactions []model.Interaction
	if err := database.GetDB().Where("lead_id = ?", lead.ID).Find(&interactions).Error; err != nil {
		log.Error("Failed to load interactions for lead",
			zap.Uint("lead_id", lead.ID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve lead",
		})
	}
	if interactions == nil {
		interactions = []model.Interaction{}
	}

	log.Info("Lead retrieved successfully",
		zap.Uint("lead_id", lead.ID),
		zap.Int("interactions", len(interactions)))
	return c.JSON(http.StatusOK, schema.LeadWithInteractions{
		Lead:         lead,
		Interactions: interactions,
	})
}

// UpdateLead handles partial updates of an existing lead. Only supplied
// fields are changed; updated_at is refreshed on any successful update.
func UpdateLead(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Updating lead", zap.String("lead_id", id))
	prometheus.RecordLeadOperation("update")

	var req schema.LeadUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data",
			zap.String("lead_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if fieldErrs := req.Validate(); len(fieldErrs) > 0 {
		log.Warn("Lead validation failed",
			zap.String("lead_id", id),
			zap.Int("field_errors", len(fieldErrs)))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":   "validation failed",
			"details": fieldErrs,
		})
	}

	// Find existing lead
	var lead model.Lead
	result := database.GetDB().First(&lead, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Lead not found for update", zap.String("lead_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Lead not found",
			})
		}
		log.Error("Failed to fetch lead for update",
			zap.String("lead_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update lead",
		})
	}

	// Check if email is being changed and already belongs to another lead
	if req.Email != nil && *req.Email != lead.Email {
		log.Info("Lead email change requested",
			zap.Uint("lead_id", lead.ID),
			zap.String("old_email", lead.Email),
			zap.String("new_email", *req.Email))

		var count int64
		if err := database.GetDB().Model(&model.Lead{}).
			Where("email = ? AND id <> ?", *req.Email, lead.ID).
			Count(&count).Error; err != nil {
			log.Error("Failed to check email uniqueness", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "Failed to update lead",
			})
		}
		if count > 0 {
			log.Warn("Lead with this email already exists", zap.String("email", *req.Email))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Email already registered",
			})
		}
	}

	// Apply supplied fields
	if req.Name != nil {
		lead.Name = *req.Name
	}
	if req.Company != nil {
		lead.Company = *req.Company
	}
	if req.Email != nil {
		lead.Email = *req.Email
	}
	if req.Phone != nil {
		lead.Phone = req.Phone
	}
	if req.Status != nil {
		lead.Status = *req.Status
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	result = database.GetDB().Save(&lead)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			log.Warn("Lead with this email already exists", zap.String("email", lead.Email))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Email already registered",
			})
		}
		log.Error("Failed to update lead",
			zap.Uint("lead_id", lead.ID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update lead",
		})
	}

	log.Info("Lead updated successfully",
		zap.Uint("lead_id", lead.ID),
		zap.String("status", lead.Status))
	return c.JSON(http.StatusOK, lead)
}

// DeleteLead handles deleting a lead together with all of its interactions.
// Dependent rows are removed in the same transaction as the parent.
func DeleteLead(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Deleting lead", zap.String("lead_id", id))
	prometheus.RecordLeadOperation("delete")

	var lead model.Lead
	result := database.GetDB().First(&lead, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Lead not found for deletion", zap.String("lead_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Lead not found",
			})
		}
		log.Error("Failed to fetch lead for deletion",
			zap.String("lead_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete lead",
		})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lead_id = ?", lead.ID).Delete(&model.Interaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Lead{}, lead.ID).Error
	})
	if err != nil {
		log.Error("Failed to delete lead",
			zap.Uint("lead_id", lead.ID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete lead",
		})
	}

	log.Info("Lead deleted successfully", zap.Uint("lead_id", lead.ID))
	return c.NoContent(http.StatusNoContent)
}
