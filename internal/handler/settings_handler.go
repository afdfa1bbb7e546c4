package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"parking-be-svc/internal/service"
	"parking-be-svc/pkg/logger"
	"parking-be-svc/pkg/utils"
)

// SettingsHandler handles settings HTTP requests
type SettingsHandler struct {
	settingsService service.SettingsService
	logger          *logger.Logger
}

// NewSettingsHandler creates a new SettingsHandler instance
func NewSettingsHandler(settingsService service.SettingsService, logger *logger.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

// GetSettings returns the current business configuration
// @Summary Get settings
// @Description Get the business and developer configuration. Master only.
// @Tags settings
// @Produce json
// @Success 200 {object} utils.APIResponse{data=models.Settings} "Settings"
// @Failure 403 {object} utils.APIResponse "Master privileges required"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.Get()
	if err != nil {
		h.logger.WithError(err).Error("Failed to load settings")
		utils.InternalServerErrorResponse(c, "Failed to load settings", err)
		return
	}

	utils.SuccessResponse(c, "Settings retrieved successfully", settings)
}

// UpdateSettings merges a partial change into the settings singleton
// @Summary Update settings
// @Description Apply a partial settings update; omitted fields keep their value. Master only.
// @Tags settings
// @Accept json
// @Produce json
// @Param request body service.SettingsUpdate true "Partial settings"
// @Success 200 {object} utils.APIResponse{data=models.Settings} "Updated settings"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 403 {object} utils.APIResponse "Master privileges required"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var update service.SettingsUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		h.logger.WithError(err).Error("Invalid settings request body")
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	settings, err := h.settingsService.Update(update)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			utils.BadRequestResponse(c, "Invalid settings value", err)
			return
		}
		h.logger.WithError(err).Error("Failed to update settings")
		utils.InternalServerErrorResponse(c, "Failed to update settings", err)
		return
	}

	utils.SuccessResponse(c, "Settings updated successfully", settings)
}
