package handler

import (
	"github.com/gin-gonic/gin"

	"parking-be-svc/internal/service"
	"parking-be-svc/pkg/logger"
	"parking-be-svc/pkg/utils"
)

// ReportHandler handles reporting HTTP requests
type ReportHandler struct {
	billingService service.BillingService
	logger         *logger.Logger
}

// NewReportHandler creates a new ReportHandler instance
func NewReportHandler(billingService service.BillingService, logger *logger.Logger) *ReportHandler {
	return &ReportHandler{
		billingService: billingService,
		logger:         logger,
	}
}

// GetReports returns slot-wise and month-wise groupings plus summary stats
// @Summary Get billing reports
// @Description Get slot-wise and month-wise groupings and summary statistics for all records
// @Tags reports
// @Produce json
// @Success 200 {object} utils.APIResponse{data=service.BilledView} "Reports"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/reports [get]
func (h *ReportHandler) GetReports(c *gin.Context) {
	view, err := h.billingService.ListBilled()
	if err != nil {
		h.logger.WithError(err).Error("Failed to build reports")
		utils.InternalServerErrorResponse(c, "Failed to build reports", err)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"total_records":  view.Stats.TotalRecords,
		"active_slots":   view.Stats.ActiveSlots,
		"billing_months": view.Stats.BillingMonths,
	}).Info("Reports retrieved successfully")

	utils.SuccessResponse(c, "Reports retrieved successfully", view)
}
