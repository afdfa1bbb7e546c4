package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"parking-be-svc/internal/middleware"
	"parking-be-svc/internal/models"
	"parking-be-svc/internal/service"
	"parking-be-svc/pkg/logger"
	"parking-be-svc/pkg/utils"
)

// BillingHandler handles bill generation and listing HTTP requests
type BillingHandler struct {
	billingService service.BillingService
	logger         *logger.Logger
}

// NewBillingHandler creates a new BillingHandler instance
func NewBillingHandler(billingService service.BillingService, logger *logger.Logger) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
		logger:         logger,
	}
}

// FormOptions represents the option sets offered by the bill form
type FormOptions struct {
	Slots        []string `json:"slots"`
	Months       []string `json:"months"`
	Years        []string `json:"years"`
	VehicleTypes []string `json:"vehicle_types"`
	PaymentModes []string `json:"payment_modes"`
}

// GetFormOptions returns the fixed option sets for the bill form
// @Summary Get bill form options
// @Description Get the fixed slot, month, year, vehicle type and payment mode option sets
// @Tags bills
// @Produce json
// @Success 200 {object} utils.APIResponse{data=FormOptions} "Form options"
// @Security BearerAuth
// @Router /api/v1/options [get]
func (h *BillingHandler) GetFormOptions(c *gin.Context) {
	utils.SuccessResponse(c, "Form options retrieved successfully", FormOptions{
		Slots:        models.ParkingSlots,
		Months:       models.Months,
		Years:        models.Years,
		VehicleTypes: models.VehicleTypes,
		PaymentModes: models.PaymentModes,
	})
}

// GenerateBill renders a bill PDF and appends the record
// @Summary Generate a monthly parking bill
// @Description Validate the bill form, persist the record and return the generated PDF
// @Tags bills
// @Accept json
// @Produce application/pdf
// @Param request body service.BillInput true "Bill form"
// @Success 200 {file} file "Generated PDF invoice"
// @Failure 400 {object} utils.APIResponse "Invalid form field"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/bills [post]
func (h *BillingHandler) GenerateBill(c *gin.Context) {
	var input service.BillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.WithError(err).Error("Invalid bill request body")
		utils.BadRequestResponse(c, "All bill form fields are required", err)
		return
	}

	bill, err := h.billingService.GenerateBill(input, middleware.CallerUsername(c))
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			h.logger.WithError(err).Warn("Bill form rejected")
			utils.BadRequestResponse(c, "Invalid bill form", err)
			return
		}
		h.logger.WithError(err).Error("Failed to generate bill")
		utils.InternalServerErrorResponse(c, "Error generating bill", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", bill.Filename))
	c.Data(http.StatusOK, "application/pdf", bill.Document)
}

// ListBilled returns every record with groupings and summary stats
// @Summary List billed records
// @Description Get the full record list grouped by slot and by month with summary statistics
// @Tags bills
// @Produce json
// @Success 200 {object} utils.APIResponse{data=service.BilledView} "Billed records"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/bills [get]
func (h *BillingHandler) ListBilled(c *gin.Context) {
	view, err := h.billingService.ListBilled()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list billed records")
		utils.InternalServerErrorResponse(c, "Failed to load billed records", err)
		return
	}

	utils.SuccessResponse(c, "Billed records retrieved successfully", view)
}

// ResetBilled discards every billed record
// @Summary Reset billing data
// @Description Irreversibly discard all billed records. Master only.
// @Tags bills
// @Produce json
// @Success 200 {object} utils.APIResponse "Billing data reset"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 403 {object} utils.APIResponse "Master privileges required"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/bills [delete]
func (h *BillingHandler) ResetBilled(c *gin.Context) {
	if err := h.billingService.ResetBilled(); err != nil {
		h.logger.WithError(err).Error("Failed to reset billing data")
		utils.InternalServerErrorResponse(c, "Error resetting billing data", err)
		return
	}

	h.logger.WithField("username", middleware.CallerUsername(c)).Warn("Billing data reset")
	utils.SuccessResponse(c, "Billing data reset successfully", nil)
}
