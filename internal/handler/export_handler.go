package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"parking-be-svc/internal/service"
	"parking-be-svc/pkg/logger"
	"parking-be-svc/pkg/utils"
)

// ExportHandler handles master-only export HTTP requests
type ExportHandler struct {
	exportService service.ExportService
	logger        *logger.Logger
}

// NewExportHandler creates a new ExportHandler instance
func NewExportHandler(exportService service.ExportService, logger *logger.Logger) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		logger:        logger,
	}
}

// ExportSnapshot downloads the full users+records+settings dump
// @Summary Export full snapshot
// @Description Download users, records and settings as one JSON document. Master only.
// @Tags export
// @Produce json
// @Success 200 {file} file "Snapshot document"
// @Failure 403 {object} utils.APIResponse "Master privileges required"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/export/snapshot [get]
func (h *ExportHandler) ExportSnapshot(c *gin.Context) {
	data, filename, err := h.exportService.SnapshotJSON()
	if err != nil {
		h.logger.WithError(err).Error("Failed to export snapshot")
		utils.InternalServerErrorResponse(c, "Failed to export snapshot", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", data)
}

// ExportRecordsCSV downloads the record collection as CSV
// @Summary Export records as CSV
// @Description Download the full record collection as a CSV file. Master only.
// @Tags export
// @Produce text/csv
// @Success 200 {file} file "CSV dump"
// @Failure 403 {object} utils.APIResponse "Master privileges required"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/export/records.csv [get]
func (h *ExportHandler) ExportRecordsCSV(c *gin.Context) {
	data, filename, err := h.exportService.RecordsCSV()
	if err != nil {
		h.logger.WithError(err).Error("Failed to export records CSV")
		utils.InternalServerErrorResponse(c, "Failed to export records", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}

// ExportRecordsExcel downloads the record collection as an Excel workbook
// @Summary Export records as Excel
// @Description Download the full record collection as an xlsx workbook. Master only.
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "Excel dump"
// @Failure 403 {object} utils.APIResponse "Master privileges required"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/export/records.xlsx [get]
func (h *ExportHandler) ExportRecordsExcel(c *gin.Context) {
	data, filename, err := h.exportService.RecordsExcel()
	if err != nil {
		h.logger.WithError(err).Error("Failed to export records Excel")
		utils.InternalServerErrorResponse(c, "Failed to export records", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
