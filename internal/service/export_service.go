package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"parking-be-svc/internal/models"
	"parking-be-svc/internal/repository"
	"parking-be-svc/pkg/logger"
)

// ExportService produces the master-only dumps of the persisted state
type ExportService interface {
	Snapshot() (*models.ExportSnapshot, error)
	SnapshotJSON() ([]byte, string, error)
	RecordsCSV() ([]byte, string, error)
	RecordsExcel() ([]byte, string, error)
}

// exportService implements ExportService
type exportService struct {
	recordRepo   repository.RecordRepository
	userRepo     repository.UserRepository
	settingsRepo repository.SettingsRepository
	logger       *logger.Logger
}

// NewExportService creates a new instance of ExportService
func NewExportService(
	recordRepo repository.RecordRepository,
	userRepo repository.UserRepository,
	settingsRepo repository.SettingsRepository,
	logger *logger.Logger,
) ExportService {
	return &exportService{
		recordRepo:   recordRepo,
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Snapshot collects every persisted collection into one structured document
func (s *exportService) Snapshot() (*models.ExportSnapshot, error) {
	records, err := s.recordRepo.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	users, err := s.userRepo.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	settings, err := s.settingsRepo.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	return &models.ExportSnapshot{
		GeneratedAt: time.Now().Format("2006-01-02 15:04:05"),
		Users:       users,
		Records:     records,
		Settings:    settings,
	}, nil
}

// SnapshotJSON serializes the full snapshot for download
func (s *exportService) SnapshotJSON() ([]byte, string, error) {
	snapshot, err := s.Snapshot()
	if err != nil {
		return nil, "", err
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	filename := fmt.Sprintf("parking_snapshot_%s.json", time.Now().Format("20060102_150405"))
	return data, filename, nil
}

var exportHeaders = []string{
	"No", "Customer Name", "Vehicle No", "Vehicle Type", "Slot",
	"Month", "Year", "Payment Mode", "Bill Date", "Bill Amount", "Created By",
}

func exportRow(i int, record models.BillRecord) []string {
	return []string{
		fmt.Sprintf("%d", i+1),
		record.CustomerName,
		record.VehicleNo,
		record.VehicleType,
		record.SlotNumber,
		record.Month,
		record.Year,
		record.PaymentMode,
		record.BillDate,
		record.BillAmount,
		record.CreatedBy,
	}
}

// RecordsCSV dumps the record collection as CSV
func (s *exportService) RecordsCSV() ([]byte, string, error) {
	records, err := s.recordRepo.LoadAll()
	if err != nil {
		return nil, "", fmt.Errorf("failed to load records: %w", err)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(exportHeaders); err != nil {
		return nil, "", fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i, record := range records {
		if err := writer.Write(exportRow(i, record)); err != nil {
			return nil, "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", fmt.Errorf("failed to flush CSV: %w", err)
	}

	filename := fmt.Sprintf("billing_export_%s.csv", time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

// RecordsExcel dumps the record collection as a styled Excel workbook
func (s *exportService) RecordsExcel() ([]byte, string, error) {
	records, err := s.recordRepo.LoadAll()
	if err != nil {
		return nil, "", fmt.Errorf("failed to load records: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.WithError(err).Error("Failed to close Excel file")
		}
	}()

	sheetName := "Billing Data"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	// Write headers
	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	// Style for headers
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#D3D3D3"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err == nil {
		endCell, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		f.SetCellStyle(sheetName, "A1", endCell, headerStyle)
	}

	// Write data
	for i, record := range records {
		for j, value := range exportRow(i, record) {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	// Fixed column widths
	for i := 1; i <= len(exportHeaders); i++ {
		col, _ := excelize.ColumnNumberToName(i)
		f.SetColWidth(sheetName, col, col, 15)
	}

	// Delete default Sheet1 if it exists
	if f.GetSheetName(0) == "Sheet1" && sheetName != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	filename := fmt.Sprintf("billing_export_%s.xlsx", time.Now().Format("20060102_150405"))

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	return buffer.Bytes(), filename, nil
}
