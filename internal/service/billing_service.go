package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"parking-be-svc/internal/models"
	"parking-be-svc/internal/repository"
	"parking-be-svc/pkg/logger"
)

// ErrValidation marks a rejected bill form field; handlers map it to a 400
var ErrValidation = errors.New("validation failed")

// DocumentBuilder renders the invoice document for a record
type DocumentBuilder interface {
	Build(record models.BillRecord, settings models.Settings) (document []byte, filename string, err error)
}

// BillInput is the submit-bill form payload
type BillInput struct {
	CustomerName string `json:"name" binding:"required"`
	VehicleNo    string `json:"vehicle_no" binding:"required"`
	VehicleType  string `json:"vehicle_type" binding:"required"`
	SlotNumber   string `json:"slot_number" binding:"required"`
	Month        string `json:"month" binding:"required"`
	Year         string `json:"year" binding:"required"`
	PaymentMode  string `json:"payment_mode" binding:"required"`
}

// GeneratedBill is the result of a successful submit-bill operation
type GeneratedBill struct {
	Record   models.BillRecord
	Document []byte
	Filename string
}

// BilledView is the full listing returned for the billed-records view
type BilledView struct {
	Records   []models.BillRecord            `json:"records"`
	SlotWise  map[string][]models.BillRecord `json:"slot_wise"`
	MonthWise map[string][]models.BillRecord `json:"month_wise"`
	Stats     *SummaryStats                  `json:"stats"`
}

// BillingService defines the billing business operations
type BillingService interface {
	GenerateBill(input BillInput, createdBy string) (*GeneratedBill, error)
	ListBilled() (*BilledView, error)
	ResetBilled() error
}

// billingService implements BillingService
type billingService struct {
	recordRepo   repository.RecordRepository
	settingsRepo repository.SettingsRepository
	reports      ReportService
	builder      DocumentBuilder
	logger       *logger.Logger
}

// NewBillingService creates a new instance of BillingService
func NewBillingService(
	recordRepo repository.RecordRepository,
	settingsRepo repository.SettingsRepository,
	reports ReportService,
	builder DocumentBuilder,
	logger *logger.Logger,
) BillingService {
	return &billingService{
		recordRepo:   recordRepo,
		settingsRepo: settingsRepo,
		reports:      reports,
		builder:      builder,
		logger:       logger,
	}
}

// GenerateBill validates the form, renders the invoice and appends the
// record. The record is only persisted after the document rendered, so a
// failure never leaves a partial record behind.
func (s *billingService) GenerateBill(input BillInput, createdBy string) (*GeneratedBill, error) {
	if err := validateBillInput(input); err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	record := models.BillRecord{
		ID:           uuid.New().String(),
		CustomerName: input.CustomerName,
		VehicleNo:    input.VehicleNo,
		VehicleType:  input.VehicleType,
		SlotNumber:   input.SlotNumber,
		Month:        input.Month,
		Year:         input.Year,
		PaymentMode:  input.PaymentMode,
		BillDate:     time.Now().Format("02-01-2006 15:04:05"),
		BillAmount:   settings.FormattedRate(),
		CreatedBy:    createdBy,
	}

	document, filename, err := s.builder.Build(record, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to build bill document: %w", err)
	}

	if err := s.recordRepo.Append(record); err != nil {
		return nil, fmt.Errorf("failed to persist bill record: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"record_id":  record.ID,
		"slot":       record.SlotNumber,
		"period":     record.Period(),
		"created_by": createdBy,
	}).Info("Bill generated successfully")

	return &GeneratedBill{
		Record:   record,
		Document: document,
		Filename: filename,
	}, nil
}

// ListBilled returns the full snapshot with both groupings and stats
func (s *billingService) ListBilled() (*BilledView, error) {
	records, err := s.recordRepo.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	settings, err := s.settingsRepo.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	return &BilledView{
		Records:   records,
		SlotWise:  s.reports.GroupBySlot(records),
		MonthWise: s.reports.GroupByMonth(records),
		Stats:     s.reports.SummaryStats(records, settings),
	}, nil
}

// ResetBilled irreversibly discards every billed record
func (s *billingService) ResetBilled() error {
	if err := s.recordRepo.ResetAll(); err != nil {
		return fmt.Errorf("failed to reset records: %w", err)
	}
	s.logger.Warn("All billed records have been reset")
	return nil
}

func validateBillInput(input BillInput) error {
	if !models.ValidSlot(input.SlotNumber) {
		return fmt.Errorf("%w: unknown parking slot %q", ErrValidation, input.SlotNumber)
	}
	if !models.ValidMonth(input.Month) {
		return fmt.Errorf("%w: unknown month %q", ErrValidation, input.Month)
	}
	if !models.ValidYear(input.Year) {
		return fmt.Errorf("%w: year %q out of range", ErrValidation, input.Year)
	}
	if !models.ValidVehicleType(input.VehicleType) {
		return fmt.Errorf("%w: unknown vehicle type %q", ErrValidation, input.VehicleType)
	}
	if !models.ValidPaymentMode(input.PaymentMode) {
		return fmt.Errorf("%w: unknown payment mode %q", ErrValidation, input.PaymentMode)
	}
	return nil
}
