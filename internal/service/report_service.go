package service

import (
	"github.com/shopspring/decimal"

	"parking-be-svc/internal/models"
)

// ReportService defines the slot-wise and month-wise grouping and summary
// statistics derived from a record snapshot. Everything is recomputed per
// request from the full snapshot; record volume is bounded by 14 slots, so
// no incremental state is kept.
type ReportService interface {
	GroupBySlot(records []models.BillRecord) map[string][]models.BillRecord
	GroupByMonth(records []models.BillRecord) map[string][]models.BillRecord
	SummaryStats(records []models.BillRecord, settings models.Settings) *SummaryStats
}

// SummaryStats holds the aggregate figures shown on the reports view
type SummaryStats struct {
	TotalRecords  int             `json:"total_records"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	ActiveSlots   int             `json:"active_slots"`
	BillingMonths int             `json:"billing_months"`
}

// reportService implements ReportService
type reportService struct{}

// NewReportService creates a new instance of ReportService
func NewReportService() ReportService {
	return &reportService{}
}

// GroupBySlot partitions records by slot identifier. Insertion order within
// a slot is preserved; slots with no records are absent from the map.
func (s *reportService) GroupBySlot(records []models.BillRecord) map[string][]models.BillRecord {
	grouped := make(map[string][]models.BillRecord)
	for _, record := range records {
		grouped[record.SlotNumber] = append(grouped[record.SlotNumber], record)
	}
	return grouped
}

// GroupByMonth partitions records by the literal "Month Year" composite key
func (s *reportService) GroupByMonth(records []models.BillRecord) map[string][]models.BillRecord {
	grouped := make(map[string][]models.BillRecord)
	for _, record := range records {
		grouped[record.Period()] = append(grouped[record.Period()], record)
	}
	return grouped
}

// SummaryStats computes the aggregate figures for a snapshot. Revenue is
// record count times the configured monthly rate, not a sum of the stored
// amount strings.
func (s *reportService) SummaryStats(records []models.BillRecord, settings models.Settings) *SummaryStats {
	slots := make(map[string]struct{})
	periods := make(map[string]struct{})
	for _, record := range records {
		slots[record.SlotNumber] = struct{}{}
		periods[record.Period()] = struct{}{}
	}

	return &SummaryStats{
		TotalRecords:  len(records),
		TotalRevenue:  settings.MonthlyRate.Mul(decimal.NewFromInt(int64(len(records)))),
		ActiveSlots:   len(slots),
		BillingMonths: len(periods),
	}
}
