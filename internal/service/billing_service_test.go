package service

import (
	"errors"
	"fmt"
	"testing"

	"parking-be-svc/internal/models"
	"parking-be-svc/internal/repository"
	"parking-be-svc/pkg/logger"
)

// stubBuilder stands in for the PDF builder so billing tests stay fast
type stubBuilder struct {
	fail bool
}

func (b *stubBuilder) Build(record models.BillRecord, settings models.Settings) ([]byte, string, error) {
	if b.fail {
		return nil, "", errors.New("render failed")
	}
	return []byte("document"), fmt.Sprintf("Parking_Bill_%s.pdf", record.Month), nil
}

func newTestBillingService(t *testing.T, builder DocumentBuilder) (BillingService, repository.RecordRepository) {
	t.Helper()
	dir := t.TempDir()
	recordRepo, err := repository.NewFileRecordRepository(dir)
	if err != nil {
		t.Fatalf("NewFileRecordRepository() error = %v", err)
	}
	settingsRepo, err := repository.NewFileSettingsRepository(dir)
	if err != nil {
		t.Fatalf("NewFileSettingsRepository() error = %v", err)
	}
	svc := NewBillingService(recordRepo, settingsRepo, NewReportService(), builder, logger.NewLogger("error", "text"))
	return svc, recordRepo
}

func validInput() BillInput {
	return BillInput{
		CustomerName: "Kumar Swamy",
		VehicleNo:    "TN-31-AB-1234",
		VehicleType:  "car",
		SlotNumber:   "SLOT-01",
		Month:        "January",
		Year:         "2024",
		PaymentMode:  "Cash",
	}
}

func TestGenerateBill(t *testing.T) {
	svc, recordRepo := newTestBillingService(t, &stubBuilder{})

	bill, err := svc.GenerateBill(validInput(), "Venkatesan")
	if err != nil {
		t.Fatalf("GenerateBill() error = %v", err)
	}

	if len(bill.Document) == 0 {
		t.Error("GenerateBill() returned empty document")
	}
	if bill.Record.ID == "" {
		t.Error("generated record has empty ID")
	}
	if bill.Record.BillAmount != "Rs. 1000.00" {
		t.Errorf("BillAmount = %q, want %q", bill.Record.BillAmount, "Rs. 1000.00")
	}
	if bill.Record.CreatedBy != "Venkatesan" {
		t.Errorf("CreatedBy = %q, want %q", bill.Record.CreatedBy, "Venkatesan")
	}
	if bill.Record.Period() != "January 2024" {
		t.Errorf("Period() = %q, want %q", bill.Record.Period(), "January 2024")
	}

	records, err := recordRepo.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("store has %d records after GenerateBill(), want 1", len(records))
	}
	if records[0].ID != bill.Record.ID {
		t.Errorf("persisted record ID = %q, want %q", records[0].ID, bill.Record.ID)
	}
}

func TestGenerateBill_Validation(t *testing.T) {
	svc, recordRepo := newTestBillingService(t, &stubBuilder{})

	tests := []struct {
		name   string
		mutate func(input *BillInput)
	}{
		{name: "unknown slot", mutate: func(i *BillInput) { i.SlotNumber = "SLOT-15" }},
		{name: "unknown month", mutate: func(i *BillInput) { i.Month = "Januar" }},
		{name: "year out of range", mutate: func(i *BillInput) { i.Year = "2019" }},
		{name: "unknown vehicle type", mutate: func(i *BillInput) { i.VehicleType = "boat" }},
		{name: "unknown payment mode", mutate: func(i *BillInput) { i.PaymentMode = "Cheque" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)

			if _, err := svc.GenerateBill(input, "Master"); !errors.Is(err, ErrValidation) {
				t.Errorf("GenerateBill() error = %v, want %v", err, ErrValidation)
			}
		})
	}

	// No partial records from rejected forms
	records, err := recordRepo.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("store has %d records after rejected forms, want 0", len(records))
	}
}

func TestGenerateBill_BuilderFailureLeavesNoRecord(t *testing.T) {
	svc, recordRepo := newTestBillingService(t, &stubBuilder{fail: true})

	if _, err := svc.GenerateBill(validInput(), "Master"); err == nil {
		t.Fatal("GenerateBill() with failing builder returned nil error")
	}

	records, err := recordRepo.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("store has %d records after failed render, want 0", len(records))
	}
}

func TestGenerateBill_NoDoubleBookingRule(t *testing.T) {
	svc, recordRepo := newTestBillingService(t, &stubBuilder{})

	// The same slot/month/year may be billed twice
	for i := 0; i < 2; i++ {
		if _, err := svc.GenerateBill(validInput(), "Master"); err != nil {
			t.Fatalf("GenerateBill() #%d error = %v", i+1, err)
		}
	}

	records, err := recordRepo.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(records) != 2 {
		t.Errorf("store has %d records, want 2", len(records))
	}
}

func TestListBilled(t *testing.T) {
	svc, _ := newTestBillingService(t, &stubBuilder{})

	first := validInput()
	second := validInput()
	second.Month = "February"
	for _, input := range []BillInput{first, second} {
		if _, err := svc.GenerateBill(input, "Master"); err != nil {
			t.Fatalf("GenerateBill() error = %v", err)
		}
	}

	view, err := svc.ListBilled()
	if err != nil {
		t.Fatalf("ListBilled() error = %v", err)
	}

	if len(view.Records) != 2 {
		t.Errorf("view has %d records, want 2", len(view.Records))
	}
	if len(view.SlotWise) != 1 || len(view.SlotWise["SLOT-01"]) != 2 {
		t.Errorf("SlotWise = %v, want one SLOT-01 group of 2", len(view.SlotWise))
	}
	if len(view.MonthWise) != 2 {
		t.Errorf("MonthWise has %d keys, want 2", len(view.MonthWise))
	}
	if len(view.MonthWise["January 2024"]) != 1 || len(view.MonthWise["February 2024"]) != 1 {
		t.Error("MonthWise groups malformed")
	}
	if view.Stats.TotalRecords != 2 || view.Stats.ActiveSlots != 1 || view.Stats.BillingMonths != 2 {
		t.Errorf("Stats = %+v, want {2, _, 1, 2}", view.Stats)
	}
}

func TestResetBilled(t *testing.T) {
	svc, recordRepo := newTestBillingService(t, &stubBuilder{})

	if _, err := svc.GenerateBill(validInput(), "Master"); err != nil {
		t.Fatalf("GenerateBill() error = %v", err)
	}
	if err := svc.ResetBilled(); err != nil {
		t.Fatalf("ResetBilled() error = %v", err)
	}

	records, err := recordRepo.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("store has %d records after reset, want 0", len(records))
	}
}
