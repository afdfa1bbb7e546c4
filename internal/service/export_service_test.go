package service

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"parking-be-svc/internal/models"
	"parking-be-svc/internal/repository"
	"parking-be-svc/pkg/logger"
)

func newTestExportService(t *testing.T) (ExportService, repository.RecordRepository) {
	t.Helper()
	dir := t.TempDir()
	recordRepo, err := repository.NewFileRecordRepository(dir)
	if err != nil {
		t.Fatalf("NewFileRecordRepository() error = %v", err)
	}
	userRepo, err := repository.NewFileUserRepository(dir)
	if err != nil {
		t.Fatalf("NewFileUserRepository() error = %v", err)
	}
	settingsRepo, err := repository.NewFileSettingsRepository(dir)
	if err != nil {
		t.Fatalf("NewFileSettingsRepository() error = %v", err)
	}
	return NewExportService(recordRepo, userRepo, settingsRepo, logger.NewLogger("error", "text")), recordRepo
}

func exportRecord(slot string) models.BillRecord {
	return models.BillRecord{
		ID:           "rec-" + slot,
		CustomerName: "Kumar, Swamy",
		VehicleNo:    "TN-31-AB-1234",
		VehicleType:  "car",
		SlotNumber:   slot,
		Month:        "January",
		Year:         "2024",
		PaymentMode:  "UPI",
		BillDate:     "01-01-2024 10:00:00",
		BillAmount:   "Rs. 1000.00",
		CreatedBy:    "Master",
	}
}

func TestSnapshot(t *testing.T) {
	svc, recordRepo := newTestExportService(t)

	if err := recordRepo.Append(exportRecord("SLOT-01")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	snapshot, err := svc.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if len(snapshot.Records) != 1 {
		t.Errorf("snapshot has %d records, want 1", len(snapshot.Records))
	}
	if len(snapshot.Users) != 4 {
		t.Errorf("snapshot has %d users, want seeded 4", len(snapshot.Users))
	}
	if snapshot.Settings.BusinessName == "" {
		t.Error("snapshot settings empty")
	}
	if snapshot.GeneratedAt == "" {
		t.Error("snapshot missing generated_at")
	}
}

func TestSnapshotJSON(t *testing.T) {
	svc, _ := newTestExportService(t)

	data, filename, err := svc.SnapshotJSON()
	if err != nil {
		t.Fatalf("SnapshotJSON() error = %v", err)
	}
	if !strings.HasPrefix(filename, "parking_snapshot_") || !strings.HasSuffix(filename, ".json") {
		t.Errorf("filename = %q", filename)
	}
	if !bytes.Contains(data, []byte(`"users"`)) || !bytes.Contains(data, []byte(`"settings"`)) {
		t.Error("snapshot JSON missing expected collections")
	}
}

func TestRecordsCSV(t *testing.T) {
	svc, recordRepo := newTestExportService(t)

	for _, slot := range []string{"SLOT-01", "SLOT-02"} {
		if err := recordRepo.Append(exportRecord(slot)); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	data, filename, err := svc.RecordsCSV()
	if err != nil {
		t.Fatalf("RecordsCSV() error = %v", err)
	}
	if !strings.HasSuffix(filename, ".csv") {
		t.Errorf("filename = %q, want .csv suffix", filename)
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parsing exported CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("CSV has %d rows, want header + 2", len(rows))
	}
	if rows[0][1] != "Customer Name" {
		t.Errorf("header[1] = %q, want %q", rows[0][1], "Customer Name")
	}
	// Commas in values survive the round trip
	if rows[1][1] != "Kumar, Swamy" {
		t.Errorf("row[1][1] = %q, want %q", rows[1][1], "Kumar, Swamy")
	}
	if rows[2][4] != "SLOT-02" {
		t.Errorf("row[2][4] = %q, want %q", rows[2][4], "SLOT-02")
	}
}

func TestRecordsExcel(t *testing.T) {
	svc, recordRepo := newTestExportService(t)

	if err := recordRepo.Append(exportRecord("SLOT-03")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	data, filename, err := svc.RecordsExcel()
	if err != nil {
		t.Fatalf("RecordsExcel() error = %v", err)
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("filename = %q, want .xlsx suffix", filename)
	}
	// xlsx files are zip archives
	if len(data) < 4 || data[0] != 'P' || data[1] != 'K' {
		t.Error("RecordsExcel() output is not a zip archive")
	}
}
