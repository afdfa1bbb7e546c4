package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"parking-be-svc/internal/models"
)

func testRecord(i int) models.BillRecord {
	return models.BillRecord{
		ID:           fmt.Sprintf("id-%03d", i),
		CustomerName: fmt.Sprintf("Customer %d", i),
		VehicleNo:    fmt.Sprintf("TN-31-%04d", i),
		VehicleType:  "car",
		SlotNumber:   fmt.Sprintf("SLOT-%02d", i%14+1),
		Month:        "January",
		Year:         "2024",
		PaymentMode:  "Cash",
		BillDate:     "01-01-2024 10:00:00",
		BillAmount:   "Rs. 1000.00",
		CreatedBy:    "Master",
	}
}

func TestFileRecordRepository_AppendPreservesOrder(t *testing.T) {
	repo, err := NewFileRecordRepository(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileRecordRepository() error = %v", err)
	}

	const n = 25
	for i := 0; i < n; i++ {
		if err := repo.Append(testRecord(i)); err != nil {
			t.Fatalf("Append(%d) error = %v", i, err)
		}
	}

	records, err := repo.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(records) != n {
		t.Fatalf("LoadAll() returned %d records, want %d", len(records), n)
	}
	for i, record := range records {
		if want := fmt.Sprintf("id-%03d", i); record.ID != want {
			t.Errorf("records[%d].ID = %q, want %q", i, record.ID, want)
		}
	}
}

func TestFileRecordRepository_EmptyStore(t *testing.T) {
	repo, err := NewFileRecordRepository(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileRecordRepository() error = %v", err)
	}

	records, err := repo.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() on missing file error = %v, want nil", err)
	}
	if len(records) != 0 {
		t.Errorf("LoadAll() on missing file returned %d records, want 0", len(records))
	}
}

func TestFileRecordRepository_ResetAll(t *testing.T) {
	repo, err := NewFileRecordRepository(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileRecordRepository() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := repo.Append(testRecord(i)); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
	if err := repo.ResetAll(); err != nil {
		t.Fatalf("ResetAll() error = %v", err)
	}

	records, err := repo.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("LoadAll() after reset returned %d records, want 0", len(records))
	}
}

func TestFileRecordRepository_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRecordRepository(dir)
	if err != nil {
		t.Fatalf("NewFileRecordRepository() error = %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "records.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := repo.LoadAll(); err == nil {
		t.Error("LoadAll() on corrupt file returned nil error, want decode error")
	}
}

func TestFileRecordRepository_ConcurrentAppends(t *testing.T) {
	repo, err := NewFileRecordRepository(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileRecordRepository() error = %v", err)
	}

	const workers = 10
	const perWorker = 5

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if err := repo.Append(testRecord(w*perWorker + i)); err != nil {
					t.Errorf("Append() error = %v", err)
				}
			}
		}(w)
	}
	wg.Wait()

	records, err := repo.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(records) != workers*perWorker {
		t.Errorf("LoadAll() returned %d records after concurrent appends, want %d", len(records), workers*perWorker)
	}
}

func TestFileRecordRepository_ReplaceAll(t *testing.T) {
	repo, err := NewFileRecordRepository(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileRecordRepository() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := repo.Append(testRecord(i)); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	replacement := []models.BillRecord{testRecord(10), testRecord(11)}
	if err := repo.ReplaceAll(replacement); err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}

	records, err := repo.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("LoadAll() returned %d records after ReplaceAll(), want 2", len(records))
	}
	if records[0].ID != "id-010" || records[1].ID != "id-011" {
		t.Errorf("records = [%s, %s], want [id-010, id-011]", records[0].ID, records[1].ID)
	}

	if err := repo.ReplaceAll([]models.BillRecord{}); err != nil {
		t.Fatalf("ReplaceAll(empty) error = %v", err)
	}
	records, err = repo.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("LoadAll() returned %d records after empty ReplaceAll(), want 0", len(records))
	}
}

func TestFileUserRepository_SeedsDefaults(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(t *testing.T, dir string)
	}{
		{
			name:    "missing file",
			prepare: func(t *testing.T, dir string) {},
		},
		{
			name: "corrupt file",
			prepare: func(t *testing.T, dir string) {
				if err := os.WriteFile(filepath.Join(dir, "users.json"), []byte("garbage"), 0o644); err != nil {
					t.Fatalf("WriteFile() error = %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.prepare(t, dir)

			repo, err := NewFileUserRepository(dir)
			if err != nil {
				t.Fatalf("NewFileUserRepository() error = %v", err)
			}

			users, err := repo.LoadAll()
			if err != nil {
				t.Fatalf("LoadAll() error = %v", err)
			}
			if users[models.MasterUsername] != "Master123" {
				t.Errorf("seed master password = %q, want %q", users[models.MasterUsername], "Master123")
			}
			if len(users) != 4 {
				t.Errorf("seed set has %d users, want 4", len(users))
			}
		})
	}
}

func TestFileUserRepository_UpsertAndRemove(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileUserRepository(dir)
	if err != nil {
		t.Fatalf("NewFileUserRepository() error = %v", err)
	}

	if err := repo.Upsert("alice", "pw1"); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	// Re-open to prove the change was persisted, not cached
	repo2, err := NewFileUserRepository(dir)
	if err != nil {
		t.Fatalf("NewFileUserRepository() error = %v", err)
	}
	users, err := repo2.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if users["alice"] != "pw1" {
		t.Errorf("persisted alice password = %q, want %q", users["alice"], "pw1")
	}

	if err := repo2.Remove("alice"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	users, err = repo2.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if _, ok := users["alice"]; ok {
		t.Error("alice still present after Remove()")
	}

	if err := repo2.Remove("nobody"); err == nil {
		t.Error("Remove() of unknown user returned nil error")
	}
}

func TestFileUserRepository_ReplaceAll(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileUserRepository(dir)
	if err != nil {
		t.Fatalf("NewFileUserRepository() error = %v", err)
	}

	replacement := map[string]string{
		models.MasterUsername: "Master123",
		"alice":               "pw1",
	}
	if err := repo.ReplaceAll(replacement); err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}

	// Re-open to prove the mapping was persisted, not cached
	repo2, err := NewFileUserRepository(dir)
	if err != nil {
		t.Fatalf("NewFileUserRepository() error = %v", err)
	}
	users, err := repo2.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("LoadAll() returned %d users after ReplaceAll(), want 2", len(users))
	}
	if users["alice"] != "pw1" {
		t.Errorf("alice password = %q, want %q", users["alice"], "pw1")
	}
	if _, ok := users["Venkatesan"]; ok {
		t.Error("seeded user survived ReplaceAll()")
	}
}

func TestFileSettingsRepository_Defaults(t *testing.T) {
	repo, err := NewFileSettingsRepository(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileSettingsRepository() error = %v", err)
	}

	settings, err := repo.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if settings.BusinessName != "VENGATESAN CAR PARKING" {
		t.Errorf("default business name = %q", settings.BusinessName)
	}
	if settings.FormattedRate() != "Rs. 1000.00" {
		t.Errorf("default formatted rate = %q, want %q", settings.FormattedRate(), "Rs. 1000.00")
	}
}

func TestFileSettingsRepository_SaveLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileSettingsRepository(dir)
	if err != nil {
		t.Fatalf("NewFileSettingsRepository() error = %v", err)
	}

	settings := models.DefaultSettings()
	settings.BusinessName = "NEW NAME"
	if err := repo.Save(settings); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := repo.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.BusinessName != "NEW NAME" {
		t.Errorf("loaded business name = %q, want %q", loaded.BusinessName, "NEW NAME")
	}
	// Untouched fields keep their values through the rewrite
	if loaded.DeveloperName != "CODE HIVE" {
		t.Errorf("loaded developer name = %q, want %q", loaded.DeveloperName, "CODE HIVE")
	}
}

func TestFileSettingsRepository_AbsentFieldsDefault(t *testing.T) {
	dir := t.TempDir()
	// A partial document from an older variant: only the business name
	if err := os.WriteFile(filepath.Join(dir, "settings.json"), []byte(`{"business_name":"OLD PARKING"}`), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	repo, err := NewFileSettingsRepository(dir)
	if err != nil {
		t.Fatalf("NewFileSettingsRepository() error = %v", err)
	}

	settings, err := repo.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if settings.BusinessName != "OLD PARKING" {
		t.Errorf("business name = %q, want %q", settings.BusinessName, "OLD PARKING")
	}
	if !settings.MonthlyRate.Equal(models.DefaultSettings().MonthlyRate) {
		t.Errorf("monthly rate = %s, want default %s", settings.MonthlyRate, models.DefaultSettings().MonthlyRate)
	}
}
