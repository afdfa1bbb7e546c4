package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"parking-be-svc/internal/models"
)

// fileRecordRepository persists bill records as a single JSON document.
// Every mutation is a whole-file read-rewrite; the mutex serializes those
// cycles so concurrent appends cannot lose records.
type fileRecordRepository struct {
	path string
	mu   sync.RWMutex
}

// NewFileRecordRepository creates a record repository backed by a JSON file
// under dataDir
func NewFileRecordRepository(dataDir string) (RecordRepository, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &fileRecordRepository{
		path: filepath.Join(dataDir, "records.json"),
	}, nil
}

// LoadAll retrieves every persisted record in insertion order
func (r *fileRecordRepository) LoadAll() ([]models.BillRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.readLocked()
}

// Append adds one record to the end of the persisted collection
func (r *fileRecordRepository) Append(record models.BillRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.readLocked()
	if err != nil {
		return err
	}
	records = append(records, record)
	return r.writeLocked(records)
}

// ResetAll discards every record, leaving an empty collection
func (r *fileRecordRepository) ResetAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writeLocked([]models.BillRecord{})
}

// ReplaceAll overwrites the whole collection
func (r *fileRecordRepository) ReplaceAll(records []models.BillRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writeLocked(records)
}

func (r *fileRecordRepository) readLocked() ([]models.BillRecord, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		// No data yet is not a failure
		return []models.BillRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read record store: %w", err)
	}

	var records []models.BillRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode record store: %w", err)
	}
	if records == nil {
		records = []models.BillRecord{}
	}
	return records, nil
}

func (r *fileRecordRepository) writeLocked(records []models.BillRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode record store: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write record store: %w", err)
	}
	return nil
}
