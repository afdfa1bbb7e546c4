package repository

import (
	"fmt"

	"gorm.io/gorm"

	"parking-be-svc/internal/models"
)

// dbRecordRepository is the embedded-database backend for bill records,
// selected with STORAGE_DRIVER=sqlite. Same contract as the file store.
type dbRecordRepository struct {
	db *gorm.DB
}

// NewDBRecordRepository creates a record repository backed by gorm
func NewDBRecordRepository(db *gorm.DB) RecordRepository {
	return &dbRecordRepository{
		db: db,
	}
}

// LoadAll retrieves every record in insertion order
func (r *dbRecordRepository) LoadAll() ([]models.BillRecord, error) {
	var records []models.BillRecord

	// rowid preserves insertion order for an append-only table
	err := r.db.Order("rowid").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	if records == nil {
		records = []models.BillRecord{}
	}
	return records, nil
}

// Append adds one record
func (r *dbRecordRepository) Append(record models.BillRecord) error {
	if err := r.db.Create(&record).Error; err != nil {
		return fmt.Errorf("failed to append record: %w", err)
	}
	return nil
}

// ResetAll discards every record
func (r *dbRecordRepository) ResetAll() error {
	if err := r.db.Exec("DELETE FROM bill_records").Error; err != nil {
		return fmt.Errorf("failed to reset records: %w", err)
	}
	return nil
}

// ReplaceAll overwrites the whole collection in one transaction
func (r *dbRecordRepository) ReplaceAll(records []models.BillRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM bill_records").Error; err != nil {
			return fmt.Errorf("failed to clear records: %w", err)
		}
		if len(records) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(records, 100).Error; err != nil {
			return fmt.Errorf("failed to insert records: %w", err)
		}
		return nil
	})
}
