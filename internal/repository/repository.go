package repository

import "parking-be-svc/internal/models"

// RecordRepository defines the interface for bill record persistence.
// Records are append-only; the only destructive operation is a full reset.
type RecordRepository interface {
	// LoadAll returns every persisted record in insertion order. A store
	// that has never been written to yields an empty slice, not an error.
	LoadAll() ([]models.BillRecord, error)
	// Append adds one record to the end of the collection
	Append(record models.BillRecord) error
	// ResetAll irreversibly discards every record
	ResetAll() error
	// ReplaceAll overwrites the whole collection
	ReplaceAll(records []models.BillRecord) error
}

// UserRepository defines the interface for credential persistence
type UserRepository interface {
	// LoadAll returns the username -> password mapping. A missing or
	// unreadable store yields the default seed set.
	LoadAll() (map[string]string, error)
	// Upsert adds a user or overwrites an existing password
	Upsert(username, password string) error
	// Remove deletes a user. Callers must reject removal of the master
	// identity before calling; the store itself is policy-free.
	Remove(username string) error
	// ReplaceAll overwrites the whole mapping
	ReplaceAll(users map[string]string) error
}

// SettingsRepository defines the interface for the settings singleton
type SettingsRepository interface {
	// Load returns the persisted settings, or defaults if unset
	Load() (models.Settings, error)
	// Save overwrites the settings wholesale
	Save(settings models.Settings) error
}
