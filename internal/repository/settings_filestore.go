package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"parking-be-svc/internal/models"
)

// fileSettingsRepository persists the settings singleton as a single JSON
// document, defaults applied when the document is absent
type fileSettingsRepository struct {
	path string
	mu   sync.RWMutex
}

// NewFileSettingsRepository creates a settings repository backed by a JSON
// file under dataDir
func NewFileSettingsRepository(dataDir string) (SettingsRepository, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &fileSettingsRepository{
		path: filepath.Join(dataDir, "settings.json"),
	}, nil
}

// Load retrieves the persisted settings, or defaults if unset
func (r *fileSettingsRepository) Load() (models.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to read settings store: %w", err)
	}

	// Start from defaults so absent optional fields stay safe on load
	settings := models.DefaultSettings()
	if err := json.Unmarshal(data, &settings); err != nil {
		return models.Settings{}, fmt.Errorf("failed to decode settings store: %w", err)
	}
	return settings, nil
}

// Save overwrites the settings wholesale
func (r *fileSettingsRepository) Save(settings models.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings store: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings store: %w", err)
	}
	return nil
}
