package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"parking-be-svc/internal/models"
)

// fileUserRepository persists the username -> password mapping as a single
// JSON document. A missing or unreadable file loads as the default seed set
// so a fresh deployment can always log in.
type fileUserRepository struct {
	path string
	mu   sync.RWMutex
}

// NewFileUserRepository creates a user repository backed by a JSON file
// under dataDir
func NewFileUserRepository(dataDir string) (UserRepository, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &fileUserRepository{
		path: filepath.Join(dataDir, "users.json"),
	}, nil
}

// LoadAll retrieves the credential mapping, seeding defaults when the store
// is missing or corrupt
func (r *fileUserRepository) LoadAll() (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.readLocked(), nil
}

// Upsert adds a user or overwrites an existing password
func (r *fileUserRepository) Upsert(username, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := r.readLocked()
	users[username] = password
	return r.writeLocked(users)
}

// Remove deletes a user from the mapping
func (r *fileUserRepository) Remove(username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := r.readLocked()
	if _, ok := users[username]; !ok {
		return fmt.Errorf("user %q not found", username)
	}
	delete(users, username)
	return r.writeLocked(users)
}

// ReplaceAll overwrites the whole mapping
func (r *fileUserRepository) ReplaceAll(users map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writeLocked(users)
}

func (r *fileUserRepository) readLocked() map[string]string {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return models.DefaultUsers()
	}

	var users map[string]string
	if err := json.Unmarshal(data, &users); err != nil || len(users) == 0 {
		return models.DefaultUsers()
	}
	return users
}

func (r *fileUserRepository) writeLocked(users map[string]string) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode user store: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write user store: %w", err)
	}
	return nil
}
