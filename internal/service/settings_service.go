package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"parking-be-svc/internal/models"
	"parking-be-svc/internal/repository"
	"parking-be-svc/pkg/logger"
)

// SettingsUpdate carries a partial settings change; nil fields are left
// untouched. The merged result is saved wholesale.
type SettingsUpdate struct {
	BusinessName     *string          `json:"business_name,omitempty"`
	BusinessAddress  *string          `json:"business_address,omitempty"`
	BusinessContact  *string          `json:"business_contact,omitempty"`
	MonthlyRate      *decimal.Decimal `json:"monthly_rate,omitempty"`
	DeveloperName    *string          `json:"developer_name,omitempty"`
	DeveloperTagline *string          `json:"developer_tagline,omitempty"`
	SupportContact   *string          `json:"support_contact,omitempty"`
}

// SettingsService defines operations on the settings singleton
type SettingsService interface {
	Get() (models.Settings, error)
	Update(update SettingsUpdate) (models.Settings, error)
}

// settingsService implements SettingsService
type settingsService struct {
	settingsRepo repository.SettingsRepository
	logger       *logger.Logger
}

// NewSettingsService creates a new instance of SettingsService
func NewSettingsService(settingsRepo repository.SettingsRepository, logger *logger.Logger) SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Get returns the current settings
func (s *settingsService) Get() (models.Settings, error) {
	settings, err := s.settingsRepo.Load()
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

// Update merges the partial change into the current settings and saves the
// result wholesale
func (s *settingsService) Update(update SettingsUpdate) (models.Settings, error) {
	settings, err := s.settingsRepo.Load()
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}

	if update.BusinessName != nil {
		settings.BusinessName = *update.BusinessName
	}
	if update.BusinessAddress != nil {
		settings.BusinessAddress = *update.BusinessAddress
	}
	if update.BusinessContact != nil {
		settings.BusinessContact = *update.BusinessContact
	}
	if update.MonthlyRate != nil {
		if update.MonthlyRate.IsNegative() {
			return models.Settings{}, fmt.Errorf("%w: monthly rate cannot be negative", ErrValidation)
		}
		settings.MonthlyRate = *update.MonthlyRate
	}
	if update.DeveloperName != nil {
		settings.DeveloperName = *update.DeveloperName
	}
	if update.DeveloperTagline != nil {
		settings.DeveloperTagline = *update.DeveloperTagline
	}
	if update.SupportContact != nil {
		settings.SupportContact = *update.SupportContact
	}

	if err := s.settingsRepo.Save(settings); err != nil {
		return models.Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}

	s.logger.WithField("monthly_rate", settings.MonthlyRate.String()).Info("Settings updated")
	return settings, nil
}
