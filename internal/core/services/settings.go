package services

import (
	"fmt"

	"github.com/custodia-labs/prrelink/internal/core/domain"
	"github.com/custodia-labs/prrelink/internal/core/ports/driven"
	"github.com/custodia-labs/prrelink/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyCaseMode        = "relink.case_mode"
	keyCompression     = "relink.compression"
	keyBackup          = "relink.backup"
	keyHistoryEnabled  = "history.enabled"
	keyMetricsTextfile = "metrics.textfile"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Unknown or invalid stored values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Relink: domain.RelinkSettings{
			CaseMode:    s.getCaseMode(defaults.Relink.CaseMode),
			Compression: s.getCompression(defaults.Relink.Compression),
			Backup:      s.getBool(keyBackup, defaults.Relink.Backup),
		},
		History: domain.HistorySettings{
			Enabled: s.getBool(keyHistoryEnabled, defaults.History.Enabled),
		},
		Metrics: domain.MetricsSettings{
			TextfilePath: s.configStore.GetString(keyMetricsTextfile),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(keyCaseMode, settings.Relink.CaseMode.String()); err != nil {
		return fmt.Errorf("save case mode: %w", err)
	}
	if err := s.configStore.Set(keyCompression, settings.Relink.Compression.String()); err != nil {
		return fmt.Errorf("save compression: %w", err)
	}
	if err := s.configStore.Set(keyBackup, settings.Relink.Backup); err != nil {
		return fmt.Errorf("save backup: %w", err)
	}
	if err := s.configStore.Set(keyHistoryEnabled, settings.History.Enabled); err != nil {
		return fmt.Errorf("save history enabled: %w", err)
	}
	if err := s.configStore.Set(keyMetricsTextfile, settings.Metrics.TextfilePath); err != nil {
		return fmt.Errorf("save metrics textfile: %w", err)
	}
	return nil
}

// SetCaseMode updates the path matching case mode.
func (s *SettingsService) SetCaseMode(mode domain.CaseMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("%w: invalid case mode: %s", domain.ErrInvalidInput, mode)
	}
	return s.update(func(settings *domain.AppSettings) {
		settings.Relink.CaseMode = mode
	})
}

// SetCompression updates the output compression strategy.
func (s *SettingsService) SetCompression(strategy domain.CompressionStrategy) error {
	if !strategy.IsValid() {
		return fmt.Errorf("%w: invalid compression strategy: %s", domain.ErrInvalidInput, strategy)
	}
	return s.update(func(settings *domain.AppSettings) {
		settings.Relink.Compression = strategy
	})
}

// SetBackup toggles the .bak copy made before overwriting.
func (s *SettingsService) SetBackup(enabled bool) error {
	return s.update(func(settings *domain.AppSettings) {
		settings.Relink.Backup = enabled
	})
}

// SetHistoryEnabled toggles run history persistence.
func (s *SettingsService) SetHistoryEnabled(enabled bool) error {
	return s.update(func(settings *domain.AppSettings) {
		settings.History.Enabled = enabled
	})
}

// SetMetricsTextfile sets the metrics export path.
func (s *SettingsService) SetMetricsTextfile(path string) error {
	return s.update(func(settings *domain.AppSettings) {
		settings.Metrics.TextfilePath = path
	})
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) update(apply func(*domain.AppSettings)) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	apply(settings)
	return s.Save(settings)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getCaseMode(defaultVal domain.CaseMode) domain.CaseMode {
	val := s.configStore.GetString(keyCaseMode)
	if val == "" {
		return defaultVal
	}
	mode := domain.CaseMode(val)
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}

func (s *SettingsService) getCompression(defaultVal domain.CompressionStrategy) domain.CompressionStrategy {
	val := s.configStore.GetString(keyCompression)
	if val == "" {
		return defaultVal
	}
	strategy := domain.CompressionStrategy(val)
	if !strategy.IsValid() {
		return defaultVal
	}
	return strategy
}
