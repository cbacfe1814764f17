package driving

import "github.com/custodia-labs/prrelink/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetCaseMode updates the path matching case mode.
	SetCaseMode(mode domain.CaseMode) error

	// SetCompression updates the output compression strategy.
	SetCompression(strategy domain.CompressionStrategy) error

	// SetBackup toggles the .bak copy made before overwriting.
	SetBackup(enabled bool) error

	// SetHistoryEnabled toggles run history persistence.
	SetHistoryEnabled(enabled bool) error

	// SetMetricsTextfile sets the metrics export path. Empty disables export.
	SetMetricsTextfile(path string) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
