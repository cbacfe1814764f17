package domain

const unknownDescription = "Unknown"

// CaseMode controls case folding when matching paths.
type CaseMode string

// Available case modes.
const (
	// CaseModeAuto folds case on case-insensitive hosts and for Windows-style paths.
	CaseModeAuto CaseMode = "auto"

	// CaseModeAlways folds case for every path.
	CaseModeAlways CaseMode = "always"

	// CaseModeNever matches paths byte for byte after separator normalisation.
	CaseModeNever CaseMode = "never"
)

// IsValid returns true if the case mode is recognised.
func (m CaseMode) IsValid() bool {
	switch m {
	case CaseModeAuto, CaseModeAlways, CaseModeNever:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m CaseMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m CaseMode) Description() string {
	switch m {
	case CaseModeAuto:
		return "Auto (fold on case-insensitive hosts and Windows paths)"
	case CaseModeAlways:
		return "Always (case-insensitive matching)"
	case CaseModeNever:
		return "Never (case-sensitive matching)"
	default:
		return unknownDescription
	}
}

// CompressionStrategy controls how containers are written.
type CompressionStrategy string

// Available compression strategies.
const (
	// CompressionPreferCompressed writes gzip and falls back to plain XML.
	CompressionPreferCompressed CompressionStrategy = "prefer_compressed"

	// CompressionPlainTextOnly always writes plain XML.
	CompressionPlainTextOnly CompressionStrategy = "plain_text_only"
)

// IsValid returns true if the strategy is recognised.
func (c CompressionStrategy) IsValid() bool {
	return c == CompressionPreferCompressed || c == CompressionPlainTextOnly
}

// String returns the string representation.
func (c CompressionStrategy) String() string {
	return string(c)
}

// Description returns a human-readable description of the strategy.
func (c CompressionStrategy) Description() string {
	switch c {
	case CompressionPreferCompressed:
		return "Compressed (gzip, plain XML fallback)"
	case CompressionPlainTextOnly:
		return "Plain XML"
	default:
		return unknownDescription
	}
}

// RelinkSettings holds relinking behaviour configuration.
type RelinkSettings struct {
	// CaseMode controls case folding during path matching.
	CaseMode CaseMode

	// Compression controls the output container format.
	Compression CompressionStrategy

	// Backup copies an existing destination to <dest>.bak before overwriting.
	Backup bool
}

// HistorySettings controls run history persistence.
type HistorySettings struct {
	Enabled bool
}

// MetricsSettings controls the Prometheus textfile export.
type MetricsSettings struct {
	// TextfilePath is where metrics are written after each run. Empty disables export.
	TextfilePath string
}

// AppSettings aggregates all application settings.
type AppSettings struct {
	Relink  RelinkSettings
	History HistorySettings
	Metrics MetricsSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Relink: RelinkSettings{
			CaseMode:    CaseModeAuto,
			Compression: CompressionPreferCompressed,
			Backup:      true,
		},
		History: HistorySettings{
			Enabled: true,
		},
	}
}
