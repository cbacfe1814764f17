package driven

// ConfigStore holds flat, dot-separated settings keys such as
// "relink.case_mode", "relink.compression", "relink.backup",
// "history.enabled" and "metrics.textfile". SettingsService is the only
// caller that interprets them; the store only converts types.
//
// The file adapter nests keys into TOML tables on save. The memory adapter
// is used when the config directory cannot be created.
type ConfigStore interface {
	// Get returns the raw value and whether the key is set.
	Get(key string) (any, bool)

	// GetString returns "" for a missing or non-string key.
	GetString(key string) string

	// GetInt accepts int and int64 (TOML integers decode as int64).
	// Returns 0 otherwise.
	GetInt(key string) int

	// GetBool returns false for a missing or non-bool key. Callers that need
	// a true default check Get first.
	GetBool(key string) bool

	// GetStringSlice keeps only the string items of a TOML array.
	GetStringSlice(key string) []string

	// Set stores value and persists it. On a failed save the previous value
	// is kept.
	Set(key string, value any) error

	Save() error
	Load() error

	// Path is the backing file, or ":memory:".
	Path() string
}
