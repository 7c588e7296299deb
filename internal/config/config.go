// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the read-API listen address, e.g. ":8080".
	// Empty disables serving after the batch run.
	Addr string `koanf:"addr"`

	// DirectoryPath locates the master directory table (CSV).
	DirectoryPath string `koanf:"directory_path"`

	// EventLogPath locates the ad-hoc event log (CSV).
	EventLogPath string `koanf:"event_log_path"`

	// ServiceLogPath locates the recurring-service log (CSV).
	ServiceLogPath string `koanf:"service_log_path"`

	// StatsPath locates the downstream stats table used for roster
	// filtering. Optional; when empty the roster derives from the run's
	// own summaries.
	StatsPath string `koanf:"stats_path"`

	// OutputPath is where the summary table is written. Empty skips export.
	OutputPath string `koanf:"output_path"`

	// Timezone names the zone calendar windows and wire dates use.
	// Empty means the process-local zone.
	Timezone string `koanf:"timezone"`

	// CoreThreshold and ActiveThreshold drive activity classification.
	CoreThreshold   int `koanf:"core_threshold"`
	ActiveThreshold int `koanf:"active_threshold"`

	// RosterRecencyDays keeps Inactive people on the roster this long
	// after their last attendance.
	RosterRecencyDays int `koanf:"roster_recency_days"`

	// IDScanLimit bounds consecutive identifier allocation collisions.
	IDScanLimit int `koanf:"id_scan_limit"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              "",
		DirectoryPath:     "directory.csv",
		EventLogPath:      "events.csv",
		ServiceLogPath:    "services.csv",
		StatsPath:         "",
		OutputPath:        "attendance_stats.csv",
		Timezone:          "",
		CoreThreshold:     12,
		ActiveThreshold:   3,
		RosterRecencyDays: 90,
		IDScanLimit:       20000,
	}
}
