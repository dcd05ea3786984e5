// Package config loads previewr configuration with Viper.
package config

import "time"

// File permission constants
const (
	dirPerm = 0755 // Standard directory permissions (rwxr-xr-x)
)

// Config is the complete previewr configuration.
type Config struct {
	Preview     PreviewConfig     `mapstructure:"preview" toml:"preview"`
	Database    DatabaseConfig    `mapstructure:"database" toml:"database"`
	Preferences PreferencesConfig `mapstructure:"preferences" toml:"preferences"`
	Telemetry   TelemetryConfig   `mapstructure:"telemetry" toml:"telemetry"`
	Logging     LoggingConfig     `mapstructure:"logging" toml:"logging"`
}

// PreviewConfig holds the static settings of the preview session.
type PreviewConfig struct {
	// ApplicationID is the package identity checked by the message router.
	ApplicationID  string     `mapstructure:"application_id" toml:"application_id"`
	FaviconService string     `mapstructure:"favicon_service" toml:"favicon_service"`
	TopOffset      string     `mapstructure:"top_offset" toml:"top_offset"`
	SideMargin     int        `mapstructure:"side_margin" toml:"side_margin"`
	ReaderMode     bool       `mapstructure:"reader_mode" toml:"reader_mode"`
	Demo           DemoConfig `mapstructure:"demo" toml:"demo"`
}

// DemoConfig is the fixed placement used in demo mode.
type DemoConfig struct {
	Width  string `mapstructure:"width" toml:"width"`
	Height string `mapstructure:"height" toml:"height"`
	Top    string `mapstructure:"top" toml:"top"`
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path" toml:"path"`
}

// PreferencesConfig configures the preference store.
type PreferencesConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl" toml:"cache_ttl"`
}

// TelemetryConfig configures the telemetry sink.
type TelemetryConfig struct {
	Enabled         bool    `mapstructure:"enabled" toml:"enabled"`
	QueueSize       int     `mapstructure:"queue_size" toml:"queue_size"`
	EventsPerSecond float64 `mapstructure:"events_per_second" toml:"events_per_second"`
	Burst           int     `mapstructure:"burst" toml:"burst"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level"`
	Format string `mapstructure:"format" toml:"format"`
}
