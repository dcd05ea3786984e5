package config

import "time"

// Default configuration constants
const (
	defaultApplicationID  = "better-previews"
	defaultFaviconService = "https://www.google.com/s2/favicons?domain="
	defaultTopOffset      = "80px"
	defaultSideMargin     = 10 // pixels

	defaultDemoWidth  = "45%"
	defaultDemoHeight = "40%"
	defaultDemoTop    = "500px"

	defaultCacheTTL = 5 * time.Minute

	defaultTelemetryQueueSize = 100
	defaultTelemetryRate      = 5.0 // events per second
	defaultTelemetryBurst     = 10
)

// DefaultConfig returns the default configuration values for previewr.
func DefaultConfig() *Config {
	return &Config{
		Preview: PreviewConfig{
			ApplicationID:  defaultApplicationID,
			FaviconService: defaultFaviconService,
			TopOffset:      defaultTopOffset,
			SideMargin:     defaultSideMargin,
			ReaderMode:     false,
			Demo: DemoConfig{
				Width:  defaultDemoWidth,
				Height: defaultDemoHeight,
				Top:    defaultDemoTop,
			},
		},
		Database: DatabaseConfig{
			// Path is set dynamically in Load()
		},
		Preferences: PreferencesConfig{
			CacheTTL: defaultCacheTTL,
		},
		Telemetry: TelemetryConfig{
			Enabled:         true,
			QueueSize:       defaultTelemetryQueueSize,
			EventsPerSecond: defaultTelemetryRate,
			Burst:           defaultTelemetryBurst,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
