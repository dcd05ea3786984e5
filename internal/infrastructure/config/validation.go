package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validateConfig performs validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validatePreview(config)...)
	validationErrors = append(validationErrors, validateTelemetry(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)
	if config.Preferences.CacheTTL < 0 {
		validationErrors = append(validationErrors, "preferences.cache_ttl must be non-negative")
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

func validatePreview(config *Config) []string {
	var validationErrors []string
	p := config.Preview

	if strings.TrimSpace(p.ApplicationID) == "" {
		validationErrors = append(validationErrors, "preview.application_id cannot be empty")
	}
	if u, err := url.Parse(p.FaviconService); err != nil || u.Scheme == "" || u.Host == "" {
		validationErrors = append(validationErrors, "preview.favicon_service must be an absolute URL")
	}
	if p.SideMargin < 0 {
		validationErrors = append(validationErrors, "preview.side_margin must be non-negative")
	}
	for key, v := range map[string]string{
		"preview.top_offset":  p.TopOffset,
		"preview.demo.width":  p.Demo.Width,
		"preview.demo.height": p.Demo.Height,
		"preview.demo.top":    p.Demo.Top,
	} {
		if strings.TrimSpace(v) == "" {
			validationErrors = append(validationErrors, key+" cannot be empty")
		}
	}
	return validationErrors
}

func validateTelemetry(config *Config) []string {
	var validationErrors []string
	t := config.Telemetry
	if t.QueueSize <= 0 {
		validationErrors = append(validationErrors, "telemetry.queue_size must be positive")
	}
	if t.EventsPerSecond <= 0 {
		validationErrors = append(validationErrors, "telemetry.events_per_second must be positive")
	}
	if t.Burst <= 0 {
		validationErrors = append(validationErrors, "telemetry.burst must be positive")
	}
	return validationErrors
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	switch strings.ToLower(config.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.level %q is not a valid level", config.Logging.Level))
	}
	switch strings.ToLower(config.Logging.Format) {
	case "console", "text", "json":
	default:
		validationErrors = append(validationErrors, "logging.format must be console or json")
	}
	return validationErrors
}
