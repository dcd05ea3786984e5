package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
	// explicitFile is set when a config file was given on the command line.
	explicitFile string
}

// NewManager creates a configuration manager reading config.toml from the
// XDG config directory, or from file when it is non-empty.
func NewManager(file string) (*Manager, error) {
	v := viper.New()

	v.SetConfigType("toml")
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		configDir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
		}
		v.AddConfigPath(configDir)
	}

	// PREVIEWR_PREVIEW_APPLICATION_ID, PREVIEWR_TELEMETRY_ENABLED, ...
	v.SetEnvPrefix("PREVIEWR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "PREVIEWR_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind PREVIEWR_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "PREVIEWR_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind PREVIEWR_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:        v,
		callbacks:    make([]func(*Config), 0),
		explicitFile: file,
	}, nil
}

// Load loads the configuration from file and environment variables.
// A missing config file is created with the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.explicitFile == "" {
		if err := EnsureDirectories(); err != nil {
			return fmt.Errorf("failed to ensure directories: %w", err)
		}
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	if err := finalizeConfig(config); err != nil {
		return err
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", m.configFilePath(), err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		return fmt.Errorf("failed to create default config at %s: %w", m.configFilePath(), createErr)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	return config, nil
}

func finalizeConfig(config *Config) error {
	if config.Database.Path == "" {
		dbPath, err := GetDatabaseFile()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
		config.Database.Path = dbPath
	}

	config.Preview.ApplicationID = strings.TrimSpace(config.Preview.ApplicationID)
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// Get returns a copy of the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	return m.configFilePath()
}

func (m *Manager) configFilePath() string {
	if m.explicitFile != "" {
		return m.explicitFile
	}
	configFile, err := GetConfigFile()
	if err != nil {
		return configFileName
	}
	return configFile
}

// createDefaultConfig writes the defaults to the config file location.
func (m *Manager) createDefaultConfig() error {
	configFile := m.configFilePath()

	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}

	m.viper.SetConfigType("toml")
	if err := m.viper.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	m.viper.SetConfigFile(configFile)
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	// Note: Database.Path is set dynamically in Load(), no defaults needed

	m.setPreviewDefaults(defaults)
	m.setPreferencesDefaults(defaults)
	m.setTelemetryDefaults(defaults)
	m.setLoggingDefaults(defaults)
}

func (m *Manager) setPreviewDefaults(defaults *Config) {
	m.viper.SetDefault("preview.application_id", defaults.Preview.ApplicationID)
	m.viper.SetDefault("preview.favicon_service", defaults.Preview.FaviconService)
	m.viper.SetDefault("preview.top_offset", defaults.Preview.TopOffset)
	m.viper.SetDefault("preview.side_margin", defaults.Preview.SideMargin)
	m.viper.SetDefault("preview.reader_mode", defaults.Preview.ReaderMode)
	m.viper.SetDefault("preview.demo.width", defaults.Preview.Demo.Width)
	m.viper.SetDefault("preview.demo.height", defaults.Preview.Demo.Height)
	m.viper.SetDefault("preview.demo.top", defaults.Preview.Demo.Top)
}

func (m *Manager) setPreferencesDefaults(defaults *Config) {
	m.viper.SetDefault("preferences.cache_ttl", defaults.Preferences.CacheTTL.String())
}

func (m *Manager) setTelemetryDefaults(defaults *Config) {
	m.viper.SetDefault("telemetry.enabled", defaults.Telemetry.Enabled)
	m.viper.SetDefault("telemetry.queue_size", defaults.Telemetry.QueueSize)
	m.viper.SetDefault("telemetry.events_per_second", defaults.Telemetry.EventsPerSecond)
	m.viper.SetDefault("telemetry.burst", defaults.Telemetry.Burst)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
}
