package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateXDG(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	return root
}

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), dirPerm))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestSetDefaults(t *testing.T) {
	mgr := &Manager{viper: viper.New()}
	mgr.setDefaults()

	assert.Equal(t, "better-previews", mgr.viper.GetString("preview.application_id"))
	assert.Equal(t, "80px", mgr.viper.GetString("preview.top_offset"))
	assert.Equal(t, 10, mgr.viper.GetInt("preview.side_margin"))
	assert.Equal(t, "45%", mgr.viper.GetString("preview.demo.width"))
	assert.Equal(t, 5*time.Minute, mgr.viper.GetDuration("preferences.cache_ttl"))
	assert.Equal(t, 100, mgr.viper.GetInt("telemetry.queue_size"))
	assert.True(t, mgr.viper.GetBool("telemetry.enabled"))
}

func TestManager_FirstRunCreatesDefaultFile(t *testing.T) {
	root := isolateXDG(t)

	mgr, err := NewManager("")
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	configFile := filepath.Join(root, "config", appName, "config.toml")
	assert.FileExists(t, configFile)
	assert.Equal(t, configFile, mgr.GetConfigFile())

	cfg := mgr.Get()
	assert.Equal(t, "better-previews", cfg.Preview.ApplicationID)
	assert.Equal(t, 5*time.Minute, cfg.Preferences.CacheTTL)
	assert.Equal(t, filepath.Join(root, "data", appName, databaseName), cfg.Database.Path)
}

func TestManager_ExplicitFileAndEnvOverride(t *testing.T) {
	isolateXDG(t)
	file := filepath.Join(t.TempDir(), "previewr.toml")
	writeConfig(t, file, `
[preview]
application_id = "custom-app"
reader_mode = true

[preview.demo]
width = "30%"

[preferences]
cache_ttl = "30s"

[database]
path = "/tmp/prefs.db"
`)
	t.Setenv("PREVIEWR_TELEMETRY_BURST", "3")
	t.Setenv("PREVIEWR_LOG_LEVEL", "debug")

	mgr, err := NewManager(file)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, "custom-app", cfg.Preview.ApplicationID)
	assert.True(t, cfg.Preview.ReaderMode)
	assert.Equal(t, "30%", cfg.Preview.Demo.Width)
	assert.Equal(t, "40%", cfg.Preview.Demo.Height)
	assert.Equal(t, 30*time.Second, cfg.Preferences.CacheTTL)
	assert.Equal(t, "/tmp/prefs.db", cfg.Database.Path)
	assert.Equal(t, 3, cfg.Telemetry.Burst)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestManager_InvalidConfigRejected(t *testing.T) {
	isolateXDG(t)
	file := filepath.Join(t.TempDir(), "bad.toml")
	writeConfig(t, file, `
[preview]
application_id = "  "

[telemetry]
queue_size = 0
`)

	mgr, err := NewManager(file)
	require.NoError(t, err)
	err = mgr.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "preview.application_id cannot be empty")
	assert.Contains(t, err.Error(), "telemetry.queue_size must be positive")
}

func TestManager_MalformedTOML(t *testing.T) {
	isolateXDG(t)
	file := filepath.Join(t.TempDir(), "broken.toml")
	writeConfig(t, file, "[preview\napplication_id = ")

	mgr, err := NewManager(file)
	require.NoError(t, err)
	assert.Error(t, mgr.Load())
}

func TestManager_ReloadKeepsPreviousOnError(t *testing.T) {
	isolateXDG(t)
	file := filepath.Join(t.TempDir(), "previewr.toml")
	writeConfig(t, file, "[preview]\napplication_id = \"first\"\n")

	mgr, err := NewManager(file)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	var calls atomic.Int32
	var seen atomic.Value
	mgr.OnConfigChange(func(c *Config) {
		calls.Add(1)
		seen.Store(c.Preview.ApplicationID)
	})

	writeConfig(t, file, "[preview]\napplication_id = \"second\"\n")
	require.NoError(t, mgr.Reload())
	assert.Equal(t, "second", mgr.Get().Preview.ApplicationID)
	assert.Equal(t, "second", seen.Load())

	writeConfig(t, file, "[telemetry]\nburst = -1\n")
	assert.Error(t, mgr.Reload())
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "second", mgr.Get().Preview.ApplicationID)
}

func TestManager_ReloadRunsCallbacksRegisteredBeforeIt(t *testing.T) {
	isolateXDG(t)
	file := filepath.Join(t.TempDir(), "previewr.toml")
	writeConfig(t, file, "[preview]\napplication_id = \"first\"\n")

	mgr, err := NewManager(file)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	var order []string
	mgr.OnConfigChange(func(c *Config) {
		order = append(order, "outer:"+c.Preview.ApplicationID)
		mgr.OnConfigChange(func(c *Config) {
			order = append(order, "inner:"+c.Preview.ApplicationID)
		})
	})

	writeConfig(t, file, "[preview]\napplication_id = \"second\"\n")
	require.NoError(t, mgr.Reload())
	assert.Equal(t, []string{"outer:second"}, order)

	order = nil
	writeConfig(t, file, "[preview]\napplication_id = \"third\"\n")
	require.NoError(t, mgr.Reload())
	assert.Equal(t, []string{"outer:third", "inner:third"}, order)
}

func TestManager_GetBeforeLoadReturnsDefaults(t *testing.T) {
	mgr := &Manager{viper: viper.New()}
	assert.Equal(t, DefaultConfig(), mgr.Get())
}

func TestValidateConfig_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Database.Path = "/tmp/x.db"
	assert.NoError(t, validateConfig(cfg))

	cfg.Logging.Level = "verbose"
	cfg.Logging.Format = "xml"
	cfg.Preview.FaviconService = "not a url"
	err := validateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "logging.format")
	assert.Contains(t, err.Error(), "preview.favicon_service")
}
