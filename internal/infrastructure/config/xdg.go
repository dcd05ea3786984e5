package config

import (
	"errors"
	"os"
	"path/filepath"
)

const (
	appName        = "previewr"
	configFileName = "config.toml"
	databaseName   = "previewr.db"
)

// XDGDirs holds the per-application config and data directories.
type XDGDirs struct {
	ConfigHome string
	DataHome   string
}

// resolveDirs applies the XDG base directory rules using getenv and home.
// ENV=dev keeps everything under ./.dev/previewr of cwd.
func resolveDirs(getenv func(string) string, home, cwd string) (*XDGDirs, error) {
	if getenv("ENV") == "dev" {
		if cwd == "" {
			return nil, errors.New("dev mode needs a working directory")
		}
		dir := filepath.Join(cwd, ".dev", appName)
		return &XDGDirs{ConfigHome: dir, DataHome: dir}, nil
	}

	base := func(env string, fallback ...string) (string, error) {
		if v := getenv(env); filepath.IsAbs(v) {
			return filepath.Join(v, appName), nil
		}
		if home == "" {
			return "", errors.New("neither " + env + " nor a home directory is set")
		}
		return filepath.Join(append([]string{home}, append(fallback, appName)...)...), nil
	}

	configHome, err := base("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return nil, err
	}
	dataHome, err := base("XDG_DATA_HOME", ".local", "share")
	if err != nil {
		return nil, err
	}
	return &XDGDirs{ConfigHome: configHome, DataHome: dataHome}, nil
}

// GetXDGDirs returns the directories for the current process environment.
func GetXDGDirs() (*XDGDirs, error) {
	home, _ := os.UserHomeDir()
	cwd, _ := os.Getwd()
	return resolveDirs(os.Getenv, home, cwd)
}

// GetConfigDir returns the config directory.
func GetConfigDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.ConfigHome, nil
}

// GetConfigFile returns the path of config.toml.
func GetConfigFile() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// GetDatabaseFile returns the default preferences database path.
func GetDatabaseFile() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return filepath.Join(dirs.DataHome, databaseName), nil
}

// EnsureDirectories creates the config and data directories.
func EnsureDirectories() error {
	dirs, err := GetXDGDirs()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dirs.ConfigHome, dirPerm); err != nil {
		return err
	}
	return os.MkdirAll(dirs.DataHome, dirPerm)
}
