// Package cli holds the dependencies shared by previewr commands.
package cli

import (
	"context"
	"fmt"

	"github.com/bnema/previewr/internal/cli/styles"
	"github.com/bnema/previewr/internal/infrastructure/config"
	"github.com/bnema/previewr/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/previewr/internal/infrastructure/preferences"
	"github.com/bnema/previewr/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config   *config.Config
	Manager  *config.Manager
	Theme    *styles.Theme
	Renderer *styles.PreviewRenderer

	// DB is opened on first use; commands that never touch preferences
	// never open it.
	DB          *sqlite.LazyDB
	Preferences *preferences.Store

	// Context with logger
	ctx context.Context
}

// NewApp loads configuration from configFile, or from the XDG location when
// it is empty, and builds the shared dependencies.
func NewApp(configFile string) (*App, error) {
	mgr, err := config.NewManager(configFile)
	if err != nil {
		return nil, fmt.Errorf("config manager: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	logger := logging.NewFromConfigValues(cfg.Logging.Level, cfg.Logging.Format)
	ctx := logging.WithContext(context.Background(), logger)
	logger.Debug().Str("config", mgr.GetConfigFile()).Str("db_path", cfg.Database.Path).Msg("cli initialized")

	db := sqlite.NewLazyDB(cfg.Database.Path)
	theme := styles.NewTheme()

	return &App{
		Config:      cfg,
		Manager:     mgr,
		Theme:       theme,
		Renderer:    styles.NewPreviewRenderer(theme),
		DB:          db,
		Preferences: preferences.NewStore(sqlite.NewLazyPreferenceRepository(db), cfg.Preferences.CacheTTL),
		ctx:         ctx,
	}, nil
}

// Close releases all resources.
func (a *App) Close() error {
	if a.Preferences != nil {
		a.Preferences.Flush()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}
