package config

import (
	"context"
	"slices"

	"github.com/bnema/previewr/internal/logging"
	"github.com/fsnotify/fsnotify"
)

// reloadOps are the file events that can change the file contents.
const reloadOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename

// Watch reloads the config file whenever it changes on disk. Callbacks
// only see reloads that pass validation; a broken edit keeps the previous
// configuration in effect. Calling Watch twice is a no-op.
func (m *Manager) Watch(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil
	}

	log := logging.FromContext(ctx).With().Str("component", "config-watcher").Logger()
	m.viper.OnConfigChange(func(e fsnotify.Event) {
		if e.Op&reloadOps == 0 {
			return
		}
		log.Debug().Str("op", e.Op.String()).Str("file", e.Name).Msg("config file changed")

		if err := m.Reload(); err != nil {
			log.Warn().Err(err).Msg("config reload rejected, keeping previous values")
			return
		}
		log.Info().Str("file", e.Name).Msg("config reloaded")
	})
	m.viper.WatchConfig()
	m.watching = true
	return nil
}

// OnConfigChange registers fn to receive every accepted reload.
func (m *Manager) OnConfigChange(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

// Reload re-reads the config file now. On success every callback receives
// its own copy of the new configuration, outside the manager lock.
func (m *Manager) Reload() error {
	m.mu.Lock()
	if err := m.viper.ReadInConfig(); err != nil {
		m.mu.Unlock()
		return err
	}
	next, err := m.unmarshalConfig()
	if err == nil {
		err = finalizeConfig(next)
	}
	if err != nil {
		m.mu.Unlock()
		return err
	}
	m.config = next
	snapshot := *next
	callbacks := slices.Clone(m.callbacks)
	m.mu.Unlock()

	for _, fn := range callbacks {
		c := snapshot
		fn(&c)
	}
	return nil
}
