package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/bnema/previewr/internal/application/port"
	"github.com/bnema/previewr/internal/logging"
)

// LazyDB implements port.DatabaseProvider with lazy initialization.
// The connection (WASM compilation plus migrations) is opened on first
// access; `previewr engines` and `previewr config path` never trigger it.
type LazyDB struct {
	dbPath string

	initOnce sync.Once
	mu       sync.RWMutex
	db       *sql.DB
	err      error
}

// Compile-time interface check.
var _ port.DatabaseProvider = (*LazyDB)(nil)

// NewLazyDB creates a new lazy database provider.
func NewLazyDB(dbPath string) *LazyDB {
	return &LazyDB{dbPath: dbPath}
}

// DB returns the database connection, initializing it if necessary.
// The first result, success or failure, is kept for the provider's lifetime.
func (l *LazyDB) DB(ctx context.Context) (*sql.DB, error) {
	l.initOnce.Do(func() {
		log := logging.FromContext(ctx)
		log.Debug().Str("path", l.dbPath).Msg("lazy database initialization starting")

		db, err := NewConnection(ctx, l.dbPath)
		if err != nil {
			log.Error().Err(err).Msg("lazy database initialization failed")
		}

		l.mu.Lock()
		l.db, l.err = db, err
		l.mu.Unlock()
	})

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.err != nil {
		return nil, fmt.Errorf("database initialization failed: %w", l.err)
	}
	return l.db, nil
}

// Close closes the database connection if it was initialized.
func (l *LazyDB) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	l.err = fmt.Errorf("database closed")
	return err
}

// IsInitialized returns true if the database has been initialized.
func (l *LazyDB) IsInitialized() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.db != nil
}

// Path returns the database path.
func (l *LazyDB) Path() string {
	return l.dbPath
}
