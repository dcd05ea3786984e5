package sqlite_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/previewr/internal/domain/entity"
	"github.com/bnema/previewr/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/previewr/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.NewConnection(testCtx(), filepath.Join(t.TempDir(), "previewr.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })
	return db
}

func TestNewConnection_RejectsEmptyPath(t *testing.T) {
	_, err := sqlite.NewConnection(testCtx(), "")
	assert.Error(t, err)
}

func TestMigrations_Idempotent(t *testing.T) {
	ctx := testCtx()
	db := openTestDB(t)

	require.NoError(t, sqlite.RunMigrations(ctx, db))
	version, err := sqlite.GetMigrationStatus(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}

func TestPreferenceRepository_RoundTrip(t *testing.T) {
	ctx := testCtx()
	repo := sqlite.NewPreferenceRepository(openTestDB(t))

	_, ok, err := repo.Get(ctx, entity.PrefSearchEngine)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Put(ctx, entity.PrefSearchEngine, json.RawMessage(`"bing"`)))
	require.NoError(t, repo.Put(ctx, entity.PrefCloseOnEsc, json.RawMessage(`false`)))
	require.NoError(t, repo.Put(ctx, entity.PrefSearchEngine, json.RawMessage(`"ecosia"`)))

	raw, ok, err := repo.Get(ctx, entity.PrefSearchEngine)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `"ecosia"`, string(raw))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.JSONEq(t, `false`, string(all[entity.PrefCloseOnEsc]))

	require.NoError(t, repo.Delete(ctx, entity.PrefSearchEngine))
	require.NoError(t, repo.Delete(ctx, "never-set"))
	_, ok, err = repo.Get(ctx, entity.PrefSearchEngine)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPreferenceRepository_RejectsInvalidInput(t *testing.T) {
	ctx := testCtx()
	repo := sqlite.NewPreferenceRepository(openTestDB(t))

	assert.Error(t, repo.Put(ctx, "", json.RawMessage(`true`)))
	assert.Error(t, repo.Put(ctx, entity.PrefAutoHide, json.RawMessage(`{broken`)))
}

func TestTelemetryRepository_GetRecentNewestFirst(t *testing.T) {
	ctx := testCtx()
	repo := sqlite.NewTelemetryRepository(openTestDB(t))

	base := time.UnixMilli(1700000000000)
	for i, name := range []string{"first", "second", "third"} {
		e := &entity.TelemetryEvent{
			SessionID:  "session-1",
			Name:       name,
			Properties: map[string]any{"n": i},
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, repo.Save(ctx, e))
		assert.NotZero(t, e.ID)
	}

	events, err := repo.GetRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "third", events[0].Name)
	assert.Equal(t, "second", events[1].Name)
	assert.Equal(t, float64(2), events[0].Properties["n"])
	assert.True(t, events[0].CreatedAt.Equal(base.Add(2*time.Second)))

	none, err := repo.GetRecent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	assert.Error(t, repo.Save(ctx, nil))
}

func TestLazyRepositories_Work(t *testing.T) {
	ctx := testCtx()
	provider := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "lazy.db"))
	t.Cleanup(func() { _ = provider.Close() })

	prefs := sqlite.NewLazyPreferenceRepository(provider)
	tel := sqlite.NewLazyTelemetryRepository(provider)
	assert.False(t, provider.IsInitialized())

	require.NoError(t, prefs.Put(ctx, entity.PrefWidth, json.RawMessage(`"60"`)))
	require.NoError(t, tel.Save(ctx, &entity.TelemetryEvent{SessionID: "s", Name: "user_feedback"}))
	assert.True(t, provider.IsInitialized())

	events, err := tel.GetRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Empty(t, events[0].Properties)
}
