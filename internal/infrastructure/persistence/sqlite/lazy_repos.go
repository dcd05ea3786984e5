package sqlite

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/bnema/previewr/internal/application/port"
	"github.com/bnema/previewr/internal/domain/entity"
	"github.com/bnema/previewr/internal/domain/repository"
)

// LazyPreferenceRepository opens the database on first preference access.
type LazyPreferenceRepository struct {
	provider port.DatabaseProvider
	repo     repository.PreferenceRepository
	once     sync.Once
	initErr  error
}

// NewLazyPreferenceRepository creates a lazy-loading preference repository.
func NewLazyPreferenceRepository(provider port.DatabaseProvider) repository.PreferenceRepository {
	return &LazyPreferenceRepository{provider: provider}
}

func (r *LazyPreferenceRepository) init(ctx context.Context) error {
	r.once.Do(func() {
		db, err := r.provider.DB(ctx)
		if err != nil {
			r.initErr = err
			return
		}
		r.repo = NewPreferenceRepository(db)
	})
	return r.initErr
}

func (r *LazyPreferenceRepository) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	if err := r.init(ctx); err != nil {
		return nil, false, err
	}
	return r.repo.Get(ctx, key)
}

func (r *LazyPreferenceRepository) Put(ctx context.Context, key string, value json.RawMessage) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Put(ctx, key, value)
}

func (r *LazyPreferenceRepository) Delete(ctx context.Context, key string) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Delete(ctx, key)
}

func (r *LazyPreferenceRepository) All(ctx context.Context) (map[string]json.RawMessage, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.All(ctx)
}

// LazyTelemetryRepository opens the database on the first stored event.
type LazyTelemetryRepository struct {
	provider port.DatabaseProvider
	repo     repository.TelemetryRepository
	once     sync.Once
	initErr  error
}

// NewLazyTelemetryRepository creates a lazy-loading telemetry repository.
func NewLazyTelemetryRepository(provider port.DatabaseProvider) repository.TelemetryRepository {
	return &LazyTelemetryRepository{provider: provider}
}

func (r *LazyTelemetryRepository) init(ctx context.Context) error {
	r.once.Do(func() {
		db, err := r.provider.DB(ctx)
		if err != nil {
			r.initErr = err
			return
		}
		r.repo = NewTelemetryRepository(db)
	})
	return r.initErr
}

func (r *LazyTelemetryRepository) Save(ctx context.Context, event *entity.TelemetryEvent) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Save(ctx, event)
}

func (r *LazyTelemetryRepository) GetRecent(ctx context.Context, limit int) ([]*entity.TelemetryEvent, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.GetRecent(ctx, limit)
}
