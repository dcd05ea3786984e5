// Package preferences provides the cached preference store used by the
// preview session.
package preferences

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/bnema/previewr/internal/application/port"
	"github.com/bnema/previewr/internal/domain/repository"
	"github.com/bnema/previewr/internal/logging"
	"github.com/patrickmn/go-cache"
)

// DefaultTTL is used when the store is created with a non-positive TTL.
const DefaultTTL = 5 * time.Minute

// absent marks a key known to be unset, so repeated misses skip the database.
type absent struct{}

// Store is a read-through cache over a PreferenceRepository.
type Store struct {
	repo  repository.PreferenceRepository
	cache *cache.Cache

	hits   atomic.Uint64
	misses atomic.Uint64
}

var _ port.Preferences = (*Store)(nil)

// NewStore creates a store whose entries expire after ttl.
func NewStore(repo repository.PreferenceRepository, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		repo:  repo,
		cache: cache.New(ttl, 2*ttl),
	}
}

// Get implements port.Preferences.
func (s *Store) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	if cached, found := s.cache.Get(key); found {
		s.hits.Add(1)
		switch v := cached.(type) {
		case json.RawMessage:
			return v, true, nil
		case absent:
			return nil, false, nil
		}
	}
	s.misses.Add(1)

	raw, ok, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		s.cache.SetDefault(key, absent{})
		return nil, false, nil
	}
	s.cache.SetDefault(key, raw)
	return raw, true, nil
}

// Put implements port.Preferences. The cached entry is dropped, so the next
// Get reads the stored value back.
func (s *Store) Put(ctx context.Context, key string, value any) error {
	raw, err := encode(value)
	if err != nil {
		return fmt.Errorf("encode preference %q: %w", key, err)
	}

	s.cache.Delete(key)
	if err := s.repo.Put(ctx, key, raw); err != nil {
		return err
	}

	logging.FromContext(ctx).Debug().Str("key", key).Msg("preference updated")
	return nil
}

// Delete removes key from storage and cache.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.cache.Delete(key)
	return s.repo.Delete(ctx, key)
}

// All returns every stored preference, bypassing the cache.
func (s *Store) All(ctx context.Context) (map[string]json.RawMessage, error) {
	return s.repo.All(ctx)
}

// Flush drops every cached entry.
func (s *Store) Flush() {
	s.cache.Flush()
}

// Stats returns cache hit and miss counts.
func (s *Store) Stats() (hits, misses uint64) {
	return s.hits.Load(), s.misses.Load()
}

func encode(value any) (json.RawMessage, error) {
	switch v := value.(type) {
	case json.RawMessage:
		if !json.Valid(v) {
			return nil, fmt.Errorf("invalid JSON")
		}
		return v, nil
	case []byte:
		if !json.Valid(v) {
			return nil, fmt.Errorf("invalid JSON")
		}
		return json.RawMessage(v), nil
	default:
		return json.Marshal(v)
	}
}
