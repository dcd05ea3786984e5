package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/bnema/previewr/internal/domain/entity"
	repomocks "github.com/bnema/previewr/internal/domain/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStore_ServesRepeatsFromCache(t *testing.T) {
	ctx := context.Background()
	repo := repomocks.NewMockPreferenceRepository(t)
	repo.EXPECT().Get(mock.Anything, entity.PrefSearchEngine).Return(json.RawMessage(`"bing"`), true, nil).Once()
	s := NewStore(repo, time.Minute)

	for i := 0; i < 3; i++ {
		raw, ok, err := s.Get(ctx, entity.PrefSearchEngine)
		require.NoError(t, err)
		require.True(t, ok)
		assert.JSONEq(t, `"bing"`, string(raw))
	}

	hits, misses := s.Stats()
	assert.Equal(t, uint64(2), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestStore_CachesAbsence(t *testing.T) {
	ctx := context.Background()
	repo := repomocks.NewMockPreferenceRepository(t)
	repo.EXPECT().Get(mock.Anything, entity.PrefAutoHide).Return(nil, false, nil).Once()
	s := NewStore(repo, time.Minute)

	for i := 0; i < 2; i++ {
		_, ok, err := s.Get(ctx, entity.PrefAutoHide)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestStore_PutInvalidates(t *testing.T) {
	ctx := context.Background()
	repo := repomocks.NewMockPreferenceRepository(t)
	s := NewStore(repo, time.Minute)

	repo.EXPECT().Get(mock.Anything, entity.PrefCloseOnEsc).Return(nil, false, nil).Once()
	_, ok, err := s.Get(ctx, entity.PrefCloseOnEsc)
	require.NoError(t, err)
	require.False(t, ok)

	repo.EXPECT().Put(mock.Anything, entity.PrefCloseOnEsc, json.RawMessage(`false`)).Return(nil).Once()
	repo.EXPECT().Get(mock.Anything, entity.PrefCloseOnEsc).Return(json.RawMessage(`false`), true, nil).Once()
	require.NoError(t, s.Put(ctx, entity.PrefCloseOnEsc, false))
	raw, ok, err := s.Get(ctx, entity.PrefCloseOnEsc)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `false`, string(raw))
}

func TestStore_PutEncodesValues(t *testing.T) {
	ctx := context.Background()
	repo := repomocks.NewMockPreferenceRepository(t)
	s := NewStore(repo, time.Minute)

	var stored json.RawMessage
	repo.EXPECT().Put(mock.Anything, entity.PrefFeedbackData, mock.Anything).
		Run(func(_ context.Context, _ string, value json.RawMessage) { stored = value }).
		Return(nil).
		Once()
	require.NoError(t, s.Put(ctx, entity.PrefFeedbackData, entity.FeedbackData{Status: entity.FeedbackHonored, Rating: 5}))
	assert.JSONEq(t, `{"status":"honored","rating":5}`, string(stored))

	repo.EXPECT().Put(mock.Anything, entity.PrefWidth, json.RawMessage(`"60"`)).Return(nil).Once()
	require.NoError(t, s.Put(ctx, entity.PrefWidth, json.RawMessage(`"60"`)))
	assert.Error(t, s.Put(ctx, entity.PrefWidth, json.RawMessage(`{nope`)), "invalid JSON never reaches the repository")
}

func TestStore_DeleteDropsCachedEntry(t *testing.T) {
	ctx := context.Background()
	repo := repomocks.NewMockPreferenceRepository(t)
	s := NewStore(repo, time.Minute)

	repo.EXPECT().Get(mock.Anything, entity.PrefWidth).Return(json.RawMessage(`"60"`), true, nil).Once()
	_, ok, err := s.Get(ctx, entity.PrefWidth)
	require.NoError(t, err)
	require.True(t, ok)

	repo.EXPECT().Delete(mock.Anything, entity.PrefWidth).Return(nil).Once()
	repo.EXPECT().Get(mock.Anything, entity.PrefWidth).Return(nil, false, nil).Once()
	require.NoError(t, s.Delete(ctx, entity.PrefWidth))
	_, ok, err = s.Get(ctx, entity.PrefWidth)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	repo := repomocks.NewMockPreferenceRepository(t)
	repo.EXPECT().Get(mock.Anything, entity.PrefPosition).Return(nil, false, errors.New("disk full")).Once()
	repo.EXPECT().Get(mock.Anything, entity.PrefPosition).Return(json.RawMessage(`"left"`), true, nil).Once()
	s := NewStore(repo, 0)

	_, _, err := s.Get(ctx, entity.PrefPosition)
	require.Error(t, err)

	raw, ok, err := s.Get(ctx, entity.PrefPosition)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `"left"`, string(raw))
}

func TestStore_FlushAndAll(t *testing.T) {
	ctx := context.Background()
	repo := repomocks.NewMockPreferenceRepository(t)
	repo.EXPECT().Get(mock.Anything, entity.PrefHeight).Return(json.RawMessage(`"70"`), true, nil).Twice()
	repo.EXPECT().All(mock.Anything).Return(map[string]json.RawMessage{entity.PrefHeight: json.RawMessage(`"70"`)}, nil).Once()
	s := NewStore(repo, time.Minute)

	_, _, _ = s.Get(ctx, entity.PrefHeight)
	_, _, _ = s.Get(ctx, entity.PrefHeight)
	s.Flush()
	_, _, _ = s.Get(ctx, entity.PrefHeight)

	all, err := s.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
