package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCopyTextUseCase_Copy(t *testing.T) {
	ctx := context.Background()

	t.Run("writes text", func(t *testing.T) {
		c := &fakeClipboard{}
		NewCopyTextUseCase(c).Copy(ctx, "hello")
		assert.Equal(t, []string{"hello"}, c.written)
	})

	t.Run("skips empty text", func(t *testing.T) {
		c := &fakeClipboard{}
		NewCopyTextUseCase(c).Copy(ctx, "")
		assert.Empty(t, c.written)
	})

	t.Run("write failure is logged only", func(t *testing.T) {
		c := &fakeClipboard{err: errors.New("no display")}
		assert.NotPanics(t, func() { NewCopyTextUseCase(c).Copy(ctx, "hello") })
		assert.Empty(t, c.written)
	})

	t.Run("nil clipboard", func(t *testing.T) {
		assert.NotPanics(t, func() { NewCopyTextUseCase(nil).Copy(ctx, "hello") })
	})
}
