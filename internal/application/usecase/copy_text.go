// Package usecase contains application business logic.
package usecase

import (
	"context"

	"github.com/bnema/previewr/internal/application/port"
	"github.com/bnema/previewr/internal/logging"
)

// CopyTextUseCase handles copying text to the system clipboard.
type CopyTextUseCase struct {
	clipboard port.Clipboard
}

// NewCopyTextUseCase creates a new CopyTextUseCase.
func NewCopyTextUseCase(clipboard port.Clipboard) *CopyTextUseCase {
	return &CopyTextUseCase{
		clipboard: clipboard,
	}
}

// Copy copies the given text to the clipboard. Copy requests come from the
// page and have no reply channel, so failures end in the log.
func (uc *CopyTextUseCase) Copy(ctx context.Context, text string) {
	log := logging.FromContext(ctx)

	if text == "" {
		log.Debug().Msg("copy: empty text")
		return
	}

	if uc.clipboard == nil {
		log.Warn().Msg("copy: clipboard is nil")
		return
	}

	if err := uc.clipboard.WriteText(ctx, text); err != nil {
		log.Error().Err(err).Int("len", len(text)).Msg("copy: clipboard write failed")
		return
	}

	log.Debug().Int("len", len(text)).Msg("text copied to clipboard")
}
