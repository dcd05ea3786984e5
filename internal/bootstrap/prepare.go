package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bnema/previewr/internal/application/port"
	"github.com/bnema/previewr/internal/infrastructure/headless"
	"github.com/bnema/previewr/internal/logging"
	"golang.org/x/sync/errgroup"
)

// ReplayInput names the files a replay starts from.
type ReplayInput struct {
	// DocumentPath is the host page markup; empty means a blank page.
	DocumentPath string
	DocumentURL  string
	// Framed loads the document as a framed (non top-level) context.
	Framed     bool
	ScriptPath string
	// Script is read instead of ScriptPath when set.
	Script io.Reader
	// Database is opened ahead of time when set, so migrations do not stall
	// the first preference read.
	Database port.DatabaseProvider
}

// ReplayAssets are the parsed inputs of a replay.
type ReplayAssets struct {
	Document *headless.Document
	Events   []headless.Event
}

// PrepareReplay loads the document, decodes the script and opens the
// database in parallel. The first error wins.
func PrepareReplay(ctx context.Context, in ReplayInput) (*ReplayAssets, error) {
	timer := NewStartupTimer()
	assets := &ReplayAssets{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return timer.Track("document", func() error {
			opts := headless.DocumentOptions{URL: in.DocumentURL, Framed: in.Framed}
			var (
				doc *headless.Document
				err error
			)
			if in.DocumentPath == "" {
				doc, err = headless.NewDocument(nil, opts)
			} else {
				doc, err = headless.LoadDocument(in.DocumentPath, opts)
			}
			if err != nil {
				return err
			}
			assets.Document = doc
			return nil
		})
	})

	g.Go(func() error {
		return timer.Track("script", func() error {
			events, err := decodeScript(in)
			if err != nil {
				return err
			}
			assets.Events = events
			return nil
		})
	})

	if in.Database != nil {
		g.Go(func() error {
			return timer.Track("database", func() error {
				if _, err := in.Database.DB(gctx); err != nil {
					// Preferences fall back to defaults; a replay still runs.
					logging.FromContext(ctx).Warn().Err(err).Msg("database unavailable")
				}
				return nil
			})
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	timer.LogDebug(ctx)
	return assets, nil
}

func decodeScript(in ReplayInput) ([]headless.Event, error) {
	if in.Script != nil {
		return headless.DecodeAll(in.Script)
	}
	if in.ScriptPath == "" {
		return nil, fmt.Errorf("no event script given")
	}

	f, err := os.Open(in.ScriptPath)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()

	events, err := headless.DecodeAll(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", in.ScriptPath, err)
	}
	return events, nil
}
