package bootstrap

import (
	"context"

	"github.com/bnema/previewr/internal/infrastructure/headless"
	"github.com/bnema/previewr/internal/logging"
)

// Replay runs events through the preview's event loop in order, shuts the
// preview down and reports the final state.
func Replay(ctx context.Context, p *Preview, events []headless.Event) (PreviewReport, error) {
	runErr := make(chan error, 1)
	go func() { runErr <- p.Run(ctx) }()

	log := logging.FromContext(ctx)
	for i, event := range events {
		if err := p.Post(ctx, event); err != nil {
			log.Warn().Err(err).Int("index", i).Msg("replay stopped early")
			break
		}
	}

	p.Loop.Close()
	if err := <-runErr; err != nil {
		_ = p.close()
		return PreviewReport{}, err
	}
	if err := p.close(); err != nil {
		return p.Report(), err
	}

	report := p.Report()
	log.Debug().
		Int("events", len(events)).
		Uint64("accepted", report.Router.Accepted).
		Uint64("dropped", report.Router.Dropped).
		Msg("replay finished")
	return report, nil
}
