package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/previewr/internal/bootstrap"
	"github.com/bnema/previewr/internal/infrastructure/config"
	"github.com/bnema/previewr/internal/infrastructure/headless"
	"github.com/bnema/previewr/internal/logging"
)

var runFlags hostFlags

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Feed host events from stdin until EOF or interrupt",
	Long: `Read JSON-lines host events from standard input and apply them as they
arrive. The config file is watched; changes such as preview.reader_mode are
applied to the running session. The final state is printed on exit.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runFlags.register(runCmd)
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(a.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	assets, err := bootstrap.PrepareReplay(ctx, bootstrap.ReplayInput{
		DocumentPath: runFlags.page,
		DocumentURL:  runFlags.url,
		Framed:       runFlags.framed,
		Script:       strings.NewReader(""),
		Database:     a.DB,
	})
	if err != nil {
		return err
	}
	preview, err := newPreview(cmd, a, assets, &runFlags)
	if err != nil || preview == nil {
		return err
	}

	a.Manager.OnConfigChange(func(cfg *config.Config) {
		preview.Loop.PostFunc(func() { preview.ApplyConfig(ctx, cfg) })
	})
	if err := a.Manager.Watch(ctx); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("config watch unavailable")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return preview.Run(gctx) })

	// stdin reads cannot be interrupted; the reader is abandoned on signal.
	readDone := make(chan error, 1)
	go func() { readDone <- feed(gctx, preview, cmd.InOrStdin()) }()
	g.Go(func() error {
		select {
		case err := <-readDone:
			preview.Loop.Close()
			return err
		case <-gctx.Done():
			return nil
		}
	})

	runErr := g.Wait()
	if err := preview.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return runErr
	}
	return printReport(cmd.OutOrStdout(), a, preview.Report(), runFlags.jsonOutput)
}

// feed posts decoded events until EOF. Invalid lines are logged and skipped.
func feed(ctx context.Context, preview *bootstrap.Preview, r io.Reader) error {
	log := logging.FromContext(ctx)
	dec := headless.NewDecoder(r)
	for {
		event, err := dec.Next()
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, headless.ErrInvalidEvent):
			log.Warn().Err(err).Msg("skipping event")
			continue
		case err != nil:
			return err
		}
		if err := preview.Post(ctx, event); err != nil {
			return nil
		}
	}
}
