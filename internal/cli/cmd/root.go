// Package cmd provides Cobra CLI commands for previewr.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/previewr/internal/cli"
)

var (
	app        *cli.App
	configFile string
	rootCmd    = &cobra.Command{
		Use:   "previewr",
		Short: "Drive a link preview overlay session from scripted host events",
		Long: `Previewr runs the preview session controller of a page-embedded link
preview overlay against a headless host page.

Host events (cross-frame messages, key presses, clicks, scrolls, overlay
control clicks and feedback form signals) are read as JSON lines and fed
through the same router, watchers and state machine a browser would use.

Use 'previewr replay script.jsonl' to run a script and print the final
session state, or 'previewr run' to feed events from stdin.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "engines":
				return nil
			}

			var err error
			app, err = cli.NewApp(configFile)
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
				app = nil
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default $XDG_CONFIG_HOME/previewr/config.toml)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetVersion sets the version string shown by --version.
func SetVersion(version, commit string) {
	rootCmd.Version = fmt.Sprintf("%s (%s)", version, commit)
}

func requireApp() (*cli.App, error) {
	if app == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return app, nil
}
