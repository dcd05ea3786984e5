package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bnema/previewr/internal/application/port"
	"github.com/bnema/previewr/internal/bootstrap"
	"github.com/bnema/previewr/internal/cli"
	"github.com/bnema/previewr/internal/infrastructure/clipboard"
)

// hostFlags describe the headless host page a session runs in.
type hostFlags struct {
	page            string
	url             string
	framed          bool
	systemClipboard bool
	jsonOutput      bool
}

func (f *hostFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.page, "page", "", "host page HTML file (default: blank page)")
	cmd.Flags().StringVar(&f.url, "url", "https://example.com/", "host page URL, https assumed for a bare address; its origin is the accepted message origin")
	cmd.Flags().BoolVar(&f.framed, "framed", false, "treat the host page as a framed document")
	cmd.Flags().BoolVar(&f.systemClipboard, "system-clipboard", false, "write copied text to the system clipboard")
	cmd.Flags().BoolVar(&f.jsonOutput, "json", false, "print the final state as JSON")
}

func (f *hostFlags) clipboard() port.Clipboard {
	if f.systemClipboard {
		return clipboard.New()
	}
	return clipboard.NewMemory()
}

var replayFlags hostFlags

var replayCmd = &cobra.Command{
	Use:   "replay <script.jsonl>",
	Short: "Run an event script and print the final session state",
	Long: `Feed every event of a JSON-lines script through the event loop, in order,
then print the resulting preview session state.

Example script:
  {"type":"message","message":{"application":"better-previews","action":"preview","data":"https://a.test/"}}
  {"type":"message","message":{"application":"better-previews","action":"search","data":"otters"}}
  {"type":"control","control":"nav-back"}
  {"type":"keydown","key":"Escape"}`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayFlags.register(replayCmd)
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	ctx := a.Ctx()

	assets, err := bootstrap.PrepareReplay(ctx, bootstrap.ReplayInput{
		DocumentPath: replayFlags.page,
		DocumentURL:  replayFlags.url,
		Framed:       replayFlags.framed,
		ScriptPath:   args[0],
		Database:     a.DB,
	})
	if err != nil {
		return err
	}

	preview, err := newPreview(cmd, a, assets, &replayFlags)
	if err != nil || preview == nil {
		return err
	}

	report, err := bootstrap.Replay(ctx, preview, assets.Events)
	if err != nil {
		return err
	}
	return printReport(cmd.OutOrStdout(), a, report, replayFlags.jsonOutput)
}

// newPreview returns nil without error for a framed page, which gets no session.
func newPreview(cmd *cobra.Command, a *cli.App, assets *bootstrap.ReplayAssets, flags *hostFlags) (*bootstrap.Preview, error) {
	preview, err := bootstrap.NewPreview(a.Ctx(), bootstrap.PreviewInput{
		Config:    a.Config,
		Document:  assets.Document,
		Database:  a.DB,
		Clipboard: flags.clipboard(),
	})
	if errors.Is(err, bootstrap.ErrFramedDocument) {
		fmt.Fprintln(cmd.OutOrStdout(), a.Renderer.RenderError(fmt.Errorf("%w: no preview session installed", err)))
		return nil, nil
	}
	return preview, err
}

func printReport(w io.Writer, a *cli.App, report bootstrap.PreviewReport, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	_, err := fmt.Fprintln(w, a.Renderer.RenderReport(report))
	return err
}
