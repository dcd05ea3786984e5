package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Inspect and modify stored preferences",
	Long: `Read and write the preferences the preview session consults, such as
close-on-esc, search-engine, automatically-hide-previews, previewr-width,
previewr-height and previewr-position.`,
}

var prefsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a stored preference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		raw, ok, err := a.Preferences.Get(a.Ctx(), args[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), a.Renderer.RenderPreference(args[0], raw, ok))
		return err
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a preference",
	Long: `Store a preference value. The value is stored as given when it is valid
JSON (true, 60, "bing"), otherwise as a JSON string.

Examples:
  previewr prefs set close-on-esc false
  previewr prefs set search-engine bing
  previewr prefs set feedback-data '{"status":"eligible"}'`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		if err := a.Preferences.Put(a.Ctx(), args[0], parsePreferenceValue(args[1])); err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), a.Renderer.RenderSaved(args[0]))
		return err
	},
}

var prefsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every stored preference",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		values, err := a.Preferences.All(a.Ctx())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), a.Renderer.RenderPreferences(values))
		return err
	},
}

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.AddCommand(prefsGetCmd, prefsSetCmd, prefsListCmd)
}

// parsePreferenceValue keeps valid JSON verbatim and quotes anything else.
func parsePreferenceValue(arg string) any {
	trimmed := strings.TrimSpace(arg)
	if trimmed != "" && json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed)
	}
	return arg
}
