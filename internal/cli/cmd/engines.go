package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/previewr/internal/cli/styles"
	domainurl "github.com/bnema/previewr/internal/domain/url"
)

var enginesCmd = &cobra.Command{
	Use:   "engines",
	Short: "List the search engines in registry order",
	Long: `List the search engines a "search" message can resolve to. The first
entry is used unless the search-engine preference names another one.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		renderer := styles.NewPreviewRenderer(nil)
		_, err := fmt.Fprint(cmd.OutOrStdout(), renderer.RenderEngines(domainurl.SearchEngines()))
		return err
	},
}

func init() {
	rootCmd.AddCommand(enginesCmd)
}
