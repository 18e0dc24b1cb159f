// Package cmd implements the atlas command line.
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/grovetools/atlas/cli"
	"github.com/grovetools/atlas/pkg/models"
	"github.com/grovetools/atlas/tui/theme"
	"github.com/grovetools/atlas/version"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the atlas command tree.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand("atlas", "Browse and filter the countries of the world")
	root.Long = `Browse and filter the countries of the world.

Countries are loaded from the REST Countries API or a local JSON/YAML file
and can be filtered by name and region from the terminal UI, the command line
or the HTTP API.

Examples:
  # Interactive browser
  atlas browse

  # Countries in Europe whose name contains "ger"
  atlas list --search ger --region europe

  # Serve the HTTP API
  atlas serve --addr 127.0.0.1:7878`

	cli.SetVersionTemplate(root, version.GetInfo())

	root.AddCommand(
		newListCmd(),
		newSummaryCmd(),
		newBrowseCmd(),
		newServeCmd(),
		newRegionsCmd(),
		newConfigCmd(),
		cli.NewVersionCommand("atlas"),
	)

	cli.ApplyStyledHelpRecursive(root)
	cli.SetStyledHelpWithExtras(root, func(w io.Writer, t *theme.Theme) {
		names := make([]string, 0, len(models.Regions))
		for _, r := range models.Regions {
			names = append(names, string(r))
		}
		fmt.Fprintln(w, "\n "+t.Accent.Render("REGIONS"))
		fmt.Fprintln(w, " "+strings.Join(names, ", "))
	})

	return root
}
