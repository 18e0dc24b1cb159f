package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/grovetools/atlas/cli"
	"github.com/grovetools/atlas/errors"
	"github.com/grovetools/atlas/pkg/countries"
	"github.com/grovetools/atlas/pkg/models"
	"github.com/grovetools/atlas/tui/browser"
	"github.com/grovetools/atlas/tui/components/table"
	"github.com/grovetools/atlas/tui/theme"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var search, region string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Load the dataset once and print the matching countries",
		Example: `  atlas list
  atlas list --search land
  atlas list --region america --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cfg, err := newApp(cmd)
			if err != nil {
				return err
			}
			theme.SetTheme(cfg.TUI.Theme)

			if cmd.Flags().Changed("search") {
				a.Controls.SetSearch(search)
			}
			if cmd.Flags().Changed("region") {
				r, ok := models.ParseRegion(region)
				if !ok {
					return errors.InvalidRegion(region)
				}
				a.Controls.SetRegion(r)
			}

			a.Load(cmd.Context())
			if a.Countries.Status() == countries.StatusRejected {
				return a.Countries.Err()
			}

			visible := a.Visible()
			out := cmd.OutOrStdout()
			if cli.GetOptions(cmd).JSONOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(visible)
			}

			if len(visible) == 0 {
				fmt.Fprintln(out, theme.DefaultTheme.Muted.Render("No countries match the current filters."))
				return nil
			}
			fmt.Fprintln(out, table.SimpleTable([]string{"Name", "Region", "Capital", "Population"}, browser.Rows(visible)))
			fmt.Fprintln(out, theme.DefaultTheme.Muted.Render(
				fmt.Sprintf("%d of %d countries", len(visible), a.Countries.SelectDatasetSummary().Count)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive name filter")
	cmd.Flags().StringVarP(&region, "region", "r", "", "Region filter: all, Africa, America, Asia, Europe, or Oceania")
	return cmd
}
