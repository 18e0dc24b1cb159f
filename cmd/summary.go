package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/grovetools/atlas/cli"
	"github.com/grovetools/atlas/pkg/countries"
	"github.com/grovetools/atlas/tui/components/table"
	"github.com/grovetools/atlas/tui/theme"
	"github.com/spf13/cobra"
)

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Load the dataset once and print its status, error and count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cfg, err := newApp(cmd)
			if err != nil {
				return err
			}
			theme.SetTheme(cfg.TUI.Theme)

			a.Load(cmd.Context())
			summary := a.Countries.SelectDatasetSummary()

			out := cmd.OutOrStdout()
			if cli.GetOptions(cmd).JSONOutput {
				return json.NewEncoder(out).Encode(summary)
			}

			errText := "-"
			if summary.Error != nil {
				errText = theme.RenderStatus("error", *summary.Error)
			}
			status := string(summary.Status)
			if summary.Status == countries.StatusReceived {
				status = theme.RenderStatus("success", status)
			}
			fmt.Fprintln(out, table.StatusTable([][]string{
				{"status", status},
				{"error", errText},
				{"count", strconv.Itoa(summary.Count)},
			}))
			return nil
		},
	}
}
