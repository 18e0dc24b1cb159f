package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/grovetools/atlas/cli"
	"github.com/grovetools/atlas/pkg/models"
	"github.com/spf13/cobra"
)

func newRegionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List the regions accepted by the region filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if cli.GetOptions(cmd).JSONOutput {
				return json.NewEncoder(out).Encode(models.Regions)
			}
			for _, r := range models.Regions {
				fmt.Fprintln(out, r)
			}
			return nil
		},
	}
}
