package cmd

import (
	"context"
	"io"
	"os"

	"github.com/grovetools/atlas/logging"
	"github.com/grovetools/atlas/tui"
	"github.com/grovetools/atlas/tui/browser"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newBrowseCmd() *cobra.Command {
	var noLoad bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse countries interactively",
		Long: `Opens the interactive country browser.

Type / to search by name, tab to cycle regions, x to clear the filters and
r to reload the dataset. A file source with watch enabled reloads on change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cfg, err := newApp(cmd)
			if err != nil {
				return err
			}
			tui.InitializeTUI(cfg.TUI.Theme)

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			g, gctx := errgroup.WithContext(ctx)
			watchCtx, cancelWatch := context.WithCancel(gctx)
			g.Go(func() error {
				return a.Watch(watchCtx)
			})
			// The browser owns the terminal; stderr logging would tear the screen.
			logging.SetGlobalOutput(io.Discard)
			defer logging.SetGlobalOutput(os.Stderr)

			g.Go(func() error {
				defer cancelWatch()
				return browser.Run(gctx, a.Controls, a.Countries, browser.WithAutoLoad(!noLoad))
			})
			return g.Wait()
		},
	}

	cmd.Flags().BoolVar(&noLoad, "no-load", false, "Do not load the dataset on start")
	return cmd
}
