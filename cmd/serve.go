package cmd

import (
	"github.com/grovetools/atlas/cli"
	"github.com/grovetools/atlas/internal/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	var addr string
	var noLoad bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the filter controls and the dataset over HTTP",
		Long: `Starts the HTTP API.

Routes:
  GET    /health
  GET    /api/controls
  PUT    /api/controls/search
  PUT    /api/controls/region
  DELETE /api/controls
  POST   /api/countries/load
  GET    /api/countries
  GET    /api/countries/summary
  GET    /api/countries/visible
  GET    /api/events (websocket)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cfg, err := newApp(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			srv := server.New(a, cli.GetLogger(cmd, "server"))
			if !noLoad {
				a.StartLoad(ctx)
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return srv.Serve(gctx, cfg.Server.Addr)
			})
			g.Go(func() error {
				return a.Watch(gctx)
			})
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from server.addr)")
	cmd.Flags().BoolVar(&noLoad, "no-load", false, "Do not load the dataset on start")
	return cmd
}
