package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/grovetools/atlas/cli"
	"github.com/grovetools/atlas/config"
	"github.com/grovetools/atlas/errors"
	"github.com/grovetools/atlas/logging"
	"github.com/grovetools/atlas/pkg/app"
	"github.com/spf13/cobra"
)

// newApp loads the configuration and builds the App for a command.
func newApp(cmd *cobra.Command) (*app.App, *config.Config, error) {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	if err := logging.Configure(cfg); err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid logging section")
	}
	a, err := app.New(cfg, app.WithLogger(cli.GetLogger(cmd, "atlas")))
	if err != nil {
		return nil, nil, err
	}
	return a, cfg, nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
