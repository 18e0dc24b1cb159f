// Package app wires the configuration, the dataset client and the two state
// stores together. Surfaces (CLI, TUI, HTTP API) receive an *App instead of
// reaching for package-level state.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/grovetools/atlas/config"
	"github.com/grovetools/atlas/errors"
	"github.com/grovetools/atlas/logging"
	"github.com/grovetools/atlas/pkg/controls"
	"github.com/grovetools/atlas/pkg/countries"
	"github.com/grovetools/atlas/pkg/models"
	"github.com/grovetools/atlas/pkg/source"
	"github.com/sirupsen/logrus"
)

// App owns one Filter State and one Dataset State for the process lifetime.
type App struct {
	Config    *config.Config
	Controls  *controls.Store
	Countries *countries.Store

	client countries.Client
	logger *logrus.Entry
}

// Option configures an App.
type Option func(*options)

type options struct {
	client countries.Client
	logger *logrus.Entry
}

// WithClient overrides the client built from the source configuration.
func WithClient(client countries.Client) Option {
	return func(o *options) {
		o.client = client
	}
}

// WithLogger sets the logger shared by the app and its stores.
func WithLogger(logger *logrus.Entry) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New builds an App from cfg. The stores start in their default state.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.NewLogger("atlas")
	}

	if o.client == nil {
		client, err := NewClient(cfg.Source, o.logger)
		if err != nil {
			return nil, err
		}
		o.client = client
	}

	filters := controls.New()
	if cfg.TUI.InitialRegion != "" {
		region, ok := models.ParseRegion(cfg.TUI.InitialRegion)
		if !ok {
			return nil, errors.InvalidRegion(cfg.TUI.InitialRegion)
		}
		filters.SetRegion(region)
	}

	return &App{
		Config:    cfg,
		Controls:  filters,
		Countries: countries.New(o.client, countries.WithLogger(o.logger.WithField("store", "countries"))),
		client:    o.client,
		logger:    o.logger,
	}, nil
}

// NewClient creates the dataset client selected by the source configuration.
func NewClient(src config.SourceConfig, logger *logrus.Entry) (countries.Client, error) {
	switch src.Kind {
	case config.SourceKindHTTP, "":
		timeout, err := src.TimeoutDuration()
		if err != nil {
			return nil, errors.ConfigInvalid(err.Error())
		}
		endpoint := src.URL
		if endpoint == "" {
			endpoint = config.DefaultSourceURL
		}
		return source.NewHTTPClient(endpoint,
			source.WithTimeout(timeout),
			source.WithFields(src.Fields...),
			source.WithHTTPLogger(logger.WithField("source", "http")),
		), nil
	case config.SourceKindFile:
		if src.Path == "" {
			return nil, errors.ConfigInvalid("source.path is required for the file source")
		}
		return source.NewFileClient(src.Path), nil
	default:
		return nil, errors.ConfigInvalid(fmt.Sprintf("unknown source kind %q", src.Kind))
	}
}

// Load runs one load attempt on the calling goroutine.
func (a *App) Load(ctx context.Context) {
	a.Countries.Load(ctx)
}

// StartLoad triggers a load attempt in the background and returns immediately.
func (a *App) StartLoad(ctx context.Context) {
	go a.Countries.Load(ctx)
}

// Visible returns the countries matching the current filter controls.
func (a *App) Visible() []models.Country {
	st := a.Controls.Snapshot()
	return a.Countries.SelectVisibleCountries(st.Search, st.Region)
}

// Watch reloads the dataset whenever the source file changes. It blocks until
// ctx is done and returns immediately when watching is not configured.
func (a *App) Watch(ctx context.Context) error {
	fileClient, ok := a.client.(*source.FileClient)
	if !ok || !a.Config.Source.Watch {
		return nil
	}

	watcher, err := source.NewWatcher(fileClient.Path(), 200*time.Millisecond, func() {
		a.Countries.Load(ctx)
	}, a.logger.WithField("watcher", fileClient.Path()))
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to watch dataset file").
			WithDetail("path", fileClient.Path())
	}

	a.logger.WithField("path", fileClient.Path()).Info("Watching dataset file")
	watcher.Start(ctx)
	return nil
}
