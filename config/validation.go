package config

import (
	"fmt"
	"net/url"

	"github.com/grovetools/atlas/errors"
	"github.com/grovetools/atlas/pkg/models"
)

// Validate checks the semantic rules the schema cannot express.
func (c *Config) Validate() error {
	if err := validateSource(&c.Source); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigValidation, "invalid source configuration").
			WithDetail("kind", c.Source.Kind)
	}

	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeConfigValidation, "server.addr cannot be empty")
	}

	if _, ok := models.ParseRegion(c.TUI.InitialRegion); !ok {
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("tui.initial_region: unknown region '%s'", c.TUI.InitialRegion)).
			WithDetail("region", c.TUI.InitialRegion)
	}

	return nil
}

func validateSource(source *SourceConfig) error {
	switch source.Kind {
	case SourceKindHTTP:
		if source.URL == "" {
			return fmt.Errorf("source.url is required for the http source")
		}
		u, err := url.Parse(source.URL)
		if err != nil {
			return fmt.Errorf("source.url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("source.url must use http or https, got %q", u.Scheme)
		}
	case SourceKindFile:
		if source.Path == "" {
			return fmt.Errorf("source.path is required for the file source")
		}
	default:
		return fmt.Errorf("unknown source kind %q", source.Kind)
	}

	d, err := source.TimeoutDuration()
	if err != nil {
		return err
	}
	if d < 0 {
		return fmt.Errorf("source.timeout cannot be negative")
	}

	return nil
}
