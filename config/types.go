package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

const (
	SourceKindHTTP = "http"
	SourceKindFile = "file"
)

// DefaultSourceURL is the restcountries endpoint serving the full list.
const DefaultSourceURL = "https://restcountries.com/v2/all"

// DefaultSourceFields are the fields requested from the country source.
var DefaultSourceFields = []string{"name", "capital", "flags", "population", "region"}

// SourceConfig selects where the country dataset is fetched from.
type SourceConfig struct {
	Kind    string   `yaml:"kind,omitempty" toml:"kind,omitempty" json:"kind,omitempty" jsonschema:"enum=http,enum=file,description=Dataset source: http (restcountries API) or file (local JSON/YAML)"`
	URL     string   `yaml:"url,omitempty" toml:"url,omitempty" json:"url,omitempty" jsonschema:"description=Endpoint returning the full country list"`
	Fields  []string `yaml:"fields,omitempty" toml:"fields,omitempty" json:"fields,omitempty" jsonschema:"description=Fields requested from the endpoint"`
	Path    string   `yaml:"path,omitempty" toml:"path,omitempty" json:"path,omitempty" jsonschema:"description=Dataset file for the file source"`
	Timeout string   `yaml:"timeout,omitempty" toml:"timeout,omitempty" json:"timeout,omitempty" jsonschema:"description=HTTP client timeout (e.g. 10s)"`
	Watch   bool     `yaml:"watch,omitempty" toml:"watch,omitempty" json:"watch,omitempty" jsonschema:"description=Reload when the dataset file changes"`
}

// TimeoutDuration parses Timeout. An empty value means no client timeout.
func (s SourceConfig) TimeoutDuration() (time.Duration, error) {
	if s.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", s.Timeout, err)
	}
	return d, nil
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty" toml:"addr,omitempty" json:"addr,omitempty" jsonschema:"description=Listen address for atlas serve"`
}

// TUIConfig configures the interactive browser.
type TUIConfig struct {
	Theme         string `yaml:"theme,omitempty" toml:"theme,omitempty" json:"theme,omitempty" jsonschema:"enum=kanagawa,enum=gruvbox,enum=terminal,description=Color theme"`
	InitialRegion string `yaml:"initial_region,omitempty" toml:"initial_region,omitempty" json:"initial_region,omitempty" jsonschema:"description=Region selected when the browser starts"`
}

// Config is the atlas configuration file.
type Config struct {
	Version string       `yaml:"version,omitempty" toml:"version,omitempty" json:"version,omitempty" jsonschema:"description=Configuration version (e.g. '1.0')"`
	Source  SourceConfig `yaml:"source,omitempty" toml:"source,omitempty" json:"source,omitempty" jsonschema:"description=Where the country dataset comes from"`
	Server  ServerConfig `yaml:"server,omitempty" toml:"server,omitempty" json:"server,omitempty" jsonschema:"description=HTTP API settings"`
	TUI     TUIConfig    `yaml:"tui,omitempty" toml:"tui,omitempty" json:"tui,omitempty" jsonschema:"description=Terminal browser settings"`

	// Extensions captures all other top-level keys (e.g. logging).
	Extensions map[string]interface{} `yaml:",inline" toml:"-" json:"-" jsonschema:"-"`
}

// knownKeys are the top-level keys decoded into typed fields.
var knownKeys = map[string]bool{
	"version": true,
	"source":  true,
	"server":  true,
	"tui":     true,
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults sets default values for configuration
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = "1.0"
	}
	if c.Source.Kind == "" {
		c.Source.Kind = SourceKindHTTP
	}
	if c.Source.Kind == SourceKindHTTP {
		if c.Source.URL == "" {
			c.Source.URL = DefaultSourceURL
		}
		if len(c.Source.Fields) == 0 {
			c.Source.Fields = append([]string(nil), DefaultSourceFields...)
		}
		if c.Source.Timeout == "" {
			c.Source.Timeout = "10s"
		}
	}
	if c.Server.Addr == "" {
		c.Server.Addr = "127.0.0.1:7878"
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = "kanagawa"
	}
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded atlas.yml into the provided target struct. The target must be a pointer.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// A missing key leaves the target zero-valued.
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
