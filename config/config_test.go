package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/atlas/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the global config at an empty directory.
func isolate(t *testing.T) string {
	t.Helper()
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	return xdg
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "1.0", cfg.Version)
	assert.Equal(t, SourceKindHTTP, cfg.Source.Kind)
	assert.Equal(t, DefaultSourceURL, cfg.Source.URL)
	assert.Equal(t, DefaultSourceFields, cfg.Source.Fields)
	assert.Equal(t, "10s", cfg.Source.Timeout)
	assert.Equal(t, "127.0.0.1:7878", cfg.Server.Addr)
	assert.Equal(t, "kanagawa", cfg.TUI.Theme)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromBytesYAML(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`
version: "1.0"
source:
  kind: file
  path: ./countries.json
  watch: true
tui:
  initial_region: europe
`), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, SourceKindFile, cfg.Source.Kind)
	assert.Equal(t, "./countries.json", cfg.Source.Path)
	assert.True(t, cfg.Source.Watch)
	assert.Empty(t, cfg.Source.URL, "http defaults do not apply to the file source")
	assert.Equal(t, "europe", cfg.TUI.InitialRegion)
}

func TestLoadFromBytesTOML(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`
version = "1.0"

[source]
kind = "http"
url = "https://countries.example.test/all"
timeout = "3s"

[logging]
level = "debug"
`), FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, "https://countries.example.test/all", cfg.Source.URL)
	d, err := cfg.Source.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, "3s", d.String())

	var logCfg struct {
		Level string `yaml:"level"`
	}
	require.NoError(t, cfg.UnmarshalExtension("logging", &logCfg))
	assert.Equal(t, "debug", logCfg.Level)
}

// TestExtensions verifies that unknown top-level sections are kept for other packages.
func TestExtensions(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`
version: "1.0"
logging:
  level: warn
  report_caller: true
  file:
    enabled: true
    path: /tmp/atlas.log
`), FormatYAML)
	require.NoError(t, err)
	require.Contains(t, cfg.Extensions, "logging")

	type fileSink struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	}
	var logCfg struct {
		Level        string   `yaml:"level"`
		ReportCaller bool     `yaml:"report_caller"`
		File         fileSink `yaml:"file"`
	}
	require.NoError(t, cfg.UnmarshalExtension("logging", &logCfg))
	assert.Equal(t, "warn", logCfg.Level)
	assert.True(t, logCfg.ReportCaller)
	assert.Equal(t, fileSink{Enabled: true, Path: "/tmp/atlas.log"}, logCfg.File)

	// Missing extensions leave the target untouched.
	var missing struct{ Level string }
	require.NoError(t, cfg.UnmarshalExtension("nope", &missing))
	assert.Empty(t, missing.Level)
}

func TestEnvVarExpansion(t *testing.T) {
	t.Setenv("ATLAS_TEST_URL", "https://mirror.example.test/v2/all")

	cfg, err := LoadFromBytes([]byte(`
source:
  url: ${ATLAS_TEST_URL}
server:
  addr: ${ATLAS_TEST_ADDR:-0.0.0.0:9000}
`), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "https://mirror.example.test/v2/all", cfg.Source.URL)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantCode errors.ErrorCode
	}{
		{
			name:     "unknown source kind rejected by schema",
			content:  "source:\n  kind: ftp\n",
			wantCode: errors.ErrCodeConfigInvalid,
		},
		{
			name:     "unknown theme rejected by schema",
			content:  "tui:\n  theme: neon\n",
			wantCode: errors.ErrCodeConfigInvalid,
		},
		{
			name:     "file source without path",
			content:  "source:\n  kind: file\n",
			wantCode: errors.ErrCodeConfigValidation,
		},
		{
			name:     "non-http url",
			content:  "source:\n  url: ftp://example.test/all\n",
			wantCode: errors.ErrCodeConfigValidation,
		},
		{
			name:     "bad timeout",
			content:  "source:\n  timeout: soon\n",
			wantCode: errors.ErrCodeConfigValidation,
		},
		{
			name:     "unknown initial region",
			content:  "tui:\n  initial_region: Atlantis\n",
			wantCode: errors.ErrCodeConfigValidation,
		},
		{
			name:     "malformed yaml",
			content:  "source: [\n",
			wantCode: errors.ErrCodeConfigInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tt.content), FormatYAML)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.GetCode(err), "error: %v", err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "atlas.yml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))
}

func TestLoadFromWithoutAnyFile(t *testing.T) {
	isolate(t)

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromMergesGlobalAndProject(t *testing.T) {
	xdg := isolate(t)
	writeFile(t, filepath.Join(xdg, "atlas", "atlas.yml"), `
source:
  timeout: 30s
server:
  addr: 0.0.0.0:8080
logging:
  level: debug
`)

	project := t.TempDir()
	writeFile(t, filepath.Join(project, "atlas.yml"), `
server:
  addr: 127.0.0.1:9999
tui:
  theme: gruvbox
`)
	nested := filepath.Join(project, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	cfg, err := LoadFrom(nested)
	require.NoError(t, err)

	assert.Equal(t, "30s", cfg.Source.Timeout, "global value kept")
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr, "project overrides global")
	assert.Equal(t, "gruvbox", cfg.TUI.Theme)
	assert.Contains(t, cfg.Extensions, "logging")
}

func TestLoadFromRejectsInvalidProject(t *testing.T) {
	isolate(t)
	project := t.TempDir()
	writeFile(t, filepath.Join(project, "atlas.toml"), "[source]\nkind = \"carrier-pigeon\"\n")

	_, err := LoadFrom(project)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigInvalid, errors.GetCode(err))
}

func TestFindConfigFile(t *testing.T) {
	xdg := isolate(t)
	dir := t.TempDir()

	_, err := FindConfigFile(dir)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))

	global := filepath.Join(xdg, "atlas", "atlas.yml")
	writeFile(t, global, "version: \"1.0\"\n")
	path, err := FindConfigFile(dir)
	require.NoError(t, err)
	assert.Equal(t, global, path)

	local := filepath.Join(dir, ".atlas.yml")
	writeFile(t, local, "version: \"1.0\"\n")
	path, err = FindConfigFile(dir)
	require.NoError(t, err)
	assert.Equal(t, local, path)
}

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	var schema map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &schema))
	assert.Equal(t, SchemaID, schema["$id"])

	props, ok := schema["properties"].(map[string]interface{})
	require.True(t, ok)
	for _, key := range []string{"version", "source", "server", "tui"} {
		assert.Contains(t, props, key)
	}
	assert.NotContains(t, props, "Extensions")
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatTOML, FormatForPath("/x/atlas.toml"))
	assert.Equal(t, FormatYAML, FormatForPath("/x/atlas.yml"))
	assert.Equal(t, FormatYAML, FormatForPath("/x/.atlas.yaml"))
}
