package cli

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/atlas/errors"
	"github.com/grovetools/atlas/tui/theme"
	"github.com/grovetools/atlas/version"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardCommandFlags(t *testing.T) {
	cmd := NewStandardCommand("atlas", "Browse countries")
	require.NoError(t, cmd.ParseFlags([]string{"-v", "--json", "-c", "atlas.yml"}))

	opts := GetOptions(cmd)
	assert.Equal(t, CommandOptions{ConfigFile: "atlas.yml", Verbose: true, JSONOutput: true}, opts)
	assert.True(t, cmd.SilenceUsage)
}

func TestLoadConfigFromFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atlas.yml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: 127.0.0.1:9999\n"), 0644))

	cmd := NewStandardCommand("atlas", "")
	require.NoError(t, cmd.ParseFlags([]string{"--config", path}))

	cfg, err := LoadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
}

func TestLoadConfigMissingFlagFile(t *testing.T) {
	cmd := NewStandardCommand("atlas", "")
	require.NoError(t, cmd.ParseFlags([]string{"--config", filepath.Join(t.TempDir(), "nope.yml")}))

	_, err := LoadConfig(cmd)
	assert.Equal(t, errors.ErrCodeConfigNotFound, errors.GetCode(err))
}

func TestErrorHandlerMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "config not found",
			err:  errors.ConfigNotFound("/tmp/atlas.yml"),
			want: []string{"Configuration not found: /tmp/atlas.yml"},
		},
		{
			name: "invalid region",
			err:  errors.InvalidRegion("Atlantis"),
			want: []string{"unknown region 'Atlantis'", "atlas regions"},
		},
		{
			name: "load failure",
			err:  errors.LoadFailed(stderrors.New("boom")),
			want: []string{"Could not load countries", "boom"},
		},
		{
			name: "plain error",
			err:  stderrors.New("plain"),
			want: []string{"Error: plain"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			got := NewErrorHandler(&buf, false).Handle(tt.err)
			assert.Equal(t, tt.err, got)
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
			assert.NotContains(t, buf.String(), "Error details")
		})
	}
}

func TestErrorHandlerVerboseDumpsJSON(t *testing.T) {
	var buf bytes.Buffer
	_ = NewErrorHandler(&buf, true).Handle(errors.InvalidRegion("Mars"))

	assert.Contains(t, buf.String(), "Error details")
	assert.Contains(t, buf.String(), `"code": "INVALID_INPUT"`)
}

func TestErrorHandlerHidesCauseChain(t *testing.T) {
	err := errors.LoadFailed(errors.FetchFailed("http://countries.test/all", stderrors.New("connection refused")))

	var buf bytes.Buffer
	_ = NewErrorHandler(&buf, false).Handle(err)
	assert.Equal(t,
		"❌ Could not load countries: failed to fetch countries from http://countries.test/all: connection refused\n",
		buf.String())

	buf.Reset()
	_ = NewErrorHandler(&buf, true).Handle(err)
	assert.Contains(t, buf.String(), "caused by: FETCH_FAILED")
	assert.Contains(t, buf.String(), `"code": "LOAD_FAILED"`)
}

func TestErrorHandlerConfigCause(t *testing.T) {
	err := errors.Wrap(stderrors.New("schema validation failed:\n  - /source/kind: value must be one of"),
		errors.ErrCodeConfigInvalid, "schema validation failed")

	var buf bytes.Buffer
	_ = NewErrorHandler(&buf, false).Handle(err)
	assert.Contains(t, buf.String(), "Invalid configuration: schema validation failed")
	assert.Contains(t, buf.String(), "/source/kind")
	assert.NotContains(t, buf.String(), "CONFIG_INVALID")
}

func TestErrorHandlerNil(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, NewErrorHandler(&buf, true).Handle(nil))
	assert.Empty(t, buf.String())
}

func TestVersionCommandJSON(t *testing.T) {
	root := NewStandardCommand("atlas", "")
	root.AddCommand(NewVersionCommand("atlas"))

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"version", "--json"})
	require.NoError(t, root.Execute())

	var info version.Info
	require.NoError(t, json.Unmarshal(buf.Bytes(), &info))
	assert.Equal(t, version.GetInfo().Version, info.Version)
}

func TestStyledHelpListsCommandsAndExtras(t *testing.T) {
	root := NewStandardCommand("atlas", "Browse countries")
	root.AddCommand(&cobra.Command{Use: "regions", Short: "List regions", Run: func(*cobra.Command, []string) {}})
	SetStyledHelpWithExtras(root, func(w io.Writer, _ *theme.Theme) {
		fmt.Fprintln(w, "EXTRA SECTION")
	})

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--help"})
	require.NoError(t, root.Execute())

	out := buf.String()
	assert.Contains(t, out, "ATLAS")
	assert.Contains(t, out, "COMMANDS")
	assert.Contains(t, out, "regions")
	assert.Contains(t, out, "EXTRA SECTION")
}

func TestStyledHelpLeafCommand(t *testing.T) {
	root := NewStandardCommand("atlas", "Browse countries")
	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "Print countries",
		Long: `Loads the dataset once.

Examples:
  # Countries in Europe
  atlas list --region europe`,
		Run: func(*cobra.Command, []string) {},
	}
	list.Flags().StringVarP(&search, "search", "s", "", "Name filter")
	root.AddCommand(list)
	ApplyStyledHelpRecursive(root)

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"list", "--help"})
	require.NoError(t, root.Execute())

	out := buf.String()
	assert.Contains(t, out, "ATLAS LIST")
	assert.Contains(t, out, "Loads the dataset once.")
	assert.Contains(t, out, "-s, --search string")
	assert.Contains(t, out, "GLOBAL FLAGS")
	assert.Contains(t, out, "-c, --config string")
	assert.Contains(t, out, "# Countries in Europe")
	assert.Contains(t, out, "atlas list --region europe")
	assert.NotContains(t, out, "--help")
	assert.NotContains(t, out, "Examples:")
}

func TestSplitExamples(t *testing.T) {
	desc, examples := splitExamples("Intro text.\n\nExamples:\n  atlas list")
	assert.Equal(t, "Intro text.", desc)
	assert.Equal(t, "atlas list", examples)

	desc, examples = splitExamples("Only text")
	assert.Equal(t, "Only text", desc)
	assert.Empty(t, examples)
}
