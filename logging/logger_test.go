package logging

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/grovetools/atlas/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger("test-component")
	require.NotNil(t, logger)
	assert.Equal(t, "test-component", logger.Data["component"])

	// Same component returns the cached entry.
	assert.Same(t, logger, NewLogger("test-component"))
}

func TestLoggerOutput(t *testing.T) {
	var buf bytes.Buffer

	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&TextFormatter{Config: FormatConfig{}})

	entry := logger.WithField("component", "countries")
	entry.WithField("attempt", "abc").Info("Loading countries")

	output := buf.String()
	assert.Contains(t, output, "[INFO]")
	assert.Contains(t, output, "countries")
	assert.Contains(t, output, "Loading countries")
	assert.Contains(t, output, "attempt=abc")
}

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name    string
		config  FormatConfig
		entry   *logrus.Entry
		want    []string
		notWant []string
	}{
		{
			name:   "default format",
			config: FormatConfig{},
			entry: &logrus.Entry{
				Level:   logrus.InfoLevel,
				Message: "test message",
				Data: logrus.Fields{
					"component": "test-component",
					"key1":      "value1",
				},
			},
			want: []string{"[INFO]", "test-component", "test message", "key1=value1"},
		},
		{
			name: "simple format",
			config: FormatConfig{
				DisableTimestamp: true,
				DisableComponent: true,
			},
			entry: &logrus.Entry{
				Level:   logrus.WarnLevel,
				Message: "warning message",
				Data: logrus.Fields{
					"component": "test-component",
				},
			},
			want:    []string{"[WARN]", "warning message"},
			notWant: []string{"test-component"},
		},
		{
			name:   "caller information with function name",
			config: FormatConfig{},
			entry: func() *logrus.Entry {
				logger := logrus.New()
				logger.SetReportCaller(true)
				return &logrus.Entry{
					Logger:  logger,
					Level:   logrus.InfoLevel,
					Message: "test message with caller",
					Data:    logrus.Fields{"component": "test-component"},
					Caller: &runtime.Frame{
						File:     "/path/to/store.go",
						Line:     42,
						Function: "github.com/grovetools/atlas/pkg/countries.(*Store).Load",
					},
				}
			}(),
			want: []string{"[store.go:42 countries.(*Store).Load]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := &TextFormatter{Config: tt.config}

			output, err := formatter.Format(tt.entry)
			require.NoError(t, err)

			for _, want := range tt.want {
				assert.Contains(t, string(output), want)
			}
			for _, notWant := range tt.notWant {
				assert.NotContains(t, string(output), notWant)
			}
		})
	}
}

func TestFormatterSortsFields(t *testing.T) {
	formatter := &TextFormatter{Config: FormatConfig{DisableTimestamp: true, DisableComponent: true}}
	output, err := formatter.Format(&logrus.Entry{
		Level:   logrus.InfoLevel,
		Message: "msg",
		Data:    logrus.Fields{"zeta": 1, "alpha": 2, "mid": 3},
	})
	require.NoError(t, err)

	assert.Equal(t, "[INFO] msg alpha=2 mid=3 zeta=1\n", string(output))
}

func TestNewLoggerFromConfig(t *testing.T) {
	t.Setenv("ATLAS_LOG_LEVEL", "")
	t.Setenv("ATLAS_LOG_CALLER", "")
	t.Setenv("ATLAS_DEBUG", "")

	t.Run("interactive terminal discards output by default", func(t *testing.T) {
		logger := newLoggerFromConfig(Config{}, true)
		assert.Equal(t, io.Discard, logger.Out)
		assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	})

	t.Run("non-interactive writes to stderr", func(t *testing.T) {
		logger := newLoggerFromConfig(Config{}, false)
		assert.Equal(t, GetGlobalOutput(), logger.Out)
	})

	t.Run("never suppresses stderr", func(t *testing.T) {
		logger := newLoggerFromConfig(Config{Format: FormatConfig{StructuredToStderr: "never"}}, false)
		assert.Equal(t, io.Discard, logger.Out)
	})

	t.Run("json preset", func(t *testing.T) {
		logger := newLoggerFromConfig(Config{Format: FormatConfig{Preset: "json"}}, true)
		assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
	})

	t.Run("config level", func(t *testing.T) {
		logger := newLoggerFromConfig(Config{Level: "warn"}, true)
		assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	})

	t.Run("file sink", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "atlas.log")
		logger := newLoggerFromConfig(Config{
			File:   FileSinkConfig{Enabled: true, Path: path},
			Format: FormatConfig{StructuredToStderr: "never"},
		}, true)

		logger.Info("written to file")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(data), "written to file"))
	})
}

func TestEnvironmentVariables(t *testing.T) {
	t.Setenv("ATLAS_LOG_LEVEL", "debug")
	t.Setenv("ATLAS_LOG_CALLER", "true")

	logger := newLoggerFromConfig(Config{Level: "error"}, true)

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel(), "env overrides config level")
	assert.True(t, logger.ReportCaller)
	assert.Equal(t, GetGlobalOutput(), logger.Out, "debug level logs to stderr in auto mode")
}

func TestGlobalOutputRedirect(t *testing.T) {
	t.Setenv("ATLAS_LOG_LEVEL", "")
	t.Setenv("ATLAS_LOG_CALLER", "")
	t.Cleanup(func() { SetGlobalOutput(os.Stderr) })

	var buf bytes.Buffer
	SetGlobalOutput(&buf)

	logger := newLoggerFromConfig(Config{Format: FormatConfig{Preset: "simple"}}, false)
	logger.Info("redirected")

	assert.Equal(t, "[INFO] redirected\n", buf.String())
}

func TestFileSinkReopensRemovedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "atlas.log")
	sink := newFileSink(path)
	defer sink.Close()

	_, err := sink.Write([]byte("first\n"))
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))

	_, err = sink.Write([]byte("second\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(data))
}

func TestConfigureUsesGivenConfig(t *testing.T) {
	t.Setenv("ATLAS_LOG_LEVEL", "")
	t.Cleanup(func() { require.NoError(t, Configure(nil)) })

	cached := NewLogger("configure-test")

	cfg, err := config.LoadFromBytes([]byte("logging:\n  level: warn\n  format:\n    structured_to_stderr: never\n"), config.FormatYAML)
	require.NoError(t, err)
	require.NoError(t, Configure(cfg))

	logger := NewLogger("configure-test")
	assert.NotSame(t, cached, logger, "cache is dropped")
	assert.Equal(t, logrus.WarnLevel, logger.Logger.GetLevel())
	assert.Equal(t, io.Discard, logger.Logger.Out)
}

func TestConfigureRejectsMalformedSection(t *testing.T) {
	cfg, err := config.LoadFromBytes([]byte("logging:\n  level: [debug]\n"), config.FormatYAML)
	require.NoError(t, err)
	assert.Error(t, Configure(cfg))
}
