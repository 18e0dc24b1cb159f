package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/grovetools/atlas/config"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex

	// explicit is the logging section set by Configure; nil means discover.
	explicit *Config
)

// Configure makes every logger created afterwards use the logging section of
// cfg instead of the discovered configuration, and drops cached loggers.
// A nil cfg restores discovery.
func Configure(cfg *config.Config) error {
	var logCfg *Config
	if cfg != nil {
		logCfg = &Config{}
		if err := cfg.UnmarshalExtension("logging", logCfg); err != nil {
			return err
		}
	}

	loggersMu.Lock()
	defer loggersMu.Unlock()
	explicit = logCfg
	loggers = make(map[string]*logrus.Entry)
	return nil
}

// NewLogger creates and returns a pre-configured logger for a specific component.
// It uses a singleton pattern per component to avoid re-initializing.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	var logCfg Config
	if explicit != nil {
		logCfg = *explicit
	} else if cfg, err := config.LoadDefault(); err == nil {
		if err := cfg.UnmarshalExtension("logging", &logCfg); err != nil {
			logrus.Warnf("Failed to parse 'logging' config: %v", err)
		}
	}

	entry := newLoggerFromConfig(logCfg, stderrIsInteractive()).WithField("component", component)
	loggers[component] = entry
	return entry
}

// newLoggerFromConfig builds a logger from an explicit configuration.
func newLoggerFromConfig(logCfg Config, interactive bool) *logrus.Logger {
	logger := logrus.New()

	levelStr := "info"
	if env := os.Getenv("ATLAS_LOG_LEVEL"); env != "" {
		levelStr = env
	} else if logCfg.Level != "" {
		levelStr = logCfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if os.Getenv("ATLAS_LOG_CALLER") == "true" || logCfg.ReportCaller {
		logger.SetReportCaller(true)
	}

	switch logCfg.Format.Preset {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "simple":
		logger.SetFormatter(&TextFormatter{Config: FormatConfig{
			DisableTimestamp: true,
			DisableComponent: true,
		}})
	default:
		logger.SetFormatter(&TextFormatter{Config: logCfg.Format})
	}

	var writers []io.Writer

	if logCfg.File.Enabled && logCfg.File.Path != "" {
		writers = append(writers, newFileSink(expandPath(logCfg.File.Path)))
	}

	stderrMode := "auto"
	if logCfg.Format.StructuredToStderr != "" {
		stderrMode = logCfg.Format.StructuredToStderr
	}

	shouldLogToStderr := false
	switch stderrMode {
	case "always":
		shouldLogToStderr = true
	case "never":
		shouldLogToStderr = false
	default:
		// Keep interactive terminals (and the browse TUI) clean unless debugging.
		isDebug := os.Getenv("ATLAS_DEBUG") == "1" || logger.GetLevel() >= logrus.DebugLevel
		shouldLogToStderr = isDebug || !interactive
	}

	if shouldLogToStderr {
		writers = append(writers, GetGlobalOutput())
	}

	switch len(writers) {
	case 0:
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}

	return logger
}

func stderrIsInteractive() bool {
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

// expandPath expands tilde in file paths
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
