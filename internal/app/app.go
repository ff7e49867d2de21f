package app

import (
	"errors"
	"io"
	"log/slog"

	"github.com/vk/pipecut/internal/config"
)

// Config holds everything an App instance needs to run.
type Config struct {
	// PipelinePath is a single .hcl file or a directory of .hcl files.
	PipelinePath string

	LogFormat string
	LogLevel  string

	// Workers overrides the pipeline file's worker count when positive.
	Workers int
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.PipelinePath == "" {
		return nil, errors.New("PipelinePath is a required configuration field and cannot be empty")
	}
	if cfg.Workers < 0 {
		return nil, errors.New("Workers must not be negative")
	}
	return &cfg, nil
}

// App encapsulates the application's dependencies and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	loader config.Loader
}

// NewApp constructs the application with an isolated logger. Plan output is
// written to outW; logs go to logW.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("logger configured", "level", cfg.LogLevel, "format", cfg.LogFormat)
	return &App{outW: outW, logger: logger, loader: loader}
}
