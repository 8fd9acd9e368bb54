// Package config loads process configuration from the environment.
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/lithictech/go-fieldcheck/logctx"
	"github.com/pkg/errors"
	"io"
	"log/slog"
)

// Config is the configuration for the fieldcheck server and CLI.
// Command-line flags, where they exist, take precedence.
type Config struct {
	Address     string   `env:"FIELDCHECK_ADDRESS" envDefault:":8080"`
	LogLevel    string   `env:"FIELDCHECK_LOG_LEVEL" envDefault:"info"`
	LogFormat   string   `env:"FIELDCHECK_LOG_FORMAT"`
	LogFile     string   `env:"FIELDCHECK_LOG_FILE"`
	Parallelism int      `env:"FIELDCHECK_PARALLELISM" envDefault:"4"`
	CorsOrigins []string `env:"FIELDCHECK_CORS_ORIGINS" envSeparator:","`
}

var ErrInvalidParallelism = errors.New("FIELDCHECK_PARALLELISM must be > 0")

// Load parses Config from the process environment.
func Load() (Config, error) {
	return LoadFrom(nil)
}

// LoadFrom parses Config from the given environment,
// or the process environment if environ is nil.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, errors.Wrap(err, "parsing environment")
	}
	if cfg.Parallelism <= 0 {
		return Config{}, ErrInvalidParallelism
	}
	return cfg, nil
}

// NewLogger builds the process logger from the log settings.
// Logs go to LogFile if it is set, and to out otherwise.
func (c Config) NewLogger(out io.Writer) (*slog.Logger, error) {
	input := logctx.NewLoggerInput{
		Level:  c.LogLevel,
		Format: c.LogFormat,
		File:   c.LogFile,
	}
	if c.LogFile == "" {
		input.Out = out
	}
	return logctx.NewLogger(input)
}
