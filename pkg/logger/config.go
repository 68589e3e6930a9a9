package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// ErrInvalidConfig is returned for an unknown level or format.
var ErrInvalidConfig = errors.New("logger: invalid configuration")

// Config holds logger settings.
type Config struct {
	// Level is one of debug, info, warn, error.
	Level string `env:"LOG_LEVEL" envDefault:"info" yaml:"level"`

	// Format is "json" for production or "text" for colored local output.
	Format string `env:"LOG_FORMAT" envDefault:"json" yaml:"format"`

	Sentry SentryConfig `yaml:"sentry"`
}

// Validate checks the level and format.
func (c Config) Validate() error {
	if _, err := c.level(); err != nil {
		return err
	}
	switch strings.ToLower(c.Format) {
	case "", FormatJSON, FormatText:
		return nil
	}
	return fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, c.Format)
}

func (c Config) level() (slog.Level, error) {
	if c.Level == "" {
		return slog.LevelInfo, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Level)); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return l, nil
}
