package polyglot

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/polyglot/pkg/content"
	"github.com/dmitrymomot/polyglot/pkg/i18n"
	"github.com/dmitrymomot/polyglot/pkg/logger"
	"github.com/dmitrymomot/polyglot/pkg/redis"
)

// Content backends.
const (
	BackendFS = "fs"
	BackendS3 = "s3"
)

var (
	// ErrInvalidConfig is returned when the configuration cannot be used.
	ErrInvalidConfig = errors.New("polyglot: invalid configuration")

	// ErrContentUnavailable is reported by readiness while the content
	// store cannot be listed.
	ErrContentUnavailable = errors.New("polyglot: content listing unavailable")
)

// Config is the complete site configuration.
//
// Values are read from an optional YAML file and then from the environment;
// an environment variable always wins over the file.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `env:"ADDR" envDefault:":8080" yaml:"addr"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s" yaml:"shutdown_timeout"`

	I18n    i18n.Config   `yaml:"i18n"`
	Log     logger.Config `yaml:"log"`
	Content ContentConfig `envPrefix:"CONTENT_" yaml:"content"`
	Redis   redis.Config  `envPrefix:"REDIS_" yaml:"redis"`
}

// ContentConfig selects and configures the content store.
type ContentConfig struct {
	// Backend is "fs" or "s3".
	Backend string `env:"BACKEND" envDefault:"fs" yaml:"backend"`

	// Dir is the content root for the fs backend.
	Dir string `env:"DIR" envDefault:"./content" yaml:"dir"`

	// Exclude hides matching item ids, e.g. "*/drafts/**".
	Exclude []string `env:"EXCLUDE" envSeparator:"," yaml:"exclude"`

	// Watch rescans languages when files under Dir change (fs backend only).
	Watch bool `env:"WATCH" yaml:"watch"`

	// CacheTTL is how long the id listing stays in Redis when Redis is enabled.
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"5m" yaml:"cache_ttl"`

	S3 content.S3Config `envPrefix:"S3_" yaml:"s3"`
}

// overrideTag is never set on any field, so a parse using it as the default
// tag applies only variables that are actually present.
const overrideTag = "envOverride"

// LoadConfig builds a Config from defaults, the YAML file at path (if not
// empty) and the environment, in that order of increasing precedence.
func LoadConfig(path string) (Config, error) {
	return loadConfig(path, nil)
}

// loadConfig is LoadConfig with an explicit environment; nil means the
// process environment.
func loadConfig(path string, environ map[string]string) (Config, error) {
	var cfg Config

	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("polyglot: read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}

		err = env.ParseWithOptions(&cfg, env.Options{
			Environment:         environ,
			DefaultValueTagName: overrideTag,
		})
		if err != nil {
			return Config{}, errors.Join(ErrInvalidConfig, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr is required", ErrInvalidConfig)
	}
	if err := c.I18n.Validate(); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}
	if err := c.Log.Validate(); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}

	switch strings.ToLower(c.Content.Backend) {
	case BackendFS:
		if c.Content.Dir == "" {
			return fmt.Errorf("%w: content dir is required", ErrInvalidConfig)
		}
	case BackendS3:
		if c.Content.S3.Bucket == "" {
			return fmt.Errorf("%w: s3 bucket is required", ErrInvalidConfig)
		}
		if c.Content.Watch {
			return fmt.Errorf("%w: watch requires the fs backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown content backend %q", ErrInvalidConfig, c.Content.Backend)
	}

	return nil
}
