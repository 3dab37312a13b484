package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/cyoa/pkg/report"
	"github.com/caarlos0/env/v11"
)

// Store backends selectable with CYOA_STORE.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config is the environment-driven configuration shared by every command.
// Command-line flags override it.
type Config struct {
	// Seed makes random draws reproducible. Nil means a fresh seed per run.
	Seed *uint64 `env:"CYOA_SEED"`

	// ListSeparator joins list values in text and markdown reports.
	ListSeparator string `env:"CYOA_LIST_SEPARATOR" envDefault:", "`

	// MaxDepth bounds evaluation recursion.
	MaxDepth int `env:"CYOA_MAX_DEPTH" envDefault:"10000"`

	// Format is the default report format.
	Format string `env:"CYOA_FORMAT" envDefault:"text"`

	Debug   bool   `env:"CYOA_DEBUG"`
	LogFile string `env:"CYOA_LOG_FILE"`

	Store         string        `env:"CYOA_STORE" envDefault:"file"`
	RunsDir       string        `env:"CYOA_RUNS_DIR" envDefault:".cyoa/runs"`
	RedisAddr     string        `env:"CYOA_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"CYOA_REDIS_PASSWORD"`
	RedisDB       int           `env:"CYOA_REDIS_DB" envDefault:"0"`
	RedisTTL      time.Duration `env:"CYOA_REDIS_TTL" envDefault:"0s"`

	// EncryptionKey is a base64 AES-256 key; when set, archived results are encrypted.
	EncryptionKey string   `env:"CYOA_ENCRYPTION_KEY"`
	FallbackKeys  []string `env:"CYOA_ENCRYPTION_FALLBACK_KEYS" envSeparator:","`
	MaskedResults []string `env:"CYOA_MASK_RESULTS" envSeparator:","`

	// Addr is the listen address of the HTTP server.
	Addr           string        `env:"CYOA_ADDR" envDefault:":8080"`
	RequestTimeout time.Duration `env:"CYOA_REQUEST_TIMEOUT" envDefault:"30s"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env parsing cannot.
func (c *Config) Validate() error {
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	switch c.Store {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		return fmt.Errorf("invalid CYOA_STORE %q (want memory, file or redis)", c.Store)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("invalid CYOA_MAX_DEPTH %d", c.MaxDepth)
	}
	if _, err := report.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("invalid CYOA_FORMAT: %w", err)
	}
	return nil
}
