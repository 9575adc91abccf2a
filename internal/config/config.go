// Package config loads service configuration in three layers: built-in
// defaults, an optional YAML file, then environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"skincare-advisor/internal/validation"
)

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/skincare-advisor/config.yaml",
}

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Services  ServicesConfig  `koanf:"services"`
	Redis     RedisConfig     `koanf:"redis"`
	Database  DatabaseConfig  `koanf:"database"`
	Auth      AuthConfig      `koanf:"auth"`
	Recommend RecommendConfig `koanf:"recommend"`
	Logging   LoggingConfig   `koanf:"logging"`
}

type ServerConfig struct {
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	MaxUploadBytes  int64         `koanf:"max_upload_bytes" validate:"gt=0"`
	// TrustProxy takes the client IP from X-Forwarded-For / X-Real-IP. Enable
	// only behind a proxy that overwrites those headers.
	TrustProxy bool `koanf:"trust_proxy"`
}

type ServicesConfig struct {
	CatalogURL       string        `koanf:"catalog_url" validate:"required,url"`
	UserURL          string        `koanf:"user_url" validate:"required,url"`
	Timeout          time.Duration `koanf:"timeout" validate:"gt=0"`
	RetryAttempts    int           `koanf:"retry_attempts" validate:"min=1,max=10"`
	RetryDelay       time.Duration `koanf:"retry_delay"`
	BreakerThreshold uint32        `koanf:"breaker_threshold" validate:"min=1"`
	BreakerTimeout   time.Duration `koanf:"breaker_timeout" validate:"gt=0"`
}

type RedisConfig struct {
	Enabled         bool          `koanf:"enabled"`
	Addr            string        `koanf:"addr" validate:"required_if=Enabled true"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	RateLimit       int           `koanf:"rate_limit" validate:"min=0"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
}

type DatabaseConfig struct {
	// DSN is empty for the in-memory store.
	DSN  string `koanf:"dsn"`
	Seed bool   `koanf:"seed"`
}

type AuthConfig struct {
	JWTSecret string        `koanf:"jwt_secret" validate:"required,min=16"`
	TokenTTL  time.Duration `koanf:"token_ttl" validate:"gt=0"`
}

type RecommendConfig struct {
	DefaultLimit int `koanf:"default_limit" validate:"min=1,max=100"`
	MaxNeighbors int `koanf:"max_neighbors" validate:"min=1"`
}

type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
			MaxUploadBytes:  10 << 20,
		},
		Services: ServicesConfig{
			CatalogURL:       "http://localhost:8083",
			UserURL:          "http://localhost:8081",
			Timeout:          5 * time.Second,
			RetryAttempts:    3,
			RetryDelay:       500 * time.Millisecond,
			BreakerThreshold: 3,
			BreakerTimeout:   10 * time.Second,
		},
		Redis: RedisConfig{
			Enabled:         false,
			Addr:            "localhost:6379",
			CacheTTL:        30 * time.Second,
			RateLimit:       60,
			RateLimitWindow: time.Minute,
		},
		Database: DatabaseConfig{
			Seed: true,
		},
		Auth: AuthConfig{
			JWTSecret: "change-me-in-production",
			TokenTTL:  24 * time.Hour,
		},
		Recommend: RecommendConfig{
			DefaultLimit: 20,
			MaxNeighbors: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Option adjusts the built-in defaults before any file or env layer.
type Option func(*Config)

// WithDefaultPort sets the listen port used when neither file nor env names one.
func WithDefaultPort(port int) Option {
	return func(c *Config) { c.Server.Port = port }
}

// Load builds the configuration. Precedence is env > file > defaults.
func Load(opts ...Option) (*Config, error) {
	k := koanf.New(".")

	defaults := defaultConfig()
	for _, opt := range opts {
		opt(defaults)
	}
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := splitCSV(k, "server.cors_origins"); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validation.Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// splitCSV turns a comma-separated env value into a list.
func splitCSV(k *koanf.Koanf, path string) error {
	s, ok := k.Get(path).(string)
	if !ok {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if err := k.Set(path, out); err != nil {
		return fmt.Errorf("failed to set %s: %w", path, err)
	}
	return nil
}

var envMappings = map[string]string{
	"http_port":        "server.port",
	"read_timeout":     "server.read_timeout",
	"write_timeout":    "server.write_timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"cors_origins":     "server.cors_origins",
	"max_upload_bytes": "server.max_upload_bytes",
	"trust_proxy":      "server.trust_proxy",

	"catalog_service_url": "services.catalog_url",
	"user_service_url":    "services.user_url",
	"service_timeout":     "services.timeout",
	"retry_attempts":      "services.retry_attempts",
	"retry_delay":         "services.retry_delay",
	"breaker_threshold":   "services.breaker_threshold",
	"breaker_timeout":     "services.breaker_timeout",

	"redis_enabled":     "redis.enabled",
	"redis_addr":        "redis.addr",
	"cache_ttl":         "redis.cache_ttl",
	"rate_limit":        "redis.rate_limit",
	"rate_limit_window": "redis.rate_limit_window",

	"database_url": "database.dsn",
	"seed_catalog": "database.seed",

	"jwt_secret": "auth.jwt_secret",
	"token_ttl":  "auth.token_ttl",

	"recommend_default_limit": "recommend.default_limit",
	"recommend_max_neighbors": "recommend.max_neighbors",

	"log_level":  "logging.level",
	"log_format": "logging.format",
}

// envTransformFunc maps REDIS_ADDR to redis.addr and so on. Unmapped
// variables return "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
