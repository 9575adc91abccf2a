package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Recommend.DefaultLimit != 20 || cfg.Recommend.MaxNeighbors != 10 {
		t.Errorf("recommend = %+v", cfg.Recommend)
	}
	if cfg.Services.Timeout != 5*time.Second {
		t.Errorf("timeout = %v", cfg.Services.Timeout)
	}
}

func TestLoadWithDefaultPort(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")

	cfg, err := Load(WithDefaultPort(8083))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8083 {
		t.Errorf("port = %d, want 8083", cfg.Server.Port)
	}

	t.Setenv("HTTP_PORT", "9100")
	cfg, err = Load(WithDefaultPort(8083))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("env port = %d, want 9100", cfg.Server.Port)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9000
redis:
  enabled: true
  addr: cache:6379
recommend:
  default_limit: 5
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "9100")
	t.Setenv("CACHE_TTL", "2m")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("env should override file: port = %d", cfg.Server.Port)
	}
	if !cfg.Redis.Enabled || cfg.Redis.Addr != "cache:6379" {
		t.Errorf("redis = %+v", cfg.Redis)
	}
	if cfg.Redis.CacheTTL != 2*time.Minute {
		t.Errorf("cache ttl = %v", cfg.Redis.CacheTTL)
	}
	if cfg.Recommend.DefaultLimit != 5 {
		t.Errorf("default limit = %d", cfg.Recommend.DefaultLimit)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q", cfg.Logging.Level)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !slices.Equal(cfg.Server.CORSOrigins, want) {
		t.Errorf("cors = %v", cfg.Server.CORSOrigins)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name, key, value, field string
	}{
		{"bad level", "LOG_LEVEL", "loud", "Level"},
		{"limit too high", "RECOMMEND_DEFAULT_LIMIT", "500", "DefaultLimit"},
		{"short secret", "JWT_SECRET", "short", "JWTSecret"},
		{"bad url", "CATALOG_SERVICE_URL", "not a url", "CatalogURL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ConfigPathEnvVar, "")
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not name %s", err, tt.field)
			}
		})
	}
}

func TestTrustProxy(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.TrustProxy {
		t.Error("proxy headers trusted by default")
	}

	t.Setenv("TRUST_PROXY", "true")
	if cfg, err = Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Server.TrustProxy {
		t.Error("TRUST_PROXY=true not applied")
	}
}
