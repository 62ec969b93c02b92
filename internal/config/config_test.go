package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ARTICLE_RATER_CONFIG", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("REDIS_ADDR", "")

	cfg := Load()

	if cfg.Server.Address != ":8080" {
		t.Fatalf("unexpected default address: %s", cfg.Server.Address)
	}
	if cfg.Cache.TTL() != 300*time.Second {
		t.Fatalf("unexpected default TTL: %s", cfg.Cache.TTL())
	}
	if cfg.Fetcher.Timeout() != 20*time.Second {
		t.Fatalf("unexpected default fetch timeout: %s", cfg.Fetcher.Timeout())
	}
	if cfg.Detector.Threshold != 0.7 {
		t.Fatalf("unexpected default threshold: %f", cfg.Detector.Threshold)
	}
	if cfg.Detector.MaxTokens != 100 {
		t.Fatalf("unexpected default max tokens: %d", cfg.Detector.MaxTokens)
	}
	if cfg.Cache.Backend != "memory" {
		t.Fatalf("unexpected default cache backend: %s", cfg.Cache.Backend)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ARTICLE_RATER_CONFIG", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("ARTICLE_RATER_ADDR", ":9090")

	cfg := Load()

	if cfg.Detector.APIKey != "sk-test" {
		t.Fatalf("API key override not applied: %s", cfg.Detector.APIKey)
	}
	if cfg.Cache.Backend != "redis" {
		t.Fatalf("expected redis backend, got %s", cfg.Cache.Backend)
	}
	if cfg.Cache.Redis.Addr != "localhost:6379" {
		t.Fatalf("redis addr override not applied: %s", cfg.Cache.Redis.Addr)
	}
	if cfg.Server.Address != ":9090" {
		t.Fatalf("address override not applied: %s", cfg.Server.Address)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte(`
logging:
  level: debug
server:
  address: ":7070"
detector:
  model: gpt-4o
  threshold: 0.8
cache:
  ttlSeconds: 60
`)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ARTICLE_RATER_CONFIG", path)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("REDIS_ADDR", "")

	cfg := Load()

	if cfg.Logging.Level != "debug" {
		t.Fatalf("logging level not merged: %s", cfg.Logging.Level)
	}
	if cfg.Server.Address != ":7070" {
		t.Fatalf("address not merged: %s", cfg.Server.Address)
	}
	if cfg.Detector.Model != "gpt-4o" {
		t.Fatalf("model not merged: %s", cfg.Detector.Model)
	}
	if cfg.Detector.Threshold != 0.8 {
		t.Fatalf("threshold not merged: %f", cfg.Detector.Threshold)
	}
	if cfg.Cache.TTL() != time.Minute {
		t.Fatalf("ttl not merged: %s", cfg.Cache.TTL())
	}
	if cfg.Detector.MaxTokens != 100 {
		t.Fatalf("unset fields must keep defaults, got max tokens %d", cfg.Detector.MaxTokens)
	}
}
