package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv    = "ARTICLE_RATER_CONFIG"
	listenAddrEnv    = "ARTICLE_RATER_ADDR"
	logLevelEnv      = "ARTICLE_RATER_LOG_LEVEL"
	openAIAPIKeyEnv  = "OPENAI_API_KEY"
	openAIBaseURLEnv = "OPENAI_BASE_URL"
	redisAddrEnv     = "REDIS_ADDR"
	redisPasswordEnv = "REDIS_PASSWORD"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Server   ServerConfig   `yaml:"server"`
	Fetcher  FetcherConfig  `yaml:"fetcher"`
	Detector DetectorConfig `yaml:"detector"`
	Cache    CacheConfig    `yaml:"cache"`
}

// LoggingConfig controls the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Address string `yaml:"address"`
}

// FetcherConfig tunes article retrieval.
type FetcherConfig struct {
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
	UserAgent      string `yaml:"userAgent"`
}

// Timeout resolves the fetch timeout, defaulting to 20 seconds.
func (f FetcherConfig) Timeout() time.Duration {
	if f.TimeoutSeconds <= 0 {
		return 20 * time.Second
	}
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// DetectorConfig defines how to contact the generation-detection model.
// An empty APIKey disables the detector entirely.
type DetectorConfig struct {
	BaseURL        string  `yaml:"baseUrl"`
	Model          string  `yaml:"model"`
	EmbeddingModel string  `yaml:"embeddingModel"`
	APIKey         string  `yaml:"apiKey"`
	MaxTokens      int     `yaml:"maxTokens"`
	Threshold      float64 `yaml:"threshold"`
	Seed           int     `yaml:"seed"`
}

// CacheConfig selects the memoization backend.
type CacheConfig struct {
	Backend    string      `yaml:"backend"` // "memory" or "redis"
	TTLSeconds int         `yaml:"ttlSeconds"`
	Redis      RedisConfig `yaml:"redis"`
}

// TTL resolves the entry lifetime, defaulting to 300 seconds.
func (c CacheConfig) TTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return 300 * time.Second
	}
	return time.Duration(c.TTLSeconds) * time.Second
}

// RedisConfig wires the optional Redis cache backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(listenAddrEnv); v != "" {
		c.Server.Address = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(openAIAPIKeyEnv); v != "" {
		c.Detector.APIKey = v
	}

	if v := os.Getenv(openAIBaseURLEnv); v != "" {
		c.Detector.BaseURL = v
	}

	if v := os.Getenv(redisAddrEnv); v != "" {
		c.Cache.Backend = "redis"
		c.Cache.Redis.Addr = v
	}

	if v := os.Getenv(redisPasswordEnv); v != "" {
		c.Cache.Redis.Password = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Server.Address != "" {
		base.Server = override.Server
	}

	if override.Fetcher.TimeoutSeconds > 0 {
		base.Fetcher.TimeoutSeconds = override.Fetcher.TimeoutSeconds
	}
	if override.Fetcher.UserAgent != "" {
		base.Fetcher.UserAgent = override.Fetcher.UserAgent
	}

	if override.Detector.BaseURL != "" {
		base.Detector.BaseURL = override.Detector.BaseURL
	}
	if override.Detector.Model != "" {
		base.Detector.Model = override.Detector.Model
	}
	if override.Detector.EmbeddingModel != "" {
		base.Detector.EmbeddingModel = override.Detector.EmbeddingModel
	}
	if override.Detector.APIKey != "" {
		base.Detector.APIKey = override.Detector.APIKey
	}
	if override.Detector.MaxTokens > 0 {
		base.Detector.MaxTokens = override.Detector.MaxTokens
	}
	if override.Detector.Threshold > 0 {
		base.Detector.Threshold = override.Detector.Threshold
	}
	if override.Detector.Seed != 0 {
		base.Detector.Seed = override.Detector.Seed
	}

	if override.Cache.Backend != "" {
		base.Cache.Backend = override.Cache.Backend
	}
	if override.Cache.TTLSeconds > 0 {
		base.Cache.TTLSeconds = override.Cache.TTLSeconds
	}
	if override.Cache.Redis.Addr != "" {
		base.Cache.Redis = override.Cache.Redis
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Server:  ServerConfig{Address: ":8080"},
		Fetcher: FetcherConfig{TimeoutSeconds: 20},
		Detector: DetectorConfig{
			Model:          "gpt-4o-mini",
			EmbeddingModel: "text-embedding-3-small",
			MaxTokens:      100,
			Threshold:      0.7,
			Seed:           42,
		},
		Cache: CacheConfig{Backend: "memory", TTLSeconds: 300},
	}
}
