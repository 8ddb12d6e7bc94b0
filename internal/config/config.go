package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	ConfigStoreDynamoDB = "dynamodb"
	ConfigStoreSQLite   = "sqlite"

	CacheBackendNone   = "none"
	CacheBackendRedis  = "redis"
	CacheBackendMemory = "memory"

	InferenceBackendBedrock = "bedrock"
	InferenceBackendOpenAI  = "openai"
)

type Config struct {
	Region           string `env:"REGION"`
	ModelID          string `env:"MODEL_ID,required,notEmpty"`
	PromptBucket     string `env:"PROMPT_BUCKET,required,notEmpty"`
	DefaultPromptKey string `env:"DEFAULT_PROMPT_KEY"       envDefault:"prompts/default_prompt.txt"`

	ConfigStore  string `env:"CONFIG_STORE"   envDefault:"dynamodb"`
	ConfigTable  string `env:"CONFIG_TABLE"`
	ConfigDBPath string `env:"CONFIG_DB_PATH" envDefault:"tenants.sqlite"`

	CacheBackend          string `env:"CACHE_BACKEND"            envDefault:"none"`
	RedisAddr             string `env:"REDIS_ADDR"`
	RedisPassword         string `env:"REDIS_PASSWORD"`
	RedisDB               int    `env:"REDIS_DB"`
	MemoryCacheMaxEntries int    `env:"MEMORY_CACHE_MAX_ENTRIES" envDefault:"1024"`

	InferenceBackend string `env:"INFERENCE_BACKEND" envDefault:"bedrock"`
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string `env:"OPENAI_BASE_URL"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Tracing of AWS calls is on only when an OTLP endpoint is set.
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.normalize()

	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) normalize() {
	c.ConfigStore = strings.ToLower(strings.TrimSpace(c.ConfigStore))
	c.CacheBackend = strings.ToLower(strings.TrimSpace(c.CacheBackend))
	c.InferenceBackend = strings.ToLower(strings.TrimSpace(c.InferenceBackend))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.OTLPEndpoint = strings.TrimSpace(c.OTLPEndpoint)

	if c.CacheBackend == "" {
		c.CacheBackend = CacheBackendNone
	}
}

// Validate checks the settings that depend on each other.
func (c Config) Validate() error {
	var errs []error

	switch c.ConfigStore {
	case ConfigStoreDynamoDB:
		if strings.TrimSpace(c.ConfigTable) == "" {
			errs = append(errs, errors.New("CONFIG_TABLE is required for the dynamodb config store"))
		}
	case ConfigStoreSQLite:
		if strings.TrimSpace(c.ConfigDBPath) == "" {
			errs = append(errs, errors.New("CONFIG_DB_PATH is required for the sqlite config store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown CONFIG_STORE %q", c.ConfigStore))
	}

	switch c.CacheBackend {
	case CacheBackendNone:
	case CacheBackendRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required for the redis cache backend"))
		}
	case CacheBackendMemory:
		if c.MemoryCacheMaxEntries <= 0 {
			errs = append(errs, errors.New("MEMORY_CACHE_MAX_ENTRIES must be positive"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown CACHE_BACKEND %q", c.CacheBackend))
	}

	switch c.InferenceBackend {
	case InferenceBackendBedrock:
	case InferenceBackendOpenAI:
		if strings.TrimSpace(c.OpenAIAPIKey) == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required for the openai inference backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown INFERENCE_BACKEND %q", c.InferenceBackend))
	}

	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (c Config) SlogLevel() (slog.Level, error) {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown LOG_LEVEL %q", c.LogLevel)
	}
}
