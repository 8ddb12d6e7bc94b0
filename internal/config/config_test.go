package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("MODEL_ID", "anthropic.claude-3-5-haiku")
	t.Setenv("PROMPT_BUCKET", "prompts-bucket")
	t.Setenv("CONFIG_TABLE", "tenant-config")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "anthropic.claude-3-5-haiku", cfg.ModelID)
	assert.Equal(t, "prompts/default_prompt.txt", cfg.DefaultPromptKey)
	assert.Equal(t, ConfigStoreDynamoDB, cfg.ConfigStore)
	assert.Equal(t, CacheBackendNone, cfg.CacheBackend)
	assert.Equal(t, InferenceBackendBedrock, cfg.InferenceBackend)
	assert.Equal(t, 1024, cfg.MemoryCacheMaxEntries)
	assert.Empty(t, cfg.OTLPEndpoint)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadConfigMissingModelID(t *testing.T) {
	t.Setenv("MODEL_ID", "")
	t.Setenv("PROMPT_BUCKET", "prompts-bucket")
	t.Setenv("CONFIG_TABLE", "tenant-config")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigNormalizesBackends(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CACHE_BACKEND", " Redis ")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, CacheBackendRedis, cfg.CacheBackend)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestValidate(t *testing.T) {
	valid := Config{
		ModelID:               "m",
		PromptBucket:          "b",
		ConfigStore:           ConfigStoreDynamoDB,
		ConfigTable:           "t",
		CacheBackend:          CacheBackendNone,
		MemoryCacheMaxEntries: 1,
		InferenceBackend:      InferenceBackendBedrock,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"dynamodb without table", func(c *Config) { c.ConfigTable = "" }},
		{"sqlite without path", func(c *Config) { c.ConfigStore = ConfigStoreSQLite; c.ConfigDBPath = "" }},
		{"unknown config store", func(c *Config) { c.ConfigStore = "etcd" }},
		{"redis without addr", func(c *Config) { c.CacheBackend = CacheBackendRedis }},
		{"memory without size", func(c *Config) { c.CacheBackend = CacheBackendMemory; c.MemoryCacheMaxEntries = 0 }},
		{"unknown cache backend", func(c *Config) { c.CacheBackend = "memcached" }},
		{"openai without key", func(c *Config) { c.InferenceBackend = InferenceBackendOpenAI }},
		{"unknown inference backend", func(c *Config) { c.InferenceBackend = "vertex" }},
		{"unknown log level", func(c *Config) { c.LogLevel = "trace" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
