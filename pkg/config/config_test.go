package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docfind/docfind/pkg/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Search.DefaultLimit)
	assert.Equal(t, 5, cfg.Search.MaxResults)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 60*time.Second, cfg.Redis.CacheTTL)
	assert.Equal(t, "document-ingest", cfg.Kafka.Topics.DocumentIngest)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: 9999
search:
  defaultLimit: 3
  maxResults: 10
logging:
  level: debug
  format: text
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, 3, cfg.Search.DefaultLimit)
	assert.Equal(t, 10, cfg.Search.MaxResults)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched sections keep their defaults.
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DF_SERVER_PORT", "7070")
	t.Setenv("DF_REDIS_ADDR", "redis.internal:6379")
	t.Setenv("DF_KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("DF_LOGGING_LEVEL", "warn")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Addr)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestValidateRejectsBadLimits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
search:
  defaultLimit: 10
  maxResults: 5
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))
	_, err := config.Load(path)
	assert.Error(t, err)
}
