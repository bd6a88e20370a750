// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/jason-s-yu/uno/internal/cache"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"UNO_ENV", "PORT", "ALLOWED_ORIGINS", "LOG_LEVEL", "REDIS_ADDR", "REDIS_DB",
		"HISTORIAN_QUEUE_NAME", "UNO_DEBUG_DECK", "UNO_DEFERRED_COLOR", "GAME_IDLE_TIMEOUT_SEC",
		"HISTORIAN_BATCH_SIZE", "HISTORIAN_FLUSH_MS", "GAME_INACTIVITY_TIMEOUT_SEC",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg := Load()

	assert.Equal(t, "dev", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "localhost:8080", cfg.ListenAddr())
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, cache.DefaultQueueName, cfg.QueueName)
	assert.False(t, cfg.DebugDeck)
	assert.False(t, cfg.DeferColor)
	assert.Zero(t, cfg.IdleTimeout)
	assert.Equal(t, 20, cfg.HistorianBatchSize)
	assert.Equal(t, 500*time.Millisecond, cfg.HistorianFlushDelay)
	assert.Equal(t, 10*time.Minute, cfg.HistorianInactivity)
	assert.Equal(t, []string{"https://*", "http://*"}, cfg.CORSOrigins())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("UNO_ENV", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("UNO_DEBUG_DECK", "true")
	t.Setenv("UNO_DEFERRED_COLOR", "1")
	t.Setenv("GAME_IDLE_TIMEOUT_SEC", "90")
	t.Setenv("HISTORIAN_FLUSH_MS", "250")

	cfg := Load()
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ":9000", cfg.ListenAddr())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins())
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.True(t, cfg.DebugDeck)
	assert.True(t, cfg.DeferColor)
	assert.Equal(t, 90*time.Second, cfg.IdleTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.HistorianFlushDelay)
}

func TestLoadIgnoresGarbage(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "loud")
	t.Setenv("REDIS_DB", "x")
	t.Setenv("UNO_DEBUG_DECK", "maybe")

	cfg := Load()
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.Zero(t, cfg.RedisDB)
	assert.False(t, cfg.DebugDeck)
}
