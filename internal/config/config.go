// Package config reads service settings from the environment. Binaries import
// github.com/joho/godotenv/autoload so a local .env file is honored.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jason-s-yu/uno/internal/cache"
	"github.com/sirupsen/logrus"
)

// Config is the resolved runtime configuration.
type Config struct {
	Env            string   // dev or production
	Port           string   // listen port
	AllowedOrigins []string // CORS origins; only honored in production
	LogLevel       logrus.Level

	RedisAddr  string // empty disables the action feed
	RedisDB    int
	QueueName  string
	DebugDeck  bool // expose GET /games/{id}/deck
	DeferColor bool // default rules use deferred color choice

	IdleTimeout time.Duration // evict games idle this long; 0 keeps them forever

	HistorianBatchSize  int
	HistorianFlushDelay time.Duration
	HistorianInactivity time.Duration
}

// Load reads the environment, applying defaults for anything unset or unparsable.
func Load() Config {
	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}

	var origins []string
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return Config{
		Env:            getEnv("UNO_ENV", "dev"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: origins,
		LogLevel:       level,
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		QueueName:      getEnv("HISTORIAN_QUEUE_NAME", cache.DefaultQueueName),
		DebugDeck:      getEnvBool("UNO_DEBUG_DECK", false),
		DeferColor:     getEnvBool("UNO_DEFERRED_COLOR", false),

		IdleTimeout: time.Duration(getEnvInt("GAME_IDLE_TIMEOUT_SEC", 0)) * time.Second,

		HistorianBatchSize:  getEnvInt("HISTORIAN_BATCH_SIZE", 20),
		HistorianFlushDelay: time.Duration(getEnvInt("HISTORIAN_FLUSH_MS", 500)) * time.Millisecond,
		HistorianInactivity: time.Duration(getEnvInt("GAME_INACTIVITY_TIMEOUT_SEC", 600)) * time.Second,
	}
}

// IsProduction reports whether the service runs in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// ListenAddr binds to every interface in production and to localhost otherwise.
func (c Config) ListenAddr() string {
	if c.IsProduction() {
		return ":" + c.Port
	}
	return "localhost:" + c.Port
}

// CORSOrigins returns the configured origins in production and a permissive set otherwise.
func (c Config) CORSOrigins() []string {
	if c.IsProduction() {
		return c.AllowedOrigins
	}
	return []string{"https://*", "http://*"}
}

// getEnv is a helper to read an environment variable or return a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt is a helper to parse an environment variable as integer, else a default value.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func getEnvBool(key string, def bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return v
}
