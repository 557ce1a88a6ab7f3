package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port            int
	DatabaseURL     string
	RedisAddr       string
	OMDbAPIKey      string
	SessionTTLHours int
}

func Load() *Config {
	return &Config{
		Port:            envInt("PORT", 8080),
		DatabaseURL:     env("DATABASE_URL", "postgres://reelist:reelist@db:5432/reelist?sslmode=disable"),
		RedisAddr:       env("REDIS_ADDR", ""),
		OMDbAPIKey:      env("OMDB_API_KEY", ""),
		SessionTTLHours: envInt("SESSION_TTL_HOURS", 720),
	}
}

// JobsEnabled reports whether the background queue should run; the queue
// needs Redis, and the service works without it.
func (c *Config) JobsEnabled() bool {
	return c.RedisAddr != ""
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
