// Package config builds runtime configuration from IDS_* environment
// variables so main stays lean.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	platformstrings "idsforge/pkg/platform/strings"
)

// Config is the full server configuration.
type Config struct {
	Addr          string
	LogLevel      string
	JWTSigningKey string
	APIKeyHash    string

	PostgresURL string

	Redis RedisConfig

	BSDD    BSDDConfig
	Checker CheckerConfig
	Kafka   KafkaConfig
}

// RedisConfig covers the optional response cache. An empty URL disables
// Redis and falls back to the in-memory cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// BSDDConfig points at the dictionary service.
type BSDDConfig struct {
	BaseURL      string
	Dictionaries []string
	CacheTTL     time.Duration
}

// CheckerConfig points at the external model checking service. An empty
// base URL disables the check endpoint.
type CheckerConfig struct {
	BaseURL string
}

// KafkaConfig covers audit event publishing. Empty brokers keep audit
// in-memory.
type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
}

// FromEnv builds a Config from environment variables, with development
// defaults for everything but credentials.
func FromEnv() Config {
	return Config{
		Addr:          envOr("IDS_ADDR", ":8080"),
		LogLevel:      envOr("IDS_LOG_LEVEL", "info"),
		JWTSigningKey: envOr("IDS_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		APIKeyHash:    os.Getenv("IDS_API_KEY_HASH"),
		PostgresURL:   os.Getenv("IDS_POSTGRES_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("IDS_REDIS_URL"),
			PoolSize:     envInt("IDS_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("IDS_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("IDS_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("IDS_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("IDS_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		BSDD: BSDDConfig{
			BaseURL:      envOr("IDS_BSDD_BASE_URL", "https://api.bsdd.buildingsmart.org"),
			Dictionaries: envList("IDS_BSDD_DICTIONARIES"),
			CacheTTL:     envDuration("IDS_BSDD_CACHE_TTL", 15*time.Minute),
		},
		Checker: CheckerConfig{
			BaseURL: os.Getenv("IDS_CHECKER_BASE_URL"),
		},
		Kafka: KafkaConfig{
			Brokers:    envList("IDS_KAFKA_BROKERS"),
			AuditTopic: envOr("IDS_KAFKA_AUDIT_TOPIC", "idsforge.audit"),
		},
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	return platformstrings.DedupeAndTrim(strings.Split(value, ","))
}
