// Package config reads the gateway settings from the environment. A
// .env file in the working directory is loaded first when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Token store backends.
const (
	TokenStoreMemory   = "memory"
	TokenStorePostgres = "postgres"
	TokenStoreRedis    = "redis"
)

type Config struct {
	Port      string
	GinMode   string
	LogLevel  string
	LogPretty bool

	APIBaseURL string
	APITimeout time.Duration

	JWTSecret   string
	AdminAPIKey string

	TokenStore  string
	DatabaseURL string
	RedisURL    string

	RabbitMQURL     string
	RabbitMQQueue   string
	ChannelPoolSize int

	SessionTTL      time.Duration
	SweepSchedule   string
	LoginRatePerMin int
}

// LoadConfig loads .env (if any) and reads the environment.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:      getEnv("PORT", "8080"),
		GinMode:   getEnv("GIN_MODE", "release"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvAsBool("LOG_PRETTY", false),

		APIBaseURL: getEnv("API_BASE_URL", "https://www.revista-sa.com"),
		APITimeout: getEnvAsDuration("API_TIMEOUT", 15*time.Second),

		JWTSecret:   getEnv("JWT_SECRET", ""),
		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),

		TokenStore:  strings.ToLower(getEnv("TOKEN_STORE", TokenStoreMemory)),
		DatabaseURL: databaseURL(),
		RedisURL:    getEnv("REDIS_URL", ""),

		RabbitMQURL:     getEnv("RABBITMQ_URL", ""),
		RabbitMQQueue:   getEnv("RABBITMQ_QUEUE", "storefront_orders"),
		ChannelPoolSize: getEnvAsInt("CHANNEL_POOL_SIZE", 10),

		SessionTTL:      getEnvAsDuration("SESSION_TTL", 30*24*time.Hour),
		SweepSchedule:   getEnv("SWEEP_SCHEDULE", "@every 15m"),
		LoginRatePerMin: getEnvAsInt("LOGIN_RATE_PER_MIN", 10),
	}
}

// Validate reports settings the gateway cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	switch c.TokenStore {
	case TokenStoreMemory:
	case TokenStorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: TOKEN_STORE=postgres needs DATABASE_URL or DB_HOST")
		}
	case TokenStoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config: TOKEN_STORE=redis needs REDIS_URL")
		}
	default:
		return fmt.Errorf("config: unknown TOKEN_STORE %q", c.TokenStore)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL must be positive")
	}
	return nil
}

// databaseURL prefers DATABASE_URL and falls back to the DB_* parts.
func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	host := os.Getenv("DB_HOST")
	if host == "" {
		return ""
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"), getEnv("DB_PORT", "5432"),
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
