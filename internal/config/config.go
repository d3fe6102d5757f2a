package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server
	Port             int
	TrustedProxies   []string // List of trusted proxy IPs
	PermittedOrigins []string

	// Logging
	LogLevel    string
	LogFormat   string // "json" or "text"
	LogDir      string
	ServiceName string
	Version     string
	Environment string // "dev", "staging", "prod"
	Debug       bool

	// Database
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// Database Pool
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	// Session store (ephemeral battle/session state; an address is
	// reserved here for a future distributed backend, per spec.md 4.7)
	SessionStoreAddr string
	SessionTTL       time.Duration

	// Auth
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// Stamina regeneration (background worker, spec.md Player.resources.stamina)
	StaminaRegenInterval time.Duration
	StaminaRegenAmount   int64

	// Event Publishing
	EventMaxRetries     int           // Max retries for event publishing (default: 5)
	EventRetryDelay     time.Duration // Base delay for exponential backoff (default: 2s)
	EventDeadLetterPath string        // Path to dead-letter log file (default: logs/event_deadletter.jsonl)
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		// Logging config
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		LogDir:      getEnv("LOG_DIR", "logs"),
		ServiceName: getEnv("SERVICE_NAME", "tactics-server"),
		Version:     getEnv("VERSION", "dev"),
		Environment: getEnv("ENVIRONMENT", "dev"),

		// Database config
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "tactics"),

		// Database pool defaults
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", 20),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),

		// Session store config
		SessionStoreAddr: getEnv("SESSION_STORE_ADDR", "memory"),
		SessionTTL:       getEnvAsDuration("SESSION_TTL", 30*time.Minute),

		// Auth config
		JWTSecretKey:    getEnv("JWT_SECRET_KEY", ""),
		AccessTokenTTL:  getEnvAsDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL: getEnvAsDuration("REFRESH_TOKEN_TTL", 30*24*time.Hour),

		// Stamina regen config
		StaminaRegenInterval: getEnvAsDuration("STAMINA_REGEN_INTERVAL", 5*time.Minute),
		StaminaRegenAmount:   int64(getEnvAsInt("STAMINA_REGEN_AMOUNT", 1)),

		// Event publishing config
		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", 5),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", 2*time.Second),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", "logs/event_deadletter.jsonl"),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	debugStr := getEnv("DEBUG", "false")
	cfg.Debug = debugStr == "true" || debugStr == "1"

	cfg.TrustedProxies = splitList(getEnv("TRUSTED_PROXIES", ""))
	cfg.PermittedOrigins = splitList(getEnv("PERMITTED_ORIGINS", "*"))

	// Validate JWT secret is set
	if cfg.JWTSecretKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable must be set for security")
	}

	return cfg, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as a duration or returns a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
