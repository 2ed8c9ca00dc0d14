package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultSecretKey = "dev"

type Config struct {
	// Server
	Port string
	Env  string

	// Sessions
	SecretKey  string
	SessionTTL time.Duration

	// Redis (optional, sessions fall back to memory)
	RedisURL string

	// Database (optional, contact form is disabled without it)
	DatabaseURL string

	// Assistant
	OpenAIAPIKey       string
	OpenAIBaseURL      string
	OpenAIModel        string
	AssistantRateLimit int
	BiographyFile      string

	// Content
	AssetDir string

	// SMTP
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPass     string
	SMTPFrom     string
	ContactEmail string

	// Logging
	LogLevel string
	LogFile  string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:               getEnvOrDefault("PORT", "8080"),
		Env:                getEnvOrDefault("ENV", "development"),
		SecretKey:          getEnvOrDefault("SECRET_KEY", defaultSecretKey),
		SessionTTL:         getEnvAsDurationOrDefault("SESSION_TTL", 30*24*time.Hour),
		RedisURL:           getEnvOrDefault("REDIS_URL", ""),
		DatabaseURL:        getEnvOrDefault("DATABASE_URL", ""),
		OpenAIAPIKey:       getEnvOrDefault("OPENAI_API_KEY", ""),
		OpenAIBaseURL:      getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:        getEnvOrDefault("OPENAI_MODEL", "gpt-3.5-turbo"),
		AssistantRateLimit: getEnvAsIntOrDefault("ASSISTANT_RATE_LIMIT", 10),
		BiographyFile:      getEnvOrDefault("BIOGRAPHY_FILE", ""),
		AssetDir:           getEnvOrDefault("ASSET_DIR", "web/static/icons"),
		SMTPHost:           getEnvOrDefault("SMTP_HOST", ""),
		SMTPPort:           getEnvOrDefault("SMTP_PORT", "587"),
		SMTPUser:           getEnvOrDefault("SMTP_USER", ""),
		SMTPPass:           getEnvOrDefault("SMTP_PASS", ""),
		SMTPFrom:           getEnvOrDefault("SMTP_FROM", "noreply@localhost"),
		ContactEmail:       getEnvOrDefault("CONTACT_EMAIL", ""),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:            getEnvOrDefault("LOG_FILE", ""),
	}

	return cfg
}

// IsProduction reports whether ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// UsesDefaultSecret reports whether sessions are signed with the built-in development key.
func (c *Config) UsesDefaultSecret() bool {
	return c.SecretKey == defaultSecretKey
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}
