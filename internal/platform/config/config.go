package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr                    string
	DatabaseURL             string
	FrontendDir             string
	UploadDir               string
	MigrationsDir           string
	Environment             string
	Timezone                string
	LogLevel                string
	EmailFrom               string
	EmailEnabled            bool
	SMTPHost                string
	SMTPPort                int
	SMTPUser                string
	SMTPPassword            string
	SMTPUseTLS              bool
	RunMigrations           bool
	RunSeed                 bool
	MaxBodyBytes            int64
	MaxUploadBytes          int64
	RateLimitPerMinute      int
	AutoCheckoutInterval    time.Duration
	AutoCheckoutNotifyEmail string
	RedisURL                string
	LockTTL                 time.Duration
	MetricsEnabled          bool
}

func Load() Config {
	return Config{
		Addr:                    getEnv("APP_ADDR", ":8080"),
		DatabaseURL:             getEnv("DATABASE_URL", ""),
		FrontendDir:             getEnv("FRONTEND_DIR", "frontend/dist"),
		UploadDir:               getEnv("UPLOAD_DIR", "uploads"),
		MigrationsDir:           getEnv("MIGRATIONS_DIR", "migrations"),
		Environment:             getEnv("APP_ENV", "development"),
		Timezone:                getEnv("APP_TIMEZONE", "Local"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		EmailFrom:               getEnv("EMAIL_FROM", "no-reply@example.com"),
		EmailEnabled:            getEnvBool("EMAIL_ENABLED", false),
		SMTPHost:                getEnv("SMTP_HOST", ""),
		SMTPPort:                getEnvInt("SMTP_PORT", 587),
		SMTPUser:                getEnv("SMTP_USER", ""),
		SMTPPassword:            getEnv("SMTP_PASSWORD", ""),
		SMTPUseTLS:              getEnvBool("SMTP_USE_TLS", true),
		RunMigrations:           getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:                 getEnvBool("RUN_SEED", true),
		MaxBodyBytes:            int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		MaxUploadBytes:          int64(getEnvInt("MAX_UPLOAD_BYTES", 5*1024*1024)),
		RateLimitPerMinute:      getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		AutoCheckoutInterval:    getEnvDuration("AUTO_CHECKOUT_INTERVAL", time.Minute),
		AutoCheckoutNotifyEmail: getEnv("AUTO_CHECKOUT_NOTIFY_EMAIL", ""),
		RedisURL:                getEnv("REDIS_URL", ""),
		LockTTL:                 getEnvDuration("LOCK_TTL", 10*time.Second),
		MetricsEnabled:          getEnvBool("METRICS_ENABLED", true),
	}
}

// Location resolves the configured timezone. "today" and the auto-checkout
// cutoff are both computed in this location.
func (c Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Timezone)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("APP_TIMEZONE is not a valid IANA location: %w", err)
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.MaxUploadBytes < c.MaxBodyBytes {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be at least MAX_BODY_BYTES")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.AutoCheckoutInterval < 0 {
		return fmt.Errorf("AUTO_CHECKOUT_INTERVAL must not be negative")
	}
	if c.RedisURL != "" && c.LockTTL <= 0 {
		return fmt.Errorf("LOCK_TTL must be positive when REDIS_URL is set")
	}
	if c.EmailEnabled && c.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST must be set when EMAIL_ENABLED is true")
	}
	return nil
}
