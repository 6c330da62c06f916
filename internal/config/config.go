package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the process-wide settings read from the environment.
type Config struct {
	Port string
	Env  string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	StripeSecretKey     string
	StripeWebhookSecret string
	StripeCountry       string

	BaseURL          string
	ProvisionLockTTL time.Duration
	ConnectRateLimit int

	JWTSecret string

	SMTPHost   string
	SMTPPort   string
	SMTPUser   string
	SMTPPass   string
	SMTPSecure bool
	AdminEmail string

	OTLPEndpoint string
	ServiceName  string
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// Load reads the full configuration. LoadEnv should run first.
func Load() *Config {
	return &Config{
		Port: GetEnv("PORT", "3000"),
		Env:  GetEnv("ENV", "development"),

		DBHost:     GetEnv("DB_HOST", "localhost"),
		DBPort:     GetEnv("DB_PORT", "5432"),
		DBUser:     GetEnv("DB_USER", "postgres"),
		DBPassword: GetEnv("DB_PASSWORD", "postgres"),
		DBName:     GetEnv("DB_NAME", "rentme"),
		DBSSLMode:  GetEnv("DB_SSLMODE", "disable"),

		RedisHost:     GetEnv("REDIS_HOST", "localhost"),
		RedisPort:     GetEnv("REDIS_PORT", "6379"),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		RedisDB:       GetIntEnv("REDIS_DB", 0),

		StripeSecretKey:     GetEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: GetEnv("STRIPE_WEBHOOK_SECRET", ""),
		StripeCountry:       GetEnv("STRIPE_ACCOUNT_COUNTRY", "US"),

		BaseURL:          BaseURL(),
		ProvisionLockTTL: GetDurationEnv("PROVISION_LOCK_TTL", 30*time.Second),
		ConnectRateLimit: GetIntEnv("CONNECT_RATE_LIMIT", 10),

		JWTSecret: GetEnv("JWT_SECRET", ""),

		SMTPHost:   GetEnv("SMTP_HOST", ""),
		SMTPPort:   GetEnv("SMTP_PORT", "587"),
		SMTPUser:   GetEnv("SMTP_USER", ""),
		SMTPPass:   GetEnv("SMTP_PASS", ""),
		SMTPSecure: GetEnv("SMTP_SECURE", "false") == "true",
		AdminEmail: GetEnv("ADMIN_EMAIL", "support@rentme.co"),

		OTLPEndpoint: GetEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName:  GetEnv("OTEL_SERVICE_NAME", "rentme-payouts"),
	}
}

// BaseURL is the public origin that onboarding links send vendors back to.
// A deployment host (VERCEL_URL) wins over an explicit BASE_URL.
func BaseURL() string {
	if host := GetEnv("VERCEL_URL", ""); host != "" {
		return "https://" + host
	}
	return GetEnv("BASE_URL", "http://localhost:3000")
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		log.Printf("Invalid %s=%q, using default: %s", key, val, defaultVal)
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}
