package app

import (
	"os"
	"strconv"
	"time"

	"github.com/hpcstack/telemetry/internal/telemetry/store/postgres"
	"github.com/hpcstack/telemetry/pkg/jwtx"
)

type Config struct {
	SecretKey  string        // Required: symmetric key for signing bearer tokens
	SecretAlgo string        // Optional: token signing algorithm (HS256, HS384, HS512) (default: HS256)
	TokenTTL   time.Duration // Optional: access token lifetime (default: 30m)

	TelemetryDB postgres.Config // Role with read access to host_data/job_data
	APIUserDB   postgres.Config // Role with access to api_user

	MaxRowLimit int  // Server-side cap on caller-supplied row limits (default: 1000, 0 disables)
	Migrate     bool // Apply api_user migrations at startup (default: false)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	telemetryDB := postgres.Config{
		Host:     os.Getenv("DBHOST"),
		Name:     os.Getenv("DBNAME"),
		User:     os.Getenv("DBUSER"),
		Password: os.Getenv("DBPW"),
	}

	// The api_user table lives in the same database under its own role;
	// smaller deployments reuse the telemetry role for both.
	apiUserDB := telemetryDB
	apiUserDB.User = getEnvOrDefault("DBUSER_API", telemetryDB.User)
	apiUserDB.Password = getEnvOrDefault("DBPW_API", telemetryDB.Password)

	return Config{
		SecretKey:  os.Getenv("TELEMETRY_SECRET_KEY"),
		SecretAlgo: getEnvOrDefault("TELEMETRY_SECRET_ALGO", "HS256"),
		TokenTTL:   getEnvDurationOrDefault("TELEMETRY_TOKEN_TTL", jwtx.DefaultTTL),

		TelemetryDB: telemetryDB,
		APIUserDB:   apiUserDB,

		MaxRowLimit: getEnvIntOrDefault("TELEMETRY_MAX_ROW_LIMIT", 1000),
		Migrate:     getEnvOrDefault("TELEMETRY_MIGRATE", "false") == "true",

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
