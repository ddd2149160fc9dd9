package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer      string // Optional: issuer claim for tokens (default: filedrop)
	TokenSecret string // Optional: HS256 signing secret; ephemeral when empty

	DatabaseFile string        // Optional: path to SQLite catalog file (default: ./filedrop.db)
	ContentRoot  string        // Optional: directory for uploaded blobs (default: ./data)
	PepperFile   string        // Optional: path to password hashing pepper file (default: ./pepper)
	UsersFile    string        // Optional: path to YAML seed users file; dev users when empty
	AccessTTL    time.Duration // Optional: access token lifetime (default: 30m)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		Issuer:       getEnvOrDefault("FILEDROP_ISSUER", "filedrop"),
		TokenSecret:  os.Getenv("FILEDROP_TOKEN_SECRET"),
		DatabaseFile: getEnvOrDefault("FILEDROP_DATABASE_FILE", "filedrop.db"),
		ContentRoot:  getEnvOrDefault("FILEDROP_CONTENT_ROOT", "data"),
		PepperFile:   getEnvOrDefault("FILEDROP_PEPPER_FILE", "pepper"),
		UsersFile:    os.Getenv("FILEDROP_USERS_FILE"),
		AccessTTL:    getEnvDurationOrDefault("FILEDROP_ACCESS_TTL", 30*time.Minute),

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

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are treated as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
