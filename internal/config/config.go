package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Fetch    FetchConfig
	Cache    CacheConfig
	Log      LogConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// FetchConfig holds upstream fetch configuration
type FetchConfig struct {
	// StartDate is the common history cutoff (YYYY-MM-DD); price points
	// dated before it are never stored.
	StartDate string
	// BrowserTimeout bounds a single browser automation session. No other
	// layer imposes a fetch deadline.
	BrowserTimeout time.Duration
}

// CacheConfig holds snapshot cache configuration
type CacheConfig struct {
	Dir string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level    string
	Encoding string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8000"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/commodity_data.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: allowedOrigins(getEnv("FRONTEND_URL", "http://localhost:3000")),
		},
		Fetch: FetchConfig{
			StartDate:      getEnv("FETCH_START_DATE", "2023-01-01"),
			BrowserTimeout: time.Duration(getEnvInt("BROWSER_TIMEOUT", 90)) * time.Second,
		},
		Cache: CacheConfig{
			Dir: getEnv("DATA_DIR", "./data"),
		},
		Log: LogConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Encoding: getEnv("LOG_ENCODING", "json"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// allowedOrigins builds the CORS origin list, keeping the configured
// frontend URL first and dropping duplicates.
func allowedOrigins(frontendURL string) []string {
	origins := []string{frontendURL}
	for _, o := range []string{"http://localhost:3000", "https://cv.ndtduy.live"} {
		if o != frontendURL {
			origins = append(origins, o)
		}
	}
	return origins
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
