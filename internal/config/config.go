package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Import    ImportConfig
	Scheduler SchedulerConfig
	Security  SecurityConfig
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

// ImportConfig holds settings for the CVM valuation import job.
type ImportConfig struct {
	BaseURL             string // archive location, {base}/inf_diario_fi_YYYYMM.zip
	MonthsBack          int    // how many trailing months each run fetches
	FetchTimeoutSeconds int    // client-level bound on each archive download
}

// SchedulerConfig holds the cron specs for the two batch jobs.
type SchedulerConfig struct {
	Enabled         bool
	ImportSpec      string
	PerformanceSpec string
}

// SecurityConfig holds secret-handling configuration. FernetKey encrypts
// settings at rest; InternalAPIKey guards the job-trigger endpoints.
type SecurityConfig struct {
	FernetKey      string
	InternalAPIKey string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/carteira_manager.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Import: ImportConfig{
			BaseURL:             getEnv("CVM_BASE_URL", ""),
			MonthsBack:          getEnvInt("CVM_MONTHS_BACK", 2),
			FetchTimeoutSeconds: getEnvInt("CVM_FETCH_TIMEOUT_SECONDS", 60),
		},
		Scheduler: SchedulerConfig{
			Enabled:         getEnvBool("SCHEDULER_ENABLED", true),
			ImportSpec:      getEnv("IMPORT_CRON", "0 6 * * *"),
			PerformanceSpec: getEnv("PERFORMANCE_CRON", "30 6 * * *"),
		},
		Security: SecurityConfig{
			FernetKey:      getEnv("FERNET_KEY", ""),
			InternalAPIKey: getEnv("INTERNAL_API_KEY", ""),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	if config.Import.MonthsBack < 0 {
		return nil, fmt.Errorf("CVM_MONTHS_BACK cannot be negative")
	}

	return config, nil
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
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvBool gets a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
