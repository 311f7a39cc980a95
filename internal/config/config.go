package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig
	Ledger LedgerConfig
	Audit  AuditConfig
	Sweep  SweepConfig
	API    APIConfig
	CORS   CORSConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// LedgerConfig holds the location of the ledger data directory
type LedgerConfig struct {
	DataDir string
}

// AuditConfig holds the location of the audit log database
type AuditConfig struct {
	Path string
}

// SweepConfig holds the optional cron schedule for re-running the
// startup sweeps during a long-lived session. Empty disables scheduling.
type SweepConfig struct {
	Schedule string
}

// APIConfig holds the optional API key guarding mutating routes.
// Empty disables the guard.
type APIConfig struct {
	Key string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
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
		Ledger: LedgerConfig{
			DataDir: getEnv("DATA_DIR", "./data"),
		},
		Audit: AuditConfig{
			Path: getEnv("AUDIT_DB_PATH", "./data/audit.db"),
		},
		Sweep: SweepConfig{
			Schedule: getEnv("SWEEP_SCHEDULE", ""),
		},
		API: APIConfig{
			Key: getEnv("INTERNAL_API_KEY", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

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
