package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Ledger        LedgerConfig
	Rates         RatesConfig
	Archive       ArchiveConfig
	Database      DatabaseConfig
	Observability ObservabilityConfig
}

// LedgerConfig controls the ledger's reporting currency.
type LedgerConfig struct {
	BaseCurrency string
}

// RatesConfig configures the exchange-rate provider and its local cache.
type RatesConfig struct {
	ProviderURL string
	CachePath   string
}

// ArchiveConfig controls where original statement files are kept.
type ArchiveConfig struct {
	Path string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

type ObservabilityConfig struct {
	MetricsEnabled bool
	MetricsPort    int
}

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Ledger: LedgerConfig{
			BaseCurrency: getEnv("LEDGER_BASE_CURRENCY", "INR"),
		},
		Rates: RatesConfig{
			ProviderURL: getEnv("RATES_PROVIDER_URL", "https://open.er-api.com/v6/latest"),
			CachePath:   getEnv("RATES_CACHE_PATH", "./data/rates.json"),
		},
		Archive: ArchiveConfig{
			Path: getEnv("ARCHIVE_PATH", "./data/statements"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvAsInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", "postgres"),
			Database: getEnv("POSTGRES_DB", "paisebook-dev"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
			MetricsPort:    getEnvAsInt("METRICS_PORT", 9090),
		},
	}

	return cfg, nil
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
