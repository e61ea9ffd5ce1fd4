package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Logging   LoggingConfig
	Optimizer OptimizerConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string
}

// OptimizerConfig holds the site-optimization knobs that are operational
// rather than physical: the reference-data fetch timeout (after which the
// engine falls back to the simulator), the grid-distance threshold applied
// when proximity_to_grid is requested, and the shared-cache refresh interval.
type OptimizerConfig struct {
	FetchTimeout             time.Duration
	GridProximityThresholdKm float64
	CacheRefreshInterval     time.Duration
}

// LoadConfig reads configuration from environment variables, applying
// defaults where unset.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:         envOrDefault("SERVER_HOST", "0.0.0.0"),
			Port:         envIntOrDefault("SERVER_PORT", 8000),
			ReadTimeout:  envDurationOrDefault("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: envDurationOrDefault("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  envDurationOrDefault("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Host:            envOrDefault("DB_HOST", "localhost"),
			Port:            envIntOrDefault("DB_PORT", 5432),
			User:            envOrDefault("DB_USER", "greenh2"),
			Password:        envOrDefault("DB_PASSWORD", "greenh2_password"),
			Database:        envOrDefault("DB_NAME", "greenh2_db"),
			SSLMode:         envOrDefault("DB_SSLMODE", "disable"),
			MaxOpenConns:    envIntOrDefault("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envIntOrDefault("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDurationOrDefault("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			ConnMaxIdleTime: envDurationOrDefault("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
		},
		Logging: LoggingConfig{
			Level: envOrDefault("LOG_LEVEL", "info"),
		},
		Optimizer: OptimizerConfig{
			FetchTimeout:             envDurationOrDefault("OPTIMIZER_FETCH_TIMEOUT", 5*time.Second),
			GridProximityThresholdKm: envFloatOrDefault("OPTIMIZER_GRID_THRESHOLD_KM", 20),
			CacheRefreshInterval:     envDurationOrDefault("OPTIMIZER_CACHE_REFRESH_INTERVAL", 10*time.Minute),
		},
	}

	return cfg, nil
}

// Validate checks that the loaded configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Optimizer.FetchTimeout <= 0 {
		return fmt.Errorf("optimizer fetch timeout must be positive")
	}
	if c.Optimizer.GridProximityThresholdKm <= 0 {
		return fmt.Errorf("grid proximity threshold must be positive")
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOrDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloatOrDefault(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envDurationOrDefault(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
