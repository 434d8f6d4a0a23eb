package config

import (
	"fmt"
	"os"
	"strings"
)

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	Path     string // путь к файлу для sqlite
	Driver   string // "sqlite" или "postgres"
}

type Config struct {
	Port           string
	SecretKey      string
	Debug          bool
	Environment    string
	LogLevel       string
	MetricsEnabled bool
	TelemetryKey   string
	DB             DatabaseConfig
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8000"),
		SecretKey:      getEnv("SECRET_KEY", "dev-secret-key-change-in-production"),
		Debug:          getBoolEnv("DEBUG", false),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		MetricsEnabled: getBoolEnv("METRICS_ENABLED", true),
		TelemetryKey:   getEnv("TELEMETRY_KEY", ""),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "tasks_user"),
			Password: getEnv("DB_PASSWORD", "tasks_pass"),
			DBName:   getEnv("DB_NAME", "tasks_db"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Path:     getEnv("SQLITE_PATH", "tasks.db"),
			Driver:   getEnv("DB_DRIVER", "sqlite"),
		},
	}
	switch cfg.DB.Driver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.DB.Driver)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	switch strings.ToLower(value) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

func (db *DatabaseConfig) DSN() string {
	switch db.Driver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			db.Host, db.Port, db.User, db.Password, db.DBName, db.SSLMode)
	case "sqlite":
		// busy_timeout, чтобы параллельные запросы не ловили SQLITE_BUSY
		return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", db.Path)
	default:
		return ""
	}
}
