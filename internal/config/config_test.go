package config

import (
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "SECRET_KEY", "DEBUG", "ENVIRONMENT", "LOG_LEVEL",
		"METRICS_ENABLED", "TELEMETRY_KEY", "DB_DRIVER", "SQLITE_PATH",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.DB.Driver != "sqlite" {
		t.Errorf("Driver = %q, want sqlite by default", cfg.DB.Driver)
	}
	if cfg.Environment != "development" {
		t.Errorf("Environment = %q", cfg.Environment)
	}
	if cfg.Debug {
		t.Error("Debug should default to false")
	}
	if !cfg.MetricsEnabled {
		t.Error("MetricsEnabled should default to true")
	}
	if cfg.TelemetryKey != "" {
		t.Errorf("TelemetryKey = %q", cfg.TelemetryKey)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db.example.com")
	t.Setenv("DEBUG", "true")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DB.Driver != "postgres" || cfg.DB.Host != "db.example.com" {
		t.Errorf("DB config not picked up: %+v", cfg.DB)
	}
	if !cfg.Debug || cfg.MetricsEnabled {
		t.Error("bool envs not picked up")
	}
	if cfg.Environment != "production" {
		t.Errorf("Environment = %q", cfg.Environment)
	}
}

func TestLoad_UnsupportedDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "oracle")

	if _, err := Load(); err == nil {
		t.Fatal("unsupported driver should be rejected")
	}
}

func TestDSN_Postgres(t *testing.T) {
	db := DatabaseConfig{
		Driver: "postgres", Host: "localhost", Port: "5432",
		User: "u", Password: "p", DBName: "tasks", SSLMode: "disable",
	}
	dsn := db.DSN()
	for _, part := range []string{"host=localhost", "dbname=tasks", "sslmode=disable"} {
		if !strings.Contains(dsn, part) {
			t.Errorf("DSN %q missing %q", dsn, part)
		}
	}
}

func TestDSN_SQLite(t *testing.T) {
	db := DatabaseConfig{Driver: "sqlite", Path: "/tmp/tasks.db"}
	dsn := db.DSN()
	if !strings.Contains(dsn, "file:/tmp/tasks.db") {
		t.Errorf("DSN = %q", dsn)
	}
	if !strings.Contains(dsn, "busy_timeout") {
		t.Errorf("DSN should carry busy_timeout pragma: %q", dsn)
	}
}
