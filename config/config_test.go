package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"DB_HOST", "DB_NAME", "DB_USER", "DB_PASSWORD", "DB_PORT", "DB_DRIVER",
		"DB_CONNECT_ATTEMPTS", "DB_CONNECT_DELAY", "SERVER_PORT",
		"CORS_ALLOWED_ORIGINS", "TASKS_STRICT_NOT_FOUND", "LOG_DEBUG",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DBHost != "localhost" || cfg.DBName != "tasks_db" || cfg.DBUser != "postgres" ||
		cfg.DBPassword != "password" || cfg.DBPort != "5432" {
		t.Errorf("unexpected db defaults: %+v", cfg)
	}
	if cfg.ConnectAttempts != 5 || cfg.ConnectDelay != 5*time.Second {
		t.Errorf("retry defaults = %d/%v, want 5/5s", cfg.ConnectAttempts, cfg.ConnectDelay)
	}
	if cfg.DBDriver != "postgres" {
		t.Errorf("DBDriver = %q", cfg.DBDriver)
	}
	if cfg.ServerPort != "5000" {
		t.Errorf("ServerPort = %q", cfg.ServerPort)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"*"}) {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.StrictNotFound || cfg.Debug {
		t.Errorf("flags should default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DB_CONNECT_ATTEMPTS", "2")
	t.Setenv("DB_CONNECT_DELAY", "250ms")
	t.Setenv("DB_POOL_MAX_OPEN", "3")
	t.Setenv("DB_POOL_MAX_IDLE", "8")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, http://b.example,")
	t.Setenv("TASKS_STRICT_NOT_FOUND", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBHost != "db.internal" || cfg.DBDriver != "pgx" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.ConnectAttempts != 2 || cfg.ConnectDelay != 250*time.Millisecond {
		t.Errorf("retry = %d/%v", cfg.ConnectAttempts, cfg.ConnectDelay)
	}
	if cfg.PoolMaxIdle != 3 {
		t.Errorf("PoolMaxIdle = %d, want clamp to 3", cfg.PoolMaxIdle)
	}
	want := []string{"http://a.example", "http://b.example"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Errorf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, want)
	}
	if !cfg.StrictNotFound {
		t.Errorf("StrictNotFound should be true")
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"DB_CONNECT_ATTEMPTS", "five"},
		{"DB_CONNECT_ATTEMPTS", "0"},
		{"DB_CONNECT_DELAY", "5"},
		{"DB_ACQUIRE_TIMEOUT", "soon"},
		{"TASKS_STRICT_NOT_FOUND", "maybe"},
		{"DB_DRIVER", "mysql"},
		{"DB_POOL_MAX_OPEN", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing .env should be ignored, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("TASKS_DOTENV_PROBE=ok\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TASKS_DOTENV_PROBE", "")
	os.Unsetenv("TASKS_DOTENV_PROBE")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("TASKS_DOTENV_PROBE"); got != "ok" {
		t.Errorf("TASKS_DOTENV_PROBE = %q, want ok", got)
	}
}
