package app

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "repeat.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv(ConfigFileEnv, "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("PORT", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.SQLitePath != "~/.repeat/cards.db" {
		t.Fatalf("unexpected database defaults %+v", cfg.Database)
	}
	if cfg.Addr() != ":8080" || cfg.ShutdownTimeout() != 10*time.Second {
		t.Fatalf("unexpected server defaults %+v", cfg)
	}
	if cfg.Redis.Channel != "repeat:sse" {
		t.Fatalf("unexpected redis channel %q", cfg.Redis.Channel)
	}
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := writeConfigFile(t, `
port: "9090"
database:
  driver: postgres
  postgres_host: db.internal
  postgres_name: cards
cors_allowed_origins:
  - https://repeat.example
metrics_enabled: true
otel:
  enabled: true
  headers: "x-api-key=abc"
  sample_ratio: 0.5
`)
	t.Setenv(ConfigFileEnv, path)
	t.Setenv("PORT", "7070")
	t.Setenv("POSTGRES_NAME", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("METRICS_ENABLED", "")
	t.Setenv("OTEL_ENABLED", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "7070" {
		t.Fatalf("env should win over file, got port %q", cfg.Port)
	}
	dbc := cfg.DBConfig()
	if dbc.Driver != "postgres" || dbc.PostgresHost != "db.internal" || dbc.PostgresName != "cards" || dbc.PostgresPort != "5432" {
		t.Fatalf("unexpected db config %+v", dbc)
	}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, []string{"https://repeat.example"}) || !cfg.MetricsEnabled {
		t.Fatalf("unexpected config %+v", cfg)
	}
	oc := cfg.OtelConfig()
	if !oc.Enabled || oc.SampleRatio != 0.5 || oc.Headers["x-api-key"] != "abc" {
		t.Fatalf("unexpected otel config %+v", oc)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	t.Setenv(ConfigFileEnv, filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for missing file")
	}

	t.Setenv(ConfigFileEnv, writeConfigFile(t, "port: [unclosed"))
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected parse error")
	}

	t.Setenv(ConfigFileEnv, "")
	t.Setenv("DB_DRIVER", "mysql")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected unsupported driver error")
	}
}
