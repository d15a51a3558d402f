package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/repeat-backend/internal/data/db"
	"github.com/yungbote/repeat-backend/internal/observability"
	"github.com/yungbote/repeat-backend/internal/platform/envutil"
	"github.com/yungbote/repeat-backend/internal/realtime/bus"
)

const ConfigFileEnv = "REPEAT_CONFIG_FILE"

type DatabaseConfig struct {
	Driver     string `yaml:"driver"`
	SQLitePath string `yaml:"sqlite_path"`

	PostgresHost     string `yaml:"postgres_host"`
	PostgresPort     string `yaml:"postgres_port"`
	PostgresUser     string `yaml:"postgres_user"`
	PostgresPassword string `yaml:"postgres_password"`
	PostgresName     string `yaml:"postgres_name"`
}

type RedisConfig struct {
	Addr    string `yaml:"addr"`
	Channel string `yaml:"channel"`
}

type OtelConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	Environment string  `yaml:"environment"`
	Version     string  `yaml:"version"`
	Endpoint    string  `yaml:"endpoint"`
	Headers     string  `yaml:"headers"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

type Config struct {
	Port               string         `yaml:"port"`
	LogMode            string         `yaml:"log_mode"`
	Database           DatabaseConfig `yaml:"database"`
	Redis              RedisConfig    `yaml:"redis"`
	CORSAllowedOrigins []string       `yaml:"cors_allowed_origins"`
	MetricsEnabled     bool           `yaml:"metrics_enabled"`
	Otel               OtelConfig     `yaml:"otel"`
	// ShutdownTimeoutSeconds bounds graceful HTTP shutdown.
	ShutdownTimeoutSeconds int `yaml:"shutdown_timeout_seconds"`
}

func DefaultConfig() Config {
	return Config{
		Port:    "8080",
		LogMode: "development",
		Database: DatabaseConfig{
			Driver:       db.DriverSQLite,
			SQLitePath:   "~/.repeat/cards.db",
			PostgresHost: "localhost",
			PostgresPort: "5432",
			PostgresUser: "postgres",
			PostgresName: "repeat",
		},
		Redis: RedisConfig{Channel: bus.DefaultChannel},
		Otel: OtelConfig{
			ServiceName: "repeat-backend",
			Environment: "development",
			SampleRatio: 1,
		},
		ShutdownTimeoutSeconds: 10,
	}
}

// LoadConfig layers defaults, the optional YAML file named by
// REPEAT_CONFIG_FILE, then environment variables.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if path := strings.TrimSpace(os.Getenv(ConfigFileEnv)); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = envutil.String("PORT", c.Port)
	c.LogMode = envutil.String("LOG_MODE", c.LogMode)

	c.Database.Driver = strings.ToLower(envutil.String("DB_DRIVER", c.Database.Driver))
	c.Database.SQLitePath = envutil.String("SQLITE_PATH", c.Database.SQLitePath)
	c.Database.PostgresHost = envutil.String("POSTGRES_HOST", c.Database.PostgresHost)
	c.Database.PostgresPort = envutil.String("POSTGRES_PORT", c.Database.PostgresPort)
	c.Database.PostgresUser = envutil.String("POSTGRES_USER", c.Database.PostgresUser)
	c.Database.PostgresPassword = envutil.String("POSTGRES_PASSWORD", c.Database.PostgresPassword)
	c.Database.PostgresName = envutil.String("POSTGRES_NAME", c.Database.PostgresName)

	c.Redis.Addr = envutil.String("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Channel = envutil.String("REDIS_CHANNEL", c.Redis.Channel)

	c.CORSAllowedOrigins = envutil.List("CORS_ALLOWED_ORIGINS", c.CORSAllowedOrigins)
	c.MetricsEnabled = envutil.Bool("METRICS_ENABLED", c.MetricsEnabled)

	c.Otel.Enabled = envutil.Bool("OTEL_ENABLED", c.Otel.Enabled)
	c.Otel.ServiceName = envutil.String("OTEL_SERVICE_NAME", c.Otel.ServiceName)
	c.Otel.Environment = envutil.String("APP_ENV", c.Otel.Environment)
	c.Otel.Version = envutil.String("APP_VERSION", c.Otel.Version)
	c.Otel.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", c.Otel.Endpoint)
	c.Otel.Headers = envutil.String("OTEL_EXPORTER_OTLP_HEADERS", c.Otel.Headers)
	c.Otel.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", c.Otel.Insecure)
	c.Otel.SampleRatio = envutil.Float("OTEL_SAMPLER_RATIO", c.Otel.SampleRatio)

	c.ShutdownTimeoutSeconds = envutil.Int("SHUTDOWN_TIMEOUT_SECONDS", c.ShutdownTimeoutSeconds)
}

func (c Config) Validate() error {
	switch c.Database.Driver {
	case db.DriverSQLite, db.DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("port is required")
	}
	return nil
}

func (c Config) Addr() string { return ":" + strings.TrimPrefix(c.Port, ":") }

func (c Config) ShutdownTimeout() time.Duration {
	if c.ShutdownTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

func (c Config) DBConfig() db.Config {
	return db.Config{
		Driver:           c.Database.Driver,
		SQLitePath:       c.Database.SQLitePath,
		PostgresHost:     c.Database.PostgresHost,
		PostgresPort:     c.Database.PostgresPort,
		PostgresUser:     c.Database.PostgresUser,
		PostgresPassword: c.Database.PostgresPassword,
		PostgresName:     c.Database.PostgresName,
	}
}

func (c Config) OtelConfig() observability.OtelConfig {
	return observability.OtelConfig{
		Enabled:     c.Otel.Enabled,
		ServiceName: c.Otel.ServiceName,
		Environment: c.Otel.Environment,
		Version:     c.Otel.Version,
		Endpoint:    c.Otel.Endpoint,
		Headers:     observability.ParseHeaders(c.Otel.Headers),
		Insecure:    c.Otel.Insecure,
		SampleRatio: c.Otel.SampleRatio,
	}
}
