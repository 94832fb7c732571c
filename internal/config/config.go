// Package config loads application configuration from environment variables.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"github.com/ledgerline/invoicedesk/internal/observability/logger"
	"github.com/ledgerline/invoicedesk/pkg/db"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	LogLevel  string
	LogFormat string

	DBType     string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string
	DBPath     string
}

var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(provideDBConfig),
	fx.Provide(provideLoggerConfig),
)

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "invoicedesk"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		LogFormat:   getenv("LOG_FORMAT", "json"),
		DBType:      getenv("DATABASE_TYPE", "postgres"),
		DBHost:      getenv("DATABASE_HOST", "localhost"),
		DBPort:      getenv("DATABASE_PORT", "5432"),
		DBName:      getenv("DATABASE_NAME", "invoicedesk"),
		DBUser:      getenv("DATABASE_USER", "postgres"),
		DBPassword:  getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:   getenv("DATABASE_SSLMODE", "disable"),
		DBPath:      getenv("DATABASE_PATH", ""),
	}
}

func (c Config) Debug() bool {
	return strings.EqualFold(c.Environment, "development")
}

func provideDBConfig(cfg Config) db.Config {
	return db.Config{
		Type:     cfg.DBType,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		Name:     cfg.DBName,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		SSLMode:  cfg.DBSSLMode,
		Path:     cfg.DBPath,
	}
}

func provideLoggerConfig(cfg Config) logger.Config {
	return logger.Config{
		ServiceName:         cfg.AppName,
		Environment:         cfg.Environment,
		Version:             cfg.AppVersion,
		Level:               cfg.LogLevel,
		Format:              cfg.LogFormat,
		IncludeCaller:       true,
		IncludeStackOnError: cfg.Debug(),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
