// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Storage drivers understood by Config.Storage.Driver.
const (
	DriverS3     = "s3"
	DriverMinio  = "minio"
	DriverMemory = "memory"
)

// Config holds all runtime configuration for the service.
type Config struct {
	Port     string `env:"PORT"      env-default:"8080"`
	AppEnv   string `env:"APP_ENV"   env-default:"development"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	// JWTSecret enables the bearer-token namespace guard when non-empty.
	JWTSecret string `env:"JWT_SECRET"`

	MaxUploadSize      int64    `env:"MAX_UPLOAD_SIZE"      env-default:"104857600"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-default:"*" env-separator:","`

	HTTP    HTTPConfig
	Storage StorageConfig
}

// HTTPConfig holds server timeouts. Read and write timeouts bound a whole upload
// or download, so they must leave room for MaxUploadSize on a slow link.
type HTTPConfig struct {
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s"`
	ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT"        env-default:"10m"`
	WriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT"       env-default:"10m"`
	IdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT"        env-default:"60s"`
}

// StorageConfig describes the object storage backend
// (AWS S3 by default, any S3-compatible endpoint through minio, or memory for local runs).
type StorageConfig struct {
	Driver       string `env:"STORAGE_DRIVER"         env-default:"s3"`
	Bucket       string `env:"STORAGE_BUCKET"`
	Region       string `env:"AWS_REGION"             env-default:"us-east-1"`
	Endpoint     string `env:"STORAGE_ENDPOINT"`
	AccessKey    string `env:"STORAGE_ACCESS_KEY"`
	SecretKey    string `env:"STORAGE_SECRET_KEY"`
	UseSSL       bool   `env:"STORAGE_USE_SSL"        env-default:"true"`
	UsePathStyle bool   `env:"STORAGE_USE_PATH_STYLE" env-default:"false"`
	CreateBucket bool   `env:"STORAGE_CREATE_BUCKET"  env-default:"false"`
}

// Load reads configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, reading from environment")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first configuration problem that would prevent startup.
func (c *Config) Validate() error {
	if c.MaxUploadSize <= 0 {
		return errors.New("MAX_UPLOAD_SIZE must be positive")
	}
	if c.HTTP.ReadTimeout < 0 || c.HTTP.WriteTimeout < 0 || c.HTTP.IdleTimeout < 0 || c.HTTP.ReadHeaderTimeout < 0 {
		return errors.New("HTTP timeouts must not be negative")
	}

	switch c.Storage.Driver {
	case DriverMemory:
		return nil
	case DriverS3:
	case DriverMinio:
		if c.Storage.Endpoint == "" {
			return errors.New("STORAGE_ENDPOINT is required for the minio driver")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q (use %q, %q or %q)",
			c.Storage.Driver, DriverS3, DriverMinio, DriverMemory)
	}

	if c.Storage.Bucket == "" {
		return errors.New("STORAGE_BUCKET is required")
	}
	return nil
}

// IsProduction returns true when the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// AuthEnabled reports whether requests must carry a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}
