// Package config loads the service configuration from defaults, an optional
// config file, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverMongoDB  = "mongodb"
	DriverMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Log      LogConfig
	Storage  StorageConfig
	Database DatabaseConfig
	CORS     CORSConfig
	GTIN     GTINConfig
	HTTP     HTTPConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Env  string
	Port string
}

// IsDevelopment reports whether the app runs in development mode.
func (a AppConfig) IsDevelopment() bool {
	return a.Env == "development"
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string // debug, info, warn, error
}

// StorageConfig selects the storage backend
type StorageConfig struct {
	Driver string // postgres, mongodb, memory
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URI          string
	Name         string // MongoDB database name
	MaxConns     int32
	AutoMigrate  bool
	Transactions bool // MongoDB multi-document transactions (needs a replica set)
}

// CORSConfig holds the single origin browsers may call the API from
type CORSConfig struct {
	AllowedOrigin string
}

// GTINConfig configures the external product database client
type GTINConfig struct {
	BaseURL   string // format string receiving the country, e.g. https://%s.openfoodfacts.org
	Countries []string
	UserAgent string
	Timeout   time.Duration
}

// HTTPConfig holds HTTP server settings
type HTTPConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration. A .env file in the working directory is loaded
// into the environment first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/inventory")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("cors.allowed_origin", "ALLOWED_ORIGIN", "CORS_ALLOWED_ORIGIN")

	cfg := &Config{
		App: AppConfig{
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(v.GetString("storage.driver")),
		},
		Database: DatabaseConfig{
			URI:          v.GetString("database.uri"),
			Name:         v.GetString("database.name"),
			MaxConns:     v.GetInt32("database.max_conns"),
			AutoMigrate:  v.GetBool("database.auto_migrate"),
			Transactions: v.GetBool("database.transactions"),
		},
		CORS: CORSConfig{
			AllowedOrigin: v.GetString("cors.allowed_origin"),
		},
		GTIN: GTINConfig{
			BaseURL:   v.GetString("gtin.base_url"),
			Countries: splitList(v.GetString("gtin.countries")),
			UserAgent: v.GetString("gtin.user_agent"),
			Timeout:   v.GetDuration("gtin.timeout"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:     v.GetDuration("http.read_timeout"),
			WriteTimeout:    v.GetDuration("http.write_timeout"),
			IdleTimeout:     v.GetDuration("http.idle_timeout"),
			ShutdownTimeout: v.GetDuration("http.shutdown_timeout"),
		},
	}

	if err := cfg.ValidateStorage(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("storage.driver", DriverPostgres)
	v.SetDefault("database.uri", "")
	v.SetDefault("database.name", "")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.auto_migrate", false)
	v.SetDefault("database.transactions", true)
	v.SetDefault("cors.allowed_origin", "")
	v.SetDefault("gtin.base_url", "https://%s.openfoodfacts.org")
	v.SetDefault("gtin.countries", "ch,world")
	v.SetDefault("gtin.user_agent", "Inventory API - https://github.com/rhorber/inventory")
	v.SetDefault("gtin.timeout", 30*time.Second)
	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 45*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.shutdown_timeout", 30*time.Second)
}

// Validate checks the settings the API server needs.
func (c *Config) Validate() error {
	if c.CORS.AllowedOrigin == "" {
		return errors.New("ALLOWED_ORIGIN is required")
	}
	return c.ValidateStorage()
}

// ValidateStorage checks the settings every command needs. Load runs it.
func (c *Config) ValidateStorage() error {
	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Database.URI == "" {
			return errors.New("DATABASE_URI is required for the postgres driver")
		}
	case DriverMongoDB:
		if c.Database.URI == "" || c.Database.Name == "" {
			return errors.New("DATABASE_URI and DATABASE_NAME are required for the mongodb driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if len(c.GTIN.Countries) == 0 {
		return errors.New("gtin.countries must not be empty")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
