package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ALLOWED_ORIGIN", "https://inventory.example")
	t.Setenv("DATABASE_URI", "mongodb://localhost:27017")
	t.Setenv("DATABASE_NAME", "inventory")
	t.Setenv("STORAGE_DRIVER", "MongoDB")
	t.Setenv("GTIN_COUNTRIES", "de, world")
	t.Setenv("GTIN_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://inventory.example", cfg.CORS.AllowedOrigin)
	assert.Equal(t, DriverMongoDB, cfg.Storage.Driver)
	assert.Equal(t, "inventory", cfg.Database.Name)
	assert.True(t, cfg.Database.Transactions)
	assert.Equal(t, []string{"de", "world"}, cfg.GTIN.Countries)
	assert.Equal(t, 5*time.Second, cfg.GTIN.Timeout)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.True(t, cfg.App.IsDevelopment())
}

func TestValidate_MissingOrigin(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ALLOWED_ORIGIN", "")
	t.Setenv("CORS_ALLOWED_ORIGIN", "")
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err, "tools run without an origin")
	assert.ErrorContains(t, cfg.Validate(), "ALLOWED_ORIGIN")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Storage: StorageConfig{Driver: DriverPostgres},
			Database: DatabaseConfig{URI: "postgres://localhost/inventory"},
			CORS:    CORSConfig{AllowedOrigin: "https://a.example"},
			GTIN:    GTINConfig{Countries: []string{"world"}},
		}
	}

	assert.NoError(t, base().Validate())

	cfg := base()
	cfg.Database.URI = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Storage.Driver = "mongodb"
	cfg.Database.Name = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Storage.Driver = "sqlite"
	assert.ErrorContains(t, cfg.Validate(), "sqlite")

	cfg = base()
	cfg.CORS.AllowedOrigin = ""
	assert.Error(t, cfg.Validate())
	assert.NoError(t, cfg.ValidateStorage())

	cfg = base()
	cfg.Storage.Driver = DriverMemory
	cfg.Database.URI = ""
	assert.NoError(t, cfg.Validate())
}
