package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(config.New(), "")
	require.NoError(t, err)
	assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ":8081", cfg.HTTP.Addr)
	assert.Equal(t, 24*time.Hour, cfg.HTTP.SessionTTL)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("STOREFRONT_DB_DRIVER", "SQLite")
	t.Setenv("STOREFRONT_DB_NAME", "shop.db")
	t.Setenv("STOREFRONT_LOG_LEVEL", "debug")

	cfg, err := config.Load(config.New(), "")
	require.NoError(t, err)
	assert.Equal(t, config.DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "shop.db", cfg.DB.Name)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NoError(t, cfg.DB.Validate())
	assert.Equal(t, "shop.db", cfg.DB.DSN())
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db:\n  host: db.internal\n  port: \"6543\"\nhttp:\n  addr: \":9000\"\n  session_ttl: 90m\n"), 0o600))

	cfg, err := config.Load(config.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "6543", cfg.DB.Port)
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, 90*time.Minute, cfg.HTTP.SessionTTL)
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := config.Load(config.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestPostgresValidateAndDSN(t *testing.T) {
	db := config.DBConfig{Driver: config.DriverPostgres, Host: "localhost", Port: "5432", SSLMode: "disable"}
	err := db.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dbname, user")

	db.Name, db.User = "shop", "o'neil"
	require.NoError(t, db.Validate())
	assert.True(t, db.NeedsPassword())

	db.Password = "s3cret"
	assert.False(t, db.NeedsPassword())
	assert.Equal(t, `host='localhost' port='5432' dbname='shop' user='o\'neil' password='s3cret' sslmode='disable'`, db.DSN())
}

func TestValidateUnknownDriver(t *testing.T) {
	assert.Error(t, config.DBConfig{Driver: "oracle", Name: "x"}.Validate())
}
