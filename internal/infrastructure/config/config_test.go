package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := defaultConfig()

	assert.Equal(t, "warehouse-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "warehouse", cfg.Database.DBName)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "stdout", cfg.Log.Output)
	assert.Equal(t, 20, cfg.Stock.DefaultPageSize)
}

func TestApplyDefaults_ProductionLogFormat(t *testing.T) {
	cfg := &Config{}
	cfg.App.Env = "production"
	applyDefaults(cfg)

	assert.Equal(t, "json", cfg.Log.Format)
}

func TestConfig_Validate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		require.NoError(t, defaultConfig().validate())
	})

	t.Run("rejects idle pool larger than open pool", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Database.MaxIdleConns = 50

		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MaxIdleConns")
	})

	t.Run("rejects unknown log level", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Log.Level = "verbose"

		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Level")
	})

	t.Run("rejects out-of-range port", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Database.Port = 70000

		require.Error(t, cfg.validate())
	})

	t.Run("production requires a database password", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.App.Env = "production"

		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "password")

		cfg.Database.Password = "secret"
		require.NoError(t, cfg.validate())
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := defaultConfig()
	cfg.Database.Password = "p@ss word"

	dsn := cfg.Database.DSN()

	assert.Contains(t, dsn, "host=localhost")
	assert.Contains(t, dsn, "port=5432")
	assert.Contains(t, dsn, "dbname=warehouse")
	assert.Contains(t, dsn, "sslmode=disable")
	// special characters are escaped, never passed raw
	assert.NotContains(t, dsn, "p@ss word")
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := defaultConfig()
	assert.False(t, cfg.IsProduction())

	cfg.App.Env = "production"
	assert.True(t, cfg.IsProduction())
}
