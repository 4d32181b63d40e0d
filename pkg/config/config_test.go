package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8086", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "crm_db", cfg.DB.DBName)
	assert.Equal(t, 10, cfg.DB.MaxIdleConns)
	assert.Equal(t, 100, cfg.DB.MaxOpenConns)
	assert.Equal(t, time.Hour, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "crm", cfg.Metrics.Prefix)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_NAME", "crm_test")
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("DB_CONN_MAX_LIFETIME", "30m")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "crm_test", cfg.DB.DBName)
	assert.Equal(t, 25, cfg.DB.MaxOpenConns)
	assert.Equal(t, 30*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("DB_MAX_IDLE_CONNS", "lots")
	t.Setenv("DB_CONN_MAX_LIFETIME", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.DB.MaxIdleConns)
	assert.Equal(t, time.Hour, cfg.DB.ConnMaxLifetime)
}

func TestGetDSN(t *testing.T) {
	db := DBConfig{
		Host:     "db.internal",
		Port:     "5433",
		User:     "crm",
		Password: "secret",
		DBName:   "crm_db",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=crm password=secret dbname=crm_db sslmode=require",
		db.GetDSN())
}
