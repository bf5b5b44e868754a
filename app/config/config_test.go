package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")

	cfg, err := Load("product-barcode")

	require.NoError(t, err)
	assert.Equal(t, "product-barcode", cfg.ServiceName)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 50, cfg.DB.MaxOpenConns)
	assert.Equal(t, time.Hour, cfg.DB.ConnMaxLifetime)
	assert.True(t, cfg.Barcode.Validation)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("DB_MAX_IDLE_CONNS", "5")
	t.Setenv("DB_CONN_MAX_LIFETIME", "90s")
	t.Setenv("DB_LOG_LEVEL", "silent")
	t.Setenv("LOG_FILE", "/var/log/product-barcode.log")
	t.Setenv("BARCODE_VALIDATION", "false")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load("product-barcode")

	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 20, cfg.DB.MaxOpenConns)
	assert.Equal(t, 5, cfg.DB.MaxIdleConns)
	assert.Equal(t, 90*time.Second, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, logger.Silent, cfg.DB.LogLevel)
	assert.Equal(t, "/var/log/product-barcode.log", cfg.Log.File)
	assert.False(t, cfg.Barcode.Validation)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("DB_MAX_OPEN_CONNS", "many")
	t.Setenv("BARCODE_VALIDATION", "sometimes")

	cfg, err := Load("product-barcode")

	require.NoError(t, err)
	assert.Equal(t, 50, cfg.DB.MaxOpenConns)
	assert.True(t, cfg.Barcode.Validation)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty port", func(c *Config) { c.Server.Port = "" }, true},
		{"port out of range", func(c *Config) { c.Server.Port = "70000" }, true},
		{"idle above open", func(c *Config) { c.DB.MaxIdleConns = 100 }, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{
				Server: ServerConfig{Port: "8080"},
				DB:     DBConfig{MaxIdleConns: 10, MaxOpenConns: 50},
			}
			tc.mutate(cfg)

			err := cfg.Validate()

			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetDSN(t *testing.T) {
	c := DBConfig{Host: "h", Port: "5432", User: "u", Password: "p", DBName: "d", SSLMode: "disable"}

	assert.Equal(t, "host=h port=5432 user=u password=p dbname=d sslmode=disable", c.GetDSN())
}
