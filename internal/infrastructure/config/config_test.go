package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		cfg, err := LoadFrom("")
		require.NoError(t, err)

		assert.Equal(t, "retail-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, DriverPostgres, cfg.Database.Driver)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "retail", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
		assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
		assert.False(t, cfg.Redis.Enabled)
		assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
		assert.Equal(t, 10, cfg.Report.LowStockThreshold)
		assert.Equal(t, "0 2 * * *", cfg.Report.SnapshotCron)
		assert.Equal(t, 30*time.Second, cfg.HTTP.ShutdownTimeout)
		assert.False(t, cfg.Telemetry.Enabled)
		assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
		assert.Equal(t, "retail-backend", cfg.Telemetry.ServiceName)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("RETAIL_APP_PORT", "9090")
		t.Setenv("RETAIL_DATABASE_DRIVER", "sqlite")
		t.Setenv("RETAIL_DATABASE_SQLITE_PATH", ":memory:")
		t.Setenv("RETAIL_REDIS_ENABLED", "true")
		t.Setenv("RETAIL_REPORT_LOW_STOCK_THRESHOLD", "0")
		t.Setenv("RETAIL_JWT_ACCESS_TOKEN_EXPIRATION", "1h")

		cfg, err := LoadFrom("")
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.App.Port)
		assert.Equal(t, DriverSQLite, cfg.Database.Driver)
		assert.Equal(t, ":memory:", cfg.Database.SQLitePath)
		assert.True(t, cfg.Redis.Enabled)
		assert.Equal(t, 0, cfg.Report.LowStockThreshold)
		assert.Equal(t, time.Hour, cfg.JWT.AccessTokenExpiration)
	})

	t.Run("reads dotenv file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("RETAIL_APP_NAME=from-dotenv\n"), 0o600))
		t.Cleanup(func() { os.Unsetenv("RETAIL_APP_NAME") })

		cfg, err := LoadFrom(path)
		require.NoError(t, err)
		assert.Equal(t, "from-dotenv", cfg.App.Name)
	})

	t.Run("missing dotenv file is ignored", func(t *testing.T) {
		_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.env"))
		assert.NoError(t, err)
	})

	t.Run("rejects unknown driver", func(t *testing.T) {
		t.Setenv("RETAIL_DATABASE_DRIVER", "mysql")

		_, err := LoadFrom("")
		assert.ErrorContains(t, err, "database.driver")
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.Report.LowStockThreshold = 10
		return cfg
	}

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, valid().validate())
	})

	t.Run("idle conns cannot exceed open conns", func(t *testing.T) {
		cfg := valid()
		cfg.Database.MaxIdleConns = 50
		assert.Error(t, cfg.validate())
	})

	t.Run("negative threshold", func(t *testing.T) {
		cfg := valid()
		cfg.Report.LowStockThreshold = -1
		assert.ErrorContains(t, cfg.validate(), "low_stock_threshold")
	})

	t.Run("production requires a long secret", func(t *testing.T) {
		cfg := valid()
		cfg.App.Env = "production"
		cfg.Database.SSLMode = "require"
		assert.ErrorContains(t, cfg.validate(), "jwt.secret")

		cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
		assert.NoError(t, cfg.validate())
		assert.True(t, cfg.IsProduction())
	})

	t.Run("sampling ratio out of range", func(t *testing.T) {
		cfg := valid()
		cfg.Telemetry.SamplingRatio = 1.5
		assert.ErrorContains(t, cfg.validate(), "sampling_ratio")
	})

	t.Run("production refuses full sql in traces", func(t *testing.T) {
		cfg := valid()
		cfg.App.Env = "production"
		cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
		cfg.Database.SSLMode = "require"
		cfg.Telemetry.DBLogFullSQL = true
		assert.ErrorContains(t, cfg.validate(), "db_log_full_sql")
	})

	t.Run("production rejects sqlite", func(t *testing.T) {
		cfg := valid()
		cfg.App.Env = "production"
		cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
		cfg.Database.SSLMode = "require"
		cfg.Database.Driver = DriverSQLite
		assert.Error(t, cfg.validate())
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5433, User: "app", Password: "p@ss word", DBName: "retail", SSLMode: "disable"}

	assert.Equal(t, "postgres://app:p%40ss%20word@db:5433/retail?sslmode=disable", d.DSN())
}
