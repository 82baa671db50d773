package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"STITCH_APP_NAME":                os.Getenv("STITCH_APP_NAME"),
		"STITCH_APP_ENV":                 os.Getenv("STITCH_APP_ENV"),
		"STITCH_APP_PORT":                os.Getenv("STITCH_APP_PORT"),
		"STITCH_DATABASE_HOST":           os.Getenv("STITCH_DATABASE_HOST"),
		"STITCH_DATABASE_PORT":           os.Getenv("STITCH_DATABASE_PORT"),
		"STITCH_DATABASE_USER":           os.Getenv("STITCH_DATABASE_USER"),
		"STITCH_DATABASE_PASSWORD":       os.Getenv("STITCH_DATABASE_PASSWORD"),
		"STITCH_DATABASE_DBNAME":         os.Getenv("STITCH_DATABASE_DBNAME"),
		"STITCH_DATABASE_SSLMODE":        os.Getenv("STITCH_DATABASE_SSLMODE"),
		"STITCH_DATABASE_MAX_OPEN_CONNS": os.Getenv("STITCH_DATABASE_MAX_OPEN_CONNS"),
		"STITCH_DATABASE_MAX_IDLE_CONNS": os.Getenv("STITCH_DATABASE_MAX_IDLE_CONNS"),
		"STITCH_JWT_SECRET":              os.Getenv("STITCH_JWT_SECRET"),
		"STITCH_DRAFT_STORE":             os.Getenv("STITCH_DRAFT_STORE"),
		"STITCH_STORAGE_PROVIDER":        os.Getenv("STITCH_STORAGE_PROVIDER"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "stitchdesk-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "", cfg.Database.Password)
		assert.Equal(t, "stitchdesk", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, "memory", cfg.Draft.Store)
		assert.Equal(t, "stub", cfg.Storage.Provider)
	})

	t.Run("loads values from environment variables with STITCH prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("STITCH_APP_NAME", "test-app")
		os.Setenv("STITCH_APP_ENV", "testing")
		os.Setenv("STITCH_APP_PORT", "9000")
		os.Setenv("STITCH_DATABASE_HOST", "testdb.local")
		os.Setenv("STITCH_DATABASE_PORT", "5433")
		os.Setenv("STITCH_DATABASE_USER", "testuser")
		os.Setenv("STITCH_DATABASE_PASSWORD", "testpass")
		os.Setenv("STITCH_DATABASE_DBNAME", "testdb")
		os.Setenv("STITCH_DATABASE_SSLMODE", "require")
		os.Setenv("STITCH_DATABASE_MAX_OPEN_CONNS", "50")
		os.Setenv("STITCH_DATABASE_MAX_IDLE_CONNS", "10")
		os.Setenv("STITCH_DRAFT_STORE", "redis")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.Equal(t, "redis", cfg.Draft.Store)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("STITCH_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("STITCH_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("zero MaxOpenConns uses default", func(t *testing.T) {
		clearEnv()
		os.Setenv("STITCH_DATABASE_MAX_OPEN_CONNS", "0")

		cfg, err := Load()
		require.NoError(t, err)
		// 0 is treated as "not set", so default (25) is used
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	})

	t.Run("rejects unknown draft store", func(t *testing.T) {
		clearEnv()
		os.Setenv("STITCH_DRAFT_STORE", "etcd")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "draft.store")
	})

	t.Run("rejects unknown storage provider", func(t *testing.T) {
		clearEnv()
		os.Setenv("STITCH_STORAGE_PROVIDER", "gcs")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.provider")
	})

	t.Run("production requires jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("STITCH_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "stitch",
		Password: "p@ss/word",
		DBName:   "stitchdesk",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "stitchdesk")
	assert.Contains(t, dsn, "sslmode=disable")
	// special characters in the password are escaped
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", cfg.Addr())
}
