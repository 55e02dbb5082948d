package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/go-members-server/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewFromLookup_Defaults(t *testing.T) {
	c, err := config.NewFromLookup(config.FromMap(nil))
	require.NoError(t, err)

	require.Equal(t, ":3000", c.GetPort())
	require.Equal(t, "Members", c.GetAppName())
	require.True(t, c.IsDev())
	require.Equal(t, zerolog.InfoLevel, c.GetLogLevel())
	require.Len(t, c.GetSessionSecret(), 32, "dev generates a secret")
	require.Equal(t, time.Hour, c.GetSessionTTL())
	require.Equal(t, 10, c.GetBcryptCost())
	require.Equal(t, config.StoreMemory, c.GetUserStore())
	require.Equal(t, config.StoreMemory, c.GetSessionStore())
	require.Equal(t, "localhost:6379", c.GetRedisAddr())
	require.Equal(t, 0, c.GetRedisDB())
	require.Empty(t, c.GetAdminEmail())
}

func TestNewFromLookup_Values(t *testing.T) {
	c, err := config.NewFromLookup(config.FromMap(map[string]string{
		"PORT":           ":8080",
		"ENV":            "prod",
		"LOG_LEVEL":      "DEBUG",
		"SESSION_SECRET": "a-very-long-session-secret",
		"SESSION_TTL":    "30m",
		"BCRYPT_COST":    "12",
		"USER_STORE":     "Postgres",
		"DATABASE_URL":   "postgres://localhost/members",
		"SESSION_STORE":  "redis",
		"REDIS_DB":       "2",
		"ADMIN_EMAIL":    "root@x.com",
	}))
	require.NoError(t, err)

	require.Equal(t, ":8080", c.GetPort())
	require.False(t, c.IsDev())
	require.Equal(t, zerolog.DebugLevel, c.GetLogLevel())
	require.Equal(t, []byte("a-very-long-session-secret"), c.GetSessionSecret())
	require.Equal(t, 30*time.Minute, c.GetSessionTTL())
	require.Equal(t, 12, c.GetBcryptCost())
	require.Equal(t, config.StorePostgres, c.GetUserStore())
	require.Equal(t, config.StoreRedis, c.GetSessionStore())
	require.Equal(t, 2, c.GetRedisDB())
	require.Equal(t, "root@x.com", c.GetAdminEmail())
	require.Equal(t, "Administrator", c.GetAdminName())
}

func TestNewFromLookup_LegacySecret(t *testing.T) {
	c, err := config.NewFromLookup(config.FromMap(map[string]string{
		"ENV":                 "PROD",
		"NODE_SESSION_SECRET": "legacy-secret-legacy-secret",
	}))
	require.NoError(t, err)
	require.Equal(t, []byte("legacy-secret-legacy-secret"), c.GetSessionSecret())
}

func TestNewFromLookup_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"missing secret in production": {"ENV": "PROD"},
		"short secret":                 {"SESSION_SECRET": "short"},
		"bad ttl":                      {"SESSION_TTL": "soon"},
		"negative ttl":                 {"SESSION_TTL": "-1m"},
		"bad cost":                     {"BCRYPT_COST": "40"},
		"bad log level":                {"LOG_LEVEL": "loud"},
		"unknown user store":           {"USER_STORE": "mongo"},
		"postgres without url":         {"USER_STORE": "postgres"},
		"unknown session store":        {"SESSION_STORE": "memcached"},
		"bad redis db":                 {"REDIS_DB": "one"},
	}
	for name, values := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.NewFromLookup(config.FromMap(values))
			require.Error(t, err)
		})
	}
}

func TestNew_LoadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("APP_NAME=FromDotEnv\n"), 0o600))

	// godotenv never overrides variables that are already set
	t.Setenv("APP_NAME", "")
	require.NoError(t, os.Unsetenv("APP_NAME"))

	c, err := config.New(envFile, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "FromDotEnv", c.GetAppName())
}
