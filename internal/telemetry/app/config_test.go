package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hpcstack/telemetry/pkg/jwtx"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TELEMETRY_SECRET_KEY", "TELEMETRY_SECRET_ALGO", "TELEMETRY_TOKEN_TTL",
		"DBHOST", "DBNAME", "DBUSER", "DBPW", "DBUSER_API", "DBPW_API",
		"TELEMETRY_MAX_ROW_LIMIT", "TELEMETRY_MIGRATE",
		"ENV", "LOG_LEVEL", "LOG_FORMAT", "PORT", "SHUTDOWN_GRACE_PERIOD",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg := LoadConfig()

	require.Empty(t, cfg.SecretKey)
	require.Equal(t, "HS256", cfg.SecretAlgo)
	require.Equal(t, jwtx.DefaultTTL, cfg.TokenTTL)
	require.Equal(t, 1000, cfg.MaxRowLimit)
	require.False(t, cfg.Migrate)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
}

func TestLoadConfigOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("TELEMETRY_SECRET_KEY", "super-secret")
	t.Setenv("TELEMETRY_SECRET_ALGO", "HS512")
	t.Setenv("TELEMETRY_TOKEN_TTL", "15m")
	t.Setenv("TELEMETRY_MAX_ROW_LIMIT", "250")
	t.Setenv("TELEMETRY_MIGRATE", "true")
	t.Setenv("PORT", "9090")
	t.Setenv("SHUTDOWN_GRACE_PERIOD", "30s")

	cfg := LoadConfig()

	require.Equal(t, "super-secret", cfg.SecretKey)
	require.Equal(t, "HS512", cfg.SecretAlgo)
	require.Equal(t, 15*time.Minute, cfg.TokenTTL)
	require.Equal(t, 250, cfg.MaxRowLimit)
	require.True(t, cfg.Migrate)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, 30*time.Second, cfg.ShutdownGracePeriod)
}

func TestLoadConfigDatabaseRoles(t *testing.T) {
	t.Run("api role falls back to the telemetry role", func(t *testing.T) {
		clearConfigEnv(t)
		t.Setenv("DBHOST", "db.internal")
		t.Setenv("DBNAME", "hpc_metrics")
		t.Setenv("DBUSER", "reader")
		t.Setenv("DBPW", "reader-pw")

		cfg := LoadConfig()

		require.Equal(t, "db.internal", cfg.TelemetryDB.Host)
		require.Equal(t, "hpc_metrics", cfg.TelemetryDB.Name)
		require.Equal(t, "reader", cfg.TelemetryDB.User)
		require.Equal(t, "reader", cfg.APIUserDB.User)
		require.Equal(t, "reader-pw", cfg.APIUserDB.Password)
		require.Equal(t, cfg.TelemetryDB.Host, cfg.APIUserDB.Host)
	})

	t.Run("api role can use dedicated credentials", func(t *testing.T) {
		clearConfigEnv(t)
		t.Setenv("DBHOST", "db.internal")
		t.Setenv("DBNAME", "hpc_metrics")
		t.Setenv("DBUSER", "reader")
		t.Setenv("DBPW", "reader-pw")
		t.Setenv("DBUSER_API", "auth_writer")
		t.Setenv("DBPW_API", "auth-pw")

		cfg := LoadConfig()

		require.Equal(t, "reader", cfg.TelemetryDB.User)
		require.Equal(t, "auth_writer", cfg.APIUserDB.User)
		require.Equal(t, "auth-pw", cfg.APIUserDB.Password)
		require.Equal(t, "db.internal", cfg.APIUserDB.Host)
	})
}

func TestGetEnvDurationOrDefault(t *testing.T) {
	t.Run("parses Go durations", func(t *testing.T) {
		t.Setenv("TEST_DURATION", "90s")
		require.Equal(t, 90*time.Second, getEnvDurationOrDefault("TEST_DURATION", time.Minute))
	})

	t.Run("bare integers are minutes", func(t *testing.T) {
		t.Setenv("TEST_DURATION", "45")
		require.Equal(t, 45*time.Minute, getEnvDurationOrDefault("TEST_DURATION", time.Minute))
	})

	t.Run("garbage falls back to the default", func(t *testing.T) {
		t.Setenv("TEST_DURATION", "soon")
		require.Equal(t, time.Minute, getEnvDurationOrDefault("TEST_DURATION", time.Minute))
	})
}
