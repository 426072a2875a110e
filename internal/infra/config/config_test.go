package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9090"
  readTimeout: 3s
auth:
  secret: from-file
storage:
  driver: sqlite
  sqlite:
    path: /tmp/desi.db
subscription:
  periodDays: 14
`), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("HTTP_ADDRESS", "")
	t.Setenv("PORT", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("AUTH_SECRET", "from-env")
	t.Setenv("FRONTEND_ORIGIN", "http://a.test, http://b.test")
	t.Setenv("SUBSCRIPTION_SWEEP_AT", "04:30")
	t.Setenv("SUBSCRIPTION_SWEEP_INTERVAL", "15m")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, 3*time.Second, cfg.HTTP.ReadTimeout)
	require.Equal(t, "from-env", cfg.Auth.Secret)
	require.Equal(t, DriverSQLite, cfg.Storage.Driver)
	require.Equal(t, "/tmp/desi.db", cfg.Storage.SQLite.Path)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.HTTP.CORS.AllowedOrigins)
	require.Equal(t, 14, cfg.Subscription.PeriodDays)
	require.Equal(t, "04:30", cfg.Subscription.SweepAt)
	require.Equal(t, 15*time.Minute, cfg.Subscription.SweepInterval)
	require.Equal(t, "desidiet", cfg.Storage.Valkey.Prefix)
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, "auth:\n  secret: s\n"))
	t.Setenv("HTTP_ADDRESS", "")
	t.Setenv("PORT", "7000")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":7000", cfg.HTTP.Address)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := defaultConfig()
		cfg.Auth.Secret = "secret"
		return cfg
	}
	require.NoError(t, valid().Validate())

	cases := map[string]func(*Config){
		"missing secret":     func(c *Config) { c.Auth.Secret = " " },
		"unknown driver":     func(c *Config) { c.Storage.Driver = "mongo" },
		"postgres no dsn":    func(c *Config) { c.Storage.Driver = DriverPostgres },
		"valkey no addr":     func(c *Config) { c.Storage.Driver = DriverValkey },
		"bucket no endpoint": func(c *Config) { c.Catalog.R2.Bucket = "foods" },
		"zero period":        func(c *Config) { c.Subscription.PeriodDays = 0 },
		"bad timezone":       func(c *Config) { c.Subscription.SweepTimezone = "Mars/Base" },
		"negative interval":  func(c *Config) { c.Subscription.SweepInterval = -time.Second },
		"bad rate limit":     func(c *Config) { c.HTTP.RateLimit.Burst = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}
