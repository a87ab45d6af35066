package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 8085

[database]
host = "db"
port = 5433
user = "smc"
dbname = "availability"

[logs]
level = "debug"

[availability]
max_calendar_days = 31
verify_calendar = true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 8085, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout, "defaults are kept for missing keys")
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 31, cfg.Availability.MaxCalendarDays)
	assert.Equal(t, 60, cfg.Availability.MaxBoardingDays)
	assert.True(t, cfg.Availability.VerifyCalendar)
	assert.Equal(t, "host=db port=5433 user=smc password= dbname=availability sslmode=disable", cfg.Database.DSN())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "warn", cfg.Logs.Level)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})

	t.Run("bad port in env", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "http")
		_, err := Load(writeConfig(t, sampleConfig))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cfg := defaults()
	cfg.Database.DBName = "availability"
	require.NoError(t, cfg.Validate())

	cfg.Server.HTTPPort = 0
	cfg.Availability.MaxCalendarDays = 0
	cfg.Tracing.SampleRatio = 2

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http_port")
	assert.Contains(t, err.Error(), "max_calendar_days")
	assert.Contains(t, err.Error(), "sample_ratio")
}
