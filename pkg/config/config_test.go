package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		key := key
		if prev, ok := os.LookupEnv(key); ok {
			require.NoError(t, os.Unsetenv(key))
			t.Cleanup(func() { _ = os.Setenv(key, prev) })
		}
	}
}

func TestLoadWithoutEnvFile(t *testing.T) {
	chdir(t, t.TempDir())
	clearEnv(t, "PORT", "API_PREFIX", "DB_NAME", "CALENDAR_MAX_RANGE_YEARS", "CALENDAR_FALLBACK_MAX_EVENTS", "ENABLE_CALENDAR_EXPORT")

	cfg, err := Load()
	require.NoError(t, err, "a missing .env falls back to env vars and defaults")

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, "kelaskal", cfg.Database.Name)
	assert.Equal(t, 10, cfg.Calendar.MaxRangeYears)
	assert.Equal(t, 50, cfg.Calendar.FallbackMaxEvents)
	assert.True(t, cfg.Export.Enabled)
}

func TestLoadReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	env := "PORT=9090\nCALENDAR_MAX_RANGE_YEARS=5\nENABLE_CALENDAR_EXPORT=false\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	chdir(t, dir)
	// godotenv exports the file into the process env; keep it test-local.
	t.Cleanup(func() {
		for _, key := range []string{"PORT", "CALENDAR_MAX_RANGE_YEARS", "ENABLE_CALENDAR_EXPORT"} {
			_ = os.Unsetenv(key)
		}
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 5, cfg.Calendar.MaxRangeYears)
	assert.False(t, cfg.Export.Enabled)
}
