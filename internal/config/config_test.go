package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDefaults(t *testing.T) {
	cfg := FromViper(New(), testLogger())

	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, Observer{Latitude: 51.8, Longitude: -2.1, Height: 100}, cfg.Observer)
	assert.Equal(t, 0, cfg.TLE.NORADID)
	assert.Equal(t, 6*time.Hour, cfg.TLE.MaxAge)
	assert.Empty(t, cfg.Pushgateway)

	assert.True(t, cfg.AzEl.Start.Equal(time.Date(2024, 11, 1, 13, 11, 0, 0, time.UTC)))
	assert.Equal(t, 5, cfg.AzEl.Days)
	assert.Equal(t, time.Hour, cfg.AzEl.Step)
	assert.Equal(t, "azel.png", cfg.AzEl.Plot)

	assert.True(t, cfg.Passes.Start.Equal(time.Date(2025, 4, 8, 0, 0, 0, 0, time.UTC)))
	assert.True(t, cfg.Passes.End.Equal(time.Date(2025, 4, 9, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0.0, cfg.Passes.MinElevation)
	assert.Equal(t, time.Second, cfg.Passes.Step)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("SATLOOK_LOG_LEVEL", "debug")
	t.Setenv("SATLOOK_OBSERVER_LATITUDE", "-33.9")
	t.Setenv("SATLOOK_TLE_NORAD_ID", "25544")
	t.Setenv("SATLOOK_TLE_MAX_AGE", "30m")
	t.Setenv("SATLOOK_AZEL_STEP", "15m")
	t.Setenv("SATLOOK_PASSES_START", "2025-05-01T06:00:00+02:00")
	t.Setenv("SATLOOK_PASSES_END", "2025-05-02T04:00:00Z")
	t.Setenv("SATLOOK_METRICS_PUSHGATEWAY", "http://localhost:9091")

	cfg := FromViper(New(), testLogger())

	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, -33.9, cfg.Observer.Latitude)
	assert.Equal(t, 25544, cfg.TLE.NORADID)
	assert.Equal(t, 30*time.Minute, cfg.TLE.MaxAge)
	assert.Equal(t, 15*time.Minute, cfg.AzEl.Step)
	assert.True(t, cfg.Passes.Start.Equal(time.Date(2025, 5, 1, 4, 0, 0, 0, time.UTC)))
	assert.Equal(t, "http://localhost:9091", cfg.Pushgateway)
}

func TestInvalidValuesFallBack(t *testing.T) {
	tests := []struct {
		env   string
		value string
		check func(t *testing.T, cfg Config)
	}{
		{"SATLOOK_OBSERVER_LATITUDE", "95", func(t *testing.T, cfg Config) { assert.Equal(t, 51.8, cfg.Observer.Latitude) }},
		{"SATLOOK_OBSERVER_LONGITUDE", "west", func(t *testing.T, cfg Config) { assert.Equal(t, -2.1, cfg.Observer.Longitude) }},
		{"SATLOOK_AZEL_DAYS", "0", func(t *testing.T, cfg Config) { assert.Equal(t, 5, cfg.AzEl.Days) }},
		{"SATLOOK_AZEL_STEP", "48h", func(t *testing.T, cfg Config) { assert.Equal(t, time.Hour, cfg.AzEl.Step) }},
		{"SATLOOK_PASSES_STEP", "250ms", func(t *testing.T, cfg Config) { assert.Equal(t, time.Second, cfg.Passes.Step) }},
		{"SATLOOK_PASSES_MIN_ELEVATION", "-5", func(t *testing.T, cfg Config) { assert.Equal(t, 0.0, cfg.Passes.MinElevation) }},
		{"SATLOOK_TLE_NORAD_ID", "-1", func(t *testing.T, cfg Config) { assert.Equal(t, 0, cfg.TLE.NORADID) }},
		{"SATLOOK_LOG_LEVEL", "chatty", func(t *testing.T, cfg Config) { assert.Equal(t, slog.LevelInfo, cfg.LogLevel) }},
		{"SATLOOK_AZEL_START", "yesterday", func(t *testing.T, cfg Config) {
			assert.True(t, cfg.AzEl.Start.Equal(time.Date(2024, 11, 1, 13, 11, 0, 0, time.UTC)))
		}},
		{"SATLOOK_PASSES_END", "2025-04-07T00:00:00Z", func(t *testing.T, cfg Config) {
			assert.True(t, cfg.Passes.End.Equal(time.Date(2025, 4, 9, 0, 0, 0, 0, time.UTC)))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)
			tt.check(t, FromViper(New(), testLogger()))
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "satlook.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
observer:
  latitude: 40.5
  longitude: -3.7
tle:
  file: /data/active.txt
passes:
  step: 5s
`), 0o644))
	t.Setenv(FileEnv, path)
	t.Setenv("SATLOOK_OBSERVER_LONGITUDE", "-4.0")

	cfg, err := Load(testLogger())
	require.NoError(t, err)

	assert.Equal(t, 40.5, cfg.Observer.Latitude)
	assert.Equal(t, -4.0, cfg.Observer.Longitude, "environment wins over file")
	assert.Equal(t, "/data/active.txt", cfg.TLE.File)
	assert.Equal(t, 5*time.Second, cfg.Passes.Step)
}

func TestLoadMissingConfigFile(t *testing.T) {
	t.Setenv(FileEnv, filepath.Join(t.TempDir(), "absent.toml"))
	_, err := Load(testLogger())
	assert.Error(t, err)
}

func TestSourceAndLocation(t *testing.T) {
	t.Setenv("SATLOOK_TLE_URL", "https://example.invalid/gp.txt")
	cfg := FromViper(New(), testLogger())

	src := cfg.Source("builtin")
	assert.Equal(t, "https://example.invalid/gp.txt", src.URL)
	assert.Equal(t, "builtin", src.Default)
	assert.Equal(t, 6*time.Hour, src.MaxAge)

	obs := cfg.Location()
	assert.Equal(t, 51.8, obs.LatDeg)
	assert.Equal(t, 100.0, obs.HeightM)
}
