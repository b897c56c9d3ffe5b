// Package config loads tool settings from SATLOOK_* environment variables
// and an optional config file. Every setting has a default, so an empty
// environment reproduces the stock azel and passfinder runs.
package config

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/naj1024/tle/internal/tle"
	"github.com/naj1024/tle/internal/transform"
)

// EnvPrefix prefixes every environment variable, e.g. SATLOOK_OBSERVER_LATITUDE.
const EnvPrefix = "SATLOOK"

// FileEnv names the environment variable holding an optional config file path.
const FileEnv = EnvPrefix + "_CONFIG"

// Config is the resolved configuration shared by both tools.
type Config struct {
	LogLevel    slog.Level
	Observer    Observer
	TLE         TLE
	Pushgateway string
	AzEl        AzEl
	Passes      Passes
}

// Observer is the ground station both tools look from.
type Observer struct {
	Latitude  float64 // degrees north
	Longitude float64 // degrees east
	Height    float64 // metres above the ellipsoid
}

// TLE selects where the element set comes from.
type TLE struct {
	File     string
	URL      string
	NORADID  int
	CacheDir string
	MaxAge   time.Duration
}

// AzEl holds the sampling grid and plot path of the azel tool.
type AzEl struct {
	Start time.Time
	Days  int
	Step  time.Duration
	Plot  string
}

// Passes holds the search window and scan step of the passfinder tool.
type Passes struct {
	Start        time.Time
	End          time.Time
	MinElevation float64
	Step         time.Duration
}

var defaults = map[string]any{
	"log.level":            "info",
	"observer.latitude":    51.8,
	"observer.longitude":   -2.1,
	"observer.height":      100.0,
	"tle.file":             "",
	"tle.url":              "",
	"tle.norad_id":         0,
	"tle.cache_dir":        "",
	"tle.max_age":          6 * time.Hour,
	"metrics.pushgateway":  "",
	"azel.start":           "2024-11-01T13:11:00Z",
	"azel.days":            5,
	"azel.step":            time.Hour,
	"azel.plot":            "azel.png",
	"passes.start":         "2025-04-08T00:00:00Z",
	"passes.end":           "2025-04-09T00:00:00Z",
	"passes.min_elevation": 0.0,
	"passes.step":          time.Second,
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the environment and, when FileEnv is set, the named config file.
func Load(logger *slog.Logger) (Config, error) {
	v := New()
	if path := os.Getenv(FileEnv); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
		logger.Info("read config file", "path", v.ConfigFileUsed())
	}
	return FromViper(v, logger), nil
}

// FromViper resolves every setting. Invalid values are logged and replaced
// by their defaults.
func FromViper(v *viper.Viper, logger *slog.Logger) Config {
	r := resolver{v: v, logger: logger}

	cfg := Config{
		LogLevel: r.level("log.level"),
		Observer: Observer{
			Latitude:  r.float("observer.latitude", between(-90, 90)),
			Longitude: r.float("observer.longitude", between(-180, 180)),
			Height:    r.float("observer.height", between(-500, 10000)),
		},
		TLE: TLE{
			File:     r.str("tle.file"),
			URL:      r.str("tle.url"),
			NORADID:  r.int("tle.norad_id", 0),
			CacheDir: r.str("tle.cache_dir"),
			MaxAge:   r.duration("tle.max_age", time.Second),
		},
		Pushgateway: r.str("metrics.pushgateway"),
		AzEl: AzEl{
			Start: r.time("azel.start"),
			Days:  r.int("azel.days", 1),
			Step:  r.duration("azel.step", time.Second),
			Plot:  r.str("azel.plot"),
		},
		Passes: Passes{
			Start:        r.time("passes.start"),
			End:          r.time("passes.end"),
			MinElevation: r.float("passes.min_elevation", between(0, 90)),
			Step:         r.duration("passes.step", time.Second),
		},
	}

	if cfg.AzEl.Step > 24*time.Hour {
		r.reject("azel.step", cfg.AzEl.Step)
		cfg.AzEl.Step = defaults["azel.step"].(time.Duration)
	}
	if !cfg.Passes.Start.Before(cfg.Passes.End) {
		logger.Warn("passes.end is not after passes.start, using default window",
			"start", cfg.Passes.Start.Format(time.RFC3339),
			"end", cfg.Passes.End.Format(time.RFC3339),
		)
		cfg.Passes.Start = mustTime(defaults["passes.start"].(string))
		cfg.Passes.End = mustTime(defaults["passes.end"].(string))
	}

	logger.Info("config",
		"log_level", cfg.LogLevel.String(),
		"observer_lat", cfg.Observer.Latitude,
		"observer_lon", cfg.Observer.Longitude,
		"observer_height_m", cfg.Observer.Height,
		"tle_file", cfg.TLE.File,
		"tle_url", cfg.TLE.URL,
		"tle_norad_id", cfg.TLE.NORADID,
		"tle_cache_dir", cfg.TLE.CacheDir,
		"tle_max_age_seconds", cfg.TLE.MaxAge.Seconds(),
		"pushgateway", cfg.Pushgateway,
	)

	return cfg
}

// Location returns the configured ground observer.
func (c Config) Location() transform.Observer {
	return transform.NewObserver(c.Observer.Latitude, c.Observer.Longitude, c.Observer.Height)
}

// Source returns the TLE source, falling back to builtin text.
func (c Config) Source(builtin string) tle.Source {
	return tle.Source{
		File:     c.TLE.File,
		URL:      c.TLE.URL,
		CacheDir: c.TLE.CacheDir,
		MaxAge:   c.TLE.MaxAge,
		NORADID:  c.TLE.NORADID,
		Default:  builtin,
	}
}

type resolver struct {
	v      *viper.Viper
	logger *slog.Logger
}

func (r resolver) reject(key string, value any) {
	r.logger.Warn("invalid config value, using default", "key", key, "value", value, "default", defaults[key])
}

func (r resolver) str(key string) string {
	return strings.TrimSpace(r.v.GetString(key))
}

func (r resolver) float(key string, valid func(float64) bool) float64 {
	raw := r.v.Get(key)
	f, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || !valid(f) {
		r.reject(key, raw)
		return defaults[key].(float64)
	}
	return f
}

func (r resolver) int(key string, min int) int {
	raw := r.v.Get(key)
	n, err := cast.ToIntE(raw)
	if err != nil || n < min {
		r.reject(key, raw)
		return defaults[key].(int)
	}
	return n
}

// duration accepts Go duration strings such as "90s" or "1h30m".
func (r resolver) duration(key string, min time.Duration) time.Duration {
	raw := r.v.Get(key)
	d, err := cast.ToDurationE(raw)
	if err != nil || d < min {
		r.reject(key, raw)
		return defaults[key].(time.Duration)
	}
	return d
}

// time accepts RFC 3339 timestamps and returns them in UTC.
func (r resolver) time(key string) time.Time {
	raw := r.v.Get(key)
	if t, ok := raw.(time.Time); ok {
		return t.UTC()
	}
	t, err := time.Parse(time.RFC3339, cast.ToString(raw))
	if err != nil {
		r.reject(key, raw)
		return mustTime(defaults[key].(string))
	}
	return t.UTC()
}

func (r resolver) level(key string) slog.Level {
	var l slog.Level
	raw := r.str(key)
	if err := l.UnmarshalText([]byte(raw)); err != nil {
		r.reject(key, raw)
		return slog.LevelInfo
	}
	return l
}

func between(lo, hi float64) func(float64) bool {
	return func(f float64) bool { return f >= lo && f <= hi }
}

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}
