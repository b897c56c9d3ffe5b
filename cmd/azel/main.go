// Command azel samples azimuth, elevation and distance of a geostationary
// satellite from a fixed ground station, prints the extremes and writes an
// azimuth/elevation plot.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/naj1024/tle/internal/azel"
	"github.com/naj1024/tle/internal/config"
	"github.com/naj1024/tle/internal/metrics"
	"github.com/naj1024/tle/internal/propagation"
	"github.com/naj1024/tle/internal/tle"
)

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	level.Set(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	err = run(ctx, cfg, logger, os.Stdout)
	metrics.ObserveRun("azel", time.Since(start))

	if perr := metrics.Push(ctx, cfg.Pushgateway, "azel"); perr != nil {
		logger.Warn("failed to push metrics", "url", cfg.Pushgateway, "error", perr)
	}
	if err != nil {
		logger.Error("azel failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger, out io.Writer) error {
	entry, err := tle.Load(ctx, cfg.Source(tle.IntelsatTLE), logger)
	if err != nil {
		return err
	}
	if !entry.IsGeostationary() {
		logger.Warn("satellite is not geostationary, the plot will not be a small loop",
			"norad_id", entry.NORADID,
			"name", entry.Name,
		)
	}

	prop, err := propagation.NewSGP4Propagator(entry)
	if err != nil {
		return err
	}

	obs := cfg.Location()
	if err := azel.WriteHeader(out, obs, entry, cfg.AzEl.Days, cfg.AzEl.Step); err != nil {
		return err
	}

	grid, err := azel.TimeGrid(cfg.AzEl.Start, cfg.AzEl.Days, cfg.AzEl.Step)
	if err != nil {
		return err
	}
	logger.Debug("sampling", "points", len(grid), "start", cfg.AzEl.Start.Format(time.RFC3339))

	samples, err := azel.SampleGrid(ctx, prop, obs, grid)
	if err != nil {
		return err
	}

	summary, err := azel.Summarize(samples)
	if err != nil {
		return err
	}
	if err := azel.WriteSummary(out, summary); err != nil {
		return err
	}

	if cfg.AzEl.Plot == "" {
		return nil
	}
	if err := azel.Plot(samples, cfg.AzEl.Plot); err != nil {
		return fmt.Errorf("writing plot: %w", err)
	}
	logger.Info("wrote plot", "path", cfg.AzEl.Plot, "points", len(samples))
	return nil
}
