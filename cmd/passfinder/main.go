// Command passfinder lists rise, peak and set events of a low-earth-orbit
// satellite over a ground station with range, range-rate and Doppler.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/naj1024/tle/internal/config"
	"github.com/naj1024/tle/internal/metrics"
	"github.com/naj1024/tle/internal/passes"
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
	metrics.ObserveRun("passfinder", time.Since(start))

	if perr := metrics.Push(ctx, cfg.Pushgateway, "passfinder"); perr != nil {
		logger.Warn("failed to push metrics", "url", cfg.Pushgateway, "error", perr)
	}
	if err != nil {
		logger.Error("passfinder failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger, out io.Writer) error {
	entry, err := tle.Load(ctx, cfg.Source(tle.ISSTLE), logger)
	if err != nil {
		return err
	}

	prop, err := propagation.NewSGP4Propagator(entry)
	if err != nil {
		return err
	}

	obs := cfg.Location()
	if err := passes.WriteHeader(out, obs, entry); err != nil {
		return err
	}

	events, err := passes.FindEvents(entry, obs, cfg.Passes.Start, cfg.Passes.End, cfg.Passes.MinElevation, cfg.Passes.Step)
	if err != nil {
		return err
	}
	logger.Debug("found events",
		"count", len(events),
		"start", cfg.Passes.Start.Format(time.RFC3339),
		"end", cfg.Passes.End.Format(time.RFC3339),
	)

	observations, err := passes.Evaluate(prop, obs, events)
	if err != nil {
		return err
	}
	return passes.WriteEvents(out, observations)
}
