package tle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// ErrNotFound is returned when no entry matches the requested satellite.
var ErrNotFound = errors.New("satellite not found in TLE data")

// Source describes where a tool obtains its element set.
// File wins over URL; with neither set the built-in Default is used.
type Source struct {
	File     string
	URL      string
	CacheDir string        // cache for URL downloads, disabled when empty
	MaxAge   time.Duration // cached downloads older than this are refetched
	NORADID  int           // 0 selects the first entry
	Default  string
}

// Load resolves the configured source and returns the selected entry.
func Load(ctx context.Context, src Source, logger *slog.Logger) (Entry, error) {
	data, origin, err := src.read(ctx, logger)
	if err != nil {
		return Entry{}, err
	}

	entries, err := Parse(bytes.NewReader(data), logger)
	if err != nil {
		return Entry{}, err
	}
	if len(entries) == 0 {
		return Entry{}, fmt.Errorf("%w: no valid entries from %s", ErrInvalidTLE, origin)
	}

	entry, err := selectEntry(entries, src.NORADID)
	if err != nil {
		return Entry{}, fmt.Errorf("%s: %w", origin, err)
	}

	logger.Info("loaded TLE",
		"source", origin,
		"entries", len(entries),
		"norad_id", entry.NORADID,
		"name", entry.Name,
		"epoch", entry.Epoch.UTC().Format(time.RFC3339),
	)
	return entry, nil
}

func (src Source) read(ctx context.Context, logger *slog.Logger) ([]byte, string, error) {
	switch {
	case src.File != "":
		data, err := os.ReadFile(src.File)
		if err != nil {
			return nil, "", fmt.Errorf("reading TLE file: %w", err)
		}
		return data, src.File, nil

	case src.URL != "":
		var cache *Cache
		if src.CacheDir != "" {
			cache = NewCache(src.CacheDir, 5)
			data, err := cache.LoadFresh(src.MaxAge, time.Now())
			if err == nil {
				return data, "cache:" + src.CacheDir, nil
			}
			logger.Debug("TLE cache miss", "dir", src.CacheDir, "error", err)
		}

		data, err := NewFetcher(src.URL, logger).Fetch(ctx)
		if err != nil {
			return nil, "", err
		}
		if cache != nil {
			if err := cache.Write(data, time.Now()); err != nil {
				logger.Warn("failed to write TLE cache", "dir", src.CacheDir, "error", err)
			}
		}
		return data, src.URL, nil

	case src.Default != "":
		return []byte(src.Default), "built-in", nil
	}

	return nil, "", errors.New("no TLE source configured")
}

func selectEntry(entries []Entry, noradID int) (Entry, error) {
	if noradID == 0 {
		return entries[0], nil
	}
	for _, e := range entries {
		if e.NORADID == noradID {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: NORAD %d", ErrNotFound, noradID)
}
