// Package azel samples a satellite's azimuth, elevation and distance from a
// ground observer on a fixed time grid and summarises how far each one swings.
package azel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/naj1024/tle/internal/propagation"
	"github.com/naj1024/tle/internal/transform"
)

// ErrNoSamples is returned when there is nothing to summarise or plot.
var ErrNoSamples = errors.New("no samples")

// Propagator produces satellite states for a list of instants.
type Propagator interface {
	PropagateRange(ctx context.Context, times []time.Time) ([]propagation.State, error)
}

// Sample is the observer's view of the satellite at one instant.
type Sample struct {
	Time         time.Time
	AzimuthDeg   float64
	ElevationDeg float64
	DistanceKm   float64
}

// Extent is the smallest and largest value seen for one quantity.
type Extent struct {
	Min, Max float64
}

// Diff is the total swing.
func (e Extent) Diff() float64 {
	return e.Max - e.Min
}

// Summary holds the swing of each sampled quantity.
type Summary struct {
	Azimuth   Extent
	Elevation Extent
	Distance  Extent
}

// TimeGrid returns days worth of instants spaced by step. The first instant
// is start+step, so the grid never includes start itself.
func TimeGrid(start time.Time, days int, step time.Duration) ([]time.Time, error) {
	if days < 0 {
		return nil, fmt.Errorf("days must not be negative, got %d", days)
	}
	if step <= 0 {
		return nil, fmt.Errorf("step must be positive, got %s", step)
	}

	perDay := int(24 * time.Hour / step)
	grid := make([]time.Time, 0, days*perDay)
	t := start
	for i := 0; i < days*perDay; i++ {
		t = t.Add(step)
		grid = append(grid, t)
	}
	return grid, nil
}

// SampleGrid propagates to every grid instant and converts each state to look angles.
func SampleGrid(ctx context.Context, prop Propagator, obs transform.Observer, grid []time.Time) ([]Sample, error) {
	states, err := prop.PropagateRange(ctx, grid)
	if err != nil {
		return nil, fmt.Errorf("sampling grid: %w", err)
	}

	samples := make([]Sample, 0, len(states))
	for _, s := range states {
		la := transform.Look(obs, s)
		samples = append(samples, Sample{
			Time:         s.Time,
			AzimuthDeg:   la.AzimuthDeg,
			ElevationDeg: la.ElevationDeg,
			DistanceKm:   la.RangeKm,
		})
	}
	return samples, nil
}

// Summarize returns the min/max of each quantity over the samples.
func Summarize(samples []Sample) (Summary, error) {
	if len(samples) == 0 {
		return Summary{}, ErrNoSamples
	}

	az, el, dist := columns(samples)
	return Summary{
		Azimuth:   Extent{Min: floats.Min(az), Max: floats.Max(az)},
		Elevation: Extent{Min: floats.Min(el), Max: floats.Max(el)},
		Distance:  Extent{Min: floats.Min(dist), Max: floats.Max(dist)},
	}, nil
}

func columns(samples []Sample) (az, el, dist []float64) {
	az = make([]float64, len(samples))
	el = make([]float64, len(samples))
	dist = make([]float64, len(samples))
	for i, s := range samples {
		az[i] = s.AzimuthDeg
		el[i] = s.ElevationDeg
		dist[i] = s.DistanceKm
	}
	return az, el, dist
}
