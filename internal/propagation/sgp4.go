package propagation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/naj1024/tle/internal/metrics"
	"github.com/naj1024/tle/internal/tle"
)

// SGP4 library choice: github.com/joshuaferrara/go-satellite
//
// Full Vallado SGP4/SDP4 including the deep-space branch, which the
// geostationary samples need.
//
// Note: Propagate() takes Satellite by value so SGP4 error codes are not visible
// to the caller. We detect propagation failures by checking output for NaN/Inf
// and unreasonable position magnitudes.

// ErrPropagation is returned when SGP4 output is unusable.
var ErrPropagation = errors.New("sgp4 propagation failed")

// SGP4Propagator wraps the go-satellite library for a single satellite.
type SGP4Propagator struct {
	sat   satellite.Satellite
	entry tle.Entry
}

// NewSGP4Propagator creates an SGP4 propagator from a TLE entry.
// Returns an error if the TLE cannot be parsed or the SGP4 model fails to initialize.
//
// Pre-validates TLE format before passing to the library, because go-satellite
// calls log.Fatal on malformed input (which would kill the process).
func NewSGP4Propagator(entry tle.Entry) (*SGP4Propagator, error) {
	if err := validateTLELines(entry.Line1, entry.Line2); err != nil {
		return nil, fmt.Errorf("invalid TLE for NORAD %d: %w", entry.NORADID, err)
	}

	sat := satellite.TLEToSat(entry.Line1, entry.Line2, satellite.GravityWGS84)
	if sat.Error != 0 {
		return nil, fmt.Errorf("sgp4 init failed for NORAD %d: code=%d %s", entry.NORADID, sat.Error, sat.ErrorStr)
	}
	return &SGP4Propagator{sat: sat, entry: entry}, nil
}

// validateTLELines performs basic format validation on TLE lines.
func validateTLELines(line1, line2 string) error {
	line1 = strings.TrimSpace(line1)
	line2 = strings.TrimSpace(line2)

	if len(line1) != 69 {
		return fmt.Errorf("line1 length %d, expected 69", len(line1))
	}
	if len(line2) != 69 {
		return fmt.Errorf("line2 length %d, expected 69", len(line2))
	}
	if line1[0] != '1' {
		return fmt.Errorf("line1 must start with '1', got '%c'", line1[0])
	}
	if line2[0] != '2' {
		return fmt.Errorf("line2 must start with '2', got '%c'", line2[0])
	}
	return nil
}

// Propagate computes the satellite state at t.
// go-satellite resolves time to whole UTC seconds; the returned State carries
// the instant actually used.
func (p *SGP4Propagator) Propagate(t time.Time) (State, error) {
	t = t.UTC().Truncate(time.Second)
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	pos, vel := satellite.Propagate(p.sat, year, int(month), day, hour, min, sec)

	if err := checkPosition(pos); err != nil {
		metrics.RecordPropagation(false)
		return State{}, fmt.Errorf("NORAD %d at %s: %w", p.entry.NORADID, t.Format(time.RFC3339), err)
	}
	metrics.RecordPropagation(true)

	return State{
		Time:     t,
		Position: r3.Vec{X: pos.X, Y: pos.Y, Z: pos.Z},
		Velocity: r3.Vec{X: vel.X, Y: vel.Y, Z: vel.Z},
	}, nil
}

// PropagateRange propagates to each instant in order. It stops at the first
// failure or when ctx is cancelled, returning the states computed so far.
func (p *SGP4Propagator) PropagateRange(ctx context.Context, times []time.Time) ([]State, error) {
	states := make([]State, 0, len(times))
	for i, t := range times {
		if err := ctx.Err(); err != nil {
			return states, err
		}
		s, err := p.Propagate(t)
		if err != nil {
			return states, fmt.Errorf("step %d: %w", i, err)
		}
		states = append(states, s)
	}
	return states, nil
}

func checkPosition(pos satellite.Vector3) error {
	// Detect propagation failures via NaN/Inf check.
	if math.IsNaN(pos.X) || math.IsNaN(pos.Y) || math.IsNaN(pos.Z) ||
		math.IsInf(pos.X, 0) || math.IsInf(pos.Y, 0) || math.IsInf(pos.Z, 0) {
		return fmt.Errorf("%w: output is NaN/Inf", ErrPropagation)
	}

	// Position magnitude should be between ~6200km and ~50000km.
	mag := math.Sqrt(pos.X*pos.X + pos.Y*pos.Y + pos.Z*pos.Z)
	if mag < 6200.0 || mag > 50000.0 {
		return fmt.Errorf("%w: unreasonable position magnitude %.1f km", ErrPropagation, mag)
	}
	return nil
}
