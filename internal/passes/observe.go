package passes

import (
	"fmt"
	"time"

	"github.com/naj1024/tle/internal/metrics"
	"github.com/naj1024/tle/internal/propagation"
	"github.com/naj1024/tle/internal/transform"
)

const (
	// ReferenceFrequencyHz is the transmit frequency Doppler is quoted against,
	// so the result reads as Hz per MHz.
	ReferenceFrequencyHz = 1e6

	// SpeedOfLight in m/s.
	SpeedOfLight = 2.9979246e8
)

// Propagator produces a satellite state at one instant.
type Propagator interface {
	Propagate(t time.Time) (propagation.State, error)
}

// Observation is an event with the observer's view of the satellite at that time.
type Observation struct {
	Event
	Look    transform.LookAngles
	Doppler float64 // Hz per MHz
}

// Doppler returns f0 − f0·c/(c + v) for a range-rate in km/s, with
// f0 = ReferenceFrequencyHz.
func Doppler(rangeRateKmS float64) float64 {
	const f0, c = ReferenceFrequencyHz, SpeedOfLight
	return f0 - (f0*c)/(c+1000*rangeRateKmS)
}

// Evaluate recomputes look angles and range-rate at every event.
func Evaluate(prop Propagator, obs transform.Observer, events []Event) ([]Observation, error) {
	out := make([]Observation, 0, len(events))
	for _, ev := range events {
		s, err := prop.Propagate(ev.Time)
		if err != nil {
			return out, fmt.Errorf("%s at %s: %w", ev.Kind, ev.Time.UTC().Format(time.RFC3339), err)
		}
		la := transform.Look(obs, s)
		out = append(out, Observation{
			Event:   ev,
			Look:    la,
			Doppler: Doppler(la.RangeRateKmS),
		})
		metrics.RecordPassEvent(ev.Kind.String())
	}
	return out, nil
}
