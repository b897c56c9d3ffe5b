// Package passes lists rise, peak and set events of a satellite over a ground
// observer and evaluates look angles, range-rate and Doppler at each event.
package passes

import (
	"fmt"
	"time"

	"github.com/akhenakh/sgp4"

	"github.com/naj1024/tle/internal/tle"
	"github.com/naj1024/tle/internal/transform"
)

// EventKind tags a horizon event.
type EventKind int

const (
	Rise EventKind = iota
	Peak
	Set
)

func (k EventKind) String() string {
	switch k {
	case Rise:
		return "Rise"
	case Peak:
		return "Peak"
	case Set:
		return "Set"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Label is the fixed-width name used in the event table.
func (k EventKind) Label() string {
	if k == Set {
		return "Set "
	}
	return k.String()
}

// Event is one horizon crossing or culmination.
type Event struct {
	Kind EventKind
	Time time.Time
}

// FindEvents returns the time-ordered rise/peak/set events between start
// and end. Rise and set are horizon (0°) crossings found by the sgp4
// library's stepped scanner, so event times resolve to step. Passes whose
// highest elevation stays below minElevation degrees are dropped.
//
// A pass already in progress at start has no Rise; one still in progress
// at end has no Set.
func FindEvents(entry tle.Entry, obs transform.Observer, start, end time.Time, minElevation float64, step time.Duration) ([]Event, error) {
	if !start.Before(end) {
		return nil, fmt.Errorf("start %s must be before end %s", start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	stepSeconds := int(step / time.Second)
	if stepSeconds < 1 {
		return nil, fmt.Errorf("step must be at least 1s, got %s", step)
	}

	elems, err := entry.Elements()
	if err != nil {
		return nil, err
	}

	windows, err := elems.GeneratePasses(obs.LatDeg, obs.LonDeg, obs.HeightM, start, end, stepSeconds)
	if err != nil {
		return nil, fmt.Errorf("generating passes for NORAD %d: %w", entry.NORADID, err)
	}

	return eventsFromPasses(windows, start, end, minElevation), nil
}

func eventsFromPasses(windows []sgp4.PassDetails, start, end time.Time, minElevation float64) []Event {
	var events []Event
	for _, w := range windows {
		if w.MaxElevation < minElevation {
			continue
		}
		if w.AOS.After(start) {
			events = append(events, Event{Kind: Rise, Time: w.AOS})
		}
		if w.MaxElevationTime.After(start) && w.MaxElevationTime.Before(end) {
			events = append(events, Event{Kind: Peak, Time: w.MaxElevationTime})
		}
		if w.LOS.Before(end) {
			events = append(events, Event{Kind: Set, Time: w.LOS})
		}
	}
	return events
}
