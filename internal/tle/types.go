package tle

import (
	"fmt"
	"strings"
	"time"

	"github.com/akhenakh/sgp4"
)

// Entry represents a single satellite's two-line element set.
type Entry struct {
	NORADID int
	Name    string
	Epoch   time.Time
	Line1   string
	Line2   string
}

// Text returns the element set in NORAD 3-line form (2-line when unnamed).
func (e Entry) Text() string {
	if e.Name == "" {
		return e.Line1 + "\n" + e.Line2
	}
	return e.Name + "\n" + e.Line1 + "\n" + e.Line2
}

// Elements re-parses the entry into the sgp4 library representation used
// for horizon-crossing searches.
func (e Entry) Elements() (*sgp4.TLE, error) {
	t, err := sgp4.ParseTLE(e.Line1 + "\n" + e.Line2)
	if err != nil {
		return nil, fmt.Errorf("parsing elements for NORAD %d: %w", e.NORADID, err)
	}
	t.Name = e.Name
	return t, nil
}

// IsGeostationary reports whether the mean elements look geostationary.
func (e Entry) IsGeostationary() bool {
	t, err := e.Elements()
	if err != nil {
		return false
	}
	return t.IsGeostationary()
}

// ParseEntry validates a single 2- or 3-line element set.
func ParseEntry(text string) (Entry, error) {
	lines := nonEmptyLines(text)
	if len(lines) < 2 || len(lines) > 3 {
		return Entry{}, fmt.Errorf("%w: expected 2 or 3 lines, got %d", ErrInvalidTLE, len(lines))
	}

	t, err := sgp4.ParseTLE(strings.Join(lines, "\n"))
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %w", ErrInvalidTLE, err)
	}

	line1, line2 := lines[len(lines)-2], lines[len(lines)-1]

	return Entry{
		NORADID: t.SatelliteNumber,
		Name:    strings.TrimSpace(t.Name),
		Epoch:   t.EpochTime(),
		Line1:   strings.TrimSpace(line1),
		Line2:   strings.TrimSpace(line2),
	}, nil
}
