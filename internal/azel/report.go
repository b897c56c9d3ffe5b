package azel

import (
	"fmt"
	"io"
	"time"

	"github.com/naj1024/tle/internal/tle"
	"github.com/naj1024/tle/internal/transform"
)

// WriteHeader prints the observer, the element set and the sampling plan.
func WriteHeader(w io.Writer, obs transform.Observer, entry tle.Entry, days int, step time.Duration) error {
	_, err := fmt.Fprintf(w, "Location: %.1f deg, %.1f deg, %.0f m\n%s\nCalculating over %d days in %s steps\n",
		obs.LatDeg, obs.LonDeg, obs.HeightM,
		entry.Text(),
		days, stepName(step),
	)
	return err
}

// WriteSummary prints the min/max/diff lines for azimuth, elevation and distance.
func WriteSummary(w io.Writer, s Summary) error {
	_, err := fmt.Fprintf(w,
		"Min az %.3fdeg, Max az %.3fdeg, diff %.3fdeg\n"+
			"Min el %.3fdeg, Max el %.3fdeg, diff %.3fdeg\n"+
			"Min dst %.3fkm, Max dst %.3fkms, diff %.3fkm\n",
		s.Azimuth.Min, s.Azimuth.Max, s.Azimuth.Diff(),
		s.Elevation.Min, s.Elevation.Max, s.Elevation.Diff(),
		s.Distance.Min, s.Distance.Max, s.Distance.Diff(),
	)
	return err
}

func stepName(step time.Duration) string {
	switch step {
	case time.Hour:
		return "1 hour"
	case time.Minute:
		return "1 minute"
	}
	return step.String()
}
