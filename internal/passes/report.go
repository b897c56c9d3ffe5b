package passes

import (
	"fmt"
	"io"
	"math"

	"github.com/naj1024/tle/internal/tle"
	"github.com/naj1024/tle/internal/transform"
)

const eventTimeLayout = "2006 Jan 02 15:04:05"

// WriteHeader prints the observer and satellite the events refer to.
func WriteHeader(w io.Writer, obs transform.Observer, entry tle.Entry) error {
	_, err := fmt.Fprintf(w, "Observer : %s\nSatellite: %s catalog #%d epoch %s UTC\n  %s\n  %s\n",
		obs,
		entry.Name, entry.NORADID, entry.Epoch.UTC().Format("2006-01-02 15:04:05"),
		entry.Line1,
		entry.Line2,
	)
	return err
}

// WriteEvents prints one line per event. Every Rise opens a new numbered pass.
func WriteEvents(w io.Writer, observations []Observation) error {
	if len(observations) == 0 {
		_, err := fmt.Fprintln(w, " - No passes")
		return err
	}

	pass := 1
	for _, o := range observations {
		if o.Kind == Rise {
			if _, err := fmt.Fprintf(w, "Pass %d\n", pass); err != nil {
				return err
			}
			pass++
		}
		_, err := fmt.Fprintf(w, "%s\t%s UTC\tEl %5.2f\tAz %5.2f\trange %8.3fkm\trate %5.3fkm/s\tdoppler %.3fHz/MHz\n",
			o.Kind.Label(),
			o.Time.UTC().Format(eventTimeLayout),
			math.Abs(o.Look.ElevationDeg),
			o.Look.AzimuthDeg,
			o.Look.RangeKm,
			o.Look.RangeRateKmS,
			o.Doppler,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
