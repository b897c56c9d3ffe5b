package propagation

import (
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

// State is a satellite's inertial state at one instant.
type State struct {
	Time     time.Time
	Position r3.Vec // km, TEME
	Velocity r3.Vec // km/s, TEME
}
