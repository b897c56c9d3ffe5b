// Package transform turns propagated satellite states into what a ground
// observer sees: azimuth, elevation, slant range and range-rate.
//
// Sidereal time comes from go-satellite. The observer sits on the WGS-84
// ellipsoid and the look angles use the SEZ rotation about its geodetic
// vertical, all in the TEME frame of the propagated state:
//
//	ρ  = r_sat − r_obs
//	ρ̇  = v_sat − ω⊕ × r_obs
//	ṙ  = (ρ · ρ̇) / |ρ|
package transform

import (
	"fmt"
	"math"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/naj1024/tle/internal/propagation"
)

// OmegaEarth is Earth's rotation rate in rad/s.
const OmegaEarth = 7.292115146706979e-5

const (
	deg2rad = math.Pi / 180.0
	rad2deg = 180.0 / math.Pi
)

// WGS-84 ellipsoid parameters.
const (
	wgs84A  = 6378.137              // semi-major axis (km)
	wgs84F  = 1.0 / 298.257223563   // flattening
	wgs84E2 = wgs84F * (2 - wgs84F) // first eccentricity squared
)

// Observer is a fixed ground location.
type Observer struct {
	LatDeg  float64 // geodetic latitude, north positive
	LonDeg  float64 // longitude, east positive
	HeightM float64 // metres above the ellipsoid
}

// LookAngles holds azimuth, elevation, range and range-rate from observer to satellite.
type LookAngles struct {
	AzimuthDeg   float64 // 0 = North, clockwise, [0, 360)
	ElevationDeg float64 // 0 = horizon, 90 = zenith
	RangeKm      float64
	RangeRateKmS float64 // positive = receding
}

// NewObserver creates an Observer from geodetic coordinates.
func NewObserver(latDeg, lonDeg, heightM float64) Observer {
	return Observer{LatDeg: latDeg, LonDeg: lonDeg, HeightM: heightM}
}

func (o Observer) String() string {
	return fmt.Sprintf("WGS84 latitude %+.4f N longitude %+.4f E elevation %.1f m", o.LatDeg, o.LonDeg, o.HeightM)
}

// position returns the observer in the inertial frame, theta being the
// local sidereal angle (GMST plus east longitude) in radians.
func (o Observer) position(theta float64) r3.Vec {
	lat := o.LatDeg * deg2rad
	sinLat, cosLat := math.Sincos(lat)
	h := o.HeightM / 1000.0

	// Radius of curvature in the prime vertical.
	n := wgs84A / math.Sqrt(1-wgs84E2*sinLat*sinLat)

	return r3.Vec{
		X: (n + h) * cosLat * math.Cos(theta),
		Y: (n + h) * cosLat * math.Sin(theta),
		Z: (n*(1-wgs84E2) + h) * sinLat,
	}
}

// siderealAngle is the observer's local sidereal angle at t in radians.
func (o Observer) siderealAngle(t time.Time) float64 {
	t = t.UTC()
	year, month, day := t.Date()
	hour, min, sec := t.Clock()
	gmst := satellite.ThetaG_JD(satellite.JDay(year, int(month), day, hour, min, sec))
	return math.Mod(gmst+o.LonDeg*deg2rad, 2*math.Pi)
}

// Look computes the observer's view of the satellite state.
func Look(obs Observer, s propagation.State) LookAngles {
	theta := obs.siderealAngle(s.Time)
	rObs := obs.position(theta)
	rho := r3.Sub(s.Position, rObs)

	sinLat, cosLat := math.Sincos(obs.LatDeg * deg2rad)
	sinTh, cosTh := math.Sincos(theta)

	// Rotate the range vector to SEZ (South, East, Zenith).
	south := sinLat*cosTh*rho.X + sinLat*sinTh*rho.Y - cosLat*rho.Z
	east := -sinTh*rho.X + cosTh*rho.Y
	zenith := cosLat*cosTh*rho.X + cosLat*sinTh*rho.Y + sinLat*rho.Z

	rng := r3.Norm(rho)
	if rng == 0 {
		return LookAngles{ElevationDeg: 90}
	}

	// North is -South, so azimuth is measured clockwise from North.
	az := math.Atan2(east, -south) * rad2deg
	if az < 0 {
		az += 360
	}
	if az >= 360 {
		az -= 360
	}

	vObs := r3.Cross(r3.Vec{Z: OmegaEarth}, rObs)
	rhoDot := r3.Sub(s.Velocity, vObs)

	return LookAngles{
		AzimuthDeg:   az,
		ElevationDeg: math.Asin(zenith/rng) * rad2deg,
		RangeKm:      rng,
		RangeRateKmS: r3.Dot(rho, rhoDot) / rng,
	}
}
