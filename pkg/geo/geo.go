// Package geo provides shared geographic primitives for the sunfield engine:
// coordinates, compass bearing normalization, and conversions between angular
// and physical ground distance.
package geo

import "math"

// MetersPerDegreeLat is the approximate ground distance spanned by one degree
// of latitude. It is nearly constant over the globe.
const MetersPerDegreeLat = 111320.0

// Coordinates is a point on the Earth's surface.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`  // degrees, [-90, 90]
	Longitude float64 `json:"longitude"` // degrees, [-180, 180]
}

// DegToRad converts an angle from degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

// RadToDeg converts an angle from radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * (180.0 / math.Pi)
}

// NormalizeBearing maps any angle in degrees onto [0, 360).
func NormalizeBearing(deg float64) float64 {
	b := math.Mod(deg, 360.0)
	if b < 0 {
		b += 360.0
	}
	return b
}

// BearingDiff returns the minimal arc between two compass bearings, in
// [0, 180]. Bearings of 359 and 5 differ by 6 degrees, not 354.
func BearingDiff(a, b float64) float64 {
	d := math.Abs(NormalizeBearing(a) - NormalizeBearing(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// MetersPerDegreeLon returns the ground distance spanned by one degree of
// longitude at the given latitude. Meridians converge toward the poles, so
// this shrinks with the cosine of the latitude.
func MetersPerDegreeLon(latitude float64) float64 {
	return MetersPerDegreeLat * math.Cos(DegToRad(latitude))
}

// Clamp bounds v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
