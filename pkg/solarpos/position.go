// Package solarpos computes the apparent position of the sun and per-day
// solar events (sunrise, sunset, solar noon) for any point on Earth. High
// latitudes degrade gracefully to midnight-sun and polar-night conditions
// instead of failing.
package solarpos

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/verdantlabs/sunfield/pkg/geo"
)

// refractionDeg is the standard atmospheric refraction correction applied to
// the computed solar elevation.
const refractionDeg = 0.5667

// SolarPosition is the apparent position of the sun at an instant.
type SolarPosition struct {
	Altitude float64   `json:"altitude"` // degrees above the horizon; negative below
	Azimuth  float64   `json:"azimuth"`  // compass bearing, 0 = north, clockwise
	Time     time.Time `json:"time"`
}

// Position returns the sun's altitude and azimuth for the given coordinates
// and instant, using the NOAA low-precision solar position algorithm.
func Position(c geo.Coordinates, t time.Time) SolarPosition {
	ut := t.UTC()
	T := julianCenturies(ut)

	decRad := declinationRad(T)
	eqTimeMin := equationOfTime(T)

	// True solar time: UTC clock time shifted by longitude (4 min/degree)
	// and the equation of time. The hour angle is zero at solar noon.
	utcMin := float64(ut.Hour()*60+ut.Minute()) + float64(ut.Second())/60.0
	tst := utcMin + 4*c.Longitude + eqTimeMin
	haDeg := tst/4 - 180
	haDeg = math.Mod(haDeg+540, 360) - 180 // wrap to [-180, 180)
	haRad := geo.DegToRad(haDeg)

	latRad := geo.DegToRad(c.Latitude)
	cosZen := math.Sin(latRad)*math.Sin(decRad) + math.Cos(latRad)*math.Cos(decRad)*math.Cos(haRad)
	cosZen = geo.Clamp(cosZen, -1, 1)
	zenRad := math.Acos(cosZen)
	altDeg := 90 - geo.RadToDeg(zenRad) + refractionDeg
	// Refraction lifts the apparent sun, but it can never push it past the
	// zenith.
	if altDeg > 90 {
		altDeg = 90
	}

	// Azimuth from the spherical zenith triangle; the acos ambiguity is
	// resolved by the sign of the hour angle (afternoon sun is westerly).
	azDeg := 180.0
	azDen := math.Cos(latRad) * math.Sin(zenRad)
	if math.Abs(azDen) > 1e-9 {
		cosAz := (math.Sin(decRad) - math.Sin(latRad)*cosZen) / azDen
		azDeg = geo.RadToDeg(math.Acos(geo.Clamp(cosAz, -1, 1)))
		if haDeg > 0 {
			azDeg = 360 - azDeg
		}
	} else if c.Latitude < 0 {
		// Sun at the zenith or observer at a pole: bearing is degenerate,
		// point it toward the equator.
		azDeg = 0.0
	}

	return SolarPosition{
		Altitude: altDeg,
		Azimuth:  geo.NormalizeBearing(azDeg),
		Time:     t,
	}
}

// julianCenturies returns Julian centuries since J2000.0 for a UTC time.
func julianCenturies(t time.Time) float64 {
	return (julian.TimeToJD(t) - 2451545.0) / 36525.0
}

// declinationRad returns the sun's apparent declination in radians.
func declinationRad(T float64) float64 {
	L0 := geo.NormalizeBearing(280.46646 + T*(36000.76983+T*0.0003032))
	M := geo.NormalizeBearing(357.52911 + T*(35999.05029-T*0.0001537))

	// Equation of center corrects the mean anomaly for orbital eccentricity.
	C := math.Sin(geo.DegToRad(M))*(1.914602-T*(0.004817+T*0.000014)) +
		math.Sin(geo.DegToRad(2*M))*(0.019993-T*0.000101) +
		math.Sin(geo.DegToRad(3*M))*0.000289
	sunLong := L0 + C
	omega := 125.04 - 1934.136*T
	lambda := sunLong - 0.00569 - 0.00478*math.Sin(geo.DegToRad(omega))

	eps0 := meanObliquityDeg(T)
	sinDec := math.Sin(geo.DegToRad(eps0)) * math.Sin(geo.DegToRad(lambda))
	return math.Asin(geo.Clamp(sinDec, -1, 1))
}

// meanObliquityDeg returns the mean obliquity of the ecliptic in degrees.
func meanObliquityDeg(T float64) float64 {
	return 23 + (26+(21.448-T*(46.815+T*(0.00059-T*0.001813)))/60)/60
}

// equationOfTime returns the difference between apparent and mean solar time
// in minutes, combining the obliquity and eccentricity effects.
func equationOfTime(T float64) float64 {
	L0 := geo.NormalizeBearing(280.46646 + T*(36000.76983+T*0.0003032))
	M := geo.NormalizeBearing(357.52911 + T*(35999.05029-T*0.0001537))
	e := 0.016708634 - T*(0.000042037+T*0.0000001267)
	eps0 := meanObliquityDeg(T)

	y := math.Tan(geo.DegToRad(eps0)/2) * math.Tan(geo.DegToRad(eps0)/2)
	return geo.RadToDeg(y*math.Sin(geo.DegToRad(2*L0))-
		2*e*math.Sin(geo.DegToRad(M))+
		4*e*y*math.Sin(geo.DegToRad(M))*math.Cos(geo.DegToRad(2*L0))-
		0.5*y*y*math.Sin(geo.DegToRad(4*L0))-
		1.25*e*e*math.Sin(geo.DegToRad(2*M))) * 4 // 4 min per degree
}
