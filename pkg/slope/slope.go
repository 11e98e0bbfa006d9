// Package slope models how ground tilt changes the direct-beam sunlight a
// plot receives. The irradiance factor is the dot product of the sun's unit
// direction vector and the tilted ground's unit normal, so a south-facing
// slope in the northern hemisphere collects more winter sun than flat ground.
package slope

import (
	"math"

	"github.com/verdantlabs/sunfield/pkg/geo"
	"github.com/verdantlabs/sunfield/pkg/solarpos"
)

// flatAngleDeg is the tilt below which a slope is numerically
// indistinguishable from flat ground.
const flatAngleDeg = 0.5

// Slope describes the tilt of a garden plot.
type Slope struct {
	AngleDeg  float64 `json:"angle"`  // tilt from horizontal, [0, 45]
	AspectDeg float64 `json:"aspect"` // downhill bearing, 0 = north
}

// Factors bundles the derived irradiance quantities for one sun position.
type Factors struct {
	Irradiance           float64 `json:"irradiance"`        // [0, 1]
	BoostFactor          float64 `json:"boostFactor"`       // sloped/flat ratio
	EffectiveAltitudeDeg float64 `json:"effectiveAltitude"` // asin of irradiance
}

// Irradiance returns the direct-beam irradiance factor for the given sun
// position on the tilted plot, clamped to [0, 1]. Zero means the sun is
// below the horizon or the surface faces away from it.
func Irradiance(pos solarpos.SolarPosition, s Slope) float64 {
	if pos.Altitude <= 0 {
		return 0
	}
	altRad := geo.DegToRad(pos.Altitude)
	if s.AngleDeg < flatAngleDeg {
		return geo.Clamp(math.Sin(altRad), 0, 1)
	}

	angleRad := geo.DegToRad(s.AngleDeg)
	aspectRad := geo.DegToRad(geo.NormalizeBearing(s.AspectDeg))
	azRad := geo.DegToRad(pos.Azimuth)

	// cos(tilt)·sin(alt) + sin(tilt)·cos(alt)·cos(az − aspect)
	factor := math.Cos(angleRad)*math.Sin(altRad) +
		math.Sin(angleRad)*math.Cos(altRad)*math.Cos(azRad-aspectRad)
	return geo.Clamp(factor, 0, 1)
}

// Compute returns the irradiance factor along with the boost over flat ground
// and the effective solar altitude that would produce the same irradiance on
// a level plot.
func Compute(pos solarpos.SolarPosition, s Slope) Factors {
	irr := Irradiance(pos, s)

	flat := 0.0
	if pos.Altitude > 0 {
		flat = geo.Clamp(math.Sin(geo.DegToRad(pos.Altitude)), 0, 1)
	}

	boost := 1.0
	if flat > 1e-9 {
		boost = irr / flat
	}

	effAlt := geo.RadToDeg(math.Asin(geo.Clamp(irr, -1, 1)))

	return Factors{
		Irradiance:           irr,
		BoostFactor:          boost,
		EffectiveAltitudeDeg: effAlt,
	}
}
