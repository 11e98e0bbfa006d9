package shade

import (
	"math"

	"github.com/verdantlabs/sunfield/pkg/geo"
	"github.com/verdantlabs/sunfield/pkg/solarpos"
)

// Blocked reports whether the obstacle stands between the sun and the
// observer, and the shade intensity it casts when it does.
//
// The obstacle's angular footprint is atan(height/distance) tall and
// 2·atan(halfWidth/distance) wide, centered on its bearing. The sun is
// blocked when its altitude falls below the angular height and its azimuth
// falls inside the span, with 0/360 wraparound handled by the minimal arc.
func Blocked(pos solarpos.SolarPosition, o Obstacle) (bool, float64) {
	if pos.Altitude <= 0 {
		return false, 0
	}

	dist := o.DistanceM
	if dist < minDistanceM {
		dist = minDistanceM
	}

	angularHeight := geo.RadToDeg(math.Atan2(o.HeightM, dist))
	if pos.Altitude >= angularHeight {
		return false, 0
	}

	angularHalfWidth := geo.RadToDeg(math.Atan2(o.WidthM/2, dist))
	if geo.BearingDiff(pos.Azimuth, o.DirectionDeg) >= angularHalfWidth {
		return false, 0
	}

	return true, 1 - o.Shape.Transmittance()
}

// EffectiveSunlight returns the fraction of full sun reaching the observer at
// the given sun position, in [0, 1]. With the sun below the horizon it is 0;
// with no blocking obstacle it is exactly 1. Overlapping shadows never stack:
// the densest blocking obstacle alone decides the result.
func EffectiveSunlight(pos solarpos.SolarPosition, obstacles []Obstacle) float64 {
	if pos.Altitude <= 0 {
		return 0
	}

	maxIntensity := 0.0
	for i := range obstacles {
		if blocked, intensity := Blocked(pos, obstacles[i]); blocked && intensity > maxIntensity {
			maxIntensity = intensity
		}
	}
	return 1 - maxIntensity
}

// DominantIntensity returns the highest shade intensity among obstacles
// currently blocking the sun, and the ID of the obstacle casting it.
func DominantIntensity(pos solarpos.SolarPosition, obstacles []Obstacle) (string, float64) {
	var id string
	maxIntensity := 0.0
	for i := range obstacles {
		if blocked, intensity := Blocked(pos, obstacles[i]); blocked && intensity > maxIntensity {
			maxIntensity = intensity
			id = obstacles[i].ID
		}
	}
	return id, maxIntensity
}
