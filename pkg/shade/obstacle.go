// Package shade models the obstacles surrounding a garden plot and the
// sunlight they block. Each obstacle occupies an angular span of sky as seen
// from the plot; whenever the sun falls inside that span the obstacle shades
// the plot with an intensity fixed by its shape type.
package shade

import (
	"github.com/google/uuid"
	"github.com/verdantlabs/sunfield/pkg/geo"
)

// ShapeType identifies how an obstacle blocks light and how its shadow is
// projected onto the ground.
type ShapeType string

const (
	ShapeBuilding      ShapeType = "building"
	ShapeFence         ShapeType = "fence"
	ShapeEvergreenTree ShapeType = "evergreen-tree"
	ShapeDeciduousTree ShapeType = "deciduous-tree"
	ShapeHedge         ShapeType = "hedge"
)

// Transmittance returns the fraction of sunlight that passes through the
// shape when it blocks the sun. Solid structures pass nothing; foliage leaks
// dappled light.
func (s ShapeType) Transmittance() float64 {
	switch s {
	case ShapeBuilding, ShapeFence:
		return 0
	case ShapeEvergreenTree:
		return 0.30
	case ShapeDeciduousTree:
		return 0.40
	case ShapeHedge:
		return 0.35
	default:
		// Unknown shapes shade like solid structures.
		return 0
	}
}

// Valid reports whether the shape type is one of the known kinds.
func (s ShapeType) Valid() bool {
	switch s {
	case ShapeBuilding, ShapeFence, ShapeEvergreenTree, ShapeDeciduousTree, ShapeHedge:
		return true
	default:
		return false
	}
}

// minDistanceM guards the angular-span math against zero or negative
// obstacle distances.
const minDistanceM = 0.1

// Obstacle is a user-placed object that can shade the plot. Direction is the
// compass bearing from the observation point to the obstacle's center.
type Obstacle struct {
	ID           string    `json:"id"`
	Shape        ShapeType `json:"shape"`
	DirectionDeg float64   `json:"direction"` // bearing from observer, [0, 360)
	DistanceM    float64   `json:"distance"`  // > 0
	HeightM      float64   `json:"height"`    // > 0
	WidthM       float64   `json:"width"`     // > 0
}

// NewObstacle builds a normalized obstacle: the direction is wrapped to
// [0, 360), degenerate dimensions are floored, and a random ID is assigned
// when none is given.
func NewObstacle(id string, shape ShapeType, directionDeg, distanceM, heightM, widthM float64) Obstacle {
	if id == "" {
		id = uuid.NewString()
	}
	if distanceM < minDistanceM {
		distanceM = minDistanceM
	}
	if heightM < 0 {
		heightM = 0
	}
	if widthM < 0 {
		widthM = 0
	}
	return Obstacle{
		ID:           id,
		Shape:        shape,
		DirectionDeg: geo.NormalizeBearing(directionDeg),
		DistanceM:    distanceM,
		HeightM:      heightM,
		WidthM:       widthM,
	}
}
