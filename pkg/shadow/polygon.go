// Package shadow projects ground shadows for garden obstacles. Shadows are
// computed in a planar frame centered on the observation point, x pointing
// east and y pointing north, in meters. The resulting polygons are used for
// plot visualization and for point-containment tests by the exposure grid.
package shadow

import "github.com/verdantlabs/sunfield/pkg/shade"

// Point is a position in the observer plane: meters east (X) and north (Y)
// of the observation point.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polygon is the ground outline of one obstacle's shadow at a single sun
// position. Vertices are ordered counter-clockwise. Polygons are recomputed
// for every (obstacle, sun position, slope) combination and never cached.
type Polygon struct {
	ObstacleID string          `json:"obstacleId"`
	Shape      shade.ShapeType `json:"shape"`
	Points     []Point         `json:"points"`
	Intensity  float64         `json:"shadeIntensity"` // [0, 1]
}

// Contains reports whether p lies inside the polygon, by ray casting.
func (pg *Polygon) Contains(p Point) bool {
	n := len(pg.Points)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := pg.Points[i], pg.Points[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// area returns the signed area of the polygon; positive means the vertices
// run counter-clockwise.
func (pg *Polygon) area() float64 {
	n := len(pg.Points)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := pg.Points[j], pg.Points[i]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}
