package shadow

import (
	"math"

	"github.com/verdantlabs/sunfield/pkg/geo"
	"github.com/verdantlabs/sunfield/pkg/shade"
	"github.com/verdantlabs/sunfield/pkg/slope"
	"github.com/verdantlabs/sunfield/pkg/solarpos"
)

const (
	// maxShadowLengthM caps the ground shadow length so a near-horizon sun
	// does not produce degenerate kilometer-long polygons.
	maxShadowLengthM = 100.0

	// treeVertices is the number of polygon points approximating a tree
	// canopy's elliptical shadow.
	treeVertices = 16

	// minSlopeScale and maxSlopeScale bound the slope length adjustment so
	// steep slopes cannot distort shadows without limit.
	minSlopeScale = 0.5
	maxSlopeScale = 2.0
)

// Base returns the obstacle's ground position in the observer plane.
func Base(o shade.Obstacle) Point {
	dirRad := geo.DegToRad(o.DirectionDeg)
	return Point{
		X: o.DistanceM * math.Sin(dirRad),
		Y: o.DistanceM * math.Cos(dirRad),
	}
}

// Project returns the ground shadow cast by the obstacle at the given sun
// position, or nil when the sun is at or below the horizon. When a slope is
// supplied, the shadow lengthens falling downhill and shortens climbing
// uphill, within [0.5x, 2x] of the flat-ground length.
func Project(o shade.Obstacle, pos solarpos.SolarPosition, s *slope.Slope) *Polygon {
	if pos.Altitude <= 0 {
		return nil
	}

	// Past 90° tan flips negative; a sun at the zenith casts no shadow, not
	// a maximal one.
	altRad := geo.DegToRad(math.Min(pos.Altitude, 90))
	tanAlt := math.Tan(altRad)

	// The shadow falls directly away from the sun.
	azRad := geo.DegToRad(pos.Azimuth)
	dir := Point{X: -math.Sin(azRad), Y: -math.Cos(azRad)}
	shadowBearing := geo.NormalizeBearing(pos.Azimuth + 180)

	scale := 1.0
	if s != nil && s.AngleDeg >= 0.5 {
		// Alignment of the shadow with the downhill direction decides
		// whether it stretches or compresses.
		alignment := math.Cos(geo.DegToRad(shadowBearing - geo.NormalizeBearing(s.AspectDeg)))
		scale = geo.Clamp(1+math.Tan(geo.DegToRad(s.AngleDeg))*alignment, minSlopeScale, maxSlopeScale)
	}

	base := Base(o)
	_, intensity := blockedIntensity(o)

	var points []Point
	switch o.Shape {
	case shade.ShapeDeciduousTree, shade.ShapeEvergreenTree:
		points = treeShadow(base, dir, o, tanAlt, scale)
	case shade.ShapeBuilding, shade.ShapeFence, shade.ShapeHedge:
		points = quadShadow(base, dir, o.WidthM/2, shadowLength(o.HeightM, tanAlt)*scale)
	default:
		points = quadShadow(base, dir, o.WidthM/2, shadowLength(o.HeightM, tanAlt)*scale)
	}

	return &Polygon{
		ObstacleID: o.ID,
		Shape:      o.Shape,
		Points:     points,
		Intensity:  intensity,
	}
}

// ProjectAll maps an obstacle list to its shadow polygons, dropping
// obstacles that cast none. With the sun below the horizon the result is
// empty.
func ProjectAll(obstacles []shade.Obstacle, pos solarpos.SolarPosition, s *slope.Slope) []*Polygon {
	polygons := make([]*Polygon, 0, len(obstacles))
	for i := range obstacles {
		if pg := Project(obstacles[i], pos, s); pg != nil {
			polygons = append(polygons, pg)
		}
	}
	return polygons
}

// shadowLength returns the capped ground length of a shadow cast by an
// object of the given height. tan is negative only past the zenith, where
// the shadow has shrunk to nothing; near the horizon it approaches zero
// from above and the cap takes over.
func shadowLength(heightM, tanAlt float64) float64 {
	if tanAlt < 0 {
		return 0
	}
	return math.Min(heightM/tanAlt, maxShadowLengthM)
}

// blockedIntensity returns the shade intensity the obstacle casts inside its
// shadow outline.
func blockedIntensity(o shade.Obstacle) (shade.ShapeType, float64) {
	return o.Shape, 1 - o.Shape.Transmittance()
}

// quadShadow builds the quadrilateral shadow of a wall-like obstacle: the
// two base corners at +/- halfWidth perpendicular to the shadow direction,
// plus their projections. Vertices run counter-clockwise.
func quadShadow(base, dir Point, halfWidth, length float64) []Point {
	perp := Point{X: dir.Y, Y: -dir.X}
	c1 := Point{X: base.X + halfWidth*perp.X, Y: base.Y + halfWidth*perp.Y}
	c2 := Point{X: base.X - halfWidth*perp.X, Y: base.Y - halfWidth*perp.Y}
	return []Point{
		c1,
		{X: c1.X + length*dir.X, Y: c1.Y + length*dir.Y},
		{X: c2.X + length*dir.X, Y: c2.Y + length*dir.Y},
		c2,
	}
}

// treeShadow approximates a tree canopy as a circle of radius width/2
// centered at (height - radius), and projects each canopy-edge point
// individually along the shadow direction. Down-sun edge points pick up an
// extra offset, elongating the outline into an ellipse-like shape.
func treeShadow(base, dir Point, o shade.Obstacle, tanAlt, scale float64) []Point {
	radius := o.WidthM / 2
	canopyHeight := math.Max(o.HeightM-radius, 0)
	drop := shadowLength(canopyHeight, tanAlt) * scale
	stretch := shadowLength(radius, tanAlt) * scale

	points := make([]Point, treeVertices)
	for i := 0; i < treeVertices; i++ {
		theta := 2 * math.Pi * float64(i) / treeVertices
		ex, ey := math.Cos(theta), math.Sin(theta)

		// How far down-sun this edge point faces, in [0, 1].
		facing := math.Max(0, ex*dir.X+ey*dir.Y)
		offset := drop + facing*stretch

		points[i] = Point{
			X: base.X + radius*ex + offset*dir.X,
			Y: base.Y + radius*ey + offset*dir.Y,
		}
	}
	return points
}
