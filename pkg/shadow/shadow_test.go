package shadow

import (
	"math"
	"testing"

	"github.com/verdantlabs/sunfield/pkg/shade"
	"github.com/verdantlabs/sunfield/pkg/slope"
	"github.com/verdantlabs/sunfield/pkg/solarpos"
)

func sun(altitude, azimuth float64) solarpos.SolarPosition {
	return solarpos.SolarPosition{Altitude: altitude, Azimuth: azimuth}
}

func TestProjectBelowHorizon(t *testing.T) {
	o := shade.NewObstacle("b", shade.ShapeBuilding, 180, 10, 5, 4)
	if pg := Project(o, sun(0, 180), nil); pg != nil {
		t.Error("expected nil polygon at zero altitude")
	}
	if pg := Project(o, sun(-10, 180), nil); pg != nil {
		t.Error("expected nil polygon below horizon")
	}
}

func TestProjectBuildingQuad(t *testing.T) {
	// Sun due south at 45 degrees: a 6m building casts a 6m shadow due north.
	o := shade.NewObstacle("b", shade.ShapeBuilding, 180, 10, 6, 4)
	pg := Project(o, sun(45, 180), nil)
	if pg == nil {
		t.Fatal("expected a polygon")
	}
	if len(pg.Points) != 4 {
		t.Fatalf("quadrilateral has %d points", len(pg.Points))
	}
	if pg.Intensity != 1 {
		t.Errorf("building intensity = %v, expected 1", pg.Intensity)
	}
	if pg.area() <= 0 {
		t.Errorf("signed area = %v, expected counter-clockwise (positive)", pg.area())
	}

	// All vertices sit around the base at (0, -10) and extend north by ~6m.
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range pg.Points {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	if math.Abs(minY-(-10)) > 0.01 {
		t.Errorf("near edge at y=%.2f, expected -10", minY)
	}
	if math.Abs(maxY-(-4)) > 0.01 {
		t.Errorf("far edge at y=%.2f, expected -4", maxY)
	}
}

func TestProjectZenithSun(t *testing.T) {
	// With the sun at (or numerically just past) the zenith, a shadow
	// collapses under the obstacle instead of running out to the length cap
	// or flipping toward the sun.
	building := shade.NewObstacle("b", shade.ShapeBuilding, 180, 10, 3, 4)
	tree := shade.NewObstacle("t", shade.ShapeEvergreenTree, 90, 10, 8, 6)

	for _, altitude := range []float64{90, 90.42} {
		for _, o := range []shade.Obstacle{building, tree} {
			pg := Project(o, sun(altitude, 180), nil)
			if pg == nil {
				t.Fatalf("alt %v: expected a polygon for %s", altitude, o.ID)
			}
			base := Base(o)
			reach := o.WidthM/2 + 0.01
			for _, p := range pg.Points {
				d := math.Hypot(p.X-base.X, p.Y-base.Y)
				if d > reach {
					t.Errorf("alt %v: %s shadow vertex %.2f m from its base, expected within %.2f m",
						altitude, o.ID, d, reach)
				}
			}
		}
	}
}

func TestShadowLengthCap(t *testing.T) {
	// A tall building under a grazing sun: the shadow must stay capped.
	o := shade.NewObstacle("b", shade.ShapeBuilding, 0, 5, 30, 4)
	pg := Project(o, sun(0.5, 0), nil)
	if pg == nil {
		t.Fatal("expected a polygon")
	}
	for _, p := range pg.Points {
		if d := math.Hypot(p.X, p.Y); d > maxShadowLengthM+o.DistanceM+o.WidthM {
			t.Errorf("vertex %.1f m out, cap not applied", d)
		}
	}
}

func TestProjectTree(t *testing.T) {
	o := shade.NewObstacle("t", shade.ShapeDeciduousTree, 180, 12, 8, 6)
	pg := Project(o, sun(40, 180), nil)
	if pg == nil {
		t.Fatal("expected a polygon")
	}
	if len(pg.Points) != treeVertices {
		t.Fatalf("tree shadow has %d points, expected %d", len(pg.Points), treeVertices)
	}
	if math.Abs(pg.Intensity-0.6) > 1e-9 {
		t.Errorf("deciduous intensity = %v, expected 0.6", pg.Intensity)
	}
	if pg.area() <= 0 {
		t.Errorf("signed area = %v, expected counter-clockwise (positive)", pg.area())
	}

	// The outline must be elongated along the shadow direction (north here):
	// at least as long north-south as it is wide east-west.
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range pg.Points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	if (maxY - minY) < (maxX - minX) {
		t.Errorf("shadow extent %.2f x %.2f not elongated along shadow direction", maxX-minX, maxY-minY)
	}
}

func TestSlopeAdjustment(t *testing.T) {
	o := shade.NewObstacle("b", shade.ShapeBuilding, 180, 10, 6, 4)
	pos := sun(30, 180) // shadow falls north

	flat := Project(o, pos, nil)
	downhill := Project(o, pos, &slope.Slope{AngleDeg: 20, AspectDeg: 0})   // north-facing: shadow runs downhill
	uphill := Project(o, pos, &slope.Slope{AngleDeg: 20, AspectDeg: 180})  // south-facing: shadow climbs
	steep := Project(o, pos, &slope.Slope{AngleDeg: 44.9, AspectDeg: 180}) // clamp floor

	length := func(pg *Polygon) float64 {
		minY, maxY := math.Inf(1), math.Inf(-1)
		for _, p := range pg.Points {
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
		return maxY - minY
	}

	if length(downhill) <= length(flat) {
		t.Errorf("downhill length %.2f not longer than flat %.2f", length(downhill), length(flat))
	}
	if length(uphill) >= length(flat) {
		t.Errorf("uphill length %.2f not shorter than flat %.2f", length(uphill), length(flat))
	}
	if length(steep) < length(flat)*minSlopeScale-0.01 {
		t.Errorf("steep uphill length %.2f below the %.1fx clamp", length(steep), minSlopeScale)
	}
	if length(downhill) > length(flat)*maxSlopeScale+0.01 {
		t.Errorf("downhill length %.2f above the %.1fx clamp", length(downhill), maxSlopeScale)
	}
}

func TestNearFlatSlopeMatchesFlat(t *testing.T) {
	o := shade.NewObstacle("b", shade.ShapeFence, 90, 5, 2, 8)
	pos := sun(25, 90)
	flat := Project(o, pos, nil)
	almost := Project(o, pos, &slope.Slope{AngleDeg: 0.4, AspectDeg: 270})
	for i := range flat.Points {
		if flat.Points[i] != almost.Points[i] {
			t.Fatalf("vertex %d differs between flat and 0.4 degree slope", i)
		}
	}
}

func TestProjectAll(t *testing.T) {
	obstacles := []shade.Obstacle{
		shade.NewObstacle("a", shade.ShapeBuilding, 180, 10, 5, 4),
		shade.NewObstacle("b", shade.ShapeHedge, 90, 5, 2, 6),
	}

	up := ProjectAll(obstacles, sun(35, 200), nil)
	if len(up) != 2 {
		t.Errorf("expected 2 polygons, got %d", len(up))
	}

	down := ProjectAll(obstacles, sun(-5, 200), nil)
	if len(down) != 0 {
		t.Errorf("expected no polygons below horizon, got %d", len(down))
	}
}

func TestContains(t *testing.T) {
	square := &Polygon{Points: []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}}

	tests := []struct {
		name   string
		p      Point
		inside bool
	}{
		{"center", Point{5, 5}, true},
		{"outside east", Point{15, 5}, false},
		{"outside north", Point{5, 11}, false},
		{"well outside", Point{-3, -3}, false},
		{"near corner inside", Point{9.9, 9.9}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := square.Contains(tt.p); got != tt.inside {
				t.Errorf("Contains(%+v) = %v, expected %v", tt.p, got, tt.inside)
			}
		})
	}

	degenerate := &Polygon{Points: []Point{{0, 0}, {1, 1}}}
	if degenerate.Contains(Point{0.5, 0.5}) {
		t.Error("a two-point polygon contains nothing")
	}
}

func TestShadowContainsPointBehindObstacle(t *testing.T) {
	// Sun in the southwest: the shadow of a building 10m east must cover
	// ground to the building's northeast.
	o := shade.NewObstacle("b", shade.ShapeBuilding, 90, 10, 8, 6)
	pg := Project(o, sun(30, 225), nil)
	if pg == nil {
		t.Fatal("expected a polygon")
	}
	base := Base(o)
	behind := Point{X: base.X + 3, Y: base.Y + 3}
	if !pg.Contains(behind) {
		t.Errorf("point %+v northeast of the building not in its shadow", behind)
	}
}
