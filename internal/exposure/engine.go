package exposure

import (
	"time"

	"github.com/verdantlabs/sunfield/pkg/geo"
	"github.com/verdantlabs/sunfield/pkg/shade"
	"github.com/verdantlabs/sunfield/pkg/shadow"
	"github.com/verdantlabs/sunfield/pkg/slope"
	"github.com/verdantlabs/sunfield/pkg/solarpos"
)

// shadeThreshold is the shadow intensity above which a cell under a polygon
// no longer counts as sunny.
const shadeThreshold = 0.5

// frame is one intra-day sample instant with the shadow polygons active at
// that moment. Frames are only built for instants with the sun up.
type frame struct {
	polygons []*shadow.Polygon
}

// dayFrames holds the sun-up frames of one representative sample day.
type dayFrames struct {
	frames           []frame
	theoreticalHours float64
}

// sampleDays picks n representative days across [start, end]: the midpoint
// of each of n equal subintervals, so seasonal variation is captured without
// sampling every day. Consecutive duplicates from short ranges are merged.
func sampleDays(start, end time.Time, n int) []time.Time {
	if end.Before(start) {
		start, end = end, start
	}
	if n < 1 {
		n = 1
	}
	span := end.Sub(start)

	days := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		mid := start.Add(span * time.Duration(2*i+1) / time.Duration(2*n))
		day := time.Date(mid.Year(), mid.Month(), mid.Day(), 0, 0, 0, 0, time.UTC)
		if len(days) == 0 || !day.Equal(days[len(days)-1]) {
			days = append(days, day)
		}
	}
	return days
}

// buildFrames precomputes, for every sample day, the sun-up sample instants
// and their shadow polygons. Shadows depend only on the sun position, not on
// the queried cell, so they are shared across the whole grid.
func buildFrames(center geo.Coordinates, days []time.Time, obstacles []shade.Obstacle, sl *slope.Slope, interval time.Duration) []dayFrames {
	samplesPerDay := int(24 * time.Hour / interval)
	out := make([]dayFrames, 0, len(days))

	for _, day := range days {
		df := dayFrames{}
		if solarpos.Condition(center, day) != solarpos.ConditionPolarNight {
			for i := 0; i < samplesPerDay; i++ {
				pos := solarpos.Position(center, day.Add(time.Duration(i)*interval))
				if pos.Altitude <= 0 {
					continue
				}
				df.frames = append(df.frames, frame{polygons: shadow.ProjectAll(obstacles, pos, sl)})
			}
		}
		df.theoreticalHours = float64(len(df.frames)) * interval.Hours()
		out = append(out, df)
	}
	return out
}

// planarPoint maps a grid cell to the obstacle plane: meters east and north
// of the bounds center, where the obstacle set is anchored.
func planarPoint(g *Grid, row, col int) shadow.Point {
	center := g.Bounds.Center()
	cc := g.CellCenter(row, col)
	return shadow.Point{
		X: (cc.Longitude - center.Longitude) * geo.MetersPerDegreeLon(center.Latitude),
		Y: (cc.Latitude - center.Latitude) * geo.MetersPerDegreeLat,
	}
}

// cellHours returns the average daily sun hours for one cell: per sample
// day, the hours during which the sun is up and the cell is not covered by
// any shadow polygon denser than the shade threshold.
func cellHours(pt shadow.Point, days []dayFrames, interval time.Duration) float64 {
	if len(days) == 0 {
		return 0
	}

	total := 0.0
	for _, df := range days {
		sunny := 0
		for _, f := range df.frames {
			if !shaded(pt, f.polygons) {
				sunny++
			}
		}
		total += float64(sunny) * interval.Hours()
	}
	return total / float64(len(days))
}

// shaded reports whether the point sits under a shadow dense enough to block
// effective sunlight.
func shaded(pt shadow.Point, polygons []*shadow.Polygon) bool {
	for _, pg := range polygons {
		if pg.Intensity > shadeThreshold && pg.Contains(pt) {
			return true
		}
	}
	return false
}

// avgTheoreticalHours is the mean of the per-sample-day theoretical hours.
func avgTheoreticalHours(days []dayFrames) float64 {
	if len(days) == 0 {
		return 0
	}
	sum := 0.0
	for _, df := range days {
		sum += df.theoreticalHours
	}
	return sum / float64(len(days))
}
