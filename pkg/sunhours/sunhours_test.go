package sunhours

import (
	"math"
	"testing"
	"time"

	"github.com/verdantlabs/sunfield/pkg/geo"
	"github.com/verdantlabs/sunfield/pkg/shade"
	"github.com/verdantlabs/sunfield/pkg/solarpos"
)

var (
	portland = geo.Coordinates{Latitude: 45.5152, Longitude: -122.6784}
	arctic   = geo.Coordinates{Latitude: 70.0, Longitude: 25.0}

	juneDay = time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)
	decDay  = time.Date(2024, 12, 21, 0, 0, 0, 0, time.UTC)

	testSampling = SamplingConfig{Interval: 15 * time.Minute}
)

// wall is an obstacle wide and tall enough to block a large part of the
// southern sky.
var wall = shade.NewObstacle("wall", shade.ShapeBuilding, 180, 5, 20, 40)

func TestDailyNoObstacles(t *testing.T) {
	data := Daily(portland, juneDay, nil, testSampling)

	if data.TheoreticalHours < 14 || data.TheoreticalHours > 17 {
		t.Errorf("theoretical hours = %.2f, expected ~15.7 at 45.5N in June", data.TheoreticalHours)
	}
	if math.Abs(data.EffectiveHours-data.TheoreticalHours) > 1e-9 {
		t.Errorf("effective %.2f != theoretical %.2f with no obstacles", data.EffectiveHours, data.TheoreticalHours)
	}
	if data.PercentBlocked != 0 {
		t.Errorf("percent blocked = %.2f, expected 0", data.PercentBlocked)
	}
}

func TestDailyWithWall(t *testing.T) {
	data := Daily(portland, decDay, []shade.Obstacle{wall}, testSampling)

	if data.EffectiveHours >= data.TheoreticalHours {
		t.Errorf("effective %.2f not below theoretical %.2f behind a wall", data.EffectiveHours, data.TheoreticalHours)
	}
	if data.PercentBlocked <= 0 || data.PercentBlocked > 100 {
		t.Errorf("percent blocked = %.2f, expected in (0, 100]", data.PercentBlocked)
	}
}

func TestDailyPolarNight(t *testing.T) {
	data := Daily(arctic, decDay, []shade.Obstacle{wall}, testSampling)

	if data.TheoreticalHours != 0 || data.EffectiveHours != 0 {
		t.Errorf("polar night hours = %.2f/%.2f, expected zeros", data.TheoreticalHours, data.EffectiveHours)
	}
	if data.Times.Condition != solarpos.ConditionPolarNight {
		t.Errorf("condition = %v, expected polar night", data.Times.Condition)
	}
}

func TestDailyMidnightSun(t *testing.T) {
	data := Daily(arctic, juneDay, nil, testSampling)

	if data.Times.Condition != solarpos.ConditionMidnightSun {
		t.Fatalf("condition = %v, expected midnight sun", data.Times.Condition)
	}
	if data.TheoreticalHours < 23 {
		t.Errorf("theoretical hours = %.2f, expected ~24 under the midnight sun", data.TheoreticalHours)
	}
}

func TestEffectiveNeverExceedsTheoretical(t *testing.T) {
	obstacles := []shade.Obstacle{
		wall,
		shade.NewObstacle("tree", shade.ShapeDeciduousTree, 120, 8, 10, 6),
		shade.NewObstacle("hedge", shade.ShapeHedge, 250, 4, 2, 10),
	}
	for m := time.January; m <= time.December; m += 2 {
		date := time.Date(2024, m, 10, 0, 0, 0, 0, time.UTC)
		data := Daily(portland, date, obstacles, testSampling)
		if data.EffectiveHours > data.TheoreticalHours+1e-9 {
			t.Errorf("%v: effective %.3f exceeds theoretical %.3f", m, data.EffectiveHours, data.TheoreticalHours)
		}
		if data.PercentBlocked < 0 || data.PercentBlocked > 100 {
			t.Errorf("%v: percent blocked %.2f out of range", m, data.PercentBlocked)
		}
	}
}

func TestDailyAnalysisWindows(t *testing.T) {
	analysis := DailyAnalysis(portland, decDay, []shade.Obstacle{wall}, testSampling)

	if len(analysis.Windows) == 0 {
		t.Fatal("expected at least one shade window behind a 20m wall in December")
	}
	for _, w := range analysis.Windows {
		if w.ObstacleID != "wall" {
			t.Errorf("window obstacle = %q, expected wall", w.ObstacleID)
		}
		if !w.End.After(w.Start) {
			t.Errorf("window end %v not after start %v", w.End, w.Start)
		}
		if w.Intensity != 1 {
			t.Errorf("window intensity = %v, expected 1 for a building", w.Intensity)
		}
	}

	// The analysis totals must agree with the plain daily computation.
	daily := Daily(portland, decDay, []shade.Obstacle{wall}, testSampling)
	if math.Abs(analysis.EffectiveHours-daily.EffectiveHours) > 1e-9 {
		t.Errorf("analysis effective %.3f != daily %.3f", analysis.EffectiveHours, daily.EffectiveHours)
	}
}

func TestDailyAnalysisWindowOrderStable(t *testing.T) {
	// Several walls blocking right up to sundown all close their windows at
	// the same instant; the emitted order must follow the obstacle list, not
	// map iteration.
	walls := []shade.Obstacle{
		shade.NewObstacle("wall-a", shade.ShapeBuilding, 160, 5, 20, 30),
		shade.NewObstacle("wall-b", shade.ShapeBuilding, 180, 5, 20, 30),
		shade.NewObstacle("wall-c", shade.ShapeBuilding, 200, 5, 20, 30),
	}

	reference := DailyAnalysis(portland, decDay, walls, testSampling)
	if len(reference.Windows) < len(walls) {
		t.Fatalf("got %d windows, expected one per wall", len(reference.Windows))
	}

	for run := 0; run < 10; run++ {
		analysis := DailyAnalysis(portland, decDay, walls, testSampling)
		if len(analysis.Windows) != len(reference.Windows) {
			t.Fatalf("run %d: %d windows, reference has %d", run, len(analysis.Windows), len(reference.Windows))
		}
		for i, w := range analysis.Windows {
			if w != reference.Windows[i] {
				t.Fatalf("run %d: window %d = %+v, reference %+v", run, i, w, reference.Windows[i])
			}
		}
	}
}

func TestDailyAnalysisNoObstaclesNoWindows(t *testing.T) {
	analysis := DailyAnalysis(portland, juneDay, nil, testSampling)
	if len(analysis.Windows) != 0 {
		t.Errorf("expected no windows, got %d", len(analysis.Windows))
	}
}

func TestSeasonal(t *testing.T) {
	obstacles := []shade.Obstacle{
		wall,
		shade.NewObstacle("twig", shade.ShapeDeciduousTree, 90, 30, 2, 1),
	}
	start := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 5, 0, 0, 0, 0, time.UTC)

	analysis := Seasonal(portland, start, end, obstacles, testSampling)

	if len(analysis.Days) != 5 {
		t.Fatalf("expected 5 days, got %d", len(analysis.Days))
	}
	if analysis.AvgEffectiveHours > analysis.AvgTheoreticalHours {
		t.Errorf("avg effective %.2f exceeds avg theoretical %.2f", analysis.AvgEffectiveHours, analysis.AvgTheoreticalHours)
	}
	// The wall dwarfs the twig in cumulative weighted shade.
	if analysis.DominantBlocker != "wall" {
		t.Errorf("dominant blocker = %q, expected wall", analysis.DominantBlocker)
	}
}

func TestSeasonalNoBlockers(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	analysis := Seasonal(portland, start, start.AddDate(0, 0, 2), nil, testSampling)

	if analysis.DominantBlocker != "" {
		t.Errorf("dominant blocker = %q, expected none", analysis.DominantBlocker)
	}
	if len(analysis.Days) != 3 {
		t.Errorf("expected 3 days, got %d", len(analysis.Days))
	}
}

func TestSeasonalReversedRange(t *testing.T) {
	start := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	analysis := Seasonal(portland, start, start.AddDate(0, 0, -1), nil, testSampling)
	if len(analysis.Days) != 0 {
		t.Errorf("reversed range produced %d days", len(analysis.Days))
	}
}
