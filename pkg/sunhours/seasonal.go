package sunhours

import (
	"time"

	"github.com/verdantlabs/sunfield/pkg/geo"
	"github.com/verdantlabs/sunfield/pkg/shade"
)

// ShadeAnalysis aggregates daily shade analyses over a date range.
type ShadeAnalysis struct {
	Start               time.Time            `json:"start"`
	End                 time.Time            `json:"end"`
	AvgTheoreticalHours float64              `json:"avgTheoreticalHours"`
	AvgEffectiveHours   float64              `json:"avgEffectiveHours"`
	Days                []DailyShadeAnalysis `json:"days"`
	DominantBlocker     string               `json:"dominantBlocker,omitempty"`
}

// Seasonal analyzes every whole day in [start, end], averages the
// theoretical and effective hours, and names the dominant blocker: the
// obstacle with the largest cumulative duration-times-intensity over all its
// shade windows in the range. The result is empty when no obstacle blocks.
func Seasonal(c geo.Coordinates, start, end time.Time, obstacles []shade.Obstacle, cfg SamplingConfig) ShadeAnalysis {
	analysis := ShadeAnalysis{Start: start, End: end}
	if end.Before(start) {
		return analysis
	}

	weighted := make(map[string]float64)

	var sumTheoretical, sumEffective float64
	for d := dateOnly(start); !d.After(dateOnly(end)); d = d.AddDate(0, 0, 1) {
		day := DailyAnalysis(c, d, obstacles, cfg)
		analysis.Days = append(analysis.Days, day)
		sumTheoretical += day.TheoreticalHours
		sumEffective += day.EffectiveHours
		for _, w := range day.Windows {
			weighted[w.ObstacleID] += w.End.Sub(w.Start).Hours() * w.Intensity
		}
	}

	if n := float64(len(analysis.Days)); n > 0 {
		analysis.AvgTheoreticalHours = sumTheoretical / n
		analysis.AvgEffectiveHours = sumEffective / n
	}

	best := 0.0
	for id, total := range weighted {
		if total > best || (total == best && best > 0 && id < analysis.DominantBlocker) {
			best = total
			analysis.DominantBlocker = id
		}
	}
	return analysis
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
