package sunhours

import (
	"sort"
	"time"

	"github.com/verdantlabs/sunfield/pkg/geo"
	"github.com/verdantlabs/sunfield/pkg/shade"
	"github.com/verdantlabs/sunfield/pkg/solarpos"
)

// ShadeWindow is a contiguous span of the day during which one obstacle
// blocks the sun at a constant intensity.
type ShadeWindow struct {
	ObstacleID string    `json:"obstacleId"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Intensity  float64   `json:"intensity"` // [0, 1]
}

// DailyShadeAnalysis is a day's sun-hour summary plus the shade windows of
// every obstacle.
type DailyShadeAnalysis struct {
	DailySunData
	Windows []ShadeWindow `json:"shadeWindows,omitempty"`
}

// DailyAnalysis integrates one day like Daily and additionally detects shade
// windows with a stateful scan: a window opens when an obstacle starts
// blocking, and closes when it stops, when its intensity changes, or when
// the day ends or the sun goes down.
func DailyAnalysis(c geo.Coordinates, date time.Time, obstacles []shade.Obstacle, cfg SamplingConfig) DailyShadeAnalysis {
	st := solarpos.Times(c, date)
	analysis := DailyShadeAnalysis{DailySunData: DailySunData{Date: date, Times: st}}
	if st.Condition == solarpos.ConditionPolarNight {
		return analysis
	}

	interval := cfg.interval()
	samples := int(24 * time.Hour / interval)
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	// The fold carries each obstacle's currently open window, keyed by
	// obstacle index so duplicate IDs cannot collide.
	open := make(map[int]*ShadeWindow)

	var sunny, effective float64
	var ts time.Time
	for i := 0; i < samples; i++ {
		ts = start.Add(time.Duration(i) * interval)
		pos := solarpos.Position(c, ts)

		if pos.Altitude <= 0 {
			analysis.Windows = closeAll(analysis.Windows, open, ts)
			continue
		}
		sunny++
		effective += shade.EffectiveSunlight(pos, obstacles)

		for j := range obstacles {
			blocked, intensity := shade.Blocked(pos, obstacles[j])
			w := open[j]
			switch {
			case blocked && w == nil:
				open[j] = &ShadeWindow{
					ObstacleID: obstacles[j].ID,
					Start:      ts,
					Intensity:  intensity,
				}
			case blocked && w.Intensity != intensity:
				w.End = ts
				analysis.Windows = append(analysis.Windows, *w)
				open[j] = &ShadeWindow{
					ObstacleID: obstacles[j].ID,
					Start:      ts,
					Intensity:  intensity,
				}
			case !blocked && w != nil:
				w.End = ts
				analysis.Windows = append(analysis.Windows, *w)
				delete(open, j)
			}
		}
	}
	analysis.Windows = closeAll(analysis.Windows, open, ts.Add(interval))

	hoursPerSample := interval.Hours()
	analysis.TheoreticalHours = sunny * hoursPerSample
	analysis.EffectiveHours = effective * hoursPerSample
	analysis.PercentBlocked = percentBlocked(analysis.TheoreticalHours, analysis.EffectiveHours)
	return analysis
}

// closeAll flushes every open window at the given instant, in obstacle
// order so the output does not depend on map iteration.
func closeAll(windows []ShadeWindow, open map[int]*ShadeWindow, ts time.Time) []ShadeWindow {
	keys := make([]int, 0, len(open))
	for k := range open {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	for _, k := range keys {
		w := open[k]
		w.End = ts
		windows = append(windows, *w)
		delete(open, k)
	}
	return windows
}
