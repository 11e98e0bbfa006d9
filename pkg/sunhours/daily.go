// Package sunhours integrates solar position and obstacle blocking over time:
// theoretical and effective sun hours for a day, shade windows showing when
// each obstacle blocks the plot, and date-range summaries with the dominant
// blocker.
package sunhours

import (
	"time"

	"github.com/verdantlabs/sunfield/pkg/geo"
	"github.com/verdantlabs/sunfield/pkg/shade"
	"github.com/verdantlabs/sunfield/pkg/solarpos"
)

// SamplingConfig controls the time resolution of the integrator. It is
// threaded through every call so tests can trade accuracy for speed.
type SamplingConfig struct {
	Interval time.Duration
}

// DefaultSampling samples every 5 minutes, 288 samples per day.
func DefaultSampling() SamplingConfig {
	return SamplingConfig{Interval: 5 * time.Minute}
}

func (c SamplingConfig) interval() time.Duration {
	if c.Interval <= 0 {
		return 5 * time.Minute
	}
	return c.Interval
}

// DailySunData summarizes one day of sunlight at a location.
type DailySunData struct {
	Date             time.Time         `json:"date"`
	TheoreticalHours float64           `json:"theoreticalHours"`
	EffectiveHours   float64           `json:"effectiveHours"` // <= TheoreticalHours
	PercentBlocked   float64           `json:"percentBlocked"` // [0, 100]
	Times            solarpos.SunTimes `json:"sunTimes"`
}

// Daily samples the day at the configured interval and integrates theoretical
// sun hours (sun above the horizon) and effective sun hours (scaled by the
// per-sample effective sunlight multiplier). Polar nights short-circuit to
// zeros without sampling.
func Daily(c geo.Coordinates, date time.Time, obstacles []shade.Obstacle, cfg SamplingConfig) DailySunData {
	st := solarpos.Times(c, date)
	data := DailySunData{Date: date, Times: st}
	if st.Condition == solarpos.ConditionPolarNight {
		return data
	}

	interval := cfg.interval()
	samples := int(24 * time.Hour / interval)
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	var sunny, effective float64
	for i := 0; i < samples; i++ {
		pos := solarpos.Position(c, start.Add(time.Duration(i)*interval))
		if pos.Altitude <= 0 {
			continue
		}
		sunny++
		effective += shade.EffectiveSunlight(pos, obstacles)
	}

	hoursPerSample := interval.Hours()
	data.TheoreticalHours = sunny * hoursPerSample
	data.EffectiveHours = effective * hoursPerSample
	data.PercentBlocked = percentBlocked(data.TheoreticalHours, data.EffectiveHours)
	return data
}

// percentBlocked converts a theoretical/effective hour pair into a bounded
// blockage percentage.
func percentBlocked(theoretical, effective float64) float64 {
	if theoretical <= 0 {
		return 0
	}
	return geo.Clamp((1-effective/theoretical)*100, 0, 100)
}
