package solarpos

import (
	"time"

	"github.com/sj14/astral/pkg/astral"
	"github.com/verdantlabs/sunfield/pkg/geo"
)

// PolarCondition classifies a day at a location by its sunrise/sunset
// behavior.
type PolarCondition string

const (
	// ConditionNormal means the sun rises and sets on this day.
	ConditionNormal PolarCondition = "normal"

	// ConditionMidnightSun means the sun never sets (polar day).
	ConditionMidnightSun PolarCondition = "midnight-sun"

	// ConditionPolarNight means the sun never rises.
	ConditionPolarNight PolarCondition = "polar-night"
)

// SunTimes describes the solar events of one day. Sunrise and Sunset are nil
// exactly when Condition is not ConditionNormal.
type SunTimes struct {
	Sunrise   *time.Time     `json:"sunrise,omitempty"`
	Sunset    *time.Time     `json:"sunset,omitempty"`
	SolarNoon time.Time      `json:"solarNoon"`
	DayLength float64        `json:"dayLength"` // hours
	Condition PolarCondition `json:"condition"`
}

// Times returns sunrise, sunset, solar noon, and day length for the given
// date. When the ephemeris reports no sunrise/sunset event, the polar
// ambiguity is resolved by the sun's altitude at solar noon: above the
// horizon means midnight sun, otherwise polar night.
func Times(c geo.Coordinates, date time.Time) SunTimes {
	noon := SolarNoon(c, date)
	observer := astral.Observer{Latitude: c.Latitude, Longitude: c.Longitude}

	sunrise, riseErr := astral.Sunrise(observer, date)
	sunset, setErr := astral.Sunset(observer, date)
	if riseErr != nil || setErr != nil {
		if Position(c, noon).Altitude > 0 {
			return SunTimes{SolarNoon: noon, DayLength: 24, Condition: ConditionMidnightSun}
		}
		return SunTimes{SolarNoon: noon, DayLength: 0, Condition: ConditionPolarNight}
	}

	length := sunset.Sub(sunrise).Hours()
	if length < 0 {
		length += 24
	}
	return SunTimes{
		Sunrise:   &sunrise,
		Sunset:    &sunset,
		SolarNoon: noon,
		DayLength: length,
		Condition: ConditionNormal,
	}
}

// Condition reports whether the given date has a normal sunrise/sunset, a
// midnight sun, or a polar night.
func Condition(c geo.Coordinates, date time.Time) PolarCondition {
	return Times(c, date).Condition
}

// SolarNoon returns the instant the sun crosses the local meridian on the
// given date. Noon in UTC minutes is 720 shifted by longitude (4 min/degree)
// and the equation of time.
func SolarNoon(c geo.Coordinates, date time.Time) time.Time {
	ref := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, time.UTC)
	noonMin := 720 - 4*c.Longitude - equationOfTime(julianCenturies(ref))
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.Add(time.Duration(noonMin * float64(time.Minute)))
}
