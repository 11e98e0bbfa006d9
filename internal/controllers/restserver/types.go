package restserver

import (
	"time"

	"github.com/verdantlabs/sunfield/pkg/solarpos"
	"github.com/verdantlabs/sunfield/pkg/sunhours"
)

// PositionResponse is the JSON shape for solar position queries
type PositionResponse struct {
	Time     time.Time `json:"time"`
	Altitude float64   `json:"altitude"`
	Azimuth  float64   `json:"azimuth"`
	Daylight bool      `json:"daylight"`
}

// SunTimesResponse is the JSON shape for sunrise/sunset queries
type SunTimesResponse struct {
	Date      string     `json:"date"`
	Sunrise   *time.Time `json:"sunrise,omitempty"`
	Sunset    *time.Time `json:"sunset,omitempty"`
	SolarNoon time.Time  `json:"solar_noon"`
	DayLength float64    `json:"day_length_hours"`
	Condition string     `json:"condition"`
}

// DailyResponse is the JSON shape for daily sun-hour queries
type DailyResponse struct {
	Date             string  `json:"date"`
	TheoreticalHours float64 `json:"theoretical_hours"`
	EffectiveHours   float64 `json:"effective_hours"`
	PercentBlocked   float64 `json:"percent_blocked"`
	Condition        string  `json:"condition"`
}

// WindowResponse describes one contiguous span of shading by an obstacle
type WindowResponse struct {
	ObstacleID string    `json:"obstacle_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Intensity  float64   `json:"intensity"`
}

// AnalysisResponse is the JSON shape for daily shade-window queries
type AnalysisResponse struct {
	DailyResponse
	Windows []WindowResponse `json:"windows"`
}

// SeasonalResponse is the JSON shape for date-range shade analysis
type SeasonalResponse struct {
	Start               string  `json:"start"`
	End                 string  `json:"end"`
	Days                int     `json:"days"`
	AvgTheoreticalHours float64 `json:"avg_theoretical_hours"`
	AvgEffectiveHours   float64 `json:"avg_effective_hours"`
	DominantBlocker     string  `json:"dominant_blocker,omitempty"`
}

// ShadowPolygonResponse describes a single projected shadow in local
// planar coordinates (meters east/north of the site)
type ShadowPolygonResponse struct {
	ObstacleID string       `json:"obstacle_id"`
	Shape      string       `json:"shape"`
	Intensity  float64      `json:"intensity"`
	Points     [][2]float64 `json:"points"`
}

// ShadowsResponse is the JSON shape for shadow projection queries
type ShadowsResponse struct {
	Time     time.Time               `json:"time"`
	Altitude float64                 `json:"altitude"`
	Azimuth  float64                 `json:"azimuth"`
	Shadows  []ShadowPolygonResponse `json:"shadows"`
}

// ExposureRequest is the JSON body for exposure map computation
type ExposureRequest struct {
	MinLat      float64 `json:"min_lat"`
	MinLon      float64 `json:"min_lon"`
	MaxLat      float64 `json:"max_lat"`
	MaxLon      float64 `json:"max_lon"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	ResolutionM float64 `json:"resolution_m,omitempty"`
	SampleDays  int     `json:"sample_days,omitempty"`
}

// ExposureResponse is the JSON shape for a computed exposure grid
type ExposureResponse struct {
	Width         int       `json:"width"`
	Height        int       `json:"height"`
	ResolutionM   float64   `json:"resolution_m"`
	Values        []float64 `json:"values"`
	Min           float64   `json:"min"`
	Max           float64   `json:"max"`
	Mean          float64   `json:"mean"`
	StdDev        float64   `json:"std_dev"`
	ComputeTimeMS int64     `json:"compute_time_ms"`
}

// ErrorResponse is the JSON shape for request failures
type ErrorResponse struct {
	Error string `json:"error"`
}

func toDailyResponse(d sunhours.DailySunData) DailyResponse {
	return DailyResponse{
		Date:             d.Date.Format("2006-01-02"),
		TheoreticalHours: d.TheoreticalHours,
		EffectiveHours:   d.EffectiveHours,
		PercentBlocked:   d.PercentBlocked,
		Condition:        string(d.Times.Condition),
	}
}

func toSunTimesResponse(date time.Time, st solarpos.SunTimes) SunTimesResponse {
	return SunTimesResponse{
		Date:      date.Format("2006-01-02"),
		Sunrise:   st.Sunrise,
		Sunset:    st.Sunset,
		SolarNoon: st.SolarNoon,
		DayLength: st.DayLength,
		Condition: string(st.Condition),
	}
}
