package restserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/verdantlabs/sunfield/internal/exposure"
	"github.com/verdantlabs/sunfield/pkg/geo"
	"github.com/verdantlabs/sunfield/pkg/shadow"
	"github.com/verdantlabs/sunfield/pkg/solarpos"
	"github.com/verdantlabs/sunfield/pkg/sunhours"
)

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{controller: ctrl}
}

func minuteDuration(minutes int) time.Duration {
	return time.Duration(minutes) * time.Minute
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// parseTime reads an RFC 3339 "time" query parameter, defaulting to now.
func parseTime(req *http.Request) (time.Time, error) {
	raw := req.URL.Query().Get("time")
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse(time.RFC3339, raw)
}

// parseDate reads a YYYY-MM-DD query parameter, defaulting to today when
// the parameter is absent.
func parseDate(req *http.Request, key string) (time.Time, error) {
	raw := req.URL.Query().Get(key)
	if raw == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse("2006-01-02", raw)
}

// site returns the location to compute for, honoring optional lat/lon
// query overrides.
func (h *Handlers) site(req *http.Request) (geo.Coordinates, error) {
	coords := h.controller.Site.Coordinates()
	q := req.URL.Query()
	if raw := q.Get("lat"); raw != "" {
		lat, err := strconv.ParseFloat(raw, 64)
		if err != nil || lat < -90 || lat > 90 {
			return coords, errBadCoordinate
		}
		coords.Latitude = lat
	}
	if raw := q.Get("lon"); raw != "" {
		lon, err := strconv.ParseFloat(raw, 64)
		if err != nil || lon < -180 || lon > 180 {
			return coords, errBadCoordinate
		}
		coords.Longitude = lon
	}
	return coords, nil
}

var errBadCoordinate = errors.New("lat/lon must be valid coordinates")

// GetHealth reports service liveness
func (h *Handlers) GetHealth(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetPosition handles requests for the sun's position at a point in time
func (h *Handlers) GetPosition(w http.ResponseWriter, req *http.Request) {
	coords, err := h.site(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	at, err := parseTime(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "time must be RFC 3339")
		return
	}

	pos := solarpos.Position(coords, at)
	writeJSON(w, http.StatusOK, PositionResponse{
		Time:     at,
		Altitude: pos.Altitude,
		Azimuth:  pos.Azimuth,
		Daylight: pos.Altitude > 0,
	})
}

// GetSunTimes handles requests for sunrise/sunset/solar noon on a date
func (h *Handlers) GetSunTimes(w http.ResponseWriter, req *http.Request) {
	coords, err := h.site(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	date, err := parseDate(req, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	writeJSON(w, http.StatusOK, toSunTimesResponse(date, solarpos.Times(coords, date)))
}

// GetDaily handles requests for daily theoretical and effective sun hours
func (h *Handlers) GetDaily(w http.ResponseWriter, req *http.Request) {
	coords, err := h.site(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	date, err := parseDate(req, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	daily := sunhours.Daily(coords, date, h.controller.Obstacles, h.controller.Sampling)
	writeJSON(w, http.StatusOK, toDailyResponse(daily))
}

// GetAnalysis handles requests for a day's shade windows
func (h *Handlers) GetAnalysis(w http.ResponseWriter, req *http.Request) {
	coords, err := h.site(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	date, err := parseDate(req, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	analysis := sunhours.DailyAnalysis(coords, date, h.controller.Obstacles, h.controller.Sampling)

	resp := AnalysisResponse{
		DailyResponse: toDailyResponse(analysis.DailySunData),
		Windows:       make([]WindowResponse, len(analysis.Windows)),
	}
	for i, win := range analysis.Windows {
		resp.Windows[i] = WindowResponse{
			ObstacleID: win.ObstacleID,
			Start:      win.Start,
			End:        win.End,
			Intensity:  win.Intensity,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetSeasonal handles requests for shade analysis across a date range
func (h *Handlers) GetSeasonal(w http.ResponseWriter, req *http.Request) {
	coords, err := h.site(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	start, err := parseDate(req, "start")
	if err != nil {
		writeError(w, http.StatusBadRequest, "start must be YYYY-MM-DD")
		return
	}
	end, err := parseDate(req, "end")
	if err != nil {
		writeError(w, http.StatusBadRequest, "end must be YYYY-MM-DD")
		return
	}
	if end.Before(start) {
		writeError(w, http.StatusBadRequest, "end must not precede start")
		return
	}

	analysis := sunhours.Seasonal(coords, start, end, h.controller.Obstacles, h.controller.Sampling)
	writeJSON(w, http.StatusOK, SeasonalResponse{
		Start:               start.Format("2006-01-02"),
		End:                 end.Format("2006-01-02"),
		Days:                len(analysis.Days),
		AvgTheoreticalHours: analysis.AvgTheoreticalHours,
		AvgEffectiveHours:   analysis.AvgEffectiveHours,
		DominantBlocker:     analysis.DominantBlocker,
	})
}

// GetShadows handles requests for projected shadow polygons at a point in time
func (h *Handlers) GetShadows(w http.ResponseWriter, req *http.Request) {
	coords, err := h.site(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	at, err := parseTime(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "time must be RFC 3339")
		return
	}

	pos := solarpos.Position(coords, at)
	polygons := shadow.ProjectAll(h.controller.Obstacles, pos, h.controller.siteSlope())

	resp := ShadowsResponse{
		Time:     at,
		Altitude: pos.Altitude,
		Azimuth:  pos.Azimuth,
		Shadows:  make([]ShadowPolygonResponse, len(polygons)),
	}
	for i, pg := range polygons {
		points := make([][2]float64, len(pg.Points))
		for j, pt := range pg.Points {
			points[j] = [2]float64{pt.X, pt.Y}
		}
		resp.Shadows[i] = ShadowPolygonResponse{
			ObstacleID: pg.ObstacleID,
			Shape:      string(pg.Shape),
			Intensity:  pg.Intensity,
			Points:     points,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// PostExposure handles requests to compute a spatial exposure grid
func (h *Handlers) PostExposure(w http.ResponseWriter, req *http.Request) {
	var body ExposureRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if body.MaxLat < body.MinLat || body.MaxLon < body.MinLon {
		writeError(w, http.StatusBadRequest, "bounds are inverted")
		return
	}

	start, err := time.Parse("2006-01-02", body.Start)
	if err != nil {
		writeError(w, http.StatusBadRequest, "start must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", body.End)
	if err != nil {
		writeError(w, http.StatusBadRequest, "end must be YYYY-MM-DD")
		return
	}

	cfg := exposure.DefaultConfig()
	if h.controller.GridConfig.ResolutionM > 0 {
		cfg.ResolutionM = h.controller.GridConfig.ResolutionM
	}
	if h.controller.GridConfig.SampleDays > 0 {
		cfg.SampleDays = h.controller.GridConfig.SampleDays
	}
	if h.controller.GridConfig.ChunkSize > 0 {
		cfg.ChunkSize = h.controller.GridConfig.ChunkSize
	}
	if body.ResolutionM > 0 {
		cfg.ResolutionM = body.ResolutionM
	}
	if body.SampleDays > 0 {
		cfg.SampleDays = body.SampleDays
	}

	cal := exposure.NewCalculator(h.controller.logger, exposure.Request{
		Bounds: exposure.Bounds{
			MinLat: body.MinLat,
			MinLon: body.MinLon,
			MaxLat: body.MaxLat,
			MaxLon: body.MaxLon,
		},
		Obstacles: h.controller.Obstacles,
		Slope:     h.controller.siteSlope(),
		Start:     start,
		End:       end,
		Config:    cfg,
	}, exposure.ComputerTypeParallel)

	grid, err := cal.Compute(req.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	stats := grid.Stats()
	writeJSON(w, http.StatusOK, ExposureResponse{
		Width:         grid.Width,
		Height:        grid.Height,
		ResolutionM:   grid.ResolutionM,
		Values:        grid.Values,
		Min:           stats.Min,
		Max:           stats.Max,
		Mean:          stats.Mean,
		StdDev:        stats.StdDev,
		ComputeTimeMS: grid.ComputeTime.Milliseconds(),
	})
}
