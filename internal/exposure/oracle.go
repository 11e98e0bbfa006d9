package exposure

import (
	"context"
	"time"
)

// readyTimeout bounds how long a combined computation waits for the oracle's
// readiness signal before degrading to internal values.
const readyTimeout = 5 * time.Second

// LegacyWarmupDelay is the fixed wait some oracle implementations need after
// EnableSunExposure before per-cell queries return data. Implementations
// without a real readiness signal may sleep this long inside Ready; it is a
// documented fallback, not an authoritative protocol.
const LegacyWarmupDelay = 500 * time.Millisecond

// ShadowOracle is an optional external source of terrain and building shadow
// data that can be fused into a grid computation. The engine must work
// correctly with the oracle entirely absent (nil) or unavailable.
type ShadowOracle interface {
	// Available reports whether the oracle can currently serve queries.
	Available() bool

	// EnableSunExposure switches the oracle into date-range mode for the
	// given range, using the given number of sampling iterations.
	EnableSunExposure(start, end time.Time, iterations int) error

	// DisableSunExposure leaves date-range mode.
	DisableSunExposure()

	// Ready blocks until per-cell queries return data, or the context
	// expires.
	Ready(ctx context.Context) error

	// HoursOfSun returns the oracle's daily sun hours for a coordinate.
	// The second result is false when the oracle has no value there.
	HoursOfSun(lat, lon float64) (float64, bool)
}

// ComputeCombined fuses the internal obstacle-shadow computation with an
// external shadow oracle. Per cell, the base value is the oracle's sun hours
// (falling back to the internally derived theoretical hours when the oracle
// is nil, unavailable, or has no data for the cell); the obstacle shadow
// deficit is subtracted from that base, floored at zero.
func (c *Calculator) ComputeCombined(ctx context.Context, oracle ShadowOracle) (*Grid, error) {
	g, err := c.Compute(ctx)
	if err != nil {
		return nil, err
	}

	cfg := c.req.Config
	days := sampleDays(c.req.Start, c.req.End, cfg.SampleDays)
	frames := buildFrames(g.Bounds.Center(), days, c.req.Obstacles, c.req.Slope, cfg.Interval)
	theoretical := avgTheoreticalHours(frames)

	useOracle := false
	if oracle != nil && oracle.Available() {
		if err := oracle.EnableSunExposure(c.req.Start, c.req.End, cfg.SampleDays); err != nil {
			c.logger.Warnf("shadow oracle enable failed, using internal values: %v", err)
		} else {
			defer oracle.DisableSunExposure()
			rctx, cancel := context.WithTimeout(ctx, readyTimeout)
			err := oracle.Ready(rctx)
			cancel()
			if err != nil {
				c.logger.Warnf("shadow oracle not ready, using internal values: %v", err)
			} else {
				useOracle = true
			}
		}
	}

	for idx := range g.Values {
		// How much sun the obstacle shadows cost this cell.
		deficit := theoretical - g.Values[idx]
		if deficit < 0 {
			deficit = 0
		}

		base := theoretical
		if useOracle {
			cc := g.CellCenter(idx/g.Width, idx%g.Width)
			if hours, ok := oracle.HoursOfSun(cc.Latitude, cc.Longitude); ok {
				base = hours
			}
		}

		v := base - deficit
		if v < 0 {
			v = 0
		}
		g.Values[idx] = v
	}
	return g, nil
}
