package exposure

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// serialComputer walks the grid cell by cell. Between chunks it checks the
// context and reports progress, so a host driving it from a single thread
// can cancel and stay responsive.
type serialComputer struct {
	req    Request
	logger *zap.SugaredLogger
}

func (s *serialComputer) Compute(ctx context.Context) (*Grid, error) {
	began := time.Now()
	cfg := s.req.Config

	g := newGrid(s.req.Bounds, cfg, s.req.Start, s.req.End)
	days := sampleDays(s.req.Start, s.req.End, cfg.SampleDays)
	frames := buildFrames(g.Bounds.Center(), days, s.req.Obstacles, s.req.Slope, cfg.Interval)
	g.SampleDays = len(days)

	total := g.Width * g.Height
	s.logger.Debugw("computing exposure grid",
		"width", g.Width, "height", g.Height, "sampleDays", len(days), "strategy", ComputerTypeSerial)

	for idx := 0; idx < total; idx++ {
		if idx%cfg.ChunkSize == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			reportProgress(s.req.Progress, idx, total)
		}
		row, col := idx/g.Width, idx%g.Width
		g.Values[idx] = cellHours(planarPoint(g, row, col), frames, cfg.Interval)
	}
	reportProgress(s.req.Progress, total, total)

	g.ComputeTime = time.Since(began)
	s.logger.Debugw("exposure grid complete", "cells", total, "elapsed", g.ComputeTime)
	return g, nil
}
