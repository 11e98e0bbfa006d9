package exposure

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// parallelComputer partitions grid rows across worker goroutines. Every cell
// is a pure function of immutable inputs, so the only coordination is the
// row partition itself: each worker writes a disjoint slice of the output
// buffer.
type parallelComputer struct {
	req    Request
	logger *zap.SugaredLogger
}

func (p *parallelComputer) Compute(ctx context.Context) (*Grid, error) {
	began := time.Now()
	cfg := p.req.Config

	g := newGrid(p.req.Bounds, cfg, p.req.Start, p.req.End)
	days := sampleDays(p.req.Start, p.req.End, cfg.SampleDays)
	frames := buildFrames(g.Bounds.Center(), days, p.req.Obstacles, p.req.Slope, cfg.Interval)
	g.SampleDays = len(days)

	workers := runtime.GOMAXPROCS(0)
	if workers > g.Height {
		workers = g.Height
	}
	total := g.Width * g.Height
	p.logger.Debugw("computing exposure grid",
		"width", g.Width, "height", g.Height, "sampleDays", len(days),
		"strategy", ComputerTypeParallel, "workers", workers)

	var done atomic.Int64
	eg, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		eg.Go(func() error {
			for row := w; row < g.Height; row += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				for col := 0; col < g.Width; col++ {
					g.Values[row*g.Width+col] = cellHours(planarPoint(g, row, col), frames, cfg.Interval)
				}
				reportProgress(p.req.Progress, int(done.Add(int64(g.Width))), total)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	g.ComputeTime = time.Since(began)
	p.logger.Debugw("exposure grid complete", "cells", total, "elapsed", g.ComputeTime)
	return g, nil
}
