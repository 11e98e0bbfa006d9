package exposure

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/verdantlabs/sunfield/pkg/shade"
	"github.com/verdantlabs/sunfield/pkg/slope"
)

// ProgressFunc receives the completed fraction of grid cells, in [0, 1].
// The parallel computer may invoke it concurrently from several goroutines.
type ProgressFunc func(fraction float64)

// Request describes one grid computation. All inputs are immutable for the
// duration of the computation.
type Request struct {
	Bounds    Bounds
	Obstacles []shade.Obstacle
	Slope     *slope.Slope
	Start     time.Time
	End       time.Time
	Config    Config
	Progress  ProgressFunc
}

// GridComputer is the interface behind the grid computation strategies.
type GridComputer interface {
	// Compute fills a grid with per-cell average sun hours. It checks the
	// context between cell chunks and returns the context error on
	// cancellation.
	Compute(ctx context.Context) (*Grid, error)
}

// ComputerType identifies the computation strategy.
type ComputerType string

const (
	// ComputerTypeSerial walks the cells one by one, yielding to the
	// caller between fixed-size chunks.
	ComputerTypeSerial ComputerType = "serial"

	// ComputerTypeParallel partitions grid rows across worker goroutines.
	// Cells are pure functions of immutable inputs, so the workers share
	// nothing but disjoint slices of the output buffer.
	ComputerTypeParallel ComputerType = "parallel"
)

// Calculator computes exposure grids using a pluggable strategy.
type Calculator struct {
	computer GridComputer
	logger   *zap.SugaredLogger
	req      Request
}

// NewCalculator creates a Calculator with the given strategy. A nil logger
// is replaced by a no-op logger.
func NewCalculator(logger *zap.SugaredLogger, req Request, computerType ComputerType) *Calculator {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	req.Config = req.Config.withDefaults()

	var computer GridComputer
	switch computerType {
	case ComputerTypeParallel:
		computer = &parallelComputer{req: req, logger: logger}
	default:
		computer = &serialComputer{req: req, logger: logger}
	}

	return &Calculator{
		computer: computer,
		logger:   logger,
		req:      req,
	}
}

// Compute runs the configured strategy.
func (c *Calculator) Compute(ctx context.Context) (*Grid, error) {
	return c.computer.Compute(ctx)
}

// SetComputer allows runtime switching of the computation strategy.
func (c *Calculator) SetComputer(computer GridComputer) {
	c.computer = computer
}

func reportProgress(progress ProgressFunc, done, total int) {
	if progress == nil || total == 0 {
		return
	}
	progress(float64(done) / float64(total))
}
