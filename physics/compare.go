package physics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/golf-sim/core"
	"github.com/lixenwraith/golf-sim/parameter"
	"github.com/lixenwraith/golf-sim/terrain"
	"github.com/lixenwraith/golf-sim/vmath"
)

// StepComparison is the accuracy of one step size against a fine reference run
type StepComparison struct {
	StepSize  float64
	Final     vmath.Vec2
	Deviation float64
	Steps     int
	Elapsed   time.Duration
}

// CompareStepSizes simulates the same shot at each step size and measures how far the resting
// position drifts from a run at parameter.ReferenceStepSize
// Runs execute concurrently, each with its own integrator copy
func (e *Engine) CompareStepSizes(ctx context.Context, v0 vmath.Vec2, ball core.Ball, t *terrain.Terrain, stepSizes []float64) ([]StepComparison, error) {
	ref, err := e.withStepSize(parameter.ReferenceStepSize)
	if err != nil {
		return nil, err
	}
	refTrace, err := ref.Trace(v0, ball, t)
	if err != nil {
		return nil, fmt.Errorf("reference run: %w", err)
	}
	refFinal := refTrace.Final()

	out := make([]StepComparison, len(stepSizes))
	g, gctx := errgroup.WithContext(ctx)
	for i, h := range stepSizes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			eng, err := e.withStepSize(h)
			if err != nil {
				return err
			}
			start := time.Now()
			tr, err := eng.Trace(v0, ball, t)
			if err != nil {
				return fmt.Errorf("step %g: %w", h, err)
			}
			out[i] = StepComparison{
				StepSize:  h,
				Final:     tr.Final(),
				Deviation: tr.Final().Distance(refFinal),
				Steps:     tr.Steps(),
				Elapsed:   time.Since(start),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// withStepSize returns an engine identical to e except for the integrator step size
func (e *Engine) withStepSize(h float64) (*Engine, error) {
	integ, err := e.integrator.WithStepSize(h)
	if err != nil {
		return nil, err
	}
	cp := *e
	cp.integrator = integ
	return &cp, nil
}
