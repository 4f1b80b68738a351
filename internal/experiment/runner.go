package experiment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/binpack/internal/packing"
)

// Runner executes every constructor against every instance, sequentially.
type Runner struct {
	constructors []packing.Constructor
	logger       *zap.Logger
	clock        func() time.Time
	sink         Sink
}

// RunnerOption configures Runner behaviour.
type RunnerOption func(*Runner)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) RunnerOption {
	return func(r *Runner) {
		r.clock = clock
	}
}

// WithSink forwards each result to sink.
func WithSink(sink Sink) RunnerOption {
	return func(r *Runner) {
		r.sink = sink
	}
}

// NewRunner constructs a Runner for the given constructors.
func NewRunner(constructors []packing.Constructor, logger *zap.Logger, opts ...RunnerOption) *Runner {
	r := &Runner{
		constructors: constructors,
		logger:       logger,
		clock:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run solves all instances with the first constructor, then all with the
// second, and so on. Infeasible instances are recorded and skipped. When ctx
// is cancelled the results gathered so far are returned with ctx.Err().
func (r *Runner) Run(ctx context.Context, instances []packing.Instance) ([]Result, error) {
	results := make([]Result, 0, len(instances)*len(r.constructors))

	for _, c := range r.constructors {
		for _, inst := range instances {
			if err := ctx.Err(); err != nil {
				return results, err
			}

			result, err := r.solve(c, inst)
			if err != nil {
				return results, err
			}
			results = append(results, result)

			if r.sink != nil {
				if err := r.sink.SaveResult(ctx, result); err != nil {
					return results, fmt.Errorf("save result %s/%s: %w", result.Heuristic, result.Instance, err)
				}
			}
		}
	}

	return results, nil
}

// Solve runs a single constructor on a single instance and returns the solution with its result record.
func Solve(c packing.Constructor, inst packing.Instance, clock func() time.Time) (*packing.Solution, Result, error) {
	start := clock()
	solution, err := c.GenerateSolution(inst)
	elapsed := clock().Sub(start)

	result := Result{
		Instance:  inst.Name,
		Heuristic: c.Name(),
		Items:     len(inst.Weights),
		BestKnown: inst.BestKnown,
		Elapsed:   elapsed,
	}
	if err != nil {
		result.Err = err.Error()
		return nil, result, err
	}
	result.BinsUsed = solution.BoxCount()
	return solution, result, nil
}

func (r *Runner) solve(c packing.Constructor, inst packing.Instance) (Result, error) {
	_, result, err := Solve(c, inst, r.clock)
	switch {
	case err == nil:
		r.logger.Debug("instance solved",
			zap.String("instance", result.Instance),
			zap.String("heuristic", result.Heuristic),
			zap.Int("bins", result.BinsUsed),
			zap.Int("best_known", result.BestKnown),
			zap.Duration("elapsed", result.Elapsed),
		)
		return result, nil
	case errors.Is(err, packing.ErrInfeasible), errors.Is(err, packing.ErrInvalidArgument):
		r.logger.Warn("instance skipped",
			zap.String("instance", result.Instance),
			zap.String("heuristic", result.Heuristic),
			zap.Error(err),
		)
		return result, nil
	default:
		return result, fmt.Errorf("solve %s with %s: %w", inst.Name, c.Name(), err)
	}
}
