package planner

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"dubins-planner/scenario"
)

// PlanWithin runs p in its own goroutine and waits for it or for ctx,
// whichever finishes first. On timeout the direct path is returned with
// OutcomeBudgetExceeded. The search itself cannot be interrupted, so the
// goroutine runs to completion in the background and its result is dropped.
func PlanWithin(ctx context.Context, p Planner, s *scenario.Scenario) Result {
	if ctx.Err() != nil {
		return budgetExceeded(s)
	}

	done := make(chan Result, 1)
	go func() {
		done <- resultOf(p, s)
	}()

	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		return budgetExceeded(s)
	}
}

func budgetExceeded(s *scenario.Scenario) Result {
	path := Direct(s)
	return Result{
		Path:    path,
		Outcome: OutcomeBudgetExceeded,
		Cost:    NewCostModel(s, DefaultObstaclePenalty, DefaultAreaPenalty).PathCost(path),
	}
}

// PlanAll plans every scenario using at most workers goroutines and returns
// results in input order. Each call builds its own graph, so p is shared
// safely. workers <= 0 uses GOMAXPROCS. Cancelling ctx stops scheduling new
// scenarios and returns the context error.
func PlanAll(ctx context.Context, p Planner, scenarios []*scenario.Scenario, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(scenarios))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, s := range scenarios {
		i, s := i, s
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = resultOf(p, s)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
