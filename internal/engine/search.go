package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/piwi3910/rodcut/internal/model"
	"github.com/piwi3910/rodcut/internal/solver"
	"github.com/piwi3910/rodcut/logging"
)

// Options tunes the batch sweep.
type Options struct {
	// Workers is the number of concurrent solver calls. Zero means one per
	// CPU core.
	Workers int
	// TrialTimeout caps each individual solve. Zero means no cap.
	TrialTimeout time.Duration
}

// Searcher sweeps batch sizes 1..BatchBound and keeps the minimum-waste
// trial. Trials are independent, so they run on a bounded worker pool; the
// winner is selected in a final reduction so the tie-break (smaller batch
// size on equal waste) stays deterministic regardless of completion order.
type Searcher struct {
	solver solver.Solver
	opts   Options
}

// NewSearcher returns a Searcher backed by the given solver.
func NewSearcher(s solver.Solver, opts Options) *Searcher {
	return &Searcher{solver: s, opts: opts}
}

// trialOutcome carries one batch size's result back to the reducer.
type trialOutcome struct {
	trial    model.Trial
	feasible bool
	err      error
}

// Search runs the full sweep and returns the best trial. It fails with
// ErrInvalidDimensions on malformed input and ErrNoFeasibleBatch when every
// batch size in range is infeasible. Per-trial infeasibility is recovered
// locally; cancellation of ctx aborts the sweep.
func (s *Searcher) Search(ctx context.Context, job model.Job) (model.Trial, error) {
	log := logging.Get()

	if err := job.Validate(); err != nil {
		return model.Trial{}, err
	}

	patterns, err := GeneratePatterns(job)
	if err != nil {
		return model.Trial{}, err
	}
	log.Debug().
		Str("job", job.ID).
		Int("patterns", len(patterns)).
		Int("batch_bound", job.BatchBound).
		Msg("starting batch sweep")

	workers := s.opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, workers)
	outcomes := make(chan trialOutcome, job.BatchBound)
	var wg sync.WaitGroup

	for n := 1; n <= job.BatchBound; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				outcomes <- trialOutcome{err: ctx.Err()}
				return
			}
			defer func() { <-sem }()

			trial, feasible, err := s.runTrial(ctx, job, patterns, n)
			if err != nil {
				cancel()
			}
			outcomes <- trialOutcome{trial: trial, feasible: feasible, err: err}
		}(n)
	}

	wg.Wait()
	close(outcomes)

	var best *model.Trial
	var sweepErr error
	for out := range outcomes {
		if out.err != nil {
			// Prefer the root cause over the context errors that follow it.
			if sweepErr == nil || errors.Is(sweepErr, context.Canceled) {
				sweepErr = out.err
			}
			continue
		}
		if !out.feasible {
			continue
		}
		t := out.trial
		if best == nil || t.Better(*best) {
			best = &t
		}
	}
	if sweepErr != nil {
		return model.Trial{}, sweepErr
	}
	if best == nil {
		return model.Trial{}, fmt.Errorf("%w (bound %d)", model.ErrNoFeasibleBatch, job.BatchBound)
	}

	log.Info().
		Str("job", job.ID).
		Int("batch_size", best.BatchSize).
		Int("waste", best.Waste).
		Int("rods", best.Recipe.Rods()).
		Msg("batch sweep finished")
	return *best, nil
}

// runTrial builds and solves the integer program for one batch size. A
// transient solver failure is retried once; if it persists, the trial is
// treated as infeasible rather than failing the whole sweep. Errors are only
// returned for conditions that must abort the sweep (cancellation, internal
// invariant breaches).
func (s *Searcher) runTrial(ctx context.Context, job model.Job, patterns []model.Pattern, n int) (model.Trial, bool, error) {
	log := logging.Get()

	prob, err := BuildProblem(job, patterns, n)
	if err != nil {
		return model.Trial{}, false, err
	}

	res, err := s.solveOnce(ctx, prob)
	if err != nil {
		if ctx.Err() != nil {
			return model.Trial{}, false, ctx.Err()
		}
		log.Warn().Err(err).Int("batch_size", n).Msg("solver failed, retrying once")
		res, err = s.solveOnce(ctx, prob)
		if err != nil {
			if ctx.Err() != nil {
				return model.Trial{}, false, ctx.Err()
			}
			log.Warn().Err(err).Int("batch_size", n).Msg("solver failed again, skipping batch size")
			return model.Trial{}, false, nil
		}
	}

	switch res.Status {
	case solver.StatusOptimal:
		trial := assembleTrial(job, patterns, n, res)
		log.Debug().Int("batch_size", n).Int("waste", trial.Waste).Msg("trial feasible")
		return trial, true, nil
	case solver.StatusInfeasible:
		log.Debug().Int("batch_size", n).Msg("trial infeasible")
		return model.Trial{}, false, nil
	default:
		// Unbounded or unknown verdicts cannot legitimately occur for this
		// model; treat them like an infeasible trial rather than aborting.
		log.Warn().Stringer("status", res.Status).Int("batch_size", n).Msg("unexpected solver status, skipping batch size")
		return model.Trial{}, false, nil
	}
}

func (s *Searcher) solveOnce(ctx context.Context, prob solver.Problem) (solver.Result, error) {
	if s.opts.TrialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.TrialTimeout)
		defer cancel()
	}
	return s.solver.Solve(ctx, prob)
}

// assembleTrial converts a solver assignment back into a Recipe, dropping
// zero-count patterns. Waste is recomputed from the recipe in exact integer
// arithmetic; the solver's floating objective is only cross-checked.
func assembleTrial(job model.Job, patterns []model.Pattern, n int, res solver.Result) model.Trial {
	var recipe model.Recipe
	for j, count := range res.Counts {
		if count > 0 {
			recipe.Lines = append(recipe.Lines, model.RecipeLine{Pattern: patterns[j], Count: count})
		}
	}

	waste := recipe.Waste(job)
	if diff := float64(waste) - res.Objective; diff > 0.5 || diff < -0.5 {
		log := logging.Get()
		log.Warn().
			Int("batch_size", n).
			Int("recipe_waste", waste).
			Float64("objective", res.Objective).
			Msg("solver objective disagrees with recipe waste")
	}

	return model.Trial{BatchSize: n, Recipe: recipe, Waste: waste}
}
