package solver

import (
	"context"
	"fmt"
	"math"
)

// defaultMaxStates bounds the demand state space the exact backend will
// attempt. Larger instances belong to a real MILP engine.
const defaultMaxStates = 4_000_000

// Exact is a pure-Go reference backend for at-least covering programs with
// non-negative integer coefficients. It computes a provably optimal
// assignment by dynamic programming over the remaining-demand vector, so it
// needs no external solver library. Intended for moderate demand sizes and
// for the test suite; production sweeps with large demands should use the
// GLPK adapter.
type Exact struct {
	// MaxStates caps the size of the demand state space. Zero means the
	// package default.
	MaxStates int
}

// NewExact returns an exact backend with default limits.
func NewExact() *Exact {
	return &Exact{}
}

type exactEntry struct {
	cost     float64
	pick     int // variable chosen at this state, -1 when all demands are met
	feasible bool
}

// Solve implements Solver.
func (e *Exact) Solve(ctx context.Context, p Problem) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	for _, c := range p.Objective {
		if c < 0 {
			// A free negative-cost column makes the minimization unbounded.
			return Result{Status: StatusUnbounded}, nil
		}
	}

	coeffs, demands, err := integerRows(p)
	if err != nil {
		return Result{}, err
	}

	states := 1
	for _, d := range demands {
		if d > 0 {
			if states > e.maxStates()/(d+1) {
				return Result{}, fmt.Errorf("problem %q: demand state space exceeds exact backend limit %d",
					p.Name, e.maxStates())
			}
			states *= d + 1
		}
	}

	memo := make(map[string]exactEntry, 1024)
	var solveErr error

	var solve func(dem []int) exactEntry
	solve = func(dem []int) exactEntry {
		key := stateKey(dem)
		if entry, ok := memo[key]; ok {
			return entry
		}
		if solveErr != nil {
			return exactEntry{}
		}
		if err := ctx.Err(); err != nil {
			solveErr = err
			return exactEntry{}
		}

		if allZero(dem) {
			entry := exactEntry{cost: 0, pick: -1, feasible: true}
			memo[key] = entry
			return entry
		}

		best := exactEntry{cost: math.Inf(1), pick: -1}
		next := make([]int, len(dem))
		for j := 0; j < p.Vars(); j++ {
			reduces := false
			for i := range dem {
				next[i] = dem[i] - coeffs[i][j]
				if next[i] < 0 {
					next[i] = 0
				}
				if dem[i] > 0 && next[i] < dem[i] {
					reduces = true
				}
			}
			if !reduces {
				continue
			}
			sub := solve(next)
			if !sub.feasible {
				continue
			}
			cost := p.Objective[j] + sub.cost
			if cost < best.cost {
				best = exactEntry{cost: cost, pick: j, feasible: true}
			}
		}

		memo[key] = best
		return best
	}

	root := solve(demands)
	if solveErr != nil {
		return Result{}, solveErr
	}
	if !root.feasible {
		return Result{Status: StatusInfeasible}, nil
	}

	counts := make([]int, p.Vars())
	dem := append([]int(nil), demands...)
	for {
		entry := memo[stateKey(dem)]
		if entry.pick < 0 {
			break
		}
		counts[entry.pick]++
		for i := range dem {
			dem[i] -= coeffs[i][entry.pick]
			if dem[i] < 0 {
				dem[i] = 0
			}
		}
	}

	return Result{Status: StatusOptimal, Counts: counts, Objective: root.cost}, nil
}

func (e *Exact) maxStates() int {
	if e.MaxStates > 0 {
		return e.MaxStates
	}
	return defaultMaxStates
}

// integerRows converts the constraint matrix and right-hand sides to
// integers, which the demand-space dynamic program requires.
func integerRows(p Problem) (coeffs [][]int, demands []int, err error) {
	coeffs = make([][]int, len(p.Constraints))
	demands = make([]int, len(p.Constraints))
	for i, c := range p.Constraints {
		row := make([]int, len(c.Coeffs))
		for j, a := range c.Coeffs {
			ia := int(math.Round(a))
			if a < 0 || math.Abs(a-float64(ia)) > 1e-9 {
				return nil, nil, fmt.Errorf("problem %q: constraint %q coefficient %v is not a non-negative integer",
					p.Name, c.Name, a)
			}
			row[j] = ia
		}
		rhs := int(math.Ceil(c.AtLeast - 1e-9))
		if rhs < 0 {
			rhs = 0
		}
		coeffs[i] = row
		demands[i] = rhs
	}
	return coeffs, demands, nil
}

func stateKey(dem []int) string {
	return fmt.Sprint(dem)
}

func allZero(dem []int) bool {
	for _, d := range dem {
		if d != 0 {
			return false
		}
	}
	return true
}
