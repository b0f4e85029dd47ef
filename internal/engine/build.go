package engine

import (
	"fmt"

	"github.com/piwi3910/rodcut/internal/model"
	"github.com/piwi3910/rodcut/internal/solver"
)

// BuildProblem constructs the integer program for one batch-size trial: one
// non-negative integer variable per pattern (rods cut with that pattern),
// objective minimizing the waste-weighted rod count, and one at-least row
// per piece type requiring n times the job's multiplicity.
//
// The objective deliberately weights each rod by its pattern's waste rather
// than counting rods: with heterogeneous patterns, fewer rods is not the
// same as less waste. Overproduced pieces are not penalized; only unused rod
// length is.
func BuildProblem(job model.Job, patterns []model.Pattern, n int) (solver.Problem, error) {
	if len(patterns) == 0 {
		return solver.Problem{}, fmt.Errorf("batch %d: %w", n, model.ErrEmptyPatternSet)
	}

	objective := make([]float64, len(patterns))
	for j, p := range patterns {
		objective[j] = float64(p.Waste(job))
	}

	demands := job.Demands(n)
	constraints := make([]solver.Constraint, model.PieceTypes)
	for i := 0; i < model.PieceTypes; i++ {
		coeffs := make([]float64, len(patterns))
		for j, p := range patterns {
			coeffs[j] = float64(p.Counts[i])
		}
		constraints[i] = solver.Constraint{
			Name:    fmt.Sprintf("demand_l%d", i+1),
			Coeffs:  coeffs,
			AtLeast: float64(demands[i]),
		}
	}

	return solver.Problem{
		Name:        fmt.Sprintf("%s-batch-%d", job.ID, n),
		Objective:   objective,
		Constraints: constraints,
	}, nil
}
