// Package solver defines the integer-program descriptor handed to an
// external MILP engine and the interface such engines implement. The
// optimization core builds Problems and consumes Results; it never touches
// engine-specific APIs.
package solver

import (
	"context"
	"fmt"
)

// Status is the outcome of a solve.
type Status int

const (
	// StatusOptimal means the engine proved an optimal integer assignment.
	StatusOptimal Status = iota
	// StatusInfeasible means no assignment satisfies the constraints.
	StatusInfeasible
	// StatusUnbounded means the objective can decrease without limit. It
	// cannot occur for well-formed cutting models but the contract keeps it
	// so adapters can report it instead of guessing.
	StatusUnbounded
	// StatusUnknown covers engine terminations without a usable verdict
	// (time limit, numeric trouble).
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	default:
		return "unknown"
	}
}

// Constraint is a single linear at-least row: Coeffs · x >= AtLeast.
type Constraint struct {
	Name    string
	Coeffs  []float64
	AtLeast float64
}

// Problem is a minimization integer program over non-negative integer
// variables: minimize Objective · x subject to every Constraint.
type Problem struct {
	Name        string
	Objective   []float64
	Constraints []Constraint
}

// Vars returns the number of decision variables.
func (p Problem) Vars() int {
	return len(p.Objective)
}

// Validate checks that constraint rows match the variable count.
func (p Problem) Validate() error {
	if p.Vars() == 0 {
		return fmt.Errorf("problem %q has no variables", p.Name)
	}
	for _, c := range p.Constraints {
		if len(c.Coeffs) != p.Vars() {
			return fmt.Errorf("problem %q: constraint %q has %d coefficients, want %d",
				p.Name, c.Name, len(c.Coeffs), p.Vars())
		}
	}
	return nil
}

// Result is an engine's answer. Counts holds the integer assignment and is
// only meaningful when Status is StatusOptimal.
type Result struct {
	Status    Status
	Counts    []int
	Objective float64
}

// Solver is the external MILP collaborator. Implementations must be safe
// for concurrent use; the batch sweep solves many problems in parallel.
type Solver interface {
	Solve(ctx context.Context, p Problem) (Result, error)
}
