package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coverProblem() Problem {
	// Two variables, two demand rows. Variable 0 covers both demands at cost
	// 3; variable 1 covers only the second at cost 1. Optimal for demands
	// (1, 2) is one of each: cost 4.
	return Problem{
		Name:      "cover",
		Objective: []float64{3, 1},
		Constraints: []Constraint{
			{Name: "d1", Coeffs: []float64{1, 0}, AtLeast: 1},
			{Name: "d2", Coeffs: []float64{1, 1}, AtLeast: 2},
		},
	}
}

func TestExact_FindsOptimalCover(t *testing.T) {
	res, err := NewExact().Solve(context.Background(), coverProblem())
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, res.Status)
	assert.Equal(t, []int{1, 1}, res.Counts)
	assert.InDelta(t, 4.0, res.Objective, 1e-9)
}

func TestExact_ZeroDemandsSolveTrivially(t *testing.T) {
	p := coverProblem()
	p.Constraints[0].AtLeast = 0
	p.Constraints[1].AtLeast = 0

	res, err := NewExact().Solve(context.Background(), p)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, res.Status)
	assert.Equal(t, []int{0, 0}, res.Counts)
	assert.Zero(t, res.Objective)
}

func TestExact_ReportsInfeasible(t *testing.T) {
	p := Problem{
		Name:      "stuck",
		Objective: []float64{1},
		Constraints: []Constraint{
			{Name: "d1", Coeffs: []float64{0}, AtLeast: 1},
		},
	}
	res, err := NewExact().Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, StatusInfeasible, res.Status)
}

func TestExact_ReportsUnbounded(t *testing.T) {
	p := coverProblem()
	p.Objective[1] = -1

	res, err := NewExact().Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, StatusUnbounded, res.Status)
}

func TestExact_RejectsNonIntegerCoefficients(t *testing.T) {
	p := coverProblem()
	p.Constraints[0].Coeffs[0] = 0.5

	_, err := NewExact().Solve(context.Background(), p)
	assert.Error(t, err)
}

func TestExact_RejectsMismatchedRows(t *testing.T) {
	p := coverProblem()
	p.Constraints[0].Coeffs = []float64{1}

	_, err := NewExact().Solve(context.Background(), p)
	assert.Error(t, err)
}

func TestExact_StateSpaceLimit(t *testing.T) {
	p := Problem{
		Name:      "huge",
		Objective: []float64{1},
		Constraints: []Constraint{
			{Name: "d1", Coeffs: []float64{1}, AtLeast: 1000},
			{Name: "d2", Coeffs: []float64{1}, AtLeast: 1000},
		},
	}
	_, err := (&Exact{MaxStates: 100}).Solve(context.Background(), p)
	assert.Error(t, err)
}

func TestExact_ObservesCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExact().Solve(ctx, coverProblem())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "optimal", StatusOptimal.String())
	assert.Equal(t, "infeasible", StatusInfeasible.String())
	assert.Equal(t, "unbounded", StatusUnbounded.String())
	assert.Equal(t, "unknown", StatusUnknown.String())
}
