// Package glpk adapts the GNU Linear Programming Kit's branch-and-cut MIP
// solver to the solver.Solver interface. It requires libglpk at build time
// (cgo, via github.com/lukpank/go-glpk).
package glpk

import (
	"context"
	"fmt"
	"math"

	glp "github.com/lukpank/go-glpk/glpk"

	"github.com/piwi3910/rodcut/internal/solver"
)

// Solver solves integer programs with GLPK's intopt routine.
type Solver struct {
	// Presolve enables the MIP presolver. Without it GLPK requires an LP
	// relaxation to be solved first, so it stays on by default.
	Presolve bool
}

// New returns a GLPK-backed solver.
func New() *Solver {
	return &Solver{Presolve: true}
}

// Solve implements solver.Solver. GLPK cannot be interrupted mid-solve, so
// cancellation is only observed between problems.
func (s *Solver) Solve(ctx context.Context, p solver.Problem) (solver.Result, error) {
	if err := p.Validate(); err != nil {
		return solver.Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return solver.Result{}, err
	}

	prob := glp.New()
	defer prob.Delete()

	prob.SetProbName(p.Name)
	prob.SetObjName("waste")
	prob.SetObjDir(glp.MIN)

	cols := make([]int, p.Vars())
	for j, c := range p.Objective {
		idx := prob.AddCols(1)
		prob.SetColName(idx, fmt.Sprintf("x%d", j))
		prob.SetColKind(idx, glp.IV)
		prob.SetColBnds(idx, glp.LO, 0, 0)
		prob.SetObjCoef(idx, c)
		cols[j] = idx
	}

	for _, c := range p.Constraints {
		row := prob.AddRows(1)
		prob.SetRowName(row, c.Name)
		// Index 0 of both slices is ignored by SetMatRow.
		ind := []int32{0}
		val := []float64{0}
		for j, a := range c.Coeffs {
			if a != 0 {
				ind = append(ind, int32(cols[j]))
				val = append(val, a)
			}
		}
		prob.SetMatRow(row, ind, val)
		prob.SetRowBnds(row, glp.LO, c.AtLeast, 0)
	}

	iocp := glp.NewIocp()
	iocp.SetPresolve(s.Presolve)

	if err := prob.Intopt(iocp); err != nil {
		// With the presolver on, GLPK reports an infeasible relaxation as an
		// error code instead of a solution status.
		if err == glp.ENOPFS || err == glp.ENODFS {
			return solver.Result{Status: solver.StatusInfeasible}, nil
		}
		return solver.Result{}, fmt.Errorf("glpk intopt on %q: %w", p.Name, err)
	}

	status := mipStatus(prob.MipStatus())
	if status != solver.StatusOptimal {
		return solver.Result{Status: status}, nil
	}

	counts := make([]int, p.Vars())
	for j, idx := range cols {
		counts[j] = int(math.Round(prob.MipColVal(idx)))
	}
	return solver.Result{
		Status:    solver.StatusOptimal,
		Counts:    counts,
		Objective: prob.MipObjVal(),
	}, nil
}

// mipStatus maps GLPK's MIP solution status onto the engine contract. FEAS
// means integer-feasible without an optimality proof (interrupted search), so
// it must not be reported as optimal.
func mipStatus(s glp.SolStat) solver.Status {
	switch s {
	case glp.OPT:
		return solver.StatusOptimal
	case glp.NOFEAS:
		return solver.StatusInfeasible
	default:
		return solver.StatusUnknown
	}
}
