package glpk

import (
	"testing"

	glp "github.com/lukpank/go-glpk/glpk"
	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/rodcut/internal/solver"
)

func TestMipStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		in   glp.SolStat
		want solver.Status
	}{
		{"proven optimum", glp.OPT, solver.StatusOptimal},
		{"no integer solution", glp.NOFEAS, solver.StatusInfeasible},
		{"feasible without proof", glp.FEAS, solver.StatusUnknown},
		{"undefined", glp.UNDEF, solver.StatusUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mipStatus(tt.in))
		})
	}
}
