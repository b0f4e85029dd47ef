// Package engine implements the optimization core: cutting pattern
// generation, integer-program construction, and the batch-size sweep that
// finds the minimum-waste production plan.
package engine

import (
	"github.com/piwi3910/rodcut/internal/model"
)

// GeneratePatterns enumerates every feasible way to cut one rod into the
// job's three piece lengths. The enumeration is exhaustive and
// deterministic: each count is bounded by floor(rod/length) and every triple
// within those bounds is visited exactly once, keeping the ones that fit on
// the rod. The blank pattern (0,0,0) is always present; dropping it would
// make purely wasteful instances look infeasible.
//
// The pattern set depends only on the lengths, not on the batch size, so it
// is generated once per job and shared read-only across all trials.
func GeneratePatterns(job model.Job) ([]model.Pattern, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}

	var bounds [model.PieceTypes]int
	for i, l := range job.PieceLengths {
		bounds[i] = job.RodLength / l
	}

	var patterns []model.Pattern
	for a1 := 0; a1 <= bounds[0]; a1++ {
		for a2 := 0; a2 <= bounds[1]; a2++ {
			for a3 := 0; a3 <= bounds[2]; a3++ {
				p := model.Pattern{Counts: [model.PieceTypes]int{a1, a2, a3}}
				if p.UsedLength(job) <= job.RodLength {
					patterns = append(patterns, p)
				}
			}
		}
	}
	return patterns, nil
}
