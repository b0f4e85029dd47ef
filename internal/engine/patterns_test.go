package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/rodcut/internal/model"
)

func testJob() model.Job {
	return model.NewJob("test", 300, [model.PieceTypes]int{100, 70, 50}, [model.PieceTypes]int{1, 1, 1}, 3)
}

func TestGeneratePatterns_Exhaustive(t *testing.T) {
	job := testJob()
	patterns, err := GeneratePatterns(job)
	require.NoError(t, err)

	// Every triple within the per-length bounds that fits on the rod, counted
	// by hand for 300/(100,70,50).
	assert.Len(t, patterns, 34)

	seen := make(map[model.Pattern]int)
	for _, p := range patterns {
		seen[p]++
		assert.LessOrEqual(t, p.UsedLength(job), job.RodLength)
	}
	for p, n := range seen {
		assert.Equal(t, 1, n, "pattern %s generated more than once", p)
	}
}

func TestGeneratePatterns_IncludesBlank(t *testing.T) {
	patterns, err := GeneratePatterns(testJob())
	require.NoError(t, err)

	found := false
	for _, p := range patterns {
		if p.IsBlank() {
			found = true
		}
	}
	assert.True(t, found, "blank pattern must always be generated")
}

func TestGeneratePatterns_OnlyBlankWhenNothingFits(t *testing.T) {
	job := testJob()
	job.RodLength = 40 // shorter than the smallest piece

	patterns, err := GeneratePatterns(job)
	require.NoError(t, err)
	require.Len(t, patterns, 1)
	assert.True(t, patterns[0].IsBlank())
}

func TestGeneratePatterns_RejectsInvalidJob(t *testing.T) {
	job := testJob()
	job.PieceLengths = [model.PieceTypes]int{50, 70, 100}

	_, err := GeneratePatterns(job)
	assert.ErrorIs(t, err, model.ErrInvalidDimensions)
}
