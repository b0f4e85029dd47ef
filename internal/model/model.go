// Package model defines the domain types for rod cutting optimization:
// jobs, cutting patterns, recipes, and trial results.
package model

import (
	"fmt"

	"github.com/google/uuid"
)

// PieceTypes is the number of finished piece lengths cut from each rod.
const PieceTypes = 3

// Job describes one cutting-stock problem instance. Lengths are whole
// millimetres. PieceLengths must be strictly descending and Multiplicities
// give how many pieces of each length one batch repetition requires.
type Job struct {
	ID             string          `json:"id"`
	Label          string          `json:"label"`
	RodLength      int             `json:"rod_length"`
	PieceLengths   [PieceTypes]int `json:"piece_lengths"`
	Multiplicities [PieceTypes]int `json:"multiplicities"`
	BatchBound     int             `json:"batch_bound"`
}

// NewJob builds a Job with a fresh short ID.
func NewJob(label string, rod int, lengths, multiplicities [PieceTypes]int, batchBound int) Job {
	return Job{
		ID:             uuid.New().String()[:8],
		Label:          label,
		RodLength:      rod,
		PieceLengths:   lengths,
		Multiplicities: multiplicities,
		BatchBound:     batchBound,
	}
}

// Validate checks the job's dimensions. All failures wrap ErrInvalidDimensions.
func (j Job) Validate() error {
	if j.RodLength <= 0 {
		return fmt.Errorf("%w: rod length %d must be positive", ErrInvalidDimensions, j.RodLength)
	}
	for i, l := range j.PieceLengths {
		if l <= 0 {
			return fmt.Errorf("%w: piece length l%d = %d must be positive", ErrInvalidDimensions, i+1, l)
		}
	}
	if !(j.PieceLengths[0] > j.PieceLengths[1] && j.PieceLengths[1] > j.PieceLengths[2]) {
		return fmt.Errorf("%w: piece lengths %v must satisfy l1 > l2 > l3", ErrInvalidDimensions, j.PieceLengths)
	}
	for i, m := range j.Multiplicities {
		if m < 0 {
			return fmt.Errorf("%w: multiplicity m%d = %d must be non-negative", ErrInvalidDimensions, i+1, m)
		}
	}
	if j.BatchBound <= 0 {
		return fmt.Errorf("%w: batch bound %d must be positive", ErrInvalidDimensions, j.BatchBound)
	}
	return nil
}

// Demands returns the piece quantities required at batch size n.
func (j Job) Demands(n int) [PieceTypes]int {
	var d [PieceTypes]int
	for i, m := range j.Multiplicities {
		d[i] = n * m
	}
	return d
}

// Pattern is one feasible way to cut a single rod: how many pieces of each
// length it yields. Patterns are immutable values; the blank pattern (all
// zero) is valid and represents an uncut rod.
type Pattern struct {
	Counts [PieceTypes]int `json:"counts"`
}

// UsedLength returns the total rod length consumed by the pattern's pieces.
func (p Pattern) UsedLength(job Job) int {
	used := 0
	for i, c := range p.Counts {
		used += c * job.PieceLengths[i]
	}
	return used
}

// Waste returns the unused tail of a rod cut with this pattern.
func (p Pattern) Waste(job Job) int {
	return job.RodLength - p.UsedLength(job)
}

// IsBlank reports whether the pattern cuts nothing at all.
func (p Pattern) IsBlank() bool {
	return p.Counts == [PieceTypes]int{}
}

func (p Pattern) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.Counts[0], p.Counts[1], p.Counts[2])
}

// RecipeLine pairs a pattern with the number of rods cut using it.
type RecipeLine struct {
	Pattern Pattern `json:"pattern"`
	Count   int     `json:"count"`
}

// Recipe is a full assignment of pattern multiplicities for one trial.
// Lines with zero count are omitted.
type Recipe struct {
	Lines []RecipeLine `json:"lines"`
}

// Rods returns the total number of rods the recipe consumes.
func (r Recipe) Rods() int {
	total := 0
	for _, ln := range r.Lines {
		total += ln.Count
	}
	return total
}

// Waste returns the summed per-pattern waste across all rods in the recipe.
func (r Recipe) Waste(job Job) int {
	total := 0
	for _, ln := range r.Lines {
		total += ln.Count * ln.Pattern.Waste(job)
	}
	return total
}

// Produced returns the piece quantities the recipe yields per length.
func (r Recipe) Produced() [PieceTypes]int {
	var out [PieceTypes]int
	for _, ln := range r.Lines {
		for i, c := range ln.Pattern.Counts {
			out[i] += ln.Count * c
		}
	}
	return out
}

// Covers reports whether the recipe meets the job's demands at batch size n.
// Overproduction is allowed.
func (r Recipe) Covers(job Job, n int) bool {
	produced := r.Produced()
	for i, d := range job.Demands(n) {
		if produced[i] < d {
			return false
		}
	}
	return true
}

// Trial pairs a batch size with its optimal recipe and resulting waste.
type Trial struct {
	BatchSize int    `json:"batch_size"`
	Recipe    Recipe `json:"recipe"`
	Waste     int    `json:"waste"`
}

// Better reports whether t should be preferred over other: strictly smaller
// waste wins, and equal waste resolves to the smaller batch size.
func (t Trial) Better(other Trial) bool {
	if t.Waste != other.Waste {
		return t.Waste < other.Waste
	}
	return t.BatchSize < other.BatchSize
}
