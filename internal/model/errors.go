package model

import "errors"

var (
	// ErrInvalidDimensions indicates malformed input lengths, multiplicities,
	// or batch bound. Fatal; surfaced immediately without retry.
	ErrInvalidDimensions = errors.New("invalid dimensions")

	// ErrEmptyPatternSet indicates the pattern generator produced no patterns.
	// The blank pattern is always generated, so this is an internal invariant
	// breach, not a user error.
	ErrEmptyPatternSet = errors.New("empty pattern set")

	// ErrNoFeasibleBatch indicates that every batch size in range was
	// infeasible. A legitimate outcome, not a crash.
	ErrNoFeasibleBatch = errors.New("no feasible batch size within bound")
)
