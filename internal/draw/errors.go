// Package draw implements the deterministic core of the monthly draw engine:
// winning-combination derivation, match classification and prize pool
// allocation. Everything here is pure computation so that simulate and run
// share one code path and repeated invocation with the same inputs yields
// identical output.
package draw

import "errors"

var (
	// ErrNoScores distinguishes "nobody played" from a draw that produced
	// zero winners.
	ErrNoScores = errors.New("no scores submitted before the cutoff")

	// ErrInsufficientDiversity is returned when fewer than 5 distinct
	// in-range values exist, so no valid combination can be derived.
	ErrInsufficientDiversity = errors.New("insufficient score diversity for a winning combination")

	// ErrBadTierSplit is returned when the configured tier percentages do
	// not sum to 100.
	ErrBadTierSplit = errors.New("tier percentages must sum to 100")
)
