package evaltable

import "io"

// PrecomputeFirstN and LoadFirstN expose the package's reduced-scale table
// construction to other packages' tests, so fixtures covering "every hand
// that can be built from the first few card ids" can be built without
// materializing the full 134M-entry table.
func PrecomputeFirstN(w io.Writer, n uint64) error { return precomputeN(w, n) }

// LoadFirstN loads a table previously written by PrecomputeFirstN.
func LoadFirstN(r io.Reader, n uint64) (*ScoreTable, error) { return loadN(r, n) }

// EntriesCoveringIDsBelow returns the smallest n such that PrecomputeFirstN
// covers every 7-card hand drawable from card ids [0, maxID): that is, the
// lexicographic rank of the last such hand, plus one.
func EntriesCoveringIDsBelow(maxID int) uint64 {
	if maxID < 7 {
		return 0
	}
	ids := [7]int{maxID - 7, maxID - 6, maxID - 5, maxID - 4, maxID - 3, maxID - 2, maxID - 1}
	return lexRank(ids) + 1
}
