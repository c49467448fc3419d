// Package evaltable builds, serialises, and loads the precomputed 7-card
// hand evaluator table: a fixed-length binary file mapping every possible
// 7-card hand to its (rank, high) score, so the oracle can replace a
// 21-subset evaluator call with a single lookup.
package evaltable

import (
	"bufio"
	"fmt"
	"io"

	"github.com/lox/decksolver/internal/deck"
	"github.com/lox/decksolver/internal/evaluator"
)

// recordSize is the on-disk size of one entry: 7 card id bytes, 1 rank
// byte, 1 high byte. There is no header or footer; the file is exactly
// combinationCount * recordSize bytes.
const recordSize = 9

// FileSize is the exact expected size, in bytes, of a complete table file.
const FileSize = combinationCount * recordSize

// ScoreTable is an immutable, read-only lookup from a 7-card hand to its
// score. It is safe for concurrent use by multiple goroutines once loaded,
// since nothing mutates it after Load or Precompute returns.
//
// The scores are held as a flat slice indexed by a hand's lexicographic
// rank among all C(52,7) combinations, rather than as a literal Go map
// keyed by the 7-tuple: at 134M entries a map's per-entry bucket overhead
// would multiply the table's memory footprint several times over, while a
// slice stores exactly one Score (2 bytes) per entry.
type ScoreTable struct {
	scores []evaluator.Score
}

// Precompute iterates every 7-card combination of the 52 card ids in
// lexicographic order and streams one 9-byte record per hand to w. The
// iteration order matches lexRank, so a table written here can be loaded
// back by Load without needing the card ids to be stored.
func Precompute(w io.Writer) error {
	return precomputeN(w, combinationCount)
}

// precomputeN writes only the first n records of the full enumeration. It
// exists so tests can exercise the Precompute/Load round trip at a scale
// far smaller than the full 134M-entry table.
func precomputeN(w io.Writer, n uint64) error {
	bw := bufio.NewWriterSize(w, 1<<20)
	var record [recordSize]byte
	var cards [7]deck.Card

	var written uint64
	var ids [7]int
outer:
	for ids[0] = 0; ids[0] < 46; ids[0]++ {
		for ids[1] = ids[0] + 1; ids[1] < 47; ids[1]++ {
			for ids[2] = ids[1] + 1; ids[2] < 48; ids[2]++ {
				for ids[3] = ids[2] + 1; ids[3] < 49; ids[3]++ {
					for ids[4] = ids[3] + 1; ids[4] < 50; ids[4]++ {
						for ids[5] = ids[4] + 1; ids[5] < 51; ids[5]++ {
							for ids[6] = ids[5] + 1; ids[6] < 52; ids[6]++ {
								if written >= n {
									break outer
								}
								for i, id := range ids {
									cards[i] = deck.Card(id)
									record[i] = byte(id)
								}
								score := evaluator.Evaluate7(cards)
								record[7] = score.Rank
								record[8] = score.High
								if _, err := bw.Write(record[:]); err != nil {
									return fmt.Errorf("evaltable: write record: %w", err)
								}
								written++
							}
						}
					}
				}
			}
		}
	}
	return bw.Flush()
}

// Load reads a complete table file produced by Precompute. It returns an
// error if the stream doesn't contain exactly combinationCount well-formed
// records, or if a record's card ids don't match the ids implied by its
// position in the lexicographic enumeration (a corrupt or truncated file).
func Load(r io.Reader) (*ScoreTable, error) {
	return loadN(r, combinationCount)
}

// loadN reads exactly n records. Load calls this with the full table size;
// tests call it directly with a small n to check the codec without
// materializing the full table.
func loadN(r io.Reader, n uint64) (*ScoreTable, error) {
	br := bufio.NewReaderSize(r, 1<<20)
	scores := make([]evaluator.Score, n)

	var record [recordSize]byte
	for rank := uint64(0); rank < n; rank++ {
		if _, err := io.ReadFull(br, record[:]); err != nil {
			return nil, fmt.Errorf("evaltable: reading record %d: %w", rank, err)
		}
		want := lexUnrank(rank)
		for i, id := range want {
			if int(record[i]) != id {
				return nil, fmt.Errorf("evaltable: record %d has card id %d at position %d, want %d", rank, record[i], i, id)
			}
		}
		scores[rank] = evaluator.Score{Rank: record[7], High: record[8]}
	}

	// Confirm the stream doesn't contain trailing garbage.
	var extra [1]byte
	if _, err := br.Read(extra[:]); err != io.EOF {
		return nil, fmt.Errorf("evaltable: trailing data after %d records", n)
	}

	return &ScoreTable{scores: scores}, nil
}

// Score looks up a hand's precomputed score.
func (t *ScoreTable) Score(h evaluator.Hand) (evaluator.Score, error) {
	var ids [7]int
	for i, c := range h {
		ids[i] = int(c)
	}
	rank := lexRank(ids)
	if rank >= uint64(len(t.scores)) {
		return evaluator.Score{}, fmt.Errorf("evaltable: rank %d out of range", rank)
	}
	return t.scores[rank], nil
}

// MustScore looks up a hand's score, panicking on a miss. The table is
// total over every valid 7-card hand, so a miss only happens if the table
// was built or loaded incorrectly — a programmer error, not a runtime
// condition callers should handle.
func (t *ScoreTable) MustScore(h evaluator.Hand) evaluator.Score {
	s, err := t.Score(h)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of entries in the table.
func (t *ScoreTable) Len() int { return len(t.scores) }
