package deck

import (
	"testing"

	"github.com/lox/decksolver/internal/randutil"
)

func TestMutationKindsPreservePermutation(t *testing.T) {
	rng := randutil.New(3)
	kinds := []MutationKind{MutationSwap, MutationBlockSwap, MutationReversal, MutationRotation, MutationScramble}
	for _, k := range kinds {
		d := NewCanonical()
		d.Shuffle(rng)
		for i := 0; i < 50; i++ {
			k.Apply(&d, rng)
			if err := d.Validate(); err != nil {
				t.Fatalf("mutation %d broke permutation invariant: %v", k, err)
			}
		}
	}
}

func TestAdaptiveMutatePreservesPermutation(t *testing.T) {
	rng := randutil.New(9)
	d := NewCanonical()
	for i := 0; i < 100; i++ {
		rate := 0.1
		if i%2 == 0 {
			rate = 0.5
		}
		d = AdaptiveMutate(d, rate, rng)
		if err := d.Validate(); err != nil {
			t.Fatalf("adaptive mutate broke permutation invariant at %d: %v", i, err)
		}
	}
}

func TestBlockSwapNoOpOnOverlap(t *testing.T) {
	d := NewCanonical()
	before := d
	applyBlockSwap(&d, 5, 7, 10) // overlapping ranges [5,15) and [7,17)
	if d != before {
		t.Error("overlapping BlockSwap should be a no-op")
	}
}

func TestBlockSwapNoOpOutOfBounds(t *testing.T) {
	d := NewCanonical()
	before := d
	applyBlockSwap(&d, 45, 0, 10) // [45,55) exceeds bounds
	if d != before {
		t.Error("out-of-bounds BlockSwap should be a no-op")
	}
}

func TestReversalNoOpOnBadRange(t *testing.T) {
	d := NewCanonical()
	before := d
	applyReversal(&d, 10, 10)
	if d != before {
		t.Error("degenerate reversal should be a no-op")
	}
}

func TestRotationMatchesCut(t *testing.T) {
	rng := randutil.New(5)
	d := NewCanonical()
	original := d
	MutationRotation.Apply(&d, rng)
	if d == original {
		t.Error("rotation should move at least one card for a 52 card deck")
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("rotation broke permutation invariant: %v", err)
	}

	// Replay the rotation's draw of k to check it equals Cut(k).
	replay := randutil.New(5)
	k := 1 + replay.IntN(NumCards-1)
	if want := original.Cut(k); d != want {
		t.Errorf("rotation = %v, want Cut(%d) = %v", d, k, want)
	}
}
