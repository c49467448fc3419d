package deck

import (
	"testing"

	"github.com/lox/decksolver/internal/randutil"
)

func shuffledPair(seed int64) (Deck, Deck) {
	rng := randutil.New(seed)
	p1 := NewCanonical()
	p1.Shuffle(rng)
	p2 := NewCanonical()
	p2.Shuffle(rng)
	return p1, p2
}

func TestTwoPointOrderCrossoverPreservesPermutation(t *testing.T) {
	rng := randutil.New(7)
	for i := 0; i < 200; i++ {
		p1, p2 := shuffledPair(int64(i))
		child := TwoPointOrderCrossover(p1, p2, rng)
		if err := child.Validate(); err != nil {
			t.Fatalf("iteration %d: crossover produced invalid deck: %v", i, err)
		}
	}
}

func TestUniformOrderCrossoverPreservesPermutation(t *testing.T) {
	rng := randutil.New(11)
	for i := 0; i < 200; i++ {
		p1, p2 := shuffledPair(int64(i + 1000))
		child := UniformOrderCrossover(p1, p2, rng)
		if err := child.Validate(); err != nil {
			t.Fatalf("iteration %d: crossover produced invalid deck: %v", i, err)
		}
	}
}

func TestTwoPointOrderCrossoverKeepsParentSegment(t *testing.T) {
	rng := randutil.New(42)
	p1 := NewCanonical()
	p2 := p1.Cut(13)
	child := TwoPointOrderCrossover(p1, p2, rng)
	if err := child.Validate(); err != nil {
		t.Fatalf("invalid child: %v", err)
	}

	// Replay the crossover's first two draws to recover its points.
	replay := randutil.New(42)
	s, e := replay.IntN(NumCards), replay.IntN(NumCards)
	if s > e {
		s, e = e, s
	}
	for i := s; i <= e; i++ {
		if child[i] != p1[i] {
			t.Errorf("child[%d] = %s, want parent1's %s (segment [%d, %d])", i, child[i], p1[i], s, e)
		}
	}
}
