package deck

import "math/rand/v2"

// TwoPointOrderCrossover picks random points s <= e, copies parent1[s..e]
// (both ends inclusive) into the child verbatim, then fills the remaining positions by scanning
// parent2 left-to-right and skipping cards already placed. The result is
// always a valid permutation: every card appears in parent1 exactly once,
// so the parent2 scan places exactly the complement.
func TwoPointOrderCrossover(parent1, parent2 Deck, rng *rand.Rand) Deck {
	s := rng.IntN(NumCards)
	e := rng.IntN(NumCards)
	if s > e {
		s, e = e, s
	}

	var child Deck
	var placed [NumCards]bool
	for i := s; i <= e; i++ {
		child[i] = parent1[i]
		placed[parent1[i]] = true
	}

	pos := 0
	for _, c := range parent2 {
		if placed[c] {
			continue
		}
		for pos >= s && pos <= e {
			pos++
		}
		child[pos] = c
		pos++
	}
	return child
}

// UniformOrderCrossover flips a coin per position: heads copies parent1's
// card into that slot, tails leaves a hole. Holes are then filled from
// parent2 in left-to-right order, skipping cards already placed, which
// again guarantees the result is a permutation.
func UniformOrderCrossover(parent1, parent2 Deck, rng *rand.Rand) Deck {
	var child Deck
	var hole [NumCards]bool
	var placed [NumCards]bool

	for i, c := range parent1 {
		if rng.IntN(2) == 0 {
			child[i] = c
			placed[c] = true
		} else {
			hole[i] = true
		}
	}

	pos := 0
	for _, c := range parent2 {
		if placed[c] {
			continue
		}
		for pos < NumCards && !hole[pos] {
			pos++
		}
		if pos >= NumCards {
			break
		}
		child[pos] = c
		pos++
	}
	return child
}
