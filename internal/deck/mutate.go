package deck

import "math/rand/v2"

// MutationKind tags one of the five mutation operators. Represented as a
// small integer rather than an interface so mutation selection in the
// search hot path never pays for virtual dispatch.
type MutationKind uint8

const (
	MutationSwap MutationKind = iota
	MutationBlockSwap
	MutationReversal
	MutationRotation
	MutationScramble
)

// scrambleMaxLen caps the Scramble operator's segment length so the
// perturbation it introduces stays local.
const scrambleMaxLen = 10

// Apply performs the mutation in place. BlockSwap is a no-op when the two
// segments would overlap or exceed the deck bounds; Reversal and Scramble
// are no-ops on a degenerate or out-of-range span. None of these can ever
// panic or break the permutation invariant — every code path below moves
// cards that are already present rather than inventing new ones.
func (k MutationKind) Apply(d *Deck, rng *rand.Rand) {
	switch k {
	case MutationSwap:
		i, j := rng.IntN(NumCards), rng.IntN(NumCards)
		d.Swap(i, j)
	case MutationBlockSwap:
		a, b, length := rng.IntN(NumCards), rng.IntN(NumCards), 1+rng.IntN(NumCards/2)
		applyBlockSwap(d, a, b, length)
	case MutationReversal:
		s, e := rng.IntN(NumCards), rng.IntN(NumCards)
		if s > e {
			s, e = e, s
		}
		applyReversal(d, s, e)
	case MutationRotation:
		k := 1 + rng.IntN(NumCards-1)
		*d = d.Cut(k)
	case MutationScramble:
		s := rng.IntN(NumCards)
		length := 1 + rng.IntN(scrambleMaxLen)
		e := s + length
		if e > NumCards {
			e = NumCards
		}
		applyScramble(d, s, e, rng)
	}
}

// applyBlockSwap swaps the length-len segments starting at a and b. It is a
// no-op if the segments overlap or run past the end of the deck.
func applyBlockSwap(d *Deck, a, b, length int) {
	if length <= 0 {
		return
	}
	if a+length > NumCards || b+length > NumCards {
		return
	}
	if rangesOverlap(a, a+length, b, b+length) {
		return
	}
	for i := 0; i < length; i++ {
		d[a+i], d[b+i] = d[b+i], d[a+i]
	}
}

func rangesOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// applyReversal reverses the half-open segment [s, e).
func applyReversal(d *Deck, s, e int) {
	if s < 0 || e > NumCards || s >= e {
		return
	}
	for i, j := s, e-1; i < j; i, j = i+1, j-1 {
		d[i], d[j] = d[j], d[i]
	}
}

// applyScramble Fisher-Yates shuffles the half-open segment [s, e).
func applyScramble(d *Deck, s, e int, rng *rand.Rand) {
	if s < 0 || e > NumCards || s >= e {
		return
	}
	for i := e - 1; i > s; i-- {
		j := s + rng.IntN(i-s+1)
		d[i], d[j] = d[j], d[i]
	}
}

// AdaptiveMutate applies a small number of mutations chosen according to
// rate. When rate > 0.2 the kind is sampled uniformly over all five
// operators and 2-4 mutations are applied; otherwise the choice is weighted
// toward Swap (60%), Reversal (30%), BlockSwap (10%), and only 1-2
// mutations are applied.
func AdaptiveMutate(d Deck, rate float64, rng *rand.Rand) Deck {
	var count int
	highRate := rate > 0.2
	if highRate {
		count = 2 + rng.IntN(3)
	} else {
		count = 1 + rng.IntN(2)
	}

	for i := 0; i < count; i++ {
		kind := pickMutationKind(highRate, rng)
		kind.Apply(&d, rng)
	}
	return d
}

func pickMutationKind(highRate bool, rng *rand.Rand) MutationKind {
	if highRate {
		return MutationKind(rng.IntN(5))
	}
	roll := rng.Float64()
	switch {
	case roll < 0.6:
		return MutationSwap
	case roll < 0.9:
		return MutationReversal
	default:
		return MutationBlockSwap
	}
}
