package deck

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Deck is an ordered sequence of all 52 distinct cards: a permutation of
// {0..51}. It is a plain value type — 52 bytes — so it is freely cloned by
// assignment; every mutator below either takes a pointer receiver (in-place)
// or returns a new value, and both preserve the permutation invariant.
type Deck [NumCards]Card

// NewCanonical returns the deck in value-major, suit-minor order: 2♠ 2♥ 2♦
// 2♣ 3♠ ... A♣. It is a deterministic fixed point used as an identity for
// tests (e.g. NewCanonical().Cut(k).Cut(52-k) == NewCanonical()).
func NewCanonical() Deck {
	var d Deck
	i := 0
	for value := 0; value < 13; value++ {
		for suit := Spades; suit <= Clubs; suit++ {
			d[i] = NewCard(suit, value)
			i++
		}
	}
	return d
}

// Shuffle randomises the deck in place using Fisher-Yates.
func (d *Deck) Shuffle(rng *rand.Rand) {
	for i := len(d) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d[i], d[j] = d[j], d[i]
	}
}

// Cut returns the deck cyclically rotated by k: result[i] = d[(i+k) mod 52].
func (d Deck) Cut(k int) Deck {
	k = ((k % NumCards) + NumCards) % NumCards
	var out Deck
	for i := range d {
		out[i] = d[(i+k)%NumCards]
	}
	return out
}

// Swap transposes the cards at positions i and j in place.
func (d *Deck) Swap(i, j int) {
	d[i], d[j] = d[j], d[i]
}

// Validate reports whether d is a permutation of {0..51}: no duplicates, no
// gaps, every card id in range. A violation is a programming error at a
// trust boundary (crossover output, hand sorting); callers should treat
// failure as fatal.
func (d Deck) Validate() error {
	var seen [NumCards]bool
	for _, c := range d {
		if !c.Valid() {
			return fmt.Errorf("deck: invalid card id %d", c)
		}
		if seen[c] {
			return fmt.Errorf("deck: duplicate card %s", c)
		}
		seen[c] = true
	}
	return nil
}

// MustValidate panics if d is not a permutation of {0..51}. Used at trust
// boundaries (crossover output, hand sorting) where violating the
// invariant is unrecoverable.
func (d Deck) MustValidate() {
	if err := d.Validate(); err != nil {
		panic(err)
	}
}

// String renders the deck as comma-separated "<value><suit>" tokens.
func (d Deck) String() string {
	parts := make([]string, len(d))
	for i, c := range d {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
