package evaluator

import (
	"fmt"
	"sort"

	"github.com/lox/decksolver/internal/deck"
)

// Hand is a 7-card lookup key: exactly 7 cards in strictly increasing id
// order. It is the key type for the precomputed evaluator table.
type Hand [7]deck.Card

// NewHand sorts cards ascending and validates the 7-card, no-duplicates
// invariant required of a table lookup key.
func NewHand(cards [7]deck.Card) (Hand, error) {
	h := Hand(cards)
	sort.Slice(h[:], func(i, j int) bool { return h[i] < h[j] })
	for i := 1; i < len(h); i++ {
		if h[i] == h[i-1] {
			return Hand{}, fmt.Errorf("evaluator: duplicate card %s in hand", h[i])
		}
	}
	return h, nil
}

// Cards returns the hand's cards as a slice, still in sorted order.
func (h Hand) Cards() []deck.Card {
	out := make([]deck.Card, len(h))
	copy(out, h[:])
	return out
}
