package evaluator

import "github.com/lox/decksolver/internal/deck"

// sevenChooseFive enumerates the C(7,5)=21 index combinations used to pick
// every 5-card subset of a 7-card hand.
var sevenChooseFive = func() [21][5]int {
	var combos [21][5]int
	n := 0
	for a := 0; a < 7; a++ {
		for b := a + 1; b < 7; b++ {
			for c := b + 1; c < 7; c++ {
				for d := c + 1; d < 7; d++ {
					for e := d + 1; e < 7; e++ {
						combos[n] = [5]int{a, b, c, d, e}
						n++
					}
				}
			}
		}
	}
	return combos
}()

// Evaluate7 scores a 7-card hand: the best (highest lexicographic (rank,
// high)) of its 21 five-card subsets. This is what the precomputed table
// caches, since this enumeration is the expensive part of the oracle's
// O(21·N·52) per-deck evaluation cost.
func Evaluate7(cards [7]deck.Card) Score {
	best := Score{}
	for _, combo := range sevenChooseFive {
		var five [5]deck.Card
		for i, idx := range combo {
			five[i] = cards[idx]
		}
		if s := Evaluate5(five); s.Compare(best) > 0 {
			best = s
		}
	}
	return best
}

// ScoreHand scores a sorted 7-card Hand.
func ScoreHand(h Hand) Score {
	return Evaluate7([7]deck.Card(h))
}
