package evaluator

import (
	"sort"

	"github.com/lox/decksolver/internal/deck"
)

// Evaluate5 scores a 5-card hand as (rank, high):
//
//   - high card = 14 if an ace is present and the hand is not the wheel
//     (A-2-3-4-5, whose high card is 5); otherwise the maximum rank value.
//   - flush = all five cards share a suit.
//   - straight = five consecutive values, or the wheel.
//   - rank is the first matching rule in order: straight flush, quads,
//     full house, flush, straight, trips, two pair, one pair, high card.
func Evaluate5(cards [5]deck.Card) Score {
	values := make([]int, 5)
	for i, c := range cards {
		values[i] = c.Rank()
	}
	sort.Ints(values)

	isFlush := true
	suit := cards[0].Suit()
	for _, c := range cards[1:] {
		if c.Suit() != suit {
			isFlush = false
			break
		}
	}

	straightHigh, isStraight := straightHigh(values)
	high := highCard(values, isStraight, straightHigh)

	counts := countValues(values)

	switch {
	case isStraight && isFlush:
		return Score{Rank: StraightFlush, High: uint8(straightHigh)}
	case counts.quad != 0:
		return Score{Rank: FourOfAKind, High: uint8(high)}
	case counts.trips != 0 && counts.pair != 0:
		return Score{Rank: FullHouse, High: uint8(high)}
	case isFlush:
		return Score{Rank: Flush, High: uint8(high)}
	case isStraight:
		return Score{Rank: Straight, High: uint8(straightHigh)}
	case counts.trips != 0:
		return Score{Rank: ThreeOfAKind, High: uint8(high)}
	case counts.pairCount >= 2:
		return Score{Rank: TwoPair, High: uint8(high)}
	case counts.pair != 0:
		return Score{Rank: OnePair, High: uint8(high)}
	default:
		return Score{Rank: HighCard, High: uint8(high)}
	}
}

// highCard implements the high-card rule: ace-high unless the hand is the
// wheel, in which case the wheel's high card (5) applies.
func highCard(sortedValues []int, isStraight bool, straightHigh int) int {
	if isStraight {
		return straightHigh
	}
	if sortedValues[len(sortedValues)-1] == 14 {
		return 14
	}
	return sortedValues[len(sortedValues)-1]
}

// straightHigh reports whether the sorted values contain 5 consecutive
// ranks (including the wheel, A-2-3-4-5) and, if so, the straight's high
// card (5 for the wheel, otherwise the top value).
func straightHigh(sortedValues []int) (high int, ok bool) {
	unique := dedupe(sortedValues)
	if len(unique) < 5 {
		return 0, false
	}

	// Wheel: A,2,3,4,5.
	if unique[0] == 2 && unique[1] == 3 && unique[2] == 4 && unique[3] == 5 && unique[len(unique)-1] == 14 {
		return 5, true
	}

	for i := 0; i+4 < len(unique); i++ {
		if unique[i+4]-unique[i] == 4 {
			return unique[i+4], true
		}
	}
	return 0, false
}

func dedupe(sorted []int) []int {
	out := sorted[:0:0]
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			out = append(out, v)
		}
	}
	return out
}

type valueCounts struct {
	quad, trips, pair int
	pairCount         int
}

// countValues finds the value appearing 4 times (quad), 3 times (trips),
// and the highest value appearing exactly 2 times (pair), plus how many
// distinct values appear exactly twice (pairCount, for two-pair detection).
func countValues(sortedValues []int) valueCounts {
	var freq [15]int
	for _, v := range sortedValues {
		freq[v]++
	}
	var c valueCounts
	for v := 14; v >= 2; v-- {
		switch freq[v] {
		case 4:
			if c.quad == 0 {
				c.quad = v
			}
		case 3:
			if c.trips == 0 {
				c.trips = v
			}
		case 2:
			c.pairCount++
			if c.pair == 0 {
				c.pair = v
			}
		}
	}
	return c
}
