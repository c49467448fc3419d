// Package deck implements the 52-card model, deck permutations, and the
// genetic operators (crossover, mutation) that the search strategies apply
// to candidate deck orderings.
package deck

import (
	"fmt"
	"strings"
)

// Suit identifies one of the four card suits.
type Suit uint8

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the suit's glyph.
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// rankGlyphs maps a 0-indexed value (0=Two .. 12=Ace) to its display glyph.
var rankGlyphs = [13]string{"2", "3", "4", "5", "6", "7", "8", "9", "T", "J", "Q", "K", "A"}

// Card is a card id in [0, 51]. suit = id/13, value = id%13 (0=Two .. 12=Ace).
// Cards are totally ordered by id, which doubles as a compact, comparable,
// hashable representation used directly as a map/slice key throughout the
// evaluator and deck packages.
type Card uint8

// NumCards is the number of distinct cards in a standard deck.
const NumCards = 52

// NewCard builds a Card from a suit and a 0-indexed value (0=Two .. 12=Ace).
func NewCard(suit Suit, value int) Card {
	return Card(int(suit)*13 + value)
}

// Suit returns the card's suit.
func (c Card) Suit() Suit {
	return Suit(c / 13)
}

// Value returns the card's 0-indexed value (0=Two .. 12=Ace).
func (c Card) Value() int {
	return int(c % 13)
}

// Rank returns the card's evaluation strength, 2..14 (Ace high).
func (c Card) Rank() int {
	return c.Value() + 2
}

// Valid reports whether the card id is within [0, NumCards).
func (c Card) Valid() bool {
	return int(c) < NumCards
}

// String renders the card as "<value><suit>" with a suit glyph, e.g. "A♠",
// "T♥", "2♣".
func (c Card) String() string {
	return rankGlyphs[c.Value()] + c.Suit().String()
}

// ParseCard parses a single "<value><suit>" token, e.g. "As" or "Td".
func ParseCard(s string) (Card, error) {
	runes := []rune(s)
	if len(runes) < 2 {
		return 0, fmt.Errorf("deck: invalid card %q: too short", s)
	}
	suitRune := runes[len(runes)-1]
	valueStr := strings.ToUpper(string(runes[:len(runes)-1]))

	value := -1
	for i, glyph := range rankGlyphs {
		if glyph == valueStr {
			value = i
			break
		}
	}
	if value == -1 {
		return 0, fmt.Errorf("deck: invalid card %q: unknown value %q", s, valueStr)
	}

	var suit Suit
	switch suitRune {
	case '♠', 's', 'S':
		suit = Spades
	case '♥', 'h', 'H':
		suit = Hearts
	case '♦', 'd', 'D':
		suit = Diamonds
	case '♣', 'c', 'C':
		suit = Clubs
	default:
		return 0, fmt.Errorf("deck: invalid card %q: unknown suit %q", s, string(suitRune))
	}

	return NewCard(suit, value), nil
}
