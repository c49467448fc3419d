// Package oracle deals a Texas Hold'em round from a cut deck and determines
// the winning player by best seven-card hand, using the evaluator table for
// O(1) scoring instead of running the 21-subset evaluator directly.
package oracle

import (
	"fmt"

	"github.com/lox/decksolver/internal/deck"
	"github.com/lox/decksolver/internal/evaltable"
	"github.com/lox/decksolver/internal/evaluator"
)

// Game is the outcome of one dealt round: each player's two hole cards and
// the five shared community cards. Player 0 is always the dealer.
type Game struct {
	NumPlayers int
	Hole       [][2]deck.Card
	Community  [5]deck.Card
}

// DealRound replicates the Texas Hold'em deal pattern from the top of d:
// two hole-card passes in seat order, a burn, the three-card flop, a burn,
// the turn, a burn, the river. It panics if the deck can't supply the
// 2*numPlayers+8 cards the deal requires — a caller bug, since every deck
// in this system has exactly 52 cards and numPlayers is a CLI-validated
// constant.
func DealRound(numPlayers int, d deck.Deck) Game {
	required := 2*numPlayers + 8
	if required > deck.NumCards {
		panic(fmt.Sprintf("oracle: deal_round needs %d cards for %d players, deck has %d", required, numPlayers, deck.NumCards))
	}

	cursor := 0
	draw := func() deck.Card {
		c := d[cursor]
		cursor++
		return c
	}

	hole := make([][2]deck.Card, numPlayers)
	for pass := 0; pass < 2; pass++ {
		for p := 0; p < numPlayers; p++ {
			hole[p][pass] = draw()
		}
	}

	draw() // burn
	var community [5]deck.Card
	community[0] = draw()
	community[1] = draw()
	community[2] = draw()
	draw() // burn
	community[3] = draw()
	draw() // burn
	community[4] = draw()

	return Game{NumPlayers: numPlayers, Hole: hole, Community: community}
}

// CardsDrawn reports how many cards a deal for numPlayers consumes.
func CardsDrawn(numPlayers int) int { return 2*numPlayers + 8 }

// PlayerScore builds player i's best seven-card hand (hole cards plus
// community) and looks it up in table.
func (g Game) PlayerScore(i int, table *evaltable.ScoreTable) evaluator.Score {
	cards := [7]deck.Card{
		g.Hole[i][0], g.Hole[i][1],
		g.Community[0], g.Community[1], g.Community[2], g.Community[3], g.Community[4],
	}
	hand, err := evaluator.NewHand(cards)
	if err != nil {
		panic(fmt.Sprintf("oracle: player %d hand invalid: %v", i, err))
	}
	return table.MustScore(hand)
}

// WinningPlayer returns the index of the player with the strongest hand,
// ties broken in favor of the lowest index (first max wins).
func (g Game) WinningPlayer(table *evaltable.ScoreTable) int {
	best := 0
	bestScore := g.PlayerScore(0, table)
	for i := 1; i < g.NumPlayers; i++ {
		s := g.PlayerScore(i, table)
		if s.Compare(bestScore) > 0 {
			best = i
			bestScore = s
		}
	}
	return best
}

// DealerWins reports whether player 0 has the strongest hand.
func (g Game) DealerWins(table *evaltable.ScoreTable) bool {
	return g.WinningPlayer(table) == 0
}
