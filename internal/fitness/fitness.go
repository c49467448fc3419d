// Package fitness scores a deck against the objective the search strategies
// optimise: how many of its 52 cyclic cuts make the dealer win, plus a
// denser "hybrid" scalar that gives local search a gradient to climb even
// when the win count itself is flat.
package fitness

import (
	"github.com/lox/decksolver/internal/deck"
	"github.com/lox/decksolver/internal/evaltable"
	"github.com/lox/decksolver/internal/oracle"
)

// cutRange returns the set of cut positions considered for a fitness
// evaluation: every position, or the "realistic" subset that excludes cuts
// within 5 cards of either boundary.
func cutRange(realistic bool) (start, end int) {
	if realistic {
		return 5, 47
	}
	return 0, deck.NumCards
}

// MaxWins is the win count a perfect deck achieves: 52 over all cuts, or 42
// over the realistic subset.
func MaxWins(realistic bool) int {
	if realistic {
		return 42
	}
	return deck.NumCards
}

// NumWins counts, over the chosen cut range, how many cyclic cuts of d
// result in the dealer winning an numPlayers-player deal.
func NumWins(numPlayers int, d deck.Deck, table *evaltable.ScoreTable, realistic bool) int {
	start, end := cutRange(realistic)
	wins := 0
	for k := start; k < end; k++ {
		cut := d.Cut(k)
		game := oracle.DealRound(numPlayers, cut)
		if game.DealerWins(table) {
			wins++
		}
	}
	return wins
}

// projectScore maps a Score to an integer that preserves its lexicographic
// (rank, high) ordering, for computing margins between players.
func projectScore(rank, high uint8) int {
	return int(rank)*16 + int(high)
}

// HybridScore combines win count (the dominant term) with the summed margin
// between the dealer's score and the best opponent's score across every
// considered cut, so strategies have a gradient to climb even between
// discrete win-count improvements.
func HybridScore(numPlayers int, d deck.Deck, table *evaltable.ScoreTable, realistic bool) int {
	start, end := cutRange(realistic)
	wins := 0
	margin := 0
	for k := start; k < end; k++ {
		cut := d.Cut(k)
		game := oracle.DealRound(numPlayers, cut)

		dealerScore := game.PlayerScore(0, table)
		best := game.PlayerScore(1, table)
		for i := 2; i < numPlayers; i++ {
			s := game.PlayerScore(i, table)
			if s.Compare(best) > 0 {
				best = s
			}
		}

		if game.DealerWins(table) {
			wins++
		}
		margin += projectScore(dealerScore.Rank, dealerScore.High) - projectScore(best.Rank, best.High)
	}
	return wins*100000 + margin
}
