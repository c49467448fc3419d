package oracle

import (
	"bytes"
	"testing"

	"github.com/lox/decksolver/internal/deck"
	"github.com/lox/decksolver/internal/evaltable"
	"github.com/lox/decksolver/internal/evaluator"
)

func TestDealRoundConsumesExpectedCards(t *testing.T) {
	d := deck.NewCanonical()
	game := DealRound(4, d)
	if got := CardsDrawn(4); got != 16 {
		t.Fatalf("CardsDrawn(4) = %d, want 16", got)
	}
	if len(game.Hole) != 4 {
		t.Fatalf("len(Hole) = %d, want 4", len(game.Hole))
	}

	seen := make(map[deck.Card]bool)
	for _, hole := range game.Hole {
		seen[hole[0]] = true
		seen[hole[1]] = true
	}
	for _, c := range game.Community {
		seen[c] = true
	}
	// 8 hole + 5 community = 13 distinct cards actually dealt (burns excluded).
	if len(seen) != 13 {
		t.Fatalf("expected 13 distinct dealt cards, got %d", len(seen))
	}

	// The first 16 cards of the deck should all be accounted for as either
	// dealt or burned; the remaining 36 form the untouched draw pile.
	dealt := map[deck.Card]bool{}
	for i := 0; i < 16; i++ {
		dealt[d[i]] = true
	}
	if len(dealt) != 16 {
		t.Fatalf("expected 16 distinct cards consumed from the deck, got %d", len(dealt))
	}
	for c := range seen {
		if !dealt[c] {
			t.Errorf("dealt card %s is not among the first 16 cards of the deck", c)
		}
	}
}

func TestDealRoundPanicsWhenDeckTooSmallForPlayerCount(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic dealing to more players than the deck supports")
		}
	}()
	DealRound(23, deck.NewCanonical()) // 2*23+8 = 54 > 52
}

// lowCardsDeck returns a valid permutation of {0..51} whose first 12
// positions hold ids 0..11 in order. A 2-player deal only ever touches
// those first 12 positions, so every hand it produces uses small ids —
// letting tests build a partial evaluator table (the lexicographic prefix
// up to the last hand over ids 0..11, about 70.9M of the 133.8M entries)
// instead of the full one.
func lowCardsDeck() deck.Deck {
	var d deck.Deck
	for i := 0; i < deck.NumCards; i++ {
		d[i] = deck.Card(i)
	}
	return d
}

func buildSmallTable(t *testing.T) *evaltable.ScoreTable {
	t.Helper()
	n := evaltable.EntriesCoveringIDsBelow(12)
	var buf bytes.Buffer
	if err := evaltable.PrecomputeFirstN(&buf, n); err != nil {
		t.Fatalf("PrecomputeFirstN: %v", err)
	}
	table, err := evaltable.LoadFirstN(&buf, n)
	if err != nil {
		t.Fatalf("LoadFirstN: %v", err)
	}
	return table
}

func TestPlayerScoreAndDealerWins(t *testing.T) {
	d := lowCardsDeck()
	game := DealRound(2, d)

	cards0 := [7]deck.Card{game.Hole[0][0], game.Hole[0][1], game.Community[0], game.Community[1], game.Community[2], game.Community[3], game.Community[4]}
	cards1 := [7]deck.Card{game.Hole[1][0], game.Hole[1][1], game.Community[0], game.Community[1], game.Community[2], game.Community[3], game.Community[4]}
	want0 := evaluator.Evaluate7(cards0)
	want1 := evaluator.Evaluate7(cards1)

	table := buildSmallTable(t)
	got0 := game.PlayerScore(0, table)
	got1 := game.PlayerScore(1, table)
	if got0 != want0 {
		t.Errorf("PlayerScore(0) = %v, want %v", got0, want0)
	}
	if got1 != want1 {
		t.Errorf("PlayerScore(1) = %v, want %v", got1, want1)
	}

	wantDealerWins := want0.Compare(want1) >= 0
	if game.DealerWins(table) != wantDealerWins {
		t.Errorf("DealerWins() = %v, want %v (dealer score %v vs %v)", game.DealerWins(table), wantDealerWins, want0, want1)
	}
}

func TestWinningPlayerTieBreaksToLowestIndex(t *testing.T) {
	// Build a 3-player game where players tie on the best score (on this
	// deck all three make a king-high spade flush); the winner must be the
	// lowest-indexed of the tied players.
	d := lowCardsDeck()
	game := DealRound(3, d)
	table := buildSmallTable(t)

	scores := make([]evaluator.Score, game.NumPlayers)
	for i := range scores {
		scores[i] = game.PlayerScore(i, table)
	}
	best := scores[0]
	for _, s := range scores[1:] {
		if s.Compare(best) > 0 {
			best = s
		}
	}
	winner := game.WinningPlayer(table)
	if scores[winner] != best {
		t.Fatalf("WinningPlayer returned a non-maximal score: %v, best is %v", scores[winner], best)
	}
	for i := 0; i < winner; i++ {
		if scores[i] == best {
			t.Fatalf("player %d ties the winner's score %v but wasn't chosen", i, best)
		}
	}
}
