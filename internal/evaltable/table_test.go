package evaltable

import (
	"bytes"
	"testing"

	"github.com/lox/decksolver/internal/deck"
	"github.com/lox/decksolver/internal/evaluator"
)

// buildSmallTable precomputes and loads just the first n entries of the
// full enumeration, so round-trip behavior can be checked without writing
// the full 1.2GB table.
func buildSmallTable(t *testing.T, n uint64) *ScoreTable {
	t.Helper()
	var buf bytes.Buffer
	if err := precomputeN(&buf, n); err != nil {
		t.Fatalf("precomputeN: %v", err)
	}
	if got := buf.Len(); got != int(n)*recordSize {
		t.Fatalf("wrote %d bytes, want %d", got, int(n)*recordSize)
	}
	table, err := loadN(&buf, n)
	if err != nil {
		t.Fatalf("loadN: %v", err)
	}
	return table
}

func TestPrecomputeLoadRoundTrip(t *testing.T) {
	const n = 5000
	table := buildSmallTable(t, n)
	if table.Len() != n {
		t.Fatalf("table.Len() = %d, want %d", table.Len(), n)
	}

	for _, rank := range []uint64{0, 1, 42, n - 1} {
		ids := lexUnrank(rank)
		var cards [7]deck.Card
		for i, id := range ids {
			cards[i] = deck.Card(id)
		}
		hand, err := evaluator.NewHand(cards)
		if err != nil {
			t.Fatalf("NewHand: %v", err)
		}
		want := evaluator.Evaluate7(cards)
		got, err := table.Score(hand)
		if err != nil {
			t.Fatalf("table.Score: %v", err)
		}
		if got != want {
			t.Errorf("rank %d: table.Score = %v, want %v", rank, got, want)
		}
	}
}

func TestLoadRejectsTruncatedStream(t *testing.T) {
	var buf bytes.Buffer
	if err := precomputeN(&buf, 10); err != nil {
		t.Fatalf("precomputeN: %v", err)
	}
	truncated := bytes.NewReader(buf.Bytes()[:5*recordSize])
	if _, err := loadN(truncated, 10); err == nil {
		t.Error("expected error loading a truncated stream")
	}
}

func TestLoadRejectsCorruptCardID(t *testing.T) {
	var buf bytes.Buffer
	if err := precomputeN(&buf, 10); err != nil {
		t.Fatalf("precomputeN: %v", err)
	}
	data := buf.Bytes()
	data[0] = 255 // corrupt the first record's first card id
	if _, err := loadN(bytes.NewReader(data), 10); err == nil {
		t.Error("expected error loading a stream with a corrupt card id")
	}
}

func TestScoreOutOfRangeRank(t *testing.T) {
	table := buildSmallTable(t, 10)
	cards := [7]deck.Card{45, 46, 47, 48, 49, 50, 51}
	hand, err := evaluator.NewHand(cards)
	if err != nil {
		t.Fatalf("NewHand: %v", err)
	}
	if _, err := table.Score(hand); err == nil {
		t.Error("expected error looking up a hand outside the truncated table")
	}
}

func TestMustScorePanicsOnMiss(t *testing.T) {
	table := buildSmallTable(t, 10)
	cards := [7]deck.Card{45, 46, 47, 48, 49, 50, 51}
	hand, err := evaluator.NewHand(cards)
	if err != nil {
		t.Fatalf("NewHand: %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Error("expected MustScore to panic on a miss")
		}
	}()
	table.MustScore(hand)
}
