package search

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/lox/decksolver/internal/evaltable"
)

// skipUnlessSlow mirrors cardrank's eval_test.go gating: the full 134M
// entry evaluator table each strategy needs is too slow to build on every
// `go test`, so these tests only run when explicitly requested.
func skipUnlessSlow(t *testing.T) {
	t.Helper()
	s := os.Getenv("TESTS")
	if !strings.Contains(s, "slow") && !strings.Contains(s, "all") {
		t.Skip("skipping: set TESTS=slow (or TESTS=all) to build the full evaluator table and run this")
	}
}

func fullTable(t *testing.T) *evaltable.ScoreTable {
	t.Helper()
	var buf bytes.Buffer
	if err := evaltable.Precompute(&buf); err != nil {
		t.Fatalf("Precompute: %v", err)
	}
	table, err := evaltable.Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return table
}
