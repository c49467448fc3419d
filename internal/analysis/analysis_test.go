package analysis

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/lox/decksolver/internal/evaltable"
)

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

func TestSampleZeroReturnsEmptyReport(t *testing.T) {
	report := Sample(0, 2, nil, false, 1)
	if report.Samples != 0 {
		t.Errorf("Samples = %d, want 0", report.Samples)
	}
	if got := report.String(); !strings.Contains(got, "sampled 0 decks") {
		t.Errorf("String() = %q, want it to mention 0 decks", got)
	}
}

func TestSampleReportedStatsAreWithinRange(t *testing.T) {
	skipUnlessSlow(t)
	table := fullTable(t)

	report := Sample(20, 2, table, true, 42)
	if report.Samples != 20 {
		t.Fatalf("Samples = %d, want 20", report.Samples)
	}
	if report.Min < 0 || report.Min > report.Max || report.Max > report.MaxWins {
		t.Errorf("min/max out of range: min=%d max=%d maxWins=%d", report.Min, report.Max, report.MaxWins)
	}
	if report.Median < float64(report.Min) || report.Median > float64(report.Max) {
		t.Errorf("median %v outside [min, max] = [%d, %d]", report.Median, report.Min, report.Max)
	}

	total := 0
	for _, count := range report.Histogram {
		total += count
	}
	if total != report.Samples {
		t.Errorf("histogram total %d != samples %d", total, report.Samples)
	}

	if report.ThresholdCounts[0] < report.ThresholdCounts[len(report.ThresholdCounts)-1] {
		t.Errorf("lower threshold count (%d) should be >= higher threshold count (%d)",
			report.ThresholdCounts[0], report.ThresholdCounts[len(report.ThresholdCounts)-1])
	}

	if got := report.String(); !strings.Contains(got, "sampled 20 decks") {
		t.Errorf("String() = %q, want it to mention 20 decks", got)
	}
}
