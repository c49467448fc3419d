// Package analysis samples random deck permutations to characterise how
// hard a NumPlayers-dealer configuration is to solve, reporting the same
// min/median/mean/max/threshold/histogram shape the original solver's CLI
// printed. Grounded on internal/statistics.Statistics: a running
// sum-of-squares accumulator plus a sorted-copy Median, adapted here from
// per-hand big-blind results to per-deck win counts.
package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/lox/decksolver/internal/deck"
	"github.com/lox/decksolver/internal/evaltable"
	"github.com/lox/decksolver/internal/fitness"
	"github.com/lox/decksolver/internal/randutil"
)

// Thresholds are the win counts the report counts decks meeting or
// exceeding, mirroring the original's "how many random decks are already
// this good" breakdown.
var Thresholds = []int{10, 20, 30, 40}

// Report summarises NumWins across a random sample of shuffled decks.
type Report struct {
	NumPlayers int
	Realistic  bool
	Samples    int
	MaxWins    int

	Min    int
	Max    int
	Mean   float64
	Median float64
	StdDev float64

	// ThresholdCounts[i] is how many sampled decks scored >= Thresholds[i].
	ThresholdCounts []int

	// Histogram[w] is how many sampled decks scored exactly w wins.
	Histogram []int
}

// Sample draws n random deck permutations (Fisher-Yates shuffles of the
// canonical deck, seeded off seed so a report is reproducible) and scores
// each with fitness.NumWins, accumulating a Report.
func Sample(n, numPlayers int, table *evaltable.ScoreTable, realistic bool, seed int64) Report {
	maxWins := fitness.MaxWins(realistic)
	rng := randutil.New(seed)

	values := make([]int, n)
	var sum, sumSq float64
	histogram := make([]int, maxWins+1)

	for i := 0; i < n; i++ {
		d := deck.NewCanonical()
		d.Shuffle(rng)
		wins := fitness.NumWins(numPlayers, d, table, realistic)
		values[i] = wins
		sum += float64(wins)
		sumSq += float64(wins) * float64(wins)
		histogram[wins]++
	}

	report := Report{
		NumPlayers: numPlayers,
		Realistic:  realistic,
		Samples:    n,
		MaxWins:    maxWins,
		Histogram:  histogram,
	}
	if n == 0 {
		return report
	}

	report.Mean = sum / float64(n)
	if n > 1 {
		variance := (sumSq - float64(n)*report.Mean*report.Mean) / float64(n-1)
		if variance > 0 {
			report.StdDev = math.Sqrt(variance)
		}
	}

	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	report.Min = sorted[0]
	report.Max = sorted[len(sorted)-1]
	report.Median = median(sorted)

	report.ThresholdCounts = make([]int, len(Thresholds))
	for i, threshold := range Thresholds {
		count := 0
		for _, w := range values {
			if w >= threshold {
				count++
			}
		}
		report.ThresholdCounts[i] = count
	}

	return report
}

func median(sorted []int) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 0 {
		return float64(sorted[n/2-1]+sorted[n/2]) / 2
	}
	return float64(sorted[n/2])
}

// String renders the report the way the original CLI printed it: summary
// statistics, threshold counts, then an ASCII histogram bucketed by win
// count with bar lengths scaled to the tallest bucket.
func (r Report) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "sampled %d decks for %d players (max wins = %d)\n", r.Samples, r.NumPlayers, r.MaxWins)
	if r.Samples == 0 {
		return b.String()
	}
	fmt.Fprintf(&b, "min=%d median=%.1f mean=%.2f stddev=%.2f max=%d\n", r.Min, r.Median, r.Mean, r.StdDev, r.Max)

	for i, threshold := range Thresholds {
		fmt.Fprintf(&b, "wins >= %2d: %d/%d\n", threshold, r.ThresholdCounts[i], r.Samples)
	}

	b.WriteString("\n")
	tallest := 0
	for _, count := range r.Histogram {
		if count > tallest {
			tallest = count
		}
	}
	const barWidth = 50
	for wins, count := range r.Histogram {
		if count == 0 {
			continue
		}
		barLen := barWidth
		if tallest > 0 {
			barLen = count * barWidth / tallest
		}
		fmt.Fprintf(&b, "%3d | %s %d\n", wins, strings.Repeat("#", barLen), count)
	}

	return b.String()
}
