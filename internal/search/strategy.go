// Package search implements the metaheuristic strategies that look for a
// deck ordering maximising dealer wins across all 52 cyclic cuts: a
// genetic algorithm, an island-parallel GA, beam search, ant-colony
// optimisation, and standalone simulated annealing, plus the shared
// simulated-annealing refinement kernel they all call into as a local
// search step.
package search

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/decksolver/internal/deck"
	"github.com/lox/decksolver/internal/evaltable"
	"github.com/lox/decksolver/internal/fitness"
)

// Params bundles the tunables every strategy shares. Strategy-specific
// tunables (population size, island count, pheromone weights, ...) live on
// each strategy's own Config type in internal/config.
type Params struct {
	NumPlayers int
	Realistic  bool
	Seed       int64

	// OnBestDeck, if set, is called whenever a strategy's own incumbent
	// best deck improves — not on every local-search refinement inside a
	// generation/iteration, only when the top-level loop's "best" actually
	// changes. The CLI wires this to periodically checkpoint the
	// best-deck-so-far to disk (see cmd/decksolver's --checkpoint flag) so
	// a killed long-running search doesn't lose everything it found.
	OnBestDeck func(d deck.Deck, wins int)
}

// notifyBest reports a strategy's new incumbent to p.OnBestDeck, if set.
func notifyBest(p Params, d deck.Deck, wins int) {
	if p.OnBestDeck != nil {
		p.OnBestDeck(d, wins)
	}
}

// MaxWins is the win count Params considers a perfect deck.
func (p Params) MaxWins() int { return fitness.MaxWins(p.Realistic) }

// Result is a completed (or capped-out) strategy run.
type Result struct {
	Deck    deck.Deck
	Wins    int
	Perfect bool
}

func newResult(d deck.Deck, wins, maxWins int) Result {
	return Result{Deck: d, Wins: wins, Perfect: wins >= maxWins}
}

// Strategy runs a search algorithm to completion (or exhaustion of its own
// iteration/generation cap) and returns the best deck it saw. The CLI
// selects one Strategy value at parse time via Select and never
// switches between them at runtime, so a plain function value is enough —
// no plugin system or interface dispatch is needed (spec §9, "Strategy
// dispatch").
type Strategy func(ctx context.Context, table *evaltable.ScoreTable, p Params, logger *log.Logger) Result

// evaluate scores a candidate deck on both objectives used throughout the
// search strategies.
func evaluate(numPlayers int, d deck.Deck, table *evaltable.ScoreTable, realistic bool) (wins, hybrid int) {
	return fitness.NumWins(numPlayers, d, table, realistic), fitness.HybridScore(numPlayers, d, table, realistic)
}

// avgHamming returns the mean number of positions at which d differs from
// each member of population. Used by the GA's diversity-adjusted fitness
// and the beam search's diversity bonus.
func avgHamming(d deck.Deck, population []deck.Deck) float64 {
	if len(population) == 0 {
		return 0
	}
	total := 0
	for _, other := range population {
		total += hammingDistance(d, other)
	}
	return float64(total) / float64(len(population))
}

func hammingDistance(a, b deck.Deck) int {
	n := 0
	for i := range a {
		if a[i] != b[i] {
			n++
		}
	}
	return n
}

func cancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
