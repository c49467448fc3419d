package search

import (
	"math"
	"math/rand/v2"

	"github.com/lox/decksolver/internal/deck"
	"github.com/lox/decksolver/internal/evaltable"
	"github.com/lox/decksolver/internal/fitness"
)

// RefineParams bundles the simulated-annealing refinement kernel's
// schedule: initial temperature and geometric decay rate. The spec fixes
// T0=5.0, alpha=0.998 for every caller; only the iteration budget varies.
type RefineParams struct {
	Iters int
	T0    float64
	Alpha float64
}

// DefaultRefineParams returns the kernel's standard schedule at the given
// iteration budget (callers use 500..5000 depending on context).
func DefaultRefineParams(iters int) RefineParams {
	return RefineParams{Iters: iters, T0: 5.0, Alpha: 0.998}
}

// Refine hill-climbs from start by simulated annealing over the hybrid
// score (§4.6): each iteration applies one adaptive mutation (rate=0.2),
// accepts improving moves unconditionally and worsening moves with
// probability exp(delta/T), and tracks the best deck seen. It returns
// early once the best deck reaches maxWins.
func Refine(start deck.Deck, numPlayers int, table *evaltable.ScoreTable, realistic bool, maxWins int, rp RefineParams, rng *rand.Rand) (deck.Deck, int) {
	current := start
	currentScore := fitness.HybridScore(numPlayers, current, table, realistic)

	best := current
	bestScore := currentScore
	bestWins := fitness.NumWins(numPlayers, best, table, realistic)
	if bestWins >= maxWins {
		return best, bestWins
	}

	t := rp.T0
	for i := 0; i < rp.Iters; i++ {
		candidate := deck.AdaptiveMutate(current, 0.2, rng)
		candidateScore := fitness.HybridScore(numPlayers, candidate, table, realistic)

		delta := candidateScore - currentScore
		accept := delta > 0
		if !accept && t > 0 {
			accept = rng.Float64() < math.Exp(float64(delta)/t)
		}
		if accept {
			current = candidate
			currentScore = candidateScore
		}

		if currentScore > bestScore {
			best = current
			bestScore = currentScore
			bestWins = fitness.NumWins(numPlayers, best, table, realistic)
			if bestWins >= maxWins {
				break
			}
		}

		t *= rp.Alpha
	}

	return best, bestWins
}
