package search

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/decksolver/internal/config"
	"github.com/lox/decksolver/internal/deck"
	"github.com/lox/decksolver/internal/evaltable"
	"github.com/lox/decksolver/internal/randutil"
)

// pheromones is the 52x52 (position, card) trail matrix described in
// spec §3 "Pheromone matrix".
type pheromones [deck.NumCards][deck.NumCards]float64

func newPheromones() *pheromones {
	p := &pheromones{}
	for i := range p {
		for j := range p[i] {
			p[i][j] = 1.0
		}
	}
	return p
}

// ACO implements ant-colony optimisation (spec §4.7): each ant constructs a
// deck left-to-right biased by pheromone and a heuristic and refines it via
// Refine, the colony's elites deposit pheromone proportional to their win
// fraction, and the trail evaporates every iteration. Restarts the trail
// after RestartInterval stagnant iterations, up to MaxRestarts times.
func ACO(cfg config.ACOConfig) Strategy {
	return func(ctx context.Context, table *evaltable.ScoreTable, p Params, logger *log.Logger) Result {
		maxWins := p.MaxWins()
		rng := randutil.New(p.Seed)

		coverage := cutCoverage(p.NumPlayers, p.Realistic)
		trail := newPheromones()

		seed := deck.NewCanonical()
		seed.Shuffle(rng)
		best := scoreIndividual(seed, p.NumPlayers, table, p.Realistic)
		notifyBest(p, best.Deck, best.Wins)
		sinceImprovement := 0
		restarts := 0

		for iter := 0; !cancelled(ctx); iter++ {
			if best.Wins >= maxWins {
				break
			}

			ants := make([]individual, cfg.ColonySize)
			for a := 0; a < cfg.ColonySize; a++ {
				built := constructAnt(trail, coverage, cfg, rng)
				refined, wins := Refine(built, p.NumPlayers, table, p.Realistic, maxWins, DefaultRefineParams(cfg.RefineBudget), rng)
				_, hybrid := evaluate(p.NumPlayers, refined, table, p.Realistic)
				ants[a] = individual{Deck: refined, Wins: wins, Hybrid: hybrid}
			}
			sortByFitness(ants)

			if ants[0].Hybrid > best.Hybrid {
				best = ants[0]
				sinceImprovement = 0
				notifyBest(p, best.Deck, best.Wins)
			} else {
				sinceImprovement++
			}

			evaporate(trail, cfg.Rho)
			elites := ants
			if len(elites) > cfg.Elites {
				elites = elites[:cfg.Elites]
			}
			for _, ant := range elites {
				deposit := float64(ant.Wins) / float64(maxWins)
				for pos, c := range ant.Deck {
					trail[pos][c] += deposit
				}
			}

			if sinceImprovement >= cfg.RestartInterval {
				if restarts >= cfg.MaxRestarts {
					break
				}
				trail = newPheromones()
				restarts++
				sinceImprovement = 0
			}

			if logger != nil {
				logger.Debug("aco iteration", "iter", iter, "best_wins", best.Wins, "restarts", restarts)
			}
		}

		return newResult(best.Deck, best.Wins, maxWins)
	}
}

// constructAnt builds one candidate deck left-to-right: at each position,
// the probability of placing an unused card c is proportional to
// trail[pos][c]^alpha * eta(pos, c)^beta.
func constructAnt(trail *pheromones, coverage [deck.NumCards]float64, cfg config.ACOConfig, rng *rand.Rand) deck.Deck {
	var out deck.Deck
	var used [deck.NumCards]bool
	var suitCounts [4]int

	for pos := 0; pos < deck.NumCards; pos++ {
		weights := make([]float64, 0, deck.NumCards)
		cards := make([]deck.Card, 0, deck.NumCards)
		total := 0.0
		for c := 0; c < deck.NumCards; c++ {
			if used[c] {
				continue
			}
			card := deck.Card(c)
			w := math.Pow(trail[pos][c], cfg.Alpha) * math.Pow(eta(pos, card, coverage, suitCounts), cfg.Beta)
			weights = append(weights, w)
			cards = append(cards, card)
			total += w
		}
		choice := cards[len(cards)-1]
		if total > 0 {
			r := rng.Float64() * total
			acc := 0.0
			for i, w := range weights {
				acc += w
				if r <= acc {
					choice = cards[i]
					break
				}
			}
		} else {
			choice = cards[rng.IntN(len(cards))]
		}
		out[pos] = choice
		used[choice] = true
		suitCounts[choice.Suit()]++
	}
	return out
}

func evaporate(trail *pheromones, rho float64) {
	for i := range trail {
		for j := range trail[i] {
			trail[i][j] *= 1 - rho
		}
	}
}

// eta is the ACO heuristic: face-card strength, how much this board
// position matters to the dealer across the considered cut range, and a
// suit-balance multiplier discouraging runs of one suit.
func eta(pos int, c deck.Card, coverage [deck.NumCards]float64, suitCounts [4]int) float64 {
	faceStrength := 1.0
	if c.Rank() >= 10 {
		faceStrength = 1.5
	}

	expected := float64(pos) / 4.0
	diff := float64(suitCounts[c.Suit()]) - expected
	suitBalance := 1.0
	switch {
	case diff < 0:
		suitBalance = 1.2
	case diff > 3:
		suitBalance = 0.8
	}

	return faceStrength * (1 + coverage[pos]) * suitBalance
}

// cutCoverage precomputes, for every deck position, a weighted count of
// how often that position lands in the dealer's hole cards (weight 3),
// any player's hole cards (weight 1.5), or the community (weight 0.5)
// across the considered cut range — the "how much does this slot matter"
// term of the ACO heuristic (spec §4.7).
func cutCoverage(numPlayers int, realistic bool) [deck.NumCards]float64 {
	var coverage [deck.NumCards]float64
	dealerHole := map[int]bool{0: true, numPlayers: true}
	anyHole := map[int]bool{}
	for pass := 0; pass < 2; pass++ {
		for player := 0; player < numPlayers; player++ {
			anyHole[pass*numPlayers+player] = true
		}
	}
	community := map[int]bool{
		2*numPlayers + 1: true,
		2*numPlayers + 2: true,
		2*numPlayers + 3: true,
		2*numPlayers + 5: true,
		2*numPlayers + 7: true,
	}

	start, end := 0, deck.NumCards
	if realistic {
		start, end = 5, 47
	}

	for pos := 0; pos < deck.NumCards; pos++ {
		var weight float64
		for k := start; k < end; k++ {
			afterCut := ((pos-k)%deck.NumCards + deck.NumCards) % deck.NumCards
			switch {
			case dealerHole[afterCut]:
				weight += 3
			case anyHole[afterCut]:
				weight += 1.5
			case community[afterCut]:
				weight += 0.5
			}
		}
		coverage[pos] = weight
	}
	return coverage
}
