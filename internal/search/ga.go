package search

import (
	"context"
	"math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/lox/decksolver/internal/config"
	"github.com/lox/decksolver/internal/deck"
	"github.com/lox/decksolver/internal/evaltable"
	"github.com/lox/decksolver/internal/randutil"
)

// individual is one scored population member.
type individual struct {
	Deck   deck.Deck
	Wins   int
	Hybrid int
}

func scoreIndividual(d deck.Deck, numPlayers int, table *evaltable.ScoreTable, realistic bool) individual {
	wins, hybrid := evaluate(numPlayers, d, table, realistic)
	return individual{Deck: d, Wins: wins, Hybrid: hybrid}
}

func sortByFitness(pop []individual) {
	sort.Slice(pop, func(i, j int) bool { return pop[i].Hybrid > pop[j].Hybrid })
}

// sortByDiversity orders by wins + diversityWeight*avgHamming-to-population,
// used once GA stagnation passes half the configured limit (spec §4.7).
func sortByDiversity(pop []individual, weight float64) {
	decks := make([]deck.Deck, len(pop))
	for i, ind := range pop {
		decks[i] = ind.Deck
	}
	scores := make([]float64, len(pop))
	for i, ind := range pop {
		scores[i] = float64(ind.Wins) + weight*avgHamming(ind.Deck, decks)
	}
	idx := make([]int, len(pop))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return scores[idx[a]] > scores[idx[b]] })
	sorted := make([]individual, len(pop))
	for i, j := range idx {
		sorted[i] = pop[j]
	}
	copy(pop, sorted)
}

// rouletteSelect picks one individual with probability proportional to its
// hybrid score, shifted so every weight is positive (hybrid can be
// negative when a deck has zero wins and a negative margin sum).
func rouletteSelect(pop []individual, rng *rand.Rand) individual {
	min := pop[0].Hybrid
	for _, ind := range pop {
		if ind.Hybrid < min {
			min = ind.Hybrid
		}
	}
	total := 0.0
	weights := make([]float64, len(pop))
	for i, ind := range pop {
		w := float64(ind.Hybrid-min) + 1
		weights[i] = w
		total += w
	}
	r := rng.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r <= acc {
			return pop[i]
		}
	}
	return pop[len(pop)-1]
}

// evolveGeneration advances pop by one generation using the GA's shared
// recombination rule (elitism + fitness-proportionate crossover/mutation
// children, stagnation-driven mutation rate and selection pressure). Both
// Genetic and Island call this so the two strategies share one
// recombination implementation.
func evolveGeneration(pop []individual, cfg config.GeneticConfig, numPlayers int, table *evaltable.ScoreTable, realistic bool, maxWins, stagnation int, rng *rand.Rand) []individual {
	highMutation := stagnation > cfg.StagnationLimit
	rate := cfg.LowMutationRate
	refineBudget := cfg.RefineBudget
	if highMutation {
		rate = cfg.HighMutationRate
		refineBudget = cfg.StagnantRefineBudget
	}

	children := make([]individual, 0, cfg.CrossoverChildren+cfg.MutationChildren)
	for i := 0; i < cfg.CrossoverChildren; i++ {
		parent1 := rouletteSelect(pop, rng)
		parent2 := rouletteSelect(pop, rng)
		var child deck.Deck
		if rng.IntN(2) == 0 {
			child = deck.TwoPointOrderCrossover(parent1.Deck, parent2.Deck, rng)
		} else {
			child = deck.UniformOrderCrossover(parent1.Deck, parent2.Deck, rng)
		}
		children = append(children, scoreIndividual(child, numPlayers, table, realistic))
	}

	for i := 0; i < cfg.MutationChildren; i++ {
		parent := rouletteSelect(pop, rng)
		mutated := deck.AdaptiveMutate(parent.Deck, rate, rng)
		refined, refinedWins := Refine(mutated, numPlayers, table, realistic, maxWins, DefaultRefineParams(refineBudget), rng)
		_, refinedHybrid := evaluate(numPlayers, refined, table, realistic)
		children = append(children, individual{Deck: refined, Wins: refinedWins, Hybrid: refinedHybrid})
	}

	elites := append([]individual(nil), pop[:cfg.Elitism]...)
	combined := append(elites, children...)
	combined = append(combined, pop...)

	if stagnation > cfg.StagnationLimit/2 {
		sortByDiversity(combined, cfg.DiversityWeight)
	} else {
		sortByFitness(combined)
	}
	if len(combined) > cfg.PopulationSize {
		combined = combined[:cfg.PopulationSize]
	}
	sortByFitness(combined)
	return combined
}

func seedPopulation(size int, rng *rand.Rand, numPlayers int, table *evaltable.ScoreTable, realistic bool) []individual {
	pop := make([]individual, size)
	for i := range pop {
		d := deck.NewCanonical()
		d.Shuffle(rng)
		pop[i] = scoreIndividual(d, numPlayers, table, realistic)
	}
	sortByFitness(pop)
	return pop
}

// Genetic implements the single-population GA (spec §4.7): elitism,
// fitness-proportionate crossover and mutation children, stagnation-driven
// mutation rate and selection-pressure escalation, hard-capped at
// MaxGenerations.
func Genetic(cfg config.GeneticConfig) Strategy {
	return func(ctx context.Context, table *evaltable.ScoreTable, p Params, logger *log.Logger) Result {
		rng := randutil.New(p.Seed)
		maxWins := p.MaxWins()

		pop := seedPopulation(cfg.PopulationSize, rng, p.NumPlayers, table, p.Realistic)
		best := pop[0]
		notifyBest(p, best.Deck, best.Wins)
		stagnation := 0

		for gen := 0; gen < cfg.MaxGenerations && !cancelled(ctx); gen++ {
			if best.Wins >= maxWins {
				break
			}

			pop = evolveGeneration(pop, cfg, p.NumPlayers, table, p.Realistic, maxWins, stagnation, rng)

			if pop[0].Hybrid > best.Hybrid {
				best = pop[0]
				stagnation = 0
				notifyBest(p, best.Deck, best.Wins)
			} else {
				stagnation++
			}

			if logger != nil {
				logger.Debug("genetic generation", "gen", gen, "best_wins", best.Wins, "stagnation", stagnation)
			}
		}

		return newResult(best.Deck, best.Wins, maxWins)
	}
}
