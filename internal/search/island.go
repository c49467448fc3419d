package search

import (
	"context"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/decksolver/internal/config"
	"github.com/lox/decksolver/internal/evaltable"
	"github.com/lox/decksolver/internal/randutil"
)

// Island implements the island-parallel GA (spec §4.7): K independent
// populations, each evolved for GenerationsPerCycle generations in
// parallel, followed by ring migration of the top MigrationSize
// individuals from island i to island (i+1) mod K. Runs an unbounded
// number of cycles and exits only when a perfect deck is found or ctx is
// cancelled.
//
// Each island runs in an errgroup.Go worker that owns its own RNG and
// working state; workers are joined at a barrier (the end of the cycle) before the
// main goroutine acts on combined results.
func Island(gaCfg config.GeneticConfig, cfg config.IslandConfig) Strategy {
	return func(ctx context.Context, table *evaltable.ScoreTable, p Params, logger *log.Logger) Result {
		maxWins := p.MaxWins()

		islands := make([][]individual, cfg.Islands)
		stagnation := make([]int, cfg.Islands)

		for i := range islands {
			rng := randutil.New(islandSeed(p.Seed, i, 0))
			islands[i] = seedPopulation(cfg.PopulationSize, rng, p.NumPlayers, table, p.Realistic)
		}

		best := islands[0][0]
		for _, isl := range islands {
			if isl[0].Hybrid > best.Hybrid {
				best = isl[0]
			}
		}
		notifyBest(p, best.Deck, best.Wins)

		for cycle := 0; best.Wins < maxWins && !cancelled(ctx); cycle++ {
			g, gctx := errgroup.WithContext(ctx)
			results := make([][]individual, cfg.Islands)

			for i := range islands {
				i := i
				pop := islands[i]
				g.Go(func() error {
					rng := randutil.New(islandSeed(p.Seed, i, cycle+1))
					localStagnation := stagnation[i]
					localBest := pop[0]
					for gen := 0; gen < cfg.GenerationsPerCycle; gen++ {
						if gctx.Err() != nil {
							break
						}
						pop = evolveGeneration(pop, gaCfg, p.NumPlayers, table, p.Realistic, maxWins, localStagnation, rng)
						if pop[0].Hybrid > localBest.Hybrid {
							localBest = pop[0]
							localStagnation = 0
						} else {
							localStagnation++
						}
						if localBest.Wins >= maxWins {
							break
						}
					}
					results[i] = pop
					stagnation[i] = localStagnation
					return nil
				})
			}
			_ = g.Wait() // workers never return an error; this just joins them

			islands = results

			migrate(islands, cfg.MigrationSize)

			for _, isl := range islands {
				sortByFitness(isl)
				if isl[0].Hybrid > best.Hybrid {
					best = isl[0]
					notifyBest(p, best.Deck, best.Wins)
				}
			}

			if logger != nil {
				logger.Debug("island cycle", "cycle", cycle, "best_wins", best.Wins)
			}
		}

		return newResult(best.Deck, best.Wins, maxWins)
	}
}

// migrate performs ring migration in place: island i's top `size`
// individuals displace island (i+1 mod K)'s worst `size` individuals.
func migrate(islands [][]individual, size int) {
	k := len(islands)
	if size <= 0 || k < 2 {
		return
	}
	migrants := make([][]individual, k)
	for i, isl := range islands {
		sortByFitness(isl)
		n := size
		if n > len(isl) {
			n = len(isl)
		}
		migrants[i] = append([]individual(nil), isl[:n]...)
	}
	for i := range islands {
		dst := (i + 1) % k
		receiving := islands[dst]
		sortByFitness(receiving)
		n := len(migrants[i])
		if n > len(receiving) {
			n = len(receiving)
		}
		copy(receiving[len(receiving)-n:], migrants[i][:n])
		sortByFitness(receiving)
	}
}

// islandSeed derives a per-island-per-cycle seed so each island's RNG
// sequence is reproducible independent of scheduling (spec §5, "RNGs").
func islandSeed(base int64, islandID, cycle int) int64 {
	return base + int64(islandID)*1_000_003 + int64(cycle)*97
}
