package search

import (
	"context"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/decksolver/internal/config"
	"github.com/lox/decksolver/internal/deck"
	"github.com/lox/decksolver/internal/evaltable"
	"github.com/lox/decksolver/internal/randutil"
)

// Beam implements beam search (spec §4.7): each iteration expands every
// beam member into B mutated-and-refined candidates in parallel, keeps the
// top ElitesKept members unconditionally, and fills the rest of the new
// beam greedily by win count first, then by a diversity-adjusted hybrid
// score. Hard-capped at MaxIterations.
func Beam(cfg config.BeamConfig) Strategy {
	return func(ctx context.Context, table *evaltable.ScoreTable, p Params, logger *log.Logger) Result {
		maxWins := p.MaxWins()
		seedRNG := randutil.New(p.Seed)

		beam := make([]individual, cfg.Width)
		for i := range beam {
			d := deck.NewCanonical()
			d.Shuffle(seedRNG)
			beam[i] = scoreIndividual(d, p.NumPlayers, table, p.Realistic)
		}
		sortByFitness(beam)
		best := beam[0]
		notifyBest(p, best.Deck, best.Wins)

		for iter := 0; iter < cfg.MaxIterations && best.Wins < maxWins && !cancelled(ctx); iter++ {
			refineBudget := cfg.EarlyRefineBudget
			if iter > cfg.MaxIterations/4 {
				refineBudget = cfg.LateRefineBudget
			}

			candidates := make([][]individual, len(beam))
			g, _ := errgroup.WithContext(ctx)
			for i, member := range beam {
				i, member := i, member
				g.Go(func() error {
					rng := randutil.New(beamSeed(p.Seed, iter, i))
					out := make([]individual, cfg.CandidatesPerBeam)
					for b := 0; b < cfg.CandidatesPerBeam; b++ {
						mutations := 1 + rng.IntN(2)
						candidate := member.Deck
						for m := 0; m < mutations; m++ {
							candidate = deck.AdaptiveMutate(candidate, 0.2, rng)
						}
						refined, wins := Refine(candidate, p.NumPlayers, table, p.Realistic, maxWins, DefaultRefineParams(refineBudget), rng)
						_, hybrid := evaluate(p.NumPlayers, refined, table, p.Realistic)
						out[b] = individual{Deck: refined, Wins: wins, Hybrid: hybrid}
					}
					candidates[i] = out
					return nil
				})
			}
			_ = g.Wait()

			pool := make([]individual, 0, cfg.Width*cfg.CandidatesPerBeam)
			for _, c := range candidates {
				pool = append(pool, c...)
			}
			sortByFitness(pool)

			elites := append([]individual(nil), beam[:min(cfg.ElitesKept, len(beam))]...)
			newBeam := append([]individual(nil), elites...)
			seen := map[deck.Deck]bool{}
			for _, e := range newBeam {
				seen[e.Deck] = true
			}

			bestHybrid := pool[0].Hybrid
			newBeamDecks := func() []deck.Deck {
				out := make([]deck.Deck, len(newBeam))
				for i, m := range newBeam {
					out[i] = m.Deck
				}
				return out
			}
			for _, cand := range pool {
				if len(newBeam) >= cfg.Width {
					break
				}
				if seen[cand.Deck] {
					continue
				}
				accept := cand.Wins > best.Wins
				if !accept {
					diversity := avgHamming(cand.Deck, newBeamDecks())
					accept = float64(cand.Hybrid)+cfg.DiversityWeight*diversity >= float64(bestHybrid-cfg.AcceptanceMargin)
				}
				if accept {
					newBeam = append(newBeam, cand)
					seen[cand.Deck] = true
				}
			}
			for _, cand := range pool {
				if len(newBeam) >= cfg.Width {
					break
				}
				if seen[cand.Deck] {
					continue
				}
				newBeam = append(newBeam, cand)
				seen[cand.Deck] = true
			}

			beam = newBeam
			sortByFitness(beam)
			if beam[0].Hybrid > best.Hybrid {
				best = beam[0]
				notifyBest(p, best.Deck, best.Wins)
			}

			if logger != nil {
				logger.Debug("beam iteration", "iter", iter, "best_wins", best.Wins)
			}
		}

		return newResult(best.Deck, best.Wins, maxWins)
	}
}

func beamSeed(base int64, iter, member int) int64 {
	return base + int64(iter)*100_003 + int64(member)*31
}
