package search

import (
	"context"
	"math"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/decksolver/internal/config"
	"github.com/lox/decksolver/internal/deck"
	"github.com/lox/decksolver/internal/evaltable"
	"github.com/lox/decksolver/internal/fitness"
	"github.com/lox/decksolver/internal/randutil"
)

type saWinner struct {
	deck deck.Deck
	wins int
}

// sharedBest tracks the best deck any worker has seen, so the main
// goroutine has a valid deck to return on cancellation even though no
// worker reached maxWins. Seeded before the workers start so it always
// holds a valid permutation, never a zero value.
type sharedBest struct {
	mu   sync.Mutex
	deck deck.Deck
	wins int
}

func newSharedBest(d deck.Deck, wins int) *sharedBest {
	return &sharedBest{deck: d, wins: wins}
}

// update records d as the new shared best if it beats the current one,
// reporting whether it did so the caller only notifies on a genuine
// improvement, not every time a single worker's own local best changes.
func (s *sharedBest) update(d deck.Deck, wins int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if wins > s.wins {
		s.deck = d
		s.wins = wins
		return true
	}
	return false
}

func (s *sharedBest) get() (deck.Deck, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deck, s.wins
}

// StandaloneSA implements the parallel simulated-annealing strategy (spec
// §4.7): Workers independent annealing runs race for the first perfect
// deck, each with its own RNG seeded 1000*id+4, reporting through a
// buffered channel the main goroutine reads once. Idiomatic Go departs
// from the spec's "siblings leak forever" note here: workers watch ctx and
// exit once a winner is reported, instead of running until process exit —
// see DESIGN.md.
func StandaloneSA(cfg config.SAConfig) Strategy {
	return func(ctx context.Context, table *evaltable.ScoreTable, p Params, logger *log.Logger) Result {
		maxWins := p.MaxWins()
		workerCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		seedRNG := randutil.New(p.Seed)
		seed := deck.NewCanonical()
		seed.Shuffle(seedRNG)
		seedWins := fitness.NumWins(p.NumPlayers, seed, table, p.Realistic)
		shared := newSharedBest(seed, seedWins)
		notifyBest(p, seed, seedWins)

		resultCh := make(chan saWinner, cfg.Workers)
		for w := 0; w < cfg.Workers; w++ {
			w := w
			go runSAWorker(workerCtx, w, cfg, table, p, maxWins, resultCh, shared, logger)
		}

		select {
		case win := <-resultCh:
			return newResult(win.deck, win.wins, maxWins)
		case <-ctx.Done():
			d, wins := shared.get()
			return newResult(d, wins, maxWins)
		}
	}
}

func runSAWorker(ctx context.Context, id int, cfg config.SAConfig, table *evaltable.ScoreTable, p Params, maxWins int, resultCh chan<- saWinner, shared *sharedBest, logger *log.Logger) {
	rng := randutil.New(1000*int64(id) + 4)

	current := deck.NewCanonical()
	current.Shuffle(rng)
	wins := fitness.NumWins(p.NumPlayers, current, table, p.Realistic)

	best := current
	bestWins := wins
	shared.update(best, bestWins)

	t := cfg.T0
	restartInterval := cfg.BaseRestartInterval
	restarts := 0
	sinceImprovement := 0

	for i := 0; ; i++ {
		if ctx.Err() != nil {
			return
		}

		candidate := deck.AdaptiveMutate(current, 0.2, rng)
		candidateWins := fitness.NumWins(p.NumPlayers, candidate, table, p.Realistic)

		delta := candidateWins - wins
		accept := delta > 0
		if !accept && t > cfg.MinTemperature {
			accept = rng.Float64() < math.Exp(float64(delta)/t)
		}
		if accept {
			current = candidate
			wins = candidateWins
		}

		if wins > bestWins {
			best = current
			bestWins = wins
			sinceImprovement = 0
			if shared.update(best, bestWins) {
				notifyBest(p, best, bestWins)
			}
		} else {
			sinceImprovement++
		}

		if bestWins >= maxWins {
			select {
			case resultCh <- saWinner{deck: best, wins: bestWins}:
			case <-ctx.Done():
			}
			return
		}

		if t > cfg.MinTemperature {
			t *= cfg.Alpha
		}

		if sinceImprovement >= restartInterval {
			current = deck.NewCanonical()
			current.Shuffle(rng)
			wins = fitness.NumWins(p.NumPlayers, current, table, p.Realistic)
			t = cfg.T0
			restarts++
			restartInterval = cfg.BaseRestartInterval * (restarts + 1)
			sinceImprovement = 0
			if logger != nil {
				logger.Debug("simulated annealing restart", "worker", id, "restarts", restarts, "best_wins", bestWins)
			}
		}
	}
}
