package search

import (
	"context"
	"testing"

	"github.com/lox/decksolver/internal/config"
)

func tinyIslandConfig() config.IslandConfig {
	return config.IslandConfig{
		Islands:             3,
		PopulationSize:      6,
		GenerationsPerCycle: 2,
		MigrationSize:       1,
	}
}

func TestIslandProducesAValidDeckBeforeDeadlineCancellation(t *testing.T) {
	skipUnlessSlow(t)
	table := fullTable(t)

	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()

	strategy := Island(tinyGeneticConfig(), tinyIslandConfig())
	result := strategy(ctx, table, Params{NumPlayers: 2, Seed: 1}, nil)

	if err := result.Deck.Validate(); err != nil {
		t.Fatalf("result deck is not a valid permutation: %v", err)
	}
}
