package search

import (
	"fmt"

	"github.com/lox/decksolver/internal/config"
)

// Names of the five interchangeable strategies, matching the CLI's
// --algorithm enum (spec §6).
const (
	NameGenetic   = "genetic"
	NameIsland    = "island"
	NameBeam      = "beam"
	NameACO       = "aco"
	NameSimAnneal = "simulated-annealing"
)

// Select resolves a strategy name to a Strategy closure over cfg. The
// choice is made once at CLI-parse time by the caller and never revisited
// — see the "Strategy dispatch" design note, which asks for a function
// pointer rather than a plugin/interface registry.
func Select(name string, cfg config.Config) (Strategy, error) {
	switch name {
	case NameGenetic:
		return Genetic(*cfg.Genetic), nil
	case NameIsland:
		return Island(*cfg.Genetic, *cfg.Island), nil
	case NameBeam:
		return Beam(*cfg.Beam), nil
	case NameACO:
		return ACO(*cfg.ACO), nil
	case NameSimAnneal:
		return StandaloneSA(*cfg.SA), nil
	default:
		return nil, fmt.Errorf("search: unknown algorithm %q", name)
	}
}
