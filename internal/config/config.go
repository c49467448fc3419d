// Package config loads the optional HCL tuning file for the search
// strategies, following the pattern of internal/server's ServerConfig: a
// struct with gohcl tags, a Default constructor holding the spec's stated
// parameters, and a loader that parses whatever blocks are present and
// fills everything else from the defaults so an operator can override
// tuning without ever being required to.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config holds every search strategy's tunable parameters. Only the block
// matching the strategy selected on the CLI matters at runtime; the rest
// are harmless to leave at their defaults.
type Config struct {
	Genetic *GeneticConfig `hcl:"genetic,block"`
	Island  *IslandConfig  `hcl:"island,block"`
	Beam    *BeamConfig    `hcl:"beam,block"`
	ACO     *ACOConfig     `hcl:"aco,block"`
	SA      *SAConfig      `hcl:"simulated_annealing,block"`
}

// GeneticConfig tunes the single-population GA (spec §4.7).
type GeneticConfig struct {
	PopulationSize       int     `hcl:"population_size,optional"`
	Elitism              int     `hcl:"elitism,optional"`
	CrossoverChildren    int     `hcl:"crossover_children,optional"`
	MutationChildren     int     `hcl:"mutation_children,optional"`
	StagnationLimit      int     `hcl:"stagnation_limit,optional"`
	MaxGenerations       int     `hcl:"max_generations,optional"`
	RefineBudget         int     `hcl:"refine_budget,optional"`
	StagnantRefineBudget int     `hcl:"stagnant_refine_budget,optional"`
	DiversityWeight      float64 `hcl:"diversity_weight,optional"`
	LowMutationRate      float64 `hcl:"low_mutation_rate,optional"`
	HighMutationRate     float64 `hcl:"high_mutation_rate,optional"`
}

// IslandConfig tunes the island-parallel GA.
type IslandConfig struct {
	Islands             int `hcl:"islands,optional"`
	PopulationSize      int `hcl:"population_size,optional"`
	GenerationsPerCycle int `hcl:"generations_per_cycle,optional"`
	MigrationSize       int `hcl:"migration_size,optional"`
}

// BeamConfig tunes beam search.
type BeamConfig struct {
	Width             int     `hcl:"width,optional"`
	CandidatesPerBeam int     `hcl:"candidates_per_beam,optional"`
	ElitesKept        int     `hcl:"elites_kept,optional"`
	MaxIterations     int     `hcl:"max_iterations,optional"`
	EarlyRefineBudget int     `hcl:"early_refine_budget,optional"`
	LateRefineBudget  int     `hcl:"late_refine_budget,optional"`
	DiversityWeight   float64 `hcl:"diversity_weight,optional"`
	AcceptanceMargin  int     `hcl:"acceptance_margin,optional"`
}

// ACOConfig tunes ant-colony optimisation.
type ACOConfig struct {
	ColonySize      int     `hcl:"colony_size,optional"`
	Elites          int     `hcl:"elites,optional"`
	Alpha           float64 `hcl:"alpha,optional"`
	Beta            float64 `hcl:"beta,optional"`
	Rho             float64 `hcl:"rho,optional"`
	RefineBudget    int     `hcl:"refine_budget,optional"`
	RestartInterval int     `hcl:"restart_interval,optional"`
	MaxRestarts     int     `hcl:"max_restarts,optional"`
}

// SAConfig tunes the standalone parallel simulated-annealing strategy.
type SAConfig struct {
	Workers             int     `hcl:"workers,optional"`
	T0                  float64 `hcl:"t0,optional"`
	Alpha               float64 `hcl:"alpha,optional"`
	MinTemperature      float64 `hcl:"min_temperature,optional"`
	BaseRestartInterval int     `hcl:"base_restart_interval,optional"`
}

// Default returns the spec's stated parameters for every strategy.
func Default() Config {
	return Config{
		Genetic: &GeneticConfig{
			PopulationSize:       30,
			Elitism:              3,
			CrossoverChildren:    10,
			MutationChildren:     15,
			StagnationLimit:      30,
			MaxGenerations:       200,
			RefineBudget:         1000,
			StagnantRefineBudget: 5000,
			DiversityWeight:      0.5,
			LowMutationRate:      0.1,
			HighMutationRate:     0.3,
		},
		Island: &IslandConfig{
			Islands:             10,
			PopulationSize:      30,
			GenerationsPerCycle: 20,
			MigrationSize:       2,
		},
		Beam: &BeamConfig{
			Width:             50,
			CandidatesPerBeam: 10,
			ElitesKept:        5,
			MaxIterations:     500,
			EarlyRefineBudget: 500,
			LateRefineBudget:  2000,
			DiversityWeight:   0.3,
			AcceptanceMargin:  500000,
		},
		ACO: &ACOConfig{
			ColonySize:      30,
			Elites:          5,
			Alpha:           1,
			Beta:            2,
			Rho:             0.1,
			RefineBudget:    500,
			RestartInterval: 50,
			MaxRestarts:     10,
		},
		SA: &SAConfig{
			Workers:             10,
			T0:                  10,
			Alpha:               0.9999,
			MinTemperature:      0.01,
			BaseRestartInterval: 50000,
		},
	}
}

// Load reads an HCL tuning file, falling back entirely to Default() when
// path is empty or the file doesn't exist. Any block present in the file
// overrides only the fields it sets; fields it omits, and any block it
// omits entirely, keep the spec's default value — mirroring
// internal/server.LoadServerConfig's "apply defaults for missing values"
// pass.
func Load(path string) (Config, error) {
	def := Default()
	if path == "" {
		return def, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return def, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("config: parse %s: %s", path, diags.Error())
	}

	var parsed Config
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("config: decode %s: %s", path, diags.Error())
	}

	merged := def
	if parsed.Genetic != nil {
		merged.Genetic = mergeGenetic(def.Genetic, parsed.Genetic)
	}
	if parsed.Island != nil {
		merged.Island = mergeIsland(def.Island, parsed.Island)
	}
	if parsed.Beam != nil {
		merged.Beam = mergeBeam(def.Beam, parsed.Beam)
	}
	if parsed.ACO != nil {
		merged.ACO = mergeACO(def.ACO, parsed.ACO)
	}
	if parsed.SA != nil {
		merged.SA = mergeSA(def.SA, parsed.SA)
	}
	return merged, nil
}

func mergeGenetic(def, got *GeneticConfig) *GeneticConfig {
	out := *def
	if got.PopulationSize != 0 {
		out.PopulationSize = got.PopulationSize
	}
	if got.Elitism != 0 {
		out.Elitism = got.Elitism
	}
	if got.CrossoverChildren != 0 {
		out.CrossoverChildren = got.CrossoverChildren
	}
	if got.MutationChildren != 0 {
		out.MutationChildren = got.MutationChildren
	}
	if got.StagnationLimit != 0 {
		out.StagnationLimit = got.StagnationLimit
	}
	if got.MaxGenerations != 0 {
		out.MaxGenerations = got.MaxGenerations
	}
	if got.RefineBudget != 0 {
		out.RefineBudget = got.RefineBudget
	}
	if got.StagnantRefineBudget != 0 {
		out.StagnantRefineBudget = got.StagnantRefineBudget
	}
	if got.DiversityWeight != 0 {
		out.DiversityWeight = got.DiversityWeight
	}
	if got.LowMutationRate != 0 {
		out.LowMutationRate = got.LowMutationRate
	}
	if got.HighMutationRate != 0 {
		out.HighMutationRate = got.HighMutationRate
	}
	return &out
}

func mergeIsland(def, got *IslandConfig) *IslandConfig {
	out := *def
	if got.Islands != 0 {
		out.Islands = got.Islands
	}
	if got.PopulationSize != 0 {
		out.PopulationSize = got.PopulationSize
	}
	if got.GenerationsPerCycle != 0 {
		out.GenerationsPerCycle = got.GenerationsPerCycle
	}
	if got.MigrationSize != 0 {
		out.MigrationSize = got.MigrationSize
	}
	return &out
}

func mergeBeam(def, got *BeamConfig) *BeamConfig {
	out := *def
	if got.Width != 0 {
		out.Width = got.Width
	}
	if got.CandidatesPerBeam != 0 {
		out.CandidatesPerBeam = got.CandidatesPerBeam
	}
	if got.ElitesKept != 0 {
		out.ElitesKept = got.ElitesKept
	}
	if got.MaxIterations != 0 {
		out.MaxIterations = got.MaxIterations
	}
	if got.EarlyRefineBudget != 0 {
		out.EarlyRefineBudget = got.EarlyRefineBudget
	}
	if got.LateRefineBudget != 0 {
		out.LateRefineBudget = got.LateRefineBudget
	}
	if got.DiversityWeight != 0 {
		out.DiversityWeight = got.DiversityWeight
	}
	if got.AcceptanceMargin != 0 {
		out.AcceptanceMargin = got.AcceptanceMargin
	}
	return &out
}

func mergeACO(def, got *ACOConfig) *ACOConfig {
	out := *def
	if got.ColonySize != 0 {
		out.ColonySize = got.ColonySize
	}
	if got.Elites != 0 {
		out.Elites = got.Elites
	}
	if got.Alpha != 0 {
		out.Alpha = got.Alpha
	}
	if got.Beta != 0 {
		out.Beta = got.Beta
	}
	if got.Rho != 0 {
		out.Rho = got.Rho
	}
	if got.RefineBudget != 0 {
		out.RefineBudget = got.RefineBudget
	}
	if got.RestartInterval != 0 {
		out.RestartInterval = got.RestartInterval
	}
	if got.MaxRestarts != 0 {
		out.MaxRestarts = got.MaxRestarts
	}
	return &out
}

func mergeSA(def, got *SAConfig) *SAConfig {
	out := *def
	if got.Workers != 0 {
		out.Workers = got.Workers
	}
	if got.T0 != 0 {
		out.T0 = got.T0
	}
	if got.Alpha != 0 {
		out.Alpha = got.Alpha
	}
	if got.MinTemperature != 0 {
		out.MinTemperature = got.MinTemperature
	}
	if got.BaseRestartInterval != 0 {
		out.BaseRestartInterval = got.BaseRestartInterval
	}
	return &out
}
