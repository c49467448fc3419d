package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/decksolver/internal/analysis"
	"github.com/lox/decksolver/internal/config"
	"github.com/lox/decksolver/internal/deck"
	"github.com/lox/decksolver/internal/evaltable"
	"github.com/lox/decksolver/internal/fileutil"
	"github.com/lox/decksolver/internal/search"
)

var cli struct {
	LogLevel string `help:"set the log level" enum:"debug,info,warn,error" default:"info"`

	Precompute PrecomputeCmd `cmd:"" help:"build the 7-card evaluator table and write it to disk"`
	Search     SearchCmd     `cmd:"" help:"search for a deck arrangement maximizing dealer wins"`
	Analyze    AnalyzeCmd    `cmd:"" help:"sample random decks and report how hard this configuration is"`
}

type PrecomputeCmd struct {
	Out string `help:"path to write the evaluator table" required:"" type:"path"`
}

type SearchCmd struct {
	Table      string        `help:"path to a precomputed evaluator table" required:"" type:"existingfile"`
	NumPlayers int           `help:"number of players dealt into each hand" default:"2"`
	Algorithm  string        `help:"search strategy" enum:"genetic,island,beam,aco,simulated-annealing" default:"genetic"`
	Realistic  bool          `help:"score only cuts 5-46, the range a single shuffle can actually reach"`
	Seed       int64         `help:"random seed" default:"1"`
	Config     string        `help:"optional HCL file tuning the chosen strategy" type:"existingfile"`
	Timeout    time.Duration `help:"give up and return the best deck found after this long (0 disables)"`
	Checkpoint string        `help:"optional path to atomically write the best deck seen so far as the search runs" type:"path"`
}

type AnalyzeCmd struct {
	Table      string `help:"path to a precomputed evaluator table" required:"" type:"existingfile"`
	NumPlayers int    `help:"number of players dealt into each hand" default:"2"`
	Samples    int    `help:"number of random decks to sample" default:"1000"`
	Realistic  bool   `help:"score only cuts 5-46, the range a single shuffle can actually reach"`
	Seed       int64  `help:"random seed" default:"1"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("decksolver"),
		kong.Description("searches 52-card deck permutations for the arrangement that maximizes a Hold'em dealer's wins across every cyclic cut"),
		kong.UsageOnError(),
	)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           parseLevel(cli.LogLevel),
	})

	runCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var err error
	switch ctx.Command() {
	case "precompute":
		err = cli.Precompute.Run(runCtx, logger)
	case "search":
		err = cli.Search.Run(runCtx, logger)
	case "analyze":
		err = cli.Analyze.Run(runCtx, logger)
	default:
		err = fmt.Errorf("unknown command: %s", ctx.Command())
	}
	if err != nil {
		logger.Fatal("command failed", "error", err)
	}
}

func parseLevel(s string) log.Level {
	level, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

func (cmd *PrecomputeCmd) Run(ctx context.Context, logger *log.Logger) error {
	logger.Info("precomputing evaluator table", "out", cmd.Out)
	start := time.Now()

	err := fileutil.WriteStreamAtomic(cmd.Out, 0644, func(f *os.File) error {
		return evaltable.Precompute(f)
	})
	if err != nil {
		return fmt.Errorf("precompute: %w", err)
	}

	logger.Info("evaluator table written", "out", cmd.Out, "duration", time.Since(start))
	return nil
}

// checkpointWriter returns a search.Params.OnBestDeck callback that
// atomically writes the deck to path on every improvement, so a killed or
// timed-out search still leaves the best deck it found on disk instead of
// losing it when the process exits before printing a result.
func checkpointWriter(path string, logger *log.Logger) func(d deck.Deck, wins int) {
	return func(d deck.Deck, wins int) {
		data := []byte(d.String() + "\n")
		if err := fileutil.WriteFileAtomic(path, data, 0644); err != nil {
			logger.Warn("failed to write checkpoint", "path", path, "error", err)
			return
		}
		logger.Debug("checkpoint written", "path", path, "wins", wins)
	}
}

func loadTable(path string, logger *log.Logger) (*evaltable.ScoreTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	start := time.Now()
	table, err := evaltable.Load(f)
	if err != nil {
		return nil, fmt.Errorf("load table: %w", err)
	}
	logger.Info("evaluator table loaded", "entries", table.Len(), "duration", time.Since(start))
	return table, nil
}

func (cmd *SearchCmd) Run(ctx context.Context, logger *log.Logger) error {
	table, err := loadTable(cmd.Table, logger)
	if err != nil {
		return err
	}

	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	strategy, err := search.Select(cmd.Algorithm, cfg)
	if err != nil {
		return err
	}

	searchCtx := ctx
	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	params := search.Params{
		NumPlayers: cmd.NumPlayers,
		Realistic:  cmd.Realistic,
		Seed:       cmd.Seed,
	}
	if cmd.Checkpoint != "" {
		params.OnBestDeck = checkpointWriter(cmd.Checkpoint, logger)
	}

	logger.Info("starting search", "algorithm", cmd.Algorithm, "num_players", cmd.NumPlayers, "realistic", cmd.Realistic, "max_wins", params.MaxWins())
	start := time.Now()
	result := strategy(searchCtx, table, params, logger)
	duration := time.Since(start)

	logger.Info("search finished", "wins", result.Wins, "max_wins", params.MaxWins(), "perfect", result.Perfect, "duration", duration)
	fmt.Println(result.Deck.String())
	return nil
}

func (cmd *AnalyzeCmd) Run(ctx context.Context, logger *log.Logger) error {
	table, err := loadTable(cmd.Table, logger)
	if err != nil {
		return err
	}

	logger.Info("sampling decks", "samples", cmd.Samples, "num_players", cmd.NumPlayers, "realistic", cmd.Realistic)
	report := analysis.Sample(cmd.Samples, cmd.NumPlayers, table, cmd.Realistic, cmd.Seed)
	fmt.Println(report.String())
	return nil
}
