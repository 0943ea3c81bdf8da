// Package selfplay runs batches of uniformly random games across a worker
// pool and summarises how they ended.
package selfplay

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/hashing"
	"github.com/lgbarn/chessrules-go/internal/worker"
)

// Summary aggregates a self-play run.
type Summary struct {
	Games    int
	Failed   int
	ByResult map[engine.Result]int
	ByReason map[engine.Reason]int

	// Game length statistics in plies, over successful games.
	MeanPlies   float64
	StdDevPlies float64
	MinPlies    int
	MaxPlies    int

	// Distinct final positions and how many games repeated an earlier one.
	UniqueFinal    int
	DuplicateFinal int
}

// Runner plays self-play batches.
type Runner struct {
	cfg    config.SelfPlayConfig
	rules  engine.Rules
	logger *zap.Logger
}

// NewRunner creates a Runner. A nil logger discards output.
func NewRunner(cfg config.SelfPlayConfig, rules engine.Rules, logger *zap.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{cfg: cfg, rules: rules, logger: logger}, nil
}

// Run plays cfg.Games games from fen (empty for the standard position).
// Game i is seeded with cfg.Seed+i, so a run is repeatable whatever the
// number of workers. Cancelling ctx stops the run and returns ctx.Err().
func (r *Runner) Run(ctx context.Context, fen string) (*Summary, error) {
	if fen != "" {
		if _, err := engine.NewBoardFromFEN(fen); err != nil {
			return nil, err
		}
	}

	pool := worker.NewPool(
		worker.PlayRandom(r.rules, r.cfg.MaxPlies),
		worker.WithWorkers(r.cfg.Workers),
		worker.WithBufferSize(r.cfg.BufferSize),
	)
	pool.Start(ctx)

	go func() {
		defer pool.Close()
		for i := 0; i < r.cfg.Games; i++ {
			select {
			case <-ctx.Done():
				return
			default:
			}
			pool.Submit(worker.Job{Index: i, Seed: r.cfg.Seed + int64(i), FEN: fen})
		}
	}()

	r.logger.Info("self-play started",
		zap.Int("games", r.cfg.Games),
		zap.Int("workers", pool.NumWorkers()),
		zap.Int64("seed", r.cfg.Seed),
	)

	finals := hashing.NewThreadSafeCounter()
	sum := &Summary{
		ByResult: make(map[engine.Result]int),
		ByReason: make(map[engine.Reason]int),
	}
	var lengths []float64

	for res := range pool.Results() {
		sum.Games++
		if res.Err != nil {
			sum.Failed++
			r.logger.Warn("self-play game failed", zap.Int("index", res.Index), zap.Error(res.Err))
			continue
		}
		sum.ByResult[res.Outcome.Result]++
		sum.ByReason[res.Outcome.Reason]++
		finals.Add(res.Key)
		lengths = append(lengths, float64(res.Plies))

		r.logger.Debug("self-play game finished",
			zap.Int("index", res.Index),
			zap.Int64("seed", res.Seed),
			zap.Stringer("outcome", res.Outcome),
			zap.Int("plies", res.Plies),
		)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(lengths) > 0 {
		sum.MeanPlies, sum.StdDevPlies = stat.MeanStdDev(lengths, nil)
		if len(lengths) == 1 {
			sum.StdDevPlies = 0
		}
		sum.MinPlies = int(floats.Min(lengths))
		sum.MaxPlies = int(floats.Max(lengths))
	}
	sum.UniqueFinal = finals.UniqueCount()
	sum.DuplicateFinal = finals.DuplicateCount()

	r.logger.Info("self-play finished",
		zap.Int("games", sum.Games),
		zap.Int("failed", sum.Failed),
		zap.Float64("mean_plies", sum.MeanPlies),
	)
	return sum, nil
}

// String renders the summary as a short report.
func (s *Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "games: %d (failed %d)\n", s.Games, s.Failed)

	results := maps.Keys(s.ByResult)
	slices.Sort(results)
	for _, res := range results {
		fmt.Fprintf(&sb, "  %-8s %d\n", res, s.ByResult[res])
	}

	reasons := maps.Keys(s.ByReason)
	slices.Sort(reasons)
	for _, reason := range reasons {
		fmt.Fprintf(&sb, "  %-22s %d\n", reason, s.ByReason[reason])
	}

	fmt.Fprintf(&sb, "plies: mean %.1f stddev %.1f min %d max %d\n", s.MeanPlies, s.StdDevPlies, s.MinPlies, s.MaxPlies)
	fmt.Fprintf(&sb, "final positions: %d unique, %d repeated\n", s.UniqueFinal, s.DuplicateFinal)
	return sb.String()
}
