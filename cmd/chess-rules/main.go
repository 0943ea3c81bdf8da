// chess-rules plays, checks and counts chess positions from the command line.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/obslog"
	"github.com/lgbarn/chessrules-go/internal/output"
	"github.com/lgbarn/chessrules-go/internal/selfplay"
	"github.com/lgbarn/chessrules-go/internal/store"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chess-rules version %s\n", programVersion)
		os.Exit(0)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := obslog.Init(cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up logging: %v\n", err)
		os.Exit(1)
	}
	logger := obslog.L()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, cfg, optionsFromFlags(), os.Stdout, logger)
	stop()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run carries out one invocation and writes its report to out.
func run(ctx context.Context, cfg *config.Config, opts options, out io.Writer, logger *zap.Logger) error {
	if opts.randomGames > 0 {
		return runSelfPlay(ctx, cfg, opts, out, logger)
	}

	st, err := store.New(ctx, cfg.Store)
	if err != nil {
		return err
	}
	if c, ok := st.(io.Closer); ok {
		defer c.Close() //nolint:errcheck // nothing useful to do on exit
	}

	g, err := setupGame(ctx, cfg, opts, st, logger)
	if err != nil {
		return err
	}
	if err := playMoves(g, opts.moves, opts.san); err != nil {
		return err
	}

	if err := writeGame(out, g, opts); err != nil {
		return err
	}
	if opts.perft > 0 {
		reportPerft(out, g, opts.perft, logger)
	}
	if opts.divide > 0 {
		if err := reportDivide(out, g, opts.divide, opts.dot); err != nil {
			return err
		}
	}

	if opts.save != "" {
		id := opts.save
		if id == "-" {
			id = store.NewID()
		}
		if err := st.Save(ctx, id, g.FEN()); err != nil {
			return err
		}
		logger.Info("position saved", zap.String("id", id), zap.String("game", g.ID()))
		fmt.Fprintf(out, "Saved: %s\n", id)
	}
	return nil
}

// setupGame builds the game from a stored snapshot, a FEN or the standard
// position, in that order of preference.
func setupGame(ctx context.Context, cfg *config.Config, opts options, st store.Store, logger *zap.Logger) (*engine.Game, error) {
	fen := opts.fen
	if opts.load != "" {
		loaded, err := st.Load(ctx, opts.load)
		if err != nil {
			return nil, err
		}
		fen = loaded
	}

	if fen == "" {
		fen = engine.InitialFEN
	}
	return engine.NewGameFromFEN(fen, engine.WithRules(cfg.Rules), engine.WithLogger(logger))
}

// playMoves plays a space separated move list, stopping at the first error.
func playMoves(g *engine.Game, moves string, san bool) error {
	for _, text := range strings.Fields(moves) {
		var err error
		if san {
			err = g.PlaySAN(text)
		} else {
			err = g.PlayUCI(text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// writeGame reports the final position in the chosen format.
func writeGame(out io.Writer, g *engine.Game, opts options) error {
	w, err := output.NewGameWriter(out, opts.format, output.Options{Legal: opts.legal})
	if err != nil {
		return err
	}
	if err := w.WriteGame(g); err != nil {
		return err
	}
	return w.Close()
}

// reportPerft prints the leaf count to depth.
func reportPerft(out io.Writer, g *engine.Game, depth int, logger *zap.Logger) {
	start := time.Now()
	nodes := g.Perft(depth)
	elapsed := time.Since(start)

	logger.Info("perft finished",
		zap.Int("depth", depth),
		zap.Uint64("nodes", nodes),
		zap.Duration("elapsed", elapsed),
	)
	fmt.Fprintf(out, "perft(%d) = %d\n", depth, nodes)
}

// reportDivide prints the per-move split to depth and optionally writes it
// as a DOT graph.
func reportDivide(out io.Writer, g *engine.Game, depth int, dotPath string) error {
	split := g.Divide(depth)
	moves := maps.Keys(split)
	slices.Sort(moves)

	var total uint64
	for _, m := range moves {
		fmt.Fprintf(out, "%s: %d\n", m, split[m])
		total += split[m]
	}
	fmt.Fprintf(out, "Moves: %d  Nodes: %d\n", len(moves), total)

	if dotPath == "" {
		return nil
	}
	dot, err := g.DivideGraph(depth)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dotPath, []byte(dot), 0644); err != nil { //nolint:gosec // G306: 0644 is appropriate for user-created output
		return fmt.Errorf("write %s: %w", dotPath, err)
	}
	return nil
}

// runSelfPlay plays cfg.SelfPlay.Games random games and prints the summary.
func runSelfPlay(ctx context.Context, cfg *config.Config, opts options, out io.Writer, logger *zap.Logger) error {
	runner, err := selfplay.NewRunner(cfg.SelfPlay, cfg.Rules, logger)
	if err != nil {
		return err
	}
	sum, err := runner.Run(ctx, opts.fen)
	if err != nil {
		return err
	}
	fmt.Fprint(out, sum)
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chess-rules [options]\n\n")
	fmt.Fprintf(os.Stderr, "Plays moves, lists legal moves, runs perft and random self-play.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  chess-rules -moves \"e2e4 e7e5 g1f3\" -legal\n")
	fmt.Fprintf(os.Stderr, "  chess-rules -fen \"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1\" -divide 2 -dot split.dot\n")
	fmt.Fprintf(os.Stderr, "  chess-rules -random 1000 -workers 8 -seed 42\n")
	fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
	fmt.Fprintf(os.Stderr, "  %s, %s, %s, %s, %s\n", config.EnvLogLevel, config.EnvLogFormat, config.EnvRedisURL, config.EnvDatabaseURL, config.EnvWorkers)
}
