// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/chessrules-go/internal/config"
)

var (
	// Position and moves
	fenFlag   = flag.String("fen", "", "Start position in FEN (default: standard position)")
	movesFlag = flag.String("moves", "", "Space-separated moves to play, e.g. \"e2e4 e7e5\"")
	sanMoves  = flag.Bool("san", false, "Read -moves as algebraic (SAN) instead of UCI")
	showLegal = flag.Bool("legal", false, "List the legal moves in the final position")
	format    = flag.String("format", "text", "Report format: text, pgn, json")

	// Perft
	perftDepth  = flag.Int("perft", 0, "Count leaf nodes to depth N")
	divideDepth = flag.Int("divide", 0, "Count leaf nodes to depth N, split by root move")
	dotFile     = flag.String("dot", "", "Write the -divide split as a Graphviz DOT file")

	// Self-play
	randomGames = flag.Int("random", 0, "Play N uniformly random games and print a summary")
	workers     = flag.Int("workers", 0, "Worker goroutines for -random (0 = from config)")
	seed        = flag.Int64("seed", 0, "Base seed for -random (0 = from config)")
	maxPlies    = flag.Int("max-plies", -1, "Stop random games after N plies (0 = no limit, -1 = from config)")

	// Snapshot store
	saveKey     = flag.String("save", "", "Save the final position under this name (\"-\" for a generated name)")
	loadKey     = flag.String("load", "", "Start from the position saved under this name")
	redisURL    = flag.String("redis", "", "Keep snapshots in Redis at this URL")
	databaseURL = flag.String("database", "", "Keep snapshots in PostgreSQL at this URL")

	// Rules
	castleInCheck  = flag.Bool("castle-in-check", false, "Allow castling while in check")
	pawnKeepsClock = flag.Bool("pawn-keeps-clock", false, "Pawn moves do not reset the no-progress clock")
	noProgress     = flag.Int("no-progress", 0, "Plies without capture or pawn move before a draw (0 = from config)")
	repetitions    = flag.Int("repetitions", 0, "Occurrences of a position that draw the game (0 = from config)")

	// Configuration and logging
	configFile = flag.String("config", "", "YAML configuration file")
	logLevel   = flag.String("log-level", "", "Log level: debug, info, warn, error")
	jsonLogs   = flag.Bool("json-logs", false, "Write logs as JSON")
	logFile    = flag.String("log-file", "", "Also write logs to this file")

	// Help and version
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// options holds the per-run choices that are not part of the configuration.
type options struct {
	fen         string
	moves       string
	san         bool
	legal       bool
	format      string
	perft       int
	divide      int
	dot         string
	randomGames int
	save        string
	load        string
}

// optionsFromFlags collects the parsed flags.
func optionsFromFlags() options {
	return options{
		fen:         *fenFlag,
		moves:       *movesFlag,
		san:         *sanMoves,
		legal:       *showLegal,
		format:      *format,
		perft:       *perftDepth,
		divide:      *divideDepth,
		dot:         *dotFile,
		randomGames: *randomGames,
		save:        *saveKey,
		load:        *loadKey,
	}
}

// applyFlags applies command-line flags to the configuration. Flags left at
// their defaults keep the file and environment settings.
func applyFlags(cfg *config.Config) {
	applyRuleFlags(cfg)
	applyLogFlags(cfg)
	applyStoreFlags(cfg)
	applySelfPlayFlags(cfg)
}

// applyRuleFlags configures the rule switches and thresholds.
func applyRuleFlags(cfg *config.Config) {
	if *castleInCheck {
		cfg.Rules.CastlingRequiresNoCheck = false
	}
	if *pawnKeepsClock {
		cfg.Rules.PawnMoveResetsClock = false
	}
	if *noProgress > 0 {
		cfg.Rules.NoProgressLimit = *noProgress
	}
	if *repetitions > 0 {
		cfg.Rules.RepetitionLimit = *repetitions
	}
}

// applyLogFlags configures logging.
func applyLogFlags(cfg *config.Config) {
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *jsonLogs {
		cfg.Log.Format = "json"
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}
}

// applyStoreFlags selects the snapshot backend. A flag replaces whatever
// backend the file or environment chose.
func applyStoreFlags(cfg *config.Config) {
	switch {
	case *redisURL != "":
		cfg.Store.RedisURL = *redisURL
		cfg.Store.DatabaseURL = ""
	case *databaseURL != "":
		cfg.Store.DatabaseURL = *databaseURL
		cfg.Store.RedisURL = ""
	}
}

// applySelfPlayFlags configures the random game runner.
func applySelfPlayFlags(cfg *config.Config) {
	if *randomGames > 0 {
		cfg.SelfPlay.Games = *randomGames
	}
	if *workers > 0 {
		cfg.SelfPlay.Workers = *workers
	}
	if *seed != 0 {
		cfg.SelfPlay.Seed = *seed
	}
	if *maxPlies >= 0 {
		cfg.SelfPlay.MaxPlies = *maxPlies
	}
}
