package main

import (
	"testing"

	"github.com/lgbarn/chessrules-go/internal/config"
)

func saveRestoreBool(ptr *bool, val bool) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreInt(ptr *int, val int) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreInt64(ptr *int64, val int64) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreString(ptr *string, val string) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func TestApplyFlags_DefaultsKeepConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Rules.NoProgressLimit = 60
	cfg.Log.Level = "warn"
	cfg.SelfPlay.Seed = 99
	cfg.SelfPlay.MaxPlies = 200

	applyFlags(cfg)

	if cfg.Rules.NoProgressLimit != 60 {
		t.Errorf("NoProgressLimit = %d; want 60", cfg.Rules.NoProgressLimit)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q; want warn", cfg.Log.Level)
	}
	if cfg.SelfPlay.Seed != 99 {
		t.Errorf("Seed = %d; want 99", cfg.SelfPlay.Seed)
	}
	if cfg.SelfPlay.MaxPlies != 200 {
		t.Errorf("MaxPlies = %d; want 200", cfg.SelfPlay.MaxPlies)
	}
}

func TestApplyRuleFlags(t *testing.T) {
	defer saveRestoreBool(castleInCheck, true)()
	defer saveRestoreBool(pawnKeepsClock, true)()
	defer saveRestoreInt(noProgress, 150)()
	defer saveRestoreInt(repetitions, 5)()

	cfg := config.NewConfig()
	applyRuleFlags(cfg)

	if cfg.Rules.CastlingRequiresNoCheck {
		t.Error("CastlingRequiresNoCheck should be off")
	}
	if cfg.Rules.PawnMoveResetsClock {
		t.Error("PawnMoveResetsClock should be off")
	}
	if cfg.Rules.NoProgressLimit != 150 {
		t.Errorf("NoProgressLimit = %d; want 150", cfg.Rules.NoProgressLimit)
	}
	if cfg.Rules.RepetitionLimit != 5 {
		t.Errorf("RepetitionLimit = %d; want 5", cfg.Rules.RepetitionLimit)
	}
}

func TestApplyLogFlags(t *testing.T) {
	defer saveRestoreString(logLevel, "debug")()
	defer saveRestoreBool(jsonLogs, true)()
	defer saveRestoreString(logFile, "/tmp/chess.log")()

	cfg := config.NewConfig()
	applyLogFlags(cfg)

	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q; want debug", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Format = %q; want json", cfg.Log.Format)
	}
	if cfg.Log.File != "/tmp/chess.log" {
		t.Errorf("File = %q", cfg.Log.File)
	}
}

func TestApplyStoreFlags(t *testing.T) {
	t.Run("redis replaces database", func(t *testing.T) {
		defer saveRestoreString(redisURL, "redis://cache:6379/1")()
		cfg := config.NewConfig()
		cfg.Store.DatabaseURL = "postgres://db/chess"
		applyStoreFlags(cfg)
		if cfg.Store.RedisURL != "redis://cache:6379/1" || cfg.Store.DatabaseURL != "" {
			t.Errorf("Store = %+v", cfg.Store)
		}
	})

	t.Run("database replaces redis", func(t *testing.T) {
		defer saveRestoreString(databaseURL, "postgres://db/chess")()
		cfg := config.NewConfig()
		cfg.Store.RedisURL = "redis://cache:6379/1"
		applyStoreFlags(cfg)
		if cfg.Store.DatabaseURL != "postgres://db/chess" || cfg.Store.RedisURL != "" {
			t.Errorf("Store = %+v", cfg.Store)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() = %v", err)
		}
	})

	t.Run("flag settles two env backends", func(t *testing.T) {
		t.Setenv(config.EnvRedisURL, "redis://cache:6379/1")
		t.Setenv(config.EnvDatabaseURL, "postgres://db/chess")
		defer saveRestoreString(databaseURL, "postgres://other/chess")()

		cfg, err := config.Load("")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		applyFlags(cfg)
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() = %v", err)
		}
		if cfg.Store.DatabaseURL != "postgres://other/chess" || cfg.Store.RedisURL != "" {
			t.Errorf("Store = %+v", cfg.Store)
		}
	})

	t.Run("no flags keep config", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Store.RedisURL = "redis://cache:6379/1"
		applyStoreFlags(cfg)
		if cfg.Store.RedisURL != "redis://cache:6379/1" {
			t.Errorf("Store = %+v", cfg.Store)
		}
	})
}

func TestApplySelfPlayFlags(t *testing.T) {
	defer saveRestoreInt(randomGames, 25)()
	defer saveRestoreInt(workers, 3)()
	defer saveRestoreInt64(seed, 7)()
	defer saveRestoreInt(maxPlies, 0)()

	cfg := config.NewConfig()
	cfg.SelfPlay.MaxPlies = 80
	applySelfPlayFlags(cfg)

	if cfg.SelfPlay.Games != 25 {
		t.Errorf("Games = %d; want 25", cfg.SelfPlay.Games)
	}
	if cfg.SelfPlay.Workers != 3 {
		t.Errorf("Workers = %d; want 3", cfg.SelfPlay.Workers)
	}
	if cfg.SelfPlay.Seed != 7 {
		t.Errorf("Seed = %d; want 7", cfg.SelfPlay.Seed)
	}
	if cfg.SelfPlay.MaxPlies != 0 {
		t.Errorf("MaxPlies = %d; want 0 (explicit no limit)", cfg.SelfPlay.MaxPlies)
	}
}

func TestOptionsFromFlags(t *testing.T) {
	defer saveRestoreString(fenFlag, "8/8/8/8/8/8/8/K6k w - - 0 1")()
	defer saveRestoreString(movesFlag, "a1a2")()
	defer saveRestoreBool(showLegal, true)()
	defer saveRestoreInt(divideDepth, 3)()
	defer saveRestoreString(saveKey, "-")()

	opts := optionsFromFlags()
	want := options{
		fen:    "8/8/8/8/8/8/8/K6k w - - 0 1",
		moves:  "a1a2",
		legal:  true,
		format: "text",
		divide: 3,
		save:   "-",
	}
	if opts != want {
		t.Errorf("optionsFromFlags() = %+v; want %+v", opts, want)
	}
}
