// Package obslog builds the process-wide zap logger.
package obslog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lgbarn/chessrules-go/internal/config"
)

var (
	mu           sync.RWMutex
	globalLogger = zap.NewNop()
)

// L returns the global logger. It discards everything until Init succeeds.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// Init builds a logger from cfg and installs it as the global logger.
func Init(cfg config.LogConfig) error {
	logger, err := New(cfg)
	if err != nil {
		return err
	}
	mu.Lock()
	globalLogger = logger
	mu.Unlock()
	return nil
}

// New builds a logger writing to stderr and, when cfg.File is set, to that
// file as well.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level := parseLevel(cfg.Level)
	enc := newEncoder(cfg.Format)

	cores := []zapcore.Core{zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level)}

	if strings.TrimSpace(cfg.File) != "" {
		if err := ensureDir(filepath.Dir(cfg.File)); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(newEncoder(cfg.Format), zapcore.AddSync(f), level))
	}

	logger := zap.New(zapcore.NewTee(cores...))
	if cfg.Caller {
		logger = logger.WithOptions(zap.AddCaller())
	}
	return logger.WithOptions(zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

func newEncoder(format string) zapcore.Encoder {
	if strings.EqualFold(format, "json") {
		return zapcore.NewJSONEncoder(jsonEncoderConfig())
	}
	return zapcore.NewConsoleEncoder(consoleEncoderConfig())
}

func ensureDir(dir string) error {
	if strings.TrimSpace(dir) == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func consoleEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}

func jsonEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	return cfg
}
