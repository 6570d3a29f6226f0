// Package logging wires zap behind a small categorized facade. The default
// logger is a nop so library code can log unconditionally; the CLI installs a
// real logger at startup.
package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu   sync.RWMutex
	base = zap.NewNop()
)

// Init builds and installs the process logger. Verbose lowers the level to
// debug and switches to the development encoder.
func Init(verbose bool) error {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	mu.Lock()
	base = logger
	mu.Unlock()
	return nil
}

// L returns the process logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Named returns a child logger for one subsystem ("redact", "reconcile",
// "session", ...).
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// Sync flushes buffered log entries. Safe to call on the nop logger.
func Sync() {
	_ = L().Sync()
}
