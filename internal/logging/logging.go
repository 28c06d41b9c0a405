// Package logging wires zap behind the logr facade. The TUI owns the
// terminal, so logs go to a file; an empty path disables them.
package logging

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Open builds a file-backed structured logger. The returned close
// function flushes and releases the sink and is always safe to call.
func Open(path string, debug bool) (logr.Logger, func(), error) {
	noop := func() {}
	if strings.TrimSpace(path) == "" {
		return logr.Discard(), noop, nil
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return logr.Discard(), noop, err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return logr.Discard(), noop, err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(f),
		zap.NewAtomicLevelAt(level),
	)
	zl := zap.New(core)

	closeFn := func() {
		_ = zl.Sync()
		_ = f.Close()
	}
	return zapr.NewLogger(zl).WithName("ccfiles"), closeFn, nil
}
