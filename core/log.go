// Package core holds the logging facilities shared by every dcmcodec package.
package core

import (
	"os"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// level is shared by every logger built through this package, so that
// `SetLevel` takes effect without rebuilding them.
var level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

var current atomic.Pointer[zap.SugaredLogger]

func init() {
	current.Store(NewConsoleLogger(zapcore.Lock(os.Stderr)))
}

func normaliseWriters(writers ...zapcore.WriteSyncer) zapcore.WriteSyncer {
	if len(writers) == 1 {
		return writers[0]
	}
	return zapcore.NewMultiWriteSyncer(writers...)
}

// NewJSONLogger creates a `zap.SugaredLogger` configured for JSON output to `writers`
func NewJSONLogger(writers ...zapcore.WriteSyncer) *zap.SugaredLogger {
	writer := normaliseWriters(writers...)
	encoderCfg := zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "level",
		NameKey:        "logger",
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), writer, level)
	return zap.New(core).Sugar()
}

// NewConsoleLogger creates a `zap.SugaredLogger` configured for human-readable output to `writers`
func NewConsoleLogger(writers ...zapcore.WriteSyncer) *zap.SugaredLogger {
	writer := normaliseWriters(writers...)
	encoderCfg := zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "level",
		NameKey:        "logger",
		EncodeLevel:    zapcore.LowercaseColorLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), writer, level)
	return zap.New(core).Sugar()
}

// Log returns the logger used by the codec packages.
func Log() *zap.SugaredLogger {
	return current.Load()
}

// SetLogger replaces the codec logger and returns the previous one.
// Passing nil installs a no-op logger.
func SetLogger(l *zap.SugaredLogger) *zap.SugaredLogger {
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	return current.Swap(l)
}

// SetLevel adjusts the level of loggers built by this package.
// Recognised names are "debug", "info", "warn", "error", "fatal";
// "none" and "disabled" silence output entirely.
func SetLevel(name string) bool {
	switch strings.ToLower(name) {
	case "debug", "0":
		level.SetLevel(zapcore.DebugLevel)
	case "info", "1":
		level.SetLevel(zapcore.InfoLevel)
	case "warn", "2":
		level.SetLevel(zapcore.WarnLevel)
	case "error", "3":
		level.SetLevel(zapcore.ErrorLevel)
	case "fatal", "4":
		level.SetLevel(zapcore.FatalLevel)
	case "none", "disabled", "5":
		level.SetLevel(zapcore.FatalLevel + 1)
	default:
		return false
	}
	return true
}

// Level returns the active level of loggers built by this package.
func Level() zapcore.Level {
	return level.Level()
}
