// Package logging provides the structured, leveled logger used across the
// front end. It follows the console encoding conventions of
// go.viam.com/rdk/logging: colored levels, ISO8601 timestamps, a short
// caller, and no automatic stack traces at any level.
package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// Logger is the interface the front end logs through. It is a thin
// restriction of *zap.SugaredLogger so call sites don't depend on zap
// directly.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	Named(name string) Logger
	Sync() error
}

type impl struct {
	*zap.SugaredLogger
}

func (l *impl) Named(name string) Logger {
	return &impl{l.SugaredLogger.Named(name)}
}

// consoleEncoderConfig mirrors go.viam.com/rdk/logging.NewLoggerConfig: same
// key names, colored capital levels, ISO8601 time, short caller. A
// stacktrace key is defined, but NewConfig disables stacktrace capture.
func consoleEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// NewConfig returns a new default zap.Config for the front end: info level,
// console encoding, stdout/stderr output, no automatic stacktraces.
func NewConfig() zap.Config {
	return zap.Config{
		Level:             zap.NewAtomicLevelAt(zap.InfoLevel),
		Encoding:          "console",
		EncoderConfig:     consoleEncoderConfig(),
		DisableStacktrace: true,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
	}
}

// NewLogger returns a new Logger that emits Info+ logs to stdout.
func NewLogger(name string) Logger {
	cfg := NewConfig()
	base, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		// zap.Config.Build only fails on a malformed config; ours is
		// constant, so fall back to zap's example logger
		// rather than propagating a startup error for this.
		base = zap.NewExample()
	}
	return &impl{base.Named(name).Sugar()}
}

// NewDebugLogger returns a new Logger that emits Debug+ logs to stdout.
func NewDebugLogger(name string) Logger {
	cfg := NewConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	base, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		base = zap.NewExample()
	}
	return &impl{base.Named(name).Sugar()}
}

// NewTestLogger returns a Logger suitable for use in tests; it writes
// Debug+ logs via testing.T so output is attributed to the right test.
func NewTestLogger(tb testing.TB) Logger {
	return &impl{zaptest.NewLogger(tb, zaptest.Level(zapcore.DebugLevel)).Sugar()}
}
