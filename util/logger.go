// Package util provides low-level helpers shared by all other packages.
package util

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// LogLevel controls output verbosity.
type LogLevel int

const (
	LogQuiet   LogLevel = 0
	LogNormal  LogLevel = 1
	LogVerbose LogLevel = 2
	LogDebug   LogLevel = 3
)

// Logger writes levelled diagnostics to stderr.  It is a thin
// verbosity-count veneer over a zap console core: callers think in
// repeatable -v flags, zap handles encoding and timestamps.
type Logger struct {
	level LogLevel
	s     *zap.SugaredLogger
}

// NewLogger returns a Logger that prints messages at or below the given
// verbosity (≤0 = quiet, 1 = normal, 2 = verbose, 3 = debug).  Output
// goes to stderr, colorized when stderr is a terminal.
func NewLogger(verbosity int) *Logger {
	color := term.IsTerminal(int(os.Stderr.Fd()))
	return NewLoggerTo(os.Stderr, verbosity, color)
}

// NewLoggerTo builds a Logger writing to w.  Tests use this to capture
// output.
func NewLoggerTo(w io.Writer, verbosity int, color bool) *Logger {
	level := LogLevel(verbosity)

	encCfg := zap.NewDevelopmentEncoderConfig()
	if color {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		zapLevel(level),
	)
	return &Logger{
		level: level,
		s:     zap.New(core).Sugar(),
	}
}

// zapLevel maps the verbosity count onto the zap core's floor.
// Verbose and Debug both emit at zap's debug level; the count gating
// in the methods below keeps them distinct.
func zapLevel(l LogLevel) zapcore.Level {
	switch {
	case l <= LogQuiet:
		return zapcore.ErrorLevel
	case l == LogNormal:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// Level returns the current log level.
func (l *Logger) Level() LogLevel { return l.level }

// Info prints when verbosity ≥ 1.
func (l *Logger) Info(format string, args ...interface{}) {
	if l.level >= LogNormal {
		l.s.Infof(format, args...)
	}
}

// Warn prints when verbosity ≥ 1.
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.level >= LogNormal {
		l.s.Warnf(format, args...)
	}
}

// Verbose prints when verbosity ≥ 2.
func (l *Logger) Verbose(format string, args ...interface{}) {
	if l.level >= LogVerbose {
		l.s.Debugf(format, args...)
	}
}

// Debug prints when verbosity ≥ 3.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level >= LogDebug {
		l.s.Debugf(format, args...)
	}
}

// Error always prints regardless of verbosity.
func (l *Logger) Error(format string, args ...interface{}) {
	l.s.Errorf(format, args...)
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() {
	_ = l.s.Sync()
}
