// Package logging builds the zap loggers used across parrot.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures New.
type Options struct {
	Level   string // debug, info, warn or error
	File    string // log file; empty writes to Fallback
	Verbose bool   // forces debug level

	// Fallback receives logs when File is empty. Nil discards them.
	Fallback io.Writer
}

// ParseLevel maps a config level name to a zap level.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New builds a logger. The returned close function flushes and releases the
// log file.
func New(opts Options) (*zap.SugaredLogger, func() error, error) {
	level := ParseLevel(opts.Level)
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	var ws zapcore.WriteSyncer
	closeFn := func() error { return nil }

	switch {
	case opts.File != "":
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		ws = zapcore.AddSync(f)
		closeFn = f.Close
	case opts.Fallback != nil:
		ws = zapcore.AddSync(opts.Fallback)
	default:
		return zap.NewNop().Sugar(), closeFn, nil
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	encoder := zapcore.NewConsoleEncoder(encCfg)
	if opts.File != "" {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	logger := zap.New(zapcore.NewCore(encoder, ws, level))
	sugar := logger.Sugar()

	return sugar, func() error {
		_ = logger.Sync()
		return closeFn()
	}, nil
}
