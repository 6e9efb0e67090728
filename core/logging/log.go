/*
Package logging builds the zap logger used by the service. Field names are
kept consistent across the repo via the Field* constants, so that log lines
of one run can be grepped by run_id.
*/
package logging

import (
	"fmt"
	"io"
	"kstep/cfg"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Field names used in structured log lines.
const (
	FieldRunID     = "run_id"
	FieldMethod    = "method"
	FieldK         = "k"
	FieldPoints    = "points"
	FieldRecords   = "records"
	FieldConverged = "converged"
	FieldRoute     = "route"
	FieldStatus    = "status"
)

// New creates a logger from 'c'. When c.File is set, output goes to a
// size-rotated file; otherwise to stderr. The returned closer flushes the
// logger and releases the file, and must be called on shutdown.
func New(c cfg.LogConfig) (*zap.Logger, func() error, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(c.Level)); err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}

	var w io.Writer = os.Stderr
	var rotator *lumberjack.Logger
	if c.File != "" {
		rotator = &lumberjack.Logger{
			Filename:   c.File,
			MaxSize:    c.MaxSizeMB,
			MaxBackups: c.MaxBackups,
			MaxAge:     c.MaxAgeDays,
		}
		w = rotator
	}

	logger := zap.New(newCore(c.JSON, lvl, zapcore.AddSync(w)))
	closer := func() error {
		// Sync on stderr fails on some platforms; it is not worth reporting.
		_ = logger.Sync()
		if rotator != nil {
			return rotator.Close()
		}
		return nil
	}
	return logger, closer, nil
}

func newCore(json bool, lvl zapcore.Level, ws zapcore.WriteSyncer) zapcore.Core {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if json {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}
	return zapcore.NewCore(enc, ws, lvl)
}
