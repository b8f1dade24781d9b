// Package obslog constructs the structured logger the firmware core uses
// for everything that is not a telemetry frame: boot messages, dispatcher
// rejections, framing errors. Grounded on the pack's own zap logger
// constructor (owl-common/logger.NewLogger's level/format switch), adapted
// to take its level and format as explicit constructor arguments instead of
// environment variables (spec.md §6: "No environment variables... no
// filesystem").
package obslog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level mirrors the handful of levels the teacher's logger constructor
// switches on.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

func zapLevel(l Level) zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New builds a zap.Logger at the given level. console selects a
// human-readable encoder for an attached terminal; otherwise frames are
// logged as structured JSON to stdout/stderr, matching the teacher's
// production-config branch. runID tags every log line so a single boot's
// output can be correlated even with no persisted state to key off of
// (spec.md §6: "no persisted state").
func New(level Level, console bool, runID string) (*zap.Logger, error) {
	var cfg zap.Config
	if console {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{"stdout"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel(level))

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	if runID != "" {
		logger = logger.With(zap.String("run_id", runID))
	}
	return logger, nil
}
