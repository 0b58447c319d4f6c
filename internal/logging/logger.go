// Package logging configures the application-wide zap logger.
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production-encoded logger at the given level. Unknown levels
// fall back to info.
func New(level string) (*zap.Logger, error) {
	parsed := zapcore.InfoLevel
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		parsed = zapcore.DebugLevel
	case "warn":
		parsed = zapcore.WarnLevel
	case "error":
		parsed = zapcore.ErrorLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parsed)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
