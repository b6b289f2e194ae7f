// Package logger builds the zap logger shared by the server and its services.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON production logger, or a console logger with debug
// output when env is "development" or debug is set.
func New(env string, debug bool) (*zap.Logger, error) {
	if env == "development" || debug {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg.Build()
	}
	return zap.NewProduction()
}
