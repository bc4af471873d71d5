package observability

import (
	"go.uber.org/zap"
)

// NewLogger returns a development logger when verbose is set and a nop
// logger otherwise. Commands hand the logger to the API client so request
// traffic shows up under --verbose.
func NewLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
