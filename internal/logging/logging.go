// Package logging wraps go.uber.org/zap with the conventions the rest of
// citeurl-go's domain stack (internal/httpserver, internal/store,
// cmd/citeurl) shares: a single --verbose switch choosing between a
// production and a development encoder, and a construction failure that
// degrades to a no-op logger rather than aborting startup.
package logging

import "go.uber.org/zap"

// New builds a *zap.Logger. verbose selects zap.NewDevelopment (human
// readable, debug level) over zap.NewProduction (JSON, info level). If
// construction fails it falls back to zap.NewNop, matching
// internal/lsp/server.go's fallback when the encoder can't be built.
func New(verbose bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
