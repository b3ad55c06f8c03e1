// Package flog constructs the *zap.SugaredLogger every fragdb subsystem's
// Config carries, following the same "one logger per service name" pattern
// the engine facade expects from its constructors.
package flog

import "go.uber.org/zap"

// Config controls how the logger is built.
type Config struct {
	// Service names the component the logger is attached to; it becomes the
	// logger's name (zap's "logger" field on every line). Empty means "fragdb".
	Service string

	// Development switches between zap's human-readable console encoder
	// (true) and its production JSON encoder (false).
	Development bool
}

// New builds a *zap.SugaredLogger scoped to service. Construction failures
// fall back to zap's no-op logger rather than panicking, since a logger
// should never be the reason the store fails to open.
func New(service string) *zap.SugaredLogger {
	return NewWithConfig(Config{Service: service})
}

// NewWithConfig builds a *zap.SugaredLogger from an explicit Config.
func NewWithConfig(cfg Config) *zap.SugaredLogger {
	var base *zap.Logger
	var err error

	if cfg.Development {
		base, err = zap.NewDevelopment()
	} else {
		base, err = zap.NewProduction()
	}
	if err != nil {
		base = zap.NewNop()
	}

	name := cfg.Service
	if name == "" {
		name = "fragdb"
	}
	return base.Sugar().Named(name)
}
