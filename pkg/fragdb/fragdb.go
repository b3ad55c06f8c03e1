// Package fragdb is the public entry point for the log-structured
// key-value store engine: a thin, functional-options-configured wrapper
// over internal/engine that external collaborators import.
package fragdb

import (
	"github.com/iamNilotpal/fragdb/internal/engine"
	"github.com/iamNilotpal/fragdb/pkg/ferrors"
	"github.com/iamNilotpal/fragdb/pkg/flog"
	"github.com/iamNilotpal/fragdb/pkg/options"
)

// Store is a handle on an open fragdb instance. It is not safe for
// concurrent use; callers serialize access themselves.
type Store struct {
	engine  *engine.Engine
	options *options.Options
}

// Open opens (creating if necessary) the store rooted at dir, replaying its
// fragment log and running a compaction pass if recovery finds the
// unreclaimed-byte count already past the configured threshold.
func Open(dir string, opts ...options.OptionFunc) (*Store, error) {
	o := options.NewDefaultOptions()
	options.WithDataDir(dir)(&o)
	for _, opt := range opts {
		opt(&o)
	}

	log := flog.New("fragdb")
	eng, err := engine.Open(&engine.Config{Options: &o, Logger: log})
	if err != nil {
		return nil, err
	}

	return &Store{engine: eng, options: &o}, nil
}

// Set stores value under key, overwriting any existing value.
func (s *Store) Set(key, value string) error {
	return s.engine.Set(key, value)
}

// Get returns the current value for key. The returned bool is false if key
// has no entry in the store.
func (s *Store) Get(key string) (string, bool, error) {
	return s.engine.Get(key)
}

// Remove deletes key from the store. It returns an error satisfying
// ferrors.IsNotFound if key had no entry.
func (s *Store) Remove(key string) error {
	return s.engine.Remove(key)
}

// Compact forces an immediate compaction pass regardless of the configured
// unreclaimed-byte threshold.
func (s *Store) Compact() error {
	return s.engine.Compact()
}

// Close flushes and releases every resource the store holds open.
func (s *Store) Close() error {
	return s.engine.Close()
}

// IsNotFound reports whether err is the NotFound outcome of Remove against
// a missing key. Re-exported here so callers of pkg/fragdb never need to
// import pkg/ferrors directly for the common case.
func IsNotFound(err error) bool {
	return ferrors.IsNotFound(err)
}
