// Package engine implements fragdb's core database engine: the single-owner
// coordinator that ties the codec, the fragment log, the in-memory index
// and the compactor together behind Open/Set/Get/Remove/Close.
//
// Engine is not safe for concurrent use. Like the system it was modeled on,
// it carries an atomic.Bool that marks the engine closed, so a second Close
// and any later operation return ErrEngineClosed; it is not a substitute
// for external serialization, which callers are expected to provide
// themselves.
package engine

import (
	"bytes"
	stdErrors "errors"
	"os"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/iamNilotpal/fragdb/internal/codec"
	"github.com/iamNilotpal/fragdb/internal/compactor"
	"github.com/iamNilotpal/fragdb/internal/fragment"
	"github.com/iamNilotpal/fragdb/internal/index"
	"github.com/iamNilotpal/fragdb/pkg/ferrors"
	"github.com/iamNilotpal/fragdb/pkg/filesys"
	"github.com/iamNilotpal/fragdb/pkg/options"
)

var (
	// ErrEngineClosed is returned when attempting to perform operations on a closed engine.
	ErrEngineClosed = stdErrors.New("operation failed: cannot access closed engine")
)

// Engine coordinates the fragment log, the in-memory index and online
// compaction for a single store directory.
type Engine struct {
	dir       string
	options   *options.Options
	log       *zap.SugaredLogger
	closed    atomic.Bool
	index     *index.Index
	fragments map[uint64]*os.File // fragment id -> open read/write handle
	activeID  uint64
	writeOff  int64 // next append offset within the active fragment

	unreclaimed uint64 // bytes made obsolete since the last compaction pass
	compactor   *compactor.Compactor
}

// Config holds the parameters needed to open an Engine.
type Config struct {
	Options *options.Options
	Logger  *zap.SugaredLogger
}

// Open opens (creating if necessary) the store directory named by
// config.Options.DataDir, replays its fragment log to rebuild the index,
// and runs one compaction pass if the recovered unreclaimed-byte count
// already exceeds the configured threshold.
func Open(config *Config) (*Engine, error) {
	if config == nil || config.Options == nil || config.Logger == nil {
		return nil, ferrors.NewRequiredFieldError("config").WithProvided(config)
	}

	dir := config.Options.DataDir
	if dir == "" {
		return nil, ferrors.NewRequiredFieldError("Options.DataDir")
	}

	// Checked before CreateDir so it actually distinguishes "brand new
	// store" from "reopening an existing, possibly empty, directory" —
	// after CreateDir runs the directory always exists.
	dirPreexisted, err := filesys.Exists(dir)
	if err != nil {
		return nil, ferrors.NewIoError(err, "failed to check store directory").WithPath(dir)
	}

	if err := filesys.CreateDir(dir, 0755, true); err != nil {
		return nil, ferrors.NewIoError(err, "failed to create store directory").WithPath(dir)
	}

	e := &Engine{
		dir:       dir,
		options:   config.Options,
		log:       config.Logger,
		index:     index.New(),
		fragments: make(map[uint64]*os.File),
		compactor: compactor.New(config.Logger),
	}

	if err := e.recover(dirPreexisted); err != nil {
		e.closeFragments()
		return nil, err
	}

	if e.unreclaimed > e.options.CompactionThreshold {
		if err := e.compact(); err != nil {
			e.closeFragments()
			return nil, err
		}
	}

	e.log.Infow("engine opened", "dir", dir, "activeFragment", e.activeID, "keys", e.index.Len())
	return e, nil
}

// Set writes key/value as a new record at the end of the active fragment
// and updates the index to point at it. The write is flushed before Set
// returns.
func (e *Engine) Set(key, value string) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}

	length, err := e.append(codec.Record{Kind: codec.KindSet, Key: key, Value: value})
	if err != nil {
		return err
	}

	pos := index.Position{FragmentID: e.activeID, Offset: e.writeOff - length, Length: length}
	if prior, existed := e.index.Set(key, pos); existed {
		e.unreclaimed += uint64(prior.Length)
	}

	return e.maybeCompact()
}

// Get returns the current value for key. The returned bool is false, with a
// nil error, if key has no entry in the index — a normal, expected outcome,
// not a failure.
func (e *Engine) Get(key string) (string, bool, error) {
	if e.closed.Load() {
		return "", false, ErrEngineClosed
	}

	pos, ok := e.index.Get(key)
	if !ok {
		return "", false, nil
	}

	rec, err := e.readAt(pos)
	if err != nil {
		return "", false, err
	}

	// A Position in the index always points at the most recently written
	// Set for its key; finding anything else here means the index and the
	// log have diverged, which is a corruption bug, not a caller error.
	if rec.Kind != codec.KindSet {
		panic("fragdb: index invariant violated: position for key does not point at a Set record")
	}

	return rec.Value, true, nil
}

// Remove deletes key from the store. It returns a NotFound error (see
// pkg/ferrors.IsNotFound) if key has no current entry — the caller's normal
// signal that there was nothing to remove, not a logged failure.
func (e *Engine) Remove(key string) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}

	prior, existed := e.index.Remove(key)
	if !existed {
		return ferrors.NewKeyNotFoundError(key, "Remove")
	}
	e.unreclaimed += uint64(prior.Length)

	length, err := e.append(codec.Record{Kind: codec.KindRemove, Key: key})
	if err != nil {
		return err
	}
	// The tombstone itself will never be read back once this key is gone
	// from the index, so its own bytes are immediately reclaimable too.
	e.unreclaimed += uint64(length)

	return e.maybeCompact()
}

// Close flushes and releases every open fragment handle. Close is safe to
// call at most once; subsequent calls return ErrEngineClosed.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrEngineClosed
	}
	e.log.Infow("closing engine", "dir", e.dir)
	return e.closeFragments()
}

// Compact forces an immediate compaction pass regardless of the configured
// threshold. This is a no-op-adjacent operation exposed mainly for the CLI
// front-end and for tests; normal operation triggers compaction
// automatically via maybeCompact.
func (e *Engine) Compact() error {
	if e.closed.Load() {
		return ErrEngineClosed
	}
	return e.compact()
}

// append encodes rec, writes it at the active fragment's current append
// offset, flushes it to disk, and advances the offset. It returns the
// number of bytes written.
func (e *Engine) append(rec codec.Record) (int64, error) {
	data, err := codec.Encode(rec)
	if err != nil {
		return 0, err
	}

	active := e.fragments[e.activeID]
	if _, err := active.WriteAt(data, e.writeOff); err != nil {
		return 0, ferrors.NewIoError(err, "failed to append record to active fragment").
			WithPath(fragment.Path(e.dir, e.activeID))
	}
	if err := active.Sync(); err != nil {
		return 0, ferrors.NewIoError(err, "failed to flush active fragment").
			WithPath(fragment.Path(e.dir, e.activeID))
	}

	e.writeOff += int64(len(data))
	return int64(len(data)), nil
}

// readAt decodes the single record located at pos, using the reader for
// pos.FragmentID specifically rather than assuming the active fragment —
// a record referenced by the index can live in any still-open fragment.
func (e *Engine) readAt(pos index.Position) (codec.Record, error) {
	reader, ok := e.fragments[pos.FragmentID]
	if !ok {
		return codec.Record{}, ferrors.NewFragmentError(
			nil, ferrors.ErrorCodeFragmentMissing, "no open reader for fragment referenced by index",
		).WithFragmentID(pos.FragmentID)
	}

	buf := make([]byte, pos.Length)
	if _, err := reader.ReadAt(buf, pos.Offset); err != nil {
		return codec.Record{}, ferrors.NewIoError(err, "failed to read record").
			WithPath(fragment.Path(e.dir, pos.FragmentID))
	}

	rec, _, err := codec.NewStreamDecoder(bytes.NewReader(buf)).Next()
	if err != nil {
		return codec.Record{}, err
	}
	return rec, nil
}

// maybeCompact runs a compaction pass if unreclaimed space exceeds the
// configured threshold; otherwise it is a no-op.
func (e *Engine) maybeCompact() error {
	if e.unreclaimed <= e.options.CompactionThreshold {
		return nil
	}
	return e.compact()
}

// compact rewrites the fragment log via the compactor and swaps the
// engine's state over to the result. The swap happens only after the new
// fragment has been durably renamed into place; old fragments are closed
// and deleted last, so a crash mid-cleanup leaves harmless orphan fragments
// that the next Open's ascending-id replay simply absorbs.
func (e *Engine) compact() error {
	result, err := e.compactor.Run(e.dir, e.index, e.fragments, e.activeID)
	if err != nil {
		return err
	}

	oldFragments := e.fragments

	e.index = result.Index
	e.fragments = map[uint64]*os.File{result.ActiveID: result.File}
	e.activeID = result.ActiveID
	e.unreclaimed = 0

	info, err := result.File.Stat()
	if err != nil {
		return ferrors.NewIoError(err, "failed to stat compacted fragment")
	}
	e.writeOff = info.Size()

	for _, id := range result.RemovedIDs {
		if f, ok := oldFragments[id]; ok {
			f.Close()
		}
		if err := fragment.Remove(e.dir, id); err != nil {
			e.log.Errorw("failed to remove superseded fragment after compaction", "fragment", id, "error", err)
		}
	}

	return nil
}

func (e *Engine) closeFragments() error {
	var firstErr error
	for _, f := range e.fragments {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
