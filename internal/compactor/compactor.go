// Package compactor rewrites a store's fragment log into a single new
// fragment holding one live record per key, then atomically swaps it in.
//
// The new fragment is staged under a dot-prefixed, UUID-named scratch
// directory created inside the store directory itself — not a system temp
// directory — so the final os.Rename into the store directory is guaranteed
// to stay on one filesystem and therefore be atomic. A cross-filesystem
// staging directory would risk a non-atomic, possibly partial rename; this
// sidesteps that hazard entirely rather than reproducing it.
package compactor

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iamNilotpal/fragdb/internal/fragment"
	"github.com/iamNilotpal/fragdb/internal/index"
	"github.com/iamNilotpal/fragdb/pkg/ferrors"
)

// Compactor rewrites a store's fragment log.
type Compactor struct {
	log *zap.SugaredLogger
}

// New creates a Compactor that logs through log.
func New(log *zap.SugaredLogger) *Compactor {
	return &Compactor{log: log}
}

// Result describes the fragment that replaces the old log.
type Result struct {
	Index      *index.Index    // rebuilt index, positions relative to the new fragment
	ActiveID   uint64          // id of the newly written fragment
	File       *os.File        // open read/write handle on the new fragment, ready to append
	RemovedIDs []uint64        // pre-compaction fragment ids the caller should now delete
}

// Run copies the single live record for every key in idx out of its owning
// fragment (via readers) into a new fragment one id past activeID, and
// returns the new state for the engine to swap in. It does not mutate idx,
// readers, or any fragment file on disk until the new fragment has been
// fully written and renamed into place — a failure at any point before the
// rename leaves the existing log completely untouched.
func (c *Compactor) Run(dir string, idx *index.Index, readers map[uint64]*os.File, activeID uint64) (*Result, error) {
	snapshot := idx.Clone()
	newID := activeID + 1

	scratchDir := filepath.Join(dir, "."+uuid.New().String())
	if err := os.MkdirAll(scratchDir, 0755); err != nil {
		return nil, ferrors.NewIoError(err, "failed to create compaction scratch directory").WithPath(scratchDir)
	}
	// If anything below fails, the scratch directory and its contents are
	// orphaned but harmless: they live under a dot-prefixed name that
	// fragment.List never enumerates, so the store's on-disk state is
	// unaffected. Clean up best-effort on any failure path.
	succeeded := false
	defer func() {
		if !succeeded {
			os.RemoveAll(scratchDir)
		}
	}()

	scratchPath := filepath.Join(scratchDir, fragment.Filename(newID))
	scratchFile, err := os.OpenFile(scratchPath, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, ferrors.ClassifyFileOpenError(err, scratchPath)
	}

	newIndex := index.New()
	var offset int64

	var copyErr error
	snapshot.Each(func(key string, pos index.Position) {
		if copyErr != nil {
			return
		}

		reader, ok := readers[pos.FragmentID]
		if !ok {
			copyErr = ferrors.NewFragmentError(
				nil, ferrors.ErrorCodeFragmentMissing, "no open reader for fragment referenced by index",
			).WithFragmentID(pos.FragmentID).WithDetail("key", key)
			return
		}

		buf := make([]byte, pos.Length)
		if _, err := reader.ReadAt(buf, pos.Offset); err != nil && err != io.EOF {
			copyErr = ferrors.NewIoError(err, "failed to read record during compaction").
				WithDetail("fragment", pos.FragmentID).WithDetail("key", key)
			return
		}

		if _, err := scratchFile.WriteAt(buf, offset); err != nil {
			copyErr = ferrors.NewIoError(err, "failed to write record during compaction").WithPath(scratchPath)
			return
		}

		newIndex.Set(key, index.Position{FragmentID: newID, Offset: offset, Length: int64(len(buf))})
		offset += int64(len(buf))
	})

	if copyErr != nil {
		scratchFile.Close()
		return nil, copyErr
	}

	if err := scratchFile.Sync(); err != nil {
		scratchFile.Close()
		return nil, ferrors.NewIoError(err, "failed to sync compacted fragment").WithPath(scratchPath)
	}
	if err := scratchFile.Close(); err != nil {
		return nil, ferrors.NewIoError(err, "failed to close compacted fragment").WithPath(scratchPath)
	}

	finalPath := fragment.Path(dir, newID)
	if err := os.Rename(scratchPath, finalPath); err != nil {
		return nil, ferrors.NewIoError(err, "failed to rename compacted fragment into place").
			WithPath(finalPath).WithDetail("from", scratchPath)
	}

	// The rename succeeded: the new fragment is now durably part of the
	// store's on-disk state under its real name. From here on, failures are
	// reported but don't unwind — the caller's state swap and old-fragment
	// cleanup happen next, and a crash between rename and cleanup is
	// self-healing on the next recovery pass (the orphaned old fragments
	// simply replay into an index that compaction already made redundant).
	succeeded = true
	os.RemoveAll(scratchDir)

	reopened, err := fragment.OpenReadWrite(dir, newID)
	if err != nil {
		return nil, err
	}

	removed := make([]uint64, 0, len(readers))
	for id := range readers {
		removed = append(removed, id)
	}

	c.log.Infow(
		"compaction finished",
		"newFragment", newID, "keys", newIndex.Len(), "removedFragments", len(removed),
	)

	return &Result{Index: newIndex, ActiveID: newID, File: reopened, RemovedIDs: removed}, nil
}
