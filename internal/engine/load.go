package engine

import (
	"io"

	"github.com/iamNilotpal/fragdb/internal/codec"
	"github.com/iamNilotpal/fragdb/internal/fragment"
	"github.com/iamNilotpal/fragdb/internal/index"
)

// recover scans the store directory for existing fragments in ascending id
// order, replays each one's records into the index, and leaves the highest
// numbered fragment open for further appends. On an empty directory it
// creates fragment 0 as the initial active fragment. dirPreexisted tells it
// whether the store directory was there before this Open call, purely to
// make that first-fragment log line distinguish a fresh store from a
// reopened one that never got past its first write.
func (e *Engine) recover(dirPreexisted bool) error {
	ids, err := fragment.List(e.dir)
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		if dirPreexisted {
			e.log.Infow("no fragments found in existing store directory, starting fresh", "dir", e.dir)
		} else {
			e.log.Infow("store directory did not exist, creating new store", "dir", e.dir)
		}

		f, err := fragment.Create(e.dir, 0)
		if err != nil {
			return err
		}
		e.fragments[0] = f
		e.activeID = 0
		e.writeOff = 0
		return nil
	}

	for _, id := range ids {
		f, err := fragment.OpenReadWrite(e.dir, id)
		if err != nil {
			return err
		}
		e.fragments[id] = f

		offset, err := e.replayFragment(id, f)
		if err != nil {
			return err
		}

		// ids is ascending, so the last fragment visited is the active one.
		e.activeID = id
		e.writeOff = offset
	}

	return nil
}

// replayFragment decodes every record in fragment id, applying Set/Remove
// to the index and accumulating unreclaimed-space for every byte a later
// record in the log has made obsolete. It returns the fragment's total byte
// length.
func (e *Engine) replayFragment(id uint64, f io.Reader) (int64, error) {
	dec := codec.NewStreamDecoder(f)

	var offset int64
	for {
		rec, end, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		length := end - offset

		switch rec.Kind {
		case codec.KindSet:
			prior, existed := e.index.Set(rec.Key, index.Position{FragmentID: id, Offset: offset, Length: length})
			if existed {
				e.unreclaimed += uint64(prior.Length)
			}
		case codec.KindRemove:
			prior, existed := e.index.Remove(rec.Key)
			if existed {
				e.unreclaimed += uint64(prior.Length)
			}
			// The tombstone's own bytes are reclaimable the moment it is
			// replayed, matching the accounting Remove does at write time.
			e.unreclaimed += uint64(length)
		}

		offset = end
	}

	return offset, nil
}
