// Package fragment owns the on-disk log file type: filename parsing and
// generation, directory enumeration in ascending id order, and the create/
// open helpers the engine and compactor use to get at a fragment's bytes.
package fragment

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/iamNilotpal/fragdb/pkg/ferrors"
	"github.com/iamNilotpal/fragdb/pkg/filesys"
)

// Extension is the suffix every fragment file carries.
const Extension = ".kv"

// Filename returns the on-disk name for fragment id, e.g. "7.kv".
func Filename(id uint64) string {
	return strconv.FormatUint(id, 10) + Extension
}

// Path joins dir and the fragment filename for id.
func Path(dir string, id uint64) string {
	return filepath.Join(dir, Filename(id))
}

// ParseID extracts the fragment id from a filename. Files without the
// ".kv" extension are not fragments at all and are reported via ok=false
// with a nil error — callers should simply skip them. A ".kv" file whose
// stem isn't a valid, non-negative decimal uint64 is a genuine error: it
// looks like a fragment but isn't one this engine wrote.
func ParseID(name string) (id uint64, ok bool, err error) {
	if filepath.Ext(name) != Extension {
		return 0, false, nil
	}

	stem := strings.TrimSuffix(name, Extension)
	id, perr := strconv.ParseUint(stem, 10, 64)
	if perr != nil {
		return 0, false, ferrors.NewFragmentError(
			perr, ferrors.ErrorCodeFragmentNameInvalid, "fragment filename is not a valid decimal id",
		).WithPath(name)
	}

	// Reject leading zeros so id->filename->id round-trips exactly; "007.kv"
	// is not a fragment this engine would ever have written itself.
	if stem != strconv.FormatUint(id, 10) {
		return 0, false, ferrors.NewFragmentError(
			nil, ferrors.ErrorCodeFragmentNameInvalid, "fragment filename has non-canonical digits",
		).WithPath(name)
	}

	return id, true, nil
}

// List enumerates every fragment file directly inside dir and returns their
// ids in ascending order. This is the corrected replacement for relying on
// the operating system's directory iteration order, which on most
// filesystems is unspecified and must not be used to decide which fragment
// is "active".
func List(dir string) ([]uint64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ferrors.ClassifyFileOpenError(err, dir)
	}

	ids := make([]uint64, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		id, ok, err := ParseID(entry.Name())
		if err != nil {
			return nil, err
		}
		if ok {
			ids = append(ids, id)
		}
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Create creates (or truncates) the fragment file for id inside dir, ready
// for both appending and random-access reads.
func Create(dir string, id uint64) (*os.File, error) {
	path := Path(dir, id)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, ferrors.ClassifyFileOpenError(err, path)
	}
	return f, nil
}

// OpenReadWrite opens an existing fragment file for both appending and
// random-access reads.
func OpenReadWrite(dir string, id uint64) (*os.File, error) {
	path := Path(dir, id)
	f, err := os.OpenFile(path, os.O_RDWR, 0644)
	if err != nil {
		return nil, ferrors.ClassifyFileOpenError(err, path)
	}
	return f, nil
}

// Remove deletes the fragment file for id inside dir.
func Remove(dir string, id uint64) error {
	path := Path(dir, id)
	if err := filesys.DeleteFile(path); err != nil {
		return ferrors.NewIoError(err, "failed to remove fragment file").WithPath(path)
	}
	return nil
}
