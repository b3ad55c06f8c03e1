package fragment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilenameAndParseID(t *testing.T) {
	assert.Equal(t, "7.kv", Filename(7))

	id, ok, err := ParseID("7.kv")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(7), id)
}

func TestParseIDIgnoresNonFragmentFiles(t *testing.T) {
	_, ok, err := ParseID("notes.txt")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParseIDRejectsMalformedStem(t *testing.T) {
	_, _, err := ParseID("abc.kv")
	assert.Error(t, err)

	_, _, err = ParseID("007.kv")
	assert.Error(t, err)
}

func TestListAscendingOrder(t *testing.T) {
	dir := t.TempDir()
	for _, id := range []uint64{42, 1, 7} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, Filename(id)), nil, 0644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignore.me"), nil, 0644))

	ids, err := List(dir)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 7, 42}, ids)
}

func TestCreateAndRemove(t *testing.T) {
	dir := t.TempDir()

	f, err := Create(dir, 1)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	ids, err := List(dir)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1}, ids)

	require.NoError(t, Remove(dir, 1))
	ids, err = List(dir)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
