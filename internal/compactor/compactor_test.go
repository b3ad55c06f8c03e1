package compactor

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iamNilotpal/fragdb/internal/codec"
	"github.com/iamNilotpal/fragdb/internal/fragment"
	"github.com/iamNilotpal/fragdb/internal/index"
)

func writeRecord(t *testing.T, f *os.File, offset int64, rec codec.Record) int64 {
	t.Helper()
	data, err := codec.Encode(rec)
	require.NoError(t, err)
	_, err = f.WriteAt(data, offset)
	require.NoError(t, err)
	return offset + int64(len(data))
}

func TestRunRewritesOnlyLiveRecords(t *testing.T) {
	dir := t.TempDir()

	f1, err := fragment.Create(dir, 1)
	require.NoError(t, err)
	defer f1.Close()

	var off int64
	aEnd := writeRecord(t, f1, off, codec.Record{Kind: codec.KindSet, Key: "a", Value: "1"})
	off = aEnd
	bEnd := writeRecord(t, f1, off, codec.Record{Kind: codec.KindSet, Key: "b", Value: "2"})
	off = bEnd
	writeRecord(t, f1, off, codec.Record{Kind: codec.KindRemove, Key: "a"})

	idx := index.New()
	idx.Set("b", index.Position{FragmentID: 1, Offset: aEnd, Length: bEnd - aEnd})

	readers := map[uint64]*os.File{1: f1}

	c := New(zap.NewNop().Sugar())
	result, err := c.Run(dir, idx, readers, 1)
	require.NoError(t, err)
	defer result.File.Close()

	assert.Equal(t, uint64(2), result.ActiveID)
	assert.Equal(t, 1, result.Index.Len())
	assert.Equal(t, []uint64{1}, result.RemovedIDs)

	pos, ok := result.Index.Get("b")
	require.True(t, ok)
	assert.Equal(t, uint64(2), pos.FragmentID)

	ids, err := fragment.List(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{1, 2}, ids)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, len(e.Name()) > 0 && e.Name()[0] == '.', "scratch directory should not survive compaction: %s", e.Name())
	}
}

func TestRunMissingReaderFails(t *testing.T) {
	dir := t.TempDir()
	idx := index.New()
	idx.Set("a", index.Position{FragmentID: 99, Offset: 0, Length: 1})

	c := New(zap.NewNop().Sugar())
	_, err := c.Run(dir, idx, map[uint64]*os.File{}, 1)
	assert.Error(t, err)
}
