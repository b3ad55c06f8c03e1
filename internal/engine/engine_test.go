package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iamNilotpal/fragdb/pkg/ferrors"
	"github.com/iamNilotpal/fragdb/pkg/options"
)

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func openEngine(t *testing.T, opts ...options.OptionFunc) (*Engine, string) {
	t.Helper()
	dir := t.TempDir()

	o := options.NewDefaultOptions()
	options.WithDataDir(dir)(&o)
	for _, opt := range opts {
		opt(&o)
	}

	e, err := Open(&Config{Options: &o, Logger: testLogger()})
	require.NoError(t, err)
	return e, dir
}

func TestGetStoredValue(t *testing.T) {
	e, _ := openEngine(t)
	defer e.Close()

	require.NoError(t, e.Set("key1", "value1"))
	require.NoError(t, e.Set("key2", "value2"))

	val, ok, err := e.Get("key1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value1", val)

	val, ok, err = e.Get("key2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value2", val)
}

func TestOverwriteValue(t *testing.T) {
	e, _ := openEngine(t)
	defer e.Close()

	require.NoError(t, e.Set("key1", "value1"))
	require.NoError(t, e.Set("key1", "value2"))

	val, ok, err := e.Get("key1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value2", val)
}

func TestGetNonExistentValue(t *testing.T) {
	e, _ := openEngine(t)
	defer e.Close()

	_, ok, err := e.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRemoveNonExistentKey(t *testing.T) {
	e, _ := openEngine(t)
	defer e.Close()

	err := e.Remove("missing")
	require.Error(t, err)
	assert.True(t, ferrors.IsNotFound(err))
}

func TestRemoveKey(t *testing.T) {
	e, _ := openEngine(t)
	defer e.Close()

	require.NoError(t, e.Set("key1", "value1"))
	require.NoError(t, e.Remove("key1"))

	_, ok, err := e.Get("key1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecoveryAcrossReopen(t *testing.T) {
	e, dir := openEngine(t)

	require.NoError(t, e.Set("key1", "value1"))
	require.NoError(t, e.Set("key2", "value2"))
	require.NoError(t, e.Remove("key2"))
	require.NoError(t, e.Close())

	o := options.NewDefaultOptions()
	options.WithDataDir(dir)(&o)
	reopened, err := Open(&Config{Options: &o, Logger: testLogger()})
	require.NoError(t, err)
	defer reopened.Close()

	val, ok, err := reopened.Get("key1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value1", val)

	_, ok, err = reopened.Get("key2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func dirSize(t *testing.T, dir string) int64 {
	t.Helper()
	var total int64
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		info, err := entry.Info()
		require.NoError(t, err)
		total += info.Size()
	}
	return total
}

func TestCompactionShrinksDirectory(t *testing.T) {
	e, dir := openEngine(t, options.WithCompactionThreshold(4096))

	// Overwrite every key once per round and measure the directory after
	// each round; compaction must make it shrink at some round.
	const keys = 200
	shrunkAt := -1
	before := dirSize(t, dir)
	var after int64
	for iter := range keys {
		for k := range keys {
			require.NoError(t, e.Set(fmt.Sprintf("key-%d", k), fmt.Sprintf("value-%d", iter)))
		}
		after = dirSize(t, dir)
		if after < before {
			shrunkAt = iter
			break
		}
		before = after
	}
	require.NotEqual(t, -1, shrunkAt, "directory size never decreased between rounds")
	assert.Less(t, after, before)
	require.NoError(t, e.Close())

	o := options.NewDefaultOptions()
	options.WithDataDir(dir)(&o)
	options.WithCompactionThreshold(4096)(&o)
	reopened, err := Open(&Config{Options: &o, Logger: testLogger()})
	require.NoError(t, err)
	defer reopened.Close()

	for k := range keys {
		val, ok, err := reopened.Get(fmt.Sprintf("key-%d", k))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, fmt.Sprintf("value-%d", shrunkAt), val)
	}
}

func TestOpenRejectsNilConfig(t *testing.T) {
	_, err := Open(nil)
	assert.Error(t, err)
}

func TestOpenUsesGivenDataDir(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "nested", "store")

	o := options.NewDefaultOptions()
	options.WithDataDir(dir)(&o)

	e, err := Open(&Config{Options: &o, Logger: testLogger()})
	require.NoError(t, err)
	defer e.Close()

	_, statErr := os.Stat(dir)
	assert.NoError(t, statErr)
}
