package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetGetRemove(t *testing.T) {
	idx := New()

	_, existed := idx.Set("a", Position{FragmentID: 1, Offset: 0, Length: 10})
	assert.False(t, existed)

	pos, ok := idx.Get("a")
	assert.True(t, ok)
	assert.Equal(t, uint64(1), pos.FragmentID)

	prior, existed := idx.Set("a", Position{FragmentID: 2, Offset: 10, Length: 5})
	assert.True(t, existed)
	assert.Equal(t, uint64(1), prior.FragmentID)

	removed, existed := idx.Remove("a")
	assert.True(t, existed)
	assert.Equal(t, uint64(2), removed.FragmentID)

	_, ok = idx.Get("a")
	assert.False(t, ok)

	_, existed = idx.Remove("missing")
	assert.False(t, existed)
}

func TestCloneIsIndependent(t *testing.T) {
	idx := New()
	idx.Set("a", Position{FragmentID: 1})

	clone := idx.Clone()
	clone.Set("b", Position{FragmentID: 2})

	assert.Equal(t, 1, idx.Len())
	assert.Equal(t, 2, clone.Len())
}

func TestEach(t *testing.T) {
	idx := New()
	idx.Set("a", Position{FragmentID: 1})
	idx.Set("b", Position{FragmentID: 2})

	seen := make(map[string]uint64)
	idx.Each(func(key string, pos Position) {
		seen[key] = pos.FragmentID
	})

	assert.Equal(t, map[string]uint64{"a": 1, "b": 2}, seen)
}
