package codec

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSet(t *testing.T) {
	data, err := Encode(Record{Kind: KindSet, Key: "foo", Value: "bar"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Set":{"key":"foo","value":"bar"}}`, string(data))
}

func TestEncodeRemove(t *testing.T) {
	data, err := Encode(Record{Kind: KindRemove, Key: "foo"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Rm":{"key":"foo"}}`, string(data))
}

func TestStreamDecoderRoundTrip(t *testing.T) {
	var buf bytes.Buffer

	records := []Record{
		{Kind: KindSet, Key: "a", Value: "1"},
		{Kind: KindSet, Key: "b", Value: "2"},
		{Kind: KindRemove, Key: "a"},
	}

	var ends []int64
	for _, rec := range records {
		data, err := Encode(rec)
		require.NoError(t, err)
		buf.Write(data)
		ends = append(ends, int64(buf.Len()))
	}

	dec := NewStreamDecoder(&buf)
	for i, want := range records {
		got, end, err := dec.Next()
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, ends[i], end)
	}

	_, _, err := dec.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestStreamDecoderMalformed(t *testing.T) {
	dec := NewStreamDecoder(bytes.NewReader([]byte(`{"Bogus":{}}`)))
	_, _, err := dec.Next()
	require.Error(t, err)
}
