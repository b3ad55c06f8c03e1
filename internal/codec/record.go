// Package codec implements the wire encoding for fragdb's log records and a
// self-delimiting stream decoder that reports the absolute byte offset each
// record ends at, which recovery needs to rebuild fragment positions.
//
// Records are encoded as externally-tagged JSON, concatenated with no
// separators: {"Set":{"key":...,"value":...}} for a write, {"Rm":{"key":...}}
// for a tombstone. This mirrors the on-disk format of the system this engine
// was modeled on and is treated as a format-stability requirement — it must
// never change without a version bump to the fragment format itself.
package codec

import (
	"io"

	json "github.com/goccy/go-json"

	"github.com/iamNilotpal/fragdb/pkg/ferrors"
)

// Kind distinguishes a Set record (a live value) from a Remove record (a
// tombstone).
type Kind int

const (
	// KindSet records a key/value write.
	KindSet Kind = iota
	// KindRemove records a tombstone for a key.
	KindRemove
)

// Record is the in-memory representation of one log entry.
type Record struct {
	Kind  Kind
	Key   string
	Value string // empty and meaningless for KindRemove
}

// setPayload and rmPayload are the inner shapes of the tagged-union wire
// format.
type setPayload struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type rmPayload struct {
	Key string `json:"key"`
}

// wireRecord mirrors the externally-tagged JSON shape. Exactly one of Set or
// Rm is present on the wire, so both fields are pointers with omitempty:
// encoding a Record sets only the relevant one, and decoding leaves the
// other nil.
type wireRecord struct {
	Set *setPayload `json:"Set,omitempty"`
	Rm  *rmPayload  `json:"Rm,omitempty"`
}

// Encode serializes a Record to its wire representation.
func Encode(rec Record) ([]byte, error) {
	var wire wireRecord
	switch rec.Kind {
	case KindSet:
		wire.Set = &setPayload{Key: rec.Key, Value: rec.Value}
	case KindRemove:
		wire.Rm = &rmPayload{Key: rec.Key}
	default:
		return nil, ferrors.NewCodecError(nil, ferrors.ErrorCodeCodecEncode, "unknown record kind").
			WithDetail("kind", rec.Kind)
	}

	data, err := json.Marshal(wire)
	if err != nil {
		return nil, ferrors.NewCodecError(err, ferrors.ErrorCodeCodecEncode, "failed to encode record")
	}
	return data, nil
}

// StreamDecoder decodes a back-to-back sequence of wire records from a
// fragment file, reporting the absolute byte offset at which each record
// ends so the caller can record its length.
type StreamDecoder struct {
	dec *json.Decoder
}

// NewStreamDecoder wraps r for sequential record decoding.
func NewStreamDecoder(r io.Reader) *StreamDecoder {
	return &StreamDecoder{dec: json.NewDecoder(r)}
}

// Next decodes the record at the decoder's current position and returns it
// along with the absolute offset immediately after the record, as reported
// by the underlying decoder's InputOffset. io.EOF is returned once the
// stream is exhausted.
func (d *StreamDecoder) Next() (Record, int64, error) {
	var wire wireRecord
	if err := d.dec.Decode(&wire); err != nil {
		if err == io.EOF {
			return Record{}, 0, io.EOF
		}
		return Record{}, 0, ferrors.NewCodecError(err, ferrors.ErrorCodeCodecDecode, "failed to decode record").
			WithOffset(d.dec.InputOffset())
	}

	end := d.dec.InputOffset()

	switch {
	case wire.Set != nil:
		return Record{Kind: KindSet, Key: wire.Set.Key, Value: wire.Set.Value}, end, nil
	case wire.Rm != nil:
		return Record{Kind: KindRemove, Key: wire.Rm.Key}, end, nil
	default:
		return Record{}, 0, ferrors.NewCodecError(nil, ferrors.ErrorCodeCodecDecode, "record has neither Set nor Rm variant").
			WithOffset(end)
	}
}
