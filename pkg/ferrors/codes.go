package ferrors

// ErrorCode represents a standardized way to categorize different types of errors.
type ErrorCode string

// Base error codes represent the fundamental categories of failures.
const (
	// ErrorCodeIO represents failures in input/output operations: opening,
	// reading, writing or syncing a fragment file.
	ErrorCodeIO ErrorCode = "IO_ERROR"

	// ErrorCodeInvalidInput represents client-side errors where supplied
	// configuration or arguments don't meet the store's requirements.
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrorCodeInternal represents unexpected failures that don't fit into
	// any other category.
	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Fragment-specific error codes cover the on-disk log structure: malformed
// filenames, missing readers, and corrupted record streams.
const (
	// ErrorCodeFragmentNameInvalid indicates a ".kv" file whose stem isn't a
	// valid decimal fragment id.
	ErrorCodeFragmentNameInvalid ErrorCode = "FRAGMENT_NAME_INVALID"

	// ErrorCodeFragmentMissing indicates the index points at a fragment id
	// for which no open reader is held.
	ErrorCodeFragmentMissing ErrorCode = "FRAGMENT_MISSING"

	// ErrorCodeFragmentCorrupted indicates a record read back from a
	// fragment violates the expected codec framing.
	ErrorCodeFragmentCorrupted ErrorCode = "FRAGMENT_CORRUPTED"
)

// Codec-specific error codes.
const (
	// ErrorCodeCodecDecode indicates the stream decoder failed to parse a
	// record at the current offset.
	ErrorCodeCodecDecode ErrorCode = "CODEC_DECODE_FAILURE"

	// ErrorCodeCodecEncode indicates a record failed to marshal to its wire
	// representation.
	ErrorCodeCodecEncode ErrorCode = "CODEC_ENCODE_FAILURE"
)

// Index-specific error codes.
const (
	// ErrorCodeKeyNotFound indicates a removal found no entry for the
	// requested key.
	ErrorCodeKeyNotFound ErrorCode = "INDEX_KEY_NOT_FOUND"
)
