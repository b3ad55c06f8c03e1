package ferrors

// IoError wraps a failure from the filesystem: opening, reading, writing,
// renaming or syncing a fragment or scratch directory.
type IoError struct {
	*baseError
	path string
}

// NewIoError creates a new I/O error wrapping the underlying system error.
func NewIoError(err error, msg string) *IoError {
	return &IoError{baseError: NewBaseError(err, ErrorCodeIO, msg)}
}

// WithPath records which path was being accessed when the error occurred.
func (e *IoError) WithPath(path string) *IoError {
	e.path = path
	return e
}

// WithDetail adds contextual information while preserving the IoError type.
func (e *IoError) WithDetail(key string, value any) *IoError {
	e.baseError.WithDetail(key, value)
	return e
}

// Path returns the path that was being accessed when the error occurred.
func (e *IoError) Path() string {
	return e.path
}

// CodecError wraps a failure encoding or decoding a record to/from its wire
// representation.
type CodecError struct {
	*baseError
	offset int64
}

// NewCodecError creates a new codec error wrapping the underlying error.
func NewCodecError(err error, code ErrorCode, msg string) *CodecError {
	return &CodecError{baseError: NewBaseError(err, code, msg)}
}

// WithOffset records the stream offset at which decoding failed.
func (e *CodecError) WithOffset(offset int64) *CodecError {
	e.offset = offset
	return e
}

// WithDetail adds contextual information while preserving the CodecError type.
func (e *CodecError) WithDetail(key string, value any) *CodecError {
	e.baseError.WithDetail(key, value)
	return e
}

// Offset returns the stream offset at which decoding failed.
func (e *CodecError) Offset() int64 {
	return e.offset
}
