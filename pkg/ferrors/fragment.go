package ferrors

// FragmentError is a specialized error type for failures in the on-disk log
// structure: malformed fragment filenames and missing fragment readers.
// Record decode failures are reported as CodecError instead.
type FragmentError struct {
	*baseError
	fragmentID uint64 // Which fragment was being accessed when the error occurred.
	offset     int64  // Byte offset within the fragment where the problem happened.
	path       string // Path of the fragment file that caused the issue.
}

// NewFragmentError creates a new fragment-specific error.
func NewFragmentError(err error, code ErrorCode, msg string) *FragmentError {
	return &FragmentError{baseError: NewBaseError(err, code, msg)}
}

// WithFragmentID records which fragment was involved in the error.
func (fe *FragmentError) WithFragmentID(id uint64) *FragmentError {
	fe.fragmentID = id
	return fe
}

// WithOffset records the byte position where the error occurred.
func (fe *FragmentError) WithOffset(offset int64) *FragmentError {
	fe.offset = offset
	return fe
}

// WithPath captures which fragment file was being processed.
func (fe *FragmentError) WithPath(path string) *FragmentError {
	fe.path = path
	return fe
}

// WithDetail adds contextual information while preserving the FragmentError type.
func (fe *FragmentError) WithDetail(key string, value any) *FragmentError {
	fe.baseError.WithDetail(key, value)
	return fe
}

// FragmentID returns the fragment identifier where the error occurred.
func (fe *FragmentError) FragmentID() uint64 {
	return fe.fragmentID
}

// Offset returns the byte offset within the fragment where the error happened.
func (fe *FragmentError) Offset() int64 {
	return fe.offset
}

// Path returns the path of the fragment file that was being processed.
func (fe *FragmentError) Path() string {
	return fe.path
}
