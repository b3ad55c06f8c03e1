package ferrors

// IndexError provides specialized error handling for in-memory index
// operations: lookups, removals, and invariant checks against the
// key-to-position map.
type IndexError struct {
	*baseError
	key       string // Identifies which key was being processed when the error occurred.
	operation string // Describes what index operation was being performed (e.g. "Get", "Remove").
}

// NewIndexError creates a new index-specific error with the provided context.
func NewIndexError(err error, code ErrorCode, msg string) *IndexError {
	return &IndexError{baseError: NewBaseError(err, code, msg)}
}

// WithKey records which key was being processed when the error occurred.
func (ie *IndexError) WithKey(key string) *IndexError {
	ie.key = key
	return ie
}

// WithOperation records what index operation was being performed.
func (ie *IndexError) WithOperation(operation string) *IndexError {
	ie.operation = operation
	return ie
}

// WithDetail adds contextual information while preserving the IndexError type.
func (ie *IndexError) WithDetail(key string, value any) *IndexError {
	ie.baseError.WithDetail(key, value)
	return ie
}

// Key returns the key that was being processed when the error occurred.
func (ie *IndexError) Key() string {
	return ie.key
}

// Operation returns the name of the operation that was being performed.
func (ie *IndexError) Operation() string {
	return ie.operation
}

// NewKeyNotFoundError creates the specialized error for a missing key. This
// is the NotFound kind returned by Remove against an absent key — not
// logged as a failure, just returned to the caller.
func NewKeyNotFoundError(key, operation string) *IndexError {
	return NewIndexError(nil, ErrorCodeKeyNotFound, "key not found").
		WithKey(key).
		WithOperation(operation)
}
