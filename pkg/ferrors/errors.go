// Package ferrors transforms the engine's internal failures into a small,
// consistent taxonomy — Io, Codec, NotFound (carried as an IndexError with
// ErrorCodeKeyNotFound) and Fragment — so callers can branch on what kind of
// thing went wrong without parsing messages.
package ferrors

import (
	stdErrors "errors"
	"os"
	"syscall"
)

// IsNotFound reports whether err is the "key not found" outcome of a Remove
// against a missing key. This is a normal, unlogged result — not a
// failure — so callers check for it explicitly rather than treating it like
// an I/O or codec error.
func IsNotFound(err error) bool {
	var ie *IndexError
	return stdErrors.As(err, &ie) && ie.Code() == ErrorCodeKeyNotFound
}

// AsFragmentError extracts FragmentError context from an error chain.
func AsFragmentError(err error) (*FragmentError, bool) {
	var fe *FragmentError
	if stdErrors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// AsIoError extracts IoError context from an error chain.
func AsIoError(err error) (*IoError, bool) {
	var ie *IoError
	if stdErrors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// AsCodecError extracts CodecError context from an error chain.
func AsCodecError(err error) (*CodecError, bool) {
	var ce *CodecError
	if stdErrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from any error that supports it, or
// returns ErrorCodeInternal for errors that don't.
func GetErrorCode(err error) ErrorCode {
	if fe, ok := AsFragmentError(err); ok {
		return fe.Code()
	}
	if ie, ok := AsIoError(err); ok {
		return ie.Code()
	}
	if ce, ok := AsCodecError(err); ok {
		return ce.Code()
	}
	var idxErr *IndexError
	if stdErrors.As(err, &idxErr) {
		return idxErr.Code()
	}
	var ve *ValidationError
	if stdErrors.As(err, &ve) {
		return ve.Code()
	}
	return ErrorCodeInternal
}

// ClassifyFileOpenError analyzes a fragment-file-open failure and returns an
// IoError with as specific a message as the underlying syscall error allows.
func ClassifyFileOpenError(err error, path string) error {
	if os.IsPermission(err) {
		return NewIoError(err, "insufficient permissions to open fragment file").
			WithPath(path).
			WithDetail("suggestion", "check file permissions or run with elevated privileges")
	}

	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewIoError(err, "insufficient disk space to create fragment file").
					WithPath(path).
					WithDetail("suggestion", "free up disk space")
			case syscall.EROFS:
				return NewIoError(err, "cannot create fragment file on read-only filesystem").
					WithPath(path).
					WithDetail("suggestion", "remount filesystem with write permissions")
			}
		}
	}

	return NewIoError(err, "failed to open fragment file").WithPath(path)
}
