package imgcat

import (
	"fmt"

	"github.com/pkg/errors"
)

// Normalizer errors. All of them describe a problem with the caller's input and
// are never worth retrying.
var (
	ErrNotFound          = errors.New("image file not found")
	ErrEmptyInput        = errors.New("empty image input")
	ErrShape             = errors.New("unsupported pixel array shape")
	ErrUnsupportedHandle = errors.New("handle cannot be rasterized")
	ErrInvalidDimension  = errors.New("invalid dimension")
	ErrDecode            = errors.New("failed to decode image")
)

// Encoder errors.
var (
	ErrWrite        = errors.New("failed to write image")
	ErrSizeMismatch = errors.New("declared size does not match payload")
	ErrNoImageData  = errors.New("canonical image has no pixel or encoded data")
)

// IsNormalizationError reports whether err was produced by Normalize because of
// bad input.
func IsNormalizationError(err error) bool {
	for _, target := range []error{
		ErrNotFound,
		ErrEmptyInput,
		ErrShape,
		ErrUnsupportedHandle,
		ErrInvalidDimension,
		ErrDecode,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// WriteError is returned when the output sink rejects a frame.
type WriteError struct {
	Op  string // "write" or "flush"
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrWrite, e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrWrite) hold for every WriteError.
func (e *WriteError) Is(target error) bool { return target == ErrWrite }
