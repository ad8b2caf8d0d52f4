package thumbnail

import (
	"errors"
	"fmt"

	"github.com/ironsheep/wand-thumbnail/internal/magick"
)

var (
	// ErrPathEncoding indicates a path that cannot be represented as a native
	// NUL-terminated string.
	ErrPathEncoding = errors.New("thumbnail: path contains a NUL byte")

	// ErrHandleClosed indicates use of a Handle after Close.
	ErrHandleClosed = errors.New("thumbnail: handle is closed")

	// ErrLibraryClosed indicates use of a Library after Close.
	ErrLibraryClosed = errors.New("thumbnail: library is closed")
)

// ErrorDescriptor is the message and severity of the most recent native
// failure on a Handle.
type ErrorDescriptor struct {
	Message  string
	Severity magick.ExceptionType
}

func (d ErrorDescriptor) String() string {
	return fmt.Sprintf("%s (%s)", d.Message, d.Severity)
}

// PathEncodingError is returned when a path is rejected before any native call.
type PathEncodingError struct {
	Op   string // "read" or "write"
	Path string
}

func (e *PathEncodingError) Error() string {
	return fmt.Sprintf("thumbnail.%s: path %q contains a NUL byte and cannot be passed to the image library", e.Op, e.Path)
}

func (e *PathEncodingError) Unwrap() error {
	return ErrPathEncoding
}

// NativeError is returned when the image library reports failure through its
// status result. The Descriptor was fetched while the Handle was still open.
type NativeError struct {
	Op         string // "read", "resize" or "write"
	Frame      int    // frame index for "resize", otherwise -1
	Descriptor ErrorDescriptor
}

// Error returns the library's message verbatim so diagnostics match what the
// library reported.
func (e *NativeError) Error() string {
	if e.Descriptor.Message != "" {
		return e.Descriptor.Message
	}
	if e.Frame >= 0 {
		return fmt.Sprintf("thumbnail.%s: frame %d failed without a description", e.Op, e.Frame)
	}
	return fmt.Sprintf("thumbnail.%s: failed without a description", e.Op)
}

// Severity returns the native severity of the failure.
func (e *NativeError) Severity() magick.ExceptionType {
	return e.Descriptor.Severity
}
