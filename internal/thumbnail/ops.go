package thumbnail

import (
	"strings"

	"github.com/ironsheep/wand-thumbnail/internal/logging"
	"github.com/ironsheep/wand-thumbnail/internal/magick"
)

// Thumbnail geometry and resampling. These are fixed for every run.
const (
	Width         uint    = 106
	Height        uint    = 80
	Filter                = magick.LanczosFilter
	FilterSupport float64 = 1.0
)

var logger = logging.Get("thumbnail")

// nativePath rejects paths the library cannot receive as a C string.
func nativePath(op, path string) (string, error) {
	if strings.IndexByte(path, 0) >= 0 {
		return "", &PathEncodingError{Op: op, Path: path}
	}
	return path, nil
}

// ReadImage loads every frame of the file at path into the Handle.
//
// Parameters:
//   - path: The input file. Frames are appended in file order.
//
// Returns:
//   - error: nil on success.
//
// # Errors
//
//   - *PathEncodingError (matching ErrPathEncoding) if path contains a NUL
//     byte. The library is not called.
//   - *NativeError with Op "read" and Frame -1 if the library reports
//     failure. Its message is the library's own text.
//   - ErrHandleClosed if the Handle has been closed
func (h *Handle) ReadImage(path string) error {
	if h.Closed() {
		return ErrHandleClosed
	}
	p, err := nativePath("read", path)
	if err != nil {
		return err
	}

	if !h.lib.api.ReadImage(h.wand, p) {
		return h.nativeError("read", -1)
	}
	h.drainWarning("read")
	if logging.DebugEnabled() {
		logger.Debugf("read %s: %d frame(s)", path, h.Frames())
	}
	return nil
}

// ResizeImages resizes every frame in load order to Width x Height using
// Filter with FilterSupport.
//
// The exception state is checked after each frame: a failed status or an
// error-severity exception stops the loop with a *NativeError naming the
// frame. Warnings are logged and cleared.
//
// # Errors
//
//   - *NativeError with Op "resize" and the failing frame index
//   - ErrHandleClosed if the Handle has been closed
func (h *Handle) ResizeImages() error {
	if h.Closed() {
		return ErrHandleClosed
	}
	api := h.lib.api

	api.ClearException(h.wand)
	api.ResetIterator(h.wand)
	for frame := 0; api.NextImage(h.wand); frame++ {
		ok := api.ResizeImage(h.wand, Width, Height, Filter, FilterSupport)
		if !ok {
			return h.nativeError("resize", frame)
		}
		desc := h.lastError()
		if desc.Severity.IsError() {
			return &NativeError{Op: "resize", Frame: frame, Descriptor: desc}
		}
		if desc.Severity != magick.UndefinedException {
			logger.Printf("resize frame %d: %s", frame, desc)
			api.ClearException(h.wand)
		}
		if logging.DebugEnabled() {
			cols, rows := api.ImageSize(h.wand)
			logger.Debugf("resize frame %d: %dx%d", frame, cols, rows)
		}
	}
	return nil
}

// WriteImages writes all frames to path as a single adjoined file where the
// output format supports it.
//
// Parameters:
//   - path: The output file. The library picks the format from it.
//
// Returns:
//   - error: nil on success.
//
// # Errors
//
//   - *PathEncodingError if path contains a NUL byte
//   - *NativeError with Op "write" if the library reports failure
//   - ErrHandleClosed if the Handle has been closed
func (h *Handle) WriteImages(path string) error {
	if h.Closed() {
		return ErrHandleClosed
	}
	p, err := nativePath("write", path)
	if err != nil {
		return err
	}

	if !h.lib.api.WriteImages(h.wand, p, true) {
		return h.nativeError("write", -1)
	}
	h.drainWarning("write")
	if logging.DebugEnabled() {
		logger.Debugf("wrote %s: %d frame(s)", path, h.Frames())
	}
	return nil
}

// Frames returns the number of frames currently held.
func (h *Handle) Frames() int {
	if h.Closed() {
		return 0
	}
	return h.lib.api.NumberImages(h.wand)
}

// drainWarning logs and clears a warning left behind by a successful call.
func (h *Handle) drainWarning(op string) {
	desc := h.lastError()
	if desc.Severity == magick.UndefinedException {
		return
	}
	logger.Printf("%s: %s", op, desc)
	h.lib.api.ClearException(h.wand)
}
