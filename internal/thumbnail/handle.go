package thumbnail

import (
	"github.com/ironsheep/wand-thumbnail/internal/magick"
)

// Handle exclusively owns one native processing context.
//
// The context is destroyed by Close; afterwards every method reports
// ErrHandleClosed without reaching the library. A Handle must not be used
// from more than one goroutine.
type Handle struct {
	lib  *Library
	wand magick.Wand
}

// Close destroys the context. Only the first call has an effect.
func (h *Handle) Close() {
	if h.wand == 0 {
		return
	}
	h.lib.api.DestroyWand(h.wand)
	h.wand = 0
	h.lib.release(h)
}

// Closed reports whether Close has been called.
func (h *Handle) Closed() bool {
	return h.wand == 0
}

// LastError copies the context's current exception and releases the native
// buffer that held it.
func (h *Handle) LastError() (ErrorDescriptor, error) {
	if h.Closed() {
		return ErrorDescriptor{}, ErrHandleClosed
	}
	return h.lastError(), nil
}

func (h *Handle) lastError() ErrorDescriptor {
	api := h.lib.api
	buf, severity := api.GetException(h.wand)
	if buf == 0 {
		return ErrorDescriptor{Severity: severity}
	}
	defer api.RelinquishMemory(buf)
	return ErrorDescriptor{
		Message:  api.BufferString(buf),
		Severity: severity,
	}
}

// nativeError builds a NativeError from the context's current exception.
func (h *Handle) nativeError(op string, frame int) *NativeError {
	return &NativeError{
		Op:         op,
		Frame:      frame,
		Descriptor: h.lastError(),
	}
}
