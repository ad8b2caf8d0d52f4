//go:build cgo && magickwand

package magick

/*
#cgo pkg-config: MagickWand
#include <stdlib.h>
#include <wand/MagickWand.h>
*/
import "C"

import (
	"sync"
	"unsafe"
)

// cgoAPI implements API on top of ImageMagick 6's MagickWand library.
//
// Native pointers are kept in registries keyed by opaque tokens so that no
// C pointer is ever handed to callers.
type cgoAPI struct {
	mu      sync.Mutex
	next    uintptr
	wands   map[Wand]*C.MagickWand
	buffers map[Buffer]*C.char
}

// Native returns the MagickWand binding.
func Native() (API, error) {
	return &cgoAPI{
		next:    1,
		wands:   make(map[Wand]*C.MagickWand),
		buffers: make(map[Buffer]*C.char),
	}, nil
}

func (a *cgoAPI) wand(w Wand) *C.MagickWand {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.wands[w]
}

func (a *cgoAPI) token() uintptr {
	t := a.next
	a.next++
	return t
}

func cBool(b C.MagickBooleanType) bool {
	return b != C.MagickFalse
}

func (a *cgoAPI) Genesis() {
	C.MagickWandGenesis()
}

func (a *cgoAPI) Terminus() {
	C.MagickWandTerminus()
}

func (a *cgoAPI) NewWand() Wand {
	mw := C.NewMagickWand()

	a.mu.Lock()
	w := Wand(a.token())
	a.wands[w] = mw
	a.mu.Unlock()
	return w
}

func (a *cgoAPI) DestroyWand(w Wand) {
	a.mu.Lock()
	mw, ok := a.wands[w]
	delete(a.wands, w)
	a.mu.Unlock()

	if ok {
		C.DestroyMagickWand(mw)
	}
}

func (a *cgoAPI) ReadImage(w Wand, path string) bool {
	mw := a.wand(w)
	if mw == nil {
		return false
	}
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))
	return cBool(C.MagickReadImage(mw, cPath))
}

func (a *cgoAPI) ResetIterator(w Wand) {
	if mw := a.wand(w); mw != nil {
		C.MagickResetIterator(mw)
	}
}

func (a *cgoAPI) NextImage(w Wand) bool {
	mw := a.wand(w)
	if mw == nil {
		return false
	}
	return cBool(C.MagickNextImage(mw))
}

func (a *cgoAPI) ResizeImage(w Wand, columns, rows uint, filter FilterType, blur float64) bool {
	mw := a.wand(w)
	if mw == nil {
		return false
	}
	return cBool(C.MagickResizeImage(mw, C.size_t(columns), C.size_t(rows), C.FilterTypes(filter), C.double(blur)))
}

func (a *cgoAPI) WriteImages(w Wand, path string, adjoin bool) bool {
	mw := a.wand(w)
	if mw == nil {
		return false
	}
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))

	cAdjoin := C.MagickBooleanType(C.MagickFalse)
	if adjoin {
		cAdjoin = C.MagickTrue
	}
	return cBool(C.MagickWriteImages(mw, cPath, cAdjoin))
}

func (a *cgoAPI) NumberImages(w Wand) int {
	mw := a.wand(w)
	if mw == nil {
		return 0
	}
	return int(C.MagickGetNumberImages(mw))
}

func (a *cgoAPI) ImageSize(w Wand) (uint, uint) {
	mw := a.wand(w)
	if mw == nil {
		return 0, 0
	}
	return uint(C.MagickGetImageWidth(mw)), uint(C.MagickGetImageHeight(mw))
}

func (a *cgoAPI) GetException(w Wand) (Buffer, ExceptionType) {
	mw := a.wand(w)
	if mw == nil {
		return 0, UndefinedException
	}

	var severity C.ExceptionType
	description := C.MagickGetException(mw, &severity)
	if description == nil {
		return 0, ExceptionType(severity)
	}

	a.mu.Lock()
	b := Buffer(a.token())
	a.buffers[b] = description
	a.mu.Unlock()
	return b, ExceptionType(severity)
}

func (a *cgoAPI) ClearException(w Wand) {
	if mw := a.wand(w); mw != nil {
		C.MagickClearException(mw)
	}
}

func (a *cgoAPI) BufferString(b Buffer) string {
	a.mu.Lock()
	p := a.buffers[b]
	a.mu.Unlock()
	if p == nil {
		return ""
	}
	return C.GoString(p)
}

func (a *cgoAPI) RelinquishMemory(b Buffer) {
	a.mu.Lock()
	p, ok := a.buffers[b]
	delete(a.buffers, b)
	a.mu.Unlock()

	if ok {
		C.MagickRelinquishMemory(unsafe.Pointer(p))
	}
}
