package gowand

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/ironsheep/wand-thumbnail/internal/magick"
)

// frame is one image of a sequence together with its animation metadata.
type frame struct {
	img   image.Image
	delay int // hundredths of a second, GIF only
}

// exception is the most severe problem recorded on a wand since the last
// ClearException.
type exception struct {
	severity magick.ExceptionType
	message  string
}

// wand is the processing context behind a magick.Wand token.
type wand struct {
	frames    []*frame
	cursor    int // -1 when positioned before the first frame
	loopCount int
	exception exception
}

func (w *wand) current() *frame {
	if w.cursor < 0 || w.cursor >= len(w.frames) {
		return nil
	}
	return w.frames[w.cursor]
}

// throw records an exception, keeping the most severe one seen.
func (w *wand) throw(severity magick.ExceptionType, format string, args ...interface{}) {
	if w.exception.severity != magick.UndefinedException && severity < w.exception.severity {
		return
	}
	w.exception = exception{
		severity: severity,
		message:  fmt.Sprintf(format, args...),
	}
}

// Library is a pure Go implementation of magick.API.
//
// It keeps the same contracts as the native binding: Genesis must precede
// NewWand, exceptions are retrieved as caller-owned buffers, and frames are
// visited through an explicit iterator. Methods are safe to call from
// multiple goroutines, but a single Wand must only be used by one.
type Library struct {
	mu           sync.Mutex
	instantiated bool
	geneses      int
	termini      int
	next         uintptr
	wands        map[magick.Wand]*wand
	buffers      map[magick.Buffer]string
	background   color.Color
	jpegQuality  int
}

// Option configures a Library.
type Option func(*Library)

// WithBackground sets the colour transparent pixels are flattened onto when
// writing formats without an alpha channel.
func WithBackground(c color.Color) Option {
	return func(l *Library) {
		if c != nil {
			l.background = c
		}
	}
}

// WithJPEGQuality sets the JPEG encoder quality (1-100).
func WithJPEGQuality(q int) Option {
	return func(l *Library) {
		if q >= 1 && q <= 100 {
			l.jpegQuality = q
		}
	}
}

// New creates a Library. Genesis must still be called before use.
func New(opts ...Option) *Library {
	l := &Library{
		next:        1,
		wands:       make(map[magick.Wand]*wand),
		buffers:     make(map[magick.Buffer]string),
		background:  color.White,
		jpegQuality: 92,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ magick.API = (*Library)(nil)

func (l *Library) token() uintptr {
	t := l.next
	l.next++
	return t
}

func (l *Library) lookup(w magick.Wand) *wand {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.wands[w]
}

// Genesis initializes the library. Repeated calls are no-ops, as with
// MagickWandGenesis.
func (l *Library) Genesis() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.geneses++
	l.instantiated = true
}

// Terminus tears the library down. Calling it while the library is not
// instantiated panics.
func (l *Library) Terminus() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.instantiated {
		panic("gowand: Terminus called without Genesis")
	}
	l.termini++
	l.instantiated = false
}

// Instantiated reports whether Genesis has run without a matching Terminus.
func (l *Library) Instantiated() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.instantiated
}

// Lifecycle returns how many times Genesis and Terminus have been called.
func (l *Library) Lifecycle() (geneses, termini int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.geneses, l.termini
}

// Live returns the number of wands not yet destroyed.
func (l *Library) Live() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.wands)
}

// Outstanding returns the number of exception buffers not yet relinquished.
func (l *Library) Outstanding() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buffers)
}

// NewWand allocates a context. It panics if Genesis has not been called.
func (l *Library) NewWand() magick.Wand {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.instantiated {
		panic("gowand: NewWand called before Genesis")
	}
	w := magick.Wand(l.token())
	l.wands[w] = &wand{cursor: -1}
	return w
}

// DestroyWand releases a context. Unknown tokens are ignored.
func (l *Library) DestroyWand(w magick.Wand) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.wands, w)
}

// ResetIterator positions the iterator before the first frame.
func (l *Library) ResetIterator(w magick.Wand) {
	if wd := l.lookup(w); wd != nil {
		wd.cursor = -1
	}
}

// NextImage advances to the next frame. At the end of the sequence it returns
// false and leaves the iterator on the last frame.
func (l *Library) NextImage(w magick.Wand) bool {
	wd := l.lookup(w)
	if wd == nil {
		return false
	}
	if wd.cursor+1 >= len(wd.frames) {
		return false
	}
	wd.cursor++
	return true
}

// NumberImages returns the number of frames held by the wand.
func (l *Library) NumberImages(w magick.Wand) int {
	wd := l.lookup(w)
	if wd == nil {
		return 0
	}
	return len(wd.frames)
}

// ImageSize returns the dimensions of the current frame.
func (l *Library) ImageSize(w magick.Wand) (uint, uint) {
	wd := l.lookup(w)
	if wd == nil {
		return 0, 0
	}
	f := wd.current()
	if f == nil {
		return 0, 0
	}
	b := f.img.Bounds()
	return uint(b.Dx()), uint(b.Dy())
}

// GetException returns the wand's exception text as a new buffer. A buffer is
// allocated even when no exception is recorded; it must always be
// relinquished.
func (l *Library) GetException(w magick.Wand) (magick.Buffer, magick.ExceptionType) {
	l.mu.Lock()
	defer l.mu.Unlock()

	wd := l.wands[w]
	if wd == nil {
		return 0, magick.UndefinedException
	}
	b := magick.Buffer(l.token())
	l.buffers[b] = wd.exception.message
	return b, wd.exception.severity
}

// ClearException resets the wand's exception to UndefinedException.
func (l *Library) ClearException(w magick.Wand) {
	if wd := l.lookup(w); wd != nil {
		wd.exception = exception{}
	}
}

// BufferString returns the text held by b, or "" for an unknown buffer.
func (l *Library) BufferString(b magick.Buffer) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buffers[b]
}

// RelinquishMemory frees b.
func (l *Library) RelinquishMemory(b magick.Buffer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buffers, b)
}
