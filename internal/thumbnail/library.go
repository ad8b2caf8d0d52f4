package thumbnail

import (
	"sync"

	"github.com/ironsheep/wand-thumbnail/internal/magick"
)

// Library is the process-wide initialization of the image library.
//
// Exactly one Library should exist per process. Start initializes the native
// library and Close tears it down after destroying any Handle still open, so
// teardown always follows the last Handle destruction.
type Library struct {
	api     magick.API
	handles map[*Handle]struct{}
	closed  bool
	once    sync.Once
}

// Start initializes the image library and returns the value that owns that
// initialization. The caller must Close it, typically with defer.
//
// Parameters:
//   - api: The image library binding, either magick.Native or a gowand.Library.
//
// Returns:
//   - *Library: The owner of the initialization. Handles are created from it
//     with NewHandle or WithHandle.
//
// Start must be called at most once per process, and Close must follow
// exactly once. WithLibrary pairs the two on every exit path.
func Start(api magick.API) *Library {
	api.Genesis()
	return &Library{
		api:     api,
		handles: make(map[*Handle]struct{}),
	}
}

// WithLibrary runs fn between library initialization and teardown. Teardown
// happens on every exit from fn, including a panic.
//
// Parameters:
//   - api: The image library binding.
//   - fn: The work to run while the library is initialized. Any Handle it
//     leaves open is destroyed before teardown.
//
// Returns:
//   - error: Whatever fn returns, unchanged.
func WithLibrary(api magick.API, fn func(*Library) error) error {
	lib := Start(api)
	defer lib.Close()
	return fn(lib)
}

// Close destroys any open Handle and then tears the library down. Only the
// first call has an effect.
func (l *Library) Close() {
	l.once.Do(func() {
		for h := range l.handles {
			h.Close()
		}
		l.closed = true
		l.api.Terminus()
	})
}

// NewHandle allocates a processing context. Allocation has no failure mode;
// calling NewHandle on a closed Library panics with ErrLibraryClosed.
func (l *Library) NewHandle() *Handle {
	if l.closed {
		panic(ErrLibraryClosed)
	}
	h := &Handle{lib: l, wand: l.api.NewWand()}
	l.handles[h] = struct{}{}
	return h
}

// WithHandle runs fn with a new Handle that is closed when fn returns.
func (l *Library) WithHandle(fn func(*Handle) error) error {
	h := l.NewHandle()
	defer h.Close()
	return fn(h)
}

func (l *Library) release(h *Handle) {
	delete(l.handles, h)
}
