package thumbnail

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/wand-thumbnail/internal/logging"
	"github.com/ironsheep/wand-thumbnail/internal/magick"
)

func TestRun_Success(t *testing.T) {
	api := newFakeAPI(3)

	err := Run(api, "in.gif", "out.gif")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Genesis",
		"NewWand",
		"ReadImage",
		"GetException", "RelinquishMemory",
		"ResetIterator",
		"ResizeImage", "GetException", "RelinquishMemory",
		"ResizeImage", "GetException", "RelinquishMemory",
		"ResizeImage", "GetException", "RelinquishMemory",
		"WriteImages",
		"GetException", "RelinquishMemory",
		"DestroyWand",
		"Terminus",
	}, api.calls)
	assert.Equal(t, []int{0, 1, 2}, api.resized)
	assert.Empty(t, api.buffers)
}

func TestRun_DebugDetailOnlyWhenEnabled(t *testing.T) {
	defer logging.Init(os.Stderr, "")

	logging.Init(io.Discard, "info")
	quiet := newFakeAPI(3)
	require.NoError(t, Run(quiet, "in.gif", "out.gif"))
	assert.Zero(t, quiet.count("NumberImages"))
	assert.Zero(t, quiet.count("ImageSize"))

	logging.Init(io.Discard, "debug")
	verbose := newFakeAPI(3)
	require.NoError(t, Run(verbose, "in.gif", "out.gif"))
	assert.Equal(t, 2, verbose.count("NumberImages"), "one frame count after read and after write")
	assert.Equal(t, 3, verbose.count("ImageSize"), "one size per resized frame")
}

func TestRun_TeardownOnEveryPath(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(*fakeAPI)
		input  string
		output string
		wantOp string
	}{
		{"success", func(*fakeAPI) {}, "in.jpg", "out.jpg", ""},
		{"read fails", func(f *fakeAPI) { f.readOK = false }, "missing.jpg", "out.jpg", "read"},
		{"resize fails", func(f *fakeAPI) { f.failResize = 1 }, "in.gif", "out.gif", "resize"},
		{"write fails", func(f *fakeAPI) { f.writeOK = false }, "in.jpg", "out.xyz", "write"},
		{"bad input path", func(*fakeAPI) {}, "in\x00.jpg", "out.jpg", "read"},
		{"bad output path", func(*fakeAPI) {}, "in.jpg", "out\x00.jpg", "write"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI(2)
			api.message = "boom"
			api.severity = magick.ImageError
			tt.setup(api)

			err := Run(api, tt.input, tt.output)
			if tt.wantOp == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}

			assert.Equal(t, 1, api.count("Genesis"))
			assert.Equal(t, 1, api.count("Terminus"))
			assert.Equal(t, 1, api.count("DestroyWand"))
			assert.Less(t, api.index("DestroyWand"), api.index("Terminus"))
			assert.Equal(t, "Terminus", api.calls[len(api.calls)-1])
			assert.Empty(t, api.live)
			assert.Empty(t, api.buffers, "exception buffers must be relinquished")
		})
	}
}

func TestRun_PanicStillTearsDown(t *testing.T) {
	api := newFakeAPI(1)

	assert.Panics(t, func() {
		_ = WithLibrary(api, func(lib *Library) error {
			return lib.WithHandle(func(h *Handle) error {
				panic("unwinding")
			})
		})
	})

	assert.Equal(t, 1, api.count("DestroyWand"))
	assert.Equal(t, 1, api.count("Terminus"))
	assert.Less(t, api.index("DestroyWand"), api.index("Terminus"))
}

func TestReadImage_NulByteNeverReachesLibrary(t *testing.T) {
	paths := []string{"\x00", "a\x00b.png", "image.png\x00"}

	for _, p := range paths {
		api := newFakeAPI(1)
		lib := Start(api)
		h := lib.NewHandle()

		err := h.ReadImage(p)
		var pathErr *PathEncodingError
		require.ErrorAs(t, err, &pathErr)
		assert.Equal(t, "read", pathErr.Op)
		assert.ErrorIs(t, err, ErrPathEncoding)

		err = h.WriteImages(p)
		require.ErrorAs(t, err, &pathErr)
		assert.Equal(t, "write", pathErr.Op)

		lib.Close()
		assert.Zero(t, api.count("ReadImage"))
		assert.Zero(t, api.count("WriteImages"))
	}
}

func TestReadImage_NativeFailureCarriesMessage(t *testing.T) {
	api := newFakeAPI(1)
	api.readOK = false
	api.message = "unable to open image `missing.jpg': No such file or directory"
	api.severity = magick.FileOpenError

	err := WithLibrary(api, func(lib *Library) error {
		return lib.WithHandle(func(h *Handle) error {
			return h.ReadImage("missing.jpg")
		})
	})

	var nativeErr *NativeError
	require.ErrorAs(t, err, &nativeErr)
	assert.Equal(t, "read", nativeErr.Op)
	assert.Equal(t, -1, nativeErr.Frame)
	assert.Equal(t, magick.FileOpenError, nativeErr.Severity())
	assert.Equal(t, api.message, err.Error())

	// The descriptor was fetched before the wand was destroyed.
	assert.Less(t, api.index("GetException"), api.index("DestroyWand"))
}

func TestResizeImages_FailureNamesFrame(t *testing.T) {
	api := newFakeAPI(4)
	api.failResize = 2
	api.message = "resize exploded"
	api.severity = magick.ResourceLimitError

	lib := Start(api)
	defer lib.Close()
	h := lib.NewHandle()

	require.NoError(t, h.ReadImage("in.gif"))
	err := h.ResizeImages()

	var nativeErr *NativeError
	require.ErrorAs(t, err, &nativeErr)
	assert.Equal(t, "resize", nativeErr.Op)
	assert.Equal(t, 2, nativeErr.Frame)
	assert.Equal(t, "resize exploded", nativeErr.Error())
	assert.Equal(t, []int{0, 1}, api.resized)
}

func TestResizeImages_WarningIsNotFatal(t *testing.T) {
	api := newFakeAPI(3)
	api.warnResize = 0

	lib := Start(api)
	defer lib.Close()
	h := lib.NewHandle()

	require.NoError(t, h.ReadImage("in.gif"))
	require.NoError(t, h.ResizeImages())
	assert.Equal(t, []int{0, 1, 2}, api.resized)
	assert.Empty(t, api.excMessage)
}

func TestResizeImages_EmptySequence(t *testing.T) {
	api := newFakeAPI(0)

	lib := Start(api)
	defer lib.Close()
	h := lib.NewHandle()

	require.NoError(t, h.ResizeImages())
	assert.Zero(t, api.count("ResizeImage"))
}

func TestHandle_ClosedHandleNeverReachesLibrary(t *testing.T) {
	api := newFakeAPI(1)
	lib := Start(api)
	defer lib.Close()

	var leaked *Handle
	require.NoError(t, lib.WithHandle(func(h *Handle) error {
		leaked = h
		return nil
	}))

	require.True(t, leaked.Closed())
	before := len(api.calls)

	_, err := leaked.LastError()
	assert.ErrorIs(t, err, ErrHandleClosed)
	assert.ErrorIs(t, leaked.ReadImage("in.jpg"), ErrHandleClosed)
	assert.ErrorIs(t, leaked.ResizeImages(), ErrHandleClosed)
	assert.ErrorIs(t, leaked.WriteImages("out.jpg"), ErrHandleClosed)
	assert.Zero(t, leaked.Frames())

	leaked.Close()
	assert.Equal(t, before, len(api.calls), "closed handle must not call the library")
}

func TestHandle_LastErrorReleasesBuffer(t *testing.T) {
	api := newFakeAPI(1)
	api.excMessage = "something went wrong"
	api.excSeverity = magick.CorruptImageWarning

	lib := Start(api)
	defer lib.Close()
	h := lib.NewHandle()
	defer h.Close()

	desc, err := h.LastError()
	require.NoError(t, err)
	assert.Equal(t, ErrorDescriptor{Message: "something went wrong", Severity: magick.CorruptImageWarning}, desc)
	assert.Empty(t, api.buffers)

	// Retrieval does not clear the native exception.
	again, err := h.LastError()
	require.NoError(t, err)
	assert.Equal(t, desc, again)
}

func TestLibrary_CloseDestroysOpenHandles(t *testing.T) {
	api := newFakeAPI(1)
	lib := Start(api)
	h1 := lib.NewHandle()
	h2 := lib.NewHandle()

	lib.Close()
	lib.Close()

	assert.True(t, h1.Closed())
	assert.True(t, h2.Closed())
	assert.Equal(t, 2, api.count("DestroyWand"))
	assert.Equal(t, 1, api.count("Terminus"))
	assert.Equal(t, "Terminus", api.calls[len(api.calls)-1])

	assert.PanicsWithValue(t, ErrLibraryClosed, func() { lib.NewHandle() })
}

func TestNativeError_EmptyDescriptor(t *testing.T) {
	err := &NativeError{Op: "write", Frame: -1}
	assert.Equal(t, "thumbnail.write: failed without a description", err.Error())

	err = &NativeError{Op: "resize", Frame: 3}
	assert.Equal(t, "thumbnail.resize: frame 3 failed without a description", err.Error())
	assert.False(t, errors.Is(err, ErrPathEncoding))
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "library-ready", LibraryReady.String())
	assert.Equal(t, "library-shutdown", LibraryShutdown.String())
	assert.Equal(t, "unknown", Stage(42).String())
}
