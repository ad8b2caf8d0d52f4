package thumbnail

import (
	"github.com/ironsheep/wand-thumbnail/internal/magick"
)

// Stage is a step of a thumbnail run, in the order the steps happen.
type Stage int

const (
	Uninitialized Stage = iota
	LibraryReady
	HandleCreated
	Read
	Resized
	Written
	HandleDestroyed
	LibraryShutdown
)

var stageNames = [...]string{
	Uninitialized:   "uninitialized",
	LibraryReady:    "library-ready",
	HandleCreated:   "handle-created",
	Read:            "read",
	Resized:         "resized",
	Written:         "written",
	HandleDestroyed: "handle-destroyed",
	LibraryShutdown: "library-shutdown",
}

func (s Stage) String() string {
	if s >= 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "unknown"
}

// Thumbnail reads input, resizes every frame and writes the result to output,
// stopping at the first failing step.
func (h *Handle) Thumbnail(input, output string) error {
	if err := h.ReadImage(input); err != nil {
		return err
	}
	logger.Debugf("stage %s", Read)

	if err := h.ResizeImages(); err != nil {
		return err
	}
	logger.Debugf("stage %s", Resized)

	if err := h.WriteImages(output); err != nil {
		return err
	}
	logger.Debugf("stage %s", Written)
	return nil
}

// Run performs a complete thumbnail run against api: library initialization,
// one Handle, read, resize, write, then Handle destruction and library
// teardown. Teardown happens whether or not a step fails, and the returned
// error is the first failure.
//
// Parameters:
//   - api: The image library binding.
//   - input: The file to read.
//   - output: The file to write the 106x80 frames to.
//
// Returns:
//   - error: nil on success, otherwise the *PathEncodingError or *NativeError
//     of the failing step.
func Run(api magick.API, input, output string) error {
	err := WithLibrary(api, func(lib *Library) error {
		logger.Debugf("stage %s", LibraryReady)

		err := lib.WithHandle(func(h *Handle) error {
			logger.Debugf("stage %s", HandleCreated)
			return h.Thumbnail(input, output)
		})
		logger.Debugf("stage %s", HandleDestroyed)
		return err
	})
	logger.Debugf("stage %s", LibraryShutdown)
	return err
}
