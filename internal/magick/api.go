package magick

import (
	"errors"
	"fmt"
)

// ErrNotBuilt is returned by Native when the binary was compiled without the
// MagickWand binding.
var ErrNotBuilt = errors.New("magick: MagickWand binding not built (rebuild with -tags magickwand)")

// Wand is an opaque reference to one native processing context.
// The zero value never refers to a live context.
type Wand uintptr

// Buffer is an opaque reference to native memory returned by GetException.
// It must be released with RelinquishMemory.
type Buffer uintptr

// FilterType selects the resampling filter used by ResizeImage.
// Values follow MagickCore's FilterTypes enumeration.
type FilterType int

const (
	UndefinedFilter FilterType = iota
	PointFilter
	BoxFilter
	TriangleFilter
	HermiteFilter
	HanningFilter
	HammingFilter
	BlackmanFilter
	GaussianFilter
	QuadraticFilter
	CubicFilter
	CatromFilter
	MitchellFilter
	JincFilter
	SincFilter
	SincFastFilter
	KaiserFilter
	WelshFilter
	ParzenFilter
	BohmanFilter
	BartlettFilter
	LagrangeFilter
	LanczosFilter
)

var filterNames = map[FilterType]string{
	UndefinedFilter: "Undefined",
	PointFilter:     "Point",
	BoxFilter:       "Box",
	TriangleFilter:  "Triangle",
	HermiteFilter:   "Hermite",
	HanningFilter:   "Hanning",
	HammingFilter:   "Hamming",
	BlackmanFilter:  "Blackman",
	GaussianFilter:  "Gaussian",
	QuadraticFilter: "Quadratic",
	CubicFilter:     "Cubic",
	CatromFilter:    "Catrom",
	MitchellFilter:  "Mitchell",
	JincFilter:      "Jinc",
	SincFilter:      "Sinc",
	SincFastFilter:  "SincFast",
	KaiserFilter:    "Kaiser",
	WelshFilter:     "Welsh",
	ParzenFilter:    "Parzen",
	BohmanFilter:    "Bohman",
	BartlettFilter:  "Bartlett",
	LagrangeFilter:  "Lagrange",
	LanczosFilter:   "Lanczos",
}

func (f FilterType) String() string {
	if name, ok := filterNames[f]; ok {
		return name
	}
	return fmt.Sprintf("FilterType(%d)", int(f))
}

// ExceptionType is the severity attached to a native exception.
// Values follow MagickCore's ExceptionType enumeration; anything at or above
// ErrorException is a failure, anything below is a warning.
type ExceptionType int

const (
	UndefinedException      ExceptionType = 0
	WarningException        ExceptionType = 300
	ResourceLimitWarning    ExceptionType = 300
	TypeWarning             ExceptionType = 305
	OptionWarning           ExceptionType = 310
	DelegateWarning         ExceptionType = 315
	MissingDelegateWarning  ExceptionType = 320
	CorruptImageWarning     ExceptionType = 325
	FileOpenWarning         ExceptionType = 330
	BlobWarning             ExceptionType = 335
	ImageWarning            ExceptionType = 345
	ErrorException          ExceptionType = 400
	ResourceLimitError      ExceptionType = 400
	TypeError               ExceptionType = 405
	OptionError             ExceptionType = 410
	DelegateError           ExceptionType = 415
	MissingDelegateError    ExceptionType = 420
	CorruptImageError       ExceptionType = 425
	FileOpenError           ExceptionType = 430
	BlobError               ExceptionType = 435
	ImageError              ExceptionType = 445
	FatalErrorException     ExceptionType = 700
	ResourceLimitFatalError ExceptionType = 700
	CorruptImageFatalError  ExceptionType = 725
	FileOpenFatalError      ExceptionType = 730
)

var exceptionNames = map[ExceptionType]string{
	UndefinedException:      "Undefined",
	ResourceLimitWarning:    "ResourceLimitWarning",
	TypeWarning:             "TypeWarning",
	OptionWarning:           "OptionWarning",
	DelegateWarning:         "DelegateWarning",
	MissingDelegateWarning:  "MissingDelegateWarning",
	CorruptImageWarning:     "CorruptImageWarning",
	FileOpenWarning:         "FileOpenWarning",
	BlobWarning:             "BlobWarning",
	ImageWarning:            "ImageWarning",
	ResourceLimitError:      "ResourceLimitError",
	TypeError:               "TypeError",
	OptionError:             "OptionError",
	DelegateError:           "DelegateError",
	MissingDelegateError:    "MissingDelegateError",
	CorruptImageError:       "CorruptImageError",
	FileOpenError:           "FileOpenError",
	BlobError:               "BlobError",
	ImageError:              "ImageError",
	ResourceLimitFatalError: "ResourceLimitFatalError",
	CorruptImageFatalError:  "CorruptImageFatalError",
	FileOpenFatalError:      "FileOpenFatalError",
}

func (e ExceptionType) String() string {
	if name, ok := exceptionNames[e]; ok {
		return name
	}
	return fmt.Sprintf("ExceptionType(%d)", int(e))
}

// IsError reports whether the severity denotes a failure rather than a warning.
func (e ExceptionType) IsError() bool {
	return e >= ErrorException
}

// API is the subset of the MagickWand C API this program depends on.
//
// Every method blocks until the native call completes. Boolean results are the
// native status convention (true = MagickTrue) and are meant to be translated
// into Go errors by the caller immediately.
//
// An API value is not safe for concurrent use on the same Wand.
type API interface {
	// Genesis initializes the library. It must be called once, before NewWand.
	Genesis()

	// Terminus tears the library down. It must be called once, after the last
	// DestroyWand.
	Terminus()

	// NewWand allocates a processing context. The native call has no failure
	// signal.
	NewWand() Wand

	// DestroyWand releases a context. The Wand must not be used afterwards.
	DestroyWand(w Wand)

	// ReadImage appends every frame of the file at path to the wand's sequence.
	ReadImage(w Wand, path string) bool

	// ResetIterator positions the iterator before the first frame.
	ResetIterator(w Wand)

	// NextImage advances the iterator and reports whether a frame is current.
	NextImage(w Wand) bool

	// ResizeImage resizes the current frame in place. blur scales the filter
	// support: > 1 is blurry, < 1 is sharp.
	ResizeImage(w Wand, columns, rows uint, filter FilterType, blur float64) bool

	// WriteImages writes the whole sequence to path. With adjoin set, frames are
	// merged into one multi-frame file when the format allows it.
	WriteImages(w Wand, path string, adjoin bool) bool

	// NumberImages returns the number of frames in the sequence.
	NumberImages(w Wand) int

	// ImageSize returns the dimensions of the current frame.
	ImageSize(w Wand) (columns, rows uint)

	// GetException returns a copy of the wand's exception description and its
	// severity. The Buffer is owned by the caller.
	GetException(w Wand) (Buffer, ExceptionType)

	// ClearException resets the wand's exception state.
	ClearException(w Wand)

	// BufferString copies the NUL-terminated text held by b.
	BufferString(b Buffer) string

	// RelinquishMemory frees a Buffer returned by GetException.
	RelinquishMemory(b Buffer)
}
