// Package magick describes the native image library this program drives.
//
// The API interface is a one-to-one rendition of the MagickWand calls the
// thumbnailer needs: library genesis and terminus, wand allocation, reading,
// iterating and resizing frames, writing, and exception retrieval. Native
// pointers are represented by the opaque Wand and Buffer tokens and never
// leave an implementation.
//
// # Implementations
//
// Two implementations exist:
//   - Native, backed by ImageMagick 6 through cgo. It is compiled only with
//     the magickwand build tag and requires the MagickWand development
//     package (pkg-config name "MagickWand").
//   - gowand.New, a pure Go implementation with the same semantics, used by
//     default and in tests.
//
// Build the native binding with:
//
//	go build -tags magickwand ./cmd/wand-thumbnail
//
// # Threading
//
// MagickWand contexts are not thread-safe. Callers must not use a Wand from
// more than one goroutine at a time.
package magick
