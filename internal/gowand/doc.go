// Package gowand implements the magick.API contract in pure Go.
//
// It is the default backend: it needs no C toolchain and no ImageMagick
// installation, and it follows the native library's conventions closely
// enough that the thumbnail package cannot tell the two apart.
//
// # Formats
//
// Decoding is by content: JPEG, PNG, GIF, BMP, TIFF and WebP. Encoding is by
// output extension: JPEG, PNG, GIF, TIFF and BMP. Animated GIFs are
// composited into full frames on read, and frame delays and the loop count
// are carried through to a GIF output.
//
// # Exceptions
//
// Each wand records the most severe exception raised since the last
// ClearException. GetException copies it into a buffer owned by the caller;
// Outstanding reports buffers that were never relinquished.
package gowand
