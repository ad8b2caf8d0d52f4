// Package thumbnail wraps the image library's lifecycle and turns its status
// results into Go errors.
//
// # Lifecycle
//
// A run moves through three owned resources, each released in reverse order:
//
//	Library (Genesis ... Terminus)
//	  Handle (NewWand ... DestroyWand)
//	    ReadImage -> ResizeImages -> WriteImages
//
// WithLibrary and Library.WithHandle scope those resources to a function, so
// teardown runs on every return path, including panics. Library.Close
// destroys any Handle still open before tearing the library down.
//
// # Errors
//
// Paths are checked before any native call; a NUL byte yields a
// *PathEncodingError. When the library reports failure, the exception is
// copied out of the Handle, its native buffer is released, and the result is
// returned as a *NativeError whose Error method is the library's message.
// Using a closed Handle returns ErrHandleClosed without touching the library.
//
// # Geometry
//
// Every frame is resized to Width x Height (106x80) with a Lanczos filter and
// a support factor of 1.0. These values are not configurable.
package thumbnail
