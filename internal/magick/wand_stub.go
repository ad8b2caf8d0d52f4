//go:build !cgo || !magickwand

package magick

// Native reports that the MagickWand binding is not part of this build.
func Native() (API, error) {
	return nil, ErrNotBuilt
}
