package gowand

import (
	"bytes"
	"errors"
	"image"
	"image/draw"
	"image/gif"
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/clone"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/wand-thumbnail/internal/magick"
)

// ReadImage decodes the file at path and appends its frames to the wand.
//
// Animated GIFs are expanded into full frames: each frame is drawn over the
// accumulated canvas according to its disposal method, so every stored frame
// has the logical screen size and can be resized independently.
//
// On success the iterator is left on the last frame read.
//
// Parameters:
//   - w: A wand returned by NewWand.
//   - path: File to decode. The format is detected from the content; JPEG,
//     PNG, GIF, BMP, TIFF and WebP are registered.
//
// Returns:
//   - bool: true when every frame was appended, false when the read failed and
//     an exception was recorded on the wand.
//
// # Errors
//
//   - FileOpenError if the file cannot be read
//   - MissingDelegateError if no decoder recognises the content
//   - CorruptImageError if a recognised file fails to decode
func (l *Library) ReadImage(w magick.Wand, path string) bool {
	wd := l.lookup(w)
	if wd == nil {
		return false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		wd.throw(magick.FileOpenError, "unable to open image `%s': %s", path, describeOSError(err))
		return false
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			wd.throw(magick.MissingDelegateError, "no decode delegate for this image format `%s'", formatTag(path))
		} else {
			wd.throw(magick.CorruptImageError, "improper image header `%s'", path)
		}
		return false
	}

	var frames []*frame
	loopCount := wd.loopCount
	if format == "gif" {
		g, err := gif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			wd.throw(magick.CorruptImageError, "corrupt image `%s': %s", path, err)
			return false
		}
		frames = compositeGIF(g)
		loopCount = g.LoopCount
	} else {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			wd.throw(magick.CorruptImageError, "corrupt image `%s': %s", path, err)
			return false
		}
		frames = []*frame{{img: img}}
	}

	if len(frames) == 0 {
		wd.throw(magick.CorruptImageError, "image contains no frames `%s'", path)
		return false
	}

	wd.frames = append(wd.frames, frames...)
	wd.loopCount = loopCount
	wd.cursor = len(wd.frames) - 1
	return true
}

// compositeGIF renders every GIF frame onto the logical screen, honouring the
// disposal method of the previous frame.
func compositeGIF(g *gif.GIF) []*frame {
	screen := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if screen.Empty() {
		for _, p := range g.Image {
			screen = screen.Union(p.Bounds())
		}
	}

	canvas := image.NewRGBA(screen)
	frames := make([]*frame, 0, len(g.Image))

	for i, p := range g.Image {
		var previous *image.RGBA
		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			previous = clone.AsRGBA(canvas)
		}

		draw.Draw(canvas, p.Bounds(), p, p.Bounds().Min, draw.Over)

		delay := 0
		if i < len(g.Delay) {
			delay = g.Delay[i]
		}
		frames = append(frames, &frame{img: clone.AsRGBA(canvas), delay: delay})

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, p.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}

	return frames
}

// describeOSError mirrors strerror-style wording for file errors.
func describeOSError(err error) string {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "No such file or directory"
	case errors.Is(err, fs.ErrPermission):
		return "Permission denied"
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	return err.Error()
}

// formatTag returns the upper-case extension used in delegate messages.
func formatTag(path string) string {
	return strings.ToUpper(strings.TrimPrefix(filepath.Ext(path), "."))
}
