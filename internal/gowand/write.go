package gowand

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybons/gogif"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/wand-thumbnail/internal/magick"
)

// WriteImages encodes the sequence to path, choosing the format from the file
// extension.
//
// With adjoin set, a GIF output holds every frame in one file. Formats that
// cannot hold more than one frame, or any format when adjoin is false, get one
// file per frame named "<base>-<index><ext>", matching ImageMagick's scene
// numbering. A single-frame sequence is always written to path itself.
//
// Parameters:
//   - w: A wand returned by NewWand.
//   - path: Destination file. Its extension selects the encoder.
//   - adjoin: Whether a multi-frame format should receive every frame in one
//     file.
//
// Returns:
//   - bool: true when every file was written, false when an exception was
//     recorded on the wand.
//
// GIF frames are re-paletted per frame and keep their delays and the loop
// count. JPEG output is flattened onto the background set with
// WithBackground.
//
// # Errors
//
//   - ImageError if the wand holds no frames, or an encoder fails
//   - MissingDelegateError if the extension has no encoder
//   - FileOpenError if an output file cannot be created
//   - BlobError if an output file cannot be closed
func (l *Library) WriteImages(w magick.Wand, path string, adjoin bool) bool {
	wd := l.lookup(w)
	if wd == nil {
		return false
	}
	if len(wd.frames) == 0 {
		wd.throw(magick.ImageError, "ContainsNoImages `%s'", path)
		return false
	}

	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		wd.throw(magick.MissingDelegateError, "no encode delegate for this image format `%s'", formatTag(path))
		return false
	}

	if format == imaging.GIF && (adjoin || len(wd.frames) == 1) {
		return l.writeGIF(wd, path, wd.frames)
	}

	if len(wd.frames) == 1 {
		return l.writeFrame(wd, path, format, wd.frames[0])
	}

	for i, f := range wd.frames {
		scenePath := sceneFilename(path, i)
		var ok bool
		if format == imaging.GIF {
			ok = l.writeGIF(wd, scenePath, []*frame{f})
		} else {
			ok = l.writeFrame(wd, scenePath, format, f)
		}
		if !ok {
			return false
		}
	}
	return true
}

func (l *Library) writeFrame(wd *wand, path string, format imaging.Format, f *frame) bool {
	img := f.img
	if format == imaging.JPEG {
		img = l.flatten(img)
	}

	out, err := os.Create(path)
	if err != nil {
		wd.throw(magick.FileOpenError, "unable to open image `%s': %s", path, describeOSError(err))
		return false
	}

	if err := imaging.Encode(out, img, format, imaging.JPEGQuality(l.jpegQuality)); err != nil {
		out.Close()
		wd.throw(magick.ImageError, "unable to write image `%s': %s", path, err)
		return false
	}
	if err := out.Close(); err != nil {
		wd.throw(magick.BlobError, "unable to write blob `%s': %s", path, err)
		return false
	}
	return true
}

func (l *Library) writeGIF(wd *wand, path string, frames []*frame) bool {
	g := &gif.GIF{LoopCount: wd.loopCount}
	for _, f := range frames {
		p := toPaletted(f.img)
		disposal := byte(gif.DisposalNone)
		if transparentIndex(p.Palette) >= 0 {
			// Frames are full canvases; clear before the next one so
			// transparent areas do not show the previous frame.
			disposal = gif.DisposalBackground
		}
		g.Image = append(g.Image, p)
		g.Delay = append(g.Delay, f.delay)
		g.Disposal = append(g.Disposal, disposal)
	}

	out, err := os.Create(path)
	if err != nil {
		wd.throw(magick.FileOpenError, "unable to open image `%s': %s", path, describeOSError(err))
		return false
	}

	if err := gif.EncodeAll(out, g); err != nil {
		out.Close()
		wd.throw(magick.ImageError, "unable to write image `%s': %s", path, err)
		return false
	}
	if err := out.Close(); err != nil {
		wd.throw(magick.BlobError, "unable to write blob `%s': %s", path, err)
		return false
	}
	return true
}

// flatten composites img over the library background colour.
func (l *Library) flatten(img image.Image) image.Image {
	b := img.Bounds()
	dst := imaging.New(b.Dx(), b.Dy(), l.background)
	return imaging.Overlay(dst, img, image.Pt(0, 0), 1.0)
}

// maxColors is the largest palette a GIF frame can carry.
const maxColors = 256

// toPaletted converts img to a paletted image for GIF output.
//
// A frame with at most 256 distinct colours keeps them exactly. Larger frames
// get an adaptive median cut palette. Pixels below half opacity are written
// with a reserved transparent index, so the palette then holds at most 255
// visible colours. Images that are already paletted are returned as is.
func toPaletted(img image.Image) *image.Paletted {
	if p, ok := img.(*image.Paletted); ok {
		return p
	}
	b := img.Bounds()
	transparent := hasTransparency(img)
	limit := maxColors
	if transparent {
		limit--
	}

	p := image.NewPaletted(b, nil)
	if pal, ok := exactPalette(img, limit); ok {
		index := make(map[color.RGBA]uint8, len(pal))
		for i, c := range pal {
			index[c.(color.RGBA)] = uint8(i)
		}
		p.Palette = pal
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if c, ok := opaque(img.At(x, y)); ok {
					p.SetColorIndex(x, y, index[c])
				}
			}
		}
	} else {
		q := &gogif.MedianCutQuantizer{NumColor: limit}
		q.Quantize(p, b, img, b.Min)
	}

	if transparent {
		clearIndex := uint8(len(p.Palette))
		p.Palette = append(p.Palette, color.Transparent)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if _, ok := opaque(img.At(x, y)); !ok {
					p.SetColorIndex(x, y, clearIndex)
				}
			}
		}
	}
	return p
}

// opaque returns c as an opaque colour, or false when c is below half opacity.
func opaque(c color.Color) (color.RGBA, bool) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A < 0x80 {
		return color.RGBA{}, false
	}
	return color.RGBA{R: n.R, G: n.G, B: n.B, A: 0xff}, true
}

func hasTransparency(img image.Image) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, ok := opaque(img.At(x, y)); !ok {
				return true
			}
		}
	}
	return false
}

// exactPalette collects the visible colours of img in first-seen order. It
// reports false when there are more than limit of them.
func exactPalette(img image.Image, limit int) (color.Palette, bool) {
	b := img.Bounds()
	seen := make(map[color.RGBA]bool)
	var pal color.Palette
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c, ok := opaque(img.At(x, y))
			if !ok || seen[c] {
				continue
			}
			if len(pal) == limit {
				return nil, false
			}
			seen[c] = true
			pal = append(pal, c)
		}
	}
	if len(pal) == 0 {
		pal = append(pal, color.RGBA{A: 0xff})
	}
	return pal, true
}

// transparentIndex returns the index of the first fully transparent palette
// entry, or -1.
func transparentIndex(pal color.Palette) int {
	for i, c := range pal {
		if _, _, _, a := c.RGBA(); a == 0 {
			return i
		}
	}
	return -1
}

// sceneFilename inserts the scene index before the extension.
func sceneFilename(path string, index int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), index, ext)
}
