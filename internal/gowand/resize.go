package gowand

import (
	"github.com/disintegration/imaging"

	"github.com/ironsheep/wand-thumbnail/internal/magick"
)

// Filters without a direct counterpart in the imaging package are mapped to
// the closest kernel of similar support.
var resampleFilters = map[magick.FilterType]imaging.ResampleFilter{
	magick.UndefinedFilter: imaging.Lanczos,
	magick.PointFilter:     imaging.NearestNeighbor,
	magick.BoxFilter:       imaging.Box,
	magick.TriangleFilter:  imaging.Linear,
	magick.HermiteFilter:   imaging.Hermite,
	magick.HanningFilter:   imaging.Hann,
	magick.HammingFilter:   imaging.Hamming,
	magick.BlackmanFilter:  imaging.Blackman,
	magick.GaussianFilter:  imaging.Gaussian,
	magick.QuadraticFilter: imaging.BSpline,
	magick.CubicFilter:     imaging.BSpline,
	magick.CatromFilter:    imaging.CatmullRom,
	magick.MitchellFilter:  imaging.MitchellNetravali,
	magick.JincFilter:      imaging.Lanczos,
	magick.SincFilter:      imaging.Lanczos,
	magick.SincFastFilter:  imaging.Lanczos,
	magick.KaiserFilter:    imaging.Lanczos,
	magick.WelshFilter:     imaging.Welch,
	magick.ParzenFilter:    imaging.BSpline,
	magick.BohmanFilter:    imaging.Blackman,
	magick.BartlettFilter:  imaging.Bartlett,
	magick.LagrangeFilter:  imaging.CatmullRom,
	magick.LanczosFilter:   imaging.Lanczos,
}

// scaledFilter stretches a filter's support by blur.
func scaledFilter(f imaging.ResampleFilter, blur float64) imaging.ResampleFilter {
	if blur == 1.0 || f.Kernel == nil {
		return f
	}
	kernel := f.Kernel
	return imaging.ResampleFilter{
		Support: f.Support * blur,
		Kernel: func(x float64) float64 {
			return kernel(x / blur)
		},
	}
}

// ResizeImage resizes the current frame to exactly columns x rows.
//
// A frame already at the requested size is left untouched when blur is 1.0,
// so repeated resizes to the same geometry are stable.
func (l *Library) ResizeImage(w magick.Wand, columns, rows uint, filter magick.FilterType, blur float64) bool {
	wd := l.lookup(w)
	if wd == nil {
		return false
	}

	f := wd.current()
	if f == nil {
		wd.throw(magick.ImageError, "ContainsNoImages `gowand'")
		return false
	}
	if columns == 0 || rows == 0 {
		wd.throw(magick.OptionError, "NegativeOrZeroImageSize `%dx%d'", columns, rows)
		return false
	}
	if blur <= 0 {
		wd.throw(magick.OptionError, "InvalidArgument `blur=%g'", blur)
		return false
	}
	rf, ok := resampleFilters[filter]
	if !ok {
		wd.throw(magick.OptionError, "UnrecognizedImageFilter `%s'", filter)
		return false
	}

	b := f.img.Bounds()
	if uint(b.Dx()) == columns && uint(b.Dy()) == rows && blur == 1.0 {
		return true
	}

	f.img = imaging.Resize(f.img, int(columns), int(rows), scaledFilter(rf, blur))
	return true
}
