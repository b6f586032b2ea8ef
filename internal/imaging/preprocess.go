package imaging

import (
	"image"
	"image/draw"

	"github.com/disintegration/imaging"

	"github.com/Rudra-050/graph-vision-mcp/internal/geometry"
)

// PreprocessOptions controls the normalisation applied before detection.
type PreprocessOptions struct {
	// MaxDimension downsizes images whose width or height exceeds it,
	// preserving aspect ratio. Zero keeps the original size.
	MaxDimension int

	// BlurSigma is the Gaussian sigma applied after grayscale conversion.
	// Zero disables blurring.
	BlurSigma float64
}

// Prepared is a grayscale, optionally downscaled and blurred copy of a source
// image, plus what is needed to map detections back onto the source.
type Prepared struct {
	Gray *image.Gray

	// Scale is prepared pixels per source pixel; 1 when no resize happened.
	Scale float64
}

// Preprocess converts img to a blurred grayscale working image.
//
// The result always has its origin at (0,0). Use Prepared.ToSource to convert
// coordinates found on it back into the source image's pixel space.
func Preprocess(img image.Image, opts PreprocessOptions) *Prepared {
	src := img
	b := img.Bounds()
	scale := 1.0
	if limit := opts.MaxDimension; limit > 0 && (b.Dx() > limit || b.Dy() > limit) {
		src = imaging.Fit(img, limit, limit, imaging.Lanczos)
		scale = float64(src.Bounds().Dx()) / float64(b.Dx())
	}

	gray := imaging.Grayscale(src)
	if opts.BlurSigma > 0 {
		gray = imaging.Blur(gray, opts.BlurSigma)
	}

	return &Prepared{Gray: toGray(gray), Scale: scale}
}

// ToSource maps a point on the prepared image to source coordinates.
func (p *Prepared) ToSource(pt geometry.Point, origin image.Point) geometry.Point {
	if p.Scale != 1 && p.Scale > 0 {
		pt = pt.Scale(1 / p.Scale)
	}
	return pt.Add(geometry.Pt(origin.X, origin.Y))
}

// toGray copies img into a fresh *image.Gray anchored at (0,0).
func toGray(img image.Image) *image.Gray {
	b := img.Bounds()
	g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(g, g.Bounds(), img, b.Min, draw.Src)
	return g
}

// GrayOf returns img as an *image.Gray anchored at (0,0), converting only
// when needed.
func GrayOf(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Bounds().Min == (image.Point{}) {
		return g
	}
	return toGray(img)
}
