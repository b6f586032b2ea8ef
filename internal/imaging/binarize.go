package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/histogram"
	"github.com/anthonynsimon/bild/segment"
)

// BinarizeMethod selects how a grayscale image is split into ink and
// background.
type BinarizeMethod string

const (
	// MethodOtsu applies one global threshold chosen by Otsu's method.
	MethodOtsu BinarizeMethod = "otsu"

	// MethodAdaptive compares each pixel with the mean of its neighbourhood,
	// which copes with uneven lighting in photographed diagrams.
	MethodAdaptive BinarizeMethod = "adaptive"
)

// BinarizeOptions configures Binarize.
type BinarizeOptions struct {
	// Method is MethodOtsu or MethodAdaptive. Empty means MethodOtsu.
	Method BinarizeMethod

	// Radius of the box window used for the local mean (adaptive only).
	Radius int

	// Offset is how far, in gray levels, a pixel must differ from its local
	// mean to count as ink (adaptive only).
	Offset int
}

// OtsuLevel returns the gray level that best separates g into two classes by
// maximising between-class variance. Pixels >= the returned level form the
// bright class. A uniform image yields 0, meaning everything is bright.
func OtsuLevel(g *image.Gray) uint8 {
	bins := histogram.NewRGBAHistogram(g).R.Bins

	total := 0
	sum := 0.0
	for v, n := range bins {
		total += n
		sum += float64(v * n)
	}
	if total == 0 {
		return 0
	}

	var (
		w0, sum0 float64
		best     = -1.0
		level    = 0
	)
	for t := 0; t < 255; t++ {
		w0 += float64(bins[t])
		sum0 += float64(t * bins[t])
		w1 := float64(total) - w0
		if w0 == 0 || w1 == 0 {
			continue
		}
		mu0 := sum0 / w0
		mu1 := (sum - sum0) / w1
		between := w0 * w1 * (mu0 - mu1) * (mu0 - mu1)
		if between > best {
			best = between
			level = t + 1
		}
	}
	return uint8(level)
}

// Binarize splits g into ink and background.
//
// Diagram strokes occupy far fewer pixels than the paper they sit on, so the
// minority class of the global Otsu split is taken as ink. This handles both
// dark-on-light and light-on-dark drawings without a polarity flag. On an
// exact tie the dark class wins.
func Binarize(g *image.Gray, opts BinarizeOptions) (*Mask, error) {
	b := g.Bounds()
	if b.Empty() {
		return NewMask(0, 0), nil
	}

	level := OtsuLevel(g)
	global := segment.Threshold(g, level)
	bright := 0
	for y := 0; y < b.Dy(); y++ {
		for _, v := range global.Pix[y*global.Stride : y*global.Stride+b.Dx()] {
			if v != 0 {
				bright++
			}
		}
	}
	inkIsBright := bright*2 < b.Dx()*b.Dy()

	switch opts.Method {
	case "", MethodOtsu:
		m := MaskFromGray(global)
		if !inkIsBright {
			for i := range m.Pix {
				m.Pix[i] = !m.Pix[i]
			}
		}
		return m, nil
	case MethodAdaptive:
		return adaptive(g, opts, inkIsBright), nil
	default:
		return nil, fmt.Errorf("unknown binarize method %q", opts.Method)
	}
}

// adaptive marks pixels that stand out from their local box mean by more than
// opts.Offset in the ink direction.
func adaptive(g *image.Gray, opts BinarizeOptions, inkIsBright bool) *Mask {
	radius := opts.Radius
	if radius <= 0 {
		radius = 7
	}
	mean := blur.Box(g, float64(radius))

	b := g.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	offset := opts.Offset
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			v := int(g.Pix[y*g.Stride+x])
			mu := int(mean.Pix[y*mean.Stride+x*4])
			if inkIsBright {
				m.Pix[y*m.Width+x] = v > mu+offset
			} else {
				m.Pix[y*m.Width+x] = v < mu-offset
			}
		}
	}
	return m
}
