package imaging

import (
	"image"
	"math"
)

// plane is a row-major float image used by the edge detector.
type plane struct {
	w, h int
	v    []float64
}

func newPlane(w, h int) *plane {
	return &plane{w: w, h: h, v: make([]float64, w*h)}
}

// at reads with clamped (replicated) borders.
func (p *plane) at(x, y int) float64 {
	return p.v[clamp(y, 0, p.h-1)*p.w+clamp(x, 0, p.w-1)]
}

// EdgeMap runs Canny edge detection over img and returns the edge pixels.
//
// thresholdLow and thresholdHigh are gradient magnitudes on the 0-255 scale.
// The usual starting point for clean diagrams is 50 and 150.
//
// # Algorithm
//
//  1. Luminance with ITU-R BT.601 weights, scaled to 0-1.
//  2. 5x5 Gaussian blur (sigma about 1.4).
//  3. Sobel gradients, magnitude and direction.
//  4. Non-maximum suppression along the gradient direction, giving
//     one-pixel-wide ridges. The outermost ring of pixels is never an edge.
//  5. Hysteresis: magnitudes at or above thresholdHigh are strong edges;
//     magnitudes between the thresholds survive only next to a strong edge.
func EdgeMap(img image.Image, thresholdLow, thresholdHigh int) *Mask {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := NewMask(w, h)
	if w == 0 || h == 0 {
		return out
	}

	lum := newPlane(w, h)
	gray, isGray := img.(*image.Gray)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if isGray {
				lum.v[y*w+x] = float64(gray.Pix[y*gray.Stride+x]) / 255.0
				continue
			}
			r, g, bl, _ := img.At(x+b.Min.X, y+b.Min.Y).RGBA()
			lum.v[y*w+x] = (0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(bl>>8)) / 255.0
		}
	}

	smooth := gaussian5(lum)
	mag, dir := sobel(smooth)
	thin := suppress(mag, dir)

	low := float64(thresholdLow) / 255.0
	high := float64(thresholdHigh) / 255.0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := thin.v[y*w+x]
			switch {
			case v >= high:
				out.Pix[y*w+x] = true
			case v >= low:
				out.Pix[y*w+x] = strongNeighbour(thin, x, y, high)
			}
		}
	}
	return out
}

var gaussianKernel = [5][5]float64{
	{1, 4, 7, 4, 1},
	{4, 16, 26, 16, 4},
	{7, 26, 41, 26, 7},
	{4, 16, 26, 16, 4},
	{1, 4, 7, 4, 1},
}

const gaussianKernelSum = 273.0

func gaussian5(src *plane) *plane {
	dst := newPlane(src.w, src.h)
	for y := 0; y < src.h; y++ {
		for x := 0; x < src.w; x++ {
			var sum float64
			for ky := -2; ky <= 2; ky++ {
				for kx := -2; kx <= 2; kx++ {
					sum += src.at(x+kx, y+ky) * gaussianKernel[ky+2][kx+2]
				}
			}
			dst.v[y*src.w+x] = sum / gaussianKernelSum
		}
	}
	return dst
}

func sobel(src *plane) (mag, dir *plane) {
	mag = newPlane(src.w, src.h)
	dir = newPlane(src.w, src.h)
	for y := 0; y < src.h; y++ {
		for x := 0; x < src.w; x++ {
			gx := src.at(x+1, y-1) + 2*src.at(x+1, y) + src.at(x+1, y+1) -
				src.at(x-1, y-1) - 2*src.at(x-1, y) - src.at(x-1, y+1)
			gy := src.at(x-1, y+1) + 2*src.at(x, y+1) + src.at(x+1, y+1) -
				src.at(x-1, y-1) - 2*src.at(x, y-1) - src.at(x+1, y-1)
			mag.v[y*src.w+x] = math.Hypot(gx, gy)
			dir.v[y*src.w+x] = math.Atan2(gy, gx)
		}
	}
	return mag, dir
}

// suppress keeps only local maxima across the gradient direction, quantised
// to one of four axes.
func suppress(mag, dir *plane) *plane {
	out := newPlane(mag.w, mag.h)
	for y := 1; y < mag.h-1; y++ {
		for x := 1; x < mag.w-1; x++ {
			a := dir.v[y*mag.w+x]
			if a < 0 {
				a += math.Pi
			}
			var dx, dy int
			switch {
			case a < math.Pi/8 || a >= 7*math.Pi/8:
				dx, dy = 1, 0
			case a < 3*math.Pi/8:
				dx, dy = 1, 1
			case a < 5*math.Pi/8:
				dx, dy = 0, 1
			default:
				dx, dy = -1, 1
			}
			m := mag.v[y*mag.w+x]
			if m >= mag.at(x+dx, y+dy) && m >= mag.at(x-dx, y-dy) {
				out.v[y*mag.w+x] = m
			}
		}
	}
	return out
}

func strongNeighbour(p *plane, x, y int, high float64) bool {
	for ky := -1; ky <= 1; ky++ {
		for kx := -1; kx <= 1; kx++ {
			if p.at(x+kx, y+ky) >= high {
				return true
			}
		}
	}
	return false
}

// clamp constrains val to [lo, hi].
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
