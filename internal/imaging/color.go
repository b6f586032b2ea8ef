package imaging

import (
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// FillColor returns the average colour of the pixels inside r as "#rrggbb".
//
// Averaging happens in linear RGB so that a node drawn with anti-aliased
// edges reports the colour a viewer sees rather than a muddy gamma-space
// mean. Fully transparent pixels are skipped. The empty string means r held
// no opaque pixel.
func FillColor(img image.Image, r image.Rectangle) string {
	r = r.Intersect(img.Bounds())

	var lr, lg, lb float64
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			pr, pg, pb := c.LinearRgb()
			lr += pr
			lg += pg
			lb += pb
			n++
		}
	}
	if n == 0 {
		return ""
	}
	k := float64(n)
	return colorful.LinearRgb(lr/k, lg/k, lb/k).Clamped().Hex()
}
