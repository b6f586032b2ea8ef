package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
)

// Mask is a binary pixel grid in row-major order. True marks foreground
// (ink) pixels. Coordinates are relative to the mask's own origin at (0,0).
type Mask struct {
	Width  int
	Height int
	Pix    []bool
}

// NewMask allocates an empty mask of the given size.
func NewMask(width, height int) *Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Mask{Width: width, Height: height, Pix: make([]bool, width*height)}
}

// MaskFromGray marks every non-zero pixel of g as foreground.
func MaskFromGray(g *image.Gray) *Mask {
	b := g.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	for y := 0; y < m.Height; y++ {
		row := g.Pix[y*g.Stride : y*g.Stride+m.Width]
		for x, v := range row {
			m.Pix[y*m.Width+x] = v != 0
		}
	}
	return m
}

// In reports whether (x, y) lies inside the mask.
func (m *Mask) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width && y < m.Height
}

// At returns the pixel at (x, y). Out-of-range coordinates read as background.
func (m *Mask) At(x, y int) bool {
	if !m.In(x, y) {
		return false
	}
	return m.Pix[y*m.Width+x]
}

// Set writes the pixel at (x, y); out-of-range writes are ignored.
func (m *Mask) Set(x, y int, v bool) {
	if m.In(x, y) {
		m.Pix[y*m.Width+x] = v
	}
}

// Count returns the number of foreground pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v {
			n++
		}
	}
	return n
}

// Empty reports whether the mask has no pixels or no foreground.
func (m *Mask) Empty() bool {
	return m == nil || m.Width == 0 || m.Height == 0 || m.Count() == 0
}

// Gray renders the mask as a grayscale image with foreground in white.
func (m *Mask) Gray() *image.Gray {
	g := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for i, v := range m.Pix {
		if v {
			g.Pix[i] = 0xFF
		}
	}
	return g
}

// Erode shrinks the foreground with a square (2r+1) structuring element.
// Strokes thinner than 2r+1 pixels vanish while solid blobs survive with
// their outline pulled in by r.
func Erode(m *Mask, radius int) *Mask {
	if radius <= 0 {
		out := NewMask(m.Width, m.Height)
		copy(out.Pix, m.Pix)
		return out
	}
	eroded := effect.Erode(m.Gray(), float64(radius))
	out := NewMask(m.Width, m.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			r, _, _, _ := eroded.At(x, y).RGBA()
			out.Pix[y*m.Width+x] = r != 0
		}
	}
	return out
}
