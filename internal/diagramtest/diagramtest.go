// Package diagramtest draws synthetic graph diagrams for tests.
//
// Canvases are white RGBA images; shapes are painted in a single ink colour.
// Everything is drawn with integer pixel arithmetic so that tests can reason
// about exact areas and extents.
package diagramtest

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

var (
	// Ink is the default stroke colour.
	Ink = color.RGBA{0, 0, 0, 255}

	// Paper is the default background colour.
	Paper = color.RGBA{255, 255, 255, 255}
)

// Canvas returns a w x h image filled with bg.
func Canvas(w, h int, bg color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, bg)
		}
	}
	return img
}

// Blank returns a white canvas.
func Blank(w, h int) *image.RGBA {
	return Canvas(w, h, Paper)
}

// Disc paints a filled circle of radius r centred on (cx, cy).
func Disc(img *image.RGBA, cx, cy, r int, c color.Color) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				img.Set(x, y, c)
			}
		}
	}
}

// Ring paints a circle outline of radius r and the given stroke thickness.
func Ring(img *image.RGBA, cx, cy, r, thickness int, c color.Color) {
	inner := r - thickness
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			d := dx*dx + dy*dy
			if d <= r*r && d > inner*inner {
				img.Set(x, y, c)
			}
		}
	}
}

// Rect paints the filled rectangle [x0,x1) x [y0,y1).
func Rect(img *image.RGBA, x0, y0, x1, y1 int, c color.Color) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.Set(x, y, c)
		}
	}
}

// Line paints a straight stroke from (x0,y0) to (x1,y1) using Bresenham's
// algorithm, thickened to a square brush of half-width half.
func Line(img *image.RGBA, x0, y0, x1, y1, half int, c color.Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		Rect(img, x0-half, y0-half, x0+half+1, y0+half+1, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Node is a disc placed on a diagram.
type Node struct {
	X, Y, R int
}

// Diagram draws discs for nodes and strokes of half-width half between the
// node pairs listed in edges (indices into nodes).
func Diagram(w, h int, nodes []Node, edges [][2]int, half int) *image.RGBA {
	img := Blank(w, h)
	for _, e := range edges {
		a, b := nodes[e[0]], nodes[e[1]]
		Line(img, a.X, a.Y, b.X, b.Y, half, Ink)
	}
	for _, n := range nodes {
		Disc(img, n.X, n.Y, n.R, Ink)
	}
	return img
}

// WritePNG saves img under t.TempDir() and returns the path.
func WritePNG(t testing.TB, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
	return path
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
