package ocr

import (
	"image"
	"image/color"
	"image/draw"
	"strings"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// drawText draws text on an image using basicfont
func drawText(img draw.Image, x, y int, text string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// labelledNode draws a filled dark disc with a light label in its middle.
func labelledNode(label string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 80, 80))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	for y := 0; y < 80; y++ {
		for x := 0; x < 80; x++ {
			if dx, dy := x-40, y-40; dx*dx+dy*dy <= 30*30 {
				img.Set(x, y, color.Black)
			}
		}
	}
	drawText(img, 40-len(label)*7/2, 45, label, color.White)
	return img
}

func requireTesseract(t *testing.T, r *Reader) {
	t.Helper()
	if err := r.Check(); err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
}

func TestNewReader_Defaults(t *testing.T) {
	r := NewReader(Options{})
	if r.Language() != "eng" {
		t.Errorf("language: got %q, want eng", r.Language())
	}
	if r.opts.Scale != DefaultScale {
		t.Errorf("scale: got %v, want %v", r.opts.Scale, DefaultScale)
	}

	r = NewReader(Options{Language: "deu", Scale: 2})
	if r.Language() != "deu" || r.opts.Scale != 2 {
		t.Errorf("explicit options were not kept: %+v", r.opts)
	}
}

func TestCleanLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"A\n", "A"},
		{"  node 7 \n\n", "node 7"},
		{"x\x0cy", "xy"},
		{"a \t  b", "a b"},
		{"\n", ""},
	}
	for _, tt := range tests {
		if got := cleanLabel(tt.in); got != tt.want {
			t.Errorf("cleanLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReadLabel_RegionOutsideImage(t *testing.T) {
	r := NewReader(Options{})
	img := labelledNode("A")
	_, err := r.ReadLabel(img, image.Rect(200, 200, 220, 220))
	if err == nil {
		t.Fatal("expected an error for a region outside the image")
	}
	if !strings.HasPrefix(err.Error(), "ocr: ") {
		t.Errorf("error should carry the package prefix: %v", err)
	}
}

func TestReadLabel(t *testing.T) {
	r := NewReader(Options{Whitelist: "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"})
	requireTesseract(t, r)

	got, err := r.ReadLabel(labelledNode("B7"), image.Rect(10, 10, 71, 71))
	if err != nil {
		t.Fatalf("ReadLabel failed: %v", err)
	}
	// Recognition quality depends on the installed models; only log it.
	t.Logf("read label %q", got)
	if strings.ContainsAny(got, "\n\t") {
		t.Errorf("label should be a single cleaned line, got %q", got)
	}
}

func TestVersion(t *testing.T) {
	requireTesseract(t, NewReader(Options{}))
	if Version() == "" {
		t.Error("Version should not be empty")
	}
}
