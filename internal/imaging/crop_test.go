package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/Rudra-050/graph-vision-mcp/internal/diagramtest"
)

func TestCrop(t *testing.T) {
	img := diagramtest.Blank(100, 80)
	diagramtest.Rect(img, 40, 30, 60, 50, color.RGBA{255, 0, 0, 255})

	out, err := Crop(img, image.Rect(40, 30, 60, 50), 1)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if out.Bounds().Dx() != 20 || out.Bounds().Dy() != 20 {
		t.Errorf("size: got %v, want 20x20", out.Bounds())
	}
	if r, g, _, _ := out.At(10, 10).RGBA(); r>>8 != 255 || g>>8 != 0 {
		t.Error("cropped content should be the red square")
	}
}

func TestCrop_ClipsToBounds(t *testing.T) {
	img := diagramtest.Blank(50, 50)

	out, err := Crop(img, Square(2, 2, 5), 1)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if out.Bounds().Dx() != 8 || out.Bounds().Dy() != 8 {
		t.Errorf("clipped size: got %v, want 8x8", out.Bounds())
	}

	if _, err := Crop(img, image.Rect(60, 60, 70, 70), 1); err == nil {
		t.Error("a region entirely outside the image should fail")
	}
}

func TestCrop_Scale(t *testing.T) {
	img := diagramtest.Blank(50, 50)

	up, err := Crop(img, image.Rect(0, 0, 10, 10), 3)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if up.Bounds().Dx() != 30 {
		t.Errorf("scaled width: got %d, want 30", up.Bounds().Dx())
	}

	if _, err := Crop(img, image.Rect(0, 0, 2, 2), 0.1); err == nil {
		t.Error("a scale that collapses the crop should fail")
	}
}

func TestSquare(t *testing.T) {
	if got := Square(10, 20, 3); got != image.Rect(7, 17, 14, 24) {
		t.Errorf("Square: got %v", got)
	}
}

func TestEncode(t *testing.T) {
	m := NewMask(12, 7)
	m.Set(3, 3, true)

	enc, err := Encode(m.Gray())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if enc.Width != 12 || enc.Height != 7 || enc.MimeType != "image/png" {
		t.Errorf("metadata: got %+v", enc)
	}

	data, err := base64.StdEncoding.DecodeString(enc.ImageBase64)
	if err != nil {
		t.Fatalf("invalid base64: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("invalid png: %v", err)
	}
	if r, _, _, _ := decoded.At(3, 3).RGBA(); r>>8 != 0xFF {
		t.Error("ink pixel should round-trip as white")
	}
}

func TestDarkOnLight(t *testing.T) {
	light := diagramtest.Blank(10, 10)
	diagramtest.Rect(light, 4, 4, 6, 6, diagramtest.Ink)
	out := DarkOnLight(light)
	if out.NRGBAAt(0, 0).R != 255 || out.NRGBAAt(5, 5).R != 0 {
		t.Error("a light image should pass through unchanged")
	}

	dark := diagramtest.Canvas(10, 10, diagramtest.Ink)
	diagramtest.Rect(dark, 4, 4, 6, 6, diagramtest.Paper)
	out = DarkOnLight(dark)
	if out.NRGBAAt(0, 0).R != 255 || out.NRGBAAt(5, 5).R != 0 {
		t.Error("a dark image should be inverted to dark text on light")
	}
}
