package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// EncodedImage is an image serialised for transport over MCP.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Crop extracts r from img, optionally rescaling the result by scale.
//
// r is clipped to the image bounds; an empty intersection is an error. A scale
// of 0 or 1 leaves the size unchanged.
func Crop(img image.Image, r image.Rectangle, scale float64) (*image.NRGBA, error) {
	clipped := r.Intersect(img.Bounds())
	if clipped.Empty() {
		return nil, fmt.Errorf("crop region %v outside image bounds %v", r, img.Bounds())
	}

	cropped := imaging.Crop(img, clipped)
	if scale > 0 && scale != 1 {
		w := int(float64(cropped.Bounds().Dx()) * scale)
		h := int(float64(cropped.Bounds().Dy()) * scale)
		if w < 1 || h < 1 {
			return nil, fmt.Errorf("crop scale %.2f collapses %v to nothing", scale, clipped)
		}
		cropped = imaging.Resize(cropped, w, h, imaging.Lanczos)
	}
	return cropped, nil
}

// DarkOnLight returns a grayscale copy of img with dark text on a light
// background, inverting it when the mean luminance is below mid-gray. Filled
// nodes often carry light labels on a dark fill, which recognisers handle
// poorly.
func DarkOnLight(img image.Image) *image.NRGBA {
	gray := imaging.Grayscale(img)
	if len(gray.Pix) == 0 {
		return gray
	}
	var sum int
	for i := 0; i < len(gray.Pix); i += 4 {
		sum += int(gray.Pix[i])
	}
	if sum/(len(gray.Pix)/4) < 128 {
		return imaging.Invert(gray)
	}
	return gray
}

// Square returns the square of half-size r centred on (cx, cy).
func Square(cx, cy, r int) image.Rectangle {
	return image.Rect(cx-r, cy-r, cx+r+1, cy+r+1)
}

// PNGBytes encodes img as PNG.
func PNGBytes(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Encode serialises img as a base64 PNG.
func Encode(img image.Image) (*EncodedImage, error) {
	data, err := PNGBytes(img)
	if err != nil {
		return nil, err
	}
	return &EncodedImage{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		MimeType:    "image/png",
	}, nil
}
