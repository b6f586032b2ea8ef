package ocr

import (
	"errors"
	"fmt"
	"image"
	"slices"
	"strings"
	"unicode"

	"github.com/otiai10/gosseract/v2"

	"github.com/Rudra-050/graph-vision-mcp/internal/imaging"
)

// ErrLanguageUnavailable is returned by Check when the Tesseract data for the
// configured language is not installed.
var ErrLanguageUnavailable = errors.New("ocr: language data not installed")

// DefaultScale is the upscale factor applied to node crops. Node labels are
// usually a few pixels tall, well below what Tesseract reads reliably.
const DefaultScale = 3.0

// Options configures a Reader.
type Options struct {
	// Language is a Tesseract language code such as "eng". Defaults to "eng".
	Language string

	// Whitelist restricts recognised characters. Empty allows any.
	Whitelist string

	// Scale enlarges each crop before recognition. Zero means DefaultScale.
	Scale float64
}

// Reader reads short labels out of node regions with Tesseract.
//
// Each call uses its own Tesseract client, so a Reader is safe for concurrent
// use.
type Reader struct {
	opts Options
}

// NewReader returns a Reader with defaults filled in.
func NewReader(opts Options) *Reader {
	if opts.Language == "" {
		opts.Language = "eng"
	}
	if opts.Scale <= 0 {
		opts.Scale = DefaultScale
	}
	return &Reader{opts: opts}
}

// Language returns the configured language code.
func (r *Reader) Language() string {
	return r.opts.Language
}

// Check verifies that Tesseract is usable with the configured language. Call
// it once at startup so that a missing install is reported up front instead
// of as a failure on every node.
func (r *Reader) Check() error {
	langs, err := gosseract.GetAvailableLanguages()
	if err != nil {
		return fmt.Errorf("ocr: listing tesseract languages: %w", err)
	}
	if !slices.Contains(langs, r.opts.Language) {
		return fmt.Errorf("%w: %q", ErrLanguageUnavailable, r.opts.Language)
	}
	return nil
}

// ReadLabel recognises the text inside region of img.
//
// The crop is clipped to the image, enlarged, converted to dark text on a
// light background and read as a single line. Surrounding whitespace and
// control characters are removed; an empty string means nothing legible.
func (r *Reader) ReadLabel(img image.Image, region image.Rectangle) (string, error) {
	crop, err := imaging.Crop(img, region, r.opts.Scale)
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}
	data, err := imaging.PNGBytes(imaging.DarkOnLight(crop))
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}
	return r.recognize(data)
}

func (r *Reader) recognize(data []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(r.opts.Language); err != nil {
		return "", fmt.Errorf("ocr: failed to set language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_LINE); err != nil {
		return "", fmt.Errorf("ocr: failed to set page mode: %w", err)
	}
	if r.opts.Whitelist != "" {
		if err := client.SetWhitelist(r.opts.Whitelist); err != nil {
			return "", fmt.Errorf("ocr: failed to set whitelist: %w", err)
		}
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("ocr: failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: recognition failed: %w", err)
	}
	return cleanLabel(text), nil
}

// cleanLabel trims whitespace, drops control characters and collapses
// internal runs of spaces.
func cleanLabel(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// Version returns the linked Tesseract version.
func Version() string {
	return gosseract.Version()
}
