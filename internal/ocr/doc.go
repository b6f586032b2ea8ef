// Package ocr reads node labels with Tesseract through gosseract.
//
// # Prerequisites
//
// Tesseract and the data for each language used must be installed:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// Reading labels is optional. The server only builds a Reader when OCR is
// enabled in the configuration, and calls Reader.Check at startup.
//
// # Regions
//
// Labels are read from the square around each detected node. The crop is
// upscaled (labels are small), converted to grayscale and inverted when the
// node is dark, since Tesseract expects dark text on a light page.
package ocr
