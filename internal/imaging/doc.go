// Package imaging is the preprocessing stage in front of graph detection.
//
// It loads and caches source images, normalises them into a blurred
// grayscale working copy, and derives the two binary views the detection
// strategies consume: an ink mask (Binarize) and a Canny edge map (EdgeMap).
// It also crops node regions for label OCR and samples node fill colours.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner,
// X increasing rightward and Y increasing downward. Working images and masks
// are always anchored at (0,0); Prepared.ToSource maps a working coordinate
// back onto the source image, undoing any downscale.
//
// # Polarity
//
// Binarize does not assume dark ink on light paper. It takes the minority
// class of a global Otsu split as ink, so white chalk on a blackboard and
// pencil on paper both come out as foreground=true.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The remaining functions are pure
// and allocate their results.
package imaging
