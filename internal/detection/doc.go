// Package detection turns a picture of a graph into raw node and edge
// observations.
//
// # Strategies
//
// Detection runs an ordered list of independent strategies over a
// preprocessed grayscale image and accepts the first one that finds at least
// one node and at least one edge:
//
//   - contour: binarise (Otsu or adaptive), label 8-connected regions, trace
//     each outline and let a Classifier decide between node, edge and noise
//     from area and bounding-box proportions.
//   - hough: Canny edge map, Hough circles as nodes and Hough line runs as
//     edges, with each run's ends snapped to the nearest circle centre.
//   - feature: erode the binary image so strokes vanish and nodes survive,
//     then join node pairs whose connecting line is covered by ink.
//
// The order reflects decreasing reliability and increasing cost. A strategy
// that errors or comes back incomplete is recorded in the Outcome's attempts
// and the next one runs. When all of them fail the outcome is empty, which
// is not an error: callers fall back to entering the graph by hand.
//
// # Coordinate System
//
// Strategies work on the prepared image, origin top-left, X rightward and Y
// downward. Detector maps everything back into the source image's pixel
// space, bounds offset included.
//
// # Output
//
// Nodes are points with a radius; edges are pairs of raw points that the
// graph builder resolves against the node list. Edge endpoints from the
// contour strategy are stroke ends, not node centres, so they rely on that
// nearest-node resolution.
//
// # Limitations
//
// These heuristics expect clean, high-contrast drawings with roughly round
// nodes and straight edges. Curved edges are only found by the contour
// strategy with polygon edges enabled, and crossing edges confuse all three.
package detection
