// Package geometry provides the small amount of planar geometry the detection
// and graph packages share.
//
// # Coordinate System
//
// Points use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// Integer Points are pixel coordinates. Arithmetic that needs fractional
// values (distances, centroids, polygon moments) is done on gonum r2.Vec and
// rounded back to a Point only at the boundary.
//
// # Nearest-Node Matching
//
// A Matcher resolves an arbitrary query point to the index of the nearest
// canonical point. Edge detectors rarely land exactly on a node's centroid, so
// both the Hough strategy and the graph builder use a Matcher to snap raw edge
// endpoints onto known nodes. Ties resolve to the lowest index.
//
// # Polygons
//
// Simplify implements Douglas-Peucker for open polylines and closed outlines.
// Moments computes the zeroth and first order area moments of a closed
// polygon with the shoelace formula; Centroid refuses polygons whose area
// moment is zero instead of dividing by it.
package geometry
