package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Matcher associates query points with the nearest of a fixed, ordered list
// of canonical points.
//
// A Matcher is immutable after construction and safe for concurrent use.
type Matcher struct {
	points  []r2.Vec
	maxDist float64
}

// NewMatcher builds a matcher over points. The slice is copied, so later
// changes to it do not affect the matcher.
//
// maxDistance bounds how far a query may be from its match. Zero or a negative
// value disables the cutoff, in which case the nearest point is always
// returned no matter how far away it is.
func NewMatcher(points []Point, maxDistance float64) *Matcher {
	vs := make([]r2.Vec, len(points))
	for i, p := range points {
		vs[i] = p.Vec()
	}
	return &Matcher{points: vs, maxDist: maxDistance}
}

// Len returns the number of canonical points.
func (m *Matcher) Len() int {
	return len(m.points)
}

// Nearest returns the index of the canonical point closest to q by Euclidean
// distance, together with that distance.
//
// The first minimal-distance index in enumeration order wins ties. Nearest
// returns -1 when the matcher is empty or when the closest point lies beyond
// the configured cutoff.
func (m *Matcher) Nearest(q Point) (int, float64) {
	best := -1
	bestDist := math.Inf(1)
	qv := q.Vec()
	for i, p := range m.points {
		d := r2.Norm(r2.Sub(p, qv))
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		return -1, 0
	}
	if m.maxDist > 0 && bestDist > m.maxDist {
		return -1, bestDist
	}
	return best, bestDist
}

// NearestIndex is a convenience wrapper for one-off lookups without a cutoff.
func NearestIndex(points []Point, q Point) int {
	idx, _ := NewMatcher(points, 0).Nearest(q)
	return idx
}
