package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Perimeter returns the length of a polyline. When closed is true the
// segment from the last vertex back to the first is included.
func Perimeter(poly []Point, closed bool) float64 {
	if len(poly) < 2 {
		return 0
	}
	total := 0.0
	for i := 1; i < len(poly); i++ {
		total += Distance(poly[i-1], poly[i])
	}
	if closed {
		total += Distance(poly[len(poly)-1], poly[0])
	}
	return total
}

// Moments returns the signed area moment m00 and the first order moments
// m10, m01 of a closed polygon (shoelace formula). The sign of all three
// follows the winding order; ratios between them do not.
func Moments(poly []Point) (m00, m10, m01 float64) {
	n := len(poly)
	if n < 3 {
		return 0, 0, 0
	}
	for i := 0; i < n; i++ {
		p := poly[i].Vec()
		q := poly[(i+1)%n].Vec()
		cross := r2.Cross(p, q)
		m00 += cross
		m10 += (p.X + q.X) * cross
		m01 += (p.Y + q.Y) * cross
	}
	return m00 / 2, m10 / 6, m01 / 6
}

// Area returns the unsigned area enclosed by a closed polygon.
func Area(poly []Point) float64 {
	m00, _, _ := Moments(poly)
	return math.Abs(m00)
}

// Centroid returns the area-weighted centroid of a closed polygon.
// ok is false when the area moment is zero (collinear or fewer than three
// vertices), since the centroid is undefined there.
func Centroid(poly []Point) (c r2.Vec, ok bool) {
	m00, m10, m01 := Moments(poly)
	if math.Abs(m00) < 1e-9 {
		return r2.Vec{}, false
	}
	return r2.Vec{X: m10 / m00, Y: m01 / m00}, true
}

// Simplify reduces a polyline with the Douglas-Peucker algorithm. Vertices
// closer than epsilon to the simplified shape are dropped. The first and last
// vertices are always kept for open polylines.
//
// For closed outlines the polygon is split at vertex 0 and the vertex
// farthest from it, each half is simplified independently, and the halves are
// rejoined so the result starts at vertex 0.
func Simplify(poly []Point, epsilon float64, closed bool) []Point {
	if len(poly) < 3 {
		out := make([]Point, len(poly))
		copy(out, poly)
		return out
	}
	if !closed {
		return douglasPeucker(poly, epsilon)
	}

	far := Farthest(poly, poly[0])
	if far == 0 {
		return []Point{poly[0]}
	}
	first := douglasPeucker(poly[:far+1], epsilon)

	second := make([]Point, 0, len(poly)-far+1)
	second = append(second, poly[far:]...)
	second = append(second, poly[0])
	rest := douglasPeucker(second, epsilon)

	out := make([]Point, 0, len(first)+len(rest))
	out = append(out, first...)
	// rest starts at poly[far] (already in first) and ends at poly[0].
	out = append(out, rest[1:len(rest)-1]...)
	return out
}

// Farthest returns the index of the vertex in poly farthest from p.
// The lowest index wins ties; an empty polygon yields -1.
func Farthest(poly []Point, p Point) int {
	best := -1
	bestDist := -1.0
	for i, q := range poly {
		if d := Distance(p, q); d > bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

func douglasPeucker(pts []Point, epsilon float64) []Point {
	if len(pts) < 3 {
		out := make([]Point, len(pts))
		copy(out, pts)
		return out
	}

	keep := make([]bool, len(pts))
	keep[0] = true
	keep[len(pts)-1] = true

	// Explicit stack of [lo, hi] ranges; outlines can be long enough that
	// recursion depth becomes a concern.
	stack := [][2]int{{0, len(pts) - 1}}
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		lo, hi := r[0], r[1]
		if hi-lo < 2 {
			continue
		}

		idx := -1
		maxDist := 0.0
		for i := lo + 1; i < hi; i++ {
			d := SegmentDistance(pts[i], pts[lo], pts[hi])
			if d > maxDist {
				maxDist = d
				idx = i
			}
		}
		if idx >= 0 && maxDist > epsilon {
			keep[idx] = true
			stack = append(stack, [2]int{lo, idx}, [2]int{idx, hi})
		}
	}

	out := make([]Point, 0, len(pts))
	for i, k := range keep {
		if k {
			out = append(out, pts[i])
		}
	}
	return out
}

// SegmentDistance is the distance from p to the segment ab.
func SegmentDistance(p, a, b Point) float64 {
	pv, av, bv := p.Vec(), a.Vec(), b.Vec()
	ab := r2.Sub(bv, av)
	l2 := r2.Dot(ab, ab)
	if l2 == 0 {
		return r2.Norm(r2.Sub(pv, av))
	}
	t := r2.Dot(r2.Sub(pv, av), ab) / l2
	t = math.Max(0, math.Min(1, t))
	proj := r2.Add(av, r2.Scale(t, ab))
	return r2.Norm(r2.Sub(pv, proj))
}
