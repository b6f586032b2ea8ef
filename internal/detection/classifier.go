package detection

import (
	"math"

	"github.com/Rudra-050/graph-vision-mcp/internal/geometry"
)

// ShapeKind is the outcome of classifying one contour.
type ShapeKind int

const (
	// ShapeNoise is below the minimum area and discarded silently.
	ShapeNoise ShapeKind = iota

	// ShapeNode is a compact, near-square blob.
	ShapeNode

	// ShapeEdge is an elongated stroke.
	ShapeEdge

	// ShapeAmbiguous fits neither band and is dropped.
	ShapeAmbiguous

	// ShapeDegenerate has a zero bounding dimension or a zero area moment.
	ShapeDegenerate
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeNoise:
		return "noise"
	case ShapeNode:
		return "node"
	case ShapeEdge:
		return "edge"
	case ShapeAmbiguous:
		return "ambiguous"
	case ShapeDegenerate:
		return "degenerate"
	}
	return "unknown"
}

// Shape is the geometric description of one closed contour.
type Shape struct {
	// Area of the shape in square pixels.
	Area float64

	// Width and Height of the axis-aligned bounding box.
	Width, Height int

	// Outline is the closed boundary, first vertex not repeated at the end.
	Outline []geometry.Point
}

// Classification is the classifier's verdict on a Shape.
type Classification struct {
	Kind ShapeKind

	// Center is set for ShapeNode.
	Center geometry.Point

	// Segments is set for ShapeEdge: one segment from first to last vertex,
	// or one per simplified polyline step in polygon-edges mode.
	Segments []Segment
}

// Classifier sorts contours into nodes, edges and noise by area and
// bounding-box proportions.
type Classifier struct {
	cfg ClassifierConfig
}

// NewClassifier returns a classifier using cfg.
func NewClassifier(cfg ClassifierConfig) *Classifier {
	return &Classifier{cfg: cfg}
}

// Classify decides what s represents.
//
// The checks run in order: noise (area below NoiseMinArea), degenerate
// (zero-width or zero-height box), node (area inside the node band and
// width/height inside the aspect band), edge (area at least EdgeMinArea and
// long side over short side above EdgeMinElongation). Anything else is
// ambiguous.
func (c *Classifier) Classify(s Shape) Classification {
	cfg := c.cfg
	if s.Area < cfg.NoiseMinArea {
		return Classification{Kind: ShapeNoise}
	}
	if s.Width <= 0 || s.Height <= 0 || len(s.Outline) == 0 {
		return Classification{Kind: ShapeDegenerate}
	}

	w, h := float64(s.Width), float64(s.Height)
	aspect := w / h
	if s.Area >= cfg.NodeMinArea && s.Area <= cfg.NodeMaxArea &&
		aspect >= cfg.NodeMinAspect && aspect <= cfg.NodeMaxAspect {
		centroid, ok := geometry.Centroid(s.Outline)
		if !ok {
			return Classification{Kind: ShapeDegenerate}
		}
		return Classification{Kind: ShapeNode, Center: geometry.Round(centroid)}
	}

	elongation := math.Max(w, h) / math.Min(w, h)
	if s.Area >= cfg.EdgeMinArea && elongation > cfg.EdgeMinElongation {
		segs := c.edgeSegments(s.Outline)
		if len(segs) == 0 {
			return Classification{Kind: ShapeDegenerate}
		}
		return Classification{Kind: ShapeEdge, Segments: segs}
	}

	return Classification{Kind: ShapeAmbiguous}
}

// edgeSegments reduces a stroke outline to its centre run. The outline of a
// stroke doubles back on itself, so it is cut at its two extreme points and
// one side is simplified as an open polyline.
func (c *Classifier) edgeSegments(outline []geometry.Point) []Segment {
	i0 := geometry.Farthest(outline, outline[0])
	i1 := geometry.Farthest(outline, outline[i0])
	if i0 == i1 {
		return nil
	}

	side := make([]geometry.Point, 0, len(outline))
	for i := i0; ; i = (i + 1) % len(outline) {
		side = append(side, outline[i])
		if i == i1 {
			break
		}
	}

	epsilon := c.cfg.SimplifyEpsilon * geometry.Perimeter(outline, true)
	simple := geometry.Simplify(side, epsilon, false)
	if len(simple) < 2 {
		return nil
	}

	if !c.cfg.PolygonEdges {
		return []Segment{Seg(simple[0], simple[len(simple)-1])}
	}
	segs := make([]Segment, 0, len(simple)-1)
	for i := 1; i < len(simple); i++ {
		segs = append(segs, Seg(simple[i-1], simple[i]))
	}
	return segs
}
