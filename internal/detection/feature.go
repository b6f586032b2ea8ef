package detection

import (
	"image"
	"math"

	"github.com/Rudra-050/graph-vision-mcp/internal/geometry"
	"github.com/Rudra-050/graph-vision-mcp/internal/imaging"
)

// FeatureStrategy separates nodes from edges morphologically: eroding the
// binary image removes strokes thinner than the erosion diameter and leaves
// node blobs. Every pair of surviving blobs is then probed along the straight
// line between their centres, and joined when the original ink covers enough
// of it.
//
// It finds diagrams where strokes touch the nodes, which the contour strategy
// sees as a single region, but only straight edges.
type FeatureStrategy struct {
	binarize imaging.BinarizeOptions
	cfg      FeatureConfig
}

// NewFeatureStrategy returns a feature strategy.
func NewFeatureStrategy(binarize imaging.BinarizeOptions, cfg FeatureConfig) *FeatureStrategy {
	return &FeatureStrategy{binarize: binarize, cfg: cfg}
}

// Name implements Strategy.
func (s *FeatureStrategy) Name() string { return "feature" }

// Detect implements Strategy.
func (s *FeatureStrategy) Detect(g *image.Gray) (*Result, error) {
	mask, err := imaging.Binarize(g, s.binarize)
	if err != nil {
		return nil, err
	}
	return s.DetectMask(mask), nil
}

// DetectMask runs the strategy on an already binarised image.
func (s *FeatureStrategy) DetectMask(mask *imaging.Mask) *Result {
	res := &Result{}
	blobs, _ := Components(imaging.Erode(mask, s.cfg.ErodeRadius), max(s.cfg.MinNodeArea, 1))
	for _, b := range blobs {
		res.Nodes = append(res.Nodes, s.node(b))
	}

	var segs []Segment
	for i := range res.Nodes {
		for j := i + 1; j < len(res.Nodes); j++ {
			res.Stats.Candidates++
			if s.blocked(res.Nodes, i, j) {
				continue
			}
			if s.coverage(mask, res.Nodes[i], res.Nodes[j]) >= s.cfg.MinCoverage {
				segs = append(segs, Seg(res.Nodes[i].Point, res.Nodes[j].Point))
			}
		}
	}
	res.Edges = dedupeSegments(segs, &res.Stats)
	return res
}

// node turns an eroded blob into a node, growing the radius back by the
// erosion radius.
func (s *FeatureStrategy) node(c *Component) Node {
	r := math.Sqrt(float64(c.Area())/math.Pi) + float64(s.cfg.ErodeRadius)
	return Node{Point: c.Center(), Radius: int(math.Round(r))}
}

// blocked reports whether the line between nodes i and j passes through a
// third node, in which case the ink belongs to two shorter edges.
func (s *FeatureStrategy) blocked(nodes []Node, i, j int) bool {
	a, b := nodes[i].Point, nodes[j].Point
	for k, n := range nodes {
		if k == i || k == j {
			continue
		}
		if geometry.SegmentDistance(n.Point, a, b) <= float64(n.Radius) {
			return true
		}
	}
	return false
}

// coverage samples the line from a to b in one-pixel steps, skipping the
// parts inside either node, and returns the fraction of samples on ink. A
// sample counts as ink if any pixel of its 3x3 neighbourhood is.
func (s *FeatureStrategy) coverage(mask *imaging.Mask, a, b Node) float64 {
	length := geometry.Distance(a.Point, b.Point)
	if length == 0 {
		return 0
	}
	dx := float64(b.X-a.X) / length
	dy := float64(b.Y-a.Y) / length

	samples, hits := 0, 0
	for d := 0.0; d <= length; d++ {
		if d <= float64(a.Radius) || length-d <= float64(b.Radius) {
			continue
		}
		x := int(math.Round(float64(a.X) + d*dx))
		y := int(math.Round(float64(a.Y) + d*dy))
		samples++
		if inkNear(mask, x, y) {
			hits++
		}
	}
	if samples == 0 {
		return 0
	}
	return float64(hits) / float64(samples)
}

// inkNear reports whether any pixel of the 3x3 neighbourhood of (x, y) is set.
func inkNear(mask *imaging.Mask, x, y int) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if mask.At(x+dx, y+dy) {
				return true
			}
		}
	}
	return false
}
