package detection

import (
	"image"
	"math"

	"github.com/Rudra-050/graph-vision-mcp/internal/geometry"
	"github.com/Rudra-050/graph-vision-mcp/internal/imaging"
)

// Component is one 8-connected group of foreground pixels.
type Component struct {
	// Pixels in raster order of discovery; Pixels[0] is the topmost,
	// leftmost pixel.
	Pixels []geometry.Point

	// Bounds is the pixel bounding box, Max exclusive.
	Bounds image.Rectangle
}

// Area is the pixel count.
func (c *Component) Area() int {
	return len(c.Pixels)
}

// Center is the rounded mean pixel position.
func (c *Component) Center() geometry.Point {
	var sx, sy int
	for _, p := range c.Pixels {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(c.Pixels))
	return geometry.Pt(int(math.Round(float64(sx)/n)), int(math.Round(float64(sy)/n)))
}

// Components labels the 8-connected foreground regions of m. labels holds,
// for every pixel, the 1-based index of its component or 0 for background.
// Components smaller than minArea are not returned but stay labelled.
func Components(m *imaging.Mask, minArea int) (comps []*Component, labels []int) {
	labels = make([]int, m.Width*m.Height)
	next := 0
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if !m.Pix[y*m.Width+x] || labels[y*m.Width+x] != 0 {
				continue
			}
			next++
			c := floodFill(m, labels, x, y, next)
			if c.Area() >= minArea {
				comps = append(comps, c)
			}
		}
	}
	return comps, labels
}

// floodFill collects the component containing (startX, startY), marking its
// pixels with id. It uses an explicit stack so large regions cannot exhaust
// the goroutine stack.
func floodFill(m *imaging.Mask, labels []int, startX, startY, id int) *Component {
	c := &Component{Bounds: image.Rect(startX, startY, startX+1, startY+1)}
	labels[startY*m.Width+startX] = id
	stack := []geometry.Point{geometry.Pt(startX, startY)}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		c.Pixels = append(c.Pixels, p)
		c.Bounds = c.Bounds.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))

		for _, d := range mooreDirs {
			nx, ny := p.X+d.X, p.Y+d.Y
			if !m.At(nx, ny) || labels[ny*m.Width+nx] != 0 {
				continue
			}
			labels[ny*m.Width+nx] = id
			stack = append(stack, geometry.Pt(nx, ny))
		}
	}

	// Put the raster-first pixel at the front; tracing starts there.
	first := 0
	for i, p := range c.Pixels {
		if p.Less(c.Pixels[first]) {
			first = i
		}
	}
	c.Pixels[0], c.Pixels[first] = c.Pixels[first], c.Pixels[0]
	return c
}

// mooreDirs lists the 8 neighbours clockwise on screen, starting east.
var mooreDirs = [8]geometry.Point{
	{X: 1, Y: 0},   // E
	{X: 1, Y: 1},   // SE
	{X: 0, Y: 1},   // S
	{X: -1, Y: 1},  // SW
	{X: -1, Y: 0},  // W
	{X: -1, Y: -1}, // NW
	{X: 0, Y: -1},  // N
	{X: 1, Y: -1},  // NE
}

const dirWest = 4

func dirIndex(d geometry.Point) int {
	for i, m := range mooreDirs {
		if m == d {
			return i
		}
	}
	return -1
}

// TraceOutline walks the outer boundary of the component with label id
// clockwise using Moore-neighbour tracing, starting at start, which must be
// the component's raster-first pixel. The returned outline does not repeat
// the start point at the end.
func TraceOutline(labels []int, width, height, id int, start geometry.Point) []geometry.Point {
	inside := func(p geometry.Point) bool {
		return p.X >= 0 && p.Y >= 0 && p.X < width && p.Y < height && labels[p.Y*width+p.X] == id
	}

	// step finds the next boundary pixel clockwise from cur, beginning just
	// after the background neighbour in direction back. It returns the new
	// pixel and the direction from it to the last background pixel checked.
	step := func(cur geometry.Point, back int) (geometry.Point, int, bool) {
		for i := 1; i <= 8; i++ {
			d := (back + i) % 8
			n := cur.Add(mooreDirs[d])
			if !inside(n) {
				continue
			}
			prev := cur.Add(mooreDirs[(back+i-1)%8])
			return n, dirIndex(geometry.Pt(prev.X-n.X, prev.Y-n.Y)), true
		}
		return cur, back, false
	}

	outline := []geometry.Point{start}
	second, back, ok := step(start, dirWest)
	if !ok {
		return outline
	}

	// Jacob's stopping criterion: done when start is re-entered and the walk
	// would continue to the same second pixel.
	maxSteps := 4*width*height + 8
	cur := second
	for i := 0; i < maxSteps; i++ {
		if cur == start {
			if n, _, _ := step(cur, back); n == second {
				break
			}
		}
		outline = append(outline, cur)
		cur, back, _ = step(cur, back)
	}
	return outline
}

// ContourStrategy binarises the working image, traces the outline of every
// connected region and sorts the regions into nodes and edges with a
// Classifier.
type ContourStrategy struct {
	binarize   imaging.BinarizeOptions
	classifier *Classifier
}

// NewContourStrategy returns a contour strategy.
func NewContourStrategy(binarize imaging.BinarizeOptions, cfg ClassifierConfig) *ContourStrategy {
	return &ContourStrategy{binarize: binarize, classifier: NewClassifier(cfg)}
}

// Name implements Strategy.
func (s *ContourStrategy) Name() string { return "contour" }

// Detect implements Strategy.
func (s *ContourStrategy) Detect(g *image.Gray) (*Result, error) {
	mask, err := imaging.Binarize(g, s.binarize)
	if err != nil {
		return nil, err
	}
	return s.DetectMask(mask), nil
}

// DetectMask classifies the regions of an already binarised image.
func (s *ContourStrategy) DetectMask(mask *imaging.Mask) *Result {
	res := &Result{}
	comps, labels := Components(mask, 1)
	var segs []Segment
	for _, c := range comps {
		res.Stats.Candidates++
		start := c.Pixels[0]
		id := labels[start.Y*mask.Width+start.X]
		outline := TraceOutline(labels, mask.Width, mask.Height, id, start)
		shape := Shape{
			Area:    float64(c.Area()),
			Width:   c.Bounds.Dx(),
			Height:  c.Bounds.Dy(),
			Outline: outline,
		}
		switch cl := s.classifier.Classify(shape); cl.Kind {
		case ShapeNode:
			res.Nodes = append(res.Nodes, Node{
				Point:  cl.Center,
				Radius: (max(shape.Width, shape.Height) + 1) / 2,
			})
		case ShapeEdge:
			segs = append(segs, cl.Segments...)
		case ShapeNoise:
			res.Stats.Noise++
		case ShapeAmbiguous:
			res.Stats.Ambiguous++
		case ShapeDegenerate:
			res.Stats.Degenerate++
		}
	}
	res.Edges = dedupeSegments(segs, &res.Stats)
	return res
}
