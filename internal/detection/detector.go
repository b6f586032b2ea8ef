package detection

import (
	"image"
	"math"

	"github.com/Rudra-050/graph-vision-mcp/internal/geometry"
	"github.com/Rudra-050/graph-vision-mcp/internal/imaging"
)

// LabelReader reads the text inside a region of an image. It is satisfied by
// the OCR client.
type LabelReader interface {
	ReadLabel(img image.Image, r image.Rectangle) (string, error)
}

// Detector runs the whole image-to-graph stage on a source image:
// preprocessing, the strategy pipeline, and mapping the result back onto the
// source, where node colours and optional labels are read.
type Detector struct {
	cfg      Config
	pipeline *Pipeline
	labels   LabelReader
	logf     func(format string, args ...any)
}

// NewDetector returns a detector using the default strategies configured
// from cfg. labels may be nil to skip label reading.
func NewDetector(cfg Config, labels LabelReader, opts ...PipelineOption) *Detector {
	return NewDetectorWith(cfg, NewPipeline(DefaultStrategies(cfg), opts...), labels)
}

// NewDetectorWith returns a detector that runs pipeline instead of the
// default one.
func NewDetectorWith(cfg Config, pipeline *Pipeline, labels LabelReader) *Detector {
	return &Detector{cfg: cfg, pipeline: pipeline, labels: labels, logf: pipeline.logf}
}

// Pipeline returns the detector's pipeline.
func (d *Detector) Pipeline() *Pipeline {
	return d.pipeline
}

// Detect finds nodes and edges in img. Coordinates in the outcome are in
// img's own pixel space, including its bounds offset. Distance thresholds in
// Config stay in working-image pixels; use Outcome.SourceDistance to apply
// one to the outcome.
func (d *Detector) Detect(img image.Image) (*Outcome, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrNoImage
	}

	prep := imaging.Preprocess(img, d.cfg.Preprocess)
	out, err := d.pipeline.Detect(prep.Gray)
	if err != nil {
		return nil, err
	}

	origin := img.Bounds().Min
	toSource := func(p geometry.Point) geometry.Point {
		return prep.ToSource(p, origin)
	}

	nodes := make([]Node, len(out.Nodes))
	for i, n := range out.Nodes {
		p := toSource(n.Point)
		r := n.Radius
		if prep.Scale > 0 && prep.Scale != 1 {
			r = int(math.Round(float64(r) / prep.Scale))
		}
		nodes[i] = Node{Point: p, Radius: r}

		// The inner half keeps outlines and anti-aliasing out of the mean.
		nodes[i].FillColor = imaging.FillColor(img, imaging.Square(p.X, p.Y, max(r/2, 1)))

		if d.labels != nil {
			label, err := d.labels.ReadLabel(img, imaging.Square(p.X, p.Y, max(r, 1)))
			if err != nil {
				d.logf("detection: reading label at %v: %v", p, err)
				continue
			}
			nodes[i].Label = label
		}
	}

	edges := make([]Segment, len(out.Edges))
	for i, e := range out.Edges {
		edges[i] = Seg(toSource(e.A), toSource(e.B))
	}

	out.Nodes, out.Edges = nodes, edges
	if prep.Scale > 0 {
		out.Scale = prep.Scale
	}
	return out, nil
}
