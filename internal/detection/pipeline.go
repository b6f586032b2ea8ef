package detection

import (
	"errors"
	"fmt"
	"image"
)

// ErrNoImage is returned when the pipeline is handed a nil or empty image.
var ErrNoImage = errors.New("detection: no image")

// Strategy turns a preprocessed grayscale image into raw nodes and edges.
// Strategies must not keep state between calls.
type Strategy interface {
	Name() string
	Detect(g *image.Gray) (*Result, error)
}

// Attempt records what one strategy produced.
type Attempt struct {
	Strategy string `json:"strategy"`
	Nodes    int    `json:"nodes"`
	Edges    int    `json:"edges"`
	Stats    Stats  `json:"stats"`

	// Error is set when the strategy failed outright.
	Error string `json:"error,omitempty"`
}

// Outcome is the pipeline's answer.
type Outcome struct {
	// Strategy names the strategy whose result was accepted; empty when none
	// was.
	Strategy string `json:"strategy,omitempty"`

	Nodes []Node    `json:"nodes"`
	Edges []Segment `json:"edges"`
	Stats Stats     `json:"stats"`

	// Scale is working-image pixels per source pixel. Detector sets it to
	// the preprocessing scale; it is 1 when the strategies saw the image at
	// its own size.
	Scale float64 `json:"scale"`

	// Attempts lists every strategy that ran, in order.
	Attempts []Attempt `json:"attempts"`
}

// Found reports whether a strategy succeeded.
func (o *Outcome) Found() bool {
	return o != nil && o.Strategy != ""
}

// SourceDistance converts a distance measured on the working image, such as
// a snap distance from HoughConfig, into pixels of the coordinates the
// outcome is expressed in.
func (o *Outcome) SourceDistance(d float64) float64 {
	if o == nil || o.Scale <= 0 {
		return d
	}
	return d / o.Scale
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithLogger receives one debug line per attempt. Passing nil silences it,
// which is also the default.
func WithLogger(logf func(format string, args ...any)) PipelineOption {
	return func(p *Pipeline) { p.logf = logf }
}

// Pipeline runs strategies in order and accepts the first result that has
// both nodes and edges.
type Pipeline struct {
	strategies []Strategy
	logf       func(format string, args ...any)
}

// NewPipeline returns a pipeline over strategies, tried in the given order.
func NewPipeline(strategies []Strategy, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{strategies: strategies}
	for _, opt := range opts {
		opt(p)
	}
	if p.logf == nil {
		p.logf = func(string, ...any) {}
	}
	return p
}

// DefaultStrategies returns contour, Hough and feature strategies, in that
// order, configured from cfg.
func DefaultStrategies(cfg Config) []Strategy {
	return []Strategy{
		NewContourStrategy(cfg.Binarize, cfg.Classifier),
		NewHoughStrategy(cfg.Hough),
		NewFeatureStrategy(cfg.Binarize, cfg.Feature),
	}
}

// Strategies returns the strategy names in order.
func (p *Pipeline) Strategies() []string {
	names := make([]string, len(p.strategies))
	for i, s := range p.strategies {
		names[i] = s.Name()
	}
	return names
}

// Detect tries each strategy on g.
//
// A strategy that errors or returns an incomplete result is recorded and the
// next one is tried. When no strategy succeeds the outcome is empty and the
// error is nil; the caller is expected to fall back to manual input. An
// error is returned only for a missing image.
func (p *Pipeline) Detect(g *image.Gray) (*Outcome, error) {
	if g == nil || g.Bounds().Empty() {
		return nil, ErrNoImage
	}

	out := &Outcome{Nodes: []Node{}, Edges: []Segment{}, Scale: 1}
	for _, s := range p.strategies {
		res, err := s.Detect(g)
		att := Attempt{Strategy: s.Name()}
		if err != nil {
			att.Error = err.Error()
			out.Attempts = append(out.Attempts, att)
			p.logf("detection: %s failed: %v", s.Name(), err)
			continue
		}
		if res != nil {
			att.Nodes, att.Edges, att.Stats = len(res.Nodes), len(res.Edges), res.Stats
		}
		out.Attempts = append(out.Attempts, att)

		if !res.Found() {
			p.logf("detection: %s found %d nodes and %d edges, trying next", s.Name(), att.Nodes, att.Edges)
			continue
		}
		p.logf("detection: %s accepted with %d nodes and %d edges", s.Name(), att.Nodes, att.Edges)
		out.Strategy = s.Name()
		out.Nodes, out.Edges, out.Stats = res.Nodes, res.Edges, res.Stats
		return out, nil
	}
	return out, nil
}

func (a Attempt) String() string {
	if a.Error != "" {
		return fmt.Sprintf("%s: error: %s", a.Strategy, a.Error)
	}
	return fmt.Sprintf("%s: %d nodes, %d edges", a.Strategy, a.Nodes, a.Edges)
}
