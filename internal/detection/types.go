package detection

import (
	"encoding/json"
	"fmt"

	"github.com/Rudra-050/graph-vision-mcp/internal/geometry"
)

// Node is a detected node: a representative point plus what was learned
// about the blob around it.
type Node struct {
	geometry.Point

	// Radius approximates the node's extent in pixels.
	Radius int `json:"radius"`

	// FillColor is the average colour inside the node, "#rrggbb". Set by
	// Detector on the source image; strategies leave it empty.
	FillColor string `json:"fill_color,omitempty"`

	// Label is text read from inside the node by OCR, if enabled.
	Label string `json:"label,omitempty"`
}

// Segment is an edge observation between two raw points. Its JSON form is a
// two-element array of {x,y} objects.
type Segment struct {
	A, B geometry.Point
}

// Seg is shorthand for Segment{A: a, B: b}.
func Seg(a, b geometry.Point) Segment {
	return Segment{A: a, B: b}
}

// Length is the Euclidean length of s.
func (s Segment) Length() float64 {
	return geometry.Distance(s.A, s.B)
}

// key identifies s regardless of direction.
func (s Segment) key() [2]geometry.Point {
	if s.B.Less(s.A) {
		return [2]geometry.Point{s.B, s.A}
	}
	return [2]geometry.Point{s.A, s.B}
}

func (s Segment) String() string {
	return fmt.Sprintf("%v-%v", s.A, s.B)
}

func (s Segment) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]geometry.Point{s.A, s.B})
}

func (s *Segment) UnmarshalJSON(data []byte) error {
	var pts []geometry.Point
	if err := json.Unmarshal(data, &pts); err != nil {
		return err
	}
	if len(pts) != 2 {
		return fmt.Errorf("detection: segment needs 2 points, got %d", len(pts))
	}
	s.A, s.B = pts[0], pts[1]
	return nil
}

// Stats counts what a strategy looked at and why candidates were dropped,
// so that "nothing found" can be told apart from "everything rejected".
type Stats struct {
	// Candidates is the number of shapes, lines or node pairs examined.
	Candidates int `json:"candidates"`

	Noise      int `json:"noise,omitempty"`
	Ambiguous  int `json:"ambiguous,omitempty"`
	Degenerate int `json:"degenerate,omitempty"`
	SelfLoops  int `json:"self_loops,omitempty"`
	Duplicates int `json:"duplicates,omitempty"`
	Unmatched  int `json:"unmatched,omitempty"`
}

// Result is what one strategy produced.
type Result struct {
	Nodes []Node    `json:"nodes"`
	Edges []Segment `json:"edges"`
	Stats Stats     `json:"stats"`
}

// Found reports whether both nodes and edges were detected.
func (r *Result) Found() bool {
	return r != nil && len(r.Nodes) > 0 && len(r.Edges) > 0
}

// Points returns the node positions in order.
func (r *Result) Points() []geometry.Point {
	out := make([]geometry.Point, len(r.Nodes))
	for i, n := range r.Nodes {
		out[i] = n.Point
	}
	return out
}

// dedupeSegments drops self-loops and repeated pairs (in either direction),
// keeping first occurrences, and counts both in st.
func dedupeSegments(segs []Segment, st *Stats) []Segment {
	seen := make(map[[2]geometry.Point]bool, len(segs))
	out := make([]Segment, 0, len(segs))
	for _, s := range segs {
		if s.A == s.B {
			st.SelfLoops++
			continue
		}
		k := s.key()
		if seen[k] {
			st.Duplicates++
			continue
		}
		seen[k] = true
		out = append(out, s)
	}
	return out
}
