package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Rudra-050/graph-vision-mcp/internal/geometry"
)

// Kind distinguishes the two forms a node identity can take.
type Kind uint8

const (
	// KindInvalid is the zero NodeID. It never names a real node.
	KindInvalid Kind = iota
	// KindLabel is a free-form string label (manual or case input).
	KindLabel
	// KindPoint is an integer pixel coordinate (image input).
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindLabel:
		return "label"
	case KindPoint:
		return "point"
	default:
		return "invalid"
	}
}

// NodeID is a node identity: either a Label or a Point.
//
// NodeID is comparable and is used directly as a map key. Two identities are
// equal only if they have the same kind and the same value; a label "A" and
// a point never compare equal.
type NodeID struct {
	kind  Kind
	label string
	pt    geometry.Point
}

// Label returns a label-valued node identity.
func Label(s string) NodeID {
	return NodeID{kind: KindLabel, label: s}
}

// Point returns a coordinate-valued node identity.
func Point(x, y int) NodeID {
	return NodeID{kind: KindPoint, pt: geometry.Pt(x, y)}
}

// PointOf wraps an existing geometry.Point.
func PointOf(p geometry.Point) NodeID {
	return NodeID{kind: KindPoint, pt: p}
}

// Labels converts a list of strings to label identities.
func Labels(ss ...string) []NodeID {
	out := make([]NodeID, len(ss))
	for i, s := range ss {
		out[i] = Label(s)
	}
	return out
}

// Kind reports which variant n holds.
func (n NodeID) Kind() Kind { return n.kind }

// IsLabel reports whether n is label-valued.
func (n NodeID) IsLabel() bool { return n.kind == KindLabel }

// IsPoint reports whether n is coordinate-valued.
func (n NodeID) IsPoint() bool { return n.kind == KindPoint }

// Valid reports whether n names something: a non-blank label or any point.
func (n NodeID) Valid() bool {
	switch n.kind {
	case KindLabel:
		return strings.TrimSpace(n.label) != ""
	case KindPoint:
		return true
	default:
		return false
	}
}

// LabelValue returns the label and true for label identities.
func (n NodeID) LabelValue() (string, bool) {
	return n.label, n.kind == KindLabel
}

// PointValue returns the coordinate and true for point identities.
func (n NodeID) PointValue() (geometry.Point, bool) {
	return n.pt, n.kind == KindPoint
}

// Less defines a total order used wherever reproducible iteration matters:
// labels before points, labels lexicographically, points in raster order.
func (n NodeID) Less(o NodeID) bool {
	if n.kind != o.kind {
		return n.kind < o.kind
	}
	if n.kind == KindLabel {
		return n.label < o.label
	}
	return n.pt.Less(o.pt)
}

func (n NodeID) String() string {
	switch n.kind {
	case KindLabel:
		return n.label
	case KindPoint:
		return n.pt.String()
	default:
		return "<invalid>"
	}
}

// MarshalJSON encodes labels as JSON strings and points as {"x":..,"y":..}.
func (n NodeID) MarshalJSON() ([]byte, error) {
	switch n.kind {
	case KindLabel:
		return json.Marshal(n.label)
	case KindPoint:
		return json.Marshal(n.pt)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts either a JSON string (label) or an object or
// two-element array of integers (point).
func (n *NodeID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = Label(s)
		return nil
	}

	var p geometry.Point
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err == nil {
		_, hasX := probe["x"]
		_, hasY := probe["y"]
		if !hasX || !hasY {
			return errors.New("graph: point node needs both x and y")
		}
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("graph: invalid point node: %w", err)
		}
		*n = PointOf(p)
		return nil
	}

	var pair []int
	if err := json.Unmarshal(data, &pair); err == nil && len(pair) == 2 {
		*n = Point(pair[0], pair[1])
		return nil
	}

	return fmt.Errorf("graph: cannot decode node identity from %s", string(data))
}

// Edge is an unordered pair of node identities as observed in the input.
// It encodes to JSON as a two-element array.
type Edge struct {
	A NodeID
	B NodeID
}

// E is shorthand for an Edge between two identities.
func E(a, b NodeID) Edge {
	return Edge{A: a, B: b}
}

// LabelEdge is shorthand for an Edge between two labels.
func LabelEdge(a, b string) Edge {
	return Edge{A: Label(a), B: Label(b)}
}

func (e Edge) String() string {
	return e.A.String() + "-" + e.B.String()
}

// MarshalJSON encodes an edge as a two-element array.
func (e Edge) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]NodeID{e.A, e.B})
}

// UnmarshalJSON decodes a two-element array of node identities.
func (e *Edge) UnmarshalJSON(data []byte) error {
	var pair []NodeID
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("graph: edge must be a pair: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("graph: edge must have exactly 2 endpoints, got %d", len(pair))
	}
	e.A, e.B = pair[0], pair[1]
	return nil
}
