package graph

import (
	"errors"
	"fmt"
	"log"

	"github.com/Rudra-050/graph-vision-mcp/internal/geometry"
)

// Sentinel errors for graph construction.
var (
	// ErrTooFewNodes indicates fewer than two distinct valid nodes were supplied.
	ErrTooFewNodes = errors.New("graph: at least 2 nodes are required")
)

// MinNodes is the smallest node count for which a graph is built.
const MinNodes = 2

// DropReason explains why an edge observation did not enter the graph.
type DropReason string

const (
	// DropSelfLoop means both endpoints resolved to the same node.
	DropSelfLoop DropReason = "self_loop"
	// DropDuplicate means the same unordered pair was already inserted.
	DropDuplicate DropReason = "duplicate"
	// DropUnknownNode means a label endpoint is not in the node list.
	DropUnknownNode DropReason = "unknown_node"
	// DropTypeMismatch means an endpoint's kind does not occur in the node
	// list at all, e.g. a point endpoint against label-only nodes.
	DropTypeMismatch DropReason = "type_mismatch"
	// DropUnmatched means a point endpoint lies beyond the snap distance.
	DropUnmatched DropReason = "unmatched"
	// DropMalformed means an endpoint is the zero identity or a blank label.
	DropMalformed DropReason = "malformed"
)

// Drop records one discarded edge observation.
type Drop struct {
	// Index is the position of the edge in the input slice.
	Index int `json:"index"`

	// Edge is the edge as supplied, before resolution.
	Edge Edge `json:"edge"`

	// Reason is why the edge was discarded.
	Reason DropReason `json:"reason"`

	// Detail names the offending endpoint where that is useful.
	Detail string `json:"detail,omitempty"`
}

// BuildReport summarises what happened to every input item during Build.
// Callers can tell "no edges supplied" apart from "edges supplied but all
// invalid" by comparing EdgesIn with Accepted.
type BuildReport struct {
	NodesIn        int `json:"nodes_in"`
	DuplicateNodes int `json:"duplicate_nodes"`
	InvalidNodes   int `json:"invalid_nodes"`

	EdgesIn        int `json:"edges_in"`
	Accepted       int `json:"accepted"`
	Snapped        int `json:"snapped"`
	SelfLoops      int `json:"self_loops"`
	Duplicates     int `json:"duplicates"`
	UnknownNodes   int `json:"unknown_nodes"`
	TypeMismatches int `json:"type_mismatches"`
	Unmatched      int `json:"unmatched"`
	Malformed      int `json:"malformed"`

	Drops []Drop `json:"drops,omitempty"`
}

// Dropped is the number of edges that did not enter the graph.
func (r *BuildReport) Dropped() int {
	return len(r.Drops)
}

// Count returns how many drops carry the given reason.
func (r *BuildReport) Count(reason DropReason) int {
	n := 0
	for _, d := range r.Drops {
		if d.Reason == reason {
			n++
		}
	}
	return n
}

func (r *BuildReport) drop(idx int, e Edge, reason DropReason, detail string) {
	r.Drops = append(r.Drops, Drop{Index: idx, Edge: e, Reason: reason, Detail: detail})
	switch reason {
	case DropSelfLoop:
		r.SelfLoops++
	case DropDuplicate:
		r.Duplicates++
	case DropUnknownNode:
		r.UnknownNodes++
	case DropTypeMismatch:
		r.TypeMismatches++
	case DropUnmatched:
		r.Unmatched++
	case DropMalformed:
		r.Malformed++
	}
}

// BuildOption configures Build.
type BuildOption func(*buildOptions)

type buildOptions struct {
	snapDistance float64
	logf         func(format string, args ...any)
}

// WithSnapDistance bounds how far a point endpoint may be from the node it
// resolves to. Zero (the default) means no cutoff.
func WithSnapDistance(d float64) BuildOption {
	return func(o *buildOptions) { o.snapDistance = d }
}

// WithLogger redirects warning-level messages. Passing nil silences them.
func WithLogger(logf func(format string, args ...any)) BuildOption {
	return func(o *buildOptions) { o.logf = logf }
}

// Build normalises node and edge observations into a Graph.
//
// Steps, in order:
//  1. Nodes are deduplicated; blank labels and zero identities are skipped.
//     Fewer than two distinct valid nodes refuses the build with
//     ErrTooFewNodes.
//  2. Each edge endpoint is resolved to a canonical node. Label endpoints
//     must equal a node literally. Point endpoints that are not themselves
//     nodes snap to the nearest point node.
//  3. Edges whose endpoints resolve to the same node are discarded as
//     self-loops.
//  4. Surviving edges are inserted symmetrically; repeats of an already
//     inserted pair are recorded as duplicates.
//
// Per-edge problems never fail the build. They are logged at warning level
// and recorded in the returned report. Every valid node appears in the graph,
// including those with no edges.
func Build(nodes []NodeID, edges []Edge, opts ...BuildOption) (*Graph, *BuildReport, error) {
	o := buildOptions{logf: log.Printf}
	for _, opt := range opts {
		opt(&o)
	}
	warnf := o.logf
	if warnf == nil {
		warnf = func(string, ...any) {}
	}

	report := &BuildReport{NodesIn: len(nodes), EdgesIn: len(edges)}

	g := newGraph(len(nodes))
	var points []geometry.Point
	var pointIDs []NodeID
	hasLabels := false
	for _, n := range nodes {
		if !n.Valid() {
			report.InvalidNodes++
			continue
		}
		if !g.addNode(n) {
			report.DuplicateNodes++
			continue
		}
		if p, ok := n.PointValue(); ok {
			points = append(points, p)
			pointIDs = append(pointIDs, n)
		} else {
			hasLabels = true
		}
	}

	if g.Len() < MinNodes {
		return nil, report, fmt.Errorf("%w: got %d", ErrTooFewNodes, g.Len())
	}

	r := &resolver{g: g, pointIDs: pointIDs, hasLabels: hasLabels}
	if len(points) > 0 {
		r.matcher = geometry.NewMatcher(points, o.snapDistance)
	}

	for i, e := range edges {
		a, reason, detail := r.resolve(e.A)
		var b NodeID
		if reason == "" {
			b, reason, detail = r.resolve(e.B)
		}
		if reason != "" {
			report.drop(i, e, reason, detail)
			if reason == DropUnknownNode || reason == DropTypeMismatch || reason == DropMalformed {
				warnf("graph: dropping edge %d (%s): %s %s", i, e, reason, detail)
			}
			continue
		}

		if a != e.A || b != e.B {
			report.Snapped++
		}
		switch {
		case a == b:
			report.drop(i, e, DropSelfLoop, a.String())
		case !g.addEdge(a, b):
			report.drop(i, e, DropDuplicate, "")
		default:
			report.Accepted++
		}
	}

	return g, report, nil
}

// resolver maps raw endpoints onto nodes of g.
type resolver struct {
	g         *Graph
	matcher   *geometry.Matcher
	pointIDs  []NodeID
	hasLabels bool
}

func (r *resolver) resolve(n NodeID) (NodeID, DropReason, string) {
	if !n.Valid() {
		return NodeID{}, DropMalformed, n.String()
	}
	if r.g.HasNode(n) {
		return n, "", ""
	}

	p, isPoint := n.PointValue()
	if !isPoint {
		if !r.hasLabels {
			return NodeID{}, DropTypeMismatch, n.String()
		}
		return NodeID{}, DropUnknownNode, n.String()
	}
	if r.matcher == nil {
		return NodeID{}, DropTypeMismatch, n.String()
	}
	idx, _ := r.matcher.Nearest(p)
	if idx < 0 {
		return NodeID{}, DropUnmatched, n.String()
	}
	return r.pointIDs[idx], "", ""
}
