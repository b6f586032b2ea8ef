package graph

import "sort"

// Graph is an undirected simple graph: a map from node identity to the set of
// distinct neighbour identities.
//
// Invariants maintained by every mutation:
//   - symmetry: b is a neighbour of a iff a is a neighbour of b
//   - no node is its own neighbour
//   - neighbour collections are sets, so parallel edges collapse
//
// A Graph is built fresh per analysis and is not safe for concurrent
// mutation. Read-only use from several goroutines is fine.
type Graph struct {
	order []NodeID
	adj   map[NodeID]map[NodeID]struct{}
}

func newGraph(capacity int) *Graph {
	return &Graph{
		order: make([]NodeID, 0, capacity),
		adj:   make(map[NodeID]map[NodeID]struct{}, capacity),
	}
}

// addNode inserts n if absent and reports whether it was new.
func (g *Graph) addNode(n NodeID) bool {
	if _, ok := g.adj[n]; ok {
		return false
	}
	g.adj[n] = make(map[NodeID]struct{})
	g.order = append(g.order, n)
	return true
}

// addEdge links a and b symmetrically. Both must already be nodes and must
// differ. It reports whether the adjacency was new.
func (g *Graph) addEdge(a, b NodeID) bool {
	if a == b {
		return false
	}
	if _, dup := g.adj[a][b]; dup {
		return false
	}
	g.adj[a][b] = struct{}{}
	g.adj[b][a] = struct{}{}
	return true
}

// Len returns the number of nodes, isolated ones included.
func (g *Graph) Len() int {
	return len(g.order)
}

// Nodes returns the node identities in insertion order.
func (g *Graph) Nodes() []NodeID {
	out := make([]NodeID, len(g.order))
	copy(out, g.order)
	return out
}

// HasNode reports whether n is part of the graph.
func (g *Graph) HasNode(n NodeID) bool {
	_, ok := g.adj[n]
	return ok
}

// HasEdge reports whether a and b are adjacent.
func (g *Graph) HasEdge(a, b NodeID) bool {
	_, ok := g.adj[a][b]
	return ok
}

// Degree is the number of distinct neighbours of n (0 for unknown nodes).
func (g *Graph) Degree(n NodeID) int {
	return len(g.adj[n])
}

// Neighbors returns n's neighbours sorted by NodeID.Less, which fixes the
// iteration order of every algorithm that walks the graph.
func (g *Graph) Neighbors(n NodeID) []NodeID {
	set := g.adj[n]
	out := make([]NodeID, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// EdgeCount returns the number of distinct undirected edges.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, set := range g.adj {
		total += len(set)
	}
	return total / 2
}

// Edges returns every undirected edge exactly once. Endpoints are in Less
// order and the list is sorted, so equal graphs produce equal slices.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.EdgeCount())
	for a, set := range g.adj {
		for b := range set {
			if a.Less(b) {
				out = append(out, Edge{A: a, B: b})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A.Less(out[j].A)
		}
		return out[i].B.Less(out[j].B)
	})
	return out
}

// Adjacency returns a copy of the model as node -> sorted neighbour list.
func (g *Graph) Adjacency() map[NodeID][]NodeID {
	out := make(map[NodeID][]NodeID, len(g.adj))
	for _, n := range g.order {
		out[n] = g.Neighbors(n)
	}
	return out
}
