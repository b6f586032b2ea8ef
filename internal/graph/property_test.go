package graph

import (
	"fmt"
	"reflect"
	"sort"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// randomInput turns generator output into labelled nodes and edges. raw is
// consumed in pairs; indices wrap modulo n, so self-loops and repeats occur
// naturally.
func randomInput(n int, raw []int) ([]NodeID, []Edge) {
	nodes := make([]NodeID, n)
	for i := range nodes {
		nodes[i] = Label(fmt.Sprintf("n%d", i))
	}
	edges := make([]Edge, 0, len(raw)/2)
	for i := 0; i+1 < len(raw); i += 2 {
		edges = append(edges, E(nodes[raw[i]%n], nodes[raw[i+1]%n]))
	}
	return nodes, edges
}

func sortedDegrees(g *Graph) []int {
	out := make([]int, 0, g.Len())
	for _, d := range Degrees(g) {
		out = append(out, d.Degree)
	}
	sort.Ints(out)
	return out
}

// TestGraphInvariants checks the structural guarantees of Build on random
// label graphs, including self-loops and repeated pairs.
func TestGraphInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	nodeCount := gen.IntRange(2, 8)
	rawEdges := gen.SliceOf(gen.IntRange(0, 7))

	properties.Property("adjacency is symmetric", prop.ForAll(
		func(n int, raw []int) bool {
			nodes, edges := randomInput(n, raw)
			g, _, err := Build(nodes, edges, WithLogger(nil))
			if err != nil {
				return false
			}
			for _, a := range g.Nodes() {
				for _, b := range g.Neighbors(a) {
					if !g.HasEdge(b, a) {
						return false
					}
				}
			}
			return true
		},
		nodeCount, rawEdges,
	))

	properties.Property("no node is its own neighbour", prop.ForAll(
		func(n int, raw []int) bool {
			nodes, edges := randomInput(n, raw)
			g, _, _ := Build(nodes, edges, WithLogger(nil))
			for _, a := range g.Nodes() {
				if g.HasEdge(a, a) {
					return false
				}
			}
			return true
		},
		nodeCount, rawEdges,
	))

	properties.Property("every input edge is accepted or dropped", prop.ForAll(
		func(n int, raw []int) bool {
			nodes, edges := randomInput(n, raw)
			g, report, _ := Build(nodes, edges, WithLogger(nil))
			return report.Accepted+report.Dropped() == len(edges) &&
				report.Accepted == g.EdgeCount()
		},
		nodeCount, rawEdges,
	))

	properties.Property("building twice is idempotent", prop.ForAll(
		func(n int, raw []int) bool {
			nodes, edges := randomInput(n, raw)
			g1, _, _ := Build(nodes, edges, WithLogger(nil))
			g2, _, _ := Build(nodes, edges, WithLogger(nil))
			return reflect.DeepEqual(g1.Edges(), g2.Edges()) &&
				reflect.DeepEqual(g1.Adjacency(), g2.Adjacency())
		},
		nodeCount, rawEdges,
	))

	properties.Property("edge order does not matter", prop.ForAll(
		func(n int, raw []int) bool {
			nodes, edges := randomInput(n, raw)
			reversed := make([]Edge, len(edges))
			for i, e := range edges {
				reversed[len(edges)-1-i] = Edge{A: e.B, B: e.A}
			}
			g1, _, _ := Build(nodes, edges, WithLogger(nil))
			g2, _, _ := Build(nodes, reversed, WithLogger(nil))
			return reflect.DeepEqual(g1.Edges(), g2.Edges())
		},
		nodeCount, rawEdges,
	))

	properties.Property("eulerian verdict depends only on degree sequence", prop.ForAll(
		func(n int, raw []int) bool {
			nodes, edges := randomInput(n, raw)
			g, _, _ := Build(nodes, edges, WithLogger(nil))

			odd := 0
			for _, d := range sortedDegrees(g) {
				odd += d % 2
			}
			want := Neither
			switch odd {
			case 0:
				want = EulerianCircuit
			case 2:
				want = EulerianPath
			}
			return ClassifyEulerian(g) == want
		},
		nodeCount, rawEdges,
	))

	properties.Property("relabelling preserves the verdicts", prop.ForAll(
		func(n int, raw []int) bool {
			nodes, edges := randomInput(n, raw)
			g1, _, _ := Build(nodes, edges, WithLogger(nil))

			// Rotate every index by one: an isomorphic graph.
			shift := func(id NodeID) NodeID {
				for i, m := range nodes {
					if m == id {
						return nodes[(i+1)%n]
					}
				}
				return id
			}
			moved := make([]Edge, len(edges))
			for i, e := range edges {
				moved[i] = E(shift(e.A), shift(e.B))
			}
			g2, _, _ := Build(nodes, moved, WithLogger(nil))

			_, ok1 := FindHamiltonianPath(g1)
			_, ok2 := FindHamiltonianPath(g2)
			return ClassifyEulerian(g1) == ClassifyEulerian(g2) &&
				reflect.DeepEqual(sortedDegrees(g1), sortedDegrees(g2)) &&
				ok1 == ok2
		},
		nodeCount, rawEdges,
	))

	properties.Property("found hamiltonian paths are valid", prop.ForAll(
		func(n int, raw []int) bool {
			nodes, edges := randomInput(n, raw)
			g, _, _ := Build(nodes, edges, WithLogger(nil))
			path, ok := FindHamiltonianPath(g)
			if !ok {
				return path == nil
			}
			if len(path) != g.Len() {
				return false
			}
			seen := make(map[NodeID]bool, len(path))
			for i, v := range path {
				if seen[v] || (i > 0 && !g.HasEdge(path[i-1], v)) {
					return false
				}
				seen[v] = true
			}
			return true
		},
		nodeCount, rawEdges,
	))

	properties.Property("an isolated node rules out a hamiltonian path", prop.ForAll(
		func(n int, raw []int) bool {
			nodes, edges := randomInput(n, raw)
			nodes = append(nodes, Label("isolated"))
			g, _, _ := Build(nodes, edges, WithLogger(nil))
			_, ok := FindHamiltonianPath(g)
			return !ok
		},
		nodeCount, rawEdges,
	))

	properties.TestingRun(t)
}
