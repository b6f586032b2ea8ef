package graph

// EulerianStatus is the degree-parity verdict for a graph.
type EulerianStatus int

const (
	// Neither means the odd-degree count is neither 0 nor 2.
	Neither EulerianStatus = iota
	// EulerianPath means exactly two nodes have odd degree.
	EulerianPath
	// EulerianCircuit means every node has even degree.
	EulerianCircuit
)

func (s EulerianStatus) String() string {
	switch s {
	case EulerianCircuit:
		return "eulerian_circuit"
	case EulerianPath:
		return "eulerian_path"
	default:
		return "neither"
	}
}

// MarshalText lets the status appear as a string in JSON output.
func (s EulerianStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// HamiltonianStatus is the outcome of the Hamiltonian path search.
type HamiltonianStatus int

const (
	// NoHamiltonianPath means every start node was exhausted without success.
	NoHamiltonianPath HamiltonianStatus = iota
	// HamiltonianPathExists means a path covering every node was found.
	HamiltonianPathExists
	// HamiltonianSkipped means the caller's node limit suppressed the search.
	HamiltonianSkipped
)

func (s HamiltonianStatus) String() string {
	switch s {
	case HamiltonianPathExists:
		return "exists"
	case HamiltonianSkipped:
		return "skipped"
	default:
		return "none"
	}
}

// MarshalText lets the status appear as a string in JSON output.
func (s HamiltonianStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// NodeDegree pairs a node with its degree.
type NodeDegree struct {
	Node   NodeID `json:"node"`
	Degree int    `json:"degree"`
}

// Degrees returns the degree of every node in insertion order.
func Degrees(g *Graph) []NodeDegree {
	out := make([]NodeDegree, 0, g.Len())
	for _, n := range g.order {
		out = append(out, NodeDegree{Node: n, Degree: g.Degree(n)})
	}
	return out
}

// OddDegreeCount returns how many nodes have odd degree.
func OddDegreeCount(g *Graph) int {
	odd := 0
	for _, set := range g.adj {
		if len(set)%2 != 0 {
			odd++
		}
	}
	return odd
}

// ClassifyEulerian decides Eulerian status from degree parity alone:
// 0 odd-degree nodes is a circuit, 2 is a path, anything else is neither.
//
// Connectivity is NOT checked. Two disjoint even-degree components are
// reported as EulerianCircuit although no single walk covers both; Analyze
// reports connectivity separately so callers can see the difference.
func ClassifyEulerian(g *Graph) EulerianStatus {
	switch OddDegreeCount(g) {
	case 0:
		return EulerianCircuit
	case 2:
		return EulerianPath
	default:
		return Neither
	}
}

// Components returns the number of connected components, counting isolated
// nodes as components of their own.
func Components(g *Graph) int {
	seen := make(map[NodeID]bool, g.Len())
	count := 0
	for _, start := range g.order {
		if seen[start] {
			continue
		}
		count++
		stack := []NodeID{start}
		seen[start] = true
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for m := range g.adj[n] {
				if !seen[m] {
					seen[m] = true
					stack = append(stack, m)
				}
			}
		}
	}
	return count
}

// EdgesConnected reports whether every node with at least one edge lies in a
// single component, the connectivity an Eulerian walk actually needs.
// A graph without edges is trivially connected.
func EdgesConnected(g *Graph) bool {
	isolated := 0
	for _, set := range g.adj {
		if len(set) == 0 {
			isolated++
		}
	}
	if isolated == g.Len() {
		return true
	}
	return Components(g)-isolated == 1
}

// Result is the full analysis of one graph.
type Result struct {
	Eulerian       EulerianStatus `json:"eulerian"`
	OddDegreeNodes int            `json:"odd_degree_nodes"`
	Degrees        []NodeDegree   `json:"degrees"`

	Hamiltonian     HamiltonianStatus `json:"hamiltonian"`
	HamiltonianPath []NodeID          `json:"hamiltonian_path,omitempty"`

	// Components and EdgesConnected are informational. They do not alter
	// the Eulerian verdict, which is parity-only.
	Components     int  `json:"components"`
	EdgesConnected bool `json:"edges_connected"`
}

// AnalyzeOption configures Analyze.
type AnalyzeOption func(*analyzeOptions)

type analyzeOptions struct {
	maxHamiltonianNodes int
}

// WithHamiltonianLimit skips the exponential Hamiltonian search when the
// graph has more than n nodes. Zero disables the limit.
func WithHamiltonianLimit(n int) AnalyzeOption {
	return func(o *analyzeOptions) { o.maxHamiltonianNodes = n }
}

// Analyze computes degrees, the Eulerian verdict, connectivity, and a
// Hamiltonian path if one exists.
func Analyze(g *Graph, opts ...AnalyzeOption) *Result {
	var o analyzeOptions
	for _, opt := range opts {
		opt(&o)
	}

	res := &Result{
		Eulerian:       ClassifyEulerian(g),
		OddDegreeNodes: OddDegreeCount(g),
		Degrees:        Degrees(g),
		Components:     Components(g),
		EdgesConnected: EdgesConnected(g),
	}

	if o.maxHamiltonianNodes > 0 && g.Len() > o.maxHamiltonianNodes {
		res.Hamiltonian = HamiltonianSkipped
		return res
	}
	if path, ok := FindHamiltonianPath(g); ok {
		res.Hamiltonian = HamiltonianPathExists
		res.HamiltonianPath = path
	}
	return res
}
