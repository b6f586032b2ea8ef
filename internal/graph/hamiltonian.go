package graph

// FindHamiltonianPath searches for a simple path that visits every node.
//
// The search is exhaustive depth-first backtracking. Every node is tried as a
// start, in insertion order, and neighbours are tried in NodeID.Less order, so
// the returned path is reproducible. The first complete path wins. Failure is
// reported only after every start has been exhausted.
//
// Running time is exponential in the worst case. No memoisation is done: a
// search state depends on the whole visited set, not just the current node.
func FindHamiltonianPath(g *Graph) ([]NodeID, bool) {
	n := g.Len()
	if n == 0 {
		return nil, false
	}

	// Sorted neighbour lists are computed once and shared by every attempt.
	neighbors := make(map[NodeID][]NodeID, n)
	for _, v := range g.order {
		neighbors[v] = g.Neighbors(v)
	}

	for _, start := range g.order {
		s := &pathSearch{
			neighbors: neighbors,
			total:     n,
			path:      make([]NodeID, 0, n),
			visited:   make(map[NodeID]bool, n),
		}
		if s.from(start) {
			return s.path, true
		}
	}
	return nil, false
}

// pathSearch owns the path stack and visited set for one start node.
type pathSearch struct {
	neighbors map[NodeID][]NodeID
	total     int
	path      []NodeID
	visited   map[NodeID]bool
}

func (s *pathSearch) from(v NodeID) bool {
	s.path = append(s.path, v)
	s.visited[v] = true
	if len(s.path) == s.total {
		return true
	}
	for _, next := range s.neighbors[v] {
		if s.visited[next] {
			continue
		}
		if s.from(next) {
			return true
		}
	}
	s.path = s.path[:len(s.path)-1]
	delete(s.visited, v)
	return false
}
