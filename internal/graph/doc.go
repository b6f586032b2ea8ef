// Package graph builds a deduplicated undirected adjacency model from noisy
// node and edge observations and analyses it for Eulerian and Hamiltonian
// properties.
//
// # Node Identity
//
// A NodeID is either a Label (manual or case input) or a Point (an integer
// pixel coordinate from image detection). Identities compare by value and are
// used directly as map keys. The model itself treats identity as exact; fuzzy
// coordinate matching happens in Build, which snaps point endpoints onto the
// nearest point node with a geometry.Matcher.
//
// # Building
//
// Build never fails because of a bad edge. Unknown labels, kind mismatches,
// self-loops and repeated pairs are dropped and listed in a BuildReport with a
// DropReason each. The only refusal is ErrTooFewNodes.
//
// # Analysis
//
// ClassifyEulerian looks at degree parity only and does not check
// connectivity; see Result.EdgesConnected for that. FindHamiltonianPath is
// exhaustive backtracking and is exponential on large dense graphs.
//
// The model is rebuilt for every analysis and holds no state between calls.
package graph
