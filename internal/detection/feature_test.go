package detection

import (
	"testing"

	"github.com/Rudra-050/graph-vision-mcp/internal/diagramtest"
	"github.com/Rudra-050/graph-vision-mcp/internal/geometry"
	"github.com/Rudra-050/graph-vision-mcp/internal/imaging"
)

func featureDetect(t *testing.T, nodes []diagramtest.Node, edges [][2]int, width int) *Result {
	t.Helper()
	cfg := DefaultConfig()
	s := NewFeatureStrategy(cfg.Binarize, cfg.Feature)
	res, err := s.Detect(imaging.GrayOf(diagramtest.Diagram(width, 60, nodes, edges, 1)))
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	return res
}

func near(a, b geometry.Point, tol int) bool {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx >= -tol && dx <= tol && dy >= -tol && dy <= tol
}

func TestFeatureStrategy_TouchingStroke(t *testing.T) {
	nodes := []diagramtest.Node{{X: 20, Y: 30, R: 10}, {X: 120, Y: 30, R: 10}}
	res := featureDetect(t, nodes, [][2]int{{0, 1}}, 150)

	if len(res.Nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(res.Nodes))
	}
	for i, n := range res.Nodes {
		want := geometry.Pt(nodes[i].X, nodes[i].Y)
		if !near(n.Point, want, 1) {
			t.Errorf("node %d: got %v, want near %v", i, n.Point, want)
		}
		if n.Radius < 7 || n.Radius > 12 {
			t.Errorf("node %d radius: got %d, want about 10", i, n.Radius)
		}
	}

	if len(res.Edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(res.Edges))
	}
	if e := res.Edges[0]; e.A != res.Nodes[0].Point || e.B != res.Nodes[1].Point {
		t.Errorf("edge should join the two node centres, got %v", e)
	}
	if res.Stats.Candidates != 1 {
		t.Errorf("candidates: got %d, want 1", res.Stats.Candidates)
	}
}

func TestFeatureStrategy_NoStroke(t *testing.T) {
	nodes := []diagramtest.Node{{X: 20, Y: 30, R: 10}, {X: 120, Y: 30, R: 10}}
	res := featureDetect(t, nodes, nil, 150)

	if len(res.Nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(res.Nodes))
	}
	if len(res.Edges) != 0 || res.Found() {
		t.Errorf("unconnected nodes: got edges %v", res.Edges)
	}
}

func TestFeatureStrategy_ThirdNodeBlocks(t *testing.T) {
	nodes := []diagramtest.Node{{X: 20, Y: 30, R: 10}, {X: 80, Y: 30, R: 10}, {X: 140, Y: 30, R: 10}}
	res := featureDetect(t, nodes, [][2]int{{0, 1}, {1, 2}}, 160)

	if len(res.Nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(res.Nodes))
	}
	if len(res.Edges) != 2 {
		t.Fatalf("got %d edges, want 2 (the outer pair runs through the middle node)", len(res.Edges))
	}
	for _, e := range res.Edges {
		if e.key() == Seg(res.Nodes[0].Point, res.Nodes[2].Point).key() {
			t.Error("outer nodes must not be joined directly")
		}
	}
	if res.Stats.Candidates != 3 {
		t.Errorf("candidates: got %d, want 3", res.Stats.Candidates)
	}
}
