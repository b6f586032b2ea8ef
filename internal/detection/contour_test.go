package detection

import (
	"testing"

	"github.com/Rudra-050/graph-vision-mcp/internal/diagramtest"
	"github.com/Rudra-050/graph-vision-mcp/internal/geometry"
	"github.com/Rudra-050/graph-vision-mcp/internal/imaging"
)

func maskOf(width, height int, pts ...geometry.Point) *imaging.Mask {
	m := imaging.NewMask(width, height)
	for _, p := range pts {
		m.Set(p.X, p.Y, true)
	}
	return m
}

func TestComponents(t *testing.T) {
	m := maskOf(10, 10,
		// Diagonal neighbours join under 8-connectivity.
		geometry.Pt(1, 1), geometry.Pt(2, 2), geometry.Pt(3, 3),
		// A separate pair.
		geometry.Pt(7, 1), geometry.Pt(8, 1),
		// A lone speck.
		geometry.Pt(5, 8),
	)

	comps, labels := Components(m, 2)
	if len(comps) != 2 {
		t.Fatalf("got %d components, want 2", len(comps))
	}
	if comps[0].Area() != 3 || comps[1].Area() != 2 {
		t.Errorf("areas: got %d and %d, want 3 and 2", comps[0].Area(), comps[1].Area())
	}
	if comps[0].Pixels[0] != geometry.Pt(1, 1) {
		t.Errorf("first pixel: got %v, want (1,1)", comps[0].Pixels[0])
	}
	if got := comps[0].Bounds; got.Min.X != 1 || got.Min.Y != 1 || got.Max.X != 4 || got.Max.Y != 4 {
		t.Errorf("bounds: got %v", got)
	}
	if got := comps[0].Center(); got != geometry.Pt(2, 2) {
		t.Errorf("centre: got %v, want (2,2)", got)
	}

	// The speck is filtered out but still labelled.
	if labels[8*10+5] == 0 {
		t.Error("filtered component should keep its label")
	}
	if labels[0] != 0 {
		t.Error("background should be labelled 0")
	}
	if labels[1*10+1] != labels[3*10+3] {
		t.Error("diagonal pixels should share a label")
	}
}

func TestTraceOutline_Square(t *testing.T) {
	var pts []geometry.Point
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			pts = append(pts, geometry.Pt(x, y))
		}
	}
	m := maskOf(5, 5, pts...)
	_, labels := Components(m, 1)

	got := TraceOutline(labels, 5, 5, 1, geometry.Pt(1, 1))
	want := []geometry.Point{
		{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 2},
		{X: 3, Y: 3}, {X: 2, Y: 3}, {X: 1, Y: 3}, {X: 1, Y: 2},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("vertex %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTraceOutline_ThinLineDoublesBack(t *testing.T) {
	m := maskOf(5, 3, geometry.Pt(1, 1), geometry.Pt(2, 1), geometry.Pt(3, 1))
	_, labels := Components(m, 1)

	got := TraceOutline(labels, 5, 3, 1, geometry.Pt(1, 1))
	want := []geometry.Point{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}, {X: 2, Y: 1}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("vertex %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTraceOutline_SinglePixel(t *testing.T) {
	m := maskOf(3, 3, geometry.Pt(1, 1))
	_, labels := Components(m, 1)
	if got := TraceOutline(labels, 3, 3, 1, geometry.Pt(1, 1)); len(got) != 1 {
		t.Errorf("got %v, want just the start", got)
	}
}

func TestContourStrategy_SeparatedShapes(t *testing.T) {
	img := diagramtest.Blank(140, 80)
	diagramtest.Disc(img, 30, 40, 10, diagramtest.Ink)
	diagramtest.Rect(img, 60, 39, 111, 42, diagramtest.Ink)
	diagramtest.Rect(img, 5, 5, 6, 6, diagramtest.Ink)

	s := NewContourStrategy(DefaultConfig().Binarize, DefaultConfig().Classifier)
	res, err := s.Detect(imaging.GrayOf(img))
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	if len(res.Nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(res.Nodes))
	}
	if got := res.Nodes[0]; got.Point != geometry.Pt(30, 40) || got.Radius != 11 {
		t.Errorf("node: got %+v, want (30,40) radius 11", got)
	}

	if len(res.Edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(res.Edges))
	}
	e := res.Edges[0]
	if e.key() != Seg(geometry.Pt(60, 39), geometry.Pt(110, 41)).key() {
		t.Errorf("edge: got %v, want the bar's opposite corners", e)
	}

	if res.Stats.Candidates != 3 || res.Stats.Noise != 1 {
		t.Errorf("stats: got %+v", res.Stats)
	}
	if res.Found() != true {
		t.Error("Found should be true")
	}
}

func TestContourStrategy_BlankImage(t *testing.T) {
	s := NewContourStrategy(DefaultConfig().Binarize, DefaultConfig().Classifier)
	res, err := s.Detect(imaging.GrayOf(diagramtest.Blank(50, 50)))
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if res.Found() || len(res.Nodes) != 0 || res.Stats.Candidates != 0 {
		t.Errorf("blank image: got %+v", res)
	}
}
