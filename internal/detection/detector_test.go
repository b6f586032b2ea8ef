package detection

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rudra-050/graph-vision-mcp/internal/diagramtest"
	"github.com/Rudra-050/graph-vision-mcp/internal/geometry"
)

type stubLabels struct {
	text    string
	err     error
	regions []image.Rectangle
}

func (s *stubLabels) ReadLabel(_ image.Image, r image.Rectangle) (string, error) {
	s.regions = append(s.regions, r)
	return s.text, s.err
}

func TestDetector_MapsBackToSource(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	img := diagramtest.Blank(200, 100)
	diagramtest.Disc(img, 50, 50, 12, red)

	strat := &stubStrategy{name: "stub", res: &Result{
		Nodes: []Node{{Point: geometry.Pt(25, 25), Radius: 5}, {Point: geometry.Pt(75, 25), Radius: 5}},
		Edges: []Segment{Seg(geometry.Pt(25, 25), geometry.Pt(75, 25))},
	}}
	labels := &stubLabels{text: "A"}

	cfg := DefaultConfig()
	cfg.Preprocess.MaxDimension = 100
	d := NewDetectorWith(cfg, NewPipeline([]Strategy{strat}), labels)

	out, err := d.Detect(img)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 100, 50), strat.seen, "strategies see the downscaled image")
	assert.Equal(t, 0.5, out.Scale)
	assert.Equal(t, 90.0, out.SourceDistance(45))

	require.Len(t, out.Nodes, 2)
	assert.Equal(t, geometry.Pt(50, 50), out.Nodes[0].Point)
	assert.Equal(t, 10, out.Nodes[0].Radius)
	assert.Equal(t, "#ff0000", out.Nodes[0].FillColor)
	assert.Equal(t, "#ffffff", out.Nodes[1].FillColor)
	assert.Equal(t, "A", out.Nodes[0].Label)

	require.Len(t, out.Edges, 1)
	assert.Equal(t, Seg(geometry.Pt(50, 50), geometry.Pt(150, 50)), out.Edges[0])

	require.Len(t, labels.regions, 2)
	assert.Equal(t, image.Rect(40, 40, 61, 61), labels.regions[0])
}

func TestDetector_SubImageOffset(t *testing.T) {
	full := diagramtest.Blank(100, 100)
	sub := full.SubImage(image.Rect(30, 40, 90, 100))

	strat := &stubStrategy{name: "stub", res: complete(geometry.Pt(5, 5), geometry.Pt(20, 5))}
	d := NewDetectorWith(DefaultConfig(), NewPipeline([]Strategy{strat}), nil)

	out, err := d.Detect(sub)
	require.NoError(t, err)
	assert.Equal(t, geometry.Pt(35, 45), out.Nodes[0].Point)
	assert.Equal(t, Seg(geometry.Pt(35, 45), geometry.Pt(50, 45)), out.Edges[0])
	assert.Empty(t, out.Nodes[0].Label)
}

func TestDetector_LabelErrorsAreIgnored(t *testing.T) {
	strat := &stubStrategy{name: "stub", res: complete(geometry.Pt(10, 10), geometry.Pt(30, 10))}
	labels := &stubLabels{err: errors.New("tesseract unavailable")}
	d := NewDetectorWith(DefaultConfig(), NewPipeline([]Strategy{strat}), labels)

	out, err := d.Detect(diagramtest.Blank(40, 20))
	require.NoError(t, err)
	assert.True(t, out.Found())
	for _, n := range out.Nodes {
		assert.Empty(t, n.Label)
		assert.NotEmpty(t, n.FillColor)
	}
}

func TestDetector_NoImage(t *testing.T) {
	d := NewDetector(DefaultConfig(), nil)
	_, err := d.Detect(nil)
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestDetector_DefaultStrategiesOnDrawing(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		nodes  []diagramtest.Node
		edges  [][2]int
		strat  string
		nEdges int
	}{
		{
			name:   "two discs joined by a stroke",
			w:      160,
			h:      60,
			nodes:  []diagramtest.Node{{X: 20, Y: 30, R: 10}, {X: 130, Y: 30, R: 10}},
			edges:  [][2]int{{0, 1}},
			strat:  "hough",
			nEdges: 1,
		},
		{
			name:   "triangle",
			w:      240,
			h:      200,
			nodes:  []diagramtest.Node{{X: 40, Y: 160, R: 12}, {X: 200, Y: 160, R: 12}, {X: 120, Y: 40, R: 12}},
			edges:  [][2]int{{0, 1}, {1, 2}, {2, 0}},
			strat:  "hough",
			nEdges: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := diagramtest.Diagram(tt.w, tt.h, tt.nodes, tt.edges, 1)

			out, err := NewDetector(DefaultConfig(), nil).Detect(img)
			require.NoError(t, err)
			require.True(t, out.Found(), "attempts: %v", out.Attempts)
			assert.Equal(t, tt.strat, out.Strategy, "attempts: %v", out.Attempts)
			assert.Equal(t, 1.0, out.Scale)

			require.Len(t, out.Nodes, len(tt.nodes), "nodes: %+v", out.Nodes)
			for _, want := range tt.nodes {
				found := false
				for _, n := range out.Nodes {
					found = found || near(n.Point, geometry.Pt(want.X, want.Y), 3)
				}
				assert.True(t, found, "no node near (%d,%d): %+v", want.X, want.Y, out.Nodes)
			}

			require.Len(t, out.Edges, tt.nEdges, "edges: %v", out.Edges)
			nodeAt := make(map[geometry.Point]bool, len(out.Nodes))
			for _, n := range out.Nodes {
				nodeAt[n.Point] = true
			}
			for _, e := range out.Edges {
				assert.True(t, nodeAt[e.A] && nodeAt[e.B], "edge %v should join detected nodes", e)
			}
		})
	}
}
