package detection

import (
	"image"
	"math"
	"sort"

	"github.com/Rudra-050/graph-vision-mcp/internal/geometry"
	"github.com/Rudra-050/graph-vision-mcp/internal/imaging"
)

// Circle is a Hough circle candidate in working-image coordinates.
type Circle struct {
	Center geometry.Point `json:"center"`
	Radius int            `json:"radius"`

	// Votes is the accumulator count at the centre.
	Votes int `json:"votes"`
}

// HoughStrategy finds nodes as circles and edges as straight line runs on a
// Canny edge map, then joins each run's ends to the nearest circle centres.
type HoughStrategy struct {
	cfg HoughConfig
}

// NewHoughStrategy returns a Hough strategy.
func NewHoughStrategy(cfg HoughConfig) *HoughStrategy {
	return &HoughStrategy{cfg: cfg}
}

// Name implements Strategy.
func (s *HoughStrategy) Name() string { return "hough" }

// Detect implements Strategy.
func (s *HoughStrategy) Detect(g *image.Gray) (*Result, error) {
	edges := imaging.EdgeMap(g, s.cfg.CannyLow, s.cfg.CannyHigh)
	return s.DetectEdges(edges), nil
}

// DetectEdges runs both transforms on an existing edge map.
func (s *HoughStrategy) DetectEdges(edges *imaging.Mask) *Result {
	res := &Result{}
	circles := DetectCircles(edges, s.cfg.MinRadius, s.cfg.MaxRadius)
	if len(circles) == 0 {
		return res
	}

	centers := make([]geometry.Point, len(circles))
	for i, c := range circles {
		centers[i] = c.Center
		res.Nodes = append(res.Nodes, Node{Point: c.Center, Radius: c.Radius})
	}
	matcher := geometry.NewMatcher(centers, s.cfg.SnapDistance)

	var segs []Segment
	for _, run := range DetectLines(edges, s.cfg.MinLineLength, s.cfg.MaxLines) {
		res.Stats.Candidates++
		a, _ := matcher.Nearest(run.A)
		b, _ := matcher.Nearest(run.B)
		if a < 0 || b < 0 {
			res.Stats.Unmatched++
			continue
		}
		segs = append(segs, Seg(centers[a], centers[b]))
	}
	res.Edges = dedupeSegments(segs, &res.Stats)
	return res
}

// DetectCircles finds circles with radius in [minRadius, maxRadius] using the
// Hough circle transform.
//
// For every radius each edge pixel votes for the centres lying that far away,
// sampled every 10 degrees. A centre is kept when it collects at least 60% of
// 2*radius votes, no accumulator cell within 5 pixels beats it, and at least
// minRingCoverage of the 36 points sampled on its circumference have an edge
// pixel in their 3x3 neighbourhood. Circles are returned strongest first, and
// any circle whose centre lies closer than the mean of the two radii to a
// stronger one is removed.
func DetectCircles(edges *imaging.Mask, minRadius, maxRadius int) []Circle {
	w, h := edges.Width, edges.Height
	if minRadius < 1 {
		minRadius = 1
	}
	if maxRadius < minRadius || edges.Empty() {
		return nil
	}

	var circles []Circle
	acc := make([]int, w*h)
	for radius := minRadius; radius <= maxRadius; radius++ {
		clear(acc)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if !edges.Pix[y*w+x] {
					continue
				}
				for angle := 0; angle < 360; angle += 10 {
					rad := float64(angle) * math.Pi / 180
					cx := x - int(math.Round(float64(radius)*math.Cos(rad)))
					cy := y - int(math.Round(float64(radius)*math.Sin(rad)))
					if cx >= 0 && cx < w && cy >= 0 && cy < h {
						acc[cy*w+cx]++
					}
				}
			}
		}

		threshold := int(float64(2*radius) * 0.6)
		for y := radius; y < h-radius; y++ {
			for x := radius; x < w-radius; x++ {
				votes := acc[y*w+x]
				if votes < threshold || !localMax(acc, w, h, x, y, 5) {
					continue
				}
				if RingCoverage(edges, geometry.Pt(x, y), radius) < minRingCoverage {
					continue
				}
				circles = append(circles, Circle{
					Center: geometry.Pt(x, y),
					Radius: radius,
					Votes:  votes,
				})
			}
		}
	}

	// Strongest first: votes per unit radius, so larger circles are not
	// favoured just for having a longer circumference.
	sort.SliceStable(circles, func(i, j int) bool {
		return circles[i].Votes*circles[j].Radius > circles[j].Votes*circles[i].Radius
	})
	return filterDuplicateCircles(circles)
}

// minRingCoverage is the fraction of circumference samples that must sit on
// edge pixels. The vote threshold alone admits stroke clutter, where every
// edge pixel casts 36 votes.
const minRingCoverage = 0.6

// RingCoverage returns the fraction of 36 points, spaced 10 degrees apart on
// the circle of the given radius around c, that have an edge pixel within one
// pixel.
func RingCoverage(edges *imaging.Mask, c geometry.Point, radius int) float64 {
	hits := 0
	for angle := 0; angle < 360; angle += 10 {
		rad := float64(angle) * math.Pi / 180
		x := c.X + int(math.Round(float64(radius)*math.Cos(rad)))
		y := c.Y + int(math.Round(float64(radius)*math.Sin(rad)))
		if inkNear(edges, x, y) {
			hits++
		}
	}
	return float64(hits) / 36
}

// localMax reports whether no cell within r of (x, y) holds more votes.
func localMax(acc []int, w, h, x, y, r int) bool {
	v := acc[y*w+x]
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			nx, ny := x+dx, y+dy
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				continue
			}
			if acc[ny*w+nx] > v {
				return false
			}
		}
	}
	return true
}

// filterDuplicateCircles keeps the first of any circles whose centres are
// closer than the mean of their radii.
func filterDuplicateCircles(circles []Circle) []Circle {
	filtered := make([]Circle, 0, len(circles))
	for _, c := range circles {
		dup := false
		for _, f := range filtered {
			if geometry.Distance(c.Center, f.Center) < float64(c.Radius+f.Radius)/2 {
				dup = true
				break
			}
		}
		if !dup {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// DetectLines finds straight runs of edge pixels at least minLength long
// using the rho/theta Hough line transform.
//
// Accumulator peaks with at least minLength/2 votes that are maximal in a
// 5x5 neighbourhood are visited strongest first, at most maxLines of them
// (zero means no limit). The edge pixels within 2 pixels of each peak's line
// are ordered along it and split wherever consecutive pixels are more than
// 3 pixels apart, so a line crossing several shapes yields one run per gap.
func DetectLines(edges *imaging.Mask, minLength, maxLines int) []Segment {
	w, h := edges.Width, edges.Height
	if edges.Empty() || minLength < 2 {
		return nil
	}

	const numAngles = 180
	cosT, sinT := trigTable(numAngles)
	maxDist := int(math.Ceil(math.Hypot(float64(w), float64(h))))
	rows := 2*maxDist + 1
	acc := make([]int, rows*numAngles)

	var points []geometry.Point
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !edges.Pix[y*w+x] {
				continue
			}
			points = append(points, geometry.Pt(x, y))
			for t := 0; t < numAngles; t++ {
				rho := float64(x)*cosT[t] + float64(y)*sinT[t]
				acc[(int(math.Round(rho))+maxDist)*numAngles+t]++
			}
		}
	}

	type peak struct {
		rho, theta, votes int
	}
	var peaks []peak
	threshold := minLength / 2
	for r := 0; r < rows; r++ {
		for t := 0; t < numAngles; t++ {
			votes := acc[r*numAngles+t]
			if votes < threshold || !linePeak(acc, rows, numAngles, r, t) {
				continue
			}
			peaks = append(peaks, peak{rho: r - maxDist, theta: t, votes: votes})
		}
	}
	sort.SliceStable(peaks, func(i, j int) bool {
		return peaks[i].votes > peaks[j].votes
	})
	if maxLines > 0 && len(peaks) > maxLines {
		peaks = peaks[:maxLines]
	}

	var runs []Segment
	for _, p := range peaks {
		c, s := cosT[p.theta], sinT[p.theta]
		type onLine struct {
			pt geometry.Point
			t  float64
		}
		var near []onLine
		for _, pt := range points {
			x, y := float64(pt.X), float64(pt.Y)
			if math.Abs(x*c+y*s-float64(p.rho)) < 2 {
				near = append(near, onLine{pt: pt, t: -x*s + y*c})
			}
		}
		sort.Slice(near, func(i, j int) bool { return near[i].t < near[j].t })

		start := 0
		for i := 1; i <= len(near); i++ {
			if i < len(near) && near[i].t-near[i-1].t <= 3 {
				continue
			}
			a, b := near[start].pt, near[i-1].pt
			if geometry.Distance(a, b) >= float64(minLength) {
				runs = append(runs, Seg(a, b))
			}
			start = i
		}
	}
	return runs
}

func trigTable(n int) (cos, sin []float64) {
	cos = make([]float64, n)
	sin = make([]float64, n)
	for t := 0; t < n; t++ {
		a := float64(t) * math.Pi / float64(n)
		cos[t], sin[t] = math.Cos(a), math.Sin(a)
	}
	return cos, sin
}

// linePeak checks the 5x5 neighbourhood in (rho, theta) space. Theta wraps.
func linePeak(acc []int, rows, numAngles, r, t int) bool {
	v := acc[r*numAngles+t]
	for dr := -2; dr <= 2; dr++ {
		nr := r + dr
		if nr < 0 || nr >= rows {
			continue
		}
		for dt := -2; dt <= 2; dt++ {
			nt := (t + dt + numAngles) % numAngles
			if acc[nr*numAngles+nt] > v {
				return false
			}
		}
	}
	return true
}
