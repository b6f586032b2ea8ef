package detection

import "github.com/Rudra-050/graph-vision-mcp/internal/imaging"

// ClassifierConfig holds the shape classification thresholds. Areas are in
// square pixels of the working image.
type ClassifierConfig struct {
	NoiseMinArea float64

	NodeMinArea   float64
	NodeMaxArea   float64
	NodeMinAspect float64
	NodeMaxAspect float64

	EdgeMinArea       float64
	EdgeMinElongation float64

	// SimplifyEpsilon is the Douglas-Peucker tolerance as a fraction of the
	// contour perimeter.
	SimplifyEpsilon float64

	// PolygonEdges emits one segment per pair of consecutive simplified
	// vertices instead of a single first-to-last segment, which keeps bent
	// edges in one piece.
	PolygonEdges bool
}

// HoughConfig tunes the Hough strategy.
type HoughConfig struct {
	MinRadius     int
	MaxRadius     int
	MinLineLength int
	MaxLines      int

	// SnapDistance is the furthest, in working-image pixels, a line end may
	// be from a circle centre and still attach to it. Zero attaches to the
	// nearest circle regardless.
	//
	// The nearest-node matcher has no cutoff of its own. This is a discard
	// applied by its callers: the Hough strategy here, and the server, which
	// scales it with Outcome.SourceDistance before snapping detected edge
	// ends onto detected nodes.
	SnapDistance float64

	CannyLow  int
	CannyHigh int
}

// FeatureConfig tunes the blob-and-probe strategy.
type FeatureConfig struct {
	// ErodeRadius must exceed half the stroke width so edges vanish while
	// node blobs survive.
	ErodeRadius int

	// MinNodeArea is the smallest surviving blob, in pixels, taken as a node.
	MinNodeArea int

	// MinCoverage is the fraction of probe samples between two nodes that
	// must land on ink for the pair to be joined.
	MinCoverage float64
}

// Config gathers every tunable of the detection stage.
type Config struct {
	Preprocess imaging.PreprocessOptions
	Binarize   imaging.BinarizeOptions
	Classifier ClassifierConfig
	Hough      HoughConfig
	Feature    FeatureConfig
}

// DefaultConfig returns thresholds that work on clean drawings of a few
// hundred pixels across.
func DefaultConfig() Config {
	return Config{
		Preprocess: imaging.PreprocessOptions{
			MaxDimension: 800,
			BlurSigma:    1.0,
		},
		Binarize: imaging.BinarizeOptions{
			Method: imaging.MethodOtsu,
			Radius: 7,
			Offset: 10,
		},
		Classifier: ClassifierConfig{
			NoiseMinArea:      20,
			NodeMinArea:       50,
			NodeMaxArea:       5000,
			NodeMinAspect:     0.7,
			NodeMaxAspect:     1.3,
			EdgeMinArea:       20,
			EdgeMinElongation: 3,
			SimplifyEpsilon:   0.02,
		},
		Hough: HoughConfig{
			MinRadius:     5,
			MaxRadius:     30,
			MinLineLength: 30,
			MaxLines:      50,
			SnapDistance:  45,
			CannyLow:      50,
			CannyHigh:     150,
		},
		Feature: FeatureConfig{
			ErodeRadius: 2,
			MinNodeArea: 10,
			MinCoverage: 0.9,
		},
	}
}
