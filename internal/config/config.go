package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/Rudra-050/graph-vision-mcp/internal/detection"
	"github.com/Rudra-050/graph-vision-mcp/internal/imaging"
)

// ErrInvalid wraps every validation failure returned by Validate.
var ErrInvalid = errors.New("config: invalid")

// Config is the full set of tunables, as read from YAML.
type Config struct {
	Classifier ClassifierConfig `yaml:"classifier"`
	Hough      HoughConfig      `yaml:"hough"`
	Feature    FeatureConfig    `yaml:"feature"`
	Binarize   BinarizeConfig   `yaml:"binarize"`
	Preprocess PreprocessConfig `yaml:"preprocess"`
	Analysis   AnalysisConfig   `yaml:"analysis"`
	OCR        OCRConfig        `yaml:"ocr"`

	// LogLevel is "debug" or "info". GRAPH_MCP_LOG_LEVEL overrides it.
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info"`
}

// ClassifierConfig holds the contour strategy's shape thresholds.
type ClassifierConfig struct {
	NoiseMinArea      float64 `yaml:"noise_min_area" validate:"gte=0"`
	NodeMinArea       float64 `yaml:"node_min_area" validate:"gt=0"`
	NodeMaxArea       float64 `yaml:"node_max_area" validate:"gtefield=NodeMinArea"`
	NodeMinAspect     float64 `yaml:"node_min_aspect" validate:"gt=0"`
	NodeMaxAspect     float64 `yaml:"node_max_aspect" validate:"gtefield=NodeMinAspect"`
	EdgeMinArea       float64 `yaml:"edge_min_area" validate:"gte=0"`
	EdgeMinElongation float64 `yaml:"edge_min_elongation" validate:"gte=1"`
	SimplifyEpsilon   float64 `yaml:"simplify_epsilon" validate:"gte=0,lt=1"`
	PolygonEdges      bool    `yaml:"polygon_edges"`
}

// HoughConfig holds the circle and line transform parameters. Lengths are in
// working-image pixels, after preprocess.max_dimension downscaling.
type HoughConfig struct {
	MinRadius     int `yaml:"min_radius" validate:"min=1"`
	MaxRadius     int `yaml:"max_radius" validate:"gtefield=MinRadius"`
	MinLineLength int `yaml:"min_line_length" validate:"min=1"`
	MaxLines      int `yaml:"max_lines" validate:"min=0"`

	// SnapDistance is also the default cutoff graph_analyze_image applies
	// when snapping detected edge ends onto detected nodes. It is a discard
	// made by the caller, not matcher behaviour: ends beyond it are
	// reported as unmatched. Zero removes the cutoff.
	SnapDistance float64 `yaml:"snap_distance" validate:"gte=0"`
}

// FeatureConfig holds the blob-and-probe strategy parameters.
type FeatureConfig struct {
	ErodeRadius int     `yaml:"erode_radius" validate:"min=1"`
	MinNodeArea int     `yaml:"min_node_area" validate:"min=1"`
	MinCoverage float64 `yaml:"min_coverage" validate:"gt=0,lte=1"`
}

// BinarizeConfig selects the ink/background split.
type BinarizeConfig struct {
	Method         string `yaml:"method" validate:"oneof=otsu adaptive"`
	AdaptiveRadius int    `yaml:"adaptive_radius" validate:"min=1"`
	AdaptiveOffset int    `yaml:"adaptive_offset" validate:"min=0"`
}

// PreprocessConfig controls the working image and its edge map.
type PreprocessConfig struct {
	MaxDimension int     `yaml:"max_dimension" validate:"min=0"`
	BlurSigma    float64 `yaml:"blur_sigma" validate:"gte=0"`
	CannyLow     int     `yaml:"canny_low" validate:"min=0"`
	CannyHigh    int     `yaml:"canny_high" validate:"gtefield=CannyLow"`
}

// AnalysisConfig guards the graph analysis.
type AnalysisConfig struct {
	// MaxHamiltonianNodes skips the path search on larger graphs. Zero
	// disables the guard.
	MaxHamiltonianNodes int `yaml:"max_hamiltonian_nodes" validate:"min=0"`
}

// OCRConfig controls node label reading.
type OCRConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Language  string  `yaml:"language" validate:"required_if=Enabled true"`
	Whitelist string  `yaml:"whitelist"`
	Scale     float64 `yaml:"scale" validate:"omitempty,min=1"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	d := detection.DefaultConfig()
	return &Config{
		Classifier: ClassifierConfig{
			NoiseMinArea:      d.Classifier.NoiseMinArea,
			NodeMinArea:       d.Classifier.NodeMinArea,
			NodeMaxArea:       d.Classifier.NodeMaxArea,
			NodeMinAspect:     d.Classifier.NodeMinAspect,
			NodeMaxAspect:     d.Classifier.NodeMaxAspect,
			EdgeMinArea:       d.Classifier.EdgeMinArea,
			EdgeMinElongation: d.Classifier.EdgeMinElongation,
			SimplifyEpsilon:   d.Classifier.SimplifyEpsilon,
			PolygonEdges:      d.Classifier.PolygonEdges,
		},
		Hough: HoughConfig{
			MinRadius:     d.Hough.MinRadius,
			MaxRadius:     d.Hough.MaxRadius,
			MinLineLength: d.Hough.MinLineLength,
			MaxLines:      d.Hough.MaxLines,
			SnapDistance:  d.Hough.SnapDistance,
		},
		Feature: FeatureConfig{
			ErodeRadius: d.Feature.ErodeRadius,
			MinNodeArea: d.Feature.MinNodeArea,
			MinCoverage: d.Feature.MinCoverage,
		},
		Binarize: BinarizeConfig{
			Method:         string(d.Binarize.Method),
			AdaptiveRadius: d.Binarize.Radius,
			AdaptiveOffset: d.Binarize.Offset,
		},
		Preprocess: PreprocessConfig{
			MaxDimension: d.Preprocess.MaxDimension,
			BlurSigma:    d.Preprocess.BlurSigma,
			CannyLow:     d.Hough.CannyLow,
			CannyHigh:    d.Hough.CannyHigh,
		},
		Analysis: AnalysisConfig{MaxHamiltonianNodes: 16},
		OCR:      OCRConfig{Language: "eng", Scale: 3},
		LogLevel: "info",
	}
}

// Load finds and loads the config file, or returns defaults if none is
// found. The second return value is the path that was read, if any.
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		cfg := DefaultConfig()
		cfg.applyEnv()
		return cfg, "", cfg.Validate()
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path. Keys missing from the file
// keep their defaults.
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func (c *Config) applyEnv() {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.LogLevel = strings.ToLower(level)
	}
}

// Debug reports whether debug logging is on.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

// Validate rejects out-of-range and inverted values. The error names the
// first offending key by its YAML path, e.g. "hough.max_radius".
func (c *Config) Validate() error {
	return formatValidationError(validate.Struct(c))
}

func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	for _, e := range validationErrs {
		field := strings.TrimPrefix(e.Namespace(), "Config.")
		param := e.Param()

		switch e.Tag() {
		case "required", "required_if":
			return fmt.Errorf("%w: %s is required", ErrInvalid, field)
		case "min", "gte":
			return fmt.Errorf("%w: %s must be at least %s", ErrInvalid, field, param)
		case "gt":
			return fmt.Errorf("%w: %s must be greater than %s", ErrInvalid, field, param)
		case "lt", "lte":
			return fmt.Errorf("%w: %s must not exceed %s", ErrInvalid, field, param)
		case "gtefield":
			return fmt.Errorf("%w: %s must not be less than %s", ErrInvalid, field, param)
		case "oneof":
			return fmt.Errorf("%w: %s must be one of [%s], got %v", ErrInvalid, field, param, e.Value())
		default:
			return fmt.Errorf("%w: %s failed %s", ErrInvalid, field, e.Tag())
		}
	}
	return fmt.Errorf("%w: %v", ErrInvalid, err)
}

// Detection converts the file layout into the detection package's settings.
func (c *Config) Detection() detection.Config {
	return detection.Config{
		Preprocess: imaging.PreprocessOptions{
			MaxDimension: c.Preprocess.MaxDimension,
			BlurSigma:    c.Preprocess.BlurSigma,
		},
		Binarize: imaging.BinarizeOptions{
			Method: imaging.BinarizeMethod(c.Binarize.Method),
			Radius: c.Binarize.AdaptiveRadius,
			Offset: c.Binarize.AdaptiveOffset,
		},
		Classifier: detection.ClassifierConfig{
			NoiseMinArea:      c.Classifier.NoiseMinArea,
			NodeMinArea:       c.Classifier.NodeMinArea,
			NodeMaxArea:       c.Classifier.NodeMaxArea,
			NodeMinAspect:     c.Classifier.NodeMinAspect,
			NodeMaxAspect:     c.Classifier.NodeMaxAspect,
			EdgeMinArea:       c.Classifier.EdgeMinArea,
			EdgeMinElongation: c.Classifier.EdgeMinElongation,
			SimplifyEpsilon:   c.Classifier.SimplifyEpsilon,
			PolygonEdges:      c.Classifier.PolygonEdges,
		},
		Hough: detection.HoughConfig{
			MinRadius:     c.Hough.MinRadius,
			MaxRadius:     c.Hough.MaxRadius,
			MinLineLength: c.Hough.MinLineLength,
			MaxLines:      c.Hough.MaxLines,
			SnapDistance:  c.Hough.SnapDistance,
			CannyLow:      c.Preprocess.CannyLow,
			CannyHigh:     c.Preprocess.CannyHigh,
		},
		Feature: detection.FeatureConfig{
			ErodeRadius: c.Feature.ErodeRadius,
			MinNodeArea: c.Feature.MinNodeArea,
			MinCoverage: c.Feature.MinCoverage,
		},
	}
}
