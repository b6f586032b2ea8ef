package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Rudra-050/graph-vision-mcp/internal/detection"
	"github.com/Rudra-050/graph-vision-mcp/internal/graph"
	"github.com/Rudra-050/graph-vision-mcp/internal/imaging"
)

// errInvalidArgs marks argument problems, which are reported as -32602
// rather than as tool failures.
var errInvalidArgs = errors.New("invalid arguments")

// Analysis statuses.
const (
	StatusAnalyzed        = "analyzed"
	StatusNoGraphDetected = "no_graph_detected"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "graph_detect", "graph_analyze").
	Name string `json:"name" validate:"required"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Malformed or out-of-range arguments return -32602. Other tool execution
// errors return -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}
	if err := validate.Struct(params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", formatValidationError(err).Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.debugf("tool %s failed: %v", params.Name, err)
		if errors.Is(err, errInvalidArgs) || errors.Is(err, graph.ErrTooFewNodes) {
			return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Decodes and validates its arguments
//  2. Applies config defaults for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate detection/graph/imaging function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Graph Detection and Analysis
	case "graph_detect":
		return s.handleGraphDetect(args)
	case "graph_analyze":
		return s.handleGraphAnalyze(args)
	case "graph_analyze_image":
		return s.handleGraphAnalyzeImage(args)

	// Image Inspection
	case "image_load":
		return s.handleImageLoad(args)
	case "image_preprocess":
		return s.handleImagePreprocess(args)
	case "image_crop":
		return s.handleImageCrop(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// decodeArgs unmarshals and validates tool arguments into v.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidArgs, err)
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidArgs, formatValidationError(err))
	}
	return nil
}

func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err
	}

	e := validationErrs[0]
	field := e.Field()
	switch e.Tag() {
	case "required":
		return fmt.Errorf("%s is required", field)
	case "oneof":
		return fmt.Errorf("%s must be one of [%s]", field, e.Param())
	case "gtfield":
		return fmt.Errorf("%s must be greater than %s", field, strings.ToLower(e.Param()))
	default:
		return fmt.Errorf("%s failed %s=%s", field, e.Tag(), e.Param())
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Graph Handlers ===

type pathArgs struct {
	Path string `json:"path" validate:"required"`
}

func (s *Server) handleGraphDetect(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return s.detector.Detect(img)
}

// AnalysisResult is returned by the graph analysis tools.
type AnalysisResult struct {
	Status string `json:"status"`

	// Reason explains a no_graph_detected status.
	Reason string `json:"reason,omitempty"`

	// Nodes and Edges are the graph after normalisation: duplicates,
	// self-loops and unresolvable endpoints removed, point endpoints
	// snapped onto nodes.
	Nodes []graph.NodeID `json:"nodes"`
	Edges []graph.Edge   `json:"edges"`

	Analysis *graph.Result      `json:"analysis,omitempty"`
	Report   *graph.BuildReport `json:"report,omitempty"`

	// Detection is set by graph_analyze_image.
	Detection *detection.Outcome `json:"detection,omitempty"`
}

type graphAnalyzeArgs struct {
	Nodes        []graph.NodeID    `json:"nodes" validate:"required"`
	Edges        []json.RawMessage `json:"edges" validate:"required"`
	SnapDistance float64           `json:"snap_distance" validate:"gte=0"`
}

func (s *Server) handleGraphAnalyze(args json.RawMessage) (interface{}, error) {
	var a graphAnalyzeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	// A malformed pair becomes the zero edge, which Build drops and reports
	// as malformed instead of failing the whole call.
	edges := make([]graph.Edge, len(a.Edges))
	for i, raw := range a.Edges {
		if err := json.Unmarshal(raw, &edges[i]); err != nil {
			s.debugf("edge %d: %v", i, err)
			edges[i] = graph.Edge{}
		}
	}

	return s.analyze(a.Nodes, edges, a.SnapDistance)
}

type graphAnalyzeImageArgs struct {
	Path         string   `json:"path" validate:"required"`
	SnapDistance *float64 `json:"snap_distance" validate:"omitempty,gte=0"`
}

func (s *Server) handleGraphAnalyzeImage(args json.RawMessage) (interface{}, error) {
	var a graphAnalyzeImageArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	snap := s.cfg.Hough.SnapDistance
	if a.SnapDistance != nil {
		snap = *a.SnapDistance
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	out, err := s.detector.Detect(img)
	if err != nil {
		return nil, err
	}

	if !out.Found() {
		return &AnalysisResult{
			Status:    StatusNoGraphDetected,
			Reason:    "no strategy found both nodes and edges",
			Nodes:     []graph.NodeID{},
			Edges:     []graph.Edge{},
			Detection: out,
		}, nil
	}

	nodes := make([]graph.NodeID, len(out.Nodes))
	for i, n := range out.Nodes {
		nodes[i] = graph.PointOf(n.Point)
	}
	edges := make([]graph.Edge, len(out.Edges))
	for i, e := range out.Edges {
		edges[i] = graph.E(graph.PointOf(e.A), graph.PointOf(e.B))
	}

	// Detected coordinates are in source pixels, the snap distance in
	// working-image pixels.
	res, err := s.analyze(nodes, edges, out.SourceDistance(snap))
	if errors.Is(err, graph.ErrTooFewNodes) {
		return &AnalysisResult{
			Status:    StatusNoGraphDetected,
			Reason:    err.Error(),
			Nodes:     []graph.NodeID{},
			Edges:     []graph.Edge{},
			Detection: out,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	res.Detection = out
	return res, nil
}

func (s *Server) analyze(nodes []graph.NodeID, edges []graph.Edge, snap float64) (*AnalysisResult, error) {
	g, report, err := graph.Build(nodes, edges, graph.WithSnapDistance(snap))
	if err != nil {
		return nil, err
	}

	result := graph.Analyze(g, graph.WithHamiltonianLimit(s.cfg.Analysis.MaxHamiltonianNodes))
	s.debugf("analyzed %d nodes, %d edges: eulerian=%s hamiltonian=%s",
		g.Len(), g.EdgeCount(), result.Eulerian, result.Hamiltonian)

	return &AnalysisResult{
		Status:   StatusAnalyzed,
		Nodes:    g.Nodes(),
		Edges:    g.Edges(),
		Analysis: result,
		Report:   report,
	}, nil
}

// === Image Handlers ===

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

type imagePreprocessArgs struct {
	Path string `json:"path" validate:"required"`
	Mode string `json:"mode" validate:"omitempty,oneof=edges binary"`
}

// PreprocessResult is the working image returned by image_preprocess.
type PreprocessResult struct {
	*imaging.EncodedImage

	Mode string `json:"mode"`

	// Scale is working pixels per source pixel.
	Scale float64 `json:"scale"`

	// ForegroundPixels counts edge or ink pixels.
	ForegroundPixels int `json:"foreground_pixels"`
}

func (s *Server) handleImagePreprocess(args json.RawMessage) (interface{}, error) {
	var a imagePreprocessArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Mode == "" {
		a.Mode = "edges"
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	cfg := s.cfg.Detection()
	prep := imaging.Preprocess(img, cfg.Preprocess)

	var mask *imaging.Mask
	switch a.Mode {
	case "binary":
		mask, err = imaging.Binarize(prep.Gray, cfg.Binarize)
		if err != nil {
			return nil, err
		}
	default:
		mask = imaging.EdgeMap(prep.Gray, cfg.Hough.CannyLow, cfg.Hough.CannyHigh)
	}

	enc, err := imaging.Encode(mask.Gray())
	if err != nil {
		return nil, err
	}
	return &PreprocessResult{
		EncodedImage:     enc,
		Mode:             a.Mode,
		Scale:            prep.Scale,
		ForegroundPixels: mask.Count(),
	}, nil
}

type imageCropArgs struct {
	Path  string  `json:"path" validate:"required"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2" validate:"gtfield=X1"`
	Y2    int     `json:"y2" validate:"gtfield=Y1"`
	Scale float64 `json:"scale" validate:"gte=0,lte=8"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	cropped, err := imaging.Crop(img, image.Rect(a.X1, a.Y1, a.X2, a.Y2), a.Scale)
	if err != nil {
		return nil, err
	}
	return imaging.Encode(cropped)
}
