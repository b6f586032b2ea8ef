package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the image file (PNG, JPEG or GIF)",
}

var nodeIdentitySchema = map[string]interface{}{
	"oneOf": []interface{}{
		map[string]interface{}{"type": "string", "description": "Node label"},
		map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"x": map[string]interface{}{"type": "integer"},
				"y": map[string]interface{}{"type": "integer"},
			},
			"required": []string{"x", "y"},
		},
	},
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Graph Detection and Analysis
		{
			Name:        "graph_detect",
			Description: "Detect the nodes and edges of a node-link diagram in an image. Tries contour, Hough and feature strategies in order and reports every attempt. Coordinates are source image pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "graph_analyze",
			Description: "Build an undirected graph from node identities and edge pairs, then classify it as Eulerian circuit, Eulerian path or neither by degree parity, and search for a Hamiltonian path. Self-loops, duplicates and edges naming unknown nodes are dropped and reported.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"nodes": map[string]interface{}{
						"type":        "array",
						"items":       nodeIdentitySchema,
						"description": "Node identities: labels or {x,y} points. At least 2 distinct nodes are required.",
					},
					"edges": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type":     "array",
							"items":    nodeIdentitySchema,
							"minItems": 2,
							"maxItems": 2,
						},
						"description": "Edge endpoint pairs, e.g. [[\"A\",\"B\"],[\"B\",\"C\"]]",
					},
					"snap_distance": map[string]interface{}{
						"type":        "number",
						"description": "Maximum distance for a point endpoint to attach to a point node. 0 means unlimited. Default 0",
					},
				},
				"required": []string{"nodes", "edges"},
			},
		},
		{
			Name:        "graph_analyze_image",
			Description: "Detect a graph in an image and analyze it in one step. Returns status \"no_graph_detected\" instead of an error when no strategy finds a graph.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"snap_distance": map[string]interface{}{
						"type":        "number",
						"description": "Maximum distance from an edge end to the node it attaches to, in working-image pixels (after downscaling to preprocess.max_dimension), so the result does not depend on the image resolution. 0 means unlimited. Defaults to hough.snap_distance from the config",
					},
				},
				"required": []string{"path"},
			},
		},

		// Image Inspection
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and file size. The decoded image is cached for subsequent calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_preprocess",
			Description: "Return the working image the detectors see as base64 PNG: either the Canny edge map or the binarized ink mask. Use it to understand why detection failed.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"edges", "binary"},
						"description": "edges (Canny, used by the Hough strategy) or binary (ink mask, used by the contour and feature strategies). Default edges",
						"default":     "edges",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_crop",
			Description: "Crop a rectangular region from an image and return it as base64-encoded PNG. Use this to zoom into a node or edge that needs closer examination.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"x2": map[string]interface{}{
						"type":        "integer",
						"description": "Right edge X coordinate (exclusive)",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom edge Y coordinate (exclusive)",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
