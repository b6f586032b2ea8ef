// Package server implements the MCP (Model Context Protocol) server for graph
// detection and analysis.
//
// This package provides a JSON-RPC 2.0 server that turns drawings of
// node-link diagrams into graphs and answers Eulerian and Hamiltonian
// questions about them, for graphs read from an image or supplied directly.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Graph Detection and Analysis:
//   - graph_detect: Find nodes and edges in an image
//   - graph_analyze: Build and analyze a graph from labels or points
//   - graph_analyze_image: Detect and analyze in one call
//
// Image Inspection:
//   - image_load: Load image and get metadata
//   - image_preprocess: Show the edge map or ink mask the detectors see
//   - image_crop: Extract rectangular region
//
// # Analysis Results
//
// graph_analyze and graph_analyze_image return the normalised graph (after
// duplicate, self-loop and unknown-endpoint removal), a build report counting
// every dropped edge by reason, and the analysis: the Eulerian verdict by
// degree parity, the degree sequence, connectivity figures, and a Hamiltonian
// path when one exists. The Hamiltonian search is reported as "skipped" for
// graphs above analysis.max_hamiltonian_nodes.
//
// An image in which no strategy finds a graph is not an error:
// graph_analyze_image answers with status "no_graph_detected" and the
// per-strategy attempts.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32602 for malformed or out-of-range arguments, including fewer
//     than two distinct nodes; -32000 for other tool failures such as an
//     unreadable image
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	cfg, _, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := server.New(cfg)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
