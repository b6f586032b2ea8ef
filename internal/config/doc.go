// Package config loads the server's detection and analysis tunables.
//
// Config file locations (priority order):
//  1. $GRAPH_MCP_CONFIG
//  2. ./graph-vision.yaml
//
// Without a file the built-in defaults apply. Keys absent from a file keep
// their defaults, so a file only needs the values it changes:
//
//	hough:
//	  max_radius: 40
//	analysis:
//	  max_hamiltonian_nodes: 12
//
// GRAPH_MCP_LOG_LEVEL overrides log_level. Every load is validated; inverted
// ranges such as hough.min_radius > hough.max_radius are rejected with
// ErrInvalid.
package config
