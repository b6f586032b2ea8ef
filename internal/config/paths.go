package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath is the environment variable for an explicit config path.
	EnvConfigPath = "GRAPH_MCP_CONFIG"
	// EnvLogLevel overrides log_level from the file.
	EnvLogLevel = "GRAPH_MCP_LOG_LEVEL"
	// ConfigFileName is looked up in the working directory.
	ConfigFileName = "graph-vision.yaml"
)

// FindConfigPath searches for a config file in priority order:
//  1. $GRAPH_MCP_CONFIG (explicit path)
//  2. ./graph-vision.yaml (working directory)
//
// Returns an empty string if no config file is found.
func FindConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		if fileExists(path) {
			return path
		}
	}

	if fileExists(ConfigFileName) {
		if abs, err := filepath.Abs(ConfigFileName); err == nil {
			return abs
		}
		return ConfigFileName
	}

	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
