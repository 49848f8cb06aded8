// Package mcp exposes the devstandards MCP server for embedding.
package mcp

import (
	infra "github.com/felixgeelhaar/devstandards/internal/infrastructure/mcp"
	"go.uber.org/zap"
)

// Server exposes the MCP server implementation from the infrastructure layer.
type Server = infra.Server

// NewServer constructs an MCP server from the given config path. An empty
// path falls back to the DEVSTANDARDS_CONFIG environment variable, then to
// ./devstandards.yaml.
func NewServer(configPath string, logger *zap.Logger) (*Server, error) {
	return infra.NewServer(configPath, logger)
}
