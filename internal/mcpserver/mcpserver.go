// Package mcpserver exposes the scry checks as MCP tools over stdio,
// for editor and assistant integration.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server and registers all scry check tools.
type Server struct {
	server *mcp.Server
}

// NewServer creates a new MCP server with all scry tools registered.
func NewServer(version string) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "scry",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server}
	s.registerTools()
	s.registerPrompts()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// registerTools adds all scry check tools to the server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "check_load_event",
		Description: describeLoadEvent(),
	}, handleCheckLoadEvent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "check_debug_calls",
		Description: describeDebugCalls(),
	}, handleCheckDebugCalls)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "check_commented_code",
		Description: describeCommentedCode(),
	}, handleCheckCommentedCode)
}
