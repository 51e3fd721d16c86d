package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/scry-dev/scry/internal/mcpserver"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server for LLM tool integration",
		Description: `Starts an MCP server over stdio transport that exposes scry's checks
as tools that LLMs can invoke.

To use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "scry": {
        "command": "scry",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - check_load_event      Page-ready handler registration
  - check_debug_calls     console.log inside a named function
  - check_commented_code  Commented-out code heuristic`,
		Action: func(c *cli.Context) error {
			server := mcpserver.NewServer(version)
			return server.Run(context.Background())
		},
	}
}
