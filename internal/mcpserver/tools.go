package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	toon "github.com/toon-format/toon-go"

	"github.com/scry-dev/scry/internal/output"
	"github.com/scry-dev/scry/internal/scanner"
	"github.com/scry-dev/scry/pkg/analyzer/commented"
	"github.com/scry-dev/scry/pkg/analyzer/debugcall"
	"github.com/scry-dev/scry/pkg/analyzer/loadevent"
	"github.com/scry-dev/scry/pkg/config"
)

// CheckInput is the base input for all check tools.
type CheckInput struct {
	Paths  []string `json:"paths,omitempty" jsonschema:"Paths to check. Defaults to current directory if empty."`
	Format string   `json:"format,omitempty" jsonschema:"Output format: toon (default), json, or markdown."`
}

// LoadEventInput adds load-event check options.
type LoadEventInput struct {
	CheckInput
	Events []string `json:"events,omitempty" jsonschema:"Event names treated as page-ready signals. Defaults to load and DOMContentLoaded."`
}

// DebugCallsInput adds debug-statement check options.
type DebugCallsInput struct {
	CheckInput
	Target string `json:"target" jsonschema:"Function name to search for console.log calls in."`
}

// CommentedCodeInput adds commented-code check options.
type CommentedCodeInput struct {
	CheckInput
	Annotations []string `json:"annotations,omitempty" jsonschema:"Comment markers that are never flagged (e.g. TODO). Defaults to TODO, FIXME, NOTE, HACK."`
}

// Helper functions

func getPaths(input CheckInput) []string {
	if len(input.Paths) == 0 {
		return []string{"."}
	}
	return input.Paths
}

func getFormat(input CheckInput) output.Format {
	switch input.Format {
	case "json":
		return output.FormatJSON
	case "markdown", "md":
		return output.FormatMarkdown
	default:
		return output.FormatTOON
	}
}

func formatOutput(data any, format output.Format) (string, error) {
	if format == output.FormatJSON {
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
	out, err := toon.Marshal(data, toon.WithIndent(2))
	if err != nil {
		return "", err
	}
	if format == output.FormatMarkdown {
		return "```\n" + string(out) + "\n```", nil
	}
	return string(out), nil
}

func toolResult(data any, format output.Format) (*mcp.CallToolResult, any, error) {
	text, err := formatOutput(data, format)
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

func resolveFiles(paths []string) ([]string, error) {
	s := scanner.New(config.LoadOrDefault())
	return s.Resolve(paths)
}

// Tool handlers

func handleCheckLoadEvent(ctx context.Context, req *mcp.CallToolRequest, input LoadEventInput) (*mcp.CallToolResult, any, error) {
	files, err := resolveFiles(getPaths(input.CheckInput))
	if err != nil {
		return toolError(err.Error())
	}
	if len(files) == 0 {
		return toolError("no source files found")
	}

	a := loadevent.New(loadevent.WithEvents(input.Events))
	defer a.Close()

	result, err := a.Analyze(ctx, files)
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(result, getFormat(input.CheckInput))
}

func handleCheckDebugCalls(ctx context.Context, req *mcp.CallToolRequest, input DebugCallsInput) (*mcp.CallToolResult, any, error) {
	if input.Target == "" {
		return toolError("target function name is required")
	}

	files, err := resolveFiles(getPaths(input.CheckInput))
	if err != nil {
		return toolError(err.Error())
	}
	if len(files) == 0 {
		return toolError("no source files found")
	}

	a := debugcall.New(input.Target)
	defer a.Close()

	result, err := a.Analyze(ctx, files)
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(result, getFormat(input.CheckInput))
}

func handleCheckCommentedCode(ctx context.Context, req *mcp.CallToolRequest, input CommentedCodeInput) (*mcp.CallToolResult, any, error) {
	files, err := resolveFiles(getPaths(input.CheckInput))
	if err != nil {
		return toolError(err.Error())
	}
	if len(files) == 0 {
		return toolError("no source files found")
	}

	a := commented.New(commented.WithAnnotations(input.Annotations))
	defer a.Close()

	result, err := a.Analyze(ctx, files)
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(result, getFormat(input.CheckInput))
}
