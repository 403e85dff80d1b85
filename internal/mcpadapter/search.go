package mcpadapter

import (
	"context"

	"github.com/Midoriya12/calsnap/internal/search"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ServerName and ServerVersion identify the tool server to MCP clients.
const (
	ServerName    = "calsnap-recipes"
	ServerVersion = "1.0.0"
)

// NewSearchRecipesHandler returns a tool handler that runs the recipe search
// tool. Pass the returned function to mcp.AddTool.
func NewSearchRecipesHandler(tool *search.Tool) func(context.Context, *mcp.CallToolRequest, search.Input) (*mcp.CallToolResult, search.Result, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input search.Input) (*mcp.CallToolResult, search.Result, error) {
		return nil, tool.Search(ctx, input.SearchTerm), nil
	}
}

// NewServer creates an MCP server exposing the recipe search tool.
func NewServer(tool *search.Tool) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		}, nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        search.ToolName,
		Description: search.ToolDescription,
	}, NewSearchRecipesHandler(tool))
	return server
}
