// Package mcp provides a Model Context Protocol server for treepack.
// It exposes archive and export operations as MCP tools that any
// MCP-capable agent can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer creates an MCP server with all treepack tools registered.
func NewServer(version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "treepack",
		Version: version,
	}, nil)
	registerTools(server)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for tools that create files but
// never destroy repository state.
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all treepack tools to the server.
func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "status",
		Description: "Show repository state: name, branch, HEAD, submodule count, working copy cleanliness, and whether a snapshot index exists.",
		Annotations: readOnlyAnnotations(),
	}, handleStatus)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "archive",
		Description: "Build a compressed tarball from a treeish. Accepts the synthetic treeishes WC (working copy) and INDEX (staged changes), and can include bound submodule trees.",
		Annotations: writeAnnotations(),
	}, handleArchive)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "export",
		Description: "Extract a treeish into a directory. Supports non-recursive export (top-level files only) and submodule inclusion.",
		Annotations: writeAnnotations(),
	}, handleExport)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "snapshot",
		Description: "Capture the working copy as a tree object via the side index and return its id. With force=true, ignored files are included.",
		Annotations: writeAnnotations(),
	}, handleSnapshot)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "drop_snapshot",
		Description: "Remove the side snapshot index. Safe to call when none exists.",
		Annotations: writeAnnotations(),
	}, handleDropSnapshot)
}
