// Package main provides the entry point for the treepack CLI.
package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	treepackmcp "github.com/treepack/treepack/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run treepack as a Model Context Protocol (MCP) server over stdio.

This exposes treepack operations as MCP tools that any MCP-capable
agent environment can use.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "treepack": {
        "command": "treepack",
        "args": ["serve"]
      }
    }
  }

Available tools: status, archive, export, snapshot, drop_snapshot`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server := treepackmcp.NewServer(buildVersion())
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
