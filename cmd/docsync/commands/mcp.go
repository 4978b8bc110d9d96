package commands

import (
	"github.com/spf13/cobra"

	"github.com/docsync/docsync/internal/mcpserver"
)

func newMCPCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start an MCP server over stdio",
		Long: `Start a Model Context Protocol server on stdin/stdout. It exposes the
validate, convert, inspect, reduce and list_operations tools. Settings come
from DOCSYNC_MCP_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.logger.Debug("starting MCP server")
			return failed(mcpserver.Run(cmd.Context()), "MCP server stopped")
		},
	}
}
