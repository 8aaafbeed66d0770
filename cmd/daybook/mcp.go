package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/daybook-app/daybook/pkg/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Daybook MCP server (stdio)",
	Long: `Start a Model Context Protocol (MCP) server that exposes journal
entries, tags, and search functionality as MCP tools via STDIO.

The --db flag is optional. If not provided, a system-specific default location will be used:
- Windows: %USERPROFILE%\AppData\Roaming\daybook\daybook.db
- macOS: ~/Library/Application Support/daybook/daybook.db
- Linux: ~/.local/share/daybook/daybook.db

Example:
  daybook mcp
  daybook mcp --db daybook.db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := mcp.NewDaybookMCPServer(dbPath, walMode, syncMode)
		if err != nil {
			return err
		}

		db := srv.DB()
		s := srv.MCPRawServer()

		mcp.RegisterPingTool(s)
		mcp.RegisterCreateEntryTool(s, db)
		mcp.RegisterListEntriesTool(s, db)
		mcp.RegisterGetEntryTool(s, db)
		mcp.RegisterUpdateEntryTool(s, db)
		mcp.RegisterDeleteEntryTool(s, db)
		mcp.RegisterListTagsTool(s, db)
		mcp.RegisterSearchEntriesTool(s, db)

		// Log to stderr so we don't contaminate the JSON-RPC stream on stdout.
		fmt.Fprintf(os.Stderr, "Daybook MCP server started. DB: %s (WAL: %t, Sync: %s)\n", srv.DbPath, walMode, syncMode)
		fmt.Fprintln(os.Stderr, "Available tools: ping, create_entry, list_entries, get_entry, update_entry, delete_entry, list_tags, search_entries")
		fmt.Fprintln(os.Stderr, "Listening for MCP JSON-RPC on STDIN/STDOUT ... (Ctrl+C to quit)")

		return srv.Start()
	},
}
