package main

import (
	"github.com/spf13/cobra"

	"github.com/acelabs/ace/internal/cli"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the assistant as an MCP server on stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, debug := commonFlags(cmd)

		return cli.RunMCP(cli.MCPOptions{
			ConfigPath: configPath,
			Debug:      debug,
		})
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
