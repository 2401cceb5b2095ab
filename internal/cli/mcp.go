package cli

import (
	"github.com/acelabs/ace/internal/adapters/mcp"
	"github.com/acelabs/ace/internal/config"
)

// MCPOptions are the flags of the mcp command.
type MCPOptions struct {
	ConfigPath string
	Debug      bool
}

// RunMCP serves the assistant as an MCP server on stdio.
func RunMCP(opts MCPOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	// Stdout carries the MCP protocol; logs must stay on stderr or in files.
	logger, logCloser := createLogger(cfg.Logging, opts.Debug)
	defer logCloser.Close()

	assistant, _, err := buildAssistant(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("mcp server starting")
	return mcp.NewServer(assistant).ServeStdio()
}
