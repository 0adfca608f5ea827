package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/feedcorpus/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can query the
corpus: most relevant terms, article search, terms near a date, hot terms
and term weighting.

By default, the server communicates over stdio using JSON-RPC.

Use --port to start an HTTP server instead, which also serves:
  /healthz   - liveness check
  /metrics   - Prometheus metrics

Examples:
  # Stdio mode (default)
  feedcorpus mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  feedcorpus mcp serve --port 8080

Assistant configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "feedcorpus": {
        "command": "/path/to/feedcorpus",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Corpus:   corpusService,
		Settings: settingsService,
		Metrics:  metricsHandler,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s%s\n", addr, mcp.PathMCP)
		return server.RunHTTP(commandContext(cmd), addr)
	}

	return server.Run(commandContext(cmd))
}
