// ABOUTME: MCP server subcommand
// ABOUTME: Serves the revenue tools, resources and prompts over stdio
package cli

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/revenueos/controllers"
	"github.com/harperreed/revenueos/handlers"
)

// MCPCommand starts the MCP server on stdio. logger must not write to stdout.
func MCPCommand(ctx context.Context, app *controllers.AppController, version string, logger *log.Logger) error {
	logger.Info("starting MCP server", "version", version)
	server := handlers.NewServer(app, version)
	return server.Run(ctx, &mcp.StdioTransport{})
}
