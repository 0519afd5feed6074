package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/iksnae/claude-session/internal"
	"github.com/iksnae/claude-session/internal/mcp"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an MCP server on stdio",
	Long: `Run a Model Context Protocol server over stdin/stdout exposing the
list_projects, list_messages, search and resolve_session_file_path tools.
Logs are written to stderr or to --log-file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := internal.Logger()
		server := mcp.NewServer(mcp.Config{
			Service: newService(),
			Version: version,
			Logger:  logger,
		})

		logger.Info("starting stdio transport", "projects_dir", cfg.ProjectsDir)
		transport := &sdkmcp.StdioTransport{}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(stop)

		go func() {
			select {
			case <-stop:
				logger.Info("shutting down")
				cancel()
			case <-ctx.Done():
			}
		}()

		// Run blocks until stdin closes or the context is cancelled
		if err := server.Run(ctx, transport); err != nil && ctx.Err() == nil {
			logger.Error("stdio server error", "error", err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
