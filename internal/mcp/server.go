package mcp

import (
	"context"
	"log/slog"

	"github.com/iksnae/claude-session/internal"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ChatService defines the session operations exposed as tools.
type ChatService interface {
	ListProjects(ctx context.Context) ([]internal.ProjectFolder, error)
	ListMessages(ctx context.Context, sessionID string) ([]internal.ChatMessage, error)
	Search(ctx context.Context, query string) ([]internal.SearchResult, error)
	ResolveSessionFilePath(ctx context.Context, sessionID string) (string, error)
}

// Config contains server configuration.
type Config struct {
	Service ChatService
	Version string
	Logger  *slog.Logger
}

const serverInstructions = `Read-only access to Claude Code session logs.
Use list_projects to find sessions, list_messages to read one, search to find text across all sessions
and resolve_session_file_path to locate the backing JSONL file.`

// NewServer creates an MCP server with the session tools registered.
func NewServer(cfg Config) *sdkmcp.Server {
	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "claude-session",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerTools(server, cfg.Service)
	return server
}
