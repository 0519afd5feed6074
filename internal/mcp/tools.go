package mcp

import (
	"context"
	"encoding/json"

	"github.com/iksnae/claude-session/internal"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListProjectsParams takes no arguments.
type ListProjectsParams struct{}

// SessionParams identifies one session.
type SessionParams struct {
	SessionID string `json:"session_id" jsonschema:"Session id as shown by list_projects"`
}

// SearchParams is a free-text query.
type SearchParams struct {
	Query string `json:"query" jsonschema:"Case-insensitive text to find"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results (0 for all)"`
}

func registerTools(server *sdkmcp.Server, svc ChatService) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List projects and their sessions, most recently updated first",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ListProjectsParams) (*sdkmcp.CallToolResult, any, error) {
		projects, err := svc.ListProjects(ctx)
		return respond(projects, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_messages",
		Description: "Return the reconstructed conversation of a session",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in SessionParams) (*sdkmcp.CallToolResult, any, error) {
		messages, err := svc.ListMessages(ctx, in.SessionID)
		return respond(messages, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "search",
		Description: "Search every session for text in messages, thinking, tool calls and tool results",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in SearchParams) (*sdkmcp.CallToolResult, any, error) {
		results, err := svc.Search(ctx, in.Query)
		if err == nil && in.Limit > 0 && len(results) > in.Limit {
			results = results[:in.Limit]
		}
		return respond(results, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "resolve_session_file_path",
		Description: "Return the path of the JSONL file backing a session",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in SessionParams) (*sdkmcp.CallToolResult, any, error) {
		path, err := svc.ResolveSessionFilePath(ctx, in.SessionID)
		return respond(map[string]string{"path": path}, err)
	})
}

// respond renders a value as JSON text, or err as a tool error result
func respond(v any, err error) (*sdkmcp.CallToolResult, any, error) {
	if err != nil {
		internal.LogDebug("tool call failed: %v", err)
		return errorResult(err.Error()), nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return errorResult("encode result: " + err.Error()), nil, nil
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}

func errorResult(message string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: message}},
	}
}
