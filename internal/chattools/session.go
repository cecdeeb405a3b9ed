package chattools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"parley/internal/assistant"
)

// CreateSessionTool handles the create_conversation_session MCP tool.
type CreateSessionTool struct {
	assistant *assistant.Assistant
}

// NewCreateSessionTool creates a CreateSessionTool.
func NewCreateSessionTool(a *assistant.Assistant) *CreateSessionTool {
	return &CreateSessionTool{assistant: a}
}

// Definition returns the MCP tool definition for create_conversation_session.
func (t *CreateSessionTool) Definition() mcp.Tool {
	return mcp.NewTool("create_conversation_session",
		mcp.WithDescription(
			"Create a new conversation session with isolated context.",
		),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Unique identifier for the new session"),
		),
	)
}

// Handle processes the create_conversation_session tool call.
func (t *CreateSessionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := req.GetString("session_id", "")
	if sessionID == "" {
		return mcp.NewToolResultError("'session_id' is required"), nil
	}

	if !t.assistant.CreateSession(sessionID) {
		return mcp.NewToolResultText(fmt.Sprintf("Session %q already exists", sessionID)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Created conversation session %q", sessionID)), nil
}

// ─── ListSessionsTool ───────────────────────────────────────────────────────

// ListSessionsTool handles the list_sessions MCP tool.
type ListSessionsTool struct {
	assistant *assistant.Assistant
}

// NewListSessionsTool creates a ListSessionsTool.
func NewListSessionsTool(a *assistant.Assistant) *ListSessionsTool {
	return &ListSessionsTool{assistant: a}
}

// Definition returns the MCP tool definition for list_sessions.
func (t *ListSessionsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_sessions",
		mcp.WithDescription("List all active conversation sessions."),
	)
}

// sessionEntry is the JSON shape for one listed session.
type sessionEntry struct {
	SessionID    string `json:"session_id"`
	CreatedAt    string `json:"created_at"`
	MessageCount int    `json:"message_count"`
}

// Handle processes the list_sessions tool call.
func (t *ListSessionsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	infos := t.assistant.Sessions()
	if len(infos) == 0 {
		return mcp.NewToolResultText("No active sessions"), nil
	}

	entries := make([]sessionEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, sessionEntry{
			SessionID:    info.ID,
			CreatedAt:    info.CreatedAt.Format(time.RFC3339),
			MessageCount: info.MessageCount,
		})
	}

	payload, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode sessions: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Active Sessions:\n%s", payload)), nil
}
