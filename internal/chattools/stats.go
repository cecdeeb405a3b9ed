package chattools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"parley/internal/assistant"
)

// StatsTool handles the get_conversation_stats MCP tool.
type StatsTool struct {
	assistant *assistant.Assistant
}

// NewStatsTool creates a StatsTool.
func NewStatsTool(a *assistant.Assistant) *StatsTool {
	return &StatsTool{assistant: a}
}

// Definition returns the MCP tool definition for get_conversation_stats.
func (t *StatsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_conversation_stats",
		mcp.WithDescription(
			"Get statistics about a conversation session including message "+
				"count and context info.",
		),
		mcp.WithString("session_id",
			mcp.Description("Session ID to get stats for (default: default)"),
		),
	)
}

// statsPayload is the JSON shape for conversation statistics.
type statsPayload struct {
	SessionID    string `json:"session_id"`
	MessageCount int    `json:"message_count"`
	HasContext   bool   `json:"has_context"`
}

// Handle processes the get_conversation_stats tool call.
func (t *StatsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := req.GetString("session_id", DefaultSessionID)
	stats := t.assistant.Stats(sessionID)

	payload, err := json.MarshalIndent(statsPayload{
		SessionID:    sessionID,
		MessageCount: stats.MessageCount,
		HasContext:   stats.HasContext,
	}, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode stats: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Conversation Statistics:\n%s", payload)), nil
}
