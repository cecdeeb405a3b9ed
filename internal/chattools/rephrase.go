package chattools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"parley/internal/assistant"
)

// RephraseTool handles the rephrase_text MCP tool. Rephrasing is
// stateless — it never reads or writes any session's history.
type RephraseTool struct {
	assistant *assistant.Assistant
}

// NewRephraseTool creates a RephraseTool over the shared assistant.
func NewRephraseTool(a *assistant.Assistant) *RephraseTool {
	return &RephraseTool{assistant: a}
}

// Definition returns the MCP tool definition for rephrase_text.
func (t *RephraseTool) Definition() mcp.Tool {
	return mcp.NewTool("rephrase_text",
		mcp.WithDescription(
			"Improve grammar, clarity, and writing quality of text while "+
				"preserving meaning and tone.",
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The text to be rephrased and improved"),
		),
	)
}

// Handle processes the rephrase_text tool call.
func (t *RephraseTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	if text == "" {
		return mcp.NewToolResultError("'text' is required"), nil
	}

	// No session: rephrasing must never touch conversational state.
	result := t.assistant.Process(ctx, DefaultSessionID, "rephrasing: "+text)
	if !result.Success {
		return mcp.NewToolResultError(fmt.Sprintf("Error: %s", result.Error)), nil
	}
	return mcp.NewToolResultText(result.Response), nil
}
