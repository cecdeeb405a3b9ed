// Package resources implements the MCP resource handlers.
//
// Resources provide read-only data the host can consume for context,
// addressed by conversation:// URIs following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"parley/internal/assistant"
)

// Handler manages the assistant's resource endpoints.
type Handler struct {
	assistant *assistant.Assistant
	model     string
}

// NewHandler creates a resource Handler with its dependencies. model is
// reported in the capabilities resource.
func NewHandler(a *assistant.Assistant, model string) *Handler {
	return &Handler{assistant: a, model: model}
}

// SessionsResource returns the MCP resource definition for the live
// session list.
func (h *Handler) SessionsResource() mcp.Resource {
	return mcp.NewResource(
		"conversation://sessions",
		"Active Conversation Sessions",
		mcp.WithResourceDescription("Information about all active conversation sessions"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleSessions returns the active sessions as JSON.
func (h *Handler) HandleSessions(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	type entry struct {
		SessionID    string `json:"session_id"`
		CreatedAt    string `json:"created_at"`
		MessageCount int    `json:"message_count"`
	}

	infos := h.assistant.Sessions()
	entries := make([]entry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, entry{
			SessionID:    info.ID,
			CreatedAt:    info.CreatedAt.Format(time.RFC3339),
			MessageCount: info.MessageCount,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling sessions: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// CapabilitiesResource returns the MCP resource definition for the
// assistant's capability summary.
func (h *Handler) CapabilitiesResource() mcp.Resource {
	return mcp.NewResource(
		"conversation://capabilities",
		"Assistant Capabilities",
		mcp.WithResourceDescription("Information about the AI assistant's capabilities and modes"),
		mcp.WithMIMEType("application/json"),
	)
}

// capabilities is the static capability description exposed to hosts.
type capabilities struct {
	Model string   `json:"model"`
	Modes []mode   `json:"modes"`
	Tools []string `json:"tools"`
}

type mode struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Stateful    bool   `json:"stateful"`
}

// HandleCapabilities returns the capability summary as JSON.
func (h *Handler) HandleCapabilities(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	caps := capabilities{
		Model: h.model,
		Modes: []mode{
			{
				Name:        "conversational",
				Description: "Friendly context-aware chat that remembers recent exchanges per session",
				Stateful:    true,
			},
			{
				Name:        "rephrasing",
				Description: "Grammar and clarity improvement that preserves meaning and tone",
				Stateful:    false,
			},
		},
		Tools: []string{
			"conversational_chat",
			"rephrase_text",
			"create_conversation_session",
			"get_conversation_stats",
			"clear_conversation_history",
			"list_sessions",
		},
	}

	data, err := json.MarshalIndent(caps, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling capabilities: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
