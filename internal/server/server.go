// Package server wires all MCP components and creates the server
// instance.
//
// This is the composition root: it creates concrete implementations
// and injects them into the tools/prompts/resources that depend on
// them. No business logic lives here — only wiring.
package server

import (
	"github.com/mark3labs/mcp-go/server"

	"parley/internal/assistant"
	"parley/internal/chattools"
	"parley/internal/config"
	"parley/internal/conversation"
	"parley/internal/gateway"
	"parley/internal/prompts"
	"parley/internal/resources"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
func New(cfg config.Config) (*server.MCPServer, error) {
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}

	// --- Create shared dependencies ---

	store := conversation.New(cfg.MaxHistoryPairs, cfg.MaxSessions)
	gw := gateway.NewOpenAI(cfg.APIKey, cfg.Model)
	a := assistant.New(store, gw)

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"parley",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register tools ---

	chatTool := chattools.NewChatTool(a)
	s.AddTool(chatTool.Definition(), chatTool.Handle)

	rephraseTool := chattools.NewRephraseTool(a)
	s.AddTool(rephraseTool.Definition(), rephraseTool.Handle)

	createSessionTool := chattools.NewCreateSessionTool(a)
	s.AddTool(createSessionTool.Definition(), createSessionTool.Handle)

	statsTool := chattools.NewStatsTool(a)
	s.AddTool(statsTool.Definition(), statsTool.Handle)

	clearTool := chattools.NewClearTool(a)
	s.AddTool(clearTool.Definition(), clearTool.Handle)

	listSessionsTool := chattools.NewListSessionsTool(a)
	s.AddTool(listSessionsTool.Definition(), listSessionsTool.Handle)

	// --- Register prompts ---

	starterPrompt := prompts.NewStarterPrompt()
	s.AddPrompt(starterPrompt.Definition(), starterPrompt.Handle)

	improvePrompt := prompts.NewImprovePrompt()
	s.AddPrompt(improvePrompt.Definition(), improvePrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(a, cfg.Model)
	s.AddResource(resourceHandler.SessionsResource(), resourceHandler.HandleSessions)
	s.AddResource(resourceHandler.CapabilitiesResource(), resourceHandler.HandleCapabilities)

	return s, nil
}

// serverInstructions returns the system instructions that tell the AI
// host how to use the assistant.
func serverInstructions() string {
	return `You have access to Parley, a dual-mode conversation agent.

## Modes
- conversational_chat: friendly, context-aware chat. Pass a session_id
  to keep independent conversations isolated; history is bounded to the
  most recent exchanges per session.
- rephrase_text: grammar and clarity improvement. Stateless — it never
  reads or writes conversation history, so one-off corrections cannot
  leak into a session's context.

## Sessions
- Sessions are created implicitly on first use, or explicitly with
  create_conversation_session.
- get_conversation_stats reports the pair count and whether context
  exists for a session.
- clear_conversation_history discards a session's history; the session
  itself stays usable.
- list_sessions shows every live session.

## Guidance
- Use a distinct session_id per independent topic or user.
- Prefer rephrase_text over conversational_chat for pure text cleanup:
  it is cheaper and cannot pollute a session's context.`
}
