// Package chattools provides the MCP tool handlers for the dual-mode
// assistant.
//
// Each tool follows the same pattern:
// - A struct with its dependency (*assistant.Assistant) injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() processes the request and returns a result
//
// Handlers convert every failure into an mcp.NewToolResultError — a Go
// error is never returned across the tool boundary.
package chattools

// DefaultSessionID scopes tool calls that don't name a session.
const DefaultSessionID = "default"
