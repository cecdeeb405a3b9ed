// Package gateway is the boundary to the external text-generation
// service. The assistant core treats it as a single opaque fallible
// call with no internal retry.
package gateway

import (
	"context"

	"parley/internal/conversation"
	"parley/internal/parse"
)

// Gateway issues one generation call per request. Implementations must
// be safe for concurrent use. History is a read-only snapshot and is
// only populated for conversational mode.
type Gateway interface {
	Generate(ctx context.Context, mode parse.Mode, content string, history []conversation.MessagePair) (string, error)
}

// Error wraps any transport, authentication, or upstream failure from
// the generation service.
type Error struct {
	Err error
}

func (e *Error) Error() string { return "gateway: " + e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }
