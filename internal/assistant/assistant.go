// Package assistant orchestrates the dual-mode pipeline: parse the
// input, route it to the gateway with the right context, and record
// successful conversational exchanges.
//
// Conversational requests are stateful: they read the session's
// history before the gateway call and append the exchange after a
// successful one. Rephrasing requests never touch history — mixing
// one-off corrections into conversational context would corrupt later
// turns.
package assistant

import (
	"context"
	"errors"

	"parley/internal/conversation"
	"parley/internal/gateway"
	"parley/internal/parse"
)

// Result is the structured outcome of one Process call. Every failure
// path is converted to this shape; Process never panics or returns a
// Go error across the boundary.
type Result struct {
	Success       bool   `json:"success"`
	Response      string `json:"response,omitempty"`
	Error         string `json:"error,omitempty"`
	Mode          string `json:"mode,omitempty"`
	OriginalInput string `json:"original_input,omitempty"`
}

// Assistant routes parsed requests to the gateway and owns no state of
// its own beyond the injected collaborators. Safe for concurrent use.
type Assistant struct {
	store *conversation.Store
	gw    gateway.Gateway
}

// New creates an Assistant over the given store and gateway.
func New(store *conversation.Store, gw gateway.Gateway) *Assistant {
	return &Assistant{store: store, gw: gw}
}

// Process handles one raw input for the given session.
//
// Parse failures and gateway failures both produce Success=false with
// a human-readable message and never mutate the store. A conversational
// exchange is appended only after the gateway returns successfully, so
// an abandoned or cancelled call leaves no partial state behind.
func (a *Assistant) Process(ctx context.Context, sessionID, raw string) Result {
	req, err := parse.Parse(raw)
	if err != nil {
		var perr *parse.Error
		mode := parse.ModeNone
		if errors.As(err, &perr) {
			mode = perr.Mode
		}
		return Result{Success: false, Error: err.Error(), Mode: mode.String()}
	}

	var history []conversation.MessagePair
	if req.Mode == parse.ModeConversational {
		history = a.store.Context(sessionID)
	}

	response, err := a.gw.Generate(ctx, req.Mode, req.Content, history)
	if err != nil {
		return Result{
			Success:       false,
			Error:         err.Error(),
			Mode:          req.Mode.String(),
			OriginalInput: req.Content,
		}
	}

	if req.Mode == parse.ModeConversational {
		a.store.Append(sessionID, req.Content, response)
	}

	return Result{
		Success:       true,
		Response:      response,
		Mode:          req.Mode.String(),
		OriginalInput: req.Content,
	}
}

// Stats reports the session's history stats.
func (a *Assistant) Stats(sessionID string) conversation.Stats {
	return a.store.Stats(sessionID)
}

// ClearHistory discards the session's history. Idempotent.
func (a *Assistant) ClearHistory(sessionID string) {
	a.store.Clear(sessionID)
}

// CreateSession registers a new session, reporting whether it was
// created (false means the id already exists).
func (a *Assistant) CreateSession(sessionID string) bool {
	return a.store.Create(sessionID)
}

// Sessions lists all live sessions.
func (a *Assistant) Sessions() []conversation.Info {
	return a.store.Sessions()
}
