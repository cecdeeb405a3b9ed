// Package parse classifies raw user input into one of the assistant's
// operating modes.
//
// Input follows the form "<label>: <content>" where the label selects a
// mode. Parsing is pure: no I/O, no state, deterministic for a given
// input.
package parse

import (
	"strings"
)

// Mode selects the assistant behavior for a request.
type Mode int

const (
	// ModeNone means no mode could be determined from the input.
	ModeNone Mode = iota
	// ModeConversational is the stateful, context-aware chat mode.
	ModeConversational
	// ModeRephrasing is the stateless grammar/rewrite mode.
	ModeRephrasing
)

// String returns the wire label for the mode ("" for ModeNone).
func (m Mode) String() string {
	switch m {
	case ModeConversational:
		return "conversational"
	case ModeRephrasing:
		return "rephrasing"
	default:
		return ""
	}
}

// Request is a successfully parsed input: the selected mode plus the
// content with the mode label stripped. Content is never empty.
type Request struct {
	Mode    Mode
	Content string
}

// ErrorKind distinguishes the two ways parsing can fail.
type ErrorKind int

const (
	// KindUnknownMode means no recognized mode label was present.
	KindUnknownMode ErrorKind = iota
	// KindEmptyContent means a mode label was present but nothing
	// followed it.
	KindEmptyContent
)

// Error is a parse failure. Mode carries the best-effort mode when one
// was recognized (KindEmptyContent); otherwise ModeNone.
type Error struct {
	Kind ErrorKind
	Mode Mode
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindEmptyContent:
		return "Please provide content after the mode label."
	default:
		return "Please specify a mode to get started."
	}
}

// Parse classifies raw input into a Request.
//
// The mode label is matched case-insensitively before the first colon,
// with surrounding whitespace ignored. The content is the remainder
// after the colon, trimmed of surrounding whitespace but with internal
// whitespace preserved. A recognized label with empty content is an
// error, as is input with no recognized label.
func Parse(raw string) (Request, error) {
	label, rest, found := strings.Cut(strings.TrimSpace(raw), ":")
	if !found {
		return Request{}, &Error{Kind: KindUnknownMode}
	}

	var mode Mode
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "conversational":
		mode = ModeConversational
	case "rephrasing":
		mode = ModeRephrasing
	default:
		return Request{}, &Error{Kind: KindUnknownMode}
	}

	content := strings.TrimSpace(rest)
	if content == "" {
		return Request{}, &Error{Kind: KindEmptyContent, Mode: mode}
	}

	return Request{Mode: mode, Content: content}, nil
}
