// Package chat implements the interactive terminal session for the
// dual-mode assistant.
//
// It is presentation only: every request goes through the assistant's
// Process pipeline, and the loop keeps running after failures so one
// bad exchange never ends the session.
package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"parley/internal/assistant"
	"parley/internal/parse"
)

// SessionID scopes the whole interactive session to one conversation.
const SessionID = "cli"

// exitCommands end the session when typed on their own.
var exitCommands = map[string]bool{
	"quit":    true,
	"exit":    true,
	"bye":     true,
	"goodbye": true,
}

// Session is one interactive chat over a reader/writer pair.
type Session struct {
	assistant *assistant.Assistant
	in        *bufio.Scanner
	out       io.Writer
}

// New creates a Session reading raw input lines from in and writing
// responses to out.
func New(a *assistant.Assistant, in io.Reader, out io.Writer) *Session {
	return &Session{
		assistant: a,
		in:        bufio.NewScanner(in),
		out:       out,
	}
}

// Run drives the chat loop until an exit command, EOF, or context
// cancellation.
func (s *Session) Run(ctx context.Context) error {
	s.printWelcome()

	for {
		if err := ctx.Err(); err != nil {
			s.printGoodbye()
			return err
		}

		fmt.Fprint(s.out, "You: ")
		if !s.in.Scan() {
			s.printGoodbye()
			return s.in.Err()
		}
		line := strings.TrimSpace(s.in.Text())

		if exitCommands[strings.ToLower(line)] {
			s.printGoodbye()
			return nil
		}
		if line == "" {
			fmt.Fprintln(s.out, "🤖 I didn't catch that. Could you say something?")
			continue
		}

		s.handle(ctx, line)
		fmt.Fprintln(s.out)
	}
}

// handle processes one non-empty input line.
func (s *Session) handle(ctx context.Context, line string) {
	// Peek at the parse outcome so unknown-mode input shows the full
	// help text instead of a bare error.
	if _, err := parse.Parse(line); err != nil {
		var perr *parse.Error
		if errors.As(err, &perr) && perr.Kind == parse.KindUnknownMode {
			s.printHelp()
			return
		}
		fmt.Fprintf(s.out, "🤖 %s\n", err.Error())
		return
	}

	result := s.assistant.Process(ctx, SessionID, line)
	if !result.Success {
		fmt.Fprintf(s.out, "🤖 Sorry, I couldn't process that: %s\n", result.Error)
		return
	}

	switch result.Mode {
	case "rephrasing":
		fmt.Fprintf(s.out, "✏️  %s\n", result.Response)
	default:
		fmt.Fprintf(s.out, "🤖 %s\n", result.Response)
	}
}

func (s *Session) printWelcome() {
	fmt.Fprintln(s.out, "🤖 "+strings.Repeat("=", 65))
	fmt.Fprintln(s.out, "   Welcome to your Dual-Mode AI Assistant!")
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "   I have two operating modes:")
	fmt.Fprintln(s.out, "   1. CONVERSATIONAL: Start with 'conversational:' for friendly chat")
	fmt.Fprintln(s.out, "   2. REPHRASING: Start with 'rephrasing:' for grammar/text improvement")
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "   Examples:")
	fmt.Fprintln(s.out, "   • conversational: How do neural networks work?")
	fmt.Fprintln(s.out, "   • rephrasing: I went to store yesterday and buy some food")
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "   Type 'quit', 'exit', or 'bye' to end our conversation.")
	fmt.Fprintln(s.out, strings.Repeat("=", 68))
	fmt.Fprintln(s.out)
}

func (s *Session) printHelp() {
	fmt.Fprintln(s.out, "🤖 Please specify a mode to get started:")
	fmt.Fprintln(s.out, "   • Type 'conversational: [your message]' for friendly chat")
	fmt.Fprintln(s.out, "   • Type 'rephrasing: [your text]' for grammar/text help")
}

func (s *Session) printGoodbye() {
	fmt.Fprintln(s.out, "\n🤖 Thanks for chatting with me! Have a wonderful day! 👋")
}
