package chat

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/internal/assistant"
	"parley/internal/conversation"
	"parley/internal/gateway"
	"parley/internal/parse"
)

type scriptedGateway struct {
	failing bool
}

func (g *scriptedGateway) Generate(_ context.Context, _ parse.Mode, content string, _ []conversation.MessagePair) (string, error) {
	if g.failing {
		return "", &gateway.Error{Err: fmt.Errorf("model offline")}
	}
	return "reply to: " + content, nil
}

// runScript feeds input lines to a fresh session and returns the output.
func runScript(t *testing.T, gw gateway.Gateway, lines ...string) string {
	t.Helper()
	a := assistant.New(conversation.New(3, 0), gw)
	var out bytes.Buffer
	sess := New(a, strings.NewReader(strings.Join(lines, "\n")), &out)
	require.NoError(t, sess.Run(context.Background()))
	return out.String()
}

func TestRun_WelcomeAndGoodbye(t *testing.T) {
	out := runScript(t, &scriptedGateway{}, "quit")
	assert.Contains(t, out, "Welcome to your Dual-Mode AI Assistant!")
	assert.Contains(t, out, "Have a wonderful day!")
}

func TestRun_ExitCommands(t *testing.T) {
	for _, cmd := range []string{"quit", "exit", "bye", "goodbye", "QUIT", "  exit  "} {
		out := runScript(t, &scriptedGateway{}, cmd)
		assert.Contains(t, out, "Have a wonderful day!", "command %q should exit", cmd)
	}
}

func TestRun_EOFEndsSession(t *testing.T) {
	out := runScript(t, &scriptedGateway{}) // no input at all
	assert.Contains(t, out, "Have a wonderful day!")
}

func TestRun_ConversationalResponse(t *testing.T) {
	out := runScript(t, &scriptedGateway{}, "conversational: Hello", "quit")
	assert.Contains(t, out, "🤖 reply to: Hello")
}

func TestRun_RephrasingGlyph(t *testing.T) {
	out := runScript(t, &scriptedGateway{}, "rephrasing: I went to store", "quit")
	assert.Contains(t, out, "✏️  reply to: I went to store")
}

func TestRun_UnknownModeShowsHelp(t *testing.T) {
	out := runScript(t, &scriptedGateway{}, "Hello there", "quit")
	assert.Contains(t, out, "Please specify a mode to get started:")
	assert.Contains(t, out, "'conversational: [your message]'")
}

func TestRun_EmptyContentShowsError(t *testing.T) {
	out := runScript(t, &scriptedGateway{}, "rephrasing:   ", "quit")
	assert.Contains(t, out, "Please provide content after the mode label.")
}

func TestRun_EmptyLinePrompt(t *testing.T) {
	out := runScript(t, &scriptedGateway{}, "", "quit")
	assert.Contains(t, out, "I didn't catch that. Could you say something?")
}

func TestRun_GatewayFailureKeepsLoopAlive(t *testing.T) {
	out := runScript(t, &scriptedGateway{failing: true},
		"conversational: Hi", "quit")
	assert.Contains(t, out, "Sorry, I couldn't process that:")
	assert.Contains(t, out, "model offline")
	assert.Contains(t, out, "Have a wonderful day!", "loop must survive a failed exchange")
}

func TestRun_HistoryAccumulatesAcrossTurns(t *testing.T) {
	a := assistant.New(conversation.New(3, 0), &scriptedGateway{})
	var out bytes.Buffer
	sess := New(a, strings.NewReader("conversational: one\nconversational: two\nquit"), &out)
	require.NoError(t, sess.Run(context.Background()))

	assert.Equal(t, 2, a.Stats(SessionID).MessageCount)
}
