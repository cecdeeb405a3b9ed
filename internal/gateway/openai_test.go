package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/internal/conversation"
	"parley/internal/parse"
)

func TestBuildMessages_Conversational(t *testing.T) {
	history := []conversation.MessagePair{
		{User: "Hi", Assistant: "Hello!", Seq: 0},
		{User: "How are you?", Assistant: "Great.", Seq: 1},
	}

	messages, err := buildMessages(parse.ModeConversational, "Tell me more", history)
	require.NoError(t, err)

	// system + 2 pairs + current user message
	require.Len(t, messages, 6)
	assert.NotNil(t, messages[0].OfSystem)
	assert.NotNil(t, messages[1].OfUser)
	assert.NotNil(t, messages[2].OfAssistant)
	assert.NotNil(t, messages[3].OfUser)
	assert.NotNil(t, messages[4].OfAssistant)
	assert.NotNil(t, messages[5].OfUser)
}

func TestBuildMessages_RephrasingHasNoHistory(t *testing.T) {
	messages, err := buildMessages(parse.ModeRephrasing, "fix this sentence", nil)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.NotNil(t, messages[0].OfSystem)
	assert.NotNil(t, messages[1].OfUser)
}

func TestBuildMessages_UnknownMode(t *testing.T) {
	_, err := buildMessages(parse.ModeNone, "content", nil)
	assert.Error(t, err)
}

func TestError_Unwrap(t *testing.T) {
	inner := assert.AnError
	err := &Error{Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "gateway:")
}

func TestNewOpenAI_Model(t *testing.T) {
	g := NewOpenAI("test-key", "gpt-4o")
	assert.Equal(t, "gpt-4o", g.Model())
}
