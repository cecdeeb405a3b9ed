package gateway

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"parley/internal/conversation"
	"parley/internal/parse"
)

// System prompts defining the two agent personas.
const (
	conversationalPrompt = "You are a friendly, helpful, and engaging conversational AI assistant. " +
		"Your personality is warm, approachable, and genuinely interested in helping users. You should:\n" +
		"- Be conversational and natural in your responses\n" +
		"- Show enthusiasm and interest in the user's questions\n" +
		"- Provide helpful and detailed answers when needed\n" +
		"- Ask follow-up questions to better understand what the user needs\n" +
		"- Use a warm, friendly tone like you're talking to a good friend\n" +
		"- Remember context from the conversation to make it flow naturally\n" +
		"- Be encouraging and supportive\n" +
		"- Keep responses engaging but not overly long unless requested"

	rephrasingPrompt = "You are a professional writing assistant specialized in rephrasing " +
		"and grammar correction. Your job is to improve text while preserving " +
		"the original meaning, tone, and intent. You should:\n" +
		"- Fix grammar, spelling, and punctuation errors\n" +
		"- Improve clarity and readability\n" +
		"- Enhance word choice and sentence structure\n" +
		"- Maintain the original tone and style\n" +
		"- Preserve the author's voice and intent\n" +
		"- Return ONLY the improved version without explanations or commentary\n" +
		"- Keep the same level of formality as the original\n" +
		"- Don't add new information or change the meaning"
)

// OpenAI is a Gateway backed by the OpenAI chat completions API. One
// client serves both modes; the mode selects the system prompt and
// whether history is replayed.
type OpenAI struct {
	client openai.Client
	model  string
}

// NewOpenAI creates an OpenAI gateway for the given API key and model
// selector (e.g. "gpt-4o").
func NewOpenAI(apiKey, model string) *OpenAI {
	return &OpenAI{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// Model returns the configured model selector.
func (g *OpenAI) Model() string { return g.model }

// Generate issues a single chat completion. History is replayed as
// structured user/assistant turns before the current message; for
// rephrasing mode callers pass no history and the text is sent as the
// sole user turn.
func (g *OpenAI) Generate(ctx context.Context, mode parse.Mode, content string, history []conversation.MessagePair) (string, error) {
	messages, err := buildMessages(mode, content, history)
	if err != nil {
		return "", err
	}

	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(g.model),
		Messages: messages,
	})
	if err != nil {
		return "", &Error{Err: err}
	}
	if len(completion.Choices) == 0 {
		return "", &Error{Err: fmt.Errorf("no response choices returned")}
	}
	text := completion.Choices[0].Message.Content
	if text == "" {
		return "", &Error{Err: fmt.Errorf("empty response content")}
	}
	return text, nil
}

// buildMessages assembles the message array for one completion call.
func buildMessages(mode parse.Mode, content string, history []conversation.MessagePair) ([]openai.ChatCompletionMessageParamUnion, error) {
	var system string
	switch mode {
	case parse.ModeConversational:
		system = conversationalPrompt
	case parse.ModeRephrasing:
		system = rephrasingPrompt
	default:
		return nil, fmt.Errorf("unsupported mode %d", mode)
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2+2*len(history))
	messages = append(messages, openai.SystemMessage(system))
	for _, pair := range history {
		messages = append(messages,
			openai.UserMessage(pair.User),
			openai.AssistantMessage(pair.Assistant),
		)
	}
	messages = append(messages, openai.UserMessage(content))
	return messages, nil
}
