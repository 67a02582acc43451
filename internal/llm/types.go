// Package llm adapts an OpenAI-compatible chat completions API (Groq by default) to the service layer.
package llm

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// ErrNoChoices is returned when the provider answers without any completion choice.
var ErrNoChoices = errors.New("llm: response has no choices")

// Client is the contract the service layer needs from a model provider.
type Client interface {
	Complete(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// FunctionTool wraps a function definition into a tool of type "function".
func FunctionTool(def openai.FunctionDefinition) openai.Tool {
	return openai.Tool{Type: openai.ToolTypeFunction, Function: &def}
}

// FirstMessage returns the first choice's message.
func FirstMessage(resp openai.ChatCompletionResponse) (openai.ChatCompletionMessage, error) {
	if len(resp.Choices) == 0 {
		return openai.ChatCompletionMessage{}, ErrNoChoices
	}
	return resp.Choices[0].Message, nil
}
