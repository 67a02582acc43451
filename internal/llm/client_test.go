package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/itinerary-planner/internal/config"
	"github.com/maxviazov/itinerary-planner/internal/llm"
)

func newClient(t *testing.T, temperature *float64, h http.HandlerFunc) *llm.OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	cfg := config.LLMConfig{
		BaseURL:     srv.URL + "/openai/v1/",
		APIKey:      "gsk_test",
		Model:       "llama3-70b-8192",
		Timeout:     5 * time.Second,
		Temperature: temperature,
	}
	return llm.NewClient(cfg, nil, zerolog.New(io.Discard))
}

func TestComplete_SendsRequestAndDecodes(t *testing.T) {
	var got openai.ChatCompletionRequest
	c := newClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/openai/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer gsk_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "llama3-70b-8192",
			"choices": [{
				"index": 0,
				"finish_reason": "tool_calls",
				"message": {
					"role": "assistant",
					"content": "",
					"tool_calls": [{
						"id": "call_1",
						"type": "function",
						"function": {"name": "generate_itinerary", "arguments": "{\"destination\":\"Pokhara\"}"}
					}]
				}
			}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
		}`))
	})

	resp, err := c.Complete(context.Background(), openai.ChatCompletionRequest{
		Messages: []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: "plan Pokhara"}},
		Tools: []openai.Tool{llm.FunctionTool(openai.FunctionDefinition{
			Name:       "generate_itinerary",
			Parameters: json.RawMessage(`{"type":"object"}`),
		})},
	})
	require.NoError(t, err)

	assert.Equal(t, "llama3-70b-8192", got.Model)
	require.Len(t, got.Tools, 1)
	assert.Equal(t, openai.ToolTypeFunction, got.Tools[0].Type)
	assert.Zero(t, got.Temperature)

	msg, err := llm.FirstMessage(resp)
	require.NoError(t, err)
	require.Len(t, msg.ToolCalls, 1)
	assert.Equal(t, "generate_itinerary", msg.ToolCalls[0].Function.Name)
	assert.JSONEq(t, `{"destination":"Pokhara"}`, msg.ToolCalls[0].Function.Arguments)
	assert.Equal(t, 15, resp.Usage.TotalTokens)
}

func TestComplete_AppliesConfiguredTemperature(t *testing.T) {
	temp := 0.5
	var got openai.ChatCompletionRequest
	c := newClient(t, &temp, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hi"}}]}`))
	})

	_, err := c.Complete(context.Background(), openai.ChatCompletionRequest{
		Messages: []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: "hi"}},
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got.Temperature, 0.0001)
}

func TestComplete_NonSuccessStatus(t *testing.T) {
	c := newClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid API Key","type":"invalid_request_error"}}`))
	})

	_, err := c.Complete(context.Background(), openai.ChatCompletionRequest{})
	var apiErr *openai.APIError
	require.True(t, errors.As(err, &apiErr), "got %v", err)
	assert.Equal(t, http.StatusUnauthorized, apiErr.HTTPStatusCode)
	assert.Contains(t, apiErr.Message, "Invalid API Key")
}

func TestComplete_MalformedBody(t *testing.T) {
	c := newClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := c.Complete(context.Background(), openai.ChatCompletionRequest{})
	assert.Error(t, err)
}

func TestComplete_ContextCanceled(t *testing.T) {
	c := newClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Complete(ctx, openai.ChatCompletionRequest{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFirstMessage_WithoutChoices(t *testing.T) {
	_, err := llm.FirstMessage(openai.ChatCompletionResponse{})
	assert.ErrorIs(t, err, llm.ErrNoChoices)
}

func TestCleanJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```  ", `{"a":1}`},
		{"tool tag", "<tool-use></tool-use>{\"a\":1}", `{"a":1}`},
		{"whitespace only", "  \n ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, llm.CleanJSON(tc.in))
		})
	}
}
