package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/maxviazov/itinerary-planner/internal/config"
)

// OpenAIClient calls {base_url}/chat/completions through go-openai.
type OpenAIClient struct {
	api         *openai.Client
	model       string
	temperature *float64
	log         zerolog.Logger
}

// NewClient builds a client from config. httpClient may be nil.
func NewClient(cfg config.LLMConfig, httpClient *http.Client, logger zerolog.Logger) *OpenAIClient {
	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	oc.HTTPClient = httpClient

	return &OpenAIClient{
		api:         openai.NewClientWithConfig(oc),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		log:         logger.With().Str("module", "llm").Str("component", "openai_client").Logger(),
	}
}

// Complete sends a chat completion request. Empty Model and zero Temperature take the configured values.
func (c *OpenAIClient) Complete(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if req.Model == "" {
		req.Model = c.model
	}
	if req.Temperature == 0 && c.temperature != nil {
		req.Temperature = float32(*c.temperature)
	}

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		c.log.Error().Err(err).Str("model", req.Model).Msg("chat completion failed")
		return openai.ChatCompletionResponse{}, fmt.Errorf("llm: chat completion: %w", err)
	}

	c.log.Debug().
		Dur("took", time.Since(start)).
		Str("model", resp.Model).
		Int("tools", len(req.Tools)).
		Int("total_tokens", resp.Usage.TotalTokens).
		Msg("chat completion done")
	return resp, nil
}
