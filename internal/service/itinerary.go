package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/maxviazov/itinerary-planner/internal/llm"
	"github.com/maxviazov/itinerary-planner/internal/model"
	"github.com/maxviazov/itinerary-planner/internal/repository"
)

const (
	// ToolGenerateItinerary is the only tool offered to the model.
	ToolGenerateItinerary = "generate_itinerary"

	systemPrompt = "You are a friendly travel expert. Use tools only when asked for specific itineraries."

	itineraryPrompt = `Create an itinerary for %s including:
- Real elevation data in meters.
- Ensure the latitude and longitude of a location do not repeat; make small adjustments (even 0.0001) if necessary.
- Include notable landmarks.
- Make sure the coordinates are as accurate as possible.
- Start the itinerary from Kathmandu if the destination is in Nepal.

Format as JSON with this structure:
{
  "itinerary": [
    {
      "day": 1,
      "location": "Name",
      "elevation": 1000,
      "coordinates": {"latitude": 28.1234, "longitude": 83.5678},
      "highlight": "Main feature",
      "description": {
        "trekking_duration": "Approximate trekking duration.",
        "key_highlights": ["Scenic views, cultural experiences, or notable landmarks."],
        "permits": "Information about required permits.",
        "best_time_to_visit": "Best time to visit.",
        "difficulty_level": "Brief overview of difficulty level.",
        "tips": ["Additional tips or recommendations for trekkers (e.g., packing essentials, acclimatization advice, pass)."]
      }
    }
  ]
}
Do not write anything else, not even ` + "```json or ```."
)

var itineraryToolParams = json.RawMessage(`{
  "type": "object",
  "properties": {
    "destination": {"type": "string", "description": "Place or region to plan the trip for."}
  },
  "required": ["destination"]
}`)

// Tool call outcomes that do not stop processing.
const (
	toolStatusNotFound    = "not_found"
	toolStatusInvalidJSON = "invalid_json"
)

// Tool failures surfaced to clients; anything else is reported as errModelRequest.
var (
	errEmptyDestination     = errors.New("destination must not be empty")
	errModelRequest         = errors.New("model request failed")
	errEmptyModelResponse   = errors.New("Empty response received from model.")
	errUndecodableItinerary = errors.New("model returned malformed itinerary JSON")
)

// toolMessage maps a tool failure to the stable text returned to clients.
// Provider details stay in the logs.
func toolMessage(err error) string {
	switch {
	case errors.Is(err, errInvalidItinerary):
		return err.Error() // built from validator tags only
	case errors.Is(err, errUndecodableItinerary):
		return errUndecodableItinerary.Error()
	case errors.Is(err, errEmptyDestination), errors.Is(err, errEmptyModelResponse):
		return err.Error()
	default:
		return errModelRequest.Error()
	}
}

// toolResult is the outcome of one tool call; exactly one of itinerary, err or status is set.
type toolResult struct {
	tool      string
	itinerary *model.Itinerary
	err       error
	status    string
}

type itineraryService struct {
	llm      llm.Client
	cache    repository.ItineraryCache
	validate *validator.Validate
	log      zerolog.Logger
}

// NewItineraryService wires the use case. A nil client makes every call fail with ErrUnavailable;
// a nil cache disables caching.
func NewItineraryService(client llm.Client, cache repository.ItineraryCache, logger zerolog.Logger) ItineraryService {
	if cache == nil {
		cache = repository.NoopCache{}
	}
	return &itineraryService{
		llm:      client,
		cache:    cache,
		validate: validator.New(),
		log:      logger.With().Str("module", "service").Str("component", "itinerary").Logger(),
	}
}

func (s *itineraryService) Generate(ctx context.Context, query string) (model.GenerateResult, error) {
	start := time.Now()
	// an unconfigured service refuses every request, valid or not
	if s.llm == nil {
		return model.GenerateResult{}, ErrUnavailable
	}
	q, err := validateQuery(query)
	if err != nil {
		s.log.Debug().Str("query_raw", query).Msg("query validation failed")
		return model.GenerateResult{}, err
	}

	resp, err := s.llm.Complete(ctx, openai.ChatCompletionRequest{
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: q},
		},
		Tools: []openai.Tool{llm.FunctionTool(openai.FunctionDefinition{
			Name:        ToolGenerateItinerary,
			Description: "Generates a structured multi-day itinerary with geographical data for a given destination.",
			Parameters:  itineraryToolParams,
		})},
	})
	if err != nil {
		s.log.Error().Err(err).Msg("chat completion failed")
		return model.GenerateResult{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	msg, err := llm.FirstMessage(resp)
	if err != nil {
		return model.GenerateResult{}, fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}

	if len(msg.ToolCalls) == 0 {
		s.log.Info().Dur("took", time.Since(start)).Msg("answered without tools")
		return model.GenerateResult{Response: msg.Content}, nil
	}

	for _, call := range msg.ToolCalls {
		res := s.runTool(ctx, call)
		switch {
		case res.itinerary != nil:
			s.log.Info().
				Dur("took", time.Since(start)).
				Int("days", len(res.itinerary.Itinerary)).
				Msg("itinerary generated")
			return model.GenerateResult{Itinerary: res.itinerary}, nil
		case res.err != nil:
			s.log.Warn().Err(res.err).Str("tool", res.tool).Msg("tool call failed")
			return model.GenerateResult{}, res.err
		default:
			s.log.Warn().Str("tool", res.tool).Str("status", res.status).Msg("tool call skipped")
		}
	}
	return model.GenerateResult{}, ErrUnexpectedResponse
}

func (s *itineraryService) runTool(ctx context.Context, call openai.ToolCall) toolResult {
	name := call.Function.Name
	if name != ToolGenerateItinerary {
		return toolResult{tool: name, status: toolStatusNotFound}
	}

	var args struct {
		Destination string `json:"destination"`
	}
	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
		return toolResult{tool: name, status: toolStatusInvalidJSON}
	}

	it, err := s.generateItinerary(ctx, args.Destination)
	if err != nil {
		s.log.Warn().Err(err).Str("destination", args.Destination).Msg("itinerary tool failed")
		return toolResult{tool: name, err: &ToolError{Tool: name, Message: toolMessage(err)}}
	}
	return toolResult{tool: name, itinerary: &it}
}

// generateItinerary asks the model for a JSON itinerary, serving and filling the cache around it.
func (s *itineraryService) generateItinerary(ctx context.Context, destination string) (model.Itinerary, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return model.Itinerary{}, errEmptyDestination
	}

	cached, err := s.cache.Get(ctx, destination)
	switch {
	case err == nil:
		s.log.Debug().Str("destination", destination).Msg("itinerary cache hit")
		return cached, nil
	case !errors.Is(err, repository.ErrNotFound):
		s.log.Warn().Err(err).Str("destination", destination).Msg("itinerary cache read failed")
	}

	resp, err := s.llm.Complete(ctx, openai.ChatCompletionRequest{
		Messages: []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(itineraryPrompt, destination)}},
	})
	if err != nil {
		return model.Itinerary{}, fmt.Errorf("%w: %w", errModelRequest, err)
	}
	msg, err := llm.FirstMessage(resp)
	if err != nil || strings.TrimSpace(msg.Content) == "" {
		return model.Itinerary{}, errEmptyModelResponse
	}

	var it model.Itinerary
	if err := json.Unmarshal([]byte(llm.CleanJSON(msg.Content)), &it); err != nil {
		return model.Itinerary{}, fmt.Errorf("%w: %w", errUndecodableItinerary, err)
	}
	if err := validateItinerary(s.validate, it); err != nil {
		return model.Itinerary{}, err
	}

	if err := s.cache.Set(ctx, destination, it); err != nil {
		s.log.Warn().Err(err).Str("destination", destination).Msg("itinerary cache write failed")
	}
	return it, nil
}
