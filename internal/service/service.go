// Package service holds business logic orchestration between the LLM, the cache and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/itinerary-planner/internal/model"
)

var (
	// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
	// Field-level details are retrieved via FieldErrors(err).
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnavailable means no model provider is configured.
	ErrUnavailable = errors.New("service temporarily unavailable")
	// ErrUpstream wraps failures of the chat call to the model provider.
	ErrUpstream = errors.New("upstream model error")
	// ErrToolFailed is the marker for a tool that ran and reported an error.
	ErrToolFailed = errors.New("tool failed")
	// ErrUnexpectedResponse means the model answered with nothing usable.
	ErrUnexpectedResponse = errors.New("unexpected response format")
)

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	var v feIface
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// ToolError carries the message a tool reported; it unwraps to ErrToolFailed.
type ToolError struct {
	Tool    string
	Message string
}

func (e *ToolError) Error() string { return e.Tool + ": " + e.Message }
func (e *ToolError) Unwrap() error { return ErrToolFailed }

// ItineraryService answers travel queries, producing a structured itinerary when asked for one.
type ItineraryService interface {
	Generate(ctx context.Context, query string) (model.GenerateResult, error)
}
