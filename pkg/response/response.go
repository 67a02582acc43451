// Package response centralizes HTTP response shapes and helpers.
// Handlers rely on it to keep controllers thin and uniform.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/itinerary-planner/internal/service"
)

// ErrorPayload is the canonical error envelope returned by the API.
type ErrorPayload struct {
	Error       string               `json:"error"`
	Message     string               `json:"message,omitempty"`
	FieldErrors []service.FieldError `json:"field_errors,omitempty"`
}

// MapError converts a domain / infrastructure error into an HTTP status and payload.
// Extend here as new domain error categories emerge.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Error: "ok"}
	}

	if errors.Is(err, service.ErrInvalidInput) {
		return http.StatusBadRequest, ErrorPayload{
			Error:       "invalid_input",
			Message:     "one or more fields are invalid",
			FieldErrors: service.FieldErrors(err),
		}
	}

	var toolErr *service.ToolError
	switch {
	case errors.Is(err, service.ErrUnavailable):
		return http.StatusServiceUnavailable, ErrorPayload{
			Error:   "service_unavailable",
			Message: "Service temporarily unavailable. Please configure GROQ_API_KEY environment variable.",
		}
	case errors.As(err, &toolErr):
		return http.StatusBadRequest, ErrorPayload{Error: "tool_error", Message: toolErr.Message}
	case errors.Is(err, service.ErrToolFailed):
		return http.StatusBadRequest, ErrorPayload{Error: "tool_error"}
	case errors.Is(err, service.ErrUpstream):
		return http.StatusBadGateway, ErrorPayload{Error: "upstream_error"}
	default:
		return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
	}
}

// WriteError writes an error response and aborts the context.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	c.AbortWithStatusJSON(status, payload)
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}
