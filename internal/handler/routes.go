package handler

import (
	"strings"

	"github.com/maxviazov/itinerary-planner/internal/endpoint"
)

// APIPrefix is the group prefix for public API routes, taken from the endpoint registry
// so server routes and client paths cannot drift apart.
const APIPrefix = endpoint.BaseURL

// relative turns a registry path into a path relative to the API group.
func relative(full string) string {
	return strings.TrimPrefix(full, APIPrefix)
}
