package repository

import (
	"context"

	"github.com/maxviazov/itinerary-planner/internal/model"
)

// Pinger represents a minimal readiness check capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ItineraryCache stores generated itineraries keyed by destination.
// Implementations normalize the destination themselves so callers can pass raw input.
type ItineraryCache interface {
	Pinger
	// Get returns ErrNotFound on a miss.
	Get(ctx context.Context, destination string) (model.Itinerary, error)
	Set(ctx context.Context, destination string, it model.Itinerary) error
	Close() error
}
