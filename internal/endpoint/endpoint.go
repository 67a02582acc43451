// Package endpoint is the single source of truth for public API paths.
// The router mounts its routes from these values and clients read them instead of
// hardcoding URL literals. nginx is expected to forward everything under BaseURL.
package endpoint

import "sort"

// BaseURL is the common prefix under which every API endpoint is served.
const BaseURL = "/api"

// GenerateItinerary is the path of the itinerary generation call.
const GenerateItinerary = BaseURL + "/generate-itinerary"

// Default is the package's default path, identical to BaseURL.
const Default = BaseURL

// Symbolic names accepted by Lookup.
const (
	NameGenerateItinerary = "GENERATE_ITINERARY"
)

var registry = map[string]string{
	NameGenerateItinerary: GenerateItinerary,
}

// Endpoints returns a fresh copy of the name → path mapping; callers may modify it freely.
func Endpoints() map[string]string {
	out := make(map[string]string, len(registry))
	for k, v := range registry {
		out[k] = v
	}
	return out
}

// Lookup resolves a symbolic endpoint name to its path.
func Lookup(name string) (string, bool) {
	p, ok := registry[name]
	return p, ok
}

// Names lists the registered endpoint names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
