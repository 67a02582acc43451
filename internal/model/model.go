// Package model contains the itinerary data shapes shared across layers.
// I keep it lean and focused on data shapes without behavior.
package model

import "encoding/json"

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// DayDescription carries the narrative details for one itinerary day.
type DayDescription struct {
	TrekkingDuration string   `json:"trekking_duration"`
	KeyHighlights    []string `json:"key_highlights"`
	Permits          string   `json:"permits"`
	BestTimeToVisit  string   `json:"best_time_to_visit"`
	DifficultyLevel  string   `json:"difficulty_level"`
	Tips             []string `json:"tips"`
}

// Day is a single stop of a multi-day itinerary.
type Day struct {
	Day         int            `json:"day" validate:"gte=1"`
	Location    string         `json:"location" validate:"required"`
	Elevation   float64        `json:"elevation"` // meters
	Coordinates Coordinates    `json:"coordinates"`
	Highlight   string         `json:"highlight"`
	Description DayDescription `json:"description"`
}

// Itinerary is the structured plan produced for a destination.
type Itinerary struct {
	Itinerary []Day `json:"itinerary" validate:"required,min=1,dive"`
}

// GenerateRequest is the body accepted by the itinerary generation endpoint.
type GenerateRequest struct {
	Query string `json:"query"`
}

// GenerateResult is either a structured itinerary or a plain chat reply, never both.
type GenerateResult struct {
	Itinerary *Itinerary
	Response  string
}

// MarshalJSON always emits exactly one key: "itinerary" when set, otherwise "response",
// even when the reply text is empty.
func (r GenerateResult) MarshalJSON() ([]byte, error) {
	if r.Itinerary != nil {
		return json.Marshal(struct {
			Itinerary *Itinerary `json:"itinerary"`
		}{r.Itinerary})
	}
	return json.Marshal(struct {
		Response string `json:"response"`
	}{r.Response})
}
