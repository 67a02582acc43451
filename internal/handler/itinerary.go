package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/itinerary-planner/internal/endpoint"
	"github.com/maxviazov/itinerary-planner/internal/model"
	"github.com/maxviazov/itinerary-planner/internal/service"
	"github.com/maxviazov/itinerary-planner/pkg/response"
)

// ItineraryHandler serves the itinerary generation endpoint.
type ItineraryHandler struct {
	svc service.ItineraryService
}

// NewItineraryHandler wires an itinerary handler with its only dependency: the itinerary service.
func NewItineraryHandler(svc service.ItineraryService) *ItineraryHandler {
	return &ItineraryHandler{svc: svc}
}

// Register mounts the generation route on the API group, using the registry path.
func (h *ItineraryHandler) Register(r *gin.RouterGroup) {
	r.POST(relative(endpoint.GenerateItinerary), h.generate)
}

func (h *ItineraryHandler) generate(c *gin.Context) {
	var req model.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput) // parse details stay internal
		return
	}
	res, err := h.svc.Generate(c.Request.Context(), req.Query)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

// ListEndpoints exposes the endpoint registry so clients can discover paths at runtime.
func ListEndpoints(c *gin.Context) {
	response.WriteData(c, http.StatusOK, gin.H{
		"base_url":  endpoint.BaseURL,
		"endpoints": endpoint.Endpoints(),
	})
}
