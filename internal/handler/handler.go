package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/maxviazov/itinerary-planner/internal/service"
)

// Register mounts all public routes on the given engine.
func Register(r *gin.Engine, repo Pinger, itinerarySvc service.ItineraryService) {
	h := NewHealthHandler(repo)

	// Health checks
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	// Docs endpoints (root-level)
	RegisterDocs(r)

	api := r.Group(APIPrefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		api.GET("/endpoints", ListEndpoints)
		NewItineraryHandler(itinerarySvc).Register(api)
	}
}
