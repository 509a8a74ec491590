package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/travelplanner/service-trip/internal/application"
	"github.com/travelplanner/service-trip/internal/platform/response"
)

// PlaceHandler handles HTTP requests for place lookups.
type PlaceHandler struct {
	lookup *application.GeoLookup
}

// NewPlaceHandler creates a new PlaceHandler.
func NewPlaceHandler(lookup *application.GeoLookup) *PlaceHandler {
	return &PlaceHandler{lookup: lookup}
}

// RegisterRoutes registers place routes.
func (h *PlaceHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/api/v1/places", h.Search)
}

// Search handles GET /api/v1/places?q=.
func (h *PlaceHandler) Search(c *gin.Context) {
	candidates, err := h.lookup.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, candidates)
}
