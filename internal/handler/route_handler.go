package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/travelplanner/service-trip/internal/application"
	"github.com/travelplanner/service-trip/internal/platform/response"
)

const contentTypeGeoJSON = "application/geo+json"

// RouteHandler handles HTTP requests for ad-hoc route distances.
type RouteHandler struct {
	engine *application.DistanceEngine
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(engine *application.DistanceEngine) *RouteHandler {
	return &RouteHandler{engine: engine}
}

// RegisterRoutes registers route computation routes.
func (h *RouteHandler) RegisterRoutes(r *gin.RouterGroup) {
	routes := r.Group("/api/v1/routes")
	{
		routes.POST("", h.ComputeRoute)
		routes.POST("/geojson", h.ComputeRouteGeoJSON)
	}
}

// ComputeRoute handles POST /api/v1/routes.
func (h *RouteHandler) ComputeRoute(c *gin.Context) {
	var req application.ComputeRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.engine.ComputeRoute(c.Request.Context(), req.Cities)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, application.NewRouteDTO(req.Cities, result))
}

// ComputeRouteGeoJSON handles POST /api/v1/routes/geojson. The body is a bare FeatureCollection.
func (h *RouteHandler) ComputeRouteGeoJSON(c *gin.Context) {
	var req application.ComputeRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.engine.ComputeRoute(c.Request.Context(), req.Cities)
	if err != nil {
		response.Error(c, err)
		return
	}

	body, err := application.RouteGeoJSON(result).MarshalJSON()
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, contentTypeGeoJSON, body)
}
