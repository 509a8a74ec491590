package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/travelplanner/service-trip/internal/application"
	"github.com/travelplanner/service-trip/internal/platform/response"
)

// CatalogHandler handles admin HTTP requests for place catalog management.
type CatalogHandler struct {
	service *application.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *application.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterRoutes registers admin catalog routes.
func (h *CatalogHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/api/v1/admin")
	{
		admin.PUT("/places", h.UpsertPlace)
	}
}

// UpsertPlace handles PUT /api/v1/admin/places.
func (h *CatalogHandler) UpsertPlace(c *gin.Context) {
	var req application.UpsertPlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpsertPlace(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
