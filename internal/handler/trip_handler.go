package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/travelplanner/service-trip/internal/application"
	"github.com/travelplanner/service-trip/internal/domain/trip"
	"github.com/travelplanner/service-trip/internal/platform/response"
)

// TripHandler handles HTTP requests for trip forms and their pickers.
type TripHandler struct {
	service *application.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(service *application.TripService) *TripHandler {
	return &TripHandler{service: service}
}

// RegisterRoutes registers all trip routes on the given router group.
func (h *TripHandler) RegisterRoutes(r *gin.RouterGroup) {
	trips := r.Group("/api/v1/trips")
	{
		trips.POST("", h.CreateTrip)
		trips.GET("/:id", h.GetTrip)
		trips.PATCH("/:id", h.UpdateDetails)
		trips.DELETE("/:id", h.DeleteTrip)
		trips.POST("/:id/submit", h.SubmitTrip)

		pickers := trips.Group("/:id/pickers/:field")
		pickers.POST("/query", h.Query)
		pickers.POST("/open", h.Open)
		pickers.POST("/close", h.Close)
		pickers.POST("/dismiss", h.Dismiss)
		pickers.POST("/select", h.Select)
		pickers.POST("/remove", h.Remove)
	}
}

// CreateTrip handles POST /api/v1/trips. An empty body starts a blank trip.
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req application.CreateTripRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}

	result, err := h.service.CreateTrip(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// GetTrip handles GET /api/v1/trips/:id.
func (h *TripHandler) GetTrip(c *gin.Context) {
	tripID, ok := parseTripID(c)
	if !ok {
		return
	}

	result, err := h.service.GetTrip(c.Request.Context(), tripID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateDetails handles PATCH /api/v1/trips/:id.
func (h *TripHandler) UpdateDetails(c *gin.Context) {
	tripID, ok := parseTripID(c)
	if !ok {
		return
	}

	var req application.UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateDetails(c.Request.Context(), tripID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteTrip handles DELETE /api/v1/trips/:id.
func (h *TripHandler) DeleteTrip(c *gin.Context) {
	tripID, ok := parseTripID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteTrip(c.Request.Context(), tripID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// SubmitTrip handles POST /api/v1/trips/:id/submit.
func (h *TripHandler) SubmitTrip(c *gin.Context) {
	tripID, ok := parseTripID(c)
	if !ok {
		return
	}

	result, err := h.service.SubmitTrip(c.Request.Context(), tripID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Query handles POST /api/v1/trips/:id/pickers/:field/query.
// With ?debounce=true the lookup is deferred and the pending snapshot is returned with 202.
func (h *TripHandler) Query(c *gin.Context) {
	tripID, field, ok := parsePickerParams(c)
	if !ok {
		return
	}

	var req application.PickerQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	debounced, _ := strconv.ParseBool(c.DefaultQuery("debounce", "false"))
	if debounced {
		result, err := h.service.TypeQuery(c.Request.Context(), tripID, field, req.Text)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Accepted(c, result)
		return
	}

	result, err := h.service.ChangeQuery(c.Request.Context(), tripID, field, req.Text)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Open handles POST /api/v1/trips/:id/pickers/:field/open.
func (h *TripHandler) Open(c *gin.Context) {
	tripID, field, ok := parsePickerParams(c)
	if !ok {
		return
	}

	result, err := h.service.OpenPicker(c.Request.Context(), tripID, field)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Close handles POST /api/v1/trips/:id/pickers/:field/close.
func (h *TripHandler) Close(c *gin.Context) {
	tripID, field, ok := parsePickerParams(c)
	if !ok {
		return
	}

	result, err := h.service.ClosePicker(c.Request.Context(), tripID, field)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Dismiss handles POST /api/v1/trips/:id/pickers/:field/dismiss.
func (h *TripHandler) Dismiss(c *gin.Context) {
	tripID, field, ok := parsePickerParams(c)
	if !ok {
		return
	}

	result, err := h.service.DismissError(c.Request.Context(), tripID, field)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Select handles POST /api/v1/trips/:id/pickers/:field/select.
func (h *TripHandler) Select(c *gin.Context) {
	tripID, field, ok := parsePickerParams(c)
	if !ok {
		return
	}

	var req application.PickerValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SelectCandidate(c.Request.Context(), tripID, field, req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Remove handles POST /api/v1/trips/:id/pickers/:field/remove.
func (h *TripHandler) Remove(c *gin.Context) {
	tripID, field, ok := parsePickerParams(c)
	if !ok {
		return
	}

	var req application.PickerValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.RemoveCandidate(c.Request.Context(), tripID, field, req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// --- Helpers ---

func parseTripID(c *gin.Context) (uuid.UUID, bool) {
	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid trip ID")
		return uuid.Nil, false
	}
	return tripID, true
}

func parsePickerParams(c *gin.Context) (uuid.UUID, trip.Field, bool) {
	tripID, ok := parseTripID(c)
	if !ok {
		return uuid.Nil, "", false
	}
	field, err := trip.ParseField(c.Param("field"))
	if err != nil {
		response.Error(c, err)
		return uuid.Nil, "", false
	}
	return tripID, field, true
}
