// Package response writes the JSON envelope shared by every endpoint.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/travelplanner/service-trip/internal/domain/shared"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// Success writes a 200 with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes a 201 with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// Accepted writes a 202 with data.
func Accepted(c *gin.Context, data interface{}) {
	c.JSON(http.StatusAccepted, Envelope{Success: true, Data: data})
}

// NoContent writes an empty 204.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 with message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: message})
}

// Error maps err onto a status code. Non-domain errors are hidden behind a generic message.
func Error(c *gin.Context, err error) {
	var de *shared.DomainError
	if !errors.As(err, &de) {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, Envelope{Success: false, Error: "internal server error"})
		return
	}
	env := Envelope{Success: false, Error: de.Message}
	if len(de.Fields) > 0 {
		env.Details = de.Fields
	}
	c.JSON(StatusFor(de.Kind), env)
}

// StatusFor returns the HTTP status for a domain error kind.
func StatusFor(kind shared.ErrorKind) int {
	switch kind {
	case shared.KindValidation:
		return http.StatusBadRequest
	case shared.KindNotFound:
		return http.StatusNotFound
	case shared.KindUnresolvable:
		return http.StatusUnprocessableEntity
	case shared.KindUnavailable:
		return http.StatusServiceUnavailable
	case shared.KindInvalidState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
