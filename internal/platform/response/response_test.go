package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelplanner/service-trip/internal/domain/shared"
)

func render(t *testing.T, fn func(*gin.Context)) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)

	var env Envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestStatusFor(t *testing.T) {
	tests := map[shared.ErrorKind]int{
		shared.KindValidation:   http.StatusBadRequest,
		shared.KindNotFound:     http.StatusNotFound,
		shared.KindUnresolvable: http.StatusUnprocessableEntity,
		shared.KindUnavailable:  http.StatusServiceUnavailable,
		shared.KindInvalidState: http.StatusConflict,
		shared.ErrorKind("?"):   http.StatusInternalServerError,
	}
	for kind, want := range tests {
		assert.Equal(t, want, StatusFor(kind), kind)
	}
}

func TestError_DomainError(t *testing.T) {
	err := shared.NewFieldValidationError("trip is not ready to submit", map[string]string{"dateOfTrip": "required"})

	w, env := render(t, func(c *gin.Context) { Error(c, err) })
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "trip is not ready to submit", env.Error)
	assert.Equal(t, map[string]interface{}{"dateOfTrip": "required"}, env.Details)
}

func TestError_WrappedDomainError(t *testing.T) {
	err := errors.Join(errors.New("context"), shared.NewNotFoundError("Trip", "abc"))

	w, env := render(t, func(c *gin.Context) { Error(c, err) })
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Trip abc not found", env.Error)
}

func TestError_HidesInternalErrors(t *testing.T) {
	w, env := render(t, func(c *gin.Context) { Error(c, errors.New("pq: connection refused")) })
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", env.Error)
}

func TestSuccessHelpers(t *testing.T) {
	w, env := render(t, func(c *gin.Context) { Created(c, gin.H{"id": 1}) })
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)

	w, _ = render(t, func(c *gin.Context) { Accepted(c, nil) })
	assert.Equal(t, http.StatusAccepted, w.Code)
}
