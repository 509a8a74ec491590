package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h *Handler, path string) (int, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestLive(t *testing.T) {
	code, body := serve(t, NewHandler("service-trip", nil), "/health/live")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "service-trip", body["service"])
}

func TestReady(t *testing.T) {
	h := NewHandler("service-trip", map[string]Check{
		"places": func(context.Context) error { return nil },
	})
	code, body := serve(t, h, "/health/ready")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ready", body["status"])
}

func TestReady_FailingCheck(t *testing.T) {
	h := NewHandler("service-trip", map[string]Check{
		"places": func(context.Context) error { return nil },
		"redis":  func(context.Context) error { return errors.New("connection refused") },
	})
	code, body := serve(t, h, "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "not_ready", body["status"])
	checks := body["checks"].(map[string]interface{})
	assert.Equal(t, "ok", checks["places"])
	assert.Equal(t, "connection refused", checks["redis"])
}
