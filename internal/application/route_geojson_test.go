package application

import (
	"context"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelplanner/service-trip/internal/domain/route"
)

func TestRouteGeoJSON(t *testing.T) {
	result, err := newTestEngine(t).ComputeRoute(context.Background(), []string{"Paris", "Lyon", "Marseille"})
	require.NoError(t, err)

	fc := RouteGeoJSON(result)
	require.Len(t, fc.Features, 6)

	paris := fc.Features[0]
	assert.Equal(t, "stop", paris.Properties["kind"])
	assert.Equal(t, "Paris", paris.Properties["name"])
	assert.Equal(t, orb.Point{2.3522, 48.8566}, paris.Geometry)

	leg := fc.Features[3]
	assert.Equal(t, "leg", leg.Properties["kind"])
	assert.Equal(t, 393, leg.Properties["distance_km"])

	whole := fc.Features[5]
	assert.Equal(t, 669, whole.Properties["total_km"])
	assert.Len(t, whole.Geometry.(orb.LineString), 3)
}

func TestRouteGeoJSON_EmptyRoute(t *testing.T) {
	fc := RouteGeoJSON(route.Empty())
	assert.Empty(t, fc.Features)
}
