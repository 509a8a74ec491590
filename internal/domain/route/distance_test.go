package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/umahmood/haversine"
)

var (
	paris     = Point{Lat: 48.8566, Lon: 2.3522}
	lyon      = Point{Lat: 45.75, Lon: 4.85}
	marseille = Point{Lat: 43.2965, Lon: 5.3698}
	bordeaux  = Point{Lat: 44.8378, Lon: -0.5792}
)

func TestDistance_KnownPairs(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want int
	}{
		{"paris to lyon", paris, lyon, 393},
		{"lyon to marseille", lyon, marseille, 276},
		{"paris to marseille", paris, marseille, 660},
		{"paris to bordeaux", paris, bordeaux, 499},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b, UnitKilometers))
		})
	}
}

func TestDistance_IdenticalPointsIsZero(t *testing.T) {
	assert.Equal(t, 0, Distance(paris, paris, UnitKilometers))
	assert.Equal(t, 0, Distance(lyon, lyon, UnitNautical))
}

func TestDistance_Symmetric(t *testing.T) {
	for _, pair := range [][2]Point{{paris, lyon}, {lyon, marseille}, {bordeaux, marseille}} {
		assert.Equal(t, Distance(pair[0], pair[1], UnitKilometers), Distance(pair[1], pair[0], UnitKilometers))
	}
}

func TestDistance_Units(t *testing.T) {
	assert.Equal(t, 244, Distance(paris, lyon, UnitMiles))
	assert.Equal(t, 212, Distance(paris, lyon, UnitNautical))
}

func TestDistance_NearlyIdenticalPointsStayFinite(t *testing.T) {
	a := Point{Lat: 45.0, Lon: 7.0}
	b := Point{Lat: 45.0, Lon: 7.0000000001}
	assert.Equal(t, 0, Distance(a, b, UnitKilometers))
}

func TestDistance_AgreesWithHaversine(t *testing.T) {
	for _, pair := range [][2]Point{{paris, lyon}, {lyon, marseille}, {paris, bordeaux}} {
		_, km := haversine.Distance(
			haversine.Coord{Lat: pair[0].Lat, Lon: pair[0].Lon},
			haversine.Coord{Lat: pair[1].Lat, Lon: pair[1].Lon},
		)
		assert.InDelta(t, km, float64(Distance(pair[0], pair[1], UnitKilometers)), 1.0)
	}
}
