package application

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/travelplanner/service-trip/internal/domain/route"
)

// RouteGeoJSON renders a route as a FeatureCollection: one Point per stop, one LineString per
// leg carrying its distance, and a final LineString for the whole route carrying the total.
func RouteGeoJSON(r *route.Result) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if len(r.Legs) == 0 {
		return fc
	}

	first := r.Legs[0]
	fc.Append(stopFeature(first.FromCity, first.From, 0))
	for i, leg := range r.Legs {
		fc.Append(stopFeature(leg.ToCity, leg.To, i+1))
	}

	for i, leg := range r.Legs {
		f := geojson.NewFeature(orb.LineString{leg.From.Orb(), leg.To.Orb()})
		f.Properties["kind"] = "leg"
		f.Properties["index"] = i
		f.Properties["from_city"] = leg.FromCity
		f.Properties["to_city"] = leg.ToCity
		f.Properties["distance_km"] = leg.DistanceKm
		fc.Append(f)
	}

	whole := geojson.NewFeature(r.LineString())
	whole.Properties["kind"] = "route"
	whole.Properties["cities"] = r.Cities()
	whole.Properties["total_km"] = r.TotalKm
	fc.Append(whole)
	return fc
}

func stopFeature(name string, p route.Point, order int) *geojson.Feature {
	f := geojson.NewFeature(p.Orb())
	f.Properties["kind"] = "stop"
	f.Properties["name"] = name
	f.Properties["order"] = order
	return f
}
