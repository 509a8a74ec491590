// Package route computes leg-by-leg distances along an ordered list of resolved stops.
package route

import (
	"github.com/paulmach/orb"
	"github.com/samber/lo"
)

// Stop is a named place with resolved coordinates.
type Stop struct {
	Name  string
	Point Point
}

// Leg is the distance between two consecutive stops.
type Leg struct {
	FromCity   string `json:"from_city"`
	ToCity     string `json:"to_city"`
	DistanceKm int    `json:"distance_km"`
	From       Point  `json:"from"`
	To         Point  `json:"to"`
}

// Result is a computed route. TotalKm is always the sum of the leg distances.
type Result struct {
	Legs    []Leg `json:"legs"`
	TotalKm int   `json:"total_km"`
}

// Empty returns a route with no legs.
func Empty() *Result {
	return &Result{Legs: []Leg{}}
}

// NewResult sums legs into a Result.
func NewResult(legs []Leg) *Result {
	if len(legs) == 0 {
		return Empty()
	}
	return &Result{
		Legs:    legs,
		TotalKm: lo.SumBy(legs, func(l Leg) int { return l.DistanceKm }),
	}
}

// Plan builds the legs between consecutive stops. Fewer than two stops give an empty route.
func Plan(stops []Stop) *Result {
	if len(stops) < 2 {
		return Empty()
	}

	legs := make([]Leg, 0, len(stops)-1)
	for i := 1; i < len(stops); i++ {
		from, to := stops[i-1], stops[i]
		legs = append(legs, Leg{
			FromCity:   from.Name,
			ToCity:     to.Name,
			DistanceKm: Distance(from.Point, to.Point, UnitKilometers),
			From:       from.Point,
			To:         to.Point,
		})
	}
	return NewResult(legs)
}

// Orb returns the point in orb's lon/lat order.
func (p Point) Orb() orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

// LineString traces the route through every stop. Empty routes give an empty line.
func (r *Result) LineString() orb.LineString {
	if len(r.Legs) == 0 {
		return orb.LineString{}
	}
	line := make(orb.LineString, 0, len(r.Legs)+1)
	line = append(line, r.Legs[0].From.Orb())
	for _, l := range r.Legs {
		line = append(line, l.To.Orb())
	}
	return line
}

// Cities lists the stop names in travel order.
func (r *Result) Cities() []string {
	if len(r.Legs) == 0 {
		return nil
	}
	names := []string{r.Legs[0].FromCity}
	for _, l := range r.Legs {
		names = append(names, l.ToCity)
	}
	return names
}
