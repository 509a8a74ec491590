package application

import (
	"time"

	"github.com/google/uuid"
	"github.com/travelplanner/service-trip/internal/domain/route"
	"github.com/travelplanner/service-trip/internal/domain/selection"
	"github.com/travelplanner/service-trip/internal/domain/trip"
)

// CreateTripRequest holds the optional values a new trip is restored from.
type CreateTripRequest struct {
	CityOfOrigin       string     `json:"cityOfOrigin"`
	IntermediateCities []string   `json:"intermediateCities"`
	CityOfDestination  string     `json:"cityOfDestination"`
	DateOfTrip         *time.Time `json:"dateOfTrip"`
	NumberOfPassengers *int       `json:"numberOfPassengers"`
}

// UpdateDetailsRequest changes trip metadata. Omitted fields are left as they are.
type UpdateDetailsRequest struct {
	DateOfTrip         *time.Time `json:"dateOfTrip"`
	NumberOfPassengers *int       `json:"numberOfPassengers"`
}

// PickerQueryRequest carries the text typed into a picker.
type PickerQueryRequest struct {
	Text string `json:"text"`
}

// PickerValueRequest names the value to commit into or remove from a picker.
type PickerValueRequest struct {
	Value string `json:"value"`
}

// ComputeRouteRequest asks for the distance along an explicit list of cities.
type ComputeRouteRequest struct {
	Cities []string `json:"cities" binding:"required"`
}

// TripDTO is the response representation of a trip session.
type TripDTO struct {
	ID                 uuid.UUID                  `json:"id"`
	CityOfOrigin       string                     `json:"cityOfOrigin"`
	IntermediateCities []string                   `json:"intermediateCities"`
	CityOfDestination  string                     `json:"cityOfDestination"`
	DateOfTrip         *time.Time                 `json:"dateOfTrip,omitempty"`
	NumberOfPassengers *int                       `json:"numberOfPassengers,omitempty"`
	Sequence           []string                   `json:"sequence,omitempty"`
	CanSubmit          bool                       `json:"canSubmit"`
	Errors             map[string]string          `json:"errors,omitempty"`
	Pickers            map[string]selection.State `json:"pickers"`
	CreatedAt          time.Time                  `json:"createdAt"`
	UpdatedAt          time.Time                  `json:"updatedAt"`
}

// RouteDTO is the response representation of a computed route.
type RouteDTO struct {
	TripID  *uuid.UUID  `json:"tripId,omitempty"`
	Cities  []string    `json:"cities"`
	Legs    []route.Leg `json:"legs"`
	TotalKm int         `json:"totalKm"`
}

func toTripDTO(s *trip.Session, now time.Time) TripDTO {
	pickers := make(map[string]selection.State, len(trip.Fields))
	for _, f := range trip.Fields {
		p, _ := s.Picker(f)
		pickers[f.String()] = p.State()
	}

	seq, _ := s.Sequence()
	errs := s.Validate(now)
	if len(errs) == 0 {
		errs = nil
	}

	return TripDTO{
		ID:                 s.ID(),
		CityOfOrigin:       s.Origin(),
		IntermediateCities: s.Values(trip.FieldIntermediates),
		CityOfDestination:  s.Destination(),
		DateOfTrip:         s.Date(),
		NumberOfPassengers: s.Passengers(),
		Sequence:           seq,
		CanSubmit:          len(s.ValidateForSubmit(now)) == 0,
		Errors:             errs,
		Pickers:            pickers,
		CreatedAt:          s.CreatedAt(),
		UpdatedAt:          s.UpdatedAt(),
	}
}

func toRouteDTO(tripID *uuid.UUID, cities []string, r *route.Result) RouteDTO {
	if cities == nil {
		cities = []string{}
	}
	return RouteDTO{
		TripID:  tripID,
		Cities:  cities,
		Legs:    r.Legs,
		TotalKm: r.TotalKm,
	}
}

// NewRouteDTO builds the response for a route computed outside any trip.
func NewRouteDTO(cities []string, r *route.Result) RouteDTO {
	return toRouteDTO(nil, cities, r)
}
